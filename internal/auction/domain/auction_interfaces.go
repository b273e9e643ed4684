package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SessionRepository persists the session row (id, cursor, starting config).
// The in-memory Session stays the source of truth, rows are a recovery journal.
type SessionRepository interface {
	Save(ctx context.Context, tx pgx.Tx, session *Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*SessionRecord, error)
}

// SessionRecord is the persisted shape of a session, enough to rebuild one
// together with its assignment rows
type SessionRecord struct {
	ID          uuid.UUID
	Cursor      int
	PlayerCount int
	Config      SessionConfig
}

// AssignmentRepository persists ledger entries keyed on (session, index) so a
// correction overwrites the row in place
type AssignmentRepository interface {
	Save(ctx context.Context, tx pgx.Tx, sessionID uuid.UUID, a Assignment) error
	GetBySession(ctx context.Context, sessionID uuid.UUID) ([]Assignment, error)
}
