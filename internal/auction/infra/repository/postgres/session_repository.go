package postgres

import (
	"context"
	"errors"

	"github.com/cristianortiz/iplAuctioneer/internal/auction/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionRepository implements domain.SessionRepository interface
type SessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new instance of SessionRepository
func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

// Save upserts the session row, INSERT ON CONFLICT handles both session
// creation and the cursor advancing after every commit
func (r *SessionRepository) Save(ctx context.Context, tx pgx.Tx, session *domain.Session) error {
	query := `
        INSERT INTO auction_sessions (id, cursor_position, player_count, starting_purse, total_slots, batter_slots, bowler_slots, foreign_slots)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT (id) DO UPDATE
        SET
            cursor_position = EXCLUDED.cursor_position,
            updated_at = NOW();
    `
	snap := session.Snapshot()
	cfg := session.Config
	_, err := tx.Exec(ctx, query,
		session.ID,
		snap.Cursor,
		snap.TotalPlayers,
		cfg.StartingPurse,
		cfg.TotalSlots,
		cfg.BatterSlots,
		cfg.BowlerSlots,
		cfg.ForeignSlots,
	)
	return err
}

// GetByID recovers the persisted shape of a session
func (r *SessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SessionRecord, error) {
	query := `
        SELECT id, cursor_position, player_count, starting_purse, total_slots, batter_slots, bowler_slots, foreign_slots
        FROM auction_sessions
        WHERE id = $1
    `
	record := &domain.SessionRecord{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&record.ID,
		&record.Cursor,
		&record.PlayerCount,
		&record.Config.StartingPurse,
		&record.Config.TotalSlots,
		&record.Config.BatterSlots,
		&record.Config.BowlerSlots,
		&record.Config.ForeignSlots,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoActiveSession
		}
		return nil, err
	}

	return record, nil
}
