package application

import (
	"context"

	"github.com/cristianortiz/iplAuctioneer/internal/auction/domain"
)

// Store persists the recovery journal behind the engine. Implementations own
// their transaction handling, the in-memory session never waits on the
// journal for correctness.
type Store interface {
	// SaveSession upserts the session row (id, cursor, config)
	SaveSession(ctx context.Context, session *domain.Session) error
	// SaveAssignment upserts one ledger entry keyed on (session, index) and
	// the session cursor in a single transaction, so a correction overwrites
	// the same row
	SaveAssignment(ctx context.Context, session *domain.Session, a domain.Assignment) error
}
