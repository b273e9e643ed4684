package postgres

import (
	"context"
	"fmt"

	"github.com/cristianortiz/iplAuctioneer/internal/auction/domain"
	"github.com/cristianortiz/iplAuctioneer/internal/shared/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// Store implements application.Store over the two repositories, every call
// runs inside a single transaction
type Store struct {
	sessionRepo    domain.SessionRepository
	assignmentRepo domain.AssignmentRepository
	dbPool         *pgxpool.Pool
}

// NewStore creates a new instance of Store, it receives dependencies through injection
func NewStore(sessionRepo domain.SessionRepository, assignmentRepo domain.AssignmentRepository, dbPool *pgxpool.Pool) *Store {
	return &Store{
		sessionRepo:    sessionRepo,
		assignmentRepo: assignmentRepo,
		dbPool:         dbPool,
	}
}

// SaveSession journals the session row in its own transaction
func (s *Store) SaveSession(ctx context.Context, session *domain.Session) error {
	return s.inTx(ctx, session, func(tx pgx.Tx) error {
		return s.sessionRepo.Save(ctx, tx, session)
	})
}

// SaveAssignment journals one ledger entry plus the session cursor
// atomically, a commit and its cursor advance can never be persisted apart
func (s *Store) SaveAssignment(ctx context.Context, session *domain.Session, a domain.Assignment) error {
	return s.inTx(ctx, session, func(tx pgx.Tx) error {
		if err := s.assignmentRepo.Save(ctx, tx, session.ID, a); err != nil {
			return fmt.Errorf("saving assignment %d: %w", a.PlayerIndex, err)
		}
		return s.sessionRepo.Save(ctx, tx, session)
	})
}

// inTx wraps fn in a transaction with commit/rollback handling
func (s *Store) inTx(ctx context.Context, session *domain.Session, fn func(tx pgx.Tx) error) (err error) {
	tx, err := s.dbPool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		log.Error("Store: failed to begin transaction",
			zap.String("sessionID", session.ID.String()),
			zap.Error(err),
		)
		return fmt.Errorf("store: failed to begin transaction: %w", err)
	}

	// handles commit/rollback, including the panic case
	defer func() {
		if r := recover(); r != nil {
			log.Error("Store: recovered from panic during transaction",
				zap.String("sessionID", session.ID.String()),
				zap.Any("panic", r),
			)
			_ = tx.Rollback(ctx)
			panic(r)
		}
		if err != nil {
			log.Warn("Store: rolling back transaction due to error",
				zap.String("sessionID", session.ID.String()),
				zap.Error(err),
			)
			_ = tx.Rollback(ctx)
			return
		}
		if commitErr := tx.Commit(ctx); commitErr != nil {
			log.Error("Store: failed to commit transaction",
				zap.String("sessionID", session.ID.String()),
				zap.Error(commitErr),
			)
			err = fmt.Errorf("store: failed to commit transaction: %w", commitErr)
		}
	}()

	err = fn(tx)
	return err
}
