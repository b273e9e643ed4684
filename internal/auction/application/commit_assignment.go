package application

import (
	"context"
	"fmt"

	"github.com/cristianortiz/iplAuctioneer/internal/auction/domain"
	"go.uber.org/zap"
)

// CommitAssignmentDTO is the input for committing the current player, Unsold
// true ignores Team/Price and records the unsold outcome
type CommitAssignmentDTO struct {
	Team   string
	Price  float64
	Unsold bool
}

// CommitAssignmentUseCase runs the engine commit and journals the resulting
// ledger entry plus the advanced cursor
type CommitAssignmentUseCase struct {
	store Store
}

func NewCommitAssignmentUseCase(store Store) *CommitAssignmentUseCase {
	return &CommitAssignmentUseCase{store: store}
}

func (uc *CommitAssignmentUseCase) Execute(ctx context.Context, session *domain.Session, cmd CommitAssignmentDTO) error {
	// 1. resolve the intent against the closed team set, then let the
	// aggregate validate and mutate atomically
	var err error
	if cmd.Unsold {
		err = session.MarkUnsold()
	} else {
		team, ok := domain.ParseTeamID(cmd.Team)
		if !ok {
			log.Warn("CommitAssignmentUseCase: unknown team",
				zap.String("sessionID", session.ID.String()),
				zap.String("team", cmd.Team),
			)
			return domain.ValidationError{Field: "team", Detail: fmt.Sprintf("%q is not a participating team", cmd.Team)}
		}
		err = session.Commit(team, cmd.Price)
	}
	if err != nil {
		return fmt.Errorf("commit assignment use case: %w", err)
	}

	// 2. journal the committed entry plus cursor in one tx, the in-memory
	// session is already consistent at this point
	snap := session.Snapshot()
	committed := snap.Assignments[snap.Cursor-1]

	if err := uc.store.SaveAssignment(ctx, session, committed); err != nil {
		log.Error("CommitAssignmentUseCase: failed to persist assignment",
			zap.String("sessionID", session.ID.String()),
			zap.Int("index", committed.PlayerIndex),
			zap.Error(err),
		)
		return fmt.Errorf("commit assignment use case: failed to persist assignment: %w", err)
	}

	return nil
}
