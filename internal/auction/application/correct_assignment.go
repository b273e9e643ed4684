package application

import (
	"context"
	"fmt"

	"github.com/cristianortiz/iplAuctioneer/internal/auction/domain"
	"go.uber.org/zap"
)

// CorrectAssignmentDTO is the input for replacing a past decision, Team may
// be "Unsold" which forces Price to zero
type CorrectAssignmentDTO struct {
	Index int
	Team  string
	Price float64
}

// CorrectAssignmentUseCase runs the correction protocol (replace entry, full
// capacity recompute) and overwrites the journal row in place
type CorrectAssignmentUseCase struct {
	store Store
}

func NewCorrectAssignmentUseCase(store Store) *CorrectAssignmentUseCase {
	return &CorrectAssignmentUseCase{store: store}
}

func (uc *CorrectAssignmentUseCase) Execute(ctx context.Context, session *domain.Session, cmd CorrectAssignmentDTO) error {
	team, ok := domain.ParseTeamID(cmd.Team)
	if !ok {
		log.Warn("CorrectAssignmentUseCase: unknown team",
			zap.String("sessionID", session.ID.String()),
			zap.Int("index", cmd.Index),
			zap.String("team", cmd.Team),
		)
		return domain.ValidationError{Field: "team", Detail: fmt.Sprintf("%q is not a participating team", cmd.Team)}
	}

	if err := session.Correct(cmd.Index, team, cmd.Price); err != nil {
		return fmt.Errorf("correct assignment use case: %w", err)
	}

	snap := session.Snapshot()
	corrected := snap.Assignments[cmd.Index]

	if err := uc.store.SaveAssignment(ctx, session, corrected); err != nil {
		log.Error("CorrectAssignmentUseCase: failed to persist corrected assignment",
			zap.String("sessionID", session.ID.String()),
			zap.Int("index", cmd.Index),
			zap.Error(err),
		)
		return fmt.Errorf("correct assignment use case: failed to persist assignment: %w", err)
	}

	return nil
}
