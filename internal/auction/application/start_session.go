package application

import (
	"context"
	"fmt"

	"github.com/cristianortiz/iplAuctioneer/internal/auction/domain"
	"github.com/cristianortiz/iplAuctioneer/internal/shared/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// StartSessionUseCase creates a fresh auction session from an already
// validated player queue and journals the session row
type StartSessionUseCase struct {
	store Store
}

func NewStartSessionUseCase(store Store) *StartSessionUseCase {
	return &StartSessionUseCase{store: store}
}

func (uc *StartSessionUseCase) Execute(ctx context.Context, players []domain.Player, cfg domain.SessionConfig) (*domain.Session, error) {
	session, err := domain.NewSession(uuid.New(), players, cfg)
	if err != nil {
		log.Warn("StartSessionUseCase: session rejected",
			zap.Int("players", len(players)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("start session use case: %w", err)
	}

	if err := uc.store.SaveSession(ctx, session); err != nil {
		log.Error("StartSessionUseCase: failed to persist session",
			zap.String("sessionID", session.ID.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("start session use case: failed to persist session %s: %w", session.ID, err)
	}

	log.Info("StartSessionUseCase: session started",
		zap.String("sessionID", session.ID.String()),
		zap.Int("players", len(players)),
	)
	return session, nil
}
