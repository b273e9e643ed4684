package application

import (
	"context"
	"sync"

	"github.com/cristianortiz/iplAuctioneer/internal/auction/domain"
)

// AuctionService is the application interface of the auction module, it
// exposes every auctioneer intent to the infra layer. Every call returns the
// fresh snapshot on success, on failure the prior snapshot stays valid.
type AuctionService interface {
	// StartSession replaces the live session with one built from a validated
	// player queue, prior session state is discarded only on success
	StartSession(ctx context.Context, players []domain.Player, cfg domain.SessionConfig) (*SnapshotDTO, error)
	// ProposeBid records a candidate price for the current player
	ProposeBid(ctx context.Context, price float64) (*SnapshotDTO, error)
	// Commit assigns the current player to a team at a price
	Commit(ctx context.Context, team string, price float64) (*SnapshotDTO, error)
	// MarkUnsold records the current player as unsold
	MarkUnsold(ctx context.Context) (*SnapshotDTO, error)
	// CancelBid drops the pending proposal without mutating anything else
	CancelBid(ctx context.Context) (*SnapshotDTO, error)
	// Correct replaces a past decision and re-derives every team capacity
	Correct(ctx context.Context, index int, team string, price float64) (*SnapshotDTO, error)
	// Snapshot returns the current read-only view
	Snapshot(ctx context.Context) (*SnapshotDTO, error)
}

// concrete implementation of AuctionService, holds the single live session
type auctionService struct {
	startUC   *StartSessionUseCase
	commitUC  *CommitAssignmentUseCase
	correctUC *CorrectAssignmentUseCase

	mu      sync.Mutex
	session *domain.Session
}

func NewAuctionService(startUC *StartSessionUseCase, commitUC *CommitAssignmentUseCase, correctUC *CorrectAssignmentUseCase) AuctionService {
	return &auctionService{
		startUC:   startUC,
		commitUC:  commitUC,
		correctUC: correctUC,
	}
}

// StartSession implements AuctionService.
func (as *auctionService) StartSession(ctx context.Context, players []domain.Player, cfg domain.SessionConfig) (*SnapshotDTO, error) {
	session, err := as.startUC.Execute(ctx, players, cfg)
	if err != nil {
		return nil, err
	}

	as.mu.Lock()
	as.session = session
	as.mu.Unlock()

	return NewSnapshotDTO(session.Snapshot()), nil
}

// ProposeBid implements AuctionService.
func (as *auctionService) ProposeBid(ctx context.Context, price float64) (*SnapshotDTO, error) {
	session, err := as.currentSession()
	if err != nil {
		return nil, err
	}
	if err := session.ProposeBid(price); err != nil {
		return nil, err
	}
	return NewSnapshotDTO(session.Snapshot()), nil
}

// Commit implements AuctionService.
func (as *auctionService) Commit(ctx context.Context, team string, price float64) (*SnapshotDTO, error) {
	session, err := as.currentSession()
	if err != nil {
		return nil, err
	}
	cmd := CommitAssignmentDTO{Team: team, Price: price}
	if err := as.commitUC.Execute(ctx, session, cmd); err != nil {
		return nil, err
	}
	return NewSnapshotDTO(session.Snapshot()), nil
}

// MarkUnsold implements AuctionService.
func (as *auctionService) MarkUnsold(ctx context.Context) (*SnapshotDTO, error) {
	session, err := as.currentSession()
	if err != nil {
		return nil, err
	}
	if err := as.commitUC.Execute(ctx, session, CommitAssignmentDTO{Unsold: true}); err != nil {
		return nil, err
	}
	return NewSnapshotDTO(session.Snapshot()), nil
}

// CancelBid implements AuctionService.
func (as *auctionService) CancelBid(ctx context.Context) (*SnapshotDTO, error) {
	session, err := as.currentSession()
	if err != nil {
		return nil, err
	}
	session.CancelBid()
	return NewSnapshotDTO(session.Snapshot()), nil
}

// Correct implements AuctionService.
func (as *auctionService) Correct(ctx context.Context, index int, team string, price float64) (*SnapshotDTO, error) {
	session, err := as.currentSession()
	if err != nil {
		return nil, err
	}
	cmd := CorrectAssignmentDTO{Index: index, Team: team, Price: price}
	if err := as.correctUC.Execute(ctx, session, cmd); err != nil {
		return nil, err
	}
	return NewSnapshotDTO(session.Snapshot()), nil
}

// Snapshot implements AuctionService.
func (as *auctionService) Snapshot(ctx context.Context) (*SnapshotDTO, error) {
	session, err := as.currentSession()
	if err != nil {
		return nil, err
	}
	return NewSnapshotDTO(session.Snapshot()), nil
}

func (as *auctionService) currentSession() (*domain.Session, error) {
	as.mu.Lock()
	defer as.mu.Unlock()
	if as.session == nil {
		return nil, domain.ErrNoActiveSession
	}
	return as.session, nil
}
