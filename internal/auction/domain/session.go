package domain

import (
	"fmt"
	"math"
	"sync"

	"github.com/cristianortiz/iplAuctioneer/internal/shared/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// Session is the auction aggregate: the fixed player queue, the cursor over
// it, the assignment ledger and the derived per-team capacities. All mutation
// goes through its methods and every operation is all-or-nothing, validate
// fully first, then mutate.
type Session struct {
	ID      uuid.UUID
	Config  SessionConfig
	players []Player

	//to protect concurrent access to session state
	//very important for thread safety in concurrent environment (websockets)
	mu         sync.Mutex
	cursor     int
	ledger     Ledger
	capacities map[TeamID]TeamCapacity
	// proposed price for the current player, nil means no bid is pending.
	// Transient state only, committing always carries its own price
	pendingBid *float64
}

// Snapshot is the read-only view handed to presentation adapters.
// CurrentPlayer nil signals Auction Complete.
type Snapshot struct {
	SessionID     uuid.UUID
	CurrentPlayer *Player
	Cursor        int
	TotalPlayers  int
	PendingBid    *float64
	Assignments   []Assignment
	Capacities    map[TeamID]TeamCapacity
}

// NewSession creates a session over an ingested player queue, every real team
// starts with the uniform capacity from cfg, cursor at zero, ledger empty
func NewSession(id uuid.UUID, players []Player, cfg SessionConfig) (*Session, error) {
	if len(players) == 0 {
		return nil, ErrEmptyQueue
	}

	capacities := make(map[TeamID]TeamCapacity, len(realTeams))
	for _, team := range RealTeams() {
		capacities[team] = cfg.StartingCapacity()
	}

	s := &Session{
		ID:         id,
		Config:     cfg,
		players:    append([]Player(nil), players...),
		capacities: capacities,
	}

	log.Info("Auction session created",
		zap.String("sessionID", id.String()),
		zap.Int("players", len(players)),
		zap.Float64("startingPurse", cfg.StartingPurse),
	)
	return s, nil
}

// CurrentPlayer returns a copy of the player under the hammer, nil when the
// auction is complete
func (s *Session) CurrentPlayer() *Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentPlayerLocked()
}

func (s *Session) currentPlayerLocked() *Player {
	if s.cursor >= len(s.players) {
		return nil
	}
	p := s.players[s.cursor]
	return &p
}

// Cursor returns the index of the next unprocessed player
func (s *Session) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// ProposeBid records a proposed price for the current player without touching
// the ledger, the Pending -> AwaitingDecision transition
func (s *Session) ProposeBid(price float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cursor >= len(s.players) {
		log.Warn("Bid proposal rejected: auction complete",
			zap.String("sessionID", s.ID.String()),
			zap.Float64("price", price),
		)
		return StateError{Detail: "auction complete, no current player"}
	}
	if err := validatePrice(price); err != nil {
		log.Warn("Bid proposal rejected: bad price",
			zap.String("sessionID", s.ID.String()),
			zap.Float64("price", price),
		)
		return err
	}

	s.pendingBid = &price
	log.Debug("Bid proposed",
		zap.String("sessionID", s.ID.String()),
		zap.String("player", s.players[s.cursor].Name),
		zap.Float64("price", price),
	)
	return nil
}

// CancelBid drops the pending proposal, the AwaitingDecision -> Pending
// transition, no ledger mutation and no cursor change
func (s *Session) CancelBid() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pendingBid = nil
	log.Debug("Pending bid cancelled", zap.String("sessionID", s.ID.String()))
}

// Commit assigns the current player to team at price, appends to the ledger
// and advances the cursor. Passing TeamUnsold behaves like MarkUnsold.
//
// Commit deliberately does NOT check remaining purse or slots: over-capacity
// assignments are allowed and only surface through the derived capacities
// (the auctioneer override policy).
func (s *Session) Commit(team TeamID, price float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if team == TeamUnsold {
		return s.markUnsoldLocked()
	}

	if s.cursor >= len(s.players) {
		log.Warn("Commit rejected: auction complete",
			zap.String("sessionID", s.ID.String()),
			zap.String("team", string(team)),
		)
		return StateError{Detail: "auction complete, no current player"}
	}
	if !team.IsReal() {
		log.Warn("Commit rejected: unknown team",
			zap.String("sessionID", s.ID.String()),
			zap.String("team", string(team)),
		)
		return ValidationError{Field: "team", Detail: fmt.Sprintf("%q is not a participating team", team)}
	}
	if err := validatePrice(price); err != nil {
		log.Warn("Commit rejected: bad price",
			zap.String("sessionID", s.ID.String()),
			zap.String("team", string(team)),
			zap.Float64("price", price),
		)
		return err
	}

	player := s.players[s.cursor]
	s.ledger.Append(Assignment{
		PlayerIndex: s.cursor,
		Player:      player,
		Team:        team,
		Price:       price,
	})
	s.cursor++
	s.pendingBid = nil

	// only this team's derivation changed, so recompute just its slice of the
	// ledger. Same pure fold the full recompute uses, never separate logic.
	s.capacities[team] = DeriveCapacity(s.Config.StartingCapacity(), s.ledger.ForTeam(team))

	log.Info("Assignment committed",
		zap.String("sessionID", s.ID.String()),
		zap.String("player", player.Name),
		zap.String("team", string(team)),
		zap.Float64("price", price),
		zap.Int("cursor", s.cursor),
	)
	return nil
}

// MarkUnsold records the current player as unsold at price zero and advances
// the cursor, no team capacity changes
func (s *Session) MarkUnsold() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.markUnsoldLocked()
}

func (s *Session) markUnsoldLocked() error {
	if s.cursor >= len(s.players) {
		log.Warn("Mark unsold rejected: auction complete",
			zap.String("sessionID", s.ID.String()),
		)
		return StateError{Detail: "auction complete, no current player"}
	}

	player := s.players[s.cursor]
	s.ledger.Append(Assignment{
		PlayerIndex: s.cursor,
		Player:      player,
		Team:        TeamUnsold,
		Price:       0,
	})
	s.cursor++
	s.pendingBid = nil

	log.Info("Player marked unsold",
		zap.String("sessionID", s.ID.String()),
		zap.String("player", player.Name),
		zap.Int("cursor", s.cursor),
	)
	return nil
}

// Correct replaces the decision at a processed ledger index with a new team
// and price, then re-derives EVERY real team's capacity from the starting
// capacities and the full ledger. The full recompute is mandatory, not an
// optimization: a correction can move a player between teams, so no
// team-local cache survives it. This keeps the invariant that capacities
// always equal DeriveCapacity(start, ledger) for every team.
func (s *Session) Correct(index int, team TeamID, price float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= s.cursor {
		log.Warn("Correction rejected: index outside processed range",
			zap.String("sessionID", s.ID.String()),
			zap.Int("index", index),
			zap.Int("cursor", s.cursor),
		)
		return StateError{Detail: fmt.Sprintf("correction index %d outside processed range [0,%d)", index, s.cursor)}
	}

	if team == TeamUnsold {
		price = 0
	} else {
		if !team.IsReal() {
			log.Warn("Correction rejected: unknown team",
				zap.String("sessionID", s.ID.String()),
				zap.Int("index", index),
				zap.String("team", string(team)),
			)
			return ValidationError{Field: "team", Detail: fmt.Sprintf("%q is not a participating team", team)}
		}
		if err := validatePrice(price); err != nil {
			log.Warn("Correction rejected: bad price",
				zap.String("sessionID", s.ID.String()),
				zap.Int("index", index),
				zap.Float64("price", price),
			)
			return err
		}
	}

	prev, _ := s.ledger.At(index)
	s.ledger.ReplaceAt(index, team, price)
	s.recomputeAllLocked()

	log.Info("Assignment corrected",
		zap.String("sessionID", s.ID.String()),
		zap.Int("index", index),
		zap.String("player", prev.Player.Name),
		zap.String("previousTeam", string(prev.Team)),
		zap.Float64("previousPrice", prev.Price),
		zap.String("team", string(team)),
		zap.Float64("price", price),
	)
	return nil
}

// recomputeAllLocked re-derives every real team from scratch: constant
// starting capacities plus current ledger contents, nothing else
func (s *Session) recomputeAllLocked() {
	start := s.Config.StartingCapacity()
	for _, team := range RealTeams() {
		s.capacities[team] = DeriveCapacity(start, s.ledger.ForTeam(team))
	}
}

// Snapshot returns an immutable copy of the observable session state
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	capacities := make(map[TeamID]TeamCapacity, len(s.capacities))
	for team, cap := range s.capacities {
		capacities[team] = cap
	}

	var pending *float64
	if s.pendingBid != nil {
		p := *s.pendingBid
		pending = &p
	}

	return Snapshot{
		SessionID:     s.ID,
		CurrentPlayer: s.currentPlayerLocked(),
		Cursor:        s.cursor,
		TotalPlayers:  len(s.players),
		PendingBid:    pending,
		Assignments:   s.ledger.Entries(),
		Capacities:    capacities,
	}
}

func validatePrice(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return ValidationError{Field: "price", Detail: "must be a finite number"}
	}
	if price < 0 {
		return ValidationError{Field: "price", Detail: "cannot be negative"}
	}
	return nil
}
