package application

import (
	"github.com/cristianortiz/iplAuctioneer/internal/auction/domain"
	"github.com/google/uuid"
)

// PlayerDTO exposes one queue item to the UI/WS
type PlayerDTO struct {
	Name      string  `json:"name"`
	BasePrice float64 `json:"base_price"`
	Foreigner bool    `json:"foreigner"`
	Role      string  `json:"role"`
	Value     float64 `json:"value"`
}

// AssignmentDTO is one ledger entry as shown in the assignments list
type AssignmentDTO struct {
	Index      int     `json:"index"`
	PlayerName string  `json:"player_name"`
	Role       string  `json:"role"`
	Foreigner  bool    `json:"foreigner"`
	Team       string  `json:"team"`
	Price      float64 `json:"price"`
}

// TeamCapacityDTO is a team's derived remaining capacity plus the spend and
// value aggregates the dashboard cards display
type TeamCapacityDTO struct {
	Purse        float64 `json:"purse"`
	TotalSlots   int     `json:"total_slots"`
	BatterSlots  int     `json:"batter_slots"`
	BowlerSlots  int     `json:"bowler_slots"`
	ForeignSlots int     `json:"foreign_slots"`
	PlayerCount  int     `json:"player_count"`
	Spent        float64 `json:"spent"`
	TotalValue   float64 `json:"total_value"`
}

// SnapshotDTO is the full read-only engine view broadcast after every state
// change, current_player null means Auction Complete
type SnapshotDTO struct {
	SessionID     uuid.UUID                  `json:"session_id"`
	CurrentPlayer *PlayerDTO                 `json:"current_player"`
	Cursor        int                        `json:"cursor"`
	TotalPlayers  int                        `json:"total_players"`
	Complete      bool                       `json:"complete"`
	PendingBid    *float64                   `json:"pending_bid,omitempty"`
	Assignments   []AssignmentDTO            `json:"assignments"`
	Teams         map[string]TeamCapacityDTO `json:"teams"`
}

// NewSnapshotDTO maps a domain snapshot into the wire view
func NewSnapshotDTO(snap domain.Snapshot) *SnapshotDTO {
	dto := &SnapshotDTO{
		SessionID:    snap.SessionID,
		Cursor:       snap.Cursor,
		TotalPlayers: snap.TotalPlayers,
		Complete:     snap.CurrentPlayer == nil,
		PendingBid:   snap.PendingBid,
		Assignments:  make([]AssignmentDTO, 0, len(snap.Assignments)),
		Teams:        make(map[string]TeamCapacityDTO, len(snap.Capacities)),
	}

	if snap.CurrentPlayer != nil {
		dto.CurrentPlayer = &PlayerDTO{
			Name:      snap.CurrentPlayer.Name,
			BasePrice: snap.CurrentPlayer.BasePrice,
			Foreigner: snap.CurrentPlayer.Foreigner,
			Role:      string(snap.CurrentPlayer.Role),
			Value:     snap.CurrentPlayer.Value,
		}
	}

	for _, a := range snap.Assignments {
		dto.Assignments = append(dto.Assignments, AssignmentDTO{
			Index:      a.PlayerIndex,
			PlayerName: a.Player.Name,
			Role:       string(a.Player.Role),
			Foreigner:  a.Player.Foreigner,
			Team:       string(a.Team),
			Price:      a.Price,
		})
	}

	// spend/value aggregates per team, unsold entries never count
	spent := make(map[domain.TeamID]float64)
	value := make(map[domain.TeamID]float64)
	count := make(map[domain.TeamID]int)
	for _, a := range snap.Assignments {
		if a.Team == domain.TeamUnsold {
			continue
		}
		spent[a.Team] += a.Price
		value[a.Team] += a.Player.Value
		count[a.Team]++
	}

	for team, cap := range snap.Capacities {
		dto.Teams[string(team)] = TeamCapacityDTO{
			Purse:        cap.Purse,
			TotalSlots:   cap.TotalSlots,
			BatterSlots:  cap.BatterSlots,
			BowlerSlots:  cap.BowlerSlots,
			ForeignSlots: cap.ForeignSlots,
			PlayerCount:  count[team],
			Spent:        spent[team],
			TotalValue:   value[team],
		}
	}

	return dto
}
