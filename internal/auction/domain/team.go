package domain

import "strings"

// TeamID identifies one of the ten participating franchises, plus the
// TeamUnsold sentinel which is not a real team and is excluded from all
// capacity accounting
type TeamID string

const (
	TeamRCB  TeamID = "RCB"
	TeamLSG  TeamID = "LSG"
	TeamGT   TeamID = "GT"
	TeamKKR  TeamID = "KKR"
	TeamSRH  TeamID = "SRH"
	TeamDC   TeamID = "DC"
	TeamRR   TeamID = "RR"
	TeamPBKS TeamID = "PBKS"
	TeamCSK  TeamID = "CSK"
	TeamMI   TeamID = "MI"

	// TeamUnsold marks a player that went unsold, it never owns capacity
	TeamUnsold TeamID = "Unsold"
)

var realTeams = []TeamID{
	TeamRCB, TeamLSG, TeamGT, TeamKKR, TeamSRH,
	TeamDC, TeamRR, TeamPBKS, TeamCSK, TeamMI,
}

// RealTeams returns the fixed roster of bidding teams in display order
func RealTeams() []TeamID {
	teams := make([]TeamID, len(realTeams))
	copy(teams, realTeams)
	return teams
}

// IsReal reports whether t is a bidding team (not the Unsold sentinel)
func (t TeamID) IsReal() bool {
	for _, rt := range realTeams {
		if t == rt {
			return true
		}
	}
	return false
}

// ParseTeamID resolves a raw team string case-insensitively, the Unsold
// sentinel is accepted too, ok is false for anything outside the closed set
func ParseTeamID(raw string) (TeamID, bool) {
	trimmed := strings.TrimSpace(raw)
	if strings.EqualFold(trimmed, string(TeamUnsold)) {
		return TeamUnsold, true
	}
	for _, rt := range realTeams {
		if strings.EqualFold(trimmed, string(rt)) {
			return rt, true
		}
	}
	return "", false
}
