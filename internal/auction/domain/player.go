package domain

import "strings"

// Role is the closed set of player roles used by quota accounting
type Role string

const (
	RoleBatter     Role = "batter"
	RoleBowler     Role = "bowler"
	RoleAllRounder Role = "all-rounder"
	RoleOther      Role = "other"
)

// ParseRole maps the raw CSV type column to a Role, values are matched
// case-insensitively and anything unrecognized becomes RoleOther so a typo
// in the source file can never silently hit a role-quota branch
func ParseRole(raw string) Role {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "batsman", "batter":
		return RoleBatter
	case "bowler":
		return RoleBowler
	case "all-rounder", "allrounder", "all rounder":
		return RoleAllRounder
	default:
		return RoleOther
	}
}

// Player is one auctionable item of the queue, immutable once ingested
type Player struct {
	Name      string
	BasePrice float64
	Foreigner bool
	Role      Role
	Value     float64
}
