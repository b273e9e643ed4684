package domain

// SessionConfig holds the starting capacity applied uniformly to every real
// team when a session is created
type SessionConfig struct {
	StartingPurse float64
	TotalSlots    int
	BatterSlots   int
	BowlerSlots   int
	ForeignSlots  int
}

// DefaultSessionConfig returns the standard franchise limits
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		StartingPurse: 120,
		TotalSlots:    15,
		BatterSlots:   7,
		BowlerSlots:   4,
		ForeignSlots:  5,
	}
}

// StartingCapacity builds the capacity a team holds before any assignment
func (c SessionConfig) StartingCapacity() TeamCapacity {
	return TeamCapacity{
		Purse:        c.StartingPurse,
		TotalSlots:   c.TotalSlots,
		BatterSlots:  c.BatterSlots,
		BowlerSlots:  c.BowlerSlots,
		ForeignSlots: c.ForeignSlots,
	}
}

// TeamCapacity is a team's remaining resources. It is never stored as an
// independent source of truth, it is always derived from the starting
// capacity plus that team's slice of the ledger (see DeriveCapacity)
type TeamCapacity struct {
	Purse        float64
	TotalSlots   int
	BatterSlots  int
	BowlerSlots  int
	ForeignSlots int
}

// DeriveCapacity folds a team's assignments, in ledger order, over its
// starting capacity. Pure and deterministic: same inputs, same output.
//
// Accounting policies, all load-bearing:
//   - Purse is plain subtraction and may go negative, an over-budget
//     correction stays visible instead of being hidden by a clamp.
//   - Role and foreign quotas clamp at zero, an exhausted quota cannot be
//     decremented further and does not block the assignment itself.
//   - An all-rounder consumes a batter AND a bowler slot in the same step,
//     each side clamped independently.
//   - TotalSlots is starting total minus assignment count, unclamped, it is
//     a count and not a floor-bounded resource.
func DeriveCapacity(start TeamCapacity, assignments []Assignment) TeamCapacity {
	result := start
	for _, a := range assignments {
		result.Purse -= a.Price

		if a.Player.Foreigner && result.ForeignSlots > 0 {
			result.ForeignSlots--
		}

		switch a.Player.Role {
		case RoleBatter:
			if result.BatterSlots > 0 {
				result.BatterSlots--
			}
		case RoleBowler:
			if result.BowlerSlots > 0 {
				result.BowlerSlots--
			}
		case RoleAllRounder:
			if result.BatterSlots > 0 {
				result.BatterSlots--
			}
			if result.BowlerSlots > 0 {
				result.BowlerSlots--
			}
		case RoleOther:
			// consumes a roster slot only, no role quota involved
		}
	}
	result.TotalSlots = start.TotalSlots - len(assignments)
	return result
}
