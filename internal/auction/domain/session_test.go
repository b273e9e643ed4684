package domain_test

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianortiz/iplAuctioneer/internal/auction/domain"
)

func testPlayers() []domain.Player {
	return []domain.Player{
		{Name: "Virat Kohli", BasePrice: 2, Role: domain.RoleBatter, Value: 25},
		{Name: "Jasprit Bumrah", BasePrice: 2, Role: domain.RoleBowler, Value: 20},
		{Name: "Rashid Khan", BasePrice: 1.5, Role: domain.RoleAllRounder, Foreigner: true, Value: 15},
		{Name: "Rohit Sharma", BasePrice: 2, Role: domain.RoleBatter, Value: 20},
	}
}

func newTestSession(t *testing.T) *domain.Session {
	t.Helper()
	s, err := domain.NewSession(uuid.New(), testPlayers(), domain.DefaultSessionConfig())
	require.NoError(t, err)
	return s
}

// assertDerivedConsistency re-checks the engine's core invariant: the
// capacity of every real team equals an independent derivation from the
// starting capacity and that team's slice of the ledger
func assertDerivedConsistency(t *testing.T, s *domain.Session) {
	t.Helper()
	snap := s.Snapshot()
	cfg := s.Config
	for _, team := range domain.RealTeams() {
		var forTeam []domain.Assignment
		for _, a := range snap.Assignments {
			if a.Team == team {
				forTeam = append(forTeam, a)
			}
		}
		expected := domain.DeriveCapacity(cfg.StartingCapacity(), forTeam)
		assert.Equal(t, expected, snap.Capacities[team], "capacity of %s drifted from ledger derivation", team)
	}
}

func TestNewSession_EmptyQueue(t *testing.T) {
	_, err := domain.NewSession(uuid.New(), nil, domain.DefaultSessionConfig())
	assert.ErrorIs(t, err, domain.ErrEmptyQueue)
}

func TestSession_CommitAdvancesAndDerives(t *testing.T) {
	s := newTestSession(t)

	require.NoError(t, s.Commit(domain.TeamRCB, 2))

	snap := s.Snapshot()
	assert.Equal(t, 1, snap.Cursor)
	require.Len(t, snap.Assignments, 1)
	assert.Equal(t, "Virat Kohli", snap.Assignments[0].Player.Name)

	assert.Equal(t, domain.TeamCapacity{
		Purse:        118,
		TotalSlots:   14,
		BatterSlots:  6,
		BowlerSlots:  4,
		ForeignSlots: 5,
	}, snap.Capacities[domain.TeamRCB])

	// every other team untouched
	assert.Equal(t, domain.DefaultSessionConfig().StartingCapacity(), snap.Capacities[domain.TeamMI])
	assertDerivedConsistency(t, s)
}

func TestSession_CommitValidation(t *testing.T) {
	tests := []struct {
		name  string
		team  domain.TeamID
		price float64
	}{
		{name: "negative price", team: domain.TeamMI, price: -1},
		{name: "NaN price", team: domain.TeamMI, price: math.NaN()},
		{name: "infinite price", team: domain.TeamMI, price: math.Inf(1)},
		{name: "unknown team", team: domain.TeamID("XYZ"), price: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t)
			err := s.Commit(tt.team, tt.price)

			assert.ErrorIs(t, err, domain.ValidationError{})

			// no mutation on failure
			snap := s.Snapshot()
			assert.Equal(t, 0, snap.Cursor)
			assert.Empty(t, snap.Assignments)
		})
	}
}

func TestSession_CommitPastAuctionComplete(t *testing.T) {
	s := newTestSession(t)
	for range testPlayers() {
		require.NoError(t, s.MarkUnsold())
	}

	snap := s.Snapshot()
	assert.Nil(t, snap.CurrentPlayer, "nil current player signals auction complete")

	err := s.Commit(domain.TeamMI, 1)
	assert.ErrorIs(t, err, domain.StateError{})
	assert.Equal(t, len(testPlayers()), s.Cursor())
}

func TestSession_MarkUnsoldExcludedFromCapacity(t *testing.T) {
	s := newTestSession(t)

	require.NoError(t, s.MarkUnsold())

	snap := s.Snapshot()
	assert.Equal(t, 1, snap.Cursor)
	require.Len(t, snap.Assignments, 1)
	assert.Equal(t, domain.TeamUnsold, snap.Assignments[0].Team)
	assert.Equal(t, 0.0, snap.Assignments[0].Price)

	start := domain.DefaultSessionConfig().StartingCapacity()
	for _, team := range domain.RealTeams() {
		assert.Equal(t, start, snap.Capacities[team], "unsold must not alter %s", team)
	}
}

func TestSession_CommitUnsoldTeamForcesZeroPrice(t *testing.T) {
	s := newTestSession(t)

	require.NoError(t, s.Commit(domain.TeamUnsold, 7))

	snap := s.Snapshot()
	require.Len(t, snap.Assignments, 1)
	assert.Equal(t, domain.TeamUnsold, snap.Assignments[0].Team)
	assert.Equal(t, 0.0, snap.Assignments[0].Price)
}

// Correction that moves a player between teams: the old owner is re-derived
// without the entry, the new owner with it, nothing else shifts
func TestSession_CorrectMovesPlayerBetweenTeams(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Commit(domain.TeamMI, 2))   // Kohli
	require.NoError(t, s.Commit(domain.TeamMI, 1))   // Bumrah
	require.NoError(t, s.Commit(domain.TeamMI, 1.5)) // Rashid

	require.NoError(t, s.Correct(1, domain.TeamCSK, 5))

	snap := s.Snapshot()
	require.Len(t, snap.Assignments, 3)
	assert.Equal(t, domain.TeamCSK, snap.Assignments[1].Team)
	assert.Equal(t, 5.0, snap.Assignments[1].Price)
	assert.Equal(t, "Jasprit Bumrah", snap.Assignments[1].Player.Name)

	cfg := domain.DefaultSessionConfig()
	expectedMI := domain.DeriveCapacity(cfg.StartingCapacity(), []domain.Assignment{
		snap.Assignments[0], snap.Assignments[2],
	})
	assert.Equal(t, expectedMI, snap.Capacities[domain.TeamMI])

	expectedCSK := domain.DeriveCapacity(cfg.StartingCapacity(), []domain.Assignment{
		snap.Assignments[1],
	})
	assert.Equal(t, expectedCSK, snap.Capacities[domain.TeamCSK])

	assertDerivedConsistency(t, s)
}

func TestSession_CorrectIndexOutsideProcessedRange(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Commit(domain.TeamMI, 2))

	for _, index := range []int{-1, 1, 5} {
		err := s.Correct(index, domain.TeamCSK, 1)
		assert.ErrorIs(t, err, domain.StateError{}, "index %d", index)
	}

	// ledger untouched
	snap := s.Snapshot()
	require.Len(t, snap.Assignments, 1)
	assert.Equal(t, domain.TeamMI, snap.Assignments[0].Team)
}

func TestSession_CorrectValidation(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Commit(domain.TeamMI, 2))

	err := s.Correct(0, domain.TeamID("nope"), 1)
	assert.ErrorIs(t, err, domain.ValidationError{})

	err = s.Correct(0, domain.TeamCSK, -3)
	assert.ErrorIs(t, err, domain.ValidationError{})

	snap := s.Snapshot()
	assert.Equal(t, domain.TeamMI, snap.Assignments[0].Team)
	assert.Equal(t, 2.0, snap.Assignments[0].Price)
}

func TestSession_CorrectToUnsoldRestoresCapacity(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Commit(domain.TeamMI, 2))

	require.NoError(t, s.Correct(0, domain.TeamUnsold, 99))

	snap := s.Snapshot()
	assert.Equal(t, domain.TeamUnsold, snap.Assignments[0].Team)
	assert.Equal(t, 0.0, snap.Assignments[0].Price, "unsold corrections force price to zero")
	assert.Equal(t, domain.DefaultSessionConfig().StartingCapacity(), snap.Capacities[domain.TeamMI])
}

func TestSession_ProposeAndCancelBid(t *testing.T) {
	s := newTestSession(t)

	require.NoError(t, s.ProposeBid(3.5))
	snap := s.Snapshot()
	require.NotNil(t, snap.PendingBid)
	assert.Equal(t, 3.5, *snap.PendingBid)
	assert.Equal(t, 0, snap.Cursor, "proposing never touches ledger or cursor")

	s.CancelBid()
	snap = s.Snapshot()
	assert.Nil(t, snap.PendingBid)
	assert.Equal(t, 0, snap.Cursor)
}

func TestSession_ProposeBidValidation(t *testing.T) {
	s := newTestSession(t)

	assert.ErrorIs(t, s.ProposeBid(-2), domain.ValidationError{})
	assert.ErrorIs(t, s.ProposeBid(math.NaN()), domain.ValidationError{})

	for range testPlayers() {
		require.NoError(t, s.MarkUnsold())
	}
	assert.ErrorIs(t, s.ProposeBid(1), domain.StateError{})
}

func TestSession_CommitClearsPendingBid(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.ProposeBid(3))
	require.NoError(t, s.Commit(domain.TeamGT, 3))

	snap := s.Snapshot()
	assert.Nil(t, snap.PendingBid)
}

func TestParseTeamID(t *testing.T) {
	team, ok := domain.ParseTeamID("csk")
	require.True(t, ok)
	assert.Equal(t, domain.TeamCSK, team)

	team, ok = domain.ParseTeamID(" UNSOLD ")
	require.True(t, ok)
	assert.Equal(t, domain.TeamUnsold, team)

	_, ok = domain.ParseTeamID("Chennai")
	assert.False(t, ok)
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		raw  string
		want domain.Role
	}{
		{"batsman", domain.RoleBatter},
		{"Batter", domain.RoleBatter},
		{"BOWLER", domain.RoleBowler},
		{"all-rounder", domain.RoleAllRounder},
		{"AllRounder", domain.RoleAllRounder},
		{"wicketkeeper", domain.RoleOther},
		{"", domain.RoleOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.ParseRole(tt.raw), "raw %q", tt.raw)
	}
}
