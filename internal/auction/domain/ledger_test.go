package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianortiz/iplAuctioneer/internal/auction/domain"
)

func TestLedger_ReplaceAtPreservesPlayerAndOrder(t *testing.T) {
	var l domain.Ledger
	l.Append(domain.Assignment{PlayerIndex: 0, Player: domain.Player{Name: "A"}, Team: domain.TeamMI, Price: 1})
	l.Append(domain.Assignment{PlayerIndex: 1, Player: domain.Player{Name: "B"}, Team: domain.TeamMI, Price: 2})
	l.Append(domain.Assignment{PlayerIndex: 2, Player: domain.Player{Name: "C"}, Team: domain.TeamCSK, Price: 3})

	ok := l.ReplaceAt(1, domain.TeamKKR, 9)
	require.True(t, ok)
	require.Equal(t, 3, l.Len())

	entry, ok := l.At(1)
	require.True(t, ok)
	assert.Equal(t, "B", entry.Player.Name, "correction never changes player identity")
	assert.Equal(t, 1, entry.PlayerIndex)
	assert.Equal(t, domain.TeamKKR, entry.Team)
	assert.Equal(t, 9.0, entry.Price)

	// neighbours untouched
	first, _ := l.At(0)
	last, _ := l.At(2)
	assert.Equal(t, domain.TeamMI, first.Team)
	assert.Equal(t, domain.TeamCSK, last.Team)
}

func TestLedger_ReplaceAtOutOfRange(t *testing.T) {
	var l domain.Ledger
	l.Append(domain.Assignment{Player: domain.Player{Name: "A"}, Team: domain.TeamMI})

	assert.False(t, l.ReplaceAt(-1, domain.TeamKKR, 1))
	assert.False(t, l.ReplaceAt(1, domain.TeamKKR, 1))
}

func TestLedger_ForTeamKeepsLedgerOrder(t *testing.T) {
	var l domain.Ledger
	l.Append(domain.Assignment{PlayerIndex: 0, Player: domain.Player{Name: "A"}, Team: domain.TeamMI, Price: 1})
	l.Append(domain.Assignment{PlayerIndex: 1, Player: domain.Player{Name: "B"}, Team: domain.TeamUnsold})
	l.Append(domain.Assignment{PlayerIndex: 2, Player: domain.Player{Name: "C"}, Team: domain.TeamMI, Price: 3})

	mi := l.ForTeam(domain.TeamMI)
	require.Len(t, mi, 2)
	assert.Equal(t, "A", mi[0].Player.Name)
	assert.Equal(t, "C", mi[1].Player.Name)

	unsold := l.ForTeam(domain.TeamUnsold)
	require.Len(t, unsold, 1)
	assert.Equal(t, "B", unsold[0].Player.Name)
}

func TestLedger_EntriesReturnsCopy(t *testing.T) {
	var l domain.Ledger
	l.Append(domain.Assignment{Player: domain.Player{Name: "A"}, Team: domain.TeamMI, Price: 1})

	entries := l.Entries()
	entries[0].Team = domain.TeamCSK

	original, _ := l.At(0)
	assert.Equal(t, domain.TeamMI, original.Team)
}
