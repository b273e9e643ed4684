package intake_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianortiz/iplAuctioneer/internal/auction/domain"
	"github.com/cristianortiz/iplAuctioneer/internal/auction/infra/intake"
)

const sampleCSV = `name,basePrice,foreigner,type,value
Virat Kohli,2,false,batsman,25
Jasprit Bumrah,2,false,bowler,20
Rashid Khan,1.5,TRUE,all-rounder,15
MS Dhoni,2,false,wicketkeeper,18
`

func TestParsePlayers_HappyPath(t *testing.T) {
	players, err := intake.ParsePlayers(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, players, 4)

	assert.Equal(t, domain.Player{
		Name:      "Virat Kohli",
		BasePrice: 2,
		Foreigner: false,
		Role:      domain.RoleBatter,
		Value:     25,
	}, players[0])

	assert.True(t, players[2].Foreigner, "foreigner parses case-insensitively")
	assert.Equal(t, domain.RoleAllRounder, players[2].Role)
	assert.Equal(t, domain.RoleOther, players[3].Role, "unknown type maps to other")
}

func TestParsePlayers_HeaderCasingAndOrder(t *testing.T) {
	csv := "VALUE,Type,Foreigner,BasePrice,NAME\n20,bowler,true,1.5,Trent Boult\n"

	players, err := intake.ParsePlayers(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "Trent Boult", players[0].Name)
	assert.Equal(t, 1.5, players[0].BasePrice)
	assert.Equal(t, 20.0, players[0].Value)
	assert.True(t, players[0].Foreigner)
}

func TestParsePlayers_MissingColumns(t *testing.T) {
	csv := "name,basePrice,value\nVirat Kohli,2,25\n"

	_, err := intake.ParsePlayers(strings.NewReader(csv))

	var missingErr intake.MissingColumnsError
	require.ErrorAs(t, err, &missingErr)
	assert.ElementsMatch(t, []string{"foreigner", "type"}, missingErr.Columns)
}

func TestParsePlayers_RowMissingType(t *testing.T) {
	csv := "name,basePrice,foreigner,type,value\nVirat Kohli,2,false,batsman,25\nRohit Sharma,2,false,,20\n"

	_, err := intake.ParsePlayers(strings.NewReader(csv))

	var rowErr intake.EmptyRowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, 3, rowErr.Row, "row numbers are 1-based file lines, header included")
}

func TestParsePlayers_RowMissingName(t *testing.T) {
	csv := "name,basePrice,foreigner,type,value\n,2,false,batsman,25\n"

	_, err := intake.ParsePlayers(strings.NewReader(csv))
	assert.ErrorIs(t, err, intake.EmptyRowError{})
}

func TestParsePlayers_NonNumericPrice(t *testing.T) {
	csv := "name,basePrice,foreigner,type,value\nVirat Kohli,abc,false,batsman,25\n"

	_, err := intake.ParsePlayers(strings.NewReader(csv))
	assert.ErrorIs(t, err, intake.EmptyRowError{})
}

func TestParsePlayers_NoRecords(t *testing.T) {
	_, err := intake.ParsePlayers(strings.NewReader("name,basePrice,foreigner,type,value\n"))
	assert.ErrorIs(t, err, intake.ErrNoRecords)

	_, err = intake.ParsePlayers(strings.NewReader(""))
	assert.ErrorIs(t, err, intake.ErrNoRecords)
}

func TestParsePlayers_SkipsBlankLines(t *testing.T) {
	csv := "name,basePrice,foreigner,type,value\nVirat Kohli,2,false,batsman,25\n\n"

	players, err := intake.ParsePlayers(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Len(t, players, 1)
}
