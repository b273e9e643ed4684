// Package intake turns a raw tabular player source into the validated queue
// the auction engine consumes at session start. It owns all parsing and
// column-mapping concerns, nothing malformed ever reaches the engine.
package intake

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cristianortiz/iplAuctioneer/internal/auction/domain"
	"github.com/cristianortiz/iplAuctioneer/internal/shared/logger"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// ErrNoRecords means the source parsed cleanly but produced zero players
var ErrNoRecords = errors.New("no players found in file")

// requiredColumns are matched case-insensitively against the header row
var requiredColumns = []string{"name", "baseprice", "foreigner", "type", "value"}

// MissingColumnsError reports required header columns absent from the source
type MissingColumnsError struct {
	Columns []string
}

func (e MissingColumnsError) Error() string {
	return "missing required columns: " + strings.Join(e.Columns, ", ")
}

// Is allows errors.Is() to match any MissingColumnsError
func (e MissingColumnsError) Is(target error) bool {
	_, ok := target.(MissingColumnsError)
	return ok
}

// EmptyRowError reports a data row lacking required data, Row is the 1-based
// file line number (the header is line 1)
type EmptyRowError struct {
	Row int
}

func (e EmptyRowError) Error() string {
	return fmt.Sprintf("row %d: missing required data", e.Row)
}

// Is allows errors.Is() to match any EmptyRowError
func (e EmptyRowError) Is(target error) bool {
	_, ok := target.(EmptyRowError)
	return ok
}

// ParsePlayers reads a CSV source with columns name, basePrice, foreigner,
// type, value (any casing, any order) and returns the validated player queue
// in file order. On any error no players are returned, so a running session
// can never be replaced by a half-parsed one.
func ParsePlayers(r io.Reader) ([]domain.Player, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoRecords
		}
		return nil, fmt.Errorf("intake: reading header: %w", err)
	}

	// map lowercased header name -> column index
	columns := make(map[string]int, len(header))
	for i, h := range header {
		columns[strings.ToLower(strings.TrimSpace(h))] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := columns[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		log.Warn("Intake rejected: missing columns", zap.Strings("columns", missing))
		return nil, MissingColumnsError{Columns: missing}
	}

	var players []domain.Player
	line := 1 // header consumed
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("intake: reading row %d: %w", line, err)
		}
		if isBlank(record) {
			continue
		}

		player, ok := parsePlayer(record, columns)
		if !ok {
			log.Warn("Intake rejected: bad row", zap.Int("row", line))
			return nil, EmptyRowError{Row: line}
		}
		players = append(players, player)
	}

	if len(players) == 0 {
		return nil, ErrNoRecords
	}

	log.Info("Intake parsed player queue", zap.Int("players", len(players)))
	return players, nil
}

func parsePlayer(record []string, columns map[string]int) (domain.Player, bool) {
	field := func(name string) string {
		i := columns[name]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	name := field("name")
	rawType := field("type")
	if name == "" || rawType == "" {
		return domain.Player{}, false
	}

	basePrice, err := strconv.ParseFloat(field("baseprice"), 64)
	if err != nil {
		return domain.Player{}, false
	}
	value, err := strconv.ParseFloat(field("value"), 64)
	if err != nil {
		return domain.Player{}, false
	}

	return domain.Player{
		Name:      name,
		BasePrice: basePrice,
		Foreigner: strings.EqualFold(field("foreigner"), "true"),
		Role:      domain.ParseRole(rawType),
		Value:     value,
	}, true
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
