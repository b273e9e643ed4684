package postgres

import (
	"context"

	"github.com/cristianortiz/iplAuctioneer/internal/auction/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AssignmentRepository implements domain.AssignmentRepository interface
type AssignmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssignmentRepository creates a new instance of AssignmentRepository
func NewAssignmentRepository(pool *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{pool: pool}
}

// Save upserts the ledger entry at (session, index). The conflict target is
// what makes corrections overwrite the decision in place while the player
// columns stay what they were at commit time.
func (r *AssignmentRepository) Save(ctx context.Context, tx pgx.Tx, sessionID uuid.UUID, a domain.Assignment) error {
	query := `
        INSERT INTO auction_assignments (session_id, idx, player_name, player_role, foreigner, base_price, player_value, team, price)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (session_id, idx) DO UPDATE
        SET
            team = EXCLUDED.team,
            price = EXCLUDED.price,
            updated_at = NOW();
    `
	_, err := tx.Exec(ctx, query,
		sessionID,
		a.PlayerIndex,
		a.Player.Name,
		string(a.Player.Role),
		a.Player.Foreigner,
		a.Player.BasePrice,
		a.Player.Value,
		string(a.Team),
		a.Price,
	)
	return err
}

// GetBySession recovers a session's ledger entries in processing order
func (r *AssignmentRepository) GetBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.Assignment, error) {
	query := `
        SELECT idx, player_name, player_role, foreigner, base_price, player_value, team, price
        FROM auction_assignments
        WHERE session_id = $1
        ORDER BY idx
    `
	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []domain.Assignment
	for rows.Next() {
		var a domain.Assignment
		var role, team string
		err := rows.Scan(
			&a.PlayerIndex,
			&a.Player.Name,
			&role,
			&a.Player.Foreigner,
			&a.Player.BasePrice,
			&a.Player.Value,
			&team,
			&a.Price,
		)
		if err != nil {
			return nil, err
		}
		a.Player.Role = domain.Role(role)
		a.Team = domain.TeamID(team)
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}
