package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gowager/internal/domain"
	"github.com/iho/gowager/internal/usecase"
)

// CompetitorRepository implements usecase.CompetitorRepository.
type CompetitorRepository struct {
	pool *pgxpool.Pool
}

// NewCompetitorRepository creates a new CompetitorRepository.
func NewCompetitorRepository(pool *pgxpool.Pool) *CompetitorRepository {
	return &CompetitorRepository{pool: pool}
}

const competitorColumns = `id, tag, rating, wins, losses, total_matches, created_at, updated_at`

// Create inserts a new competitor.
func (r *CompetitorRepository) Create(ctx context.Context, competitor *domain.Competitor) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO competitors (id, tag, rating, wins, losses, total_matches, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		competitor.ID, competitor.Tag, competitor.Rating, competitor.Wins, competitor.Losses,
		competitor.TotalMatches, competitor.CreatedAt, competitor.UpdatedAt,
	)

	return err
}

// GetByID retrieves a competitor by ID.
func (r *CompetitorRepository) GetByID(ctx context.Context, id string) (*domain.Competitor, error) {
	return scanCompetitor(r.pool.QueryRow(ctx,
		`SELECT `+competitorColumns+` FROM competitors WHERE id = $1`, id))
}

// GetByIDsForUpdate locks and retrieves competitors. The caller passes ids
// in sorted order to keep the lock order deterministic across transactions.
func (r *CompetitorRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Competitor, error) {
	rows, err := tx.(*Tx).PgxTx().Query(ctx,
		`SELECT `+competitorColumns+` FROM competitors WHERE id = ANY($1) ORDER BY id FOR UPDATE`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var competitors []*domain.Competitor
	for rows.Next() {
		competitor, err := scanCompetitor(rows)
		if err != nil {
			return nil, err
		}
		competitors = append(competitors, competitor)
	}

	return competitors, rows.Err()
}

// UpdateRecord writes a competitor's rating and win/loss record.
func (r *CompetitorRepository) UpdateRecord(ctx context.Context, tx usecase.Transaction, c *domain.Competitor, updatedAt time.Time) error {
	tag, err := tx.(*Tx).PgxTx().Exec(ctx, `
		UPDATE competitors
		SET rating = $2, wins = $3, losses = $4, total_matches = $5, updated_at = $6
		WHERE id = $1`,
		c.ID, c.Rating, c.Wins, c.Losses, c.TotalMatches, updatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCompetitorNotFound
	}

	return nil
}

func scanCompetitor(row pgx.Row) (*domain.Competitor, error) {
	var c domain.Competitor
	err := row.Scan(&c.ID, &c.Tag, &c.Rating, &c.Wins, &c.Losses, &c.TotalMatches, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCompetitorNotFound
		}

		return nil, err
	}

	return &c, nil
}
