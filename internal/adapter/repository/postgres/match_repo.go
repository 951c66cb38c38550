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

// MatchRepository implements usecase.MatchRepository.
type MatchRepository struct {
	pool *pgxpool.Pool
}

// NewMatchRepository creates a new MatchRepository.
func NewMatchRepository(pool *pgxpool.Pool) *MatchRepository {
	return &MatchRepository{pool: pool}
}

const matchColumns = `id, competitor_a_id, competitor_b_id, status, wagering_open,
	winner_id, score_a, score_b, ratings_applied, scheduled_at, created_at, updated_at`

// Create inserts a new match.
func (r *MatchRepository) Create(ctx context.Context, match *domain.Match) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO matches
			(id, competitor_a_id, competitor_b_id, status, wagering_open,
			 winner_id, score_a, score_b, ratings_applied, scheduled_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		match.ID, match.CompetitorAID, match.CompetitorBID, match.Status, match.WageringOpen,
		match.WinnerID, match.ScoreA, match.ScoreB, match.RatingsApplied,
		match.ScheduledAt, match.CreatedAt, match.UpdatedAt,
	)

	return err
}

// GetByID retrieves a match by ID.
func (r *MatchRepository) GetByID(ctx context.Context, id string) (*domain.Match, error) {
	return scanMatch(r.pool.QueryRow(ctx,
		`SELECT `+matchColumns+` FROM matches WHERE id = $1`, id))
}

// GetByIDForUpdate retrieves a match by ID with a FOR UPDATE lock. This lock
// serializes wager placement and settlement per match.
func (r *MatchRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Match, error) {
	return scanMatch(tx.(*Tx).PgxTx().QueryRow(ctx,
		`SELECT `+matchColumns+` FROM matches WHERE id = $1 FOR UPDATE`, id))
}

// Update writes the mutable match fields inside the caller's transaction.
func (r *MatchRepository) Update(ctx context.Context, tx usecase.Transaction, match *domain.Match) error {
	tag, err := tx.(*Tx).PgxTx().Exec(ctx, `
		UPDATE matches
		SET status = $2, wagering_open = $3, winner_id = $4, score_a = $5, score_b = $6, updated_at = $7
		WHERE id = $1`,
		match.ID, match.Status, match.WageringOpen, match.WinnerID, match.ScoreA, match.ScoreB, match.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMatchNotFound
	}

	return nil
}

// SetRatingsApplied flips the one-time rating flag.
func (r *MatchRepository) SetRatingsApplied(ctx context.Context, tx usecase.Transaction, id string, updatedAt time.Time) error {
	tag, err := tx.(*Tx).PgxTx().Exec(ctx,
		`UPDATE matches SET ratings_applied = TRUE, updated_at = $2 WHERE id = $1`,
		id, updatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMatchNotFound
	}

	return nil
}

// List retrieves matches, optionally filtered by status, newest first.
func (r *MatchRepository) List(ctx context.Context, status *domain.MatchStatus, limit, offset int) ([]*domain.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches`
	args := []any{limit, offset}
	if status != nil {
		query += ` WHERE status = $3`
		args = append(args, *status)
	}
	query += ` ORDER BY scheduled_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []*domain.Match
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, match)
	}

	return matches, rows.Err()
}

func scanMatch(row pgx.Row) (*domain.Match, error) {
	var match domain.Match
	err := row.Scan(
		&match.ID, &match.CompetitorAID, &match.CompetitorBID, &match.Status, &match.WageringOpen,
		&match.WinnerID, &match.ScoreA, &match.ScoreB, &match.RatingsApplied,
		&match.ScheduledAt, &match.CreatedAt, &match.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}

		return nil, err
	}

	return &match, nil
}
