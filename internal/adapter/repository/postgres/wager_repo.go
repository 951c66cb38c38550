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

// WagerRepository implements usecase.WagerRepository.
type WagerRepository struct {
	pool *pgxpool.Pool
}

// NewWagerRepository creates a new WagerRepository.
func NewWagerRepository(pool *pgxpool.Pool) *WagerRepository {
	return &WagerRepository{pool: pool}
}

const wagerColumns = `id, account_id, match_id, market, side, stake, price,
	potential_payout, status, actual_payout, placed_at, settled_at`

// Create inserts a new wager inside the caller's transaction.
func (r *WagerRepository) Create(ctx context.Context, tx usecase.Transaction, wager *domain.Wager) error {
	_, err := tx.(*Tx).PgxTx().Exec(ctx, `
		INSERT INTO wagers
			(id, account_id, match_id, market, side, stake, price,
			 potential_payout, status, actual_payout, placed_at, settled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		wager.ID, wager.AccountID, wager.MatchID, wager.Market, wager.Side, wager.Stake,
		wager.Price, wager.PotentialPayout, wager.Status, wager.ActualPayout,
		wager.PlacedAt, wager.SettledAt,
	)

	return err
}

// GetByID retrieves a wager by ID.
func (r *WagerRepository) GetByID(ctx context.Context, id string) (*domain.Wager, error) {
	return scanWager(r.pool.QueryRow(ctx,
		`SELECT `+wagerColumns+` FROM wagers WHERE id = $1`, id))
}

// GetByIDForUpdate retrieves a wager by ID with a FOR UPDATE lock.
func (r *WagerRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Wager, error) {
	return scanWager(tx.(*Tx).PgxTx().QueryRow(ctx,
		`SELECT `+wagerColumns+` FROM wagers WHERE id = $1 FOR UPDATE`, id))
}

// ListPendingByMatch retrieves all pending wagers on a match.
func (r *WagerRepository) ListPendingByMatch(ctx context.Context, matchID string) ([]*domain.Wager, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+wagerColumns+` FROM wagers WHERE match_id = $1 AND status = $2 ORDER BY placed_at`,
		matchID, domain.WagerPending,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectWagers(rows)
}

// ListByAccount retrieves an account's wagers, newest first.
func (r *WagerRepository) ListByAccount(ctx context.Context, accountID string, status *domain.WagerStatus, limit, offset int) ([]*domain.Wager, error) {
	query := `SELECT ` + wagerColumns + ` FROM wagers WHERE account_id = $1`
	args := []any{accountID, limit, offset}
	if status != nil {
		query += ` AND status = $4`
		args = append(args, *status)
	}
	query += ` ORDER BY placed_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectWagers(rows)
}

// Settle transitions a wager out of Pending. The status predicate makes the
// write a compare-and-set: a wager that already left Pending is untouched
// and the method reports false.
func (r *WagerRepository) Settle(ctx context.Context, tx usecase.Transaction, id string, status domain.WagerStatus, actualPayout int64, settledAt time.Time) (bool, error) {
	tag, err := tx.(*Tx).PgxTx().Exec(ctx, `
		UPDATE wagers
		SET status = $2, actual_payout = $3, settled_at = $4
		WHERE id = $1 AND status = $5`,
		id, status, actualPayout, settledAt, domain.WagerPending,
	)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() == 1, nil
}

// CountByMatch returns wager counts per status for a match.
func (r *WagerRepository) CountByMatch(ctx context.Context, matchID string) (map[domain.WagerStatus]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT status, COUNT(*) FROM wagers WHERE match_id = $1 GROUP BY status`,
		matchID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.WagerStatus]int)
	for rows.Next() {
		var status domain.WagerStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}

	return counts, rows.Err()
}

// StatsByAccount aggregates an account's betting record.
func (r *WagerRepository) StatsByAccount(ctx context.Context, accountID string) (*domain.WagerStats, error) {
	var stats domain.WagerStats
	err := r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = $2),
			COUNT(*) FILTER (WHERE status = $3),
			COUNT(*) FILTER (WHERE status = $4),
			COALESCE(SUM(stake), 0),
			COALESCE(SUM(actual_payout) FILTER (WHERE status = $2), 0)
		FROM wagers
		WHERE account_id = $1`,
		accountID, domain.WagerWon, domain.WagerLost, domain.WagerPending,
	).Scan(
		&stats.TotalWagers, &stats.WonWagers, &stats.LostWagers, &stats.PendingCount,
		&stats.TotalStaked, &stats.TotalWon,
	)
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

func collectWagers(rows pgx.Rows) ([]*domain.Wager, error) {
	var wagers []*domain.Wager
	for rows.Next() {
		wager, err := scanWager(rows)
		if err != nil {
			return nil, err
		}
		wagers = append(wagers, wager)
	}

	return wagers, rows.Err()
}

func scanWager(row pgx.Row) (*domain.Wager, error) {
	var wager domain.Wager
	err := row.Scan(
		&wager.ID, &wager.AccountID, &wager.MatchID, &wager.Market, &wager.Side,
		&wager.Stake, &wager.Price, &wager.PotentialPayout, &wager.Status,
		&wager.ActualPayout, &wager.PlacedAt, &wager.SettledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWagerNotFound
		}

		return nil, err
	}

	return &wager, nil
}
