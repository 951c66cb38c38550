package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gowager/internal/domain"
	"github.com/iho/gowager/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository. Ledger entries are
// append-only; there are no update or delete paths.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

// Create appends a ledger entry inside the caller's transaction.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	_, err := tx.(*Tx).PgxTx().Exec(ctx, `
		INSERT INTO ledger_entries
			(id, account_id, amount, balance_before, balance_after, category, note, wager_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		entry.ID, entry.AccountID, entry.Amount, entry.BalanceBefore, entry.BalanceAfter,
		entry.Category, entry.Note, entry.WagerID, entry.CreatedAt,
	)

	return err
}

// ListByAccount retrieves entries for an account, newest first.
func (r *EntryRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.LedgerEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, account_id, amount, balance_before, balance_after, category, note, wager_id, created_at
		FROM ledger_entries
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`,
		accountID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.LedgerEntry
	for rows.Next() {
		var entry domain.LedgerEntry
		if err := rows.Scan(
			&entry.ID, &entry.AccountID, &entry.Amount, &entry.BalanceBefore, &entry.BalanceAfter,
			&entry.Category, &entry.Note, &entry.WagerID, &entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

// SumByAccount returns the sum of all entry deltas for an account.
func (r *EntryRepository) SumByAccount(ctx context.Context, accountID string) (int64, error) {
	var sum int64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM ledger_entries WHERE account_id = $1`,
		accountID,
	).Scan(&sum)

	return sum, err
}

// MatchFlows reconstructs total stakes and payouts for a match from the
// ledger alone, via the wager link on each entry.
func (r *EntryRepository) MatchFlows(ctx context.Context, matchID string) (staked, paid int64, err error) {
	err = r.pool.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN e.category = $2 THEN -e.amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN e.category IN ($3, $4) THEN e.amount ELSE 0 END), 0)
		FROM ledger_entries e
		JOIN wagers w ON w.id = e.wager_id
		WHERE w.match_id = $1`,
		matchID, domain.EntryWagerPlaced, domain.EntryWagerWon, domain.EntryWagerRefund,
	).Scan(&staked, &paid)

	return staked, paid, err
}
