package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gowager/internal/domain"
	"github.com/iho/gowager/internal/usecase"
)

// SnapshotRepository implements usecase.SnapshotRepository. Snapshots are
// append-only; the current price is the newest row per match and market.
type SnapshotRepository struct {
	pool *pgxpool.Pool
}

// NewSnapshotRepository creates a new SnapshotRepository.
func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{pool: pool}
}

const snapshotColumns = `id, match_id, market, price_a, price_b, volume_a, volume_b, created_at`

// Create appends a snapshot inside the caller's transaction.
func (r *SnapshotRepository) Create(ctx context.Context, tx usecase.Transaction, snapshot *domain.PriceSnapshot) error {
	_, err := tx.(*Tx).PgxTx().Exec(ctx, `
		INSERT INTO price_snapshots (id, match_id, market, price_a, price_b, volume_a, volume_b, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		snapshot.ID, snapshot.MatchID, snapshot.Market, snapshot.PriceA, snapshot.PriceB,
		snapshot.VolumeA, snapshot.VolumeB, snapshot.CreatedAt,
	)

	return err
}

// Latest retrieves the newest snapshot for a match market.
func (r *SnapshotRepository) Latest(ctx context.Context, matchID string, market domain.MarketType) (*domain.PriceSnapshot, error) {
	return r.latest(ctx, r.pool, matchID, market)
}

// LatestTx retrieves the newest snapshot inside the caller's transaction.
func (r *SnapshotRepository) LatestTx(ctx context.Context, tx usecase.Transaction, matchID string, market domain.MarketType) (*domain.PriceSnapshot, error) {
	return r.latest(ctx, tx.(*Tx).PgxTx(), matchID, market)
}

func (r *SnapshotRepository) latest(ctx context.Context, q querier, matchID string, market domain.MarketType) (*domain.PriceSnapshot, error) {
	return scanSnapshot(q.QueryRow(ctx, `
		SELECT `+snapshotColumns+`
		FROM price_snapshots
		WHERE match_id = $1 AND market = $2
		ORDER BY id DESC
		LIMIT 1`,
		matchID, market,
	))
}

// History retrieves the snapshot sequence for a match market, oldest first.
func (r *SnapshotRepository) History(ctx context.Context, matchID string, market domain.MarketType, limit, offset int) ([]*domain.PriceSnapshot, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+snapshotColumns+`
		FROM price_snapshots
		WHERE match_id = $1 AND market = $2
		ORDER BY id
		LIMIT $3 OFFSET $4`,
		matchID, market, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []*domain.PriceSnapshot
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}

	return snapshots, rows.Err()
}

func scanSnapshot(row pgx.Row) (*domain.PriceSnapshot, error) {
	var s domain.PriceSnapshot
	err := row.Scan(&s.ID, &s.MatchID, &s.Market, &s.PriceA, &s.PriceB, &s.VolumeA, &s.VolumeB, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoSnapshot
		}

		return nil, err
	}

	return &s, nil
}
