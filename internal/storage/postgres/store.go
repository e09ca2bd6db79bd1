package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pairPool/internal/model"
)

// Store provides Postgres persistence for pool events and state.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// InsertEvents inserts event records, skipping sequences already stored.
func (s *Store) InsertEvents(ctx context.Context, events []model.EventRecord) error {
	if len(events) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, event := range events {
		batch.Queue(`
			INSERT INTO pool_events (
				pool_address, seq, event_type, data, emitted_at, created_at
			) VALUES ($1, $2, $3, $4, $5, now())
			ON CONFLICT (pool_address, seq) DO NOTHING
		`,
			event.Pool,
			int64(event.Seq),
			event.Type,
			[]byte(event.Data),
			event.EmittedAt,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range events {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// UpsertPoolState inserts or updates the latest snapshot for a pool.
func (s *Store) UpsertPoolState(ctx context.Context, snap model.PoolSnapshot) error {
	shares, err := json.Marshal(snap.Shares)
	if err != nil {
		return fmt.Errorf("marshal shares: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO pool_state (
			pool_address, asset_a, asset_b, reserve_a, reserve_b, total_shares, shares, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (pool_address)
		DO UPDATE SET
			reserve_a = EXCLUDED.reserve_a,
			reserve_b = EXCLUDED.reserve_b,
			total_shares = EXCLUDED.total_shares,
			shares = EXCLUDED.shares,
			updated_at = now()
	`,
		snap.Pool,
		snap.AssetA,
		snap.AssetB,
		snap.ReserveA,
		snap.ReserveB,
		snap.TotalShares,
		shares,
	)
	return err
}
