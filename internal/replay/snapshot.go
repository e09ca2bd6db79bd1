package replay

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"pairPool/internal/model"
	"pairPool/internal/pool"
	"pairPool/internal/token"
)

// snapshotState captures the pool and ledger into a storable replay snapshot.
func snapshotState(p *pool.Pool, ledger *token.Ledger) model.ReplaySnapshot {
	return model.ReplaySnapshot{
		Pool:     poolSnapshotRecord(p),
		Balances: balancesRecord(ledger.Snapshot()),
	}
}

func poolSnapshotRecord(p *pool.Pool) model.PoolSnapshot {
	snap := p.Snapshot()
	assetA, assetB := p.Assets()

	shares := make(map[string]string, len(snap.Shares))
	for provider, balance := range snap.Shares {
		shares[provider.Hex()] = balance.String()
	}

	return model.PoolSnapshot{
		Pool:        p.Address().Hex(),
		AssetA:      assetA.Hex(),
		AssetB:      assetB.Hex(),
		ReserveA:    snap.ReserveA.String(),
		ReserveB:    snap.ReserveB.String(),
		TotalShares: snap.TotalShares.String(),
		Shares:      shares,
	}
}

func balancesRecord(balances map[common.Address]map[common.Address]*big.Int) map[string]map[string]string {
	out := make(map[string]map[string]string, len(balances))
	for asset, holders := range balances {
		entry := make(map[string]string, len(holders))
		for holder, balance := range holders {
			entry[holder.Hex()] = balance.String()
		}
		out[asset.Hex()] = entry
	}
	return out
}

// restoreState applies a replay snapshot to the pool and ledger.
func restoreState(p *pool.Pool, ledger *token.Ledger, snap model.ReplaySnapshot) error {
	poolSnap, err := parsePoolSnapshot(snap.Pool)
	if err != nil {
		return fmt.Errorf("parse pool snapshot: %w", err)
	}
	if err := p.Restore(poolSnap); err != nil {
		return fmt.Errorf("restore pool: %w", err)
	}

	balances, err := parseBalances(snap.Balances)
	if err != nil {
		return fmt.Errorf("parse balances: %w", err)
	}
	if err := ledger.Restore(balances); err != nil {
		return fmt.Errorf("restore ledger: %w", err)
	}
	return nil
}

func parsePoolSnapshot(record model.PoolSnapshot) (pool.Snapshot, error) {
	reserveA, err := ParseAmount(record.ReserveA)
	if err != nil {
		return pool.Snapshot{}, fmt.Errorf("reserve_a: %w", err)
	}
	reserveB, err := ParseAmount(record.ReserveB)
	if err != nil {
		return pool.Snapshot{}, fmt.Errorf("reserve_b: %w", err)
	}
	total, err := ParseAmount(record.TotalShares)
	if err != nil {
		return pool.Snapshot{}, fmt.Errorf("total_shares: %w", err)
	}

	shares := make(map[common.Address]*big.Int, len(record.Shares))
	for provider, balance := range record.Shares {
		addr, err := ParseAddress(provider)
		if err != nil {
			return pool.Snapshot{}, err
		}
		value, err := ParseAmount(balance)
		if err != nil {
			return pool.Snapshot{}, fmt.Errorf("shares of %s: %w", provider, err)
		}
		shares[addr] = value
	}

	return pool.Snapshot{
		ReserveA:    reserveA,
		ReserveB:    reserveB,
		TotalShares: total,
		Shares:      shares,
	}, nil
}

func parseBalances(record map[string]map[string]string) (map[common.Address]map[common.Address]*big.Int, error) {
	out := make(map[common.Address]map[common.Address]*big.Int, len(record))
	for asset, holders := range record {
		assetAddr, err := ParseAddress(asset)
		if err != nil {
			return nil, err
		}
		entry := make(map[common.Address]*big.Int, len(holders))
		for holder, balance := range holders {
			holderAddr, err := ParseAddress(holder)
			if err != nil {
				return nil, err
			}
			value, err := ParseAmount(balance)
			if err != nil {
				return nil, fmt.Errorf("balance of %s/%s: %w", asset, holder, err)
			}
			entry[holderAddr] = value
		}
		out[assetAddr] = entry
	}
	return out, nil
}
