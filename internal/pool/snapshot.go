package pool

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Snapshot is a full copy of a pool's mutable state.
type Snapshot struct {
	ReserveA    *big.Int
	ReserveB    *big.Int
	TotalShares *big.Int
	Shares      map[common.Address]*big.Int
}

// Snapshot copies the current reserves and share balances.
func (p *Pool) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	reserveA, reserveB := p.reserves.Get()
	return Snapshot{
		ReserveA:    reserveA,
		ReserveB:    reserveB,
		TotalShares: p.shares.Total(),
		Shares:      p.shares.Balances(),
	}
}

// Restore replaces the pool's state with the snapshot after validating its
// invariants: non-negative values, share balances summing to the total, and
// reserves/shares all zero or all positive together.
func (p *Pool) Restore(snap Snapshot) error {
	if snap.ReserveA == nil || snap.ReserveB == nil || snap.TotalShares == nil {
		return fmt.Errorf("snapshot has nil values")
	}
	if snap.ReserveA.Sign() < 0 || snap.ReserveB.Sign() < 0 || snap.TotalShares.Sign() < 0 {
		return fmt.Errorf("snapshot has negative values")
	}

	empty := snap.TotalShares.Sign() == 0
	if empty != (snap.ReserveA.Sign() == 0) || empty != (snap.ReserveB.Sign() == 0) {
		return fmt.Errorf("snapshot reserves and shares disagree on emptiness")
	}

	sum := big.NewInt(0)
	for provider, balance := range snap.Shares {
		if balance == nil || balance.Sign() <= 0 {
			return fmt.Errorf("snapshot balance for %s must be positive", provider.Hex())
		}
		sum.Add(sum, balance)
	}
	if sum.Cmp(snap.TotalShares) != 0 {
		return fmt.Errorf("snapshot share balances sum to %s, total is %s", sum, snap.TotalShares)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.reserves.set(snap.ReserveA, snap.ReserveB)
	p.shares = NewAccounting()
	for provider, balance := range snap.Shares {
		p.shares.Issue(provider, balance)
	}
	return nil
}
