// Package token provides an in-memory fungible-asset ledger. It stands in for
// the external asset contracts the pool engine transfers against: replay runs
// and tests fund accounts here and hand the ledger to the pool as its
// asset-transfer collaborator.
package token

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// Ledger keeps per-asset account balances.
type Ledger struct {
	mu       sync.Mutex
	balances map[common.Address]map[common.Address]*big.Int
}

func NewLedger() *Ledger {
	return &Ledger{balances: make(map[common.Address]map[common.Address]*big.Int)}
}

// Mint credits amount of asset to holder.
func (l *Ledger) Mint(asset, holder common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return fmt.Errorf("mint amount must be non-negative")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	balance := l.balance(asset, holder)
	balance.Add(balance, amount)
	return nil
}

// BalanceOf returns a copy of holder's balance of asset.
func (l *Ledger) BalanceOf(asset, holder common.Address) *big.Int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if holders, ok := l.balances[asset]; ok {
		if balance, ok := holders[holder]; ok {
			return new(big.Int).Set(balance)
		}
	}
	return big.NewInt(0)
}

// TransferFrom moves amount of asset from owner into the pool account.
func (l *Ledger) TransferFrom(asset, owner, pool common.Address, amount *big.Int) error {
	return l.move(asset, owner, pool, amount)
}

// Transfer moves amount of asset from the pool account to recipient.
func (l *Ledger) Transfer(asset, pool, recipient common.Address, amount *big.Int) error {
	return l.move(asset, pool, recipient, amount)
}

func (l *Ledger) move(asset, from, to common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return fmt.Errorf("transfer amount must be non-negative")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	source := l.balance(asset, from)
	if source.Cmp(amount) < 0 {
		return fmt.Errorf("insufficient balance: %s has %s of %s, need %s",
			from.Hex(), source, asset.Hex(), amount)
	}

	source.Sub(source, amount)
	dest := l.balance(asset, to)
	dest.Add(dest, amount)
	return nil
}

// balance returns the mutable balance entry, creating it if needed. Caller
// holds the mutex.
func (l *Ledger) balance(asset, holder common.Address) *big.Int {
	holders, ok := l.balances[asset]
	if !ok {
		holders = make(map[common.Address]*big.Int)
		l.balances[asset] = holders
	}
	balance, ok := holders[holder]
	if !ok {
		balance = big.NewInt(0)
		holders[holder] = balance
	}
	return balance
}

// Snapshot copies every non-zero balance, keyed by asset then holder.
func (l *Ledger) Snapshot() map[common.Address]map[common.Address]*big.Int {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make(map[common.Address]map[common.Address]*big.Int, len(l.balances))
	for asset, holders := range l.balances {
		for holder, balance := range holders {
			if balance.Sign() == 0 {
				continue
			}
			if out[asset] == nil {
				out[asset] = make(map[common.Address]*big.Int)
			}
			out[asset][holder] = new(big.Int).Set(balance)
		}
	}
	return out
}

// Restore replaces the ledger contents with the snapshot.
func (l *Ledger) Restore(snapshot map[common.Address]map[common.Address]*big.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	balances := make(map[common.Address]map[common.Address]*big.Int, len(snapshot))
	for asset, holders := range snapshot {
		balances[asset] = make(map[common.Address]*big.Int, len(holders))
		for holder, balance := range holders {
			if balance == nil || balance.Sign() < 0 {
				return fmt.Errorf("snapshot balance for %s/%s must be non-negative", asset.Hex(), holder.Hex())
			}
			balances[asset][holder] = new(big.Int).Set(balance)
		}
	}
	l.balances = balances
	return nil
}
