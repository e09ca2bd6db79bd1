package pool

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Accounting tracks total issued liquidity shares and each provider's share
// balance. The sum of all balances always equals the total.
type Accounting struct {
	total    *big.Int
	balances map[common.Address]*big.Int
}

func NewAccounting() *Accounting {
	return &Accounting{
		total:    big.NewInt(0),
		balances: make(map[common.Address]*big.Int),
	}
}

// Total returns a copy of the total outstanding shares.
func (a *Accounting) Total() *big.Int {
	return new(big.Int).Set(a.total)
}

// BalanceOf returns a copy of the provider's share balance.
func (a *Accounting) BalanceOf(provider common.Address) *big.Int {
	if balance, ok := a.balances[provider]; ok {
		return new(big.Int).Set(balance)
	}
	return big.NewInt(0)
}

// Issue credits amount shares to provider. The coordinator guarantees
// amount > 0.
func (a *Accounting) Issue(provider common.Address, amount *big.Int) {
	balance, ok := a.balances[provider]
	if !ok {
		balance = big.NewInt(0)
		a.balances[provider] = balance
	}
	balance.Add(balance, amount)
	a.total.Add(a.total, amount)
}

// Redeem burns amount shares from provider. A balance reaching zero drops its
// entry.
func (a *Accounting) Redeem(provider common.Address, amount *big.Int) error {
	balance, ok := a.balances[provider]
	if !ok || balance.Cmp(amount) < 0 {
		return ErrInsufficientShares
	}
	balance.Sub(balance, amount)
	a.total.Sub(a.total, amount)
	if balance.Sign() == 0 {
		delete(a.balances, provider)
	}
	return nil
}

// Balances returns a copy of every provider balance.
func (a *Accounting) Balances() map[common.Address]*big.Int {
	out := make(map[common.Address]*big.Int, len(a.balances))
	for provider, balance := range a.balances {
		out[provider] = new(big.Int).Set(balance)
	}
	return out
}

// FirstDepositShares is the issuance for a deposit into an empty pool:
// floor(sqrt(amountA * amountB)). The geometric mean decouples the share unit
// from either asset's decimal scale.
func FirstDepositShares(amountA, amountB *big.Int) *big.Int {
	return sqrtFloor(new(big.Int).Mul(amountA, amountB))
}

// ProportionalShares is the issuance for a deposit into a seeded pool:
// min(amountA*total/reserveA, amountB*total/reserveB). The minimum of the two
// proportional estimates makes the lesser-proportioned asset the binding
// resource, so a depositor can never mint shares worth more than what they
// contributed.
func ProportionalShares(amountA, amountB, reserveA, reserveB, total *big.Int) *big.Int {
	sharesA := mulDiv(amountA, total, reserveA)
	sharesB := mulDiv(amountB, total, reserveB)
	return minInt(sharesA, sharesB)
}
