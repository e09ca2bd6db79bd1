package pool

import "math/big"

// Reserves is the pool's current holding of each asset. It is a trusted
// internal accumulator: the coordinator mutates it only after the
// corresponding asset transfers have succeeded, so it performs no validation
// of its own.
type Reserves struct {
	a *big.Int
	b *big.Int
}

func NewReserves() *Reserves {
	return &Reserves{a: big.NewInt(0), b: big.NewInt(0)}
}

// Get returns copies of the current reserves.
func (r *Reserves) Get() (*big.Int, *big.Int) {
	return new(big.Int).Set(r.a), new(big.Int).Set(r.b)
}

// Add increases both reserves by the given deltas.
func (r *Reserves) Add(deltaA, deltaB *big.Int) {
	r.a.Add(r.a, deltaA)
	r.b.Add(r.b, deltaB)
}

// Sub decreases both reserves by the given deltas.
func (r *Reserves) Sub(deltaA, deltaB *big.Int) {
	r.a.Sub(r.a, deltaA)
	r.b.Sub(r.b, deltaB)
}

func (r *Reserves) set(a, b *big.Int) {
	r.a = new(big.Int).Set(a)
	r.b = new(big.Int).Set(b)
}
