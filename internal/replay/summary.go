package replay

import (
	"math/big"

	"go.uber.org/zap"
)

// Summary accumulates counters over a replay run.
type Summary struct {
	Funds       int
	Deposits    int
	Withdrawals int
	Swaps       int
	Rejected    int
	Skipped     int

	// Swap volume per side, summed over executed swaps.
	VolumeA *big.Int
	VolumeB *big.Int
}

func NewSummary() *Summary {
	return &Summary{VolumeA: big.NewInt(0), VolumeB: big.NewInt(0)}
}

// AddSwapVolume records the input amount on the side it entered.
func (s *Summary) AddSwapVolume(inIsA bool, amountIn *big.Int) {
	if inIsA {
		s.VolumeA.Add(s.VolumeA, amountIn)
	} else {
		s.VolumeB.Add(s.VolumeB, amountIn)
	}
}

// Fields returns the summary as zap fields.
func (s *Summary) Fields() []zap.Field {
	return []zap.Field{
		zap.Int("funds", s.Funds),
		zap.Int("deposits", s.Deposits),
		zap.Int("withdrawals", s.Withdrawals),
		zap.Int("swaps", s.Swaps),
		zap.Int("rejected", s.Rejected),
		zap.Int("skipped", s.Skipped),
		zap.String("volume_a", s.VolumeA.String()),
		zap.String("volume_b", s.VolumeB.String()),
	}
}
