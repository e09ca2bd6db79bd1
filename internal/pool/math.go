package pool

import "math/big"

// PriceScale is the fixed-point scale used by Price and GetPrice.
var PriceScale = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// Quote computes the fee-less constant-product output for amountIn against
// the given reserves:
//
//	amountOut = floor(amountIn * reserveOut / (reserveIn + amountIn))
//
// It is pure: no pool state is read, so callers can quote off-pool. The
// truncation only ever rounds the output down, which keeps
// reserveIn'*reserveOut' >= reserveIn*reserveOut across swaps.
func Quote(amountIn, reserveIn, reserveOut *big.Int) (*big.Int, error) {
	if amountIn == nil || amountIn.Sign() <= 0 {
		return nil, ErrInvalidSwapInput
	}
	if reserveIn == nil || reserveIn.Sign() <= 0 || reserveOut == nil || reserveOut.Sign() <= 0 {
		return nil, ErrInsufficientLiquidity
	}

	numerator := new(big.Int).Mul(amountIn, reserveOut)
	denominator := new(big.Int).Add(reserveIn, amountIn)
	return numerator.Div(numerator, denominator), nil
}

// Price returns the price of one unit of the "self" asset in units of the
// "other" asset, as a fixed-point integer scaled by PriceScale.
func Price(reserveSelf, reserveOther *big.Int) (*big.Int, error) {
	if reserveSelf == nil || reserveSelf.Sign() == 0 {
		return nil, ErrNoLiquidity
	}
	price := new(big.Int).Mul(reserveOther, PriceScale)
	return price.Div(price, reserveSelf), nil
}

// sqrtFloor returns floor(sqrt(x)). big.Int.Sqrt already truncates.
func sqrtFloor(x *big.Int) *big.Int {
	return new(big.Int).Sqrt(x)
}

func minInt(x, y *big.Int) *big.Int {
	if x.Cmp(y) <= 0 {
		return x
	}
	return y
}

// mulDiv returns floor(a * b / d). The caller guarantees d > 0.
func mulDiv(a, b, d *big.Int) *big.Int {
	product := new(big.Int).Mul(a, b)
	return product.Div(product, d)
}
