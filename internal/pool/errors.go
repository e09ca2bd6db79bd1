package pool

import "errors"

var (
	// ErrExpired means the operation deadline has passed.
	ErrExpired = errors.New("deadline expired")
	// ErrInvalidRecipient means the recipient is the zero address.
	ErrInvalidRecipient = errors.New("invalid recipient")
	// ErrInvalidAmount means a caller-supplied amount is nil or negative.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrSlippageExceeded means a computed amount fell below the caller minimum.
	ErrSlippageExceeded = errors.New("slippage exceeded")
	// ErrInsufficientAAmount means the ratio-preserving deposit is infeasible.
	ErrInsufficientAAmount = errors.New("insufficient A amount")
	// ErrInsufficientLiquidityMinted means share issuance would be zero.
	ErrInsufficientLiquidityMinted = errors.New("insufficient liquidity minted")
	// ErrInsufficientShares means a redemption exceeds the provider's balance.
	ErrInsufficientShares = errors.New("insufficient shares")
	// ErrInvalidTokenPath means the swap pair does not match the pool's assets.
	ErrInvalidTokenPath = errors.New("invalid token path")
	// ErrInvalidTokens means the price pair does not match the pool's assets.
	ErrInvalidTokens = errors.New("invalid tokens")
	// ErrNoLiquidity means a price was requested against an empty reserve.
	ErrNoLiquidity = errors.New("no liquidity")
	// ErrInsufficientLiquidity means a quote was requested against a zero reserve.
	ErrInsufficientLiquidity = errors.New("insufficient liquidity")
	// ErrInvalidSwapInput means the swap input amount is not positive.
	ErrInvalidSwapInput = errors.New("invalid swap input")
	// ErrTransferFailed means the asset-transfer collaborator reported failure.
	ErrTransferFailed = errors.New("transfer failed")
)
