package pool

import (
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// AssetTransferer is the asset-transfer collaborator. Implementations move
// balances between accounts; a returned error fails the whole pool operation.
type AssetTransferer interface {
	// TransferFrom pulls amount of asset from owner into the pool account.
	TransferFrom(asset, owner, pool common.Address, amount *big.Int) error
	// Transfer pushes amount of asset from the pool account to recipient.
	Transfer(asset, pool, recipient common.Address, amount *big.Int) error
}

// Config holds the immutable identity and collaborators of a pool.
type Config struct {
	AssetA  common.Address
	AssetB  common.Address
	Address common.Address // the pool's own custody account
	Tokens  AssetTransferer
	Now     func() uint64 // unix seconds; defaults to the wall clock
	Logger  *zap.Logger
}

// Pool binds two distinct assets and coordinates deposits, withdrawals and
// swaps against its reserve ledger and liquidity accounting. All mutable
// state is guarded by a single mutex so each operation, including its
// external transfer calls, is exclusive.
type Pool struct {
	mu sync.Mutex

	assetA common.Address
	assetB common.Address
	addr   common.Address

	reserves *Reserves
	shares   *Accounting
	tokens   AssetTransferer
	now      func() uint64
	logger   *zap.Logger
}

// New builds an empty pool. The asset pair is fixed for the pool's lifetime.
func New(cfg Config) (*Pool, error) {
	if cfg.AssetA == (common.Address{}) || cfg.AssetB == (common.Address{}) {
		return nil, fmt.Errorf("pool assets must be non-zero")
	}
	if cfg.AssetA == cfg.AssetB {
		return nil, fmt.Errorf("pool assets must be distinct")
	}
	if cfg.Address == (common.Address{}) {
		return nil, fmt.Errorf("pool address must be non-zero")
	}
	if cfg.Tokens == nil {
		return nil, fmt.Errorf("asset transferer is required")
	}

	now := cfg.Now
	if now == nil {
		now = func() uint64 { return uint64(time.Now().Unix()) }
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Pool{
		assetA:   cfg.AssetA,
		assetB:   cfg.AssetB,
		addr:     cfg.Address,
		reserves: NewReserves(),
		shares:   NewAccounting(),
		tokens:   cfg.Tokens,
		now:      now,
		logger:   logger,
	}, nil
}

// Assets returns the pool's fixed asset pair.
func (p *Pool) Assets() (common.Address, common.Address) {
	return p.assetA, p.assetB
}

// Address returns the pool's custody account.
func (p *Pool) Address() common.Address {
	return p.addr
}

// GetReserves returns copies of the current reserves.
func (p *Pool) GetReserves() (*big.Int, *big.Int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reserves.Get()
}

// TotalShares returns the total outstanding liquidity shares.
func (p *Pool) TotalShares() *big.Int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.shares.Total()
}

// SharesOf returns the provider's share balance.
func (p *Pool) SharesOf(provider common.Address) *big.Int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.shares.BalanceOf(provider)
}

// DepositParams describes a liquidity deposit. Provider pays the assets;
// Recipient is credited with the minted shares.
type DepositParams struct {
	Provider  common.Address
	Recipient common.Address
	DesiredA  *big.Int
	DesiredB  *big.Int
	MinA      *big.Int
	MinB      *big.Int
	Deadline  uint64
}

// DepositResult reports the amounts actually taken and the shares minted.
type DepositResult struct {
	AmountA *big.Int
	AmountB *big.Int
	Shares  *big.Int
}

// Deposit adds liquidity. On a seeded pool it takes the largest feasible
// allocation consistent with the current reserve ratio, never exceeding
// either desired amount.
func (p *Pool) Deposit(params DepositParams) (DepositResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.checkDeadline(params.Deadline); err != nil {
		return DepositResult{}, err
	}
	if params.Recipient == (common.Address{}) {
		return DepositResult{}, ErrInvalidRecipient
	}
	if err := checkAmounts(params.DesiredA, params.DesiredB); err != nil {
		return DepositResult{}, err
	}

	reserveA, reserveB := p.reserves.Get()
	total := p.shares.Total()

	actualA, actualB, err := optimalAmounts(params.DesiredA, params.DesiredB, reserveA, reserveB, total)
	if err != nil {
		return DepositResult{}, err
	}

	if belowMin(actualA, params.MinA) || belowMin(actualB, params.MinB) {
		return DepositResult{}, ErrSlippageExceeded
	}

	var shares *big.Int
	if total.Sign() == 0 {
		shares = FirstDepositShares(actualA, actualB)
	} else {
		shares = ProportionalShares(actualA, actualB, reserveA, reserveB, total)
	}
	if shares.Sign() == 0 {
		return DepositResult{}, ErrInsufficientLiquidityMinted
	}

	if err := p.tokens.TransferFrom(p.assetA, params.Provider, p.addr, actualA); err != nil {
		return DepositResult{}, fmt.Errorf("%w: pull asset A: %v", ErrTransferFailed, err)
	}
	if err := p.tokens.TransferFrom(p.assetB, params.Provider, p.addr, actualB); err != nil {
		return DepositResult{}, fmt.Errorf("%w: pull asset B: %v", ErrTransferFailed, err)
	}

	p.shares.Issue(params.Recipient, shares)
	p.reserves.Add(actualA, actualB)

	p.logger.Info("liquidity added",
		zap.String("recipient", params.Recipient.Hex()),
		zap.String("amount_a", actualA.String()),
		zap.String("amount_b", actualB.String()),
		zap.String("shares", shares.String()),
	)

	return DepositResult{AmountA: actualA, AmountB: actualB, Shares: shares}, nil
}

// WithdrawParams describes a liquidity withdrawal. Provider burns their own
// shares; Recipient receives the assets.
type WithdrawParams struct {
	Provider  common.Address
	Recipient common.Address
	Shares    *big.Int
	MinA      *big.Int
	MinB      *big.Int
	Deadline  uint64
}

// WithdrawResult reports the amounts paid out.
type WithdrawResult struct {
	AmountA *big.Int
	AmountB *big.Int
}

// Withdraw redeems shares for a proportional cut of both reserves.
func (p *Pool) Withdraw(params WithdrawParams) (WithdrawResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.checkDeadline(params.Deadline); err != nil {
		return WithdrawResult{}, err
	}
	if params.Recipient == (common.Address{}) {
		return WithdrawResult{}, ErrInvalidRecipient
	}
	if params.Shares == nil || params.Shares.Sign() <= 0 {
		return WithdrawResult{}, ErrInvalidAmount
	}
	if p.shares.BalanceOf(params.Provider).Cmp(params.Shares) < 0 {
		return WithdrawResult{}, ErrInsufficientShares
	}

	reserveA, reserveB := p.reserves.Get()
	total := p.shares.Total()

	amountA := mulDiv(params.Shares, reserveA, total)
	amountB := mulDiv(params.Shares, reserveB, total)

	if belowMin(amountA, params.MinA) || belowMin(amountB, params.MinB) {
		return WithdrawResult{}, ErrSlippageExceeded
	}

	// Redeem before touching reserves: the balance was checked above, so from
	// here on nothing can fail until the external pushes.
	if err := p.shares.Redeem(params.Provider, params.Shares); err != nil {
		return WithdrawResult{}, err
	}
	p.reserves.Sub(amountA, amountB)

	if err := p.tokens.Transfer(p.assetA, p.addr, params.Recipient, amountA); err != nil {
		return WithdrawResult{}, fmt.Errorf("%w: push asset A: %v", ErrTransferFailed, err)
	}
	if err := p.tokens.Transfer(p.assetB, p.addr, params.Recipient, amountB); err != nil {
		return WithdrawResult{}, fmt.Errorf("%w: push asset B: %v", ErrTransferFailed, err)
	}

	p.logger.Info("liquidity removed",
		zap.String("provider", params.Provider.Hex()),
		zap.String("amount_a", amountA.String()),
		zap.String("amount_b", amountB.String()),
		zap.String("shares", params.Shares.String()),
	)

	return WithdrawResult{AmountA: amountA, AmountB: amountB}, nil
}

// SwapParams describes a swap of AssetIn for AssetOut. Trader pays the input;
// Recipient receives the output.
type SwapParams struct {
	Trader       common.Address
	Recipient    common.Address
	AssetIn      common.Address
	AssetOut     common.Address
	AmountIn     *big.Int
	AmountOutMin *big.Int
	Deadline     uint64
}

// SwapResult reports the executed amounts.
type SwapResult struct {
	AmountIn  *big.Int
	AmountOut *big.Int
}

// Swap trades AmountIn of AssetIn for AssetOut at the constant-product price.
func (p *Pool) Swap(params SwapParams) (SwapResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.checkDeadline(params.Deadline); err != nil {
		return SwapResult{}, err
	}
	if params.Recipient == (common.Address{}) {
		return SwapResult{}, ErrInvalidRecipient
	}
	if params.AmountIn == nil || params.AmountIn.Sign() <= 0 {
		return SwapResult{}, ErrInvalidSwapInput
	}

	aToB := params.AssetIn == p.assetA && params.AssetOut == p.assetB
	bToA := params.AssetIn == p.assetB && params.AssetOut == p.assetA
	if !aToB && !bToA {
		return SwapResult{}, ErrInvalidTokenPath
	}

	reserveA, reserveB := p.reserves.Get()
	reserveIn, reserveOut := reserveA, reserveB
	if bToA {
		reserveIn, reserveOut = reserveB, reserveA
	}

	amountOut, err := Quote(params.AmountIn, reserveIn, reserveOut)
	if err != nil {
		return SwapResult{}, err
	}
	if belowMin(amountOut, params.AmountOutMin) {
		return SwapResult{}, ErrSlippageExceeded
	}

	if err := p.tokens.TransferFrom(params.AssetIn, params.Trader, p.addr, params.AmountIn); err != nil {
		return SwapResult{}, fmt.Errorf("%w: pull input: %v", ErrTransferFailed, err)
	}

	if aToB {
		p.reserves.Add(params.AmountIn, new(big.Int).Neg(amountOut))
	} else {
		p.reserves.Add(new(big.Int).Neg(amountOut), params.AmountIn)
	}

	if err := p.tokens.Transfer(params.AssetOut, p.addr, params.Recipient, amountOut); err != nil {
		return SwapResult{}, fmt.Errorf("%w: push output: %v", ErrTransferFailed, err)
	}

	p.logger.Info("swap executed",
		zap.String("trader", params.Trader.Hex()),
		zap.String("asset_in", params.AssetIn.Hex()),
		zap.String("asset_out", params.AssetOut.Hex()),
		zap.String("amount_in", params.AmountIn.String()),
		zap.String("amount_out", amountOut.String()),
	)

	return SwapResult{AmountIn: params.AmountIn, AmountOut: amountOut}, nil
}

// GetPrice returns the price of one unit of assetX in units of assetY, scaled
// by PriceScale.
func (p *Pool) GetPrice(assetX, assetY common.Address) (*big.Int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	xIsA := assetX == p.assetA && assetY == p.assetB
	xIsB := assetX == p.assetB && assetY == p.assetA
	if !xIsA && !xIsB {
		return nil, ErrInvalidTokens
	}

	reserveA, reserveB := p.reserves.Get()
	if xIsA {
		return Price(reserveA, reserveB)
	}
	return Price(reserveB, reserveA)
}

func (p *Pool) checkDeadline(deadline uint64) error {
	if deadline != 0 && deadline < p.now() {
		return ErrExpired
	}
	return nil
}

// optimalAmounts picks the deposit allocation. An empty pool takes both
// desired amounts as-is; a seeded pool takes the larger ratio-preserving
// allocation that fits under both desired amounts.
func optimalAmounts(desiredA, desiredB, reserveA, reserveB, total *big.Int) (*big.Int, *big.Int, error) {
	if total.Sign() == 0 {
		return desiredA, desiredB, nil
	}

	bOptimal := mulDiv(desiredA, reserveB, reserveA)
	if bOptimal.Cmp(desiredB) <= 0 {
		return desiredA, bOptimal, nil
	}

	aOptimal := mulDiv(desiredB, reserveA, reserveB)
	if aOptimal.Cmp(desiredA) > 0 {
		return nil, nil, ErrInsufficientAAmount
	}
	return aOptimal, desiredB, nil
}

func checkAmounts(amounts ...*big.Int) error {
	for _, amount := range amounts {
		if amount == nil || amount.Sign() < 0 {
			return ErrInvalidAmount
		}
	}
	return nil
}

// belowMin reports whether value is below the caller minimum. A nil minimum
// means no constraint.
func belowMin(value, min *big.Int) bool {
	return min != nil && value.Cmp(min) < 0
}
