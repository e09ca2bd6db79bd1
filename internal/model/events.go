package model

import "encoding/json"

// Event type names emitted by pool operations.
const (
	EventLiquidityAdded   = "liquidity_added"
	EventLiquidityRemoved = "liquidity_removed"
	EventSwapExecuted     = "swap_executed"
)

// EventRecord is the JSON envelope for an observable pool event.
type EventRecord struct {
	Seq       uint64          `json:"seq"`
	Type      string          `json:"type"`
	Pool      string          `json:"pool"`
	Data      json.RawMessage `json:"data"`
	EmittedAt string          `json:"emitted_at"`
}

// LiquidityAddedData is the payload of a liquidity_added event.
type LiquidityAddedData struct {
	Provider  string `json:"provider"`
	Recipient string `json:"recipient"`
	AmountA   string `json:"amount_a"`
	AmountB   string `json:"amount_b"`
	Shares    string `json:"shares_minted"`
}

// LiquidityRemovedData is the payload of a liquidity_removed event.
type LiquidityRemovedData struct {
	Provider  string `json:"provider"`
	Recipient string `json:"recipient"`
	AmountA   string `json:"amount_a"`
	AmountB   string `json:"amount_b"`
	Shares    string `json:"shares_burned"`
}

// SwapExecutedData is the payload of a swap_executed event.
type SwapExecutedData struct {
	Trader    string `json:"trader"`
	Recipient string `json:"recipient"`
	AssetIn   string `json:"asset_in"`
	AssetOut  string `json:"asset_out"`
	AmountIn  string `json:"amount_in"`
	AmountOut string `json:"amount_out"`
}
