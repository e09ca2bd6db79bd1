package model

// Operation types accepted by the replay runner.
const (
	OpFund     = "fund"
	OpDeposit  = "deposit"
	OpWithdraw = "withdraw"
	OpSwap     = "swap"
)

// Operation is one line of a replay journal. Amount fields are decimal
// strings; unused fields stay empty for a given type.
type Operation struct {
	Seq       uint64 `json:"seq"`
	Type      string `json:"type"`
	Actor     string `json:"actor"`
	Recipient string `json:"recipient,omitempty"`
	Asset     string `json:"asset,omitempty"`     // fund
	Amount    string `json:"amount,omitempty"`    // fund
	DesiredA  string `json:"desired_a,omitempty"` // deposit
	DesiredB  string `json:"desired_b,omitempty"`
	MinA      string `json:"min_a,omitempty"` // deposit, withdraw
	MinB      string `json:"min_b,omitempty"`
	Shares    string `json:"shares,omitempty"`   // withdraw
	AssetIn   string `json:"asset_in,omitempty"` // swap
	AmountIn  string `json:"amount_in,omitempty"`
	MinOut    string `json:"min_out,omitempty"`
	Deadline  uint64 `json:"deadline,omitempty"`
}

// OpError records an operation the pool rejected.
type OpError struct {
	Seq   uint64 `json:"seq"`
	Type  string `json:"type"`
	Actor string `json:"actor,omitempty"`
	Error string `json:"error"`
}
