package model

// PoolSnapshot is the storable form of a pool's state. Amounts are decimal
// strings; Shares maps provider address to share balance.
type PoolSnapshot struct {
	Pool        string            `json:"pool"`
	AssetA      string            `json:"asset_a"`
	AssetB      string            `json:"asset_b"`
	ReserveA    string            `json:"reserve_a"`
	ReserveB    string            `json:"reserve_b"`
	TotalShares string            `json:"total_shares"`
	Shares      map[string]string `json:"shares"`
}

// ReplaySnapshot is the checkpointed state of a replay run: the pool plus the
// token-ledger balances, keyed by asset then holder.
type ReplaySnapshot struct {
	Pool     PoolSnapshot                 `json:"pool_state"`
	Balances map[string]map[string]string `json:"balances"`
}
