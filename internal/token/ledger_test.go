package token

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

var (
	asset  = common.HexToAddress("0x000000000000000000000000000000000000aaaa")
	alice  = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	bob    = common.HexToAddress("0x00000000000000000000000000000000000000b2")
	poolAt = common.HexToAddress("0x000000000000000000000000000000000000cccc")
)

func TestMintAndBalance(t *testing.T) {
	l := NewLedger()

	if err := l.Mint(asset, alice, big.NewInt(100)); err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if err := l.Mint(asset, alice, big.NewInt(50)); err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if got := l.BalanceOf(asset, alice); got.Cmp(big.NewInt(150)) != 0 {
		t.Fatalf("balance mismatch: got %s, want 150", got)
	}
	if got := l.BalanceOf(asset, bob); got.Sign() != 0 {
		t.Fatalf("unfunded balance should be zero, got %s", got)
	}

	if err := l.Mint(asset, alice, big.NewInt(-1)); err == nil {
		t.Fatalf("expected error for negative mint")
	}
}

func TestTransfers(t *testing.T) {
	l := NewLedger()
	if err := l.Mint(asset, alice, big.NewInt(100)); err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	if err := l.TransferFrom(asset, alice, poolAt, big.NewInt(60)); err != nil {
		t.Fatalf("transfer from failed: %v", err)
	}
	if err := l.Transfer(asset, poolAt, bob, big.NewInt(25)); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}

	if got := l.BalanceOf(asset, alice); got.Cmp(big.NewInt(40)) != 0 {
		t.Fatalf("alice balance mismatch: got %s, want 40", got)
	}
	if got := l.BalanceOf(asset, poolAt); got.Cmp(big.NewInt(35)) != 0 {
		t.Fatalf("pool balance mismatch: got %s, want 35", got)
	}
	if got := l.BalanceOf(asset, bob); got.Cmp(big.NewInt(25)) != 0 {
		t.Fatalf("bob balance mismatch: got %s, want 25", got)
	}
}

func TestTransferInsufficient(t *testing.T) {
	l := NewLedger()
	if err := l.Mint(asset, alice, big.NewInt(10)); err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	if err := l.TransferFrom(asset, alice, poolAt, big.NewInt(11)); err == nil {
		t.Fatalf("expected error for insufficient balance")
	}
	// The failed transfer moved nothing.
	if got := l.BalanceOf(asset, alice); got.Cmp(big.NewInt(10)) != 0 {
		t.Fatalf("balance changed after failed transfer: %s", got)
	}
	if got := l.BalanceOf(asset, poolAt); got.Sign() != 0 {
		t.Fatalf("pool credited after failed transfer: %s", got)
	}
}

func TestSnapshotRestore(t *testing.T) {
	l := NewLedger()
	if err := l.Mint(asset, alice, big.NewInt(100)); err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if err := l.Mint(asset, bob, big.NewInt(0)); err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	snap := l.Snapshot()
	if _, ok := snap[asset][bob]; ok {
		t.Fatalf("zero balance included in snapshot")
	}

	// Mutating the snapshot must not touch the ledger.
	snap[asset][alice].SetInt64(1)
	if got := l.BalanceOf(asset, alice); got.Cmp(big.NewInt(100)) != 0 {
		t.Fatalf("snapshot aliased ledger state: %s", got)
	}

	restored := NewLedger()
	snap[asset][alice].SetInt64(100)
	if err := restored.Restore(snap); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if got := restored.BalanceOf(asset, alice); got.Cmp(big.NewInt(100)) != 0 {
		t.Fatalf("restored balance mismatch: got %s, want 100", got)
	}
}

func TestRestoreRejectsNegative(t *testing.T) {
	l := NewLedger()
	bad := map[common.Address]map[common.Address]*big.Int{
		asset: {alice: big.NewInt(-5)},
	}
	if err := l.Restore(bad); err == nil {
		t.Fatalf("expected error for negative snapshot balance")
	}
}
