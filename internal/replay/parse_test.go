package replay

import (
	"math/big"
	"testing"
)

func TestParseAddress(t *testing.T) {
	addr, err := ParseAddress(" 0x00000000000000000000000000000000000000a1 ")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if addr.Hex() == "" {
		t.Fatalf("empty address")
	}

	if _, err := ParseAddress("not-an-address"); err == nil {
		t.Fatalf("expected error for bad address")
	}
	if _, err := ParseAddress(""); err == nil {
		t.Fatalf("expected error for empty address")
	}
}

func TestParseAmount(t *testing.T) {
	value, err := ParseAmount("12345678901234567890")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want, _ := new(big.Int).SetString("12345678901234567890", 10)
	if value.Cmp(want) != 0 {
		t.Fatalf("value mismatch: got %s", value)
	}

	if _, err := ParseAmount(""); err == nil {
		t.Fatalf("expected error for empty amount")
	}
	if _, err := ParseAmount("-1"); err == nil {
		t.Fatalf("expected error for negative amount")
	}
	if _, err := ParseAmount("1.5"); err == nil {
		t.Fatalf("expected error for non-integer amount")
	}
}

func TestParseOptionalAmount(t *testing.T) {
	value, err := ParseOptionalAmount("")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if value != nil {
		t.Fatalf("expected nil for empty input, got %s", value)
	}

	value, err = ParseOptionalAmount("42")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if value.Cmp(big.NewInt(42)) != 0 {
		t.Fatalf("value mismatch: got %s", value)
	}
}
