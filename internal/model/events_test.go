package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestEventRecordRoundTrip(t *testing.T) {
	payload, err := json.Marshal(LiquidityAddedData{
		Provider:  "0x00000000000000000000000000000000000000A1",
		Recipient: "0x00000000000000000000000000000000000000A1",
		AmountA:   "400",
		AmountB:   "900",
		Shares:    "600",
	})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	record := EventRecord{
		Seq:       3,
		Type:      EventLiquidityAdded,
		Pool:      "0x000000000000000000000000000000000000cCcC",
		Data:      payload,
		EmittedAt: "2026-08-25T12:00:00Z",
	}

	encoded, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("marshal record: %v", err)
	}
	if !strings.Contains(string(encoded), `"shares_minted":"600"`) {
		t.Fatalf("payload not embedded: %s", encoded)
	}

	var decoded EventRecord
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("unmarshal record: %v", err)
	}
	if decoded.Seq != record.Seq || decoded.Type != record.Type || decoded.Pool != record.Pool {
		t.Fatalf("record mismatch: %+v", decoded)
	}

	var data LiquidityAddedData
	if err := json.Unmarshal(decoded.Data, &data); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if data.Shares != "600" {
		t.Fatalf("shares mismatch: got %s", data.Shares)
	}
}

func TestOperationOmitsUnusedFields(t *testing.T) {
	encoded, err := json.Marshal(Operation{Seq: 1, Type: OpFund, Actor: "0xabc", Asset: "0xdef", Amount: "10"})
	if err != nil {
		t.Fatalf("marshal operation: %v", err)
	}
	if strings.Contains(string(encoded), "desired_a") || strings.Contains(string(encoded), "deadline") {
		t.Fatalf("unused fields serialized: %s", encoded)
	}
}
