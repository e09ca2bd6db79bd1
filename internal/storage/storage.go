package storage

import "pairPool/internal/model"

// EventSink defines a sink for pool event records.
type EventSink interface {
	PutEventBatch(events []model.EventRecord) error
}
