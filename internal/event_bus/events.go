package event_bus

import "time"

const (
	// CheckpointRecordedEvent is published after a guarded checkpoint write succeeds.
	CheckpointRecordedEvent EventType = "order.checkpoint.recorded"
	// OrderCreatedEvent is published when a new service order is registered.
	OrderCreatedEvent EventType = "order.created"
)

type CheckpointRecorded struct {
	OrderId    int
	Field      string
	RecordedAt time.Time
	ActorName  string
	ActorRole  string
}

type OrderCreated struct {
	OrderId     int
	OrderNumber string
}
