package audit

import "time"

// Entry is one line in an order's activity log: who recorded which checkpoint
// and when. Entries are append-only.
type Entry struct {
	Id         int
	OrderId    int
	Field      string
	RecordedAt time.Time
	ActorName  string
	ActorRole  string
	LoggedAt   time.Time
}
