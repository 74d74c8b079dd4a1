// Package queue defines message payloads exchanged over the message broker.
package queue

// SettlementRecordedEvent is published after the settlement write sequence
// has run.  It carries enough information for downstream consumers to log
// or trigger analytics without querying the primary database.  Publication
// is best-effort and never affects the request outcome.
type SettlementRecordedEvent struct {
	Email           string  `json:"email"`
	ClassID         string  `json:"class_id"`
	Amount          float64 `json:"amount"`
	SelectionsFreed int64   `json:"selections_freed"`
	ClassUpserted   bool    `json:"class_upserted"`
	RecordedAt      string  `json:"recorded_at"`
}
