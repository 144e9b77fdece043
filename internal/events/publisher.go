// Package events defines the outbound event contract for record mutations.
// Each mutation that triggers a settlement recalculation produces one event;
// consumers (dashboards, notification bots) only ever see derived facts,
// never the authoritative records.
package events

import (
	"context"
	"time"
)

// Kinds of mutation that trigger a recalculation.
const (
	KindPersonCreated  = "person_created"
	KindPersonUpdated  = "person_updated"
	KindPersonDeleted  = "person_deleted"
	KindExpenseCreated = "expense_created"
	KindExpenseDeleted = "expense_deleted"
)

// Recalculated describes one settlement recalculation run.
type Recalculated struct {
	// Kind is the mutation that triggered the run.
	Kind string `json:"kind"`

	// RecordID is the id of the mutated person or expense.
	RecordID string `json:"record_id"`

	// SettlementCount is the size of the fresh settlement list.
	SettlementCount int `json:"settlement_count"`

	// OccurredAt is when the recalculation finished.
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher emits recalculation events. Implementations must be safe for
// concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event Recalculated) error
}

// Noop discards every event. Used when no broker is configured.
type Noop struct{}

// Publish implements Publisher.
func (Noop) Publish(ctx context.Context, event Recalculated) error {
	return nil
}
