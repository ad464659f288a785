package amqp

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fintrack/internal/core"
)

// Action says what happened to a transaction.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// TransactionEvent announces a change to the stored transaction list.
// Deleted events carry only the id.
type TransactionEvent struct {
	Action      Action            `json:"action"`
	ID          string            `json:"id"`
	Transaction *core.Transaction `json:"transaction,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
}

var ErrInvalidEvent = errors.New("invalid transaction event")

// NewTransactionEvent builds an event for tx. For ActionDeleted only the id
// is kept.
func NewTransactionEvent(action Action, tx core.Transaction) *TransactionEvent {
	ev := &TransactionEvent{
		Action:    action,
		ID:        tx.ID,
		Timestamp: time.Now(),
	}
	if action != ActionDeleted {
		ev.Transaction = &tx
	}
	return ev
}

func (e *TransactionEvent) Validate() error {
	switch e.Action {
	case ActionCreated, ActionUpdated:
		if e.Transaction == nil {
			return fmt.Errorf("%w: %s without transaction", ErrInvalidEvent, e.Action)
		}
		if e.Transaction.ID != e.ID {
			return fmt.Errorf("%w: id mismatch", ErrInvalidEvent)
		}
	case ActionDeleted:
	default:
		return fmt.Errorf("%w: unknown action %q", ErrInvalidEvent, e.Action)
	}
	if e.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidEvent)
	}
	return nil
}

// ToJSON converts the event to JSON bytes
func (e *TransactionEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// TransactionEventFromJSON decodes and validates an event.
func TransactionEventFromJSON(data []byte) (*TransactionEvent, error) {
	var ev TransactionEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	if err := ev.Validate(); err != nil {
		return nil, err
	}
	return &ev, nil
}
