package order

import (
	"fmt"
	"time"
)

type DeliveryStage string

const (
	DeliveryPending    DeliveryStage = "pending"
	DeliveryProcessing DeliveryStage = "processing"
	DeliveryDelivering DeliveryStage = "delivering"
	DeliveryCompleted  DeliveryStage = "completed"
)

// stageDescriptions is the fixed text appended to the history on every
// transition.
var stageDescriptions = map[DeliveryStage]string{
	DeliveryPending:    "Order received and awaiting confirmation",
	DeliveryProcessing: "Order is being prepared and packed",
	DeliveryDelivering: "Order handed over to the courier",
	DeliveryCompleted:  "Order delivered to the recipient",
}

// deliveringWindow feeds the estimated-delivery field once the order
// is on the road.
const deliveringWindow = 48 * time.Hour

type HistoryEntry struct {
	Status      DeliveryStage `json:"status"`
	Description string        `json:"description"`
	Timestamp   time.Time     `json:"timestamp"`
}

// Delivery embeds the stage plus its append-only transition log inside
// the transaction document.
type Delivery struct {
	Status            DeliveryStage  `json:"status"`
	History           []HistoryEntry `json:"history"`
	EstimatedDelivery *time.Time     `json:"estimatedDelivery"`
}

// TransitionError marks a rejected stage change.
type TransitionError struct {
	From DeliveryStage
	To   DeliveryStage
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("delivery cannot move from %s to %s", e.From, e.To)
}

// NewDelivery seeds the lifecycle with the pending entry.
func NewDelivery(now time.Time) Delivery {
	return Delivery{
		Status: DeliveryPending,
		History: []HistoryEntry{{
			Status:      DeliveryPending,
			Description: stageDescriptions[DeliveryPending],
			Timestamp:   now,
		}},
	}
}

// Transition moves the delivery to target, appending exactly one
// history entry. The history is append-only and its timestamps never
// decrease. Rejected transitions return the Delivery unchanged:
// completed is terminal, and once the order is delivering it cannot
// fall back to pending or processing.
func (d Delivery) Transition(target DeliveryStage, now time.Time) (Delivery, error) {
	desc, ok := stageDescriptions[target]
	if !ok {
		return d, fmt.Errorf("unknown delivery stage %q", target)
	}

	if d.Status == DeliveryCompleted {
		return d, &TransitionError{From: d.Status, To: target}
	}
	if d.Status == DeliveryDelivering && (target == DeliveryPending || target == DeliveryProcessing) {
		return d, &TransitionError{From: d.Status, To: target}
	}

	if n := len(d.History); n > 0 && now.Before(d.History[n-1].Timestamp) {
		now = d.History[n-1].Timestamp
	}

	next := Delivery{
		Status:            target,
		History:           make([]HistoryEntry, len(d.History), len(d.History)+1),
		EstimatedDelivery: d.EstimatedDelivery,
	}
	copy(next.History, d.History)
	next.History = append(next.History, HistoryEntry{
		Status:      target,
		Description: desc,
		Timestamp:   now,
	})

	if target == DeliveryDelivering {
		eta := now.Add(deliveringWindow)
		next.EstimatedDelivery = &eta
	}

	return next, nil
}
