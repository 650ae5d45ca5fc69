// Package events publishes domain events after successful mutations.
//
// Publishing is best-effort: a failed publish never rolls back or fails the
// mutation that produced the event.
package events

import (
	"context"
	"time"
)

type Type string

const (
	IncomeCreated   Type = "income.created"
	IncomeUpdated   Type = "income.updated"
	IncomeDeleted   Type = "income.deleted"
	SpendingCreated Type = "spending.created"
	SpendingUpdated Type = "spending.updated"
	SpendingDeleted Type = "spending.deleted"
	GoalCreated     Type = "goal.created"
	GoalUpdated     Type = "goal.updated"
	GoalDeleted     Type = "goal.deleted"
	GoalAllocated   Type = "goal.allocated"
	GoalCompleted   Type = "goal.completed"
)

type Event struct {
	Type       Type           `json:"type"`
	UserID     string         `json:"user_id"`
	EntityID   string         `json:"entity_id"`
	OccurredAt time.Time      `json:"occurred_at"`
	Data       map[string]any `json:"data,omitempty"`
}

func New(eventType Type, userID, entityID string, data map[string]any) Event {
	return Event{
		Type:       eventType,
		UserID:     userID,
		EntityID:   entityID,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error {
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}
