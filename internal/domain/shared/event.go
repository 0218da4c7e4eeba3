package shared

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is a fact recorded by an aggregate and published after it is
// persisted. EventID is what idempotent consumers deduplicate on.
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	OccurredAt() time.Time
	AggregateID() uuid.UUID
	AggregateType() string
}

// BaseDomainEvent is embedded by every concrete event
type BaseDomainEvent struct {
	id          uuid.UUID
	eventType   string
	occurredAt  time.Time
	aggregateID uuid.UUID
	kind        AggregateKind
}

// NewBaseDomainEvent stamps a new event raised by the aggregate aggID of the given kind
func NewBaseDomainEvent(eventType string, kind AggregateKind, aggID uuid.UUID) BaseDomainEvent {
	return BaseDomainEvent{
		id:          NewID(),
		eventType:   eventType,
		occurredAt:  time.Now().UTC(),
		aggregateID: aggID,
		kind:        kind,
	}
}

func (e *BaseDomainEvent) EventID() uuid.UUID     { return e.id }
func (e *BaseDomainEvent) EventType() string      { return e.eventType }
func (e *BaseDomainEvent) OccurredAt() time.Time  { return e.occurredAt }
func (e *BaseDomainEvent) AggregateID() uuid.UUID { return e.aggregateID }
func (e *BaseDomainEvent) AggregateType() string  { return e.kind.String() }
