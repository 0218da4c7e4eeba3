package shared

import (
	"time"

	"github.com/google/uuid"
)

// AggregateRoot is implemented by Customer, Vehicle, Service, InventoryItem
// and WorkOrder. Version backs the optimistic lock in the repositories.
type AggregateRoot interface {
	Entity
	Kind() AggregateKind
	GetVersion() int
	IncrementVersion()
	PersistedVersion() int
	MarkPersisted()
	AddDomainEvent(event DomainEvent)
	GetDomainEvents() []DomainEvent
	ClearDomainEvents()
}

// BaseAggregateRoot carries identity, version and the events raised since the
// last save. persisted is the version last read from or written to storage;
// zero means the aggregate was never stored.
type BaseAggregateRoot struct {
	BaseEntity
	Version   int
	persisted int
	pending   []DomainEvent
}

// NewBaseAggregateRoot starts a root at version 1.
// Call it only after every input has been validated: it consumes an identity.
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: NewBaseEntity(), Version: 1}
}

// RestoreBaseAggregateRoot rebuilds the header of a stored aggregate; it
// starts with no pending events
func RestoreBaseAggregateRoot(id uuid.UUID, createdAt, updatedAt time.Time, version int) BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity: RestoreBaseEntity(id, createdAt, updatedAt),
		Version:    version,
		persisted:  version,
	}
}

func (a *BaseAggregateRoot) GetVersion() int   { return a.Version }
func (a *BaseAggregateRoot) IncrementVersion() { a.Version++ }

// PersistedVersion is the version a repository must find in storage before
// overwriting the row
func (a *BaseAggregateRoot) PersistedVersion() int { return a.persisted }

// MarkPersisted records a successful save
func (a *BaseAggregateRoot) MarkPersisted() { a.persisted = a.Version }

// AddDomainEvent queues event until the application layer publishes it
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.pending = append(a.pending, event)
}

// GetDomainEvents returns the queued events in the order they were raised
func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent { return a.pending }

func (a *BaseAggregateRoot) ClearDomainEvents() { a.pending = nil }
