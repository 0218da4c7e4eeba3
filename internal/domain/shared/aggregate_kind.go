package shared

import "fmt"

// AggregateKind enumerates the aggregate roots of the domain
type AggregateKind uint8

const (
	AggregateUnknown AggregateKind = iota
	AggregateCustomer
	AggregateVehicle
	AggregateService
	AggregateInventoryItem
	AggregateWorkOrder
	aggregateKindCount
)

var aggregateKindNames = [...]string{
	AggregateUnknown:       "Unknown",
	AggregateCustomer:      "Customer",
	AggregateVehicle:       "Vehicle",
	AggregateService:       "Service",
	AggregateInventoryItem: "InventoryItem",
	AggregateWorkOrder:     "WorkOrder",
}

// every kind needs exactly one name
var (
	_ [len(aggregateKindNames) - int(aggregateKindCount)]struct{}
	_ [int(aggregateKindCount) - len(aggregateKindNames)]struct{}
)

// String returns the aggregate type name used in events and logs
func (k AggregateKind) String() string {
	if k >= aggregateKindCount {
		return fmt.Sprintf("AggregateKind(%d)", uint8(k))
	}
	return aggregateKindNames[k]
}

// IsValid reports whether k names a real aggregate
func (k AggregateKind) IsValid() bool {
	return k > AggregateUnknown && k < aggregateKindCount
}

// ParseAggregateKind maps a type name back to its kind
func ParseAggregateKind(s string) (AggregateKind, bool) {
	for i, name := range aggregateKindNames {
		if i > 0 && name == s {
			return AggregateKind(i), true
		}
	}
	return AggregateUnknown, false
}
