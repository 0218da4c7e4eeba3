package ordemservico

import (
	"database/sql/driver"
	"fmt"
)

// WorkOrderStatus is the lifecycle state of a work order
type WorkOrderStatus uint8

const (
	StatusOpen WorkOrderStatus = iota
	StatusInProgress
	StatusCompleted
	StatusDelivered
	StatusCancelled
	workOrderStatusCount
)

var workOrderStatusNames = [...]string{
	StatusOpen:       "open",
	StatusInProgress: "in_progress",
	StatusCompleted:  "completed",
	StatusDelivered:  "delivered",
	StatusCancelled:  "cancelled",
}

// each status needs exactly one wire name
var (
	_ [len(workOrderStatusNames) - int(workOrderStatusCount)]struct{}
	_ [int(workOrderStatusCount) - len(workOrderStatusNames)]struct{}
)

var workOrderTransitions = [workOrderStatusCount][]WorkOrderStatus{
	StatusOpen:       {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {StatusDelivered},
}

// ParseWorkOrderStatus maps a wire name to its status
func ParseWorkOrderStatus(s string) (WorkOrderStatus, error) {
	for i, name := range workOrderStatusNames {
		if name == s {
			return WorkOrderStatus(i), nil
		}
	}
	return 0, fmt.Errorf("unknown work order status %q", s)
}

// String returns the wire name
func (s WorkOrderStatus) String() string {
	if s >= workOrderStatusCount {
		return fmt.Sprintf("WorkOrderStatus(%d)", uint8(s))
	}
	return workOrderStatusNames[s]
}

// IsValid reports whether s is a declared status
func (s WorkOrderStatus) IsValid() bool {
	return s < workOrderStatusCount
}

// IsTerminal reports whether no further transition is possible
func (s WorkOrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// AllowsLineChanges reports whether services and parts may be edited
func (s WorkOrderStatus) AllowsLineChanges() bool {
	return s == StatusOpen || s == StatusInProgress
}

// CanTransitionTo reports whether the state machine permits s -> next
func (s WorkOrderStatus) CanTransitionTo(next WorkOrderStatus) bool {
	if !s.IsValid() {
		return false
	}
	for _, allowed := range workOrderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// MarshalText implements encoding.TextMarshaler
func (s WorkOrderStatus) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("invalid work order status %d", uint8(s))
	}
	return []byte(workOrderStatusNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *WorkOrderStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseWorkOrderStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Value implements driver.Valuer
func (s WorkOrderStatus) Value() (driver.Value, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("invalid work order status %d", uint8(s))
	}
	return workOrderStatusNames[s], nil
}

// Scan implements sql.Scanner
func (s *WorkOrderStatus) Scan(value any) error {
	switch v := value.(type) {
	case string:
		return s.UnmarshalText([]byte(v))
	case []byte:
		return s.UnmarshalText(v)
	default:
		return fmt.Errorf("cannot scan %T into WorkOrderStatus", value)
	}
}
