package shared

import (
	"bytes"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator produces aggregate and event identities.
// Implementations must be safe for concurrent use and must return values
// that sort byte-wise after every value they returned earlier.
type IDGenerator interface {
	NewID() (uuid.UUID, error)
}

// UUIDv7Generator issues RFC 9562 version 7 identifiers. The uuid package
// serializes the timestamp and sub-millisecond sequence under its own lock,
// so successive values are strictly increasing within the process.
type UUIDv7Generator struct{}

// NewID returns the next time-ordered identifier
func (UUIDv7Generator) NewID() (uuid.UUID, error) {
	return uuid.NewV7()
}

type generatorHolder struct {
	gen IDGenerator
}

var currentGenerator atomic.Pointer[generatorHolder]

func init() {
	currentGenerator.Store(&generatorHolder{gen: UUIDv7Generator{}})
}

func generator() IDGenerator {
	return currentGenerator.Load().gen
}

// NewID returns a fresh identity from the process-wide generator.
// It panics if the entropy source fails; CheckIdentitySource surfaces that
// condition at startup instead.
func NewID() uuid.UUID {
	id, err := generator().NewID()
	if err != nil {
		panic(fmt.Sprintf("identity generation failed: %v", err))
	}
	return id
}

// CheckIdentitySource draws one identity to verify the entropy source
func CheckIdentitySource() error {
	id, err := generator().NewID()
	if err != nil {
		return fmt.Errorf("identity source unavailable: %w", err)
	}
	if id == uuid.Nil {
		return fmt.Errorf("identity source returned the nil UUID")
	}
	return nil
}

// UseIDGenerator replaces the process-wide generator and returns a func
// restoring the previous one.
func UseIDGenerator(g IDGenerator) (restore func()) {
	prev := currentGenerator.Swap(&generatorHolder{gen: g})
	return func() {
		currentGenerator.Store(prev)
	}
}

// CompareIDs orders two identities byte-wise
func CompareIDs(a, b uuid.UUID) int {
	return bytes.Compare(a[:], b[:])
}
