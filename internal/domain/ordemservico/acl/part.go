package acl

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PartSnapshot is the work order context's view of a stocked part
type PartSnapshot struct {
	ItemID    uuid.UUID
	Code      string
	Name      string
	UnitPrice decimal.Decimal
	Currency  string
	// Available is the on-hand quantity when the snapshot was taken. It is
	// advisory: stock is deducted only when the work order completes.
	Available int
}

// PartFetcher resolves inventory parts by identity
type PartFetcher interface {
	// FetchPartByID returns the part; ok is false when it does not exist
	FetchPartByID(ctx context.Context, itemID uuid.UUID) (snapshot PartSnapshot, ok bool, err error)
}
