// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain aggregates to keep the domain layer pure and free
// from ORM concerns.
//
// Key Principles:
// 1. Domain aggregates carry no GORM tags and expose no setters for stored state
// 2. Persistence models contain all GORM annotations and table mappings
// 3. XModelFromDomain copies an aggregate into a model; ToDomain rebuilds it through
//    the valueobject Restore* functions and the Rehydrate functions, raising no
//    events. Stored values are not validated again.
// 4. Repositories use persistence models for database operations
//
// Structure:
// - base.go: AggregateModel shared by every table
// - cadastros.go: customers, vehicles, services
// - estoque.go: inventory items
// - ordemservico.go: work orders and their service and part lines
package models
