// Package cadastros is the registry bounded context: the shop's customers,
// their vehicles, and the catalog of services the shop performs.
//
// Aggregates are created through New* factories that validate every input
// before an identity is drawn, and mutated only through named operations
// that validate before assigning. Rehydrate* functions rebuild aggregates
// from storage and are reserved for the persistence layer.
package cadastros
