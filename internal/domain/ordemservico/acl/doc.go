// Package acl is the Anti-Corruption Layer of the work order context.
//
// # Overview
//
// A work order needs facts owned by other contexts: who the customer is
// (Cadastros), what a catalog service costs (Cadastros), and the price and
// availability of a part (Estoque). Depending on those contexts' aggregates
// would let their model changes ripple into work orders, so this package
// declares the work order context's own view of that data instead.
//
// # Components
//
// Snapshots (CustomerSnapshot, ServiceSnapshot, PartSnapshot) are flat,
// behaviourless structs holding only what a work order reads. They are
// rebuilt by the producer on every call and never cached here.
//
// Fetchers (CustomerFetcher, ServiceFetcher, PartFetcher) are the ports the
// work order application layer calls. The producing contexts implement them
// in their own application packages, translating field by field from their
// aggregates.
//
// # Outcomes
//
// Every fetch returns (snapshot, ok, err):
//
//	snap, true,  nil  -> found
//	zero, false, nil  -> NotFound; the entity does not exist (or, for
//	                     FetchCustomerByVehicle, the vehicle has no owner)
//	zero, false, err  -> infrastructure failure
//
// NotFound is a normal outcome, not an error, so callers decide how to
// report it.
//
// # Concurrency
//
// Fetches are independent and may run concurrently. Each reflects the
// producer's committed state at call time. Cancellation follows ctx.
package acl
