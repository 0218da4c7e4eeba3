// Package ordemservico is the work order bounded context.
//
// A WorkOrder moves through open -> in_progress -> completed -> delivered,
// and may be cancelled while open or in progress. Service and part lines can
// be edited only before completion. Data owned by other contexts reaches the
// order through the snapshots in package acl.
package ordemservico
