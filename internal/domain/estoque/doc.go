// Package estoque is the inventory bounded context. It tracks the parts the
// shop keeps on the shelf, their prices, and on-hand quantities.
package estoque
