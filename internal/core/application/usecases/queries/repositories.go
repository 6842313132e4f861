// Package queries holds the read-only use cases. They run without a
// transaction and never change state.
package queries

import "salesorder/internal/core/ports"

type (
	// Readers exposes the repositories queries read from.
	Readers interface {
		OrderRepository() ports.OrderRepository
		ProductRepository() ports.ProductRepository
		UserRepository() ports.UserRepository
	}

	ReadersFactory interface {
		Create() Readers
	}
)
