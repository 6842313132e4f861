// Package order models the sales order aggregate.
//
// An Order is created as an empty shell, its items are persisted one by one, and
// CompleteCreation derives the total once they are loaded back. After creation
// the only state change is Action, which moves a Created or InsufficientProducts
// order to Approved, Rejected or InsufficientProducts. Approved and Rejected are
// final.
//
// The aggregate records CreatedEvent and StatusChangedEvent; the unit of work
// pulls them into the outbox on commit.
package order
