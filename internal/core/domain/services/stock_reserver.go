package services

import (
	"slices"

	"salesorder/internal/core/domain/model/kernel"
	"salesorder/internal/core/domain/model/order"
	"salesorder/internal/core/domain/model/product"
	"salesorder/internal/pkg/errs"
)

// StockReserver reserves inventory for the items of an order being approved.
//
// Demand is aggregated per product across all items, and every product is
// checked before any is decremented: either all products are reserved or none
// is touched. When stock is short the error is a *product.InsufficientStockError
// for the first short product in item order.
type StockReserver struct{}

func NewStockReserver() StockReserver {
	return StockReserver{}
}

// Reserve decrements the stock of every product referenced by items.
// products must contain each referenced product; a missing entry is reported as
// an ObjectNotFoundError. The reserved products are returned in lock order.
func (StockReserver) Reserve(items []*order.Item, products map[kernel.UUID]*product.Product) ([]*product.Product, error) {
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}

	demand := make(map[kernel.UUID]int, len(products))
	for _, item := range items {
		if _, ok := products[item.ProductID()]; !ok {
			return nil, errs.NewObjectNotFoundError("product", item.ProductID().String())
		}
		demand[item.ProductID()] += item.Quantity()
	}

	for _, item := range items {
		if err := products[item.ProductID()].CheckStock(demand[item.ProductID()]); err != nil {
			return nil, err
		}
	}

	ids := ProductLockOrder(items)
	reserved := make([]*product.Product, 0, len(ids))
	for _, id := range ids {
		p := products[id]
		if err := p.Reserve(demand[id]); err != nil {
			return nil, err
		}
		reserved = append(reserved, p)
	}
	return reserved, nil
}

// ProductLockOrder returns the distinct product ids referenced by items in
// ascending order. Locking products in this order keeps concurrent approvals
// from deadlocking each other.
func ProductLockOrder(items []*order.Item) []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID())
	}
	slices.SortFunc(ids, kernel.UUID.Compare)
	return slices.CompactFunc(ids, kernel.UUID.IsEqual)
}
