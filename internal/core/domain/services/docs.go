// Package services holds domain services that span several aggregates.
//
// StockReserver decides whether the products referenced by an order can cover
// it, and reserves their stock all at once.
package services
