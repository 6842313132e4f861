package ports

import (
	"context"

	"salesorder/internal/core/domain/model/kernel"
	"salesorder/internal/core/domain/model/product"
)

// ProductRepository persists catalog products.
type ProductRepository interface {
	Add(ctx context.Context, aggregate *product.Product) error

	// Update writes the product only if the stored version is the one the
	// product was loaded with. A stale version yields errs.VersionIsInvalidError.
	Update(ctx context.Context, aggregate *product.Product) error

	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// GetForUpdate locks the product row until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// GetMany returns the products that exist among ids, in no particular order.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*product.Product, error)
}
