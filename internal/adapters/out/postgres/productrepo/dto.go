// Package productrepo persists catalog products with optimistic versioning.
package productrepo

import (
	"salesorder/internal/core/domain/model/kernel"
	"salesorder/internal/core/domain/model/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductDTO struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name     string          `gorm:"not null"`
	Price    decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Quantity int             `gorm:"not null;check:quantity >= 0"`
	Version  int64           `gorm:"not null;default:1"`
}

func (ProductDTO) TableName() string {
	return "products"
}

func fromDomain(p *product.Product) ProductDTO {
	return ProductDTO{
		ID:       p.ID().Bytes(),
		Name:     p.Name(),
		Price:    p.Price().Amount(),
		Quantity: p.Quantity(),
		Version:  p.Version(),
	}
}

func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}
	return product.RestoreProduct(id, dto.Name, price, dto.Quantity, dto.Version)
}
