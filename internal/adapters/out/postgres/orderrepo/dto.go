// Package orderrepo persists the order aggregate and its items.
package orderrepo

import (
	"time"

	"salesorder/internal/core/domain/model/kernel"
	"salesorder/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CreatedBy   uuid.UUID  `gorm:"type:uuid;not null;index"`
	OrderDate   time.Time  `gorm:"not null;index"`
	Status      int        `gorm:"not null;index"`
	ActionedBy  *uuid.UUID `gorm:"type:uuid"`
	ActionedAt  *time.Time
	TotalAmount decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	Items       []OrderItemDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type OrderItemDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position  int             `gorm:"not null"`
	Quantity  int             `gorm:"not null;check:quantity > 0"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(18,2);not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain maps the order columns only; items are written by the item repository.
func fromDomain(o *order.Order) OrderDTO {
	var actionedBy *uuid.UUID
	if id := o.ActionedBy(); id != nil {
		raw := id.Bytes()
		actionedBy = &raw
	}

	return OrderDTO{
		ID:          o.ID().Bytes(),
		CreatedBy:   o.CreatedBy().Bytes(),
		OrderDate:   o.OrderDate(),
		Status:      int(o.Status()),
		ActionedBy:  actionedBy,
		ActionedAt:  o.ActionedAt(),
		TotalAmount: o.TotalAmount().Amount(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	createdBy, err := kernel.UUIDFromBytes(dto.CreatedBy[:])
	if err != nil {
		return nil, err
	}

	var actionedBy *kernel.UUID
	if dto.ActionedBy != nil {
		aID, aErr := kernel.UUIDFromBytes(dto.ActionedBy[:])
		if aErr != nil {
			return nil, aErr
		}
		actionedBy = &aID
	}

	var actionedAt *time.Time
	if dto.ActionedAt != nil {
		at := dto.ActionedAt.UTC()
		actionedAt = &at
	}

	total, err := kernel.NewMoney(dto.TotalAmount)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(id, createdBy, dto.OrderDate, order.Status(dto.Status), actionedBy, actionedAt, total, items)
}

func itemFromDomain(item *order.Item) OrderItemDTO {
	return OrderItemDTO{
		ID:        item.ID().Bytes(),
		OrderID:   item.OrderID().Bytes(),
		ProductID: item.ProductID().Bytes(),
		Position:  item.Position(),
		Quantity:  item.Quantity(),
		UnitPrice: item.UnitPrice().Amount(),
	}
}

func itemToDomain(dto OrderItemDTO) (*order.Item, error) {
	unitPrice, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return nil, err
	}
	return order.RestoreItem(
		kernel.UUIDFromGoogle(dto.ID),
		kernel.UUIDFromGoogle(dto.OrderID),
		kernel.UUIDFromGoogle(dto.ProductID),
		dto.Position,
		dto.Quantity,
		unitPrice,
	)
}
