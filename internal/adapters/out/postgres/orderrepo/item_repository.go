package orderrepo

import (
	"context"
	"errors"

	"salesorder/internal/adapters/out/postgres/pgerr"
	"salesorder/internal/core/domain/model/kernel"
	"salesorder/internal/core/domain/model/order"
	"salesorder/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormOrderItemRepository struct {
	db *gorm.DB
}

// NewGormOrderItemRepository creates a new GORM order item repository.
func NewGormOrderItemRepository(db *gorm.DB) *GormOrderItemRepository {
	return &GormOrderItemRepository{db: db}
}

// Add saves a new order item to the database.
func (r *GormOrderItemRepository) Add(ctx context.Context, item *order.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := itemFromDomain(item)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "order item")
	}
	return nil
}

// Update saves an existing order item to the database.
func (r *GormOrderItemRepository) Update(ctx context.Context, item *order.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := itemFromDomain(item)
	result := r.db.WithContext(ctx).
		Model(&OrderItemDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"position":   dto.Position,
			"quantity":   dto.Quantity,
			"unit_price": dto.UnitPrice,
		})
	if result.Error != nil {
		return pgerr.Translate(result.Error, "order item")
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order item", item.ID().String())
	}
	return nil
}

// Get retrieves an order item by ID.
func (r *GormOrderItemRepository) Get(ctx context.Context, id kernel.UUID) (*order.Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderItemDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order item", id.String())
		}
		return nil, pgerr.Translate(err, "order item")
	}

	return itemToDomain(dto)
}
