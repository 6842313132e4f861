package orderrepo

import (
	"context"
	"errors"

	"salesorder/internal/adapters/out/postgres/pgerr"
	"salesorder/internal/core/domain/model/kernel"
	"salesorder/internal/core/domain/model/order"
	"salesorder/internal/core/ports"
	"salesorder/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "order")
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the mutable order columns. A map is used so that nil actioned
// fields and a zero total are written too.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":       dto.Status,
			"actioned_by":  dto.ActionedBy,
			"actioned_at":  dto.ActionedAt,
			"total_amount": dto.TotalAmount,
		})
	if result.Error != nil {
		return pgerr.Translate(result.Error, "order")
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID with its items in position order.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, r.db.WithContext(ctx), id)
}

// GetForUpdate retrieves an order by ID and locks its row until the transaction ends.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), id)
}

func (r *GormOrderRepository) get(_ context.Context, db *gorm.DB, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := db.Preload("Items", itemsInPosition).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, pgerr.Translate(err, "order")
	}

	return toDomain(dto)
}

// GetAllWithItems retrieves every order matching filter, with items.
func (r *GormOrderRepository) GetAllWithItems(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	return r.find(applyFilter(r.db.WithContext(ctx), filter))
}

// GetByCreator retrieves the orders created by userID that match filter, with items.
func (r *GormOrderRepository) GetByCreator(
	ctx context.Context,
	createdBy kernel.UUID,
	filter ports.OrderFilter,
) ([]*order.Order, error) {
	if err := createdBy.Validate(); err != nil {
		return nil, err
	}
	return r.find(applyFilter(r.db.WithContext(ctx), filter).Where("created_by = ?", createdBy.Bytes()))
}

func (r *GormOrderRepository) find(db *gorm.DB) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := db.Preload("Items", itemsInPosition).Order("order_date, id").Find(&dtos).Error; err != nil {
		return nil, pgerr.Translate(err, "order")
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func applyFilter(db *gorm.DB, filter ports.OrderFilter) *gorm.DB {
	if filter.Status != nil {
		db = db.Where("status = ?", int(*filter.Status))
	}
	if filter.From != nil {
		db = db.Where("order_date >= ?", *filter.From)
	}
	if filter.To != nil {
		db = db.Where("order_date <= ?", *filter.To)
	}
	return db
}

func itemsInPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}
