package productrepo

import (
	"context"
	"errors"

	"salesorder/internal/adapters/out/postgres/pgerr"
	"salesorder/internal/core/domain/model/kernel"
	"salesorder/internal/core/domain/model/product"
	"salesorder/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM product repository.
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Add saves a new product to the database.
func (r *GormProductRepository) Add(ctx context.Context, p *product.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := fromDomain(p)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "product")
	}
	return nil
}

// Update is conditional on the version the product was loaded with. When no
// row matches, a missing product is reported as not found and a changed one as
// a version conflict.
func (r *GormProductRepository) Update(ctx context.Context, p *product.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := fromDomain(p)
	result := r.db.WithContext(ctx).
		Model(&ProductDTO{}).
		Where("id = ? AND version = ?", dto.ID, p.PersistedVersion()).
		Updates(map[string]any{
			"name":     dto.Name,
			"price":    dto.Price,
			"quantity": dto.Quantity,
			"version":  dto.Version,
		})
	if result.Error != nil {
		return pgerr.Translate(result.Error, "product")
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&ProductDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return pgerr.Translate(err, "product")
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("product", p.ID().String())
		}
		return errs.NewVersionIsInvalidErrorWithCause("product", errors.New("product "+p.ID().String()+" was changed by another transaction"))
	}
	return nil
}

// Get retrieves a product by ID.
func (r *GormProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate retrieves a product by ID and locks its row until the transaction ends.
func (r *GormProductRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), id)
}

// GetMany retrieves the products with the given IDs. Missing IDs are skipped.
func (r *GormProductRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*product.Product, error) {
	if len(ids) == 0 {
		return []*product.Product{}, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	var dtos []ProductDTO
	if err := r.db.WithContext(ctx).Where("id IN ?", raw).Find(&dtos).Error; err != nil {
		return nil, pgerr.Translate(err, "product")
	}

	products := make([]*product.Product, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

func (r *GormProductRepository) get(db *gorm.DB, id kernel.UUID) (*product.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", id.String())
		}
		return nil, pgerr.Translate(err, "product")
	}

	return toDomain(dto)
}
