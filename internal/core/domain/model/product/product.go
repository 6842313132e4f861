package product

import (
	"errors"
	"fmt"
	"strings"

	"salesorder/internal/core/domain/model/kernel"
	"salesorder/internal/pkg/errs"
)

var (
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct or RestoreProduct")
	ErrInsufficientStock       = errors.New("insufficient stock")
)

// InsufficientStockError names the product whose stock cannot cover the requested quantity.
type InsufficientStockError struct {
	ProductID   kernel.UUID
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("product %s has insufficient stock", e.ProductName)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// Product is a catalog entry with its unit price and stock on hand. version is
// the optimistic concurrency token and increases with every stock change.
type Product struct {
	id       kernel.UUID
	name     string
	price    kernel.Money
	quantity int
	version  int64

	persistedVersion int64

	isConstructed bool
}

// NewProduct creates a product at version 1 that has not been stored yet.
func NewProduct(id kernel.UUID, name string, price kernel.Money, quantity int) (*Product, error) {
	p, err := RestoreProduct(id, name, price, quantity, 1)
	if err != nil {
		return nil, err
	}
	p.persistedVersion = 0
	return p, nil
}

func RestoreProduct(id kernel.UUID, name string, price kernel.Money, quantity int, version int64) (*Product, error) {
	p := &Product{isConstructed: true}

	if err := errors.Join(
		id.Validate(),
		p.setName(name),
		price.Validate(),
		p.setQuantity(quantity),
		p.setVersion(version),
	); err != nil {
		return nil, err
	}

	p.id = id
	p.price = price
	p.persistedVersion = version
	return p, nil
}

func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

func (p *Product) ID() kernel.UUID     { return p.id }
func (p *Product) Name() string        { return p.name }
func (p *Product) Price() kernel.Money { return p.price }
func (p *Product) Quantity() int       { return p.quantity }
func (p *Product) Version() int64      { return p.version }

// PersistedVersion is the version the product was loaded with, or 0 for a
// product that was never stored. Updates are conditional on it.
func (p *Product) PersistedVersion() int64 {
	return p.persistedVersion
}

// CheckStock returns an *InsufficientStockError when fewer than requested units are on hand.
func (p *Product) CheckStock(requested int) error {
	if requested <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("requested quantity", fmt.Errorf("%d is not greater than 0", requested))
	}
	if p.quantity < requested {
		return &InsufficientStockError{
			ProductID:   p.id,
			ProductName: p.name,
			Requested:   requested,
			Available:   p.quantity,
		}
	}
	return nil
}

// Reserve decrements stock by requested units and bumps the version.
func (p *Product) Reserve(requested int) error {
	if err := p.CheckStock(requested); err != nil {
		return err
	}
	p.quantity -= requested
	p.version++
	return nil
}

func (p *Product) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Product) setQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 0, "unbounded")
	}
	p.quantity = quantity
	return nil
}

func (p *Product) setVersion(version int64) error {
	if version < 1 {
		return errs.NewVersionIsInvalidErrorWithCause("version", fmt.Errorf("%d is less than 1", version))
	}
	p.version = version
	return nil
}
