package postgres

import (
	"salesorder/internal/adapters/out/postgres/orderrepo"
	"salesorder/internal/adapters/out/postgres/outboxrepo"
	"salesorder/internal/adapters/out/postgres/productrepo"
	"salesorder/internal/adapters/out/postgres/userrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the schema. Tables are listed parent first.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userrepo.UserDTO{},
		&productrepo.ProductDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&outboxrepo.OutboxDTO{},
	)
}
