package ports

import (
	"context"

	"salesorder/internal/core/domain/model/kernel"
	"salesorder/internal/core/domain/model/user"
)

type UserRepository interface {
	Add(ctx context.Context, u *user.User) error
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)
}
