package user

import (
	"errors"
	"strings"

	"salesorder/internal/core/domain/model/kernel"
	"salesorder/internal/pkg/errs"
)

var ErrUserIsNotConstructed = errors.New("User must be created via NewUser or RestoreUser")

// Role is the stored user role. Values outside the known set are kept as is
// and reported by String as "Other".
type Role int

const (
	UnknownRole Role = iota
	Admin
	Seller
	Client
)

func (r Role) String() string {
	switch r {
	case Admin:
		return "Admin"
	case Seller:
		return "Seller"
	case Client:
		return "Client"
	default:
		return "Other"
	}
}

func (r Role) IsKnown() bool {
	return r == Admin || r == Seller || r == Client
}

// CanActionOrders reports whether the role may approve or reject orders.
func (r Role) CanActionOrders() bool {
	return r == Admin || r == Seller
}

// SeesAllOrders reports whether listing is unrestricted for the role.
func (r Role) SeesAllOrders() bool {
	return r == Admin || r == Seller
}

// User is the read model of an account used for authorization decisions.
type User struct {
	id   kernel.UUID
	name string
	role Role

	isConstructed bool
}

// NewUser requires one of the known roles.
func NewUser(id kernel.UUID, name string, role Role) (*User, error) {
	if !role.IsKnown() {
		return nil, errs.NewValueIsInvalidError("role")
	}
	return RestoreUser(id, name, role)
}

// RestoreUser accepts any stored role so that callers can detect "Other".
func RestoreUser(id kernel.UUID, name string, role Role) (*User, error) {
	name = strings.TrimSpace(name)

	var nameErr error
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	if err := errors.Join(id.Validate(), nameErr); err != nil {
		return nil, err
	}

	return &User{id: id, name: name, role: role, isConstructed: true}, nil
}

func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

func (u *User) ID() kernel.UUID { return u.id }
func (u *User) Name() string    { return u.name }
func (u *User) Role() Role      { return u.role }
