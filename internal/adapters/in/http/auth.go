package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"salesorder/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const callerKey = "callerID"

var ErrEmptySecret = errors.New("jwt secret is empty")

// Authenticator verifies HS256 bearer tokens whose subject is the caller's user id.
type Authenticator struct {
	secret []byte
}

// NewAuthenticator returns ErrEmptySecret for an empty secret.
func NewAuthenticator(secret []byte) (*Authenticator, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	return &Authenticator{secret: secret}, nil
}

// Issue signs a token for userID that expires after ttl.
func (a *Authenticator) Issue(userID kernel.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Parse verifies raw and returns the user id from its subject.
func (a *Authenticator) Parse(raw string) (kernel.UUID, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return kernel.UUID{}, err
	}
	return kernel.UUIDFromString(claims.Subject)
}

// Middleware rejects requests without a valid bearer token and stores the caller id.
func (a *Authenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				return fail(c, http.StatusUnauthorized, "missing bearer token")
			}

			caller, err := a.Parse(strings.TrimSpace(raw))
			if err != nil {
				return fail(c, http.StatusUnauthorized, "invalid token")
			}

			c.Set(callerKey, caller)
			return next(c)
		}
	}
}

func callerID(c echo.Context) (kernel.UUID, bool) {
	id, ok := c.Get(callerKey).(kernel.UUID)
	return id, ok
}
