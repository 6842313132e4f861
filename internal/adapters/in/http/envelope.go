package http

import (
	"net/http"

	"salesorder/internal/pkg/result"

	"github.com/labstack/echo/v4"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func statusCode(s result.Status) int {
	switch s {
	case result.OK:
		return http.StatusOK
	case result.Created:
		return http.StatusCreated
	case result.BadRequest:
		return http.StatusBadRequest
	case result.Forbidden:
		return http.StatusForbidden
	case result.NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respond writes res. data converts the payload of a successful result and is
// not called for failures.
func respond[T any](c echo.Context, res result.Result[T], data func(T) any) error {
	body := Envelope{Success: res.IsSuccess(), Message: res.Message()}
	if res.IsSuccess() && data != nil {
		body.Data = data(res.Data())
	}
	return c.JSON(statusCode(res.Status()), body)
}

func fail(c echo.Context, code int, message string) error {
	return c.JSON(code, Envelope{Success: false, Message: message})
}
