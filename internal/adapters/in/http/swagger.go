package http

import (
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

// apiDocument serves the embedded document to the swagger UI. swag keeps a
// process wide registry, so it is registered once and its content replaced.
type apiDocument struct {
	mu  sync.RWMutex
	raw string
}

func (d *apiDocument) ReadDoc() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.raw
}

var (
	swaggerDoc     = &apiDocument{}
	swaggerRegOnce sync.Once
)

// registerSwaggerUI mounts the UI under /swagger/ backed by doc.
func registerSwaggerUI(e *echo.Echo, doc *openapi3.T) error {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return err
	}

	swaggerDoc.mu.Lock()
	swaggerDoc.raw = string(raw)
	swaggerDoc.mu.Unlock()

	swaggerRegOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc)
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return nil
}
