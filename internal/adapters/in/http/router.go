package http

import (
	"encoding/json"
	"net/http"
	"sync"

	"transportorder/internal/generated/servers"
	"transportorder/internal/pkg/metrics"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

// swaggerDoc serves the OpenAPI document to the swagger UI.
type swaggerDoc struct {
	doc []byte
}

// ReadDoc implements swag.Swagger.
func (d swaggerDoc) ReadDoc() string {
	return string(d.doc)
}

var registerSwagger sync.Once

// NewRouter builds the echo instance serving the API, the swagger UI under
// /swagger/, Prometheus metrics under /metrics and a health probe.
func NewRouter(server servers.ServerInterface, gatherer prometheus.Gatherer, m *metrics.Metrics) (*echo.Echo, error) {
	doc, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}
	if err = registerDocs(doc); err != nil {
		return nil, err
	}

	validate, err := OpenAPIRequestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = NewRequestValidator()
	e.Use(middleware.Recover())
	e.Use(Metrics(m))
	e.Use(validate)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	servers.RegisterHandlers(e, server)
	return e, nil
}

func registerDocs(doc *openapi3.T) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	registerSwagger.Do(func() {
		swag.Register(swag.Name, swaggerDoc{doc: raw})
	})
	return nil
}
