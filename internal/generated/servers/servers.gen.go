// Package servers provides primitives to interact with the openapi HTTP API.
package servers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// GenerateRequest defines model for GenerateRequest.
type GenerateRequest struct {
	Input   map[string]interface{} `json:"input" validate:"required"`
	Persist *bool                  `json:"persist,omitempty"`
	Submit  *bool                  `json:"submit,omitempty"`
}

// ValidateRequest defines model for ValidateRequest.
type ValidateRequest struct {
	Xml string `json:"xml" validate:"required"`
}

// CredentialsRequest defines model for CredentialsRequest.
type CredentialsRequest struct {
	CompanyId string `json:"company_id"`
	Password  string `json:"password"`
	Username  string `json:"username"`
}

// PendingDocument defines model for PendingDocument.
type PendingDocument struct {
	Attempts      int                `json:"attempts"`
	CreatedAt     time.Time          `json:"created_at"`
	Id            openapi_types.UUID `json:"id"`
	LastError     *string            `json:"last_error,omitempty"`
	OrderNumber   string             `json:"order_number"`
	TransportType string             `json:"transport_type"`
}

// DocumentType defines model for DocumentType.
type DocumentType = string

// GetPendingDocumentsParams defines parameters for GetPendingDocuments.
type GetPendingDocumentsParams struct {
	Limit *int `form:"limit,omitempty" json:"limit,omitempty" validate:"omitempty,min=1,max=1000"`
}

// GenerateTransportOrderJSONRequestBody defines body for GenerateTransportOrder for application/json ContentType.
type GenerateTransportOrderJSONRequestBody = GenerateRequest

// ValidateTransportOrderJSONRequestBody defines body for ValidateTransportOrder for application/json ContentType.
type ValidateTransportOrderJSONRequestBody = ValidateRequest

// FormatCredentialsJSONRequestBody defines body for FormatCredentials for application/json ContentType.
type FormatCredentialsJSONRequestBody = CredentialsRequest

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Format exchange credentials
	// (POST /api/v1/credentials)
	FormatCredentials(ctx echo.Context) error
	// List the supported document types
	// (GET /api/v1/document-types)
	GetDocumentTypes(ctx echo.Context) error
	// Capabilities and business rules of a document type
	// (GET /api/v1/document-types/{documentType})
	GetDocumentTypeInfo(ctx echo.Context, documentType DocumentType) error
	// Example input and XML of a document type
	// (GET /api/v1/document-types/{documentType}/example)
	GetDocumentExample(ctx echo.Context, documentType DocumentType) error
	// Field definitions of a document type
	// (GET /api/v1/document-types/{documentType}/requirements)
	GetParameterRequirements(ctx echo.Context, documentType DocumentType) error
	// Documents waiting for delivery
	// (GET /api/v1/documents/pending)
	GetPendingDocuments(ctx echo.Context, params GetPendingDocumentsParams) error
	// Deliver a stored document to the exchange
	// (POST /api/v1/documents/{documentId}/submission)
	SubmitDocument(ctx echo.Context, documentId openapi_types.UUID) error
	// Generate a transport order document
	// (POST /api/v1/transport-orders/{documentType})
	GenerateTransportOrder(ctx echo.Context, documentType DocumentType) error
	// Validate a transport order document
	// (POST /api/v1/transport-orders/{documentType}/validation)
	ValidateTransportOrder(ctx echo.Context, documentType DocumentType) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// FormatCredentials converts echo context to params.
func (w *ServerInterfaceWrapper) FormatCredentials(ctx echo.Context) error {
	return w.Handler.FormatCredentials(ctx)
}

// GetDocumentTypes converts echo context to params.
func (w *ServerInterfaceWrapper) GetDocumentTypes(ctx echo.Context) error {
	return w.Handler.GetDocumentTypes(ctx)
}

// GetDocumentTypeInfo converts echo context to params.
func (w *ServerInterfaceWrapper) GetDocumentTypeInfo(ctx echo.Context) error {
	documentType, err := bindDocumentType(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetDocumentTypeInfo(ctx, documentType)
}

// GetDocumentExample converts echo context to params.
func (w *ServerInterfaceWrapper) GetDocumentExample(ctx echo.Context) error {
	documentType, err := bindDocumentType(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetDocumentExample(ctx, documentType)
}

// GetParameterRequirements converts echo context to params.
func (w *ServerInterfaceWrapper) GetParameterRequirements(ctx echo.Context) error {
	documentType, err := bindDocumentType(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetParameterRequirements(ctx, documentType)
}

// GetPendingDocuments converts echo context to params.
func (w *ServerInterfaceWrapper) GetPendingDocuments(ctx echo.Context) error {
	var params GetPendingDocumentsParams

	err := runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}

	return w.Handler.GetPendingDocuments(ctx, params)
}

// SubmitDocument converts echo context to params.
func (w *ServerInterfaceWrapper) SubmitDocument(ctx echo.Context) error {
	var documentId openapi_types.UUID

	err := runtime.BindStyledParameterWithOptions("simple", "documentId", ctx.Param("documentId"), &documentId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter documentId: %s", err))
	}

	return w.Handler.SubmitDocument(ctx, documentId)
}

// GenerateTransportOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GenerateTransportOrder(ctx echo.Context) error {
	documentType, err := bindDocumentType(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GenerateTransportOrder(ctx, documentType)
}

// ValidateTransportOrder converts echo context to params.
func (w *ServerInterfaceWrapper) ValidateTransportOrder(ctx echo.Context) error {
	documentType, err := bindDocumentType(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ValidateTransportOrder(ctx, documentType)
}

func bindDocumentType(ctx echo.Context) (DocumentType, error) {
	var documentType DocumentType

	err := runtime.BindStyledParameterWithOptions("simple", "documentType", ctx.Param("documentType"), &documentType,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter documentType: %s", err))
	}
	return documentType, nil
}

// EchoRouter is an interface for echo.Echo and echo.Group.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers, and prepends BaseURL to the
// paths, so that the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/api/v1/credentials", wrapper.FormatCredentials)
	router.GET(baseURL+"/api/v1/document-types", wrapper.GetDocumentTypes)
	router.GET(baseURL+"/api/v1/document-types/:documentType", wrapper.GetDocumentTypeInfo)
	router.GET(baseURL+"/api/v1/document-types/:documentType/example", wrapper.GetDocumentExample)
	router.GET(baseURL+"/api/v1/document-types/:documentType/requirements", wrapper.GetParameterRequirements)
	router.GET(baseURL+"/api/v1/documents/pending", wrapper.GetPendingDocuments)
	router.POST(baseURL+"/api/v1/documents/:documentId/submission", wrapper.SubmitDocument)
	router.POST(baseURL+"/api/v1/transport-orders/:documentType", wrapper.GenerateTransportOrder)
	router.POST(baseURL+"/api/v1/transport-orders/:documentType/validation", wrapper.ValidateTransportOrder)
}
