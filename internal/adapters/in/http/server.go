package http

import (
	"log/slog"
	"net/http"

	"transportorder/internal/core/application/usecases/commands"
	"transportorder/internal/core/application/usecases/queries"
	"transportorder/internal/core/domain/model/kernel"
	"transportorder/internal/core/domain/model/transportorder"
	"transportorder/internal/core/domain/services/generator"
	"transportorder/internal/generated/servers"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const defaultPendingLimit = 100

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	Generate          commands.GenerateTransportOrderCommandHandler
	Validate          commands.ValidateDocumentCommandHandler
	Submit            commands.SubmitDocumentCommandHandler
	FormatCredentials commands.FormatCredentialsCommandHandler

	DocumentTypes         queries.GetAvailableDocumentTypesQueryHandler
	DocumentTypeInfo      queries.GetDocumentTypeInfoQueryHandler
	DocumentExample       queries.GetDocumentExampleQueryHandler
	ParameterRequirements queries.GetParameterRequirementsQueryHandler
	QueuedDocuments       queries.GetQueuedDocumentsQueryHandler
}

// Server implements servers.ServerInterface on top of the application use
// cases.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer returns a Server that logs as component http_server.
func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "http_server"),
	}
}

// GenerateTransportOrder handles POST /api/v1/transport-orders/{documentType}.
// Rejected input answers 422, broken rule data 500; both carry the full
// generation result.
func (s *Server) GenerateTransportOrder(ctx echo.Context, documentType servers.DocumentType) error {
	t, err := kernel.ParseDocumentType(documentType)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body servers.GenerateRequest
	if err = s.bind(ctx, &body); err != nil {
		return err
	}

	cmd, err := commands.NewGenerateTransportOrderCommand(
		t, transportorder.Input(body.Input), flag(body.Persist), flag(body.Submit))
	if err != nil {
		return s.fail(ctx, err)
	}

	resp, err := s.handlers.Generate.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	switch {
	case !resp.Success && resp.ErrorKind == generator.ValidationError:
		return ctx.JSON(http.StatusUnprocessableEntity, resp)
	case !resp.Success:
		return ctx.JSON(http.StatusInternalServerError, resp)
	case resp.DocumentID != "":
		return ctx.JSON(http.StatusCreated, resp)
	default:
		return ctx.JSON(http.StatusOK, resp)
	}
}

// ValidateTransportOrder handles POST /api/v1/transport-orders/{documentType}/validation.
// An invalid document is still a 200; the verdict is in the report.
func (s *Server) ValidateTransportOrder(ctx echo.Context, documentType servers.DocumentType) error {
	t, err := kernel.ParseDocumentType(documentType)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body servers.ValidateRequest
	if err = s.bind(ctx, &body); err != nil {
		return err
	}

	cmd, err := commands.NewValidateDocumentCommand(body.Xml, t)
	if err != nil {
		return s.fail(ctx, err)
	}

	report, err := s.handlers.Validate.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, report)
}

// GetDocumentTypes handles GET /api/v1/document-types.
func (s *Server) GetDocumentTypes(ctx echo.Context) error {
	resp, err := s.handlers.DocumentTypes.Handle(ctx.Request().Context(), queries.NewGetAvailableDocumentTypesQuery())
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, resp)
}

// GetDocumentTypeInfo handles GET /api/v1/document-types/{documentType}.
func (s *Server) GetDocumentTypeInfo(ctx echo.Context, documentType servers.DocumentType) error {
	t, err := kernel.ParseDocumentType(documentType)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetDocumentTypeInfoQuery(t)
	if err != nil {
		return s.fail(ctx, err)
	}

	resp, err := s.handlers.DocumentTypeInfo.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, resp)
}

// GetDocumentExample handles GET /api/v1/document-types/{documentType}/example.
func (s *Server) GetDocumentExample(ctx echo.Context, documentType servers.DocumentType) error {
	t, err := kernel.ParseDocumentType(documentType)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetDocumentExampleQuery(t)
	if err != nil {
		return s.fail(ctx, err)
	}

	resp, err := s.handlers.DocumentExample.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, resp)
}

// GetParameterRequirements handles GET /api/v1/document-types/{documentType}/requirements.
func (s *Server) GetParameterRequirements(ctx echo.Context, documentType servers.DocumentType) error {
	t, err := kernel.ParseDocumentType(documentType)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetParameterRequirementsQuery(t)
	if err != nil {
		return s.fail(ctx, err)
	}

	resp, err := s.handlers.ParameterRequirements.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, resp)
}

// FormatCredentials handles POST /api/v1/credentials.
func (s *Server) FormatCredentials(ctx echo.Context) error {
	var body servers.CredentialsRequest
	if err := s.bind(ctx, &body); err != nil {
		return err
	}

	cmd, err := commands.NewFormatCredentialsCommand(body.Username, body.CompanyId, body.Password)
	if err != nil {
		return s.fail(ctx, err)
	}

	resp, err := s.handlers.FormatCredentials.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, resp)
}

// GetPendingDocuments handles GET /api/v1/documents/pending.
func (s *Server) GetPendingDocuments(ctx echo.Context, params servers.GetPendingDocumentsParams) error {
	if err := ctx.Validate(params); err != nil {
		return err
	}

	limit := defaultPendingLimit
	if params.Limit != nil {
		limit = *params.Limit
	}
	query, err := queries.NewGetQueuedDocumentsQuery(limit)
	if err != nil {
		return s.fail(ctx, err)
	}

	documents, err := s.handlers.QueuedDocuments.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]servers.PendingDocument, len(documents))
	for i, doc := range documents {
		response[i] = servers.PendingDocument{
			Id:            doc.ID.Value(),
			TransportType: doc.DocumentType.String(),
			OrderNumber:   doc.OrderNumber,
			Attempts:      doc.Attempts,
			CreatedAt:     doc.CreatedAt,
		}
		if doc.LastError != "" {
			lastError := doc.LastError
			response[i].LastError = &lastError
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// SubmitDocument handles POST /api/v1/documents/{documentId}/submission.
// A delivery the exchange refused answers 502 with the recorded outcome.
func (s *Server) SubmitDocument(ctx echo.Context, documentId openapi_types.UUID) error {
	id, err := kernel.UUIDFromBytes(documentId[:])
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewSubmitDocumentCommand(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	resp, err := s.handlers.Submit.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	if !resp.Accepted {
		return ctx.JSON(http.StatusBadGateway, resp)
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (s *Server) bind(ctx echo.Context, body any) error {
	if err := ctx.Bind(body); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	return ctx.Validate(body)
}

func flag(value *bool) bool {
	return value != nil && *value
}
