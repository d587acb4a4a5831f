package http_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpadapter "transportorder/internal/adapters/in/http"
	"transportorder/internal/adapters/out/rulestore"
	"transportorder/internal/core/application/usecases/commands"
	"transportorder/internal/core/application/usecases/queries"
	"transportorder/internal/core/domain/model/document"
	"transportorder/internal/core/domain/model/kernel"
	"transportorder/internal/core/domain/services/collector"
	"transportorder/internal/core/domain/services/generator"
	"transportorder/internal/core/domain/services/rules"
	"transportorder/internal/core/domain/services/validator"
	"transportorder/internal/core/ports"
	"transportorder/internal/pkg/errs"
	"transportorder/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDocumentRepository struct{ mock.Mock }

func (m *MockDocumentRepository) Add(ctx context.Context, doc *document.Document) error {
	return m.Called(ctx, doc).Error(0)
}

func (m *MockDocumentRepository) Update(ctx context.Context, doc *document.Document) error {
	return m.Called(ctx, doc).Error(0)
}

func (m *MockDocumentRepository) Get(ctx context.Context, id kernel.UUID) (*document.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.Document), args.Error(1)
}

func (m *MockDocumentRepository) GetQueued(ctx context.Context, limit int) ([]*document.Document, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]*document.Document), args.Error(1)
}

type MockUnitOfWork struct{ mock.Mock }

func (m *MockUnitOfWork) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUnitOfWork) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUnitOfWork) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUnitOfWork) DocumentRepository() ports.DocumentRepository {
	return m.Called().Get(0).(ports.DocumentRepository)
}

type MockUnitOfWorkFactory struct{ mock.Mock }

func (m *MockUnitOfWorkFactory) Create() ports.UnitOfWork {
	return m.Called().Get(0).(ports.UnitOfWork)
}

type MockExchangeClient struct{ mock.Mock }

func (m *MockExchangeClient) Submit(ctx context.Context, xml string) (ports.Submission, error) {
	args := m.Called(ctx, xml)
	return args.Get(0).(ports.Submission), args.Error(1)
}

type fixture struct {
	echo     *echo.Echo
	store    *rulestore.Store
	repo     *MockDocumentRepository
	registry *prometheus.Registry
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store, err := rulestore.New(rulestore.Embedded())
	require.NoError(t, err)

	logger := slog.New(slog.DiscardHandler)
	registry := prometheus.NewRegistry()
	m := metrics.NewMetrics(registry)

	engine := rules.NewEngine(store, logger)
	generators := generator.NewRegistry(store, collector.New(store, engine), logger)

	repo := new(MockDocumentRepository)
	uow := new(MockUnitOfWork)
	uow.On("DocumentRepository").Return(repo).Maybe()
	uowFactory := new(MockUnitOfWorkFactory)
	uowFactory.On("Create").Return(uow).Maybe()
	client := new(MockExchangeClient)

	server := httpadapter.NewServer(httpadapter.Handlers{
		Generate:              commands.NewGenerateTransportOrderCommandHandler(generators, uowFactory, m, logger),
		Validate:              commands.NewValidateDocumentCommandHandler(validator.NewPipeline(store), nil, m, logger),
		Submit:                commands.NewSubmitDocumentCommandHandler(uowFactory, client, 3, logger),
		FormatCredentials:     commands.NewFormatCredentialsCommandHandler(),
		DocumentTypes:         queries.NewGetAvailableDocumentTypesQueryHandler(generators),
		DocumentTypeInfo:      queries.NewGetDocumentTypeInfoQueryHandler(generators, engine),
		DocumentExample:       queries.NewGetDocumentExampleQueryHandler(store),
		ParameterRequirements: queries.NewGetParameterRequirementsQueryHandler(store),
		QueuedDocuments:       queries.NewGetQueuedDocumentsQueryHandler(nil),
	}, logger)

	e, err := httpadapter.NewRouter(server, registry, m)
	require.NoError(t, err)

	return fixture{echo: e, store: store, repo: repo, registry: registry}
}

func (f fixture) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealthAndMetrics(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())

	rec = f.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",path="/health",status="200"} 1`)
}

func TestSwaggerServesDocument(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/swagger/doc.json", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/v1/transport-orders/{documentType}")
}

func TestGenerateTransportOrder(t *testing.T) {
	f := newFixture(t)
	input, err := f.store.ExampleInput(kernel.SimpleRoad)
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/v1/transport-orders/simple_road", map[string]any{"input": input})

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		body := decode(t, rec)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "simple_road", body["transport_type"])
		assert.Contains(t, body["xml_content"], "<transport_orders")
		assert.NotContains(t, body, "document_id")
	})

	t.Run("rejected input", func(t *testing.T) {
		in := input.Clone()
		delete(in, "scheduling_unit")

		rec := f.do(t, http.MethodPost, "/api/v1/transport-orders/simple_road", map[string]any{"input": in})

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "validation_error", body["error_type"])
	})

	t.Run("unknown document type", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/v1/transport-orders/air_freight", map[string]any{"input": input})

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode(t, rec)["message"], `unsupported document type "air_freight"`)
	})

	t.Run("body without input", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/v1/transport-orders/simple_road", map[string]any{"persist": true})

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode(t, rec)["message"], "request body has an error")
	})
}

func TestValidateTransportOrder(t *testing.T) {
	f := newFixture(t)
	xml, err := f.store.Example(kernel.SimpleRoad)
	require.NoError(t, err)

	rec := f.do(t, http.MethodPost, "/api/v1/transport-orders/simple_road/validation", map[string]any{"xml": xml})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["is_valid"])

	rec = f.do(t, http.MethodPost, "/api/v1/transport-orders/simple_road/validation", map[string]any{"xml": "<broken"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decode(t, rec)["is_valid"])

	rec = f.do(t, http.MethodPost, "/api/v1/transport-orders/simple_road/validation", map[string]any{"xml": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDocumentTypeCatalog(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/document-types", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 3, decode(t, rec)["total_count"])

	rec = f.do(t, http.MethodGet, "/api/v1/document-types/complex_road", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	info := decode(t, rec)
	assert.Equal(t, "complex_road", info["transport_type"])
	assert.Equal(t, true, info["supports_order_items"])

	rec = f.do(t, http.MethodGet, "/api/v1/document-types/ocean_visibility/example", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/document-types/complex_road/requirements", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decode(t, rec), "item_parameters")

	rec = f.do(t, http.MethodGet, "/api/v1/document-types/rail/requirements", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFormatCredentials(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/credentials", map[string]string{
		"username": "dispatcher", "company_id": "318877", "password": "s3cret",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dispatcher@318877:s3cret", decode(t, rec)["credentials"])

	rec = f.do(t, http.MethodPost, "/api/v1/credentials", map[string]string{
		"username": "", "company_id": "318877", "password": "",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	message := decode(t, rec)["message"]
	assert.Contains(t, message, "username")
	assert.Contains(t, message, "password")
}

func TestSubmitDocument(t *testing.T) {
	f := newFixture(t)
	id := kernel.NewUUID()
	f.repo.On("Get", mock.Anything, id).Return(nil, errs.NewObjectNotFoundError("document", id.String()))

	rec := f.do(t, http.MethodPost, "/api/v1/documents/"+id.String()+"/submission", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/v1/documents/not-a-uuid/submission", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPendingDocuments_RejectsLimit(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/documents/pending?limit=0", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec)["message"], "limit")
}
