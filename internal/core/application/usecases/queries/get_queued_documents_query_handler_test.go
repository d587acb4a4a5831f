package queries_test

import (
	"context"
	"testing"
	"time"

	"transportorder/internal/adapters/out/postgres/documentrepo"
	"transportorder/internal/core/application/usecases/queries"
	"transportorder/internal/core/domain/model/document"
	"transportorder/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const queuedXML = `<transport_orders xmlns="http://xch.transporeon.com/soap/"><transport_order/></transport_orders>`

type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(kernel.UUID, any) {}

type GetQueuedDocumentsQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetQueuedDocumentsQueryHandler
	repo      *documentrepo.GormDocumentRepository
}

func TestGetQueuedDocumentsQueryHandler(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(GetQueuedDocumentsQueryHandlerTestSuite))
}

func (suite *GetQueuedDocumentsQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&documentrepo.DocumentDTO{}))

	suite.handler = queries.NewGetQueuedDocumentsQueryHandler(db)
	suite.repo = documentrepo.NewGormDocumentRepository(db, &mockAggregateTracker{})
}

func (suite *GetQueuedDocumentsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetQueuedDocumentsQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE transport_documents").Error)
}

func (suite *GetQueuedDocumentsQueryHandlerTestSuite) save(orderNumber string, queue bool) *document.Document {
	doc, err := document.NewDocument(kernel.NewUUID(), kernel.SimpleRoad, orderNumber, queuedXML, nil)
	suite.Require().NoError(err)
	if queue {
		suite.Require().NoError(doc.Queue())
	}
	suite.Require().NoError(suite.repo.Add(suite.T().Context(), doc))
	time.Sleep(2 * time.Millisecond)
	return doc
}

func (suite *GetQueuedDocumentsQueryHandlerTestSuite) handle(limit int) []queries.GetQueuedDocumentsQueryResponse {
	query, err := queries.NewGetQueuedDocumentsQuery(limit)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(suite.T().Context(), query)
	suite.Require().NoError(err)
	return result
}

func (suite *GetQueuedDocumentsQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	result := suite.handle(10)

	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetQueuedDocumentsQueryHandlerTestSuite) TestHandle_OnlyGenerated_ReturnsEmptySlice() {
	suite.save("1404338", false)

	suite.Empty(suite.handle(10))
}

func (suite *GetQueuedDocumentsQueryHandlerTestSuite) TestHandle_ReturnsQueuedOldestFirst() {
	first := suite.save("A", true)
	suite.save("generated-only", false)
	second := suite.save("B", true)
	suite.save("C", true)

	result := suite.handle(2)

	suite.Require().Len(result, 2)
	suite.True(first.ID().IsEqual(result[0].ID))
	suite.True(second.ID().IsEqual(result[1].ID))
	suite.Equal(kernel.SimpleRoad, result[0].DocumentType)
	suite.Equal("A", result[0].OrderNumber)
	suite.Zero(result[0].Attempts)
	suite.Empty(result[0].LastError)
	suite.False(result[0].CreatedAt.IsZero())
}

func (suite *GetQueuedDocumentsQueryHandlerTestSuite) TestHandle_ReportsLastFailure() {
	doc := suite.save("1404338", true)
	suite.Require().NoError(doc.RecordFailure("status 503", true, 3))
	suite.Require().NoError(suite.repo.Update(suite.T().Context(), doc))

	result := suite.handle(10)

	suite.Require().Len(result, 1)
	suite.Equal(1, result[0].Attempts)
	suite.Equal("status 503", result[0].LastError)
}

func TestNewGetQueuedDocumentsQuery(t *testing.T) {
	for _, limit := range []int{0, -1, 1001} {
		_, err := queries.NewGetQueuedDocumentsQuery(limit)
		require.Error(t, err, "limit %d", limit)
	}

	query, err := queries.NewGetQueuedDocumentsQuery(1000)
	require.NoError(t, err)
	require.Equal(t, 1000, query.Limit())

	var zero queries.GetQueuedDocumentsQuery
	require.ErrorIs(t, zero.Validate(), queries.ErrGetQueuedDocumentsQueryIsNotConstructed)
}
