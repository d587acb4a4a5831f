package queries_test

import (
	"log/slog"
	"testing"

	"transportorder/internal/adapters/out/rulestore"
	"transportorder/internal/core/application/usecases/queries"
	"transportorder/internal/core/domain/model/kernel"
	"transportorder/internal/core/domain/services/collector"
	"transportorder/internal/core/domain/services/generator"
	"transportorder/internal/core/domain/services/rules"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type catalogFixture struct {
	store    *rulestore.Store
	engine   *rules.Engine
	registry *generator.Registry
}

func newCatalogFixture(t *testing.T) catalogFixture {
	t.Helper()
	store, err := rulestore.New(rulestore.Embedded())
	require.NoError(t, err)

	logger := slog.New(slog.DiscardHandler)
	engine := rules.NewEngine(store, logger)
	return catalogFixture{
		store:    store,
		engine:   engine,
		registry: generator.NewRegistry(store, collector.New(store, engine), logger),
	}
}

func TestGetAvailableDocumentTypesQueryHandler_Handle(t *testing.T) {
	f := newCatalogFixture(t)
	handler := queries.NewGetAvailableDocumentTypesQueryHandler(f.registry)

	resp, err := handler.Handle(t.Context(), queries.NewGetAvailableDocumentTypesQuery())

	require.NoError(t, err)
	assert.Equal(t, 3, resp.TotalCount)
	require.Len(t, resp.Types, 3)
	assert.Equal(t, "simple_road", resp.Types[0].Type)
	assert.Equal(t, "complex_road", resp.Types[1].Type)
	assert.Equal(t, "ocean_visibility", resp.Types[2].Type)
	assert.Contains(t, resp.Types[2].Description, "Maritime shipment tracking")

	_, err = handler.Handle(t.Context(), queries.GetAvailableDocumentTypesQuery{})
	require.ErrorIs(t, err, queries.ErrGetAvailableDocumentTypesQueryIsNotConstructed)
}

func TestGetDocumentTypeInfoQueryHandler_Handle(t *testing.T) {
	f := newCatalogFixture(t)
	handler := queries.NewGetDocumentTypeInfoQueryHandler(f.registry, f.engine)

	query, err := queries.NewGetDocumentTypeInfoQuery(kernel.SimpleRoad)
	require.NoError(t, err)

	resp, err := handler.Handle(t.Context(), query)

	require.NoError(t, err)
	assert.Equal(t, "simple_road", resp.TransportType)
	assert.True(t, resp.SupportsPricing)
	assert.Equal(t, []string{"number", "status", "scheduling_unit"}, resp.RequiredFields)
	require.NotEmpty(t, resp.BusinessRules)
	assert.Equal(t, "carrier_id_mapping_rule", resp.BusinessRules[0].ID)
	assert.NotEmpty(t, resp.ExampleInput)

	_, err = queries.NewGetDocumentTypeInfoQuery(kernel.UnknownDocumentType)
	require.Error(t, err)
}

func TestGetDocumentExampleQueryHandler_Handle(t *testing.T) {
	f := newCatalogFixture(t)
	handler := queries.NewGetDocumentExampleQueryHandler(f.store)

	query, err := queries.NewGetDocumentExampleQuery(kernel.OceanVisibility)
	require.NoError(t, err)

	resp, err := handler.Handle(t.Context(), query)

	require.NoError(t, err)
	assert.Equal(t, "ocean_visibility", resp.DocumentType)
	assert.NotEmpty(t, resp.Input)
	assert.Contains(t, resp.XML, "<transport_orders")

	var zero queries.GetDocumentExampleQuery
	require.ErrorIs(t, zero.Validate(), queries.ErrGetDocumentExampleQueryIsNotConstructed)
}

func TestGetParameterRequirementsQueryHandler_Handle(t *testing.T) {
	f := newCatalogFixture(t)
	handler := queries.NewGetParameterRequirementsQueryHandler(f.store)

	t.Run("complex road carries item parameters", func(t *testing.T) {
		query, err := queries.NewGetParameterRequirementsQuery(kernel.ComplexRoad)
		require.NoError(t, err)

		resp, err := handler.Handle(t.Context(), query)

		require.NoError(t, err)
		assert.Equal(t, "complex_road", resp.DocumentType)
		assert.NotEmpty(t, resp.Transport.RequiredFields)
		require.NotNil(t, resp.Item)
		assert.Equal(t, []string{"material", "plantCode", "unitOfMeasurement"}, resp.Item.RecommendedParameters)
	})

	t.Run("other types have none", func(t *testing.T) {
		query, err := queries.NewGetParameterRequirementsQuery(kernel.OceanVisibility)
		require.NoError(t, err)

		resp, err := handler.Handle(t.Context(), query)

		require.NoError(t, err)
		assert.Nil(t, resp.Item)
		assert.NotEmpty(t, resp.Fixed.FixedValues)
	})
}
