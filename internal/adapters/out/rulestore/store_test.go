package rulestore_test

import (
	"io/fs"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"transportorder/internal/adapters/out/rulestore"
	"transportorder/internal/core/domain/model/kernel"
	"transportorder/internal/core/domain/model/ruleset"
	"transportorder/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEmbeddedStore(t *testing.T) *rulestore.Store {
	t.Helper()
	store, err := rulestore.New(rulestore.Embedded())
	require.NoError(t, err)
	return store
}

func minimalFS() fstest.MapFS {
	return fstest.MapFS{
		"templates/simple_road.xml":      {Data: []byte("<transport_orders/>")},
		"templates/complex_road.xml":     {Data: []byte("<transport_orders/>")},
		"templates/ocean_visibility.xml": {Data: []byte("<transport_orders/>")},
	}
}

func TestNew(t *testing.T) {
	t.Run("embedded data is complete", func(t *testing.T) {
		store := newEmbeddedStore(t)
		assert.Equal(t, kernel.AllDocumentTypes(), store.DocumentTypes())
	})

	t.Run("missing template fails eagerly", func(t *testing.T) {
		fsys := minimalFS()
		delete(fsys, "templates/complex_road.xml")

		_, err := rulestore.New(fsys)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.Contains(t, err.Error(), "complex_road.xml")
	})
}

func TestStore_Template(t *testing.T) {
	store := newEmbeddedStore(t)

	for _, dt := range kernel.AllDocumentTypes() {
		tpl, err := store.Template(dt)
		require.NoError(t, err)
		assert.Contains(t, tpl, "{transport_number}")
		assert.Contains(t, tpl, `xmlns="http://xch.transporeon.com/soap/"`)
	}

	_, err := store.Template(kernel.UnknownDocumentType)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStore_ParameterDefinitions(t *testing.T) {
	store := newEmbeddedStore(t)

	transport, err := store.ParameterDefinitions(ruleset.TransportParameters)
	require.NoError(t, err)

	simple := transport.For("simple_road")
	require.NotEmpty(t, simple.RequiredFields)
	assert.Equal(t, "number", simple.RequiredFields[0].Name)
	assert.Len(t, transport.For("ocean_visibility").OceanParameters, 4)
	require.Len(t, transport.BusinessRules, 2)
	assert.Equal(t, ruleset.FieldMappingRuleKind, transport.BusinessRules[0].Kind)

	fixed, err := store.ParameterDefinitions(ruleset.FixedParameters)
	require.NoError(t, err)
	assert.Equal(t, "NTO", fixed.For("ocean_visibility").FixedValues["status"])

	items, err := store.ParameterDefinitions(ruleset.ItemParameters)
	require.NoError(t, err)
	assert.Equal(t, []string{"material", "plantCode", "unitOfMeasurement"},
		items.For("complex_road").RecommendedParameters)

	assert.Empty(t, items.For("simple_road").RequiredFields)
}

func TestStore_ValidationRules(t *testing.T) {
	store := newEmbeddedStore(t)

	fields, err := store.ValidationRules(ruleset.FieldValidation)
	require.NoError(t, err)
	assert.Equal(t, 35, fields.Fields["number"].MaxLength)

	business, err := store.ValidationRules(ruleset.BusinessValidation)
	require.NoError(t, err)
	ocean := business.Types["ocean_visibility"]
	assert.Equal(t, 2, ocean.MinStops)
	assert.Equal(t, "true", ocean.MandatoryFixedParameters["visibility.ocean.product"])
	require.NotNil(t, business.Types["complex_road"].OrderItems)
}

func TestStore_Examples(t *testing.T) {
	store := newEmbeddedStore(t)

	xml, err := store.Example(kernel.OceanVisibility)
	require.NoError(t, err)
	assert.Contains(t, xml, "MAEU258327258")

	input, err := store.ExampleInput(kernel.OceanVisibility)
	require.NoError(t, err)
	assert.Equal(t, "MAEU", input.Text("ocean.scac.no"))
	assert.Equal(t, "VN", input.Object("departure_location").Text("country"))

	input["number"] = "changed"
	again, err := store.ExampleInput(kernel.OceanVisibility)
	require.NoError(t, err)
	assert.Equal(t, "4500831479-20", again.Text("number"))
}

func TestStore_MissingResources(t *testing.T) {
	store, err := rulestore.New(minimalFS())
	require.NoError(t, err)

	_, err = store.ParameterDefinitions(ruleset.OrderParameters)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	_, err = store.ValidationRules(ruleset.BusinessValidation)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	_, err = store.Example(kernel.SimpleRoad)
	var notFound *errs.ObjectNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "example", notFound.ParamName)
}

func TestStore_Reset(t *testing.T) {
	fsys := minimalFS()
	store, err := rulestore.New(fsys)
	require.NoError(t, err)

	before, err := store.Template(kernel.SimpleRoad)
	require.NoError(t, err)

	fsys["templates/simple_road.xml"] = &fstest.MapFile{Data: []byte("<transport_orders><changed/></transport_orders>")}

	cached, err := store.Template(kernel.SimpleRoad)
	require.NoError(t, err)
	assert.Equal(t, before, cached)

	store.Reset()

	reloaded, err := store.Template(kernel.SimpleRoad)
	require.NoError(t, err)
	assert.Contains(t, reloaded, "<changed/>")
}

func TestStore_ConcurrentReads(t *testing.T) {
	store := newEmbeddedStore(t)
	done := make(chan struct{})

	for range 8 {
		go func() {
			defer func() { done <- struct{}{} }()
			for range 50 {
				_, _ = store.Template(kernel.ComplexRoad)
				_, _ = store.ParameterDefinitions(ruleset.TransportParameters)
			}
		}()
	}
	go store.Reset()

	for range 8 {
		<-done
	}
}

// pausingFS holds the first Open of name after the file is opened, until
// release is closed.
type pausingFS struct {
	fsys    fstest.MapFS
	name    string
	armed   atomic.Bool
	opened  chan struct{}
	release chan struct{}
}

func (p *pausingFS) Open(name string) (fs.File, error) {
	f, err := p.fsys.Open(name)
	if name == p.name && p.armed.CompareAndSwap(true, false) {
		close(p.opened)
		<-p.release
	}
	return f, err
}

func TestStore_ResetDuringLoad(t *testing.T) {
	fsys := minimalFS()
	paused := &pausingFS{
		fsys:    fsys,
		name:    "templates/simple_road.xml",
		opened:  make(chan struct{}),
		release: make(chan struct{}),
	}
	store, err := rulestore.New(paused)
	require.NoError(t, err)

	paused.armed.Store(true)
	loaded := make(chan string, 1)
	go func() {
		tpl, err := store.Template(kernel.SimpleRoad)
		assert.NoError(t, err)
		loaded <- tpl
	}()

	<-paused.opened
	fsys["templates/simple_road.xml"] = &fstest.MapFile{Data: []byte("<reloaded/>")}
	store.Reset()
	close(paused.release)

	assert.Equal(t, "<transport_orders/>", <-loaded)

	tpl, err := store.Template(kernel.SimpleRoad)
	require.NoError(t, err)
	assert.Equal(t, "<reloaded/>", tpl)
}
