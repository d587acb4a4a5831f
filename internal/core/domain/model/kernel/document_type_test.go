package kernel_test

import (
	"testing"

	"transportorder/internal/core/domain/model/kernel"
	"transportorder/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocumentType(t *testing.T) {
	for _, dt := range kernel.AllDocumentTypes() {
		t.Run(dt.String(), func(t *testing.T) {
			parsed, err := kernel.ParseDocumentType(dt.String())

			require.NoError(t, err)
			assert.Equal(t, dt, parsed)
			require.NoError(t, parsed.Validate())
		})
	}

	t.Run("unsupported name", func(t *testing.T) {
		parsed, err := kernel.ParseDocumentType("air_freight")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, kernel.UnknownDocumentType, parsed)
		assert.Contains(t, err.Error(), "air_freight")
	})
}

func TestDocumentType_String(t *testing.T) {
	assert.Equal(t, "simple_road", kernel.SimpleRoad.String())
	assert.Equal(t, "complex_road", kernel.ComplexRoad.String())
	assert.Equal(t, "ocean_visibility", kernel.OceanVisibility.String())
	assert.Equal(t, "unknown", kernel.UnknownDocumentType.String())
	assert.Equal(t, "unknown", kernel.DocumentType(42).String())
	require.Error(t, kernel.DocumentType(42).Validate())
}
