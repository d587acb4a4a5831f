package validation_test

import (
	"testing"

	"transportorder/internal/core/domain/model/validation"

	"github.com/stretchr/testify/assert"
)

func TestResult(t *testing.T) {
	t.Run("new result is valid and serializes empty lists", func(t *testing.T) {
		r := validation.NewResult()

		assert.True(t, r.IsValid())
		assert.NotNil(t, r.Errors)
		assert.NotNil(t, r.Warnings)
	})

	t.Run("warnings do not invalidate", func(t *testing.T) {
		r := validation.NewResult()
		r.AddWarning("Stop dates may not be in logical sequence")

		assert.True(t, r.IsValid())
		assert.Len(t, r.Warnings, 1)
	})

	t.Run("merge keeps order", func(t *testing.T) {
		structural := validation.NewResult()
		structural.AddError("Required element '%s' is missing", "status")
		business := validation.NewResult()
		business.AddError("Required parameter '%s' is missing", "ocean.bl.no")
		business.AddWarning("w")

		structural.Merge(business)

		assert.False(t, structural.IsValid())
		assert.Equal(t, []string{
			"Required element 'status' is missing",
			"Required parameter 'ocean.bl.no' is missing",
		}, structural.Errors)
		assert.Equal(t, []string{"w"}, structural.Warnings)
	})
}

func TestReport(t *testing.T) {
	report := validation.NewReport("ocean_visibility")
	assert.True(t, report.IsValid)

	structural := validation.NewResult()
	structural.AddWarning("Document has no namespace")
	report.Add(validation.StageStructure, structural)
	assert.True(t, report.IsValid)

	ocean := validation.NewResult()
	ocean.AddError("Ocean visibility: Missing required parameter '%s'", "ocean.bl.no")
	report.Add(validation.StageOceanCompleteness, ocean)

	assert.False(t, report.IsValid)
	assert.Len(t, report.Stages, 2)
	assert.Equal(t, validation.StageOceanCompleteness, report.Stages[1].Stage)
	assert.Equal(t, []string{"Ocean visibility: Missing required parameter 'ocean.bl.no'"}, report.Result().Errors)
	assert.Equal(t, []string{"Document has no namespace"}, report.Warnings)
}
