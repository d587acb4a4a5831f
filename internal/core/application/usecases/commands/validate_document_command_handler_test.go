package commands_test

import (
	"errors"
	"log/slog"
	"testing"

	"transportorder/internal/core/application/usecases/commands"
	"transportorder/internal/core/domain/model/kernel"
	"transportorder/internal/core/domain/model/validation"
	"transportorder/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func invalidReport() validation.Report {
	report := validation.NewReport("ocean_visibility")
	result := validation.NewResult()
	result.AddError("Ocean visibility orders must have parameters section")
	report.Add(validation.StageOceanCompleteness, result)
	return report
}

func newValidateCommand(t *testing.T) commands.ValidateDocumentCommand {
	t.Helper()
	cmd, err := commands.NewValidateDocumentCommand(generatedXML, kernel.OceanVisibility)
	require.NoError(t, err)
	return cmd
}

func TestNewValidateDocumentCommand(t *testing.T) {
	_, err := commands.NewValidateDocumentCommand("  ", kernel.UnknownDocumentType)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	cmd := newValidateCommand(t)
	assert.Equal(t, generatedXML, cmd.XML())
	assert.Equal(t, kernel.OceanVisibility, cmd.DocumentType())

	var zero commands.ValidateDocumentCommand
	require.ErrorIs(t, zero.Validate(), commands.ErrValidateDocumentCommandIsNotConstructed)
}

func TestValidateDocumentCommandHandler_Handle_CacheHit(t *testing.T) {
	ctx := t.Context()
	cache := new(MockValidationCache)
	cache.On("Get", ctx, kernel.OceanVisibility, generatedXML).Return(invalidReport(), true, nil).Once()
	validator := new(MockDocumentValidator)

	handler := commands.NewValidateDocumentCommandHandler(validator, cache, nil, slog.New(slog.DiscardHandler))
	report, err := handler.Handle(ctx, newValidateCommand(t))

	require.NoError(t, err)
	assert.Equal(t, invalidReport(), report)
	validator.AssertNotCalled(t, "Validate", mock.Anything, mock.Anything)
	cache.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestValidateDocumentCommandHandler_Handle_CacheMissStoresReport(t *testing.T) {
	ctx := t.Context()
	cache := new(MockValidationCache)
	cache.On("Get", ctx, kernel.OceanVisibility, generatedXML).Return(validation.Report{}, false, nil).Once()
	cache.On("Put", ctx, kernel.OceanVisibility, generatedXML, invalidReport()).Return(nil).Once()
	validator := new(MockDocumentValidator)
	validator.On("Validate", generatedXML, kernel.OceanVisibility).Return(invalidReport()).Once()

	handler := commands.NewValidateDocumentCommandHandler(validator, cache, nil, slog.New(slog.DiscardHandler))
	report, err := handler.Handle(ctx, newValidateCommand(t))

	require.NoError(t, err)
	assert.False(t, report.IsValid)
	cache.AssertExpectations(t)
	validator.AssertExpectations(t)
}

func TestValidateDocumentCommandHandler_Handle_CacheFailuresAreIgnored(t *testing.T) {
	ctx := t.Context()
	cache := new(MockValidationCache)
	cache.On("Get", ctx, kernel.OceanVisibility, generatedXML).
		Return(validation.Report{}, false, errors.New("connection refused")).Once()
	cache.On("Put", ctx, kernel.OceanVisibility, generatedXML, invalidReport()).
		Return(errors.New("connection refused")).Once()
	validator := new(MockDocumentValidator)
	validator.On("Validate", generatedXML, kernel.OceanVisibility).Return(invalidReport()).Once()

	handler := commands.NewValidateDocumentCommandHandler(validator, cache, nil, slog.New(slog.DiscardHandler))
	report, err := handler.Handle(ctx, newValidateCommand(t))

	require.NoError(t, err)
	assert.Equal(t, invalidReport(), report)
	cache.AssertExpectations(t)
}

func TestValidateDocumentCommandHandler_Handle_WithoutCache(t *testing.T) {
	validator := new(MockDocumentValidator)
	validator.On("Validate", generatedXML, kernel.OceanVisibility).Return(invalidReport()).Once()

	handler := commands.NewValidateDocumentCommandHandler(validator, nil, nil, slog.New(slog.DiscardHandler))
	report, err := handler.Handle(t.Context(), newValidateCommand(t))

	require.NoError(t, err)
	assert.Equal(t, []string{"Ocean visibility orders must have parameters section"}, report.Errors)
}
