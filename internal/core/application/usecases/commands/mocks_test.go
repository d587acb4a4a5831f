package commands_test

import (
	"context"

	"transportorder/internal/core/domain/model/document"
	"transportorder/internal/core/domain/model/kernel"
	"transportorder/internal/core/domain/model/transportorder"
	"transportorder/internal/core/domain/model/validation"
	"transportorder/internal/core/domain/services/generator"
	"transportorder/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockDocumentRepository struct{ mock.Mock }

func (m *MockDocumentRepository) Add(ctx context.Context, doc *document.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) Update(ctx context.Context, doc *document.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*document.Document), args.Error(1)
}

type MockUnitOfWork struct{ mock.Mock }

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) DocumentRepository() ports.DocumentRepository {
	args := m.Called()
	return args.Get(0).(ports.DocumentRepository)
}

type MockUnitOfWorkFactory struct{ mock.Mock }

func (m *MockUnitOfWorkFactory) Create() ports.UnitOfWork {
	args := m.Called()
	return args.Get(0).(ports.UnitOfWork)
}

type MockExchangeClient struct{ mock.Mock }

func (m *MockExchangeClient) Submit(ctx context.Context, xml string) (ports.Submission, error) {
	args := m.Called(ctx, xml)
	return args.Get(0).(ports.Submission), args.Error(1)
}

type MockGenerators struct{ mock.Mock }

func (m *MockGenerators) Get(documentType kernel.DocumentType) (generator.Generator, error) {
	args := m.Called(documentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(generator.Generator), args.Error(1)
}

type MockGenerator struct{ mock.Mock }

func (m *MockGenerator) Capabilities() generator.Capabilities {
	args := m.Called()
	return args.Get(0).(generator.Capabilities)
}

func (m *MockGenerator) ValidateInput(input transportorder.Input) generator.InputValidation {
	args := m.Called(input)
	return args.Get(0).(generator.InputValidation)
}

func (m *MockGenerator) Generate(ctx context.Context, input transportorder.Input) generator.Result {
	args := m.Called(ctx, input)
	return args.Get(0).(generator.Result)
}

func (m *MockGenerator) ExampleInput() (transportorder.Input, error) {
	args := m.Called()
	return args.Get(0).(transportorder.Input), args.Error(1)
}

type MockDocumentValidator struct{ mock.Mock }

func (m *MockDocumentValidator) Validate(xml string, documentType kernel.DocumentType) validation.Report {
	args := m.Called(xml, documentType)
	return args.Get(0).(validation.Report)
}

type MockValidationCache struct{ mock.Mock }

func (m *MockValidationCache) Get(
	ctx context.Context,
	documentType kernel.DocumentType,
	xml string,
) (validation.Report, bool, error) {
	args := m.Called(ctx, documentType, xml)
	return args.Get(0).(validation.Report), args.Bool(1), args.Error(2)
}

func (m *MockValidationCache) Put(
	ctx context.Context,
	documentType kernel.DocumentType,
	xml string,
	report validation.Report,
) error {
	args := m.Called(ctx, documentType, xml, report)
	return args.Error(0)
}
