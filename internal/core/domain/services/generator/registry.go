package generator

import (
	"log/slog"

	"transportorder/internal/core/domain/model/kernel"
	"transportorder/internal/core/domain/services/collector"
	"transportorder/internal/core/ports"
	"transportorder/internal/pkg/errs"
)

// Registry holds one generator per document type.
type Registry struct {
	generators map[kernel.DocumentType]Generator
}

// NewRegistry builds one generator per document type. All of them share
// store and c.
func NewRegistry(store ports.RuleStore, c *collector.Collector, logger *slog.Logger) *Registry {
	logger = logger.With("component", "TransportOrderGenerator")

	return &Registry{generators: map[kernel.DocumentType]Generator{
		kernel.SimpleRoad: &variant{
			capabilities: simpleRoadCapabilities,
			store:        store,
			collector:    c,
			logger:       logger,
			check:        checkSimpleRoad,
			augment:      augmentSimpleRoad,
			metadata:     simpleRoadMetadata,
		},
		kernel.ComplexRoad: &variant{
			capabilities: complexRoadCapabilities,
			store:        store,
			collector:    c,
			logger:       logger,
			check:        checkComplexRoad(store),
			augment:      augmentComplexRoad,
			metadata:     complexRoadMetadata,
		},
		kernel.OceanVisibility: &variant{
			capabilities: oceanVisibilityCapabilities,
			store:        store,
			collector:    c,
			logger:       logger,
			check:        checkOceanVisibility,
			prepare:      prepareOceanVisibility(store),
			augment:      augmentOceanVisibility,
			metadata:     oceanVisibilityMetadata,
		},
	}}
}

// Get returns the generator of documentType.
func (r *Registry) Get(documentType kernel.DocumentType) (Generator, error) {
	g, ok := r.generators[documentType]
	if !ok {
		return nil, errs.NewObjectNotFoundError("generator", documentType.String())
	}
	return g, nil
}

// Types lists the supported document types in declaration order.
func (r *Registry) Types() []kernel.DocumentType {
	types := make([]kernel.DocumentType, 0, len(r.generators))
	for _, t := range kernel.AllDocumentTypes() {
		if _, ok := r.generators[t]; ok {
			types = append(types, t)
		}
	}
	return types
}

// TypeInfo returns the capability row of documentType.
func (r *Registry) TypeInfo(documentType kernel.DocumentType) (Capabilities, error) {
	g, err := r.Get(documentType)
	if err != nil {
		return Capabilities{}, err
	}
	return g.Capabilities(), nil
}
