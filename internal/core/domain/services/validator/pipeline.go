package validator

import (
	"transportorder/internal/core/domain/model/kernel"
	"transportorder/internal/core/domain/model/validation"
	"transportorder/internal/core/ports"
)

type stage struct {
	name validation.Stage
	run  func(*tree, *validation.Result)
}

// Pipeline runs every stage on one parsed document and aggregates the
// findings. Ocean completeness only runs for ocean visibility documents.
type Pipeline struct {
	structural *Structural
	business   *Business
}

// NewPipeline returns a Pipeline whose stages share store.
func NewPipeline(store ports.RuleStore) *Pipeline {
	return &Pipeline{
		structural: NewStructural(store),
		business:   NewBusiness(store),
	}
}

// Validate never fails; a document that cannot be parsed or has no
// transport_order ends the run after the structure stage.
func (p *Pipeline) Validate(xml string, documentType kernel.DocumentType) validation.Report {
	report := validation.NewReport(documentType.String())

	structure := validation.NewResult()
	t, err := parse(xml)
	if err != nil {
		structure.AddError("XML parsing error: %v", err)
		report.Add(validation.StageStructure, structure)
		return report
	}
	p.structural.structure(t, &structure)
	report.Add(validation.StageStructure, structure)
	if t.order == nil {
		return report
	}

	stages := []stage{
		{validation.StageFieldFormats, p.structural.fieldFormats},
		{validation.StageStopReferences, p.structural.stopReferences},
		{validation.StageBusinessRules, func(t *tree, r *validation.Result) {
			p.business.businessRules(t, documentType, r)
		}},
		{validation.StageCrossField, p.business.crossField},
	}
	if documentType == kernel.OceanVisibility {
		stages = append(stages, stage{validation.StageOceanCompleteness, p.business.oceanCompleteness})
	}

	for _, s := range stages {
		result := validation.NewResult()
		s.run(t, &result)
		report.Add(s.name, result)
	}
	return report
}
