package validation

// Stage names one pass of the validation pipeline.
type Stage string

// Stages in the order the pipeline runs them. StageOceanCompleteness only
// runs for ocean_visibility documents.
const (
	// StageStructure checks the XML skeleton.
	StageStructure Stage = "structure"
	// StageFieldFormats applies the stored field rules and the SCAC format.
	StageFieldFormats Stage = "field_formats"
	// StageStopReferences checks that stop ids referenced by items exist.
	StageStopReferences Stage = "stop_references"
	// StageBusinessRules applies the stored rules of the document type.
	StageBusinessRules Stage = "business_rules"
	// StageCrossField compares carrier numbers and the stop sequence.
	StageCrossField Stage = "cross_field"
	// StageOceanCompleteness requires the ocean visibility parameters.
	StageOceanCompleteness Stage = "ocean_completeness"
)

// StageResult is the outcome of a single stage, kept for diagnostics.
type StageResult struct {
	Stage  Stage  `json:"stage"`
	Result Result `json:"result"`
}

// Report is the aggregated outcome of a pipeline run. Errors and Warnings
// are the concatenation of all stages in run order.
type Report struct {
	DocumentType string        `json:"document_type"`
	IsValid      bool          `json:"is_valid"`
	Errors       []string      `json:"errors"`
	Warnings     []string      `json:"warnings"`
	Stages       []StageResult `json:"stages"`
}

// NewReport returns a valid, empty report. The slices are non-nil so that
// JSON encodes them as [] rather than null.
func NewReport(documentType string) Report {
	return Report{
		DocumentType: documentType,
		IsValid:      true,
		Errors:       []string{},
		Warnings:     []string{},
		Stages:       []StageResult{},
	}
}

// Add records the result of one stage.
func (r *Report) Add(stage Stage, result Result) {
	r.Stages = append(r.Stages, StageResult{Stage: stage, Result: result})
	r.Errors = append(r.Errors, result.Errors...)
	r.Warnings = append(r.Warnings, result.Warnings...)
	r.IsValid = len(r.Errors) == 0
}

// Result returns the combined findings.
func (r Report) Result() Result {
	return Result{Errors: r.Errors, Warnings: r.Warnings}
}
