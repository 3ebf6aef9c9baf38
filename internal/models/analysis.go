// ABOUTME: StructuredAnalysis is the validated output of the LLM orchestrator
// ABOUTME: AnalysisResult is the pipeline's composite response to the caller
package models

// ConfidenceLevel reflects how well grounded the analysis is
type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceHigh   ConfidenceLevel = "high"
)

// StructuredAnalysis is the schema-validated analysis produced per request.
// Never mutated after creation; a new request produces a new value.
type StructuredAnalysis struct {
	PossibleConditions []string        `json:"possible_conditions"`
	SeverityAssessment string          `json:"severity_assessment"`
	RecommendedActions []string        `json:"recommended_actions"`
	SelfCareTips       []string        `json:"self_care_tips"`
	RedFlags           []string        `json:"red_flags"`
	WhenToSeekCare     string          `json:"when_to_seek_care"`
	ConfidenceLevel    ConfidenceLevel `json:"confidence_level"`
}

// AnalysisStatus is the terminal state of one pipeline run
type AnalysisStatus string

const (
	StatusSuccess   AnalysisStatus = "success"
	StatusEmergency AnalysisStatus = "emergency"
	StatusPartial   AnalysisStatus = "partial"
)

// AnalysisResult is the pipeline output handed back to the caller.
// Analysis is nil on the emergency shortcut and on degraded runs.
type AnalysisResult struct {
	RequestID   string              `json:"request_id"`
	Status      AnalysisStatus      `json:"status"`
	SafetyCheck SafetyVerdict       `json:"safety_check"`
	Analysis    *StructuredAnalysis `json:"analysis,omitempty"`
	Reason      string              `json:"reason,omitempty"`
	Disclaimer  string              `json:"disclaimer"`
}

// IndexBuildReport summarizes one full index rebuild
type IndexBuildReport struct {
	DocumentsProcessed int            `json:"documents_processed"`
	ChunksIndexed      int            `json:"chunks_indexed"`
	DurationMs         int64          `json:"duration_ms"`
	Failures           []BuildFailure `json:"failures,omitempty"`
}

// BuildFailure records one document that could not be indexed
type BuildFailure struct {
	DocumentID string `json:"document_id"`
	SourcePath string `json:"source_path"`
	Error      string `json:"error"`
}
