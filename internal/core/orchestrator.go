// ABOUTME: Orchestrator assembles the analysis prompt, calls the LLM, and validates the result
// ABOUTME: Parsing is strict: non-conforming completions are rejected, never coerced
package core

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openclinic/triage/internal/models"
)

// analysisSystemPrompt constrains the completion to the structured
// analysis schema. JSON mode is enforced by the provider.
const analysisSystemPrompt = `You are a medical AI assistant for symptom analysis. ` +
	`Provide structured, helpful analysis while being clear that this is NOT a diagnosis ` +
	`and professional medical consultation is needed. ` +
	`Respond with a single JSON object containing exactly these fields: ` +
	`"possible_conditions" (array of strings), ` +
	`"severity_assessment" (string), ` +
	`"recommended_actions" (array of strings), ` +
	`"self_care_tips" (array of strings), ` +
	`"red_flags" (array of strings), ` +
	`"when_to_seek_care" (string), ` +
	`"confidence_level" (one of "low", "medium", "high"). ` +
	`Every field is required. Array fields must contain plain strings, not objects.`

// Orchestrator turns a symptom report plus retrieved context into one
// validated StructuredAnalysis via a single completion request.
type Orchestrator struct {
	provider         CompletionProvider
	maxContextChunks int
}

// NewOrchestrator creates an Orchestrator. maxContextChunks bounds how
// many retrieved chunks are included in the prompt.
func NewOrchestrator(provider CompletionProvider, maxContextChunks int) (*Orchestrator, error) {
	if maxContextChunks <= 0 {
		return nil, fmt.Errorf("%w: max context chunks must be positive, got %d", ErrConfiguration, maxContextChunks)
	}
	return &Orchestrator{provider: provider, maxContextChunks: maxContextChunks}, nil
}

// Analyze issues the completion and strictly validates the response.
// When no context was retrieved, confidence is forced to low regardless
// of what the model claims.
func (o *Orchestrator) Analyze(ctx context.Context, report *models.SymptomReport, retrieved []models.RetrievalResult, verdict models.SafetyVerdict) (*models.StructuredAnalysis, error) {
	userPrompt := o.buildPrompt(report, retrieved, verdict)

	raw, err := o.provider.Complete(ctx, analysisSystemPrompt, userPrompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	analysis, err := parseAnalysis(raw)
	if err != nil {
		return nil, err
	}

	if len(retrieved) == 0 {
		analysis.ConfidenceLevel = models.ConfidenceLow
	}
	return analysis, nil
}

// buildPrompt combines patient context, the safety signal, and retrieved
// knowledge into the user message. Each chunk is tagged with its source
// so the model can cite where guidance came from.
func (o *Orchestrator) buildPrompt(report *models.SymptomReport, retrieved []models.RetrievalResult, verdict models.SafetyVerdict) string {
	var b strings.Builder

	b.WriteString("Analyze the following patient presentation:\n\n")
	b.WriteString(patientContext(report))

	if verdict.IsEmergency {
		fmt.Fprintf(&b, "\n\nEMERGENCY SIGNALS DETECTED: %s\nPrioritize immediate emergency care recommendations.",
			strings.Join(verdict.MatchedKeywords, ", "))
	}

	if len(retrieved) > 0 {
		b.WriteString("\n\n")
		b.WriteString(FormatContext(retrieved, o.maxContextChunks))
		b.WriteString("\nUse the above medical knowledge to inform your analysis, but adapt it to the specific patient context.")
	}

	b.WriteString("\n\nBe thorough but emphasize the importance of professional medical evaluation.")
	return b.String()
}

// patientContext renders the structured report fields, skipping unset ones
func patientContext(report *models.SymptomReport) string {
	parts := []string{fmt.Sprintf("Symptoms: %s", report.Symptoms)}

	if report.Age > 0 {
		parts = append(parts, fmt.Sprintf("Age: %d", report.Age))
	}
	if report.Gender != "" {
		parts = append(parts, fmt.Sprintf("Gender: %s", report.Gender))
	}
	if len(report.MedicalHistory) > 0 {
		parts = append(parts, fmt.Sprintf("Medical History: %s", strings.Join(report.MedicalHistory, ", ")))
	}
	if report.Duration != "" {
		parts = append(parts, fmt.Sprintf("Duration: %s", report.Duration))
	}
	if report.Severity != "" {
		parts = append(parts, fmt.Sprintf("Severity: %s", report.Severity))
	}

	return strings.Join(parts, "\n")
}

// FormatContext renders retrieved chunks for the prompt, each tagged with
// its originating document and section.
func FormatContext(retrieved []models.RetrievalResult, maxChunks int) string {
	if len(retrieved) == 0 {
		return ""
	}
	if len(retrieved) > maxChunks {
		retrieved = retrieved[:maxChunks]
	}

	var b strings.Builder
	b.WriteString("RELEVANT MEDICAL KNOWLEDGE:\n")
	for _, chunk := range retrieved {
		source := chunk.DocumentSource
		if chunk.Section != "" {
			source += " - " + chunk.Section
		}
		fmt.Fprintf(&b, "\n[Source: %s]\n%s\n", source, chunk.Text)
	}
	return b.String()
}

// requiredAnalysisFields must all be present in a completion
var requiredAnalysisFields = []string{
	"possible_conditions",
	"severity_assessment",
	"recommended_actions",
	"self_care_tips",
	"red_flags",
	"when_to_seek_care",
	"confidence_level",
}

// parseAnalysis validates the raw completion against the analysis schema.
// Missing fields, nulls, wrong shapes, and unknown confidence levels all
// fail parsing; fields are never defaulted or coerced.
func parseAnalysis(raw string) (*models.StructuredAnalysis, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, fmt.Errorf("%w: completion is not a JSON object: %v", ErrParse, err)
	}

	for _, key := range requiredAnalysisFields {
		value, ok := fields[key]
		if !ok {
			return nil, fmt.Errorf("%w: missing required field %q", ErrParse, key)
		}
		if string(value) == "null" {
			return nil, fmt.Errorf("%w: field %q is null", ErrParse, key)
		}
	}

	var analysis models.StructuredAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	if strings.TrimSpace(analysis.SeverityAssessment) == "" {
		return nil, fmt.Errorf("%w: severity_assessment is empty", ErrParse)
	}
	if strings.TrimSpace(analysis.WhenToSeekCare) == "" {
		return nil, fmt.Errorf("%w: when_to_seek_care is empty", ErrParse)
	}

	switch analysis.ConfidenceLevel {
	case models.ConfidenceLow, models.ConfidenceMedium, models.ConfidenceHigh:
	default:
		return nil, fmt.Errorf("%w: confidence_level %q is not one of low/medium/high", ErrParse, analysis.ConfidenceLevel)
	}

	return &analysis, nil
}
