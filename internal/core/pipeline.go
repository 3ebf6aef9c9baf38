// ABOUTME: Pipeline runs the full symptom analysis flow: validate, gate, retrieve, analyze
// ABOUTME: Provider failures degrade to a partial result; the safety verdict is always returned
package core

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/openclinic/triage/internal/models"
)

// Disclaimer accompanies every analysis result without exception
const Disclaimer = "This analysis is for informational purposes only and is not a medical diagnosis. " +
	"Always consult a qualified healthcare professional about your symptoms."

// Pipeline wires the emergency gate, retriever, and orchestrator into the
// single entry point callers use to analyze a symptom report.
type Pipeline struct {
	gate         *EmergencyGate
	retriever    *Retriever
	orchestrator *Orchestrator
}

// NewPipeline assembles the analysis pipeline from its stages
func NewPipeline(gate *EmergencyGate, retriever *Retriever, orchestrator *Orchestrator) *Pipeline {
	return &Pipeline{gate: gate, retriever: retriever, orchestrator: orchestrator}
}

// Handle runs one report through the pipeline. The emergency gate runs
// before any network call so critical presentations are answered even
// when every provider is down. Retrieval or completion failures return a
// partial result carrying the safety verdict rather than an error.
func (p *Pipeline) Handle(ctx context.Context, report *models.SymptomReport) (*models.AnalysisResult, error) {
	if err := report.Validate(); err != nil {
		return nil, err
	}

	requestID := uuid.New().String()
	verdict := p.gate.Evaluate(report.Symptoms)
	log.Printf("[pipeline] request %s: severity=%s emergency=%v", requestID, verdict.Severity, verdict.IsEmergency)

	if verdict.Severity == models.SeverityCritical {
		return &models.AnalysisResult{
			RequestID:   requestID,
			Status:      models.StatusEmergency,
			SafetyCheck: verdict,
			Reason:      "critical emergency indicators detected; seek emergency care immediately",
			Disclaimer:  Disclaimer,
		}, nil
	}

	retrieved, err := p.retriever.Retrieve(ctx, report.Symptoms)
	if err != nil {
		log.Printf("[pipeline] request %s: retrieval failed: %v", requestID, err)
		return p.partial(requestID, verdict, fmt.Sprintf("knowledge retrieval unavailable: %v", err)), nil
	}

	analysis, err := p.orchestrator.Analyze(ctx, report, retrieved, verdict)
	if err != nil {
		log.Printf("[pipeline] request %s: analysis failed: %v", requestID, err)
		return p.partial(requestID, verdict, fmt.Sprintf("analysis unavailable: %v", err)), nil
	}

	return &models.AnalysisResult{
		RequestID:   requestID,
		Status:      models.StatusSuccess,
		SafetyCheck: verdict,
		Analysis:    analysis,
		Disclaimer:  Disclaimer,
	}, nil
}

// partial builds the degraded result returned when a downstream stage
// fails. The deterministic safety verdict is always preserved.
func (p *Pipeline) partial(requestID string, verdict models.SafetyVerdict, reason string) *models.AnalysisResult {
	return &models.AnalysisResult{
		RequestID:   requestID,
		Status:      models.StatusPartial,
		SafetyCheck: verdict,
		Reason:      reason,
		Disclaimer:  Disclaimer,
	}
}
