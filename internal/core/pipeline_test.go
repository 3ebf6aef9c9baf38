// ABOUTME: Tests for the end-to-end analysis pipeline
// ABOUTME: Covers the emergency shortcut, degraded results, and the success path
package core

import (
	"context"
	"strings"
	"testing"

	"github.com/openclinic/triage/internal/models"
	"github.com/openclinic/triage/internal/storage"
)

func testPipeline(t *testing.T, embedder *fakeEmbedder, completer *fakeCompleter, index storage.VectorIndex) *Pipeline {
	t.Helper()
	retriever, err := NewRetriever(embedder, index, 5, 0)
	if err != nil {
		t.Fatal(err)
	}
	orchestrator, err := NewOrchestrator(completer, 3)
	if err != nil {
		t.Fatal(err)
	}
	return NewPipeline(NewEmergencyGate(), retriever, orchestrator)
}

func TestHandle_RejectsEmptySymptoms(t *testing.T) {
	pipeline := testPipeline(t, newFakeEmbedder(), &fakeCompleter{}, storage.NewMemoryIndex())

	_, err := pipeline.Handle(context.Background(), &models.SymptomReport{Symptoms: "   "})
	if err != models.ErrEmptySymptoms {
		t.Errorf("error = %v, want ErrEmptySymptoms", err)
	}
}

func TestHandle_CriticalShortcut(t *testing.T) {
	embedder := newFakeEmbedder()
	completer := &fakeCompleter{response: validAnalysisJSON}
	pipeline := testPipeline(t, embedder, completer, storage.NewMemoryIndex())

	result, err := pipeline.Handle(context.Background(), &models.SymptomReport{
		Symptoms: "sudden chest pain and shortness of breath",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Status != models.StatusEmergency {
		t.Errorf("Status = %s, want emergency", result.Status)
	}
	if result.Analysis != nil {
		t.Error("emergency shortcut should not carry an analysis")
	}
	if !result.SafetyCheck.ShouldCallEmergency {
		t.Error("critical verdict should set ShouldCallEmergency")
	}
	if result.RequestID == "" {
		t.Error("result should carry a request id")
	}
	if result.Disclaimer == "" {
		t.Error("result should carry the disclaimer")
	}

	// No provider may be contacted on the critical path
	if embedder.embedCalls != 0 {
		t.Errorf("embedder called %d times on critical path, want 0", embedder.embedCalls)
	}
	if completer.calls != 0 {
		t.Errorf("completer called %d times on critical path, want 0", completer.calls)
	}
}

func TestHandle_SuccessPath(t *testing.T) {
	embedder := newFakeEmbedder()
	completer := &fakeCompleter{response: validAnalysisJSON}

	index := storage.NewMemoryIndex()
	seedIndex(t, index, embedder.ModelID(), map[string][]float64{
		"chunk_headache": {1, 0, 0},
	})

	pipeline := testPipeline(t, embedder, completer, index)

	result, err := pipeline.Handle(context.Background(), &models.SymptomReport{
		Symptoms: "throbbing headache for two days",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Status != models.StatusSuccess {
		t.Errorf("Status = %s, want success", result.Status)
	}
	if result.Analysis == nil {
		t.Fatal("success result should carry an analysis")
	}
	if result.Analysis.ConfidenceLevel != models.ConfidenceHigh {
		t.Errorf("ConfidenceLevel = %s, want high", result.Analysis.ConfidenceLevel)
	}
	if result.SafetyCheck.Severity != models.SeverityModerate {
		t.Errorf("Severity = %s, want moderate", result.SafetyCheck.Severity)
	}
	if !strings.Contains(completer.lastUser, "throbbing headache") {
		t.Error("symptoms should flow into the completion prompt")
	}
}

func TestHandle_RetrievalFailureDegrades(t *testing.T) {
	embedder := newFakeEmbedder()
	embedder.err = errEmbedFailed
	completer := &fakeCompleter{response: validAnalysisJSON}

	index := storage.NewMemoryIndex()
	seedIndex(t, index, embedder.ModelID(), map[string][]float64{
		"chunk_headache": {1, 0, 0},
	})

	pipeline := testPipeline(t, embedder, completer, index)

	result, err := pipeline.Handle(context.Background(), &models.SymptomReport{
		Symptoms: "persistent vomiting since yesterday",
	})
	if err != nil {
		t.Fatalf("degraded run should not error, got %v", err)
	}

	if result.Status != models.StatusPartial {
		t.Errorf("Status = %s, want partial", result.Status)
	}
	if result.Reason == "" {
		t.Error("partial result should explain the degradation")
	}
	if result.Analysis != nil {
		t.Error("partial result should not carry an analysis")
	}
	// The deterministic safety verdict must survive the failure
	if result.SafetyCheck.Severity != models.SeverityUrgent {
		t.Errorf("Severity = %s, want urgent", result.SafetyCheck.Severity)
	}
	if completer.calls != 0 {
		t.Error("completer should not run when retrieval fails")
	}
}

func TestHandle_CompletionFailureDegrades(t *testing.T) {
	embedder := newFakeEmbedder()
	completer := &fakeCompleter{err: errEmbedFailed}

	index := storage.NewMemoryIndex()
	seedIndex(t, index, embedder.ModelID(), map[string][]float64{
		"chunk_headache": {1, 0, 0},
	})

	pipeline := testPipeline(t, embedder, completer, index)

	result, err := pipeline.Handle(context.Background(), &models.SymptomReport{
		Symptoms: "mild headache",
	})
	if err != nil {
		t.Fatalf("degraded run should not error, got %v", err)
	}

	if result.Status != models.StatusPartial {
		t.Errorf("Status = %s, want partial", result.Status)
	}
	if result.SafetyCheck.Recommendation == "" {
		t.Error("partial result should still carry the safety recommendation")
	}
}

func TestHandle_MalformedCompletionDegrades(t *testing.T) {
	embedder := newFakeEmbedder()
	completer := &fakeCompleter{response: "not json at all"}

	index := storage.NewMemoryIndex()
	seedIndex(t, index, embedder.ModelID(), map[string][]float64{
		"chunk_headache": {1, 0, 0},
	})

	pipeline := testPipeline(t, embedder, completer, index)

	result, err := pipeline.Handle(context.Background(), &models.SymptomReport{Symptoms: "mild headache"})
	if err != nil {
		t.Fatalf("degraded run should not error, got %v", err)
	}
	if result.Status != models.StatusPartial {
		t.Errorf("Status = %s, want partial", result.Status)
	}
}

func TestHandle_UniqueRequestIDs(t *testing.T) {
	embedder := newFakeEmbedder()
	completer := &fakeCompleter{response: validAnalysisJSON}
	pipeline := testPipeline(t, embedder, completer, storage.NewMemoryIndex())

	report := &models.SymptomReport{Symptoms: "mild headache"}
	first, err := pipeline.Handle(context.Background(), report)
	if err != nil {
		t.Fatal(err)
	}
	second, err := pipeline.Handle(context.Background(), report)
	if err != nil {
		t.Fatal(err)
	}

	if first.RequestID == second.RequestID {
		t.Error("request ids should be unique per run")
	}
}
