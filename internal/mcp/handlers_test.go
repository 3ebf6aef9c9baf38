// ABOUTME: Tests for MCP tool handlers
// ABOUTME: Covers argument validation and tool responses with stub providers
package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/openclinic/triage/internal/core"
	"github.com/openclinic/triage/internal/corpus"
	"github.com/openclinic/triage/internal/models"
	"github.com/openclinic/triage/internal/storage"
)

const stubAnalysisJSON = `{
	"possible_conditions": ["tension headache"],
	"severity_assessment": "Mild.",
	"recommended_actions": ["rest"],
	"self_care_tips": ["hydrate"],
	"red_flags": ["sudden worst-ever headache"],
	"when_to_seek_care": "If symptoms persist beyond 72 hours.",
	"confidence_level": "medium"
}`

type stubEmbedder struct{}

func (stubEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	return []float64{1, 0, 0}, nil
}

func (stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i := range texts {
		out[i] = []float64{1, 0, 0}
	}
	return out, nil
}

func (stubEmbedder) ModelID() string { return "stub-model" }

type stubCompleter struct{}

func (stubCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return stubAnalysisJSON, nil
}

func newTestHandlers(t *testing.T, corpusDir string) (*Handlers, storage.VectorIndex) {
	t.Helper()

	index := storage.NewMemoryIndex()
	embedder := stubEmbedder{}

	chunker, err := core.NewChunker(50, 10, nil)
	if err != nil {
		t.Fatal(err)
	}
	indexer, err := core.NewIndexer(chunker, embedder, index, 2)
	if err != nil {
		t.Fatal(err)
	}
	retriever, err := core.NewRetriever(embedder, index, 5, 0)
	if err != nil {
		t.Fatal(err)
	}
	orchestrator, err := core.NewOrchestrator(stubCompleter{}, 3)
	if err != nil {
		t.Fatal(err)
	}

	pipeline := core.NewPipeline(core.NewEmergencyGate(), retriever, orchestrator)
	return &Handlers{
		pipeline:  pipeline,
		indexer:   indexer,
		loader:    corpus.NewLoader(corpusDir),
		index:     index,
		indexPath: "/data/index.db",
	}, index
}

func toolRequest(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("tool result has no content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("tool result content is %T, want TextContent", result.Content[0])
	}
	return text.Text
}

func TestAnalyzeSymptoms_MissingArgument(t *testing.T) {
	handlers, _ := newTestHandlers(t, t.TempDir())

	result, err := handlers.AnalyzeSymptoms(context.Background(), toolRequest(map[string]interface{}{}))
	if err != nil {
		t.Fatalf("handler should report tool errors in the result, got %v", err)
	}
	if !result.IsError {
		t.Error("missing symptoms argument should produce a tool error")
	}
}

func TestAnalyzeSymptoms_Success(t *testing.T) {
	handlers, _ := newTestHandlers(t, t.TempDir())

	result, err := handlers.AnalyzeSymptoms(context.Background(), toolRequest(map[string]interface{}{
		"symptoms":        "mild headache",
		"age":             34,
		"gender":          "female",
		"medical_history": []interface{}{"asthma"},
		"duration":        "2 days",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, result))
	}

	var analysis models.AnalysisResult
	if err := json.Unmarshal([]byte(resultText(t, result)), &analysis); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if analysis.Status != models.StatusSuccess {
		t.Errorf("Status = %s, want success", analysis.Status)
	}
	if analysis.Disclaimer == "" {
		t.Error("response should carry the disclaimer")
	}
}

func TestAnalyzeSymptoms_EmergencyShortcut(t *testing.T) {
	handlers, _ := newTestHandlers(t, t.TempDir())

	result, err := handlers.AnalyzeSymptoms(context.Background(), toolRequest(map[string]interface{}{
		"symptoms": "crushing chest pain",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var analysis models.AnalysisResult
	if err := json.Unmarshal([]byte(resultText(t, result)), &analysis); err != nil {
		t.Fatal(err)
	}
	if analysis.Status != models.StatusEmergency {
		t.Errorf("Status = %s, want emergency", analysis.Status)
	}
	if analysis.Analysis != nil {
		t.Error("emergency response should not carry an analysis")
	}
}

func TestReindexCorpus(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fever.txt")
	if err := os.WriteFile(path, []byte("Fever\nRest and fluids help."), 0644); err != nil {
		t.Fatal(err)
	}

	handlers, index := newTestHandlers(t, dir)

	result, err := handlers.ReindexCorpus(context.Background(), toolRequest(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, result))
	}

	var report models.IndexBuildReport
	if err := json.Unmarshal([]byte(resultText(t, result)), &report); err != nil {
		t.Fatal(err)
	}
	if report.ChunksIndexed == 0 {
		t.Error("rebuild should index at least one chunk")
	}

	count, err := index.Count()
	if err != nil {
		t.Fatal(err)
	}
	if count != report.ChunksIndexed {
		t.Errorf("index count = %d, report says %d", count, report.ChunksIndexed)
	}
}

func TestIndexStats(t *testing.T) {
	handlers, index := newTestHandlers(t, t.TempDir())
	if err := index.SetModelID("stub-model"); err != nil {
		t.Fatal(err)
	}
	if err := index.Upsert("chunk_1", []float64{1, 0, 0}, models.ChunkMetadata{}); err != nil {
		t.Fatal(err)
	}

	result, err := handlers.IndexStats(context.Background(), toolRequest(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, `"chunks_indexed":1`) {
		t.Errorf("stats = %s, want chunk count 1", text)
	}
	if !strings.Contains(text, "stub-model") {
		t.Errorf("stats = %s, want embedding model id", text)
	}
	if !strings.Contains(text, `"index_path":"/data/index.db"`) {
		t.Errorf("stats = %s, want index location", text)
	}
}

func TestExtractStringArray(t *testing.T) {
	args := map[string]interface{}{
		"typed":   []string{"a", "b"},
		"untyped": []interface{}{"c", 7, "d"},
		"scalar":  "not an array",
	}

	if got := extractStringArray(args, "typed"); len(got) != 2 {
		t.Errorf("typed = %v", got)
	}
	if got := extractStringArray(args, "untyped"); len(got) != 2 || got[0] != "c" || got[1] != "d" {
		t.Errorf("untyped = %v, want non-strings skipped", got)
	}
	if got := extractStringArray(args, "scalar"); got != nil {
		t.Errorf("scalar = %v, want nil", got)
	}
	if got := extractStringArray(args, "missing"); got != nil {
		t.Errorf("missing = %v, want nil", got)
	}
}
