// ABOUTME: MCP tool handler implementations for the triage server
// ABOUTME: Handlers return tool errors as results so the protocol stream stays healthy
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/openclinic/triage/internal/core"
	"github.com/openclinic/triage/internal/corpus"
	"github.com/openclinic/triage/internal/models"
	"github.com/openclinic/triage/internal/storage"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	pipeline  *core.Pipeline
	indexer   *core.Indexer
	loader    *corpus.Loader
	index     storage.VectorIndex
	indexPath string
}

// AnalyzeSymptoms handles the analyze_symptoms tool
func (h *Handlers) AnalyzeSymptoms(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	symptoms, err := request.RequireString("symptoms")
	if err != nil {
		return mcp.NewToolResultError("symptoms argument is required and must be a string"), nil
	}

	report := &models.SymptomReport{
		Symptoms:       symptoms,
		Age:            request.GetInt("age", 0),
		Gender:         models.Gender(request.GetString("gender", "")),
		MedicalHistory: extractStringArray(request.GetArguments(), "medical_history"),
		Duration:       request.GetString("duration", ""),
		Severity:       models.ReportedSeverity(request.GetString("severity", "")),
	}

	result, err := h.pipeline.Handle(ctx, report)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	responseJSON, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// ReindexCorpus handles the reindex_corpus tool
func (h *Handlers) ReindexCorpus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docs, err := h.loader.Load(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("corpus load failed: %v", err)), nil
	}

	report, err := h.indexer.Build(ctx, docs)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("index rebuild failed: %v", err)), nil
	}

	responseJSON, err := json.Marshal(report)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// IndexStats handles the index_stats tool
func (h *Handlers) IndexStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	count, err := h.index.Count()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to count index: %v", err)), nil
	}

	modelID, err := h.index.ModelID()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read index model: %v", err)), nil
	}

	response := map[string]interface{}{
		"chunks_indexed":  count,
		"embedding_model": modelID,
		"index_path":      h.indexPath,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// extractStringArray pulls a []string out of raw tool arguments, tolerating
// both []string and []interface{} shapes
func extractStringArray(args map[string]interface{}, key string) []string {
	raw, ok := args[key]
	if !ok {
		return nil
	}
	switch value := raw.(type) {
	case []string:
		return value
	case []interface{}:
		out := make([]string, 0, len(value))
		for _, item := range value {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
