// ABOUTME: MCP tool definitions and registration for the triage server
// ABOUTME: Exposes symptom analysis, corpus reindexing, and index stats over stdio
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/openclinic/triage/internal/core"
	"github.com/openclinic/triage/internal/corpus"
	"github.com/openclinic/triage/internal/storage"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, pipeline *core.Pipeline, indexer *core.Indexer, loader *corpus.Loader, index storage.VectorIndex, indexPath string) *Handlers {
	handlers := &Handlers{
		pipeline:  pipeline,
		indexer:   indexer,
		loader:    loader,
		index:     index,
		indexPath: indexPath,
	}

	// 1. analyze_symptoms - run a symptom report through the analysis pipeline
	server.AddTool(mcp.Tool{
		Name:        "analyze_symptoms",
		Description: "Analyze a patient's symptoms against the medical knowledge base. Returns a safety verdict plus a structured analysis. Not a diagnosis.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"symptoms": map[string]interface{}{
					"type":        "string",
					"description": "Free-text description of the symptoms",
				},
				"age": map[string]interface{}{
					"type":        "number",
					"description": "Patient age in years (optional)",
				},
				"gender": map[string]interface{}{
					"type":        "string",
					"description": "Patient gender: female, male, or other (optional)",
				},
				"medical_history": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Known conditions, e.g. 'diabetes', 'hypertension' (optional)",
				},
				"duration": map[string]interface{}{
					"type":        "string",
					"description": "How long the symptoms have been present, e.g. '3 days' (optional)",
				},
				"severity": map[string]interface{}{
					"type":        "string",
					"description": "Patient's own severity estimate: mild, moderate, or severe (optional)",
				},
			},
			Required: []string{"symptoms"},
		},
	}, handlers.AnalyzeSymptoms)

	// 2. reindex_corpus - rebuild the vector index from the corpus directory
	server.AddTool(mcp.Tool{
		Name:        "reindex_corpus",
		Description: "Rebuild the vector index from the knowledge corpus directory. Clears the existing index first.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ReindexCorpus)

	// 3. index_stats - report index size and embedding model
	server.AddTool(mcp.Tool{
		Name:        "index_stats",
		Description: "Report the number of indexed chunks, the embedding model the index was built with, and where the index lives.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.IndexStats)

	return handlers
}
