// ABOUTME: CLI command to show vector index statistics
// ABOUTME: Reports chunk count, embedding model, and index location
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joho/godotenv"
	"github.com/openclinic/triage/internal/config"
	"github.com/openclinic/triage/internal/storage/sqlite"
)

// NewStatsCmd creates the stats command
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show index statistics",
		Long: `Show the number of indexed chunks, the embedding model the index
was built with, and where the index lives on disk.

Examples:
  triage stats
  triage stats --format json`,
		RunE: runStats,
	}

	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	db, err := sqlite.Open(cfg.IndexPath)
	if err != nil {
		return fmt.Errorf("opening index at %s: %w", cfg.IndexPath, err)
	}
	index := sqlite.NewIndex(db)
	defer index.Close()

	count, err := index.Count()
	if err != nil {
		return fmt.Errorf("counting index entries: %w", err)
	}
	modelID, err := index.ModelID()
	if err != nil {
		return fmt.Errorf("reading index model: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(map[string]interface{}{
			"chunks_indexed":  count,
			"embedding_model": modelID,
			"index_path":      cfg.IndexPath,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Chunks indexed:  %d\n", count)
	if modelID == "" {
		modelID = "(index not built)"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Embedding model: %s\n", modelID)
	fmt.Fprintf(cmd.OutOrStdout(), "Index path:      %s\n", cfg.IndexPath)

	return nil
}
