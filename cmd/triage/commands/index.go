// ABOUTME: CLI command to rebuild the vector index from the corpus
// ABOUTME: Every run is a full rebuild; partial failures are reported, not hidden
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openclinic/triage/internal/corpus"
)

var indexCorpusDir string

// NewIndexCmd creates the index command
func NewIndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Rebuild the vector index from the knowledge corpus",
		Long: `Rebuild the vector index from the knowledge corpus.

Reads every .txt and .pdf file under the corpus directory, chunks and
embeds them, and replaces the index contents. Documents that fail to
embed are skipped and listed in the build report.

Examples:
  triage index
  triage index --corpus ./knowledge
  triage index --format json`,
		RunE: runIndex,
	}

	cmd.Flags().StringVar(&indexCorpusDir, "corpus", "", "Corpus directory (defaults to TRIAGE_CORPUS_PATH)")

	return cmd
}

func runIndex(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}
	defer eng.Close()

	loader := eng.loader
	if indexCorpusDir != "" {
		loader = corpus.NewLoader(indexCorpusDir)
	}

	docs, err := loader.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("loading corpus: %w", err)
	}
	if len(docs) == 0 {
		return fmt.Errorf("no .txt or .pdf documents found in corpus directory")
	}

	report, err := eng.indexer.Build(cmd.Context(), docs)
	if err != nil {
		return fmt.Errorf("rebuilding index: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d chunks from %d documents in %dms\n",
		report.ChunksIndexed, report.DocumentsProcessed, report.DurationMs)
	for _, failure := range report.Failures {
		fmt.Fprintf(cmd.OutOrStdout(), "  failed: %s (%s)\n", failure.SourcePath, failure.Error)
	}

	return nil
}
