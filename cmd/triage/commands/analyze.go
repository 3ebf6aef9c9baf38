// ABOUTME: CLI command to analyze a symptom report
// ABOUTME: Runs the full pipeline: emergency gate, retrieval, LLM analysis
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openclinic/triage/internal/models"
)

var (
	analyzeAge      int
	analyzeGender   string
	analyzeHistory  []string
	analyzeDuration string
	analyzeSeverity string
)

// NewAnalyzeCmd creates the analyze command
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <symptoms>",
		Short: "Analyze symptoms against the knowledge base",
		Long: `Analyze a free-text symptom description.

The symptoms are first screened by a deterministic emergency gate.
Critical presentations short-circuit to an emergency directive without
any network call. Otherwise the most relevant knowledge chunks are
retrieved and an LLM produces a structured analysis.

Examples:
  triage analyze "persistent dry cough for two weeks"
  triage analyze --age 67 --history diabetes "dizziness and blurred vision"
  triage analyze --format json "mild headache since this morning"`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().IntVar(&analyzeAge, "age", 0, "Patient age in years")
	cmd.Flags().StringVar(&analyzeGender, "gender", "", "Patient gender: female, male, or other")
	cmd.Flags().StringSliceVar(&analyzeHistory, "history", nil, "Known conditions (repeatable)")
	cmd.Flags().StringVar(&analyzeDuration, "duration", "", "How long the symptoms have been present")
	cmd.Flags().StringVar(&analyzeSeverity, "severity", "", "Patient's own severity estimate: mild, moderate, or severe")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analyzeAge != 0 {
		if err := validatePositiveInt(analyzeAge, "age"); err != nil {
			return err
		}
	}

	report := &models.SymptomReport{
		Symptoms:       args[0],
		Age:            analyzeAge,
		Gender:         models.Gender(analyzeGender),
		MedicalHistory: analyzeHistory,
		Duration:       analyzeDuration,
		Severity:       models.ReportedSeverity(analyzeSeverity),
	}
	if err := report.Validate(); err != nil {
		return err
	}

	eng, err := newEngine()
	if err != nil {
		return err
	}
	defer eng.Close()

	result, err := eng.pipeline.Handle(cmd.Context(), report)
	if err != nil {
		return fmt.Errorf("analyzing symptoms: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	printResult(cmd, result)
	return nil
}

// printResult renders an analysis result for terminal reading
func printResult(cmd *cobra.Command, result *models.AnalysisResult) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Status:   %s\n", result.Status)
	fmt.Fprintf(out, "Severity: %s\n", result.SafetyCheck.Severity)
	if len(result.SafetyCheck.MatchedKeywords) > 0 {
		fmt.Fprintf(out, "Matched:  %s\n", strings.Join(result.SafetyCheck.MatchedKeywords, ", "))
	}
	fmt.Fprintf(out, "\n%s\n", result.SafetyCheck.Recommendation)

	if result.Reason != "" {
		fmt.Fprintf(out, "\nNote: %s\n", result.Reason)
	}

	if result.Analysis != nil {
		a := result.Analysis
		printList(out, "Possible conditions", a.PossibleConditions)
		fmt.Fprintf(out, "\nSeverity assessment:\n  %s\n", a.SeverityAssessment)
		printList(out, "Recommended actions", a.RecommendedActions)
		printList(out, "Self-care tips", a.SelfCareTips)
		printList(out, "Red flags", a.RedFlags)
		fmt.Fprintf(out, "\nWhen to seek care:\n  %s\n", a.WhenToSeekCare)
		fmt.Fprintf(out, "\nConfidence: %s\n", a.ConfidenceLevel)
	}

	if !quiet {
		fmt.Fprintf(out, "\n%s\n", result.Disclaimer)
	}
}

func printList(out io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(out, "\n%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(out, "  - %s\n", item)
	}
}
