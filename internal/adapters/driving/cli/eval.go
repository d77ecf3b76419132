package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ragpipe/internal/core/domain"
)

var (
	evalCutoff int
	evalJSON   bool
)

var evalCmd = &cobra.Command{
	Use:   "eval [dataset.json]",
	Short: "Score retrieval quality against a labelled dataset",
	Long: `Reads a JSON dataset of queries with retrieved and relevant node
identifiers and reports hit-rate, MRR and precision at the cutoff.`,
	Args: cobra.ExactArgs(1),
	RunE: runEval,
}

func init() {
	evalCmd.Flags().IntVarP(&evalCutoff, "cutoff", "k", 0, "rank cutoff (0 uses each record's retrieved length)")
	evalCmd.Flags().BoolVar(&evalJSON, "json", false, "output the summary as JSON")
	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	if evalService == nil {
		return errors.New("eval service not configured")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	var records []domain.EvalRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("parsing dataset: %w", err)
	}

	summary, err := evalService.Evaluate(context.Background(), records, evalCutoff)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	if evalJSON {
		out, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal summary: %w", err)
		}
		cmd.Println(string(out))
		return nil
	}

	cmd.Printf("Evaluated: %d  Excluded: %d\n", summary.Evaluated, summary.Excluded)
	cmd.Printf("  Hit rate:  %.4f\n", summary.Metrics.HitRate)
	cmd.Printf("  MRR:       %.4f\n", summary.Metrics.MRR)
	cmd.Printf("  Precision: %.4f\n", summary.Metrics.Precision)
	return nil
}
