package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ragpipe/internal/core/domain"
)

var (
	queryLimit int
	queryJSON  bool
)

var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Retrieve nodes for a query",
	Long: `Retrieves the most similar nodes for a query and refines them
through the configured postprocessor pipeline.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().IntVarP(&queryLimit, "limit", "n", 10, "maximum number of results")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	ctx := context.Background()
	if queryIndexer != nil {
		if err := queryIndexer.Index(ctx); err != nil {
			return fmt.Errorf("building index: %w", err)
		}
	}

	results, err := queryService.Query(ctx, domain.Query{Text: args[0]}, queryLimit)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if queryJSON {
		return outputQueryJSON(cmd, results)
	}
	return outputQueryList(cmd, results)
}

func outputQueryJSON(cmd *cobra.Command, results []domain.ScoredNode) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputQueryList(cmd *cobra.Command, results []domain.ScoredNode) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i, result := range results {
		if result.Score != nil {
			cmd.Printf("  [%d] %s (%.3f)\n", i+1, result.Node.ID, *result.Score)
		} else {
			cmd.Printf("  [%d] %s\n", i+1, result.Node.ID)
		}
		cmd.Printf("      %s\n", snippet(result.Node.Text, 120))
		cmd.Println()
	}
	return nil
}

// snippet truncates text to limit runes on a single line.
func snippet(text string, limit int) string {
	runes := []rune(text)
	if len(runes) > limit {
		return string(runes[:limit]) + "..."
	}
	return text
}
