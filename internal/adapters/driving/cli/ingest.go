package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ragpipe/internal/core/domain"
	"github.com/custodia-labs/ragpipe/internal/loader"
)

var ingestDir bool

var ingestCmd = &cobra.Command{
	Use:   "ingest [paths...]",
	Short: "Parse files into nodes and store them",
	Long: `Reads text and markdown files, splits them into linked nodes and
persists the result to the configured node store. With --dir,
arguments are directories walked recursively.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVarP(&ingestDir, "dir", "d", false, "treat arguments as directories")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	ctx := context.Background()

	var docs []domain.Document
	for _, path := range args {
		if ingestDir {
			loaded, err := loader.LoadDir(ctx, path, loader.Options{})
			if err != nil {
				return err
			}
			docs = append(docs, loaded...)
			continue
		}

		doc, err := loader.LoadFile(path)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}

	nodes, err := ingestService.Ingest(ctx, docs)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Ingested %d documents into %d nodes.\n", len(docs), len(nodes))
	return nil
}
