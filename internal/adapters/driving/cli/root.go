// Package cli implements the ragpipe command line interface.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ragpipe/internal/core/ports/driving"
	"github.com/custodia-labs/ragpipe/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services wired in by the composition root before Execute.
var (
	ingestService driving.IngestService
	queryService  driving.QueryService
	evalService   driving.EvalService
	queryIndexer  Indexer
)

// Indexer rebuilds the retrieval index over the stored corpus.
// Optional: when set, the query command refreshes the index before
// retrieving.
type Indexer interface {
	Index(ctx context.Context) error
}

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "ragpipe",
	Short: "Chunk, index and query documents for retrieval",
	Long: `ragpipe is a retrieval pipeline toolkit. It splits documents into
overlapping chunks, links them into node chains, retrieves candidates
by vector similarity and refines them through a configurable
postprocessor pipeline.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// SetVersion overrides the reported version string.
func SetVersion(v string) {
	version = v
}

// SetIngestService wires the ingest service.
func SetIngestService(s driving.IngestService) {
	ingestService = s
}

// SetQueryService wires the query service and optional indexer.
func SetQueryService(s driving.QueryService, indexer Indexer) {
	queryService = s
	queryIndexer = indexer
}

// SetEvalService wires the evaluation service.
func SetEvalService(s driving.EvalService) {
	evalService = s
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
