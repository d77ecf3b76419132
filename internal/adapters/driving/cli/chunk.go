package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ragpipe/internal/splitter"
)

var (
	chunkSize    int
	chunkOverlap int
	chunkCode    bool
	chunkJSON    bool
)

var chunkCmd = &cobra.Command{
	Use:   "chunk [file]",
	Short: "Split a file into chunks",
	Long: `Splits a text file into overlapping chunks and prints them.
Use --code for line-based splitting of source files.`,
	Args: cobra.ExactArgs(1),
	RunE: runChunk,
}

func init() {
	chunkCmd.Flags().IntVar(&chunkSize, "chunk-size", splitter.DefaultChunkSize, "maximum chunk size")
	chunkCmd.Flags().IntVar(&chunkOverlap, "chunk-overlap", splitter.DefaultChunkOverlap, "overlap between chunks")
	chunkCmd.Flags().BoolVar(&chunkCode, "code", false, "use the line-based code splitter")
	chunkCmd.Flags().BoolVar(&chunkJSON, "json", false, "output chunks as JSON")
	rootCmd.AddCommand(chunkCmd)
}

func runChunk(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	chunks, err := splitText(string(data))
	if err != nil {
		return err
	}

	if chunkJSON {
		out, err := json.MarshalIndent(chunks, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal chunks: %w", err)
		}
		cmd.Println(string(out))
		return nil
	}

	for i, chunk := range chunks {
		cmd.Printf("--- chunk %d (%d chars) ---\n", i+1, len(chunk))
		cmd.Println(chunk)
	}
	return nil
}

func splitText(text string) ([]string, error) {
	if chunkCode {
		s, err := splitter.NewCodeSplitter(splitter.CodeConfig{})
		if err != nil {
			return nil, err
		}
		return s.Split(text), nil
	}

	s, err := splitter.NewSentenceSplitter(splitter.Config{
		ChunkSize:    chunkSize,
		ChunkOverlap: chunkOverlap,
	})
	if err != nil {
		return nil, err
	}
	return s.Split(text), nil
}
