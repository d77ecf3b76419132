// ragpipe is a retrieval pipeline CLI: it chunks documents, stores
// linked nodes and answers queries through a configurable
// postprocessor pipeline.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/ragpipe/internal/adapters/driven/config/file"
	"github.com/custodia-labs/ragpipe/internal/adapters/driven/embedding/ollama"
	"github.com/custodia-labs/ragpipe/internal/adapters/driven/embedding/openai"
	"github.com/custodia-labs/ragpipe/internal/adapters/driven/retriever"
	"github.com/custodia-labs/ragpipe/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ragpipe/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/ragpipe/internal/adapters/driving/cli"
	"github.com/custodia-labs/ragpipe/internal/core/ports/driven"
	"github.com/custodia-labs/ragpipe/internal/core/services"
	"github.com/custodia-labs/ragpipe/internal/nodeparser"
	"github.com/custodia-labs/ragpipe/internal/postprocessors"
	"github.com/custodia-labs/ragpipe/internal/splitter"
)

// version is injected at build time via ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, closeStore, err := buildStore(cfg)
	if err != nil {
		return err
	}
	if closeStore != nil {
		defer closeStore()
	}

	parser, err := buildParser(cfg)
	if err != nil {
		return err
	}

	ingest, err := services.NewIngestService(parser, store)
	if err != nil {
		return err
	}
	cli.SetIngestService(ingest)
	cli.SetEvalService(services.NewEvalService())

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		return err
	}
	if embedder != nil {
		defer embedder.Close()

		registry := postprocessors.NewRegistry()
		postprocessors.RegisterDefaults(registry, postprocessors.Deps{
			Store:    store,
			Embedder: embedder,
			Clock:    driven.SystemClock(),
		})
		pipeline, err := registry.BuildPipeline(cfg.Pipeline.Stages)
		if err != nil {
			return err
		}

		cosine, err := retriever.NewCosine(store, embedder)
		if err != nil {
			return err
		}
		query, err := services.NewQueryService(cosine, pipeline)
		if err != nil {
			return err
		}
		cli.SetQueryService(query, cosine)
	}

	cli.SetVersion(version)
	return cli.Execute()
}

func loadConfig() (*file.Config, error) {
	path := os.Getenv("RAGPIPE_CONFIG")
	if path == "" {
		var err error
		path, err = file.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return file.Load(path)
}

func buildStore(cfg *file.Config) (driven.NodeStore, func() error, error) {
	if cfg.Storage.Backend == "sqlite" {
		s, err := sqlite.NewStore(cfg.Storage.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	}
	return memory.NewNodeStore(), nil, nil
}

func buildParser(cfg *file.Config) (services.NodeParser, error) {
	opts := nodeparser.DefaultOptions()

	if cfg.Splitter.WindowSize > 0 {
		return nodeparser.NewWindowParser(cfg.Splitter.WindowSize, opts)
	}

	if cfg.Splitter.Type == "code" {
		s, err := splitter.NewCodeSplitter(splitter.CodeConfig{})
		if err != nil {
			return nil, err
		}
		return nodeparser.New(s, opts)
	}

	s, err := splitter.NewSentenceSplitter(splitter.Config{
		ChunkSize:    cfg.Splitter.ChunkSize,
		ChunkOverlap: cfg.Splitter.ChunkOverlap,
	})
	if err != nil {
		return nil, err
	}
	return nodeparser.New(s, opts)
}

func buildEmbedder(cfg *file.Config) (driven.EmbeddingService, error) {
	switch cfg.Embedding.Provider {
	case "ollama":
		return ollama.NewEmbeddingService(ollama.Config{
			BaseURL: cfg.Embedding.BaseURL,
			Model:   cfg.Embedding.Model,
		}), nil
	case "openai":
		apiKey := cfg.Embedding.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		return openai.NewEmbeddingService(openai.Config{
			APIKey:  apiKey,
			BaseURL: cfg.Embedding.BaseURL,
			Model:   cfg.Embedding.Model,
		})
	default:
		return nil, nil
	}
}
