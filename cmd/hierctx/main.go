// Command hierctx is the analyzer's command-line front end. It resolves
// configuration the way internal/config.Load documents (overrides > env >
// config file > defaults), then dispatches to one of three run modes:
// a one-shot "analyze" that prints the fused result, "serve" for the REST
// surface (pkg/httpapi), and "mcp" for the stdio Model Context Protocol
// surface (pkg/mcpserver). The teacher's main.go dispatches on a handful of
// boolean flags read via the standard flag package (--ingest, --server,
// --source, --low-mem) into single-store/server/repl run modes; this
// generalizes that same one-binary-many-modes shape into cobra
// subcommands, which is the pattern the rest of the pack (and the teacher's
// own go.mod, which already lists spf13/cobra as a direct dependency) reach
// for once a CLI grows past a handful of flags.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/themaverik/codebase-workflow-analyzer/internal/config"
	"github.com/themaverik/codebase-workflow-analyzer/pkg/cache"
	"github.com/themaverik/codebase-workflow-analyzer/pkg/httpapi"
	"github.com/themaverik/codebase-workflow-analyzer/pkg/llm"
	"github.com/themaverik/codebase-workflow-analyzer/pkg/logging"
	"github.com/themaverik/codebase-workflow-analyzer/pkg/mcpserver"
	"github.com/themaverik/codebase-workflow-analyzer/pkg/pipeline"
)

var (
	flagConfigPath  string
	flagGrounding   bool
	flagCache       bool
	flagOutputDir   string
	flagDocs        []string
	flagCacheDir    string
	flagLLMProvider string
	flagAddr        string
)

func main() {
	root := &cobra.Command{
		Use:   "hierctx",
		Short: "Fuse project structure, framework detection, and documentation into a business-domain analysis",
	}
	root.PersistentFlags().StringVar(&flagConfigPath, "config", "", "path to a hierctx.yaml configuration file")
	root.PersistentFlags().BoolVar(&flagGrounding, "grounding", true, "enable language-model grounding")
	root.PersistentFlags().BoolVar(&flagCache, "cache", true, "enable the on-disk analysis cache")
	root.PersistentFlags().StringVar(&flagCacheDir, "cache-dir", "./.hierctx-cache", "on-disk cache directory")
	root.PersistentFlags().StringVar(&flagLLMProvider, "llm-provider", "ollama", "grounding provider: ollama or gemini")

	root.AddCommand(newAnalyzeCmd(), newServeCmd(), newMCPCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <project-path>",
		Short: "Run one analysis pass over a project and print the fused result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, deps, closeDeps, err := resolve()
			if err != nil {
				return err
			}
			defer closeDeps()

			if flagOutputDir != "" {
				cfg.OutputDir = flagOutputDir
			}
			if len(flagDocs) > 0 {
				cfg.ExtraDocPaths = flagDocs
			}

			result, err := pipeline.Run(cmd.Context(), cfg, args[0], deps)
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(result); err != nil {
				return fmt.Errorf("encode result: %w", err)
			}

			if cfg.OutputDir != "" {
				if err := writeResultFile(cfg.OutputDir, result.Metadata.RunID, result); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&flagOutputDir, "output-dir", "", "directory to also write the result JSON to, named by run ID")
	cmd.Flags().StringSliceVar(&flagDocs, "docs", nil, "additional documentation file paths to consider beyond README/docs")
	return cmd
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, deps, closeDeps, err := resolve()
			if err != nil {
				return err
			}
			defer closeDeps()

			srv := httpapi.NewServer(cfg, deps)
			return srv.Run(flagAddr)
		},
	}
	cmd.Flags().StringVar(&flagAddr, "addr", ":8080", "address to listen on")
	return cmd
}

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start the Model Context Protocol server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, deps, closeDeps, err := resolve()
			if err != nil {
				return err
			}
			defer closeDeps()

			srv := mcpserver.NewServer(cfg, deps)
			return srv.Run(context.Background())
		},
	}
}

// resolve loads configuration (overridden by the persistent flags) and
// constructs the cache/LLM-client dependencies it names. The returned
// closer must be deferred by the caller to release the on-disk cache and
// any language-model client that holds a live connection.
func resolve() (config.Config, pipeline.Deps, func(), error) {
	cfg, err := config.Load(flagConfigPath, config.Overrides{
		EnableLLMGrounding: &flagGrounding,
		EnableCache:        &flagCache,
	})
	if err != nil {
		return config.Config{}, pipeline.Deps{}, func() {}, fmt.Errorf("load configuration: %w", err)
	}
	logging.Init(cfg.LogLevel, cfg.LogFormat)

	var deps pipeline.Deps
	var closers []func()

	if cfg.EnableCache {
		store, err := cache.OpenBadgerStore(cache.DefaultBadgerConfig(flagCacheDir))
		if err != nil {
			return config.Config{}, pipeline.Deps{}, func() {}, fmt.Errorf("open cache: %w", err)
		}
		deps.Cache = store
		closers = append(closers, func() { _ = store.Close() })
	}

	if cfg.EnableLLMGrounding {
		client, closer, err := buildLLMClient(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: grounding disabled: %v\n", err)
		} else {
			deps.LLMClient = client
			if closer != nil {
				closers = append(closers, closer)
			}
		}
	}

	return cfg, deps, func() {
		for _, c := range closers {
			c()
		}
	}, nil
}

func buildLLMClient(cfg config.Config) (llm.Client, func(), error) {
	switch flagLLMProvider {
	case "gemini":
		apiKey := os.Getenv("GEMINI_API_KEY")
		client, err := llm.NewGeminiClient(context.Background(), apiKey, cfg.LLMModel)
		if err != nil {
			return nil, nil, err
		}
		return client, client.Close, nil
	default:
		return llm.NewOllamaClient(cfg.LLMEndpoint, cfg.LLMModel), nil, nil
	}
}

func writeResultFile(dir, runID string, result any) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(dir + "/" + runID + ".json")
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
