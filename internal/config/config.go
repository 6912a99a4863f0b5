// Package config builds the single immutable configuration record threaded
// through the analysis pipeline (spec §9, "Global configuration"). It is
// resolved once, in priority order: explicit call parameters (Overrides) >
// environment variables > configuration file > built-in defaults (spec §6).
package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is a plain, copy-by-value struct. No package-level singleton holds
// analysis state; every stage receives its own copy.
type Config struct {
	// MaxWorkers bounds the stage-2 segment-extraction worker pool. Zero
	// means "use available parallelism" (spec §5).
	MaxWorkers int `mapstructure:"max_workers"`

	// MaxSegmentContentBytes bounds retained segment excerpt content (§3).
	MaxSegmentContentBytes int `mapstructure:"max_segment_content_bytes"`

	// MaxFileReadBytes bounds a single file read (§5, "10 MiB").
	MaxFileReadBytes int64 `mapstructure:"max_file_read_bytes"`

	// DocsMaxDepth and DocsMaxBytes bound the metadata reader's traversal
	// of README/docs content (§4.2).
	DocsMaxDepth int   `mapstructure:"docs_max_depth"`
	DocsMaxBytes int64 `mapstructure:"docs_max_bytes"`

	// EnableLLMGrounding toggles stage 5.
	EnableLLMGrounding bool `mapstructure:"enable_llm_grounding"`

	// EnableCache toggles the stage-1 cache short-circuit (§5).
	EnableCache bool `mapstructure:"enable_cache"`

	// CacheTTL is the cache entry time-to-live (§5, default 24h).
	CacheTTL time.Duration `mapstructure:"cache_ttl"`

	// LLMEndpoint is the language-model transport endpoint (§6).
	LLMEndpoint string `mapstructure:"llm_endpoint"`
	// LLMModel names the model to request.
	LLMModel string `mapstructure:"llm_model"`
	// LLMTimeout bounds a single grounding request (§5, default 120s).
	LLMTimeout time.Duration `mapstructure:"llm_timeout"`
	// LLMMaxRetries is the retry budget for transport-layer failures (§5).
	LLMMaxRetries int `mapstructure:"llm_max_retries"`

	// AnalyzerVersion is stamped into every fused result's metadata block.
	AnalyzerVersion string `mapstructure:"analyzer_version"`

	// OutputDir is where a caller may ask the (external) CLI front-end to
	// write results; carried here only so it participates in the same
	// priority-resolution chain as everything else (§6).
	OutputDir string `mapstructure:"output_dir"`

	// ExtraDocPaths lists additional documentation paths supplied by a
	// caller beyond the project's own README/docs tree (§6).
	ExtraDocPaths []string `mapstructure:"extra_doc_paths"`

	// LogLevel and LogFormat configure pkg/logging's logrus setup (§A.1).
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Defaults returns the built-in configuration defaults.
func Defaults() Config {
	return Config{
		MaxWorkers:             0,
		MaxSegmentContentBytes: 2048,
		MaxFileReadBytes:       10 << 20,
		DocsMaxDepth:           3,
		DocsMaxBytes:           256 << 10,
		EnableLLMGrounding:     true,
		EnableCache:            true,
		CacheTTL:               24 * time.Hour,
		LLMEndpoint:            "http://localhost:11434",
		LLMModel:               "llama3",
		LLMTimeout:             120 * time.Second,
		LLMMaxRetries:          3,
		AnalyzerVersion:        "hierctx-1.0.0",
		LogLevel:               "info",
		LogFormat:              "text",
	}
}

// Overrides holds explicit call parameters, the highest-priority tier in
// spec §6's resolution order. Zero-valued fields are treated as "not
// overridden" and fall through to the next tier.
type Overrides struct {
	MaxWorkers         *int
	EnableLLMGrounding *bool
	EnableCache        *bool
	OutputDir          *string
	ExtraDocPaths      []string
	LLMEndpoint        *string
}

// Load resolves configuration in priority order: overrides > environment
// (prefixed HIERCTX_) > a discovered hierctx.yaml/json config file >
// Defaults(). configPath, when non-empty, is consulted in addition to
// viper's default search paths (cwd, then $HOME).
func Load(configPath string, ov Overrides) (Config, error) {
	_ = godotenv.Load()

	defaults := Defaults()

	v := viper.New()
	v.SetEnvPrefix("HIERCTX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, defaults)

	v.SetConfigName("hierctx")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if configPath != "" {
		v.SetConfigFile(configPath)
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	cfg := defaults
	cfg.MaxWorkers = v.GetInt("max_workers")
	cfg.MaxSegmentContentBytes = v.GetInt("max_segment_content_bytes")
	cfg.MaxFileReadBytes = v.GetInt64("max_file_read_bytes")
	cfg.DocsMaxDepth = v.GetInt("docs_max_depth")
	cfg.DocsMaxBytes = v.GetInt64("docs_max_bytes")
	cfg.EnableLLMGrounding = v.GetBool("enable_llm_grounding")
	cfg.EnableCache = v.GetBool("enable_cache")
	cfg.CacheTTL = v.GetDuration("cache_ttl")
	cfg.LLMEndpoint = v.GetString("llm_endpoint")
	cfg.LLMModel = v.GetString("llm_model")
	cfg.LLMTimeout = v.GetDuration("llm_timeout")
	cfg.LLMMaxRetries = v.GetInt("llm_max_retries")
	cfg.AnalyzerVersion = v.GetString("analyzer_version")
	cfg.OutputDir = v.GetString("output_dir")
	cfg.LogLevel = v.GetString("log_level")
	cfg.LogFormat = v.GetString("log_format")

	applyOverrides(&cfg, ov)
	return cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("max_workers", d.MaxWorkers)
	v.SetDefault("max_segment_content_bytes", d.MaxSegmentContentBytes)
	v.SetDefault("max_file_read_bytes", d.MaxFileReadBytes)
	v.SetDefault("docs_max_depth", d.DocsMaxDepth)
	v.SetDefault("docs_max_bytes", d.DocsMaxBytes)
	v.SetDefault("enable_llm_grounding", d.EnableLLMGrounding)
	v.SetDefault("enable_cache", d.EnableCache)
	v.SetDefault("cache_ttl", d.CacheTTL)
	v.SetDefault("llm_endpoint", d.LLMEndpoint)
	v.SetDefault("llm_model", d.LLMModel)
	v.SetDefault("llm_timeout", d.LLMTimeout)
	v.SetDefault("llm_max_retries", d.LLMMaxRetries)
	v.SetDefault("analyzer_version", d.AnalyzerVersion)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
}

func applyOverrides(cfg *Config, ov Overrides) {
	if ov.MaxWorkers != nil {
		cfg.MaxWorkers = *ov.MaxWorkers
	}
	if ov.EnableLLMGrounding != nil {
		cfg.EnableLLMGrounding = *ov.EnableLLMGrounding
	}
	if ov.EnableCache != nil {
		cfg.EnableCache = *ov.EnableCache
	}
	if ov.OutputDir != nil {
		cfg.OutputDir = *ov.OutputDir
	}
	if ov.LLMEndpoint != nil {
		cfg.LLMEndpoint = *ov.LLMEndpoint
	}
	if len(ov.ExtraDocPaths) > 0 {
		cfg.ExtraDocPaths = ov.ExtraDocPaths
	}
}
