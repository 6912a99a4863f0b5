package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", Overrides{})
	require.NoError(t, err)
	assert.Equal(t, Defaults().LLMEndpoint, cfg.LLMEndpoint)
	assert.True(t, cfg.EnableLLMGrounding)
	assert.True(t, cfg.EnableCache)
}

func TestOverridesWinOverDefaults(t *testing.T) {
	workers := 4
	enable := false
	cfg, err := Load("", Overrides{MaxWorkers: &workers, EnableLLMGrounding: &enable})
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.MaxWorkers)
	assert.False(t, cfg.EnableLLMGrounding)
}

func TestExtraDocPathsCarried(t *testing.T) {
	cfg, err := Load("", Overrides{ExtraDocPaths: []string{"/tmp/EXTRA.md"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"/tmp/EXTRA.md"}, cfg.ExtraDocPaths)
}
