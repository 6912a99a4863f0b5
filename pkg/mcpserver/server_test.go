package mcpserver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/themaverik/codebase-workflow-analyzer/internal/config"
	"github.com/themaverik/codebase-workflow-analyzer/pkg/pipeline"
)

func flaskProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"requirements.txt": "Flask==2.3.0\n",
		"README.md":        "# Demo\n\n## Features\n\n- Supports user login via JWT tokens\n",
		"app.py":           "from flask import Flask\napp = Flask(__name__)\n\n@app.route('/auth/login', methods=['POST'])\ndef login():\n    return authenticate_user()\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func callToolRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func TestHandleAnalyzeProjectSuccess(t *testing.T) {
	cfg := config.Defaults()
	cfg.EnableLLMGrounding = false
	s := NewServer(cfg, pipeline.Deps{})

	dir := flaskProject(t)
	result, err := s.handleAnalyzeProject(context.Background(), callToolRequest(map[string]any{
		"project_path": dir,
	}))
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError)
}

func TestHandleAnalyzeProjectRequiresPath(t *testing.T) {
	cfg := config.Defaults()
	s := NewServer(cfg, pipeline.Deps{})

	result, err := s.handleAnalyzeProject(context.Background(), callToolRequest(map[string]any{}))
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestHandleAnalyzeProjectReportsFailure(t *testing.T) {
	cfg := config.Defaults()
	s := NewServer(cfg, pipeline.Deps{})

	result, err := s.handleAnalyzeProject(context.Background(), callToolRequest(map[string]any{
		"project_path": "/nonexistent/definitely/not/here",
	}))
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}
