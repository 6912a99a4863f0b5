package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

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

func testServer() *Server {
	cfg := config.Defaults()
	cfg.EnableLLMGrounding = false
	return NewServer(cfg, pipeline.Deps{})
}

func TestHealthCheck(t *testing.T) {
	srv := testServer()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleAnalyzeAndPoll(t *testing.T) {
	srv := testServer()
	dir := flaskProject(t)

	body := `{"project_path": "` + strings.ReplaceAll(dir, `\`, `\\`) + `"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/v1/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ID)

	w2 := httptest.NewRecorder()
	req2, _ := http.NewRequest(http.MethodGet, "/v1/analyze/"+resp.ID, nil)
	srv.Router().ServeHTTP(w2, req2)

	assert.Equal(t, http.StatusOK, w2.Code)

	var j job
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &j))
	assert.Equal(t, jobDone, j.Status)
	require.NotNil(t, j.Result)
}

func TestHandleAnalyzeRejectsMissingBody(t *testing.T) {
	srv := testServer()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/v1/analyze", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleAnalyzeStatusUnknownID(t *testing.T) {
	srv := testServer()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/v1/analyze/does-not-exist", nil)
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
