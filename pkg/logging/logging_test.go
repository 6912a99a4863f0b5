package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/themaverik/codebase-workflow-analyzer/pkg/types"
)

func TestInitFallsBackOnInvalidLevel(t *testing.T) {
	Init("not-a-level", "text")
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}

func TestInitJSONFormatter(t *testing.T) {
	Init("warn", "json")
	assert.Equal(t, logrus.WarnLevel, logrus.GetLevel())
	_, ok := logrus.StandardLogger().Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok)
}

func TestMirrorDiagnosticsDoesNotPanic(t *testing.T) {
	base := RunLogger("run-1", "/tmp/project")
	diags := []types.Diagnostic{
		{Severity: types.DiagError, Component: "manifest", Message: "boom"},
		{Severity: types.DiagWarning, Component: "llm-grounding", Message: "unavailable", FileRef: "app.py"},
		{Severity: types.DiagInfo, Component: "cache", Message: "miss"},
	}
	assert.NotPanics(t, func() { MirrorDiagnostics(base, diags) })
}
