// Package logging wires the pipeline's ambient logging (SPEC_FULL.md §A.1)
// through github.com/sirupsen/logrus, grounded on the DebugAgent backend's
// logging/logging.go InitLogger shape (ParseLevel-with-fallback, a text or
// JSON formatter, stdout/stderr output).
package logging

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/themaverik/codebase-workflow-analyzer/pkg/types"
)

// Init configures the process-wide logrus logger from level/format strings
// (internal/config.Config's LogLevel/LogFormat). Unlike the teacher's
// process-wide logrus state, every pipeline call site threads its own
// structured fields (stage, component, project_path, run_id) through
// logrus.WithFields rather than relying on package-global context, so this
// is the one place package-level logrus state is touched directly.
func Init(level, format string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("invalid log level %q, using info", level)
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)

	if strings.ToLower(format) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

// RunLogger returns a *logrus.Entry pre-populated with the run-scoped
// fields every stage's log line carries: run_id and project_path. Each
// stage should further annotate it with `stage`/`component` before logging.
func RunLogger(runID, projectPath string) *logrus.Entry {
	return logrus.WithFields(logrus.Fields{
		"run_id":       runID,
		"project_path": projectPath,
	})
}

// MirrorDiagnostics logs each accumulated Diagnostic (§7) at the logrus
// level its DiagnosticSeverity maps onto, so an operator watching process
// logs sees the same signal a caller later reads off the wire payload's
// `diagnostics` list.
func MirrorDiagnostics(base *logrus.Entry, diags []types.Diagnostic) {
	for _, d := range diags {
		entry := base.WithField("component", d.Component)
		if d.FileRef != "" {
			entry = entry.WithField("file_ref", d.FileRef)
		}
		switch d.Severity {
		case types.DiagError:
			entry.Error(d.Message)
		case types.DiagWarning:
			entry.Warn(d.Message)
		default:
			entry.Info(d.Message)
		}
	}
}
