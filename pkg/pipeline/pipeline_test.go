package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/themaverik/codebase-workflow-analyzer/internal/config"
	"github.com/themaverik/codebase-workflow-analyzer/pkg/cache"
	"github.com/themaverik/codebase-workflow-analyzer/pkg/segment"
	"github.com/themaverik/codebase-workflow-analyzer/pkg/types"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func flaskProject(t *testing.T) string {
	dir := t.TempDir()
	writeFile(t, dir, "requirements.txt", "Flask==2.3.0\n")
	writeFile(t, dir, "README.md", "# Demo\n\n## Features\n\n- Supports user login via JWT tokens\n")
	writeFile(t, dir, "app.py", "from flask import Flask\napp = Flask(__name__)\n\n@app.route('/auth/login', methods=['POST'])\ndef login():\n    return authenticate_user()\n")
	return dir
}

func TestRunProducesFusedResultWithoutGrounding(t *testing.T) {
	dir := flaskProject(t)
	cfg := config.Defaults()
	cfg.EnableLLMGrounding = false
	cfg.EnableCache = false

	result, err := Run(context.Background(), cfg, dir, Deps{})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.NotEmpty(t, result.Metadata.RunID)
	assert.Zero(t, result.TierBreakdown.Weights.Grounding)
	assert.InDelta(t, 1.0, result.TierBreakdown.Weights.ProjectContext+result.TierBreakdown.Weights.Framework, 1e-6)
	assert.True(t, result.Successful())
}

func TestRunShortCircuitsOnWarmCache(t *testing.T) {
	dir := flaskProject(t)
	cfg := config.Defaults()
	cfg.EnableLLMGrounding = false
	store := cache.NewMemoryStore()

	first, err := Run(context.Background(), cfg, dir, Deps{Cache: store})
	require.NoError(t, err)

	second, err := Run(context.Background(), cfg, dir, Deps{Cache: store})
	require.NoError(t, err)
	assert.Equal(t, first.Metadata.RunID, second.Metadata.RunID)
}

func TestRunAbortsOnUnreadablePath(t *testing.T) {
	cfg := config.Defaults()
	_, err := Run(context.Background(), cfg, "/nonexistent/definitely/not/here", Deps{})
	assert.Error(t, err)
}

// The six literal end-to-end scenarios from spec §8. Each constructs the
// scenario's exact seeded input and checks its seeded expected output;
// no-grounding config throughout since grounding availability isn't part of
// what S1-S5 are seeded against (S6 covers that axis on its own).

func noGroundingNoCache(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Defaults()
	cfg.EnableLLMGrounding = false
	cfg.EnableCache = false
	return cfg
}

// reactComponentProject builds S1's exact seeded input.
func reactComponentProject(t *testing.T) string {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{"dependencies": {"react": "^18"}}`)
	writeFile(t, dir, "src/App.tsx", "function App(){ return <div/>; }")
	return dir
}

func TestScenarioS1ReactComponent(t *testing.T) {
	dir := reactComponentProject(t)
	result, err := Run(context.Background(), noGroundingNoCache(t), dir, Deps{})
	require.NoError(t, err)

	assert.Equal(t, types.ProjectWebApplication, result.ProjectContext.ProjectType)

	var react *types.DetectedFramework
	for i := range result.DetectedFrameworks {
		if result.DetectedFrameworks[i].Name == types.FrameworkReact {
			react = &result.DetectedFrameworks[i]
		}
	}
	require.NotNil(t, react, "react should be detected")
	assert.GreaterOrEqual(t, react.Confidence, 0.60)

	components := result.ImplementationAnalysis.ByKind[types.SegmentComponent]
	require.Len(t, components, 1)
	assert.Equal(t, "src/App.tsx#", components[0][:len("src/App.tsx#")])

	for _, d := range result.BusinessDomains {
		assert.Less(t, d.Confidence, 0.40)
	}
	assert.LessOrEqual(t, result.ReadinessScore, 0.30)
}

// analysisToolProject builds S2's exact seeded input.
func analysisToolProject(t *testing.T) string {
	dir := t.TempDir()
	writeFile(t, dir, "Cargo.toml", "[package]\nname = \"codebase-analyzer\"\nversion = \"0.1.0\"\n\n[[bin]]\nname = \"codebase-analyzer\"\n")
	writeFile(t, dir, "src/main.rs", "fn main(){ analyze() }")
	writeFile(t, dir, "README.md", "# Codebase Workflow Analyzer\n\nA reverse engineering tool for legacy codebases.\n")
	return dir
}

func TestScenarioS2AnalysisTool(t *testing.T) {
	dir := analysisToolProject(t)
	result, err := Run(context.Background(), noGroundingNoCache(t), dir, Deps{})
	require.NoError(t, err)

	assert.Equal(t, types.ProjectAnalysisTool, result.ProjectContext.ProjectType)
	assert.Empty(t, result.DetectedFrameworks)

	for _, d := range result.BusinessDomains {
		if d.Domain == types.DomainAnalytics {
			assert.Less(t, d.Confidence, 0.50)
			continue
		}
		t.Fatalf("unexpected business domain reported: %s", d.Domain)
	}
}

// springUserControllerProject builds S3's exact seeded input: a Spring
// controller with three route-bearing methods, no README.
func springUserControllerProject(t *testing.T) string {
	dir := t.TempDir()
	writeFile(t, dir, "pom.xml", `<project>
  <dependencies>
    <dependency>
      <groupId>org.springframework.boot</groupId>
      <artifactId>spring-boot-starter-web</artifactId>
    </dependency>
  </dependencies>
</project>
`)
	writeFile(t, dir, "src/main/java/com/example/UserController.java", `package com.example;

@RestController
@RequestMapping("/api/users")
public class UserController {
    @GetMapping
    public User getUser() { return null; }

    @PostMapping
    public User createUser() { return null; }

    @DeleteMapping
    public void deleteUser() { }
}
`)
	return dir
}

func TestScenarioS3SpringUserManagement(t *testing.T) {
	dir := springUserControllerProject(t)
	result, err := Run(context.Background(), noGroundingNoCache(t), dir, Deps{})
	require.NoError(t, err)

	var spring *types.DetectedFramework
	for i := range result.DetectedFrameworks {
		if result.DetectedFrameworks[i].Name == types.FrameworkSpring {
			spring = &result.DetectedFrameworks[i]
		}
	}
	require.NotNil(t, spring, "spring-boot should be detected")
	assert.GreaterOrEqual(t, spring.Confidence, 0.70)

	var userManagement *types.BusinessDomainResult
	for i := range result.BusinessDomains {
		if result.BusinessDomains[i].Domain == types.DomainUserManagement {
			userManagement = &result.BusinessDomains[i]
		}
	}
	require.NotNil(t, userManagement, "user-management should be reported")
	assert.GreaterOrEqual(t, userManagement.Confidence, 0.70)

	assert.Len(t, result.ImplementationAnalysis.ByKind[types.SegmentRoute], 3)
}

// springUserControllerWithUnsupportedClaimProject builds S4's seeded input:
// S3's project plus a README claiming payment processing that no code
// implements. The purpose-bearing first prose line deliberately avoids
// "payment"/"stripe" so the project-context tier doesn't pick up the claim's
// own vocabulary as if it were a structural domain hint.
func springUserControllerWithUnsupportedClaimProject(t *testing.T) string {
	dir := springUserControllerProject(t)
	writeFile(t, dir, "README.md", `# User Service

A Spring Boot service for managing users.

## Features

- Supports payment processing via Stripe
`)
	return dir
}

func TestScenarioS4DocumentationCodeConflict(t *testing.T) {
	dir := springUserControllerWithUnsupportedClaimProject(t)
	result, err := Run(context.Background(), noGroundingNoCache(t), dir, Deps{})
	require.NoError(t, err)

	require.NotEmpty(t, result.StatusIntelligence.ConsistencyAnalysis)
	var sawMajorPreferCode bool
	for _, c := range result.StatusIntelligence.ConsistencyAnalysis {
		if c.Strategy == types.StrategyPreferCode &&
			(c.Severity == types.SeverityMajor || c.Severity == types.SeverityCritical) {
			sawMajorPreferCode = true
		}
	}
	assert.True(t, sawMajorPreferCode, "expected a prefer-code conflict of severity >= major")

	for _, d := range result.BusinessDomains {
		assert.NotEqual(t, types.DomainPaymentProcessing, d.Domain)
	}
}

// flaskAuthProject builds S5's exact seeded input.
func flaskAuthProject(t *testing.T) string {
	dir := t.TempDir()
	writeFile(t, dir, "requirements.txt", "Flask==2.3.0\n")
	writeFile(t, dir, "app.py", "from flask import Flask\napp = Flask(__name__)\n\n@app.route('/login', methods=['POST'])\ndef login():\n    pass\n\n@app.route('/signup')\ndef signup():\n    pass\n")
	return dir
}

func TestScenarioS5FlaskAuthentication(t *testing.T) {
	dir := flaskAuthProject(t)
	result, err := Run(context.Background(), noGroundingNoCache(t), dir, Deps{})
	require.NoError(t, err)

	var flask *types.DetectedFramework
	for i := range result.DetectedFrameworks {
		if result.DetectedFrameworks[i].Name == types.FrameworkFlask {
			flask = &result.DetectedFrameworks[i]
		}
	}
	require.NotNil(t, flask, "flask should be detected")
	assert.GreaterOrEqual(t, flask.Confidence, 0.70)

	var auth *types.BusinessDomainResult
	for i := range result.BusinessDomains {
		if result.BusinessDomains[i].Domain == types.DomainAuthentication {
			auth = &result.BusinessDomains[i]
		}
	}
	require.NotNil(t, auth, "authentication should be reported")
	assert.GreaterOrEqual(t, auth.Confidence, 0.60)

	routes := result.ImplementationAnalysis.ByKind[types.SegmentRoute]
	require.Len(t, routes, 2)

	extractor := segment.NewExtractor()
	defer extractor.Close()
	appPy, err := os.ReadFile(filepath.Join(dir, "app.py"))
	require.NoError(t, err)
	segs, err := extractor.Extract("app.py", appPy, types.LangPython)
	require.NoError(t, err)
	verbs := map[string]bool{}
	for _, seg := range segs {
		if seg.Kind == types.SegmentRoute {
			verbs[seg.Structural.HTTPVerb] = true
		}
	}
	assert.True(t, verbs["POST"])
	assert.True(t, verbs["GET"])
}

// failingLLMClient simulates an unreachable language-model transport: every
// call fails, forcing stage 5 through its full retry budget.
type failingLLMClient struct{}

func (failingLLMClient) Complete(ctx context.Context, prompt string) (string, error) {
	return "", errors.New("connection refused")
}

func TestScenarioS6GroundingUnavailableDegradesGracefully(t *testing.T) {
	dir := flaskAuthProject(t)
	cfg := config.Defaults()
	cfg.EnableCache = false
	cfg.EnableLLMGrounding = true
	cfg.LLMMaxRetries = 1

	result, err := Run(context.Background(), cfg, dir, Deps{LLMClient: failingLLMClient{}})
	require.NoError(t, err)
	assert.True(t, result.Successful())

	var warnings int
	for _, d := range result.Diagnostics {
		if d.Component == "llm-grounding" {
			assert.Equal(t, types.DiagWarning, d.Severity)
			warnings++
		}
	}
	assert.Equal(t, 1, warnings)

	assert.Zero(t, result.TierBreakdown.Weights.Grounding)
	assert.InDelta(t, 1.0, result.TierBreakdown.Weights.ProjectContext+result.TierBreakdown.Weights.Framework, 1e-6)
}
