package framework

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/themaverik/codebase-workflow-analyzer/pkg/types"
)

func TestDetectReactFromDependencyAndContent(t *testing.T) {
	in := Input{
		Dependencies: map[string]string{"react": "^18.0.0", "react-dom": "^18.0.0"},
		FilePaths:    []string{"src/App.tsx", "package.json"},
		FileContents: map[string]string{"src/App.tsx": "const [x, setX] = useState(0);"},
	}
	results := Detect(in)
	require.NotEmpty(t, results)
	assert.Equal(t, types.FrameworkReact, results[0].Name)
	assert.False(t, results[0].Low)
	assert.GreaterOrEqual(t, results[0].Confidence, ReportThreshold)
}

// TestDetectReactFromBareJSXContent is the literal seeded scenario S1:
// package.json declaring react plus a minimal src/App.tsx whose body is
// nothing but a bare self-closing JSX element, no hook call and no literal
// "jsx" token anywhere in the file. Dependency (0.30) and file-structure
// (0.20) evidence alone land at 0.50, under the 0.60 floor the scenario
// requires; the JSX-element content regex is what pushes it over.
func TestDetectReactFromBareJSXContent(t *testing.T) {
	in := Input{
		Dependencies: map[string]string{"react": "^18"},
		FilePaths:    []string{"src/App.tsx", "package.json"},
		FileContents: map[string]string{"src/App.tsx": "function App(){ return <div/>; }"},
	}
	results := Detect(in)
	require.NotEmpty(t, results)
	assert.Equal(t, types.FrameworkReact, results[0].Name)
	assert.GreaterOrEqual(t, results[0].Confidence, 0.60)
}

// TestDetectContentCiteIsDeterministicAcrossFiles guards against Go's
// randomized map-iteration order leaking into the reported evidence
// citation when different files match different content tokens for the
// same framework: the citation must always be the earliest one by
// sorted file path, run after run.
func TestDetectContentCiteIsDeterministicAcrossFiles(t *testing.T) {
	in := Input{
		Dependencies: map[string]string{"spring-boot-starter-web": "3.0.0"},
		FileContents: map[string]string{
			"src/main/java/com/example/Application.java":    "@SpringBootApplication\npublic class Application {}",
			"src/main/java/com/example/UserController.java": "@RestController\npublic class UserController {}",
		},
	}
	for i := 0; i < 20; i++ {
		results := Detect(in)
		require.NotEmpty(t, results)
		for _, e := range results[0].Evidence {
			if e.Source == types.EvidenceContentPattern {
				// "Application.java" sorts before "UserController.java", and
				// only the former's content matches a ContentPatterns entry
				// ("@SpringBootApplication"), so that is the deterministic
				// citation regardless of map-iteration order.
				assert.Equal(t, "@SpringBootApplication", e.Cite)
			}
		}
	}
}

func TestDetectDropsBelowLowThreshold(t *testing.T) {
	in := Input{Dependencies: map[string]string{"lodash": "^4.0.0"}}
	results := Detect(in)
	assert.Empty(t, results)
}

func TestDetectTieBreakPrefersLongerDependencyMatch(t *testing.T) {
	in := Input{
		Dependencies: map[string]string{"react": "^18.0.0", "next": "^13.0.0"},
		FileContents: map[string]string{"src/app.ts": "useState( getServerSideProps"},
	}
	results := Detect(in)

	var react, next *types.DetectedFramework
	for i := range results {
		switch results[i].Name {
		case types.FrameworkReact:
			react = &results[i]
		case types.FrameworkNext:
			next = &results[i]
		}
	}
	require.NotNil(t, react)
	require.NotNil(t, next)
	assert.GreaterOrEqual(t, react.Confidence, ReportThreshold)
	assert.GreaterOrEqual(t, next.Confidence, ReportThreshold)

	// "react" is a longer matched dependency token than "next", so react
	// wins the tie-break and next is demoted to Secondary.
	assert.False(t, react.Secondary)
	assert.True(t, next.Secondary)
}

func TestDetectTieBreakDoesNotFireBelowReportThreshold(t *testing.T) {
	in := Input{
		Dependencies: map[string]string{"vue": "^3.0.0", "next": "^13.0.0"},
	}
	results := Detect(in)
	for _, r := range results {
		assert.False(t, r.Secondary, "no framework below ReportThreshold should ever be demoted")
	}
}

func TestDetectMarksLowBand(t *testing.T) {
	in := Input{Dependencies: map[string]string{"vue": "^3.0.0"}}
	results := Detect(in)
	require.Len(t, results, 1)
	assert.True(t, results[0].Low)
	assert.InDelta(t, WeightDependency, results[0].Confidence, 0.001)
}
