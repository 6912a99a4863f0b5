package segment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/themaverik/codebase-workflow-analyzer/pkg/types"
)

func TestExtractTypeScriptFunctionAndComponent(t *testing.T) {
	e := NewExtractor()
	defer e.Close()

	src := []byte(`
export function add(a: number, b: number): number {
  return a + b;
}

export function Greeting(props: { name: string }) {
  return <div>Hello {props.name}</div>;
}
`)
	segs, err := e.Extract("src/util.tsx", src, types.LangTypeScript)
	require.NoError(t, err)

	var sawFunction, sawComponent bool
	for _, s := range segs {
		if s.Kind == types.SegmentFunction && s.Structural.Name == "add" {
			sawFunction = true
		}
		if s.Kind == types.SegmentComponent && s.Structural.Name == "Greeting" {
			sawComponent = true
		}
	}
	assert.True(t, sawFunction, "expected a function segment for add()")
	assert.True(t, sawComponent, "expected a component segment for Greeting()")
}

func TestExtractTypeScriptRouteConventionPath(t *testing.T) {
	e := NewExtractor()
	defer e.Close()

	src := []byte(`
export function GET(request: Request) {
  return new Response("ok");
}
`)
	segs, err := e.Extract("app/api/users/route.ts", src, types.LangTypeScript)
	require.NoError(t, err)
	require.Len(t, segs, 1)
	assert.Equal(t, types.SegmentRoute, segs[0].Kind)
	assert.Equal(t, "GET", segs[0].Structural.Name)
}

func TestExtractPythonFlaskRoute(t *testing.T) {
	e := NewExtractor()
	defer e.Close()

	src := []byte(`
@app.route('/users', methods=['POST'])
def create_user():
    pass
`)
	segs, err := e.Extract("app.py", src, types.LangPython)
	require.NoError(t, err)
	require.Len(t, segs, 1)
	assert.Equal(t, types.SegmentRoute, segs[0].Kind)
	assert.Equal(t, "POST", segs[0].Structural.HTTPVerb)
	assert.Equal(t, "/users", segs[0].Structural.RoutePath)
}

func TestExtractAllRecordsDiagnosticOnParseFailure(t *testing.T) {
	files := []FileInput{
		{Path: "good.py", Content: []byte("def f():\n    pass\n"), Language: types.LangPython},
		{Path: "unsupported.rb", Content: []byte("def f; end"), Language: types.Language("ruby")},
	}
	segs, diags := ExtractAll(context.Background(), files, 2)
	assert.NotEmpty(t, segs)
	assert.Empty(t, diags) // unsupported language is silently skipped, not a parse failure
}

func TestExtractConfigProducesConfigurationSegment(t *testing.T) {
	src := []byte("database:\n  host: localhost\nfeature_flags:\n  enable_payments: true\n")
	seg := ExtractConfig("config/settings.yaml", src)
	assert.Equal(t, types.SegmentConfiguration, seg.Kind)
	assert.Equal(t, types.LangConfig, seg.Language)
	assert.Equal(t, "settings.yaml", seg.Structural.Name)
	assert.ElementsMatch(t, []string{"database", "feature_flags"}, seg.BusinessTags)
}

func TestExtractJavaRestControllerMethodWithoutMappingStillBecomesRoute(t *testing.T) {
	e := NewExtractor()
	defer e.Close()

	src := []byte(`
@RestController
@RequestMapping("/api/users")
public class UserController {
    @GetMapping
    public User getUser() { return null; }

    public void healthCheck() { }
}
`)
	segs, err := e.Extract("UserController.java", src, types.LangJava)
	require.NoError(t, err)

	routes := map[string]types.Segment{}
	for _, s := range segs {
		if s.Kind == types.SegmentRoute {
			routes[s.Structural.Name] = s
		}
	}
	require.Len(t, routes, 2)
	assert.Equal(t, "GET", routes["UserController.healthCheck"].Structural.HTTPVerb)
	assert.Equal(t, "/api/users", routes["UserController.healthCheck"].Structural.RoutePath)
}

func TestExtractAllIsDeterministicallyOrdered(t *testing.T) {
	files := []FileInput{
		{Path: "b.py", Content: []byte("def b():\n    pass\n"), Language: types.LangPython},
		{Path: "a.py", Content: []byte("def a():\n    pass\n"), Language: types.LangPython},
	}
	segs, _ := ExtractAll(context.Background(), files, 4)
	require.Len(t, segs, 2)
	assert.Less(t, segs[0].ID, segs[1].ID)
}
