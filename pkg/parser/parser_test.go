package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/themaverik/codebase-workflow-analyzer/pkg/types"
)

func TestRegistryParsesTypeScript(t *testing.T) {
	r := NewRegistry()
	defer r.Close()

	tree, err := r.Parse(LangTypeScript, []byte("function greet(name: string): string { return name; }"))
	require.NoError(t, err)
	defer tree.Close()

	assert.Equal(t, "program", tree.Root().Kind())
}

func TestRegistryParsesTSX(t *testing.T) {
	r := NewRegistry()
	defer r.Close()

	tree, err := r.Parse(LangTSX, []byte("export function App() { return <div>hi</div>; }"))
	require.NoError(t, err)
	defer tree.Close()

	assert.NotNil(t, tree.Root())
}

func TestRegistryReusesParserPerLanguage(t *testing.T) {
	r := NewRegistry()
	defer r.Close()

	_, err := r.Parse(LangPython, []byte("def f():\n    pass\n"))
	require.NoError(t, err)
	assert.Len(t, r.parsers, 1)

	_, err = r.Parse(LangPython, []byte("def g():\n    pass\n"))
	require.NoError(t, err)
	assert.Len(t, r.parsers, 1)
}

func TestRegistryRejectsUnsupportedLanguage(t *testing.T) {
	r := NewRegistry()
	defer r.Close()

	_, err := r.Parse(Language("cobol"), []byte("IDENTIFICATION DIVISION."))
	assert.Error(t, err)
}

func TestFromSegmentLanguageDistinguishesTSX(t *testing.T) {
	assert.Equal(t, LangTSX, FromSegmentLanguage(types.LangTypeScript, "component.tsx"))
	assert.Equal(t, LangTypeScript, FromSegmentLanguage(types.LangTypeScript, "service.ts"))
}
