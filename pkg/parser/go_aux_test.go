package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprintGoInteropReadsPackageAndImports(t *testing.T) {
	src := []byte(`package worker

import (
	"context"
	"github.com/example/sidecar/internal/queue"
)

func main() {}
`)
	fp := FingerprintGoInterop(src)
	assert.Equal(t, "worker", fp.PackageName)
	assert.False(t, fp.IsMain)
	assert.Contains(t, fp.ImportPaths, "context")
	assert.Contains(t, fp.ImportPaths, "github.com/example/sidecar/internal/queue")
}

func TestFingerprintGoInteropToleratesGarbage(t *testing.T) {
	fp := FingerprintGoInterop([]byte("not even close to go source {{{"))
	assert.Empty(t, fp.PackageName)
}
