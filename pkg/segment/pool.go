package segment

import (
	"context"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/themaverik/codebase-workflow-analyzer/pkg/errors"
	"github.com/themaverik/codebase-workflow-analyzer/pkg/types"
)

// DefaultMaxWorkers caps the stage-2 pool the same way the teacher caps its
// own ingestion pool (`pkg/ingest.MaxWorkers = 8`), rather than always
// spawning one goroutine per core.
const DefaultMaxWorkers = 8

// FileInput is one file queued for segment extraction.
type FileInput struct {
	Path     string
	Content  []byte
	Language types.Language
}

// Collector accumulates segments and diagnostics from concurrent workers in
// an append-only, mutex-guarded fashion, then hands back a single
// deterministically ordered result (spec §5, "totally ordered by segment
// ID" and property 1, "byte-identical reruns").
type Collector struct {
	mu          sync.Mutex
	segments    []types.Segment
	diagnostics []types.Diagnostic
}

func (c *Collector) addSegments(segs []types.Segment) {
	if len(segs) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.segments = append(c.segments, segs...)
}

func (c *Collector) addDiagnostic(d types.Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diagnostics = append(c.diagnostics, d)
}

// Finalize sorts the collected segments by ID and freezes the collector's
// contents into the returned slices; the Collector must not be used again
// afterward.
func (c *Collector) Finalize() ([]types.Segment, []types.Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	sort.Slice(c.segments, func(i, j int) bool { return c.segments[i].ID < c.segments[j].ID })
	return c.segments, c.diagnostics
}

// ExtractAll runs segment extraction across files using a bounded worker
// pool. maxWorkers <= 0 means "use available parallelism, capped at
// DefaultMaxWorkers". A single file's parse failure is recorded as a
// diagnostic and does not fail the group; cancellation of ctx stops queuing
// new work and lets in-flight workers return promptly (spec §5, "cancel
// propagates to idle workers within 100ms").
func ExtractAll(ctx context.Context, files []FileInput, maxWorkers int) ([]types.Segment, []types.Diagnostic) {
	if maxWorkers <= 0 {
		maxWorkers = runtime.GOMAXPROCS(0)
	}
	if maxWorkers > DefaultMaxWorkers {
		maxWorkers = DefaultMaxWorkers
	}
	if maxWorkers < 1 {
		maxWorkers = 1
	}

	collector := &Collector{}
	jobs := make(chan FileInput)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < maxWorkers; i++ {
		g.Go(func() error {
			extractor := NewExtractor()
			defer extractor.Close()
			for f := range jobs {
				select {
				case <-gctx.Done():
					continue
				default:
				}
				segs, err := extractor.Extract(f.Path, f.Content, f.Language)
				if err != nil {
					appErr := errors.Classify("segment", err)
					collector.addDiagnostic(types.Diagnostic{
						Severity: appErr.Severity,
						Component: "pkg/segment",
						Message:   appErr.Message,
						FileRef:   f.Path,
					})
					continue
				}
				collector.addSegments(segs)
			}
			return nil
		})
	}

feed:
	for _, f := range files {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- f:
		}
	}
	close(jobs)
	_ = g.Wait()

	return collector.Finalize()
}
