// Package cache is the external, read-mostly collaborator stage 1 consults
// for a prior fused result before running the full pipeline (spec §5, §6).
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"time"

	"github.com/themaverik/codebase-workflow-analyzer/pkg/types"
)

// Entry pairs a cached fused result with the time it was written, so a
// caller can apply its own TTL policy (spec §5: "on hit and not-expired
// (TTL default 24h)").
type Entry struct {
	Result    types.FusedResult
	WrittenAt time.Time
}

// Store is the external cache collaborator's contract (spec §6): get, put,
// delete keyed by an opaque string this package computes via Key.
type Store interface {
	Get(key string) (Entry, bool, error)
	Put(key string, entry Entry) error
	Delete(key string) error
}

// Key computes the SHA-256 cache key from (project-root-path, sorted
// file-hash list, analyzer-version-string), per spec §6's literal
// definition. fileHashes need not already be sorted; Key sorts a copy so
// callers can pass them in filesystem-walk order.
func Key(projectRootPath string, fileHashes []string, analyzerVersion string) string {
	sorted := make([]string, len(fileHashes))
	copy(sorted, fileHashes)
	sort.Strings(sorted)

	h := sha256.New()
	h.Write([]byte(projectRootPath))
	h.Write([]byte{0})
	for _, fh := range sorted {
		h.Write([]byte(fh))
		h.Write([]byte{0})
	}
	h.Write([]byte(analyzerVersion))
	return hex.EncodeToString(h.Sum(nil))
}

// Fresh reports whether entry is still valid under ttl, evaluated at now.
func Fresh(entry Entry, ttl time.Duration, now time.Time) bool {
	return now.Sub(entry.WrittenAt) < ttl
}

func encodeEntry(e Entry) ([]byte, error) {
	return json.Marshal(e)
}

func decodeEntry(data []byte) (Entry, error) {
	var e Entry
	err := json.Unmarshal(data, &e)
	return e, err
}
