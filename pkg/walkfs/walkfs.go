// Package walkfs discovers source files under a project root, applying the
// same size cap and skip-list the teacher's own ingestion walker uses
// (spec §5, "10 MiB per-file cap").
package walkfs

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/themaverik/codebase-workflow-analyzer/pkg/types"
)

// MaxFileBytes bounds a single file read.
const MaxFileBytes = 10 << 20

var skipDirs = map[string]struct{}{
	"node_modules": {}, ".git": {}, "dist": {}, "build": {}, ".next": {},
	"target": {}, "__pycache__": {}, ".venv": {}, "vendor": {},
}

var extToLanguage = map[string]types.Language{
	".ts":   types.LangTypeScript,
	".tsx":  types.LangTypeScript,
	".js":   types.LangJavaScript,
	".jsx":  types.LangJavaScript,
	".java": types.LangJava,
	".py":   types.LangPython,
	".rs":   types.LangRust,
}

var configExtensions = map[string]struct{}{
	".yaml": {}, ".yml": {}, ".toml": {}, ".ini": {}, ".env": {},
}

// File is a discovered source or config file, read and capped.
type File struct {
	Path      string // relative to root
	AbsPath   string
	Content   []byte
	Language  types.Language
	Truncated bool
}

// Walk discovers every recognized source and configuration file under root,
// skipping vendor/build directories, and returns them relative-path sorted
// by filepath.WalkDir's natural lexical order (already deterministic).
func Walk(root string) ([]File, error) {
	var files []File
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if _, skip := skipDirs[d.Name()]; skip && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		lang, isSource := extToLanguage[ext]
		_, isConfig := configExtensions[ext]
		if !isSource && !isConfig {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}

		content, truncated, readErr := readCapped(path)
		if readErr != nil {
			return nil
		}

		if isConfig {
			lang = types.LangConfig
		}

		files = append(files, File{Path: rel, AbsPath: path, Content: content, Language: lang, Truncated: truncated})
		return nil
	})
	return files, err
}

// FindGoSources returns up to limit absolute paths of .go files under root,
// skipping the same vendor/build directories Walk does. Go is not one of
// the five segmented languages (spec §4.1), so these paths never reach
// pkg/segment; they exist only for pkg/classify's auxiliary Go-interop
// fingerprinting of a polyglot repository's sidecar layer
// (pkg/parser.FingerprintGoInterop).
func FindGoSources(root string, limit int) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if len(out) >= limit {
			return filepath.SkipAll
		}
		if d.IsDir() {
			if _, skip := skipDirs[d.Name()]; skip && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.ToLower(filepath.Ext(path)) == ".go" {
			out = append(out, path)
		}
		return nil
	})
	return out, err
}

func readCapped(path string) ([]byte, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, false, err
	}

	limit := info.Size()
	truncated := false
	if limit > MaxFileBytes {
		limit = MaxFileBytes
		truncated = true
	}

	buf := make([]byte, limit)
	if _, err := f.Read(buf); err != nil && limit > 0 {
		return nil, false, err
	}
	return buf, truncated, nil
}
