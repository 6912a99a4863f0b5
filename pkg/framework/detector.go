package framework

import (
	"regexp"
	"sort"
	"strings"

	"github.com/themaverik/codebase-workflow-analyzer/pkg/types"
)

// Weight caps per evidence source (spec §4.4). A framework's confidence is
// the sum of at most one contribution per source, clamped to 1 — matching
// property 2 ("evidence contributes monotonically, never decreases
// confidence").
const (
	WeightDependency    = 0.30
	WeightImport        = 0.20
	WeightFileStructure = 0.20
	WeightContent       = 0.30

	ReportThreshold = 0.50
	LowThreshold    = 0.30
)

// Input bundles the observable surface the detector scores against. It is
// deliberately decoupled from pkg/manifest/pkg/walkfs/pkg/segment's own
// types so this package can be tested with plain literals.
type Input struct {
	Dependencies map[string]string
	FilePaths    []string
	FileContents map[string]string // path -> content excerpt
}

// Detect scores every framework in Patterns against in and returns the
// frameworks that clear LowThreshold, sorted by descending confidence, with
// the tie-break rule applied: when two same-language frameworks both exceed
// ReportThreshold and share at least half their matched evidence sources,
// the one with the less specific (shorter matched-token) dependency
// citation is marked Secondary rather than dropped (a project can
// genuinely straddle, e.g., Express serving a React SPA).
func Detect(in Input) []types.DetectedFramework {
	var results []types.DetectedFramework
	matchedSources := make(map[types.FrameworkName]map[types.EvidenceSource]struct{})

	for _, p := range Patterns {
		evidence, sources := scorePattern(p, in)
		conf := 0.0
		for _, e := range evidence {
			conf += e.ContributedWeight
		}
		if conf > 1 {
			conf = 1
		}
		if conf < LowThreshold {
			continue
		}
		results = append(results, types.DetectedFramework{
			Name:       p.Name,
			Language:   p.Language,
			Confidence: conf,
			Low:        conf < ReportThreshold,
			Evidence:   evidence,
		})
		matchedSources[p.Name] = sources
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Confidence > results[j].Confidence })

	applyTieBreak(results, matchedSources)
	return results
}

func scorePattern(p Pattern, in Input) ([]types.FrameworkEvidence, map[types.EvidenceSource]struct{}) {
	var evidence []types.FrameworkEvidence
	sources := make(map[types.EvidenceSource]struct{})

	if dep, ok := matchAny(keysOf(in.Dependencies), p.DependencyTokens); ok {
		evidence = append(evidence, types.FrameworkEvidence{Source: types.EvidenceDependency, Cite: dep, ContributedWeight: WeightDependency})
		sources[types.EvidenceDependency] = struct{}{}
	}

	if imp, ok := matchAnyInContents(in.FileContents, p.ImportTokens); ok {
		evidence = append(evidence, types.FrameworkEvidence{Source: types.EvidenceImport, Cite: imp, ContributedWeight: WeightImport})
		sources[types.EvidenceImport] = struct{}{}
	}

	if fs, ok := matchAny(in.FilePaths, p.FileStructure); ok {
		evidence = append(evidence, types.FrameworkEvidence{Source: types.EvidenceFileStructure, Cite: fs, ContributedWeight: WeightFileStructure})
		sources[types.EvidenceFileStructure] = struct{}{}
	}

	if cp, ok := matchAnyInContents(in.FileContents, p.ContentPatterns); ok {
		evidence = append(evidence, types.FrameworkEvidence{Source: types.EvidenceContentPattern, Cite: cp, ContributedWeight: WeightContent})
		sources[types.EvidenceContentPattern] = struct{}{}
	} else if cp, ok := matchRegexInContents(in.FileContents, p.ContentRegex); ok {
		evidence = append(evidence, types.FrameworkEvidence{Source: types.EvidenceContentPattern, Cite: cp, ContributedWeight: WeightContent})
		sources[types.EvidenceContentPattern] = struct{}{}
	}

	return evidence, sources
}

func keysOf(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func matchAny(haystack []string, needles []string) (string, bool) {
	for _, h := range haystack {
		for _, n := range needles {
			if strings.Contains(h, n) {
				return n, true
			}
		}
	}
	return "", false
}

// matchAnyInContents scans file contents in sorted-path order so the
// returned citation is deterministic across runs even when multiple files
// match different needles (spec §5's ordering guarantee; §8 property 1
// requires byte-identical output for identical input).
func matchAnyInContents(contents map[string]string, needles []string) (string, bool) {
	for _, path := range sortedKeys(contents) {
		content := contents[path]
		for _, n := range needles {
			if strings.Contains(content, n) {
				return n, true
			}
		}
	}
	return "", false
}

func matchRegexInContents(contents map[string]string, re *regexp.Regexp) (string, bool) {
	if re == nil {
		return "", false
	}
	for _, path := range sortedKeys(contents) {
		if m := re.FindString(contents[path]); m != "" {
			return m, true
		}
	}
	return "", false
}

func sortedKeys(contents map[string]string) []string {
	keys := make([]string, 0, len(contents))
	for k := range contents {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// applyTieBreak walks same-language pairs that both clear ReportThreshold
// and demotes whichever one carries the less specific (shorter matched
// dependency-token) evidence to Secondary, when the pair shares at least
// half its matched evidence sources (spec §4.4: "if two frameworks of the
// same language exceed 0.50 and share ≥50% of their evidence sources, the
// one with a more specific dependency (longer name match) wins").
func applyTieBreak(results []types.DetectedFramework, matched map[types.FrameworkName]map[types.EvidenceSource]struct{}) {
	for i := 0; i < len(results); i++ {
		if results[i].Confidence <= ReportThreshold {
			continue
		}
		for j := i + 1; j < len(results); j++ {
			if results[j].Confidence <= ReportThreshold {
				continue
			}
			if results[i].Language != results[j].Language {
				continue
			}
			if shareRatio(matched[results[i].Name], matched[results[j].Name]) < 0.5 {
				continue
			}
			if dependencyTokenLen(results[i]) >= dependencyTokenLen(results[j]) {
				results[j].Secondary = true
			} else {
				results[i].Secondary = true
			}
		}
	}
}

// dependencyTokenLen returns the length of fw's matched dependency-token
// citation, or 0 if it has no dependency evidence at all — the "more
// specific dependency" measure the tie-break rule compares.
func dependencyTokenLen(fw types.DetectedFramework) int {
	for _, e := range fw.Evidence {
		if e.Source == types.EvidenceDependency {
			return len(e.Cite)
		}
	}
	return 0
}

func shareRatio(a, b map[types.EvidenceSource]struct{}) float64 {
	if len(a) == 0 {
		return 0
	}
	shared := 0
	for s := range a {
		if _, ok := b[s]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(a))
}
