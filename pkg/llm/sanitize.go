package llm

import "regexp"

// pemBlock matches a full PEM-encoded block (private keys, certificates).
var pemBlock = regexp.MustCompile(`(?s)-----BEGIN [A-Z ]+-----.*?-----END [A-Z ]+-----`)

// awsAccessKey matches an AWS access key ID.
var awsAccessKey = regexp.MustCompile(`AKIA[0-9A-Z]{16}`)

// highEntropyToken matches a bare run of 32+ alphanumeric/symbol characters
// with no whitespace, the shape of a bearer token or API secret (spec
// §4.7: "high-entropy 32+ character tokens").
var highEntropyToken = regexp.MustCompile(`[A-Za-z0-9+/_=\-]{32,}`)

const redactedMarker = "[redacted]"

// Sanitize strips known secret shapes from text before it is submitted in a
// grounding prompt (spec §4.7). It never lengthens the input, so it cannot
// itself push an already-capped excerpt over budget.
func Sanitize(text string) string {
	text = pemBlock.ReplaceAllString(text, redactedMarker)
	text = awsAccessKey.ReplaceAllString(text, redactedMarker)
	text = highEntropyToken.ReplaceAllStringFunc(text, func(tok string) string {
		if looksLikeHighEntropySecret(tok) {
			return redactedMarker
		}
		return tok
	})
	return text
}

// looksLikeHighEntropySecret rejects tokens that are just long runs of a
// repeated or narrow character class (e.g. a divider line of dashes, or a
// long snake_case identifier) since those aren't secrets and stripping them
// would mutilate ordinary source excerpts.
func looksLikeHighEntropySecret(tok string) bool {
	classes := map[rune]struct{}{}
	for _, r := range tok {
		switch {
		case r >= 'a' && r <= 'z':
			classes['a'] = struct{}{}
		case r >= 'A' && r <= 'Z':
			classes['A'] = struct{}{}
		case r >= '0' && r <= '9':
			classes['0'] = struct{}{}
		default:
			classes['_'] = struct{}{}
		}
	}
	return len(classes) >= 3
}

// SanitizeExcerpts applies Sanitize to every excerpt, then re-enforces the
// per-excerpt and total byte caps (spec §7, "sanitization violation... drop
// that excerpt; do not abort").
func SanitizeExcerpts(excerpts []Excerpt) []Excerpt {
	var out []Excerpt
	total := 0
	for _, ex := range excerpts {
		clean := Sanitize(ex.Content)
		if len(clean) > MaxExcerptBytes {
			continue
		}
		if total+len(clean) > MaxTotalExcerptBytes {
			continue
		}
		out = append(out, Excerpt{SegmentID: ex.SegmentID, FilePath: ex.FilePath, Content: clean})
		total += len(clean)
	}
	return out
}
