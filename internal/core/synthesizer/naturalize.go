// internal/core/synthesizer/naturalize.go
package synthesizer

import (
	"regexp"
	"strings"
)

var (
	placeholderPattern = regexp.MustCompile(`\{[^}]*\}`)
	givenFragment      = regexp.MustCompile(`^Given\s*,\s*`)
	strayPunct         = regexp.MustCompile(`\s+[,.]\s+`)
	danglingAchieve    = regexp.MustCompile(`(?i)\s+and\s+to\s+achieve\s+\.\s*`)
	whitespaceRun      = regexp.MustCompile(`\s+`)
)

// Naturalize removes template artifacts left by empty fields and tidies the
// punctuation. Best-effort text cleanup, not a grammar engine. Idempotent:
// naturalizing already-clean text changes nothing.
func Naturalize(raw string) string {
	s := placeholderPattern.ReplaceAllString(raw, "")

	// "Given {Context}, ..." with an empty context leaves "Given , ".
	s = strings.TrimSpace(s)
	s = givenFragment.ReplaceAllString(s, "")

	// Punctuation stranded by removed fields becomes a sentence break,
	// and "and to achieve ." loses its dangling connector.
	s = strayPunct.ReplaceAllString(s, ". ")
	s = danglingAchieve.ReplaceAllString(s, ".")

	s = whitespaceRun.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	// Exactly one terminating period.
	s = strings.TrimRight(s, ".")
	s = strings.TrimSpace(s)
	return s + "."
}
