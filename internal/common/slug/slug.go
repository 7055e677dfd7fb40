// Package slug builds URL path segments from post titles. Titles on the
// platform are mostly Arabic, so the transform keeps any unicode letter
// or digit and only folds separators and punctuation into dashes.
package slug

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// Make converts a title into a lowercase dash-separated slug. Returns an
// empty string when the title contains no letters or digits.
func Make(title string) string {
	var b strings.Builder
	prevDash := true // suppress a leading dash
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		case !prevDash:
			b.WriteRune('-')
			prevDash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// Unique returns Make(title) with a short random suffix so two posts with
// the same title never collide.
func Unique(title string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	s := Make(title)
	if s == "" {
		return suffix
	}
	return s + "-" + suffix
}
