package keys

import (
	"fmt"
	"strings"
	"unicode"

	"places/internal/models"
)

// sanitizeKey lowercases s and turns anything that is not a letter or digit
// into a single hyphen.
func sanitizeKey(s string) string {
	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			hyphen = false
			continue
		}
		if !hyphen && b.Len() > 0 {
			b.WriteByte('-')
			hyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Outcome returns the canonical object key for a delivered search outcome.
// The outcome id makes the key unique: a reopened session restarts its seq,
// and distinct session ids can sanitize to the same prefix.
func Outcome(o models.Outcome) string {
	session := sanitizeKey(o.Session)
	if session == "" {
		session = "anonymous"
	}
	parts := []string{fmt.Sprintf("%d", o.Seq)}
	for _, p := range []string{sanitizeKey(o.Keyword), sanitizeKey(o.ID)} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return fmt.Sprintf("outcomes/%s/%s.json", session, strings.Join(parts, "-"))
}
