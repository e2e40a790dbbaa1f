// Package locale derives the user's language code from the POSIX locale
// environment.
package locale

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

// Variables consulted in order of precedence.
var localeVars = []string{"LC_ALL", "LC_MESSAGES", "LANG"}

// Language returns the base language code (for example "en") of the first
// set locale variable, or "" when none is set or the locale is C/POSIX.
// lookup is os.LookupEnv in production.
func Language(lookup func(string) (string, bool)) string {
	for _, key := range localeVars {
		if v, ok := lookup(key); ok && v != "" {
			return FromTag(v)
		}
	}
	return ""
}

// FromEnv is Language(os.LookupEnv).
func FromEnv() string {
	return Language(os.LookupEnv)
}

// FromTag returns the base language of a POSIX locale name or BCP 47 tag.
func FromTag(value string) string {
	if i := strings.IndexAny(value, ".@"); i >= 0 {
		value = value[:i]
	}
	switch value {
	case "", "C", "POSIX":
		return ""
	}

	tag, err := language.Parse(strings.ReplaceAll(value, "_", "-"))
	if err != nil {
		return ""
	}
	base, conf := tag.Base()
	if conf == language.No {
		return ""
	}
	return base.String()
}
