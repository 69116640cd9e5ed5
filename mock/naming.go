package mock

import (
	"go/token"
	"strings"
	"unicode"
)

const boundPrefix = "bound "

// SanitizeName turns a captured name into a runtime label for a
// synthesized callable.
//
// Repeated "bound " prefixes are stripped; any strip marks the callable
// bound, so its reported label is re-prefixed once by DisplayName. A
// name colliding with a reserved keyword is escaped with a leading '$',
// and whitespace and hyphen characters are escaped per character. The
// label affects introspection only, never invocation.
func SanitizeName(name string) (label string, bound bool) {
	for strings.HasPrefix(name, boundPrefix) {
		name = name[len(boundPrefix):]
		bound = true
	}

	if token.IsKeyword(name) {
		name = "$" + name
	}

	if strings.IndexFunc(name, needsEscape) >= 0 {
		var b strings.Builder
		b.Grow(len(name))
		for _, r := range name {
			if needsEscape(r) {
				b.WriteByte('$')
			} else {
				b.WriteRune(r)
			}
		}
		name = b.String()
	}

	return name, bound
}

func needsEscape(r rune) bool {
	return unicode.IsSpace(r) || r == '-'
}
