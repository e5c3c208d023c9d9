package expr

import (
	"os"
	"strings"
	"unicode"
)

const envPrefix = "${env."

// LookupFunc resolves an environment variable, tests may replace it.
var LookupFunc = os.Getenv

// ExpandEnv replaces every ${env.KEY} in value with the value of the
// environment variable KEY ("" when unset). A key must consist of letters,
// digits or '_'; otherwise the prefix is kept literally and scanning resumes
// right after it. An unterminated expression is kept literally.
func ExpandEnv(value string) string {
	if !strings.Contains(value, envPrefix) {
		return value
	}
	var b strings.Builder
	rest := value
	for {
		idx := strings.Index(rest, envPrefix)
		if idx < 0 {
			b.WriteString(rest)
			return b.String()
		}
		b.WriteString(rest[:idx])
		keyStart := idx + len(envPrefix)
		end := strings.IndexByte(rest[keyStart:], '}')
		if end < 0 {
			b.WriteString(rest[idx:])
			return b.String()
		}
		key := rest[keyStart : keyStart+end]
		if !isKey(key) {
			b.WriteString(envPrefix)
			rest = rest[keyStart:]
			continue
		}
		b.WriteString(LookupFunc(key))
		rest = rest[keyStart+end+1:]
	}
}

func isKey(key string) bool {
	for _, r := range key {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			return false
		}
	}
	return true
}
