// Package version extracts dotted numeric version tokens from release tags and
// compares them.
package version

import (
	"regexp"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// Latest is the version request that resolves to the most recent release.
const Latest = "latest"

var tokenPattern = regexp.MustCompile(`(\d+(\.\d+)*)`)

// Extract returns the first dotted run of digits in text.
func Extract(text string) (string, bool) {
	token := tokenPattern.FindString(text)
	return token, token != ""
}

// IsLatest reports whether requested asks for the most recent release.
func IsLatest(requested string) bool {
	return strings.EqualFold(strings.TrimSpace(requested), Latest)
}

// Match extracts the tokens of tag and requested and returns the tag token
// when both are present and equal as strings.
func Match(tag, requested string) (string, bool) {
	want, ok := Extract(requested)
	if !ok {
		return "", false
	}
	got, ok := Extract(tag)
	if !ok || got != want {
		return "", false
	}
	return got, true
}

// IsNewer reports whether candidate orders after current. Tokens that cannot
// be parsed fall back to a plain inequality check.
func IsNewer(candidate, current string) bool {
	c, errC := goversion.NewVersion(candidate)
	v, errV := goversion.NewVersion(current)
	if errC != nil || errV != nil {
		return candidate != current
	}
	return c.GreaterThan(v)
}
