// Package clean turns arbitrarily malformed HTML/Markdown/news-boilerplate
// text into readable paragraphed prose. The transform runs in two phases: a
// structured tree pass (ExtractReadable) and a defensive pattern scrub
// (ScrubText) that handles whatever stray fragments the parser let through.
package clean

import (
	"regexp"
	"strings"
)

// Cleaner holds the compiled boilerplate phrase patterns. Construct once at
// process start and share; the type is read-only after New.
type Cleaner struct {
	phrases []*regexp.Regexp
}

// New compiles the boilerplate phrase list into case-insensitive whole-word
// patterns. Empty phrases are ignored.
func New(phrases []string) *Cleaner {
	compiled := make([]*regexp.Regexp, 0, len(phrases))
	for _, phrase := range phrases {
		if phrase == "" {
			continue
		}
		compiled = append(compiled, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(phrase)+`\b`))
	}
	return &Cleaner{phrases: compiled}
}

// Clean converts raw mixed-format text into clean article prose. It is a
// total function: empty or unusable input yields "", which callers treat as
// "not viable".
func (c *Cleaner) Clean(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	return c.ScrubText(ExtractReadable(raw))
}
