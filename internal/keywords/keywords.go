// Package keywords derives searchable tokens from article metadata for
// array-contains-any style store filtering. Coarse by design: no stemming,
// no frequency weighting.
package keywords

import (
	"sort"
	"strings"
)

// punctuation is the ASCII punctuation set stripped before tokenizing.
const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"by": {}, "for": {}, "from": {}, "has": {}, "he": {}, "in": {}, "is": {},
	"it": {}, "its": {}, "of": {}, "on": {}, "that": {}, "the": {}, "to": {},
	"was": {}, "were": {}, "will": {}, "with": {},
}

// Extract produces the deduplicated keyword set for a title and description.
// Tokens are lowercase, free of ASCII punctuation, longer than 2 characters,
// and not stop-words. The result is sorted for stable output; callers must
// treat it as a set.
func Extract(title, description string) []string {
	full := strings.ToLower(title + " " + description)

	var b strings.Builder
	b.Grow(len(full))
	for _, r := range full {
		if r < 128 && strings.ContainsRune(punctuation, r) {
			continue
		}
		b.WriteRune(r)
	}

	seen := map[string]struct{}{}
	out := make([]string, 0)
	for _, word := range strings.Fields(b.String()) {
		if len(word) <= 2 {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		out = append(out, word)
	}

	sort.Strings(out)
	return out
}
