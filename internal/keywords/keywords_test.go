package keywords

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractBasic(t *testing.T) {
	got := Extract("The Cat and the Hat", "")

	assert.Equal(t, []string{"cat", "hat"}, got)
}

func TestExtractCombinesTitleAndDescription(t *testing.T) {
	got := Extract("Markets rally", "Investors cheered the rally")

	assert.Equal(t, []string{"cheered", "investors", "markets", "rally"}, got)
}

func TestExtractStripsPunctuation(t *testing.T) {
	got := Extract("U.S. stocks rise!", "")

	// "U.S." collapses to "us", which is too short and dropped.
	assert.Equal(t, []string{"rise", "stocks"}, got)
}

func TestExtractInvariants(t *testing.T) {
	got := Extract(
		"Tech Giant Launches New A.I. Model, Promising Faster Answers",
		"The company unveiled its latest model and said it will be available to the public",
	)

	assert.True(t, sort.StringsAreSorted(got))

	seen := map[string]struct{}{}
	for _, kw := range got {
		assert.Greater(t, len(kw), 2, "keyword %q too short", kw)
		assert.Equal(t, strings.ToLower(kw), kw, "keyword %q not lowercase", kw)
		assert.False(t, strings.ContainsAny(kw, punctuation), "keyword %q contains punctuation", kw)
		_, stop := stopWords[kw]
		assert.False(t, stop, "keyword %q is a stop-word", kw)
		_, dup := seen[kw]
		assert.False(t, dup, "keyword %q duplicated", kw)
		seen[kw] = struct{}{}
	}
}

func TestExtractDeduplicates(t *testing.T) {
	got := Extract("rally rally rally", "rally")

	assert.Equal(t, []string{"rally"}, got)
}

func TestExtractEmptyInputs(t *testing.T) {
	assert.Empty(t, Extract("", ""))
	assert.Empty(t, Extract("a an the", "of on at"))
}

func TestExtractDeterministic(t *testing.T) {
	title := "Storm Warning Issued for Coastal Counties"
	description := "Forecasters expect heavy rain and strong winds through the weekend"

	first := Extract(title, description)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Extract(title, description))
	}
}
