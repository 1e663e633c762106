package clean

import (
	"regexp"
	"strings"
)

// minLineTokens is the sentence-line filter floor: lines with fewer
// whitespace-separated tokens are dropped as boilerplate.
const minLineTokens = 6

var (
	tagExpr        = regexp.MustCompile(`<[^>]+>`)
	entityExpr     = regexp.MustCompile(`&[a-z]+;`)
	ruleExpr       = regexp.MustCompile(`={2,}|-{2,}`)
	imageExpr      = regexp.MustCompile(`!\[.*?\]\(.*?\)`)
	linkExpr       = regexp.MustCompile(`\[([^\]]+)\]\((?:https?://|mailto:)[^)]+\)`)
	bareURLExpr    = regexp.MustCompile(`https?://\S+`)
	checkboxExpr   = regexp.MustCompile(`(?i)\[x\]`)
	bulletExpr     = regexp.MustCompile(`[-–—•▪◦·*]\s+`)
	spaceRunExpr   = regexp.MustCompile(`[ \t]{2,}`)
	newlineRunExpr = regexp.MustCompile(`\n{2,}`)
	terminalExpr   = regexp.MustCompile(`[.!?]`)
	prePunctExpr   = regexp.MustCompile(`\s([?.!,])`)
)

// ScrubText is the defensive pattern pass over flattened text: residual
// markup, markdown syntax, boilerplate phrases, and stray symbols are
// removed, then lines are filtered down to sentence-like prose. A line
// survives only with at least six tokens and a sentence-terminal mark, so
// short legitimate sentences are dropped along with nav labels; that recall
// tradeoff is deliberate.
func (c *Cleaner) ScrubText(text string) string {
	text = tagExpr.ReplaceAllString(text, " ")
	text = entityExpr.ReplaceAllString(text, " ")
	text = ruleExpr.ReplaceAllString(text, " ")

	text = imageExpr.ReplaceAllString(text, " ")
	text = linkExpr.ReplaceAllString(text, "$1")
	text = bareURLExpr.ReplaceAllString(text, " ")

	for _, phrase := range c.phrases {
		text = phrase.ReplaceAllString(text, " ")
	}

	text = checkboxExpr.ReplaceAllString(text, " ")
	text = bulletExpr.ReplaceAllString(text, " ")

	text = spaceRunExpr.ReplaceAllString(text, " ")
	text = newlineRunExpr.ReplaceAllString(text, "\n")

	var kept []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(strings.Fields(line)) >= minLineTokens && terminalExpr.MatchString(line) {
			kept = append(kept, line)
		}
	}
	cleaned := strings.Join(kept, "\n\n")

	cleaned = collapseDuplicateTitle(cleaned)

	cleaned = prePunctExpr.ReplaceAllString(cleaned, "$1")
	cleaned = spaceRunExpr.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// collapseDuplicateTitle drops the first paragraph when the first two are
// case-insensitive identical. Some sources emit the headline twice.
func collapseDuplicateTitle(cleaned string) string {
	paras := strings.Split(cleaned, "\n\n")
	if len(paras) >= 2 && strings.EqualFold(paras[0], paras[1]) {
		paras = paras[1:]
	}
	return strings.Join(paras, "\n\n")
}
