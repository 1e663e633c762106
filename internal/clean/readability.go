package clean

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// minParagraphChars is the minimum paragraph length counted toward a
// container's content-density score.
const minParagraphChars = 25

var strippedTags = "script,style,nav,footer,form,aside,header,svg,noscript"

// ExtractReadable isolates the main article region of an HTML document and
// flattens it to plain text with newlines between elements. Malformed or
// plain-text input falls through the tolerant HTML parser unchanged, so the
// function never fails; at worst the whole input is treated as the document.
func ExtractReadable(raw string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return raw
	}

	doc.Find(strippedTags).Remove()

	return flattenText(readableRegion(doc))
}

// readableRegion scores direct parents of <p> elements by accumulated
// paragraph text length, discounted by link density, and returns the best
// candidate. Documents without substantial paragraphs fall back to the whole
// document.
func readableRegion(doc *goquery.Document) *goquery.Selection {
	scores := map[*html.Node]float64{}
	parents := map[*html.Node]*goquery.Selection{}
	var order []*html.Node

	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := strings.TrimSpace(p.Text())
		if len(text) < minParagraphChars {
			return
		}
		parent := p.Parent()
		if parent.Length() == 0 {
			return
		}
		n := parent.Get(0)
		if _, seen := scores[n]; !seen {
			order = append(order, n)
			parents[n] = parent
		}
		scores[n] += float64(len(text))
	})

	var best *goquery.Selection
	var bestScore float64
	for _, n := range order {
		sel := parents[n]
		score := scores[n] * (1 - linkDensity(sel))
		if score > bestScore {
			best, bestScore = sel, score
		}
	}

	if best == nil {
		return doc.Selection
	}
	return best
}

func linkDensity(s *goquery.Selection) float64 {
	total := len(s.Text())
	if total == 0 {
		return 0
	}
	return float64(len(s.Find("a").Text())) / float64(total)
}

// flattenText walks the selection and emits text nodes, inserting a newline
// after each element so block boundaries survive as line breaks.
func flattenText(s *goquery.Selection) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode {
			b.WriteByte('\n')
		}
	}
	for _, n := range s.Nodes {
		walk(n)
	}
	return b.String()
}
