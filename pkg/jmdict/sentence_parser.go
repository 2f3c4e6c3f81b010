package jmdict

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

var exampleBlockMatcher = cascadia.MustCompile(`div[style*="clear"]`)
var exampleBreakMatcher = cascadia.MustCompile(`br`)

var exampleNumberRegexp = regexp.MustCompile(`^\(\d+\)\s*`)
var exampleSplitRegexp = regexp.MustCompile(`\t+|\s{2,}`)

// ParseExamplesHTML extracts the example sentences of the entry with
// the given id. The example search page groups results into blocks and
// only an HTML comment inside a block tells which entry it belongs to.
func ParseExamplesHTML(page io.Reader, id int64) ([]Sentence, error) {
	doc, err := goquery.NewDocumentFromReader(page)
	if err != nil {
		return nil, fmt.Errorf("can not parse page: %w", err)
	}

	marker := fmt.Sprintf("ent_seq=%d", id)
	var sentences []Sentence
	doc.FindMatcher(exampleBlockMatcher).Each(func(i int, block *goquery.Selection) {
		if !hasComment(block, marker) {
			return
		}
		block.FindMatcher(exampleBreakMatcher).Each(func(i int, br *goquery.Selection) {
			font := br.NextAllFiltered(`font[size="-1"]`).First()
			if font.Length() == 0 {
				return
			}
			if sentence, ok := splitExample(font.Text()); ok {
				sentences = append(sentences, sentence)
			}
		})
	})
	return sentences, nil
}

// hasComment reports whether any HTML comment under sel contains marker.
func hasComment(sel *goquery.Selection, marker string) bool {
	var walk func(n *html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.CommentNode && strings.Contains(n.Data, marker) {
			return true
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if walk(child) {
				return true
			}
		}
		return false
	}
	for _, node := range sel.Nodes {
		if walk(node) {
			return true
		}
	}
	return false
}

// splitExample splits one "(n) 日本語<tab>English" line into its
// Japanese and English halves.
func splitExample(raw string) (Sentence, bool) {
	s := strings.TrimSpace(exampleNumberRegexp.ReplaceAllString(strings.TrimSpace(raw), ""))
	loc := exampleSplitRegexp.FindStringIndex(s)
	if loc == nil {
		return Sentence{}, false
	}
	jp := strings.TrimSpace(strings.ReplaceAll(s[:loc[0]], " ", ""))
	en := strings.TrimSpace(s[loc[1]:])
	if jp == "" || en == "" {
		return Sentence{}, false
	}
	return Sentence{JP: jp, EN: en}, true
}
