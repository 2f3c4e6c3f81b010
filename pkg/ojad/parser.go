package ojad

import (
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// AccentType encodes the pitch mark the accent provider draws above a
// mora: none, heiban (plain high) or the position where the pitch falls.
type AccentType int

const (
	AccentNone AccentType = iota
	AccentPlain
	AccentTop
)

// Mora is one timing unit of the phrasing output with its accent mark.
type Mora struct {
	Text   string
	Accent AccentType
}

var phrasingTextMatcher = cascadia.MustCompile(`div.phrasing_text`)
var moraMatcher = cascadia.MustCompile(`span`)

// ParsePhrasingHTML extracts the per-mora accent marks from a phrasing
// result page. Every phrase is a div.phrasing_text whose direct span
// children carry the accent class of one mora.
func ParsePhrasingHTML(page io.Reader) ([]Mora, error) {
	doc, err := goquery.NewDocumentFromReader(page)
	if err != nil {
		return nil, fmt.Errorf("can not parse page: %w", err)
	}

	var morae []Mora
	doc.FindMatcher(phrasingTextMatcher).Each(func(i int, phrase *goquery.Selection) {
		phrase.ChildrenMatcher(moraMatcher).Each(func(i int, mora *goquery.Selection) {
			accent := AccentNone
			switch {
			case mora.HasClass("accent_plain"):
				accent = AccentPlain
			case mora.HasClass("accent_top"):
				accent = AccentTop
			}
			morae = append(morae, Mora{
				Text:   mora.Text(),
				Accent: accent,
			})
		})
	})
	return morae, nil
}
