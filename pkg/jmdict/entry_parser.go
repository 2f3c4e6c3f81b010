package jmdict

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

var searchRowMatcher = cascadia.MustCompile(`tr.resrow`)
var searchIDMatcher = cascadia.MustCompile(`input[name="e"]`)

// ParseSearchHTML extracts the entry ids from a search result page.
// Every result row carries the entry id in a checkbox input.
func ParseSearchHTML(page io.Reader) ([]int64, error) {
	doc, err := goquery.NewDocumentFromReader(page)
	if err != nil {
		return nil, fmt.Errorf("can not parse page: %w", err)
	}

	var ids []int64
	doc.FindMatcher(searchRowMatcher).Each(func(i int, row *goquery.Selection) {
		value, ok := row.FindMatcher(searchIDMatcher).First().Attr("value")
		if !ok {
			return
		}
		id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return
		}
		ids = append(ids, id)
	})
	return ids, nil
}

var kanjiMatcher = cascadia.MustCompile(`span.kanj`)
var readingMatcher = cascadia.MustCompile(`span.rdng`)
var senseMatcher = cascadia.MustCompile(`tr.sense`)
var posAbbrMatcher = cascadia.MustCompile(`span.pos span.abbr`)
var glossMatcher = cascadia.MustCompile(`span.glossx`)
var entryIDMatcher = cascadia.MustCompile(`a[href^="srchres.py"]`)

// ParseEntryHTML extracts kanji forms, readings and senses from an
// entry page.
func ParseEntryHTML(page io.Reader) (*Entry, error) {
	doc, err := goquery.NewDocumentFromReader(page)
	if err != nil {
		return nil, fmt.Errorf("can not parse page: %w", err)
	}

	entry := Entry{
		Kanji:    selectionTexts(doc.FindMatcher(kanjiMatcher)),
		Furigana: selectionTexts(doc.FindMatcher(readingMatcher)),
	}
	doc.FindMatcher(senseMatcher).Each(func(i int, sense *goquery.Selection) {
		entry.Definitions = append(entry.Definitions, Definition{
			Pos:      selectionTexts(sense.FindMatcher(posAbbrMatcher)),
			Meanings: sense.FindMatcher(glossMatcher).Map(glossText),
		})
	})

	rawID := strings.TrimSpace(doc.FindMatcher(entryIDMatcher).First().Text())
	if id, err := strconv.ParseInt(rawID, 10, 64); err == nil {
		entry.ID = id
	}
	return &entry, nil
}

func selectionTexts(sel *goquery.Selection) []string {
	return sel.Map(func(i int, s *goquery.Selection) string {
		return strings.TrimSpace(s.Text())
	})
}

// glossText strips the leading gloss bullet the page renders before
// every meaning.
func glossText(i int, gloss *goquery.Selection) string {
	return strings.TrimSpace(strings.ReplaceAll(gloss.Text(), "▶", ""))
}
