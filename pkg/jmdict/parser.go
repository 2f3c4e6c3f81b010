package jmdict

import (
	"io"
)

type Parser interface {
	ParseSearch(page io.Reader) ([]int64, error)
	ParseEntry(page io.Reader) (*Entry, error)
	ParseExamples(page io.Reader, id int64) ([]Sentence, error)
}

type HTMLParser struct{}

func (p *HTMLParser) ParseSearch(page io.Reader) ([]int64, error) {
	return ParseSearchHTML(page)
}

func (p *HTMLParser) ParseEntry(page io.Reader) (*Entry, error) {
	return ParseEntryHTML(page)
}

func (p *HTMLParser) ParseExamples(page io.Reader, id int64) ([]Sentence, error) {
	return ParseExamplesHTML(page, id)
}
