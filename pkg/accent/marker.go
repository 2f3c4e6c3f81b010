// Package accent combines the furigana segmentation of the Yahoo
// linguistic API with the pitch accent marks of the OJAD phrasing page
// into per-word, per-mora accent annotations.
package accent

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sessatakuma/API-tools/pkg/jptext"
	"github.com/sessatakuma/API-tools/pkg/ojad"
	"github.com/sessatakuma/API-tools/pkg/yahoo"
)

// Mark is the accent information of a single mora.
type Mark struct {
	Furigana string          `json:"furigana"`
	Type     ojad.AccentType `json:"accent_marking_type"`
}

// Subword is a surface/furigana aligned fragment of a word.
type Subword struct {
	Surface  string `json:"surface"`
	Furigana string `json:"furigana"`
}

// Word is one segmented word with its accent marks. Accent is empty
// when the word could not be aligned with the phrasing output.
type Word struct {
	Surface  string    `json:"surface"`
	Furigana string    `json:"furigana"`
	Accent   []Mark    `json:"accent"`
	Subword  []Subword `json:"subword,omitempty"`
}

type Annotator interface {
	Furigana(ctx context.Context, text string) ([]yahoo.Word, error)
}

type Phraser interface {
	Phrasing(ctx context.Context, text string) ([]ojad.Mora, error)
}

type Marker struct {
	annotator Annotator
	phraser   Phraser
}

func NewMarker(annotator Annotator, phraser Phraser) *Marker {
	return &Marker{
		annotator: annotator,
		phraser:   phraser,
	}
}

// Mark annotates text with per-mora accent marks. The text is
// normalized first; the phrasing provider additionally gets latin
// script stripped from the query because it degrades its estimation.
func (m *Marker) Mark(ctx context.Context, text string) ([]Word, error) {
	text = jptext.Normalize(text)
	words, err := m.annotator.Furigana(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("furigana annotation failed: %w", err)
	}
	morae, err := m.phraser.Phrasing(ctx, jptext.StripLatin(text))
	if err != nil {
		return nil, fmt.Errorf("accent phrasing failed: %w", err)
	}
	return alignWords(words, morae), nil
}

// alignWords matches every furigana word against the mora stream of the
// phrasing output. The furigana provider keeps the original query text
// while the phrasing provider may fold katakana to hiragana and drop
// punctuation, so comparison happens on hiragana-folded readings and
// mismatching morae prefixes are skipped.
func alignWords(words []yahoo.Word, morae []ojad.Mora) []Word {
	result := make([]Word, 0, len(words))
	next := 0
	for i := range words {
		word := &words[i]
		reading := word.Reading()
		readingHira := jptext.KataToHira(reading)

		// Punctuation and latin script never reach the phrasing
		// provider, attach a single neutral mark.
		if len(word.Subword) == 0 && !jptext.IsKanaOrKanjiString(reading) {
			result = append(result, Word{
				Surface:  word.Surface,
				Furigana: reading,
				Accent:   []Mark{{Furigana: word.Surface, Type: ojad.AccentNone}},
			})
			continue
		}

		idx := next
		for idx < len(morae) && !strings.HasPrefix(readingHira, jptext.KataToHira(morae[idx].Text)) {
			idx++
		}

		var matched strings.Builder
		var marks []Mark
		rest := []rune(reading)
		for matched.Len() < len(reading) && idx < len(morae) {
			mora := morae[idx]
			n := utf8.RuneCountInString(mora.Text)
			if n > len(rest) {
				n = len(rest)
			}
			marks = append(marks, Mark{
				Furigana: string(rest[:n]),
				Type:     mora.Accent,
			})
			rest = rest[n:]
			matched.WriteString(mora.Text)
			idx++
		}

		aligned := Word{
			Surface:  word.Surface,
			Furigana: reading,
			Accent:   []Mark{},
			Subword:  subwords(word),
		}
		if matched.Len() == len(reading) && jptext.KataToHira(matched.String()) == readingHira {
			aligned.Accent = marks
			next = idx
		}
		result = append(result, aligned)
	}
	return result
}

func subwords(word *yahoo.Word) []Subword {
	if len(word.Subword) == 0 {
		return nil
	}
	subs := make([]Subword, 0, len(word.Subword))
	for _, sub := range word.Subword {
		subs = append(subs, Subword{
			Surface:  sub.Surface,
			Furigana: sub.Furigana,
		})
	}
	return subs
}
