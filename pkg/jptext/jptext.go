// Package jptext holds small text helpers for Japanese script handling
// shared by the analysis clients.
package jptext

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	katakanaFirst = 'ァ' // ァ
	katakanaLast  = 'ヶ' // ヶ
	kataHiraDelta = 0x60

	kanaFirst  = '぀'
	kanaLast   = 'ヿ'
	kanjiFirst = '一'
	kanjiLast  = '鿿'
)

// Katakana codepoints inside the kana block that behave like punctuation.
var punctuationKana = map[rune]struct{}{
	'゠': {},
	'・': {},
	'ー': {},
	'ヽ': {},
	'ヾ': {},
	'ヿ': {},
}

// KataToHira folds katakana into hiragana, leaving everything else
// untouched. Accent provider output and furigana provider output do not
// agree on the kana type, so comparisons go through this fold.
func KataToHira(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= katakanaFirst && r <= katakanaLast {
			return r - kataHiraDelta
		}
		return r
	}, s)
}

// IsKanaOrKanji reports whether r belongs to the hiragana, katakana or
// CJK unified ideograph blocks. Half-width kana and the kana-block
// punctuation marks are excluded.
func IsKanaOrKanji(r rune) bool {
	if _, ok := punctuationKana[r]; ok {
		return false
	}
	if r >= kanaFirst && r <= kanaLast {
		return true
	}
	return r >= kanjiFirst && r <= kanjiLast
}

// IsKanaOrKanjiString reports whether every rune of s passes IsKanaOrKanji.
func IsKanaOrKanjiString(s string) bool {
	for _, r := range s {
		if !IsKanaOrKanji(r) {
			return false
		}
	}
	return true
}

// StripLatin removes ASCII letters from s. The accent provider gives
// better phrasing when queries carry no latin script.
func StripLatin(s string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return -1
		}
		return r
	}, s)
}

var tildeVariants = map[rune]struct{}{
	'~': {},
	'∼': {},
	'∾': {},
	'〰': {},
}

// Normalize applies NFKC normalization, unifies tilde variants to the
// wave dash and collapses repeated prolonged sound marks.
func Normalize(s string) string {
	folded := norm.NFKC.String(s)
	var b strings.Builder
	b.Grow(len(folded))
	var last rune
	for _, r := range folded {
		if _, ok := tildeVariants[r]; ok {
			r = '〜'
		}
		if r == 'ー' && last == 'ー' {
			continue
		}
		b.WriteRune(r)
		last = r
	}
	return b.String()
}
