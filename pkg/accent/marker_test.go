package accent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sessatakuma/API-tools/pkg/ojad"
	"github.com/sessatakuma/API-tools/pkg/yahoo"
)

type stubAnnotator struct {
	words []yahoo.Word
	err   error
	query string
}

func (s *stubAnnotator) Furigana(ctx context.Context, text string) ([]yahoo.Word, error) {
	s.query = text
	return s.words, s.err
}

type stubPhraser struct {
	morae []ojad.Mora
	err   error
	query string
}

func (s *stubPhraser) Phrasing(ctx context.Context, text string) ([]ojad.Mora, error) {
	s.query = text
	return s.morae, s.err
}

func TestMark(t *testing.T) {
	annotator := &stubAnnotator{
		words: []yahoo.Word{
			{
				Surface:  "お金",
				Furigana: "おかね",
				Subword: []yahoo.Subword{
					{Surface: "お", Furigana: "お"},
					{Surface: "金", Furigana: "かね"},
				},
			},
			{Surface: "を"},
			{Surface: "稼ぐ", Furigana: "かせぐ"},
		},
	}
	phraser := &stubPhraser{
		morae: []ojad.Mora{
			{Text: "お", Accent: ojad.AccentPlain},
			{Text: "か", Accent: ojad.AccentTop},
			{Text: "ね", Accent: ojad.AccentNone},
			{Text: "を", Accent: ojad.AccentNone},
			{Text: "か", Accent: ojad.AccentPlain},
			{Text: "せ", Accent: ojad.AccentPlain},
			{Text: "ぐ", Accent: ojad.AccentPlain},
		},
	}
	marker := NewMarker(annotator, phraser)

	words, err := marker.Mark(context.TODO(), "お金を稼ぐ")
	require.NoError(t, err)
	require.Len(t, words, 3)

	assert.Equal(t, []Mark{
		{Furigana: "お", Type: ojad.AccentPlain},
		{Furigana: "か", Type: ojad.AccentTop},
		{Furigana: "ね", Type: ojad.AccentNone},
	}, words[0].Accent)
	assert.Equal(t, []Subword{
		{Surface: "お", Furigana: "お"},
		{Surface: "金", Furigana: "かね"},
	}, words[0].Subword)

	assert.Equal(t, []Mark{{Furigana: "を", Type: ojad.AccentNone}}, words[1].Accent)
	assert.Equal(t, []Mark{
		{Furigana: "か", Type: ojad.AccentPlain},
		{Furigana: "せ", Type: ojad.AccentPlain},
		{Furigana: "ぐ", Type: ojad.AccentPlain},
	}, words[2].Accent)

	var reconstructed string
	for i := range words {
		reconstructed += words[i].Surface
	}
	assert.Equal(t, "お金を稼ぐ", reconstructed)
}

func TestMarkKatakanaFolding(t *testing.T) {
	annotator := &stubAnnotator{
		words: []yahoo.Word{{Surface: "コスト", Furigana: "コスト"}},
	}
	// The phrasing provider reports folded hiragana for katakana input.
	phraser := &stubPhraser{
		morae: []ojad.Mora{
			{Text: "こ", Accent: ojad.AccentNone},
			{Text: "す", Accent: ojad.AccentPlain},
			{Text: "と", Accent: ojad.AccentPlain},
		},
	}
	words, err := NewMarker(annotator, phraser).Mark(context.TODO(), "コスト")
	require.NoError(t, err)
	require.Len(t, words, 1)
	assert.Equal(t, []Mark{
		{Furigana: "コ", Type: ojad.AccentNone},
		{Furigana: "ス", Type: ojad.AccentPlain},
		{Furigana: "ト", Type: ojad.AccentPlain},
	}, words[0].Accent)
}

func TestMarkMultiRuneMora(t *testing.T) {
	annotator := &stubAnnotator{
		words: []yahoo.Word{{Surface: "今日", Furigana: "きょう"}},
	}
	phraser := &stubPhraser{
		morae: []ojad.Mora{
			{Text: "きょ", Accent: ojad.AccentTop},
			{Text: "う", Accent: ojad.AccentNone},
		},
	}
	words, err := NewMarker(annotator, phraser).Mark(context.TODO(), "今日")
	require.NoError(t, err)
	require.Len(t, words, 1)
	assert.Equal(t, []Mark{
		{Furigana: "きょ", Type: ojad.AccentTop},
		{Furigana: "う", Type: ojad.AccentNone},
	}, words[0].Accent)
}

func TestMarkPunctuation(t *testing.T) {
	annotator := &stubAnnotator{
		words: []yahoo.Word{
			{Surface: "はい", Furigana: "はい"},
			{Surface: "。"},
		},
	}
	phraser := &stubPhraser{
		morae: []ojad.Mora{
			{Text: "は", Accent: ojad.AccentNone},
			{Text: "い", Accent: ojad.AccentPlain},
		},
	}
	words, err := NewMarker(annotator, phraser).Mark(context.TODO(), "はい。")
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, []Mark{{Furigana: "。", Type: ojad.AccentNone}}, words[1].Accent)
}

func TestMarkUnaligned(t *testing.T) {
	annotator := &stubAnnotator{
		words: []yahoo.Word{{Surface: "稼ぐ", Furigana: "かせぐ"}},
	}
	// Phrasing output disagrees entirely, the word must still be
	// reported, only without accent marks.
	phraser := &stubPhraser{
		morae: []ojad.Mora{{Text: "あ", Accent: ojad.AccentNone}},
	}
	words, err := NewMarker(annotator, phraser).Mark(context.TODO(), "稼ぐ")
	require.NoError(t, err)
	require.Len(t, words, 1)
	assert.Equal(t, "稼ぐ", words[0].Surface)
	assert.Empty(t, words[0].Accent)
	assert.NotNil(t, words[0].Accent)
}

func TestMarkStripsLatinForPhrasing(t *testing.T) {
	annotator := &stubAnnotator{words: []yahoo.Word{}}
	phraser := &stubPhraser{}
	_, err := NewMarker(annotator, phraser).Mark(context.TODO(), "お金ABCを")
	require.NoError(t, err)
	assert.Equal(t, "お金ABCを", annotator.query)
	assert.Equal(t, "お金を", phraser.query)
}

func TestMarkAnnotatorError(t *testing.T) {
	annotator := &stubAnnotator{err: errors.New("annotator down")}
	_, err := NewMarker(annotator, &stubPhraser{}).Mark(context.TODO(), "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "annotator down")
}

func TestMarkPhraserError(t *testing.T) {
	phraser := &stubPhraser{err: errors.New("phraser down")}
	_, err := NewMarker(&stubAnnotator{}, phraser).Mark(context.TODO(), "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "phraser down")
}
