package yahoo

// Word is one segmented word from the furigana service. Furigana is
// empty when the surface needs no reading (pure kana, punctuation,
// latin script).
type Word struct {
	Surface  string    `json:"surface"`
	Furigana string    `json:"furigana,omitempty"`
	Roman    string    `json:"roman,omitempty"`
	Subword  []Subword `json:"subword,omitempty"`
}

// Reading returns the furigana of the word, falling back to the
// surface when the service provided none.
func (w *Word) Reading() string {
	if w.Furigana == "" {
		return w.Surface
	}
	return w.Furigana
}

// Subword is a surface/furigana aligned fragment of a word that mixes
// kanji and kana.
type Subword struct {
	Surface  string `json:"surface"`
	Furigana string `json:"furigana,omitempty"`
	Roman    string `json:"roman,omitempty"`
}
