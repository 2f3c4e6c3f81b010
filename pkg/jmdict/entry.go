package jmdict

// Entry is one dictionary entry. ID is the ent_seq sequence number
// identifying the entry, it is needed to fetch example sentences.
type Entry struct {
	Kanji       []string     `json:"kanji"`
	Furigana    []string     `json:"furigana"`
	Definitions []Definition `json:"definitions"`
	ID          int64        `json:"id"`
}

// Definition is one sense of an entry.
type Definition struct {
	Pos      []string `json:"pos"`
	Meanings []string `json:"meanings"`
}

// Sentence is one example sentence with its translation.
type Sentence struct {
	JP string `json:"jp"`
	EN string `json:"en"`
}
