// Package hexagram carries the static I Ching catalog: the 64 hexagram
// entries and the King Wen correspondence between 6-bit line patterns
// and hexagram numbers. The catalog is read-only; nothing here mutates
// after load.
package hexagram

// Name is a hexagram's bilingual identity.
type Name struct {
	Zh     string `json:"zh"`
	Pinyin string `json:"pinyin"`
	En     string `json:"en"`
}

// Trigrams identifies the two constituent trigrams.
type Trigrams struct {
	Lower   string `json:"lower"`
	Upper   string `json:"upper"`
	LowerEn string `json:"lowerEn"`
	UpperEn string `json:"upperEn"`
}

// Judgment pairs the classical text with a modern reading.
type Judgment struct {
	Classical string `json:"classical"`
	Modern    string `json:"modern"`
}

// Hexagram is one immutable catalog entry, keyed by Number in [1, 64].
// Lines holds exactly six texts, position 1 (bottom) first. Extra is
// set only for the two pure hexagrams (1 and 2).
type Hexagram struct {
	Number   int      `json:"number"`
	Symbol   string   `json:"symbol"`
	Name     Name     `json:"name"`
	Trigrams Trigrams `json:"trigrams"`
	Judgment Judgment `json:"judgment"`
	Lines    []string `json:"lines"`
	Extra    string   `json:"extra,omitempty"`
}
