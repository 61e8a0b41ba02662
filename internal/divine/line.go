package divine

// LineValue is a drawn line: 6 (old yin), 7 (young yang), 8 (young yin)
// or 9 (old yang).
type LineValue int

const (
	OldYin    LineValue = 6
	YoungYang LineValue = 7
	YoungYin  LineValue = 8
	OldYang   LineValue = 9
)

// LineType is the polarity of a line in either the current or the
// transformed hexagram.
type LineType string

const (
	Yang LineType = "yang"
	Yin  LineType = "yin"
)

// Opposite returns the other polarity.
func (t LineType) Opposite() LineType {
	if t == Yang {
		return Yin
	}
	return Yang
}

// LineState is the structured view of a LineValue. Future is fully
// determined by Value: old lines flip, young lines stay.
type LineState struct {
	Value    LineValue
	Changing bool
	Current  LineType
	Future   LineType
}

// NewLineState derives the line state for v. Callers guarantee
// v ∈ {6, 7, 8, 9}.
func NewLineState(v LineValue) LineState {
	s := LineState{Value: v}
	if v == YoungYang || v == OldYang {
		s.Current = Yang
	} else {
		s.Current = Yin
	}
	s.Changing = v == OldYin || v == OldYang
	s.Future = s.Current
	if s.Changing {
		s.Future = s.Current.Opposite()
	}
	return s
}
