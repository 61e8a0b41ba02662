package divine

// Focus names which hexagram(s) a reading should concentrate on.
type Focus string

const (
	FocusPrimary     Focus = "primary"
	FocusTransformed Focus = "transformed"
	FocusBoth        Focus = "both"
)

// Interpretation is derived purely from the changing-line count (and,
// for six changes, whether the primary is one of the two pure
// hexagrams). RelevantLines are the 1-based positions worth reading
// closely; empty when the rule has none.
type Interpretation struct {
	ChangingCount int
	Focus         Focus
	Description   string
	RelevantLines []int
}

// Interpret applies the traditional rule table for how many lines are
// changing.
func Interpret(r Result) Interpretation {
	changing := r.ChangingLines
	out := Interpretation{ChangingCount: len(changing)}

	switch len(changing) {
	case 0:
		out.Focus = FocusPrimary
		out.Description = "No lines are changing. Read the judgment of the primary hexagram; the situation is stable."
	case 1:
		out.Focus = FocusPrimary
		out.Description = "One line is changing. Read the judgment of the primary hexagram and that line's text."
		out.RelevantLines = append(out.RelevantLines, changing...)
	case 2:
		out.Focus = FocusPrimary
		out.Description = "Two lines are changing. Read both line texts of the primary hexagram; the upper one carries more weight."
		out.RelevantLines = append(out.RelevantLines, changing...)
	case 3:
		out.Focus = FocusBoth
		out.Description = "Three lines are changing. Read both judgments: the primary describes the situation, the transformed its direction."
	case 4:
		out.Focus = FocusTransformed
		out.Description = "Four lines are changing. Read the transformed hexagram, concentrating on its two unchanging lines."
		out.RelevantLines = unchangingPositions(changing)
	case 5:
		out.Focus = FocusTransformed
		out.Description = "Five lines are changing. Read the transformed hexagram, concentrating on its single unchanging line."
		out.RelevantLines = unchangingPositions(changing)
	case 6:
		if r.Primary.Number == 1 || r.Primary.Number == 2 {
			out.Focus = FocusPrimary
			out.Description = "All six lines are changing in a pure hexagram. Read its special all-lines text."
		} else {
			out.Focus = FocusTransformed
			out.Description = "All six lines are changing. Read the judgment of the transformed hexagram."
		}
	default:
		// Unreachable with six lines; fall back to the stable reading.
		out.Focus = FocusPrimary
	}
	return out
}

// unchangingPositions returns the 1-based positions of [1,6] absent
// from changing, ascending.
func unchangingPositions(changing []int) []int {
	isChanging := [7]bool{}
	for _, p := range changing {
		if p >= 1 && p <= 6 {
			isChanging[p] = true
		}
	}
	var out []int
	for p := 1; p <= 6; p++ {
		if !isChanging[p] {
			out = append(out, p)
		}
	}
	return out
}
