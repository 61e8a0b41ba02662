// Package divine derives a deterministic I Ching reading from an RGBA
// pixel buffer: the buffer seeds a PRNG, one of three methods draws six
// lines from it, and the line patterns resolve through the King Wen
// table to the primary and (if any line changes) transformed hexagrams.
package divine

import (
	"errors"
	"fmt"

	"github.com/AnyUserName/hexcast-cli/internal/hexagram"
)

// ErrNoHexagram means a computed 6-bit pattern had no catalog entry.
// The King Wen table is total over all 64 patterns, so this only fires
// on a corrupted or incomplete catalog and is treated as fatal.
var ErrNoHexagram = errors.New("divine: no hexagram for line pattern")

// Result is the outcome of one casting. Lines[0] is the bottom line.
// Transformed is nil when no line is changing; when present it always
// differs from Primary.
type Result struct {
	Lines         [6]LineState
	Primary       hexagram.Hexagram
	ChangingLines []int // 1-based positions, ascending
	Transformed   *hexagram.Hexagram
	Method        Method
}

// Cast runs one divination over a tightly packed RGBA buffer. The same
// pixels always produce the same result.
//
// Orientation convention: bands are iterated top-to-bottom (band 0 =
// topmost rows) and band b becomes line 6-b, so the bottom of the image
// is the bottom line of the hexagram. All methods draw from a single
// PRNG stream in that band order.
func Cast(pix []byte, width, height int, m Method, cat *hexagram.Catalog) (Result, error) {
	rng := NewRand(SeedFromPixels(pix))

	var lines [6]LineState
	switch m {
	case MethodImage:
		lines = castImage(pix, width, height, rng)
	case MethodCoins:
		lines = castCoins(pix, width, height, rng)
	case MethodYarrow:
		lines = castYarrow(rng)
	default:
		return Result{}, fmt.Errorf("divine: %q is not a casting method", m)
	}

	return assemble(lines, m, cat)
}

func assemble(lines [6]LineState, m Method, cat *hexagram.Catalog) (Result, error) {
	res := Result{Lines: lines, Method: m}

	var current, future [6]bool
	for i, s := range lines {
		current[i] = s.Current == Yang
		future[i] = s.Future == Yang
		if s.Changing {
			res.ChangingLines = append(res.ChangingLines, i+1)
		}
	}

	primary, ok := cat.ByLines(current)
	if !ok {
		return Result{}, fmt.Errorf("%w: primary %06b", ErrNoHexagram, hexagram.Pattern(current))
	}
	res.Primary = primary

	if len(res.ChangingLines) > 0 {
		transformed, ok := cat.ByLines(future)
		if !ok {
			return Result{}, fmt.Errorf("%w: transformed %06b", ErrNoHexagram, hexagram.Pattern(future))
		}
		res.Transformed = &transformed
	}
	return res, nil
}

// bandRange returns the row span of band b out of 6 equal horizontal
// bands. Floor boundaries; the last band absorbs the remainder.
func bandRange(height, b int) (startY, endY int) {
	bandH := height / 6
	startY = b * bandH
	endY = startY + bandH
	if b == 5 {
		endY = height
	}
	return startY, endY
}

// castImage draws one line per band: the band's mean brightness decides
// the polarity, one PRNG value decides old (changing, p=0.25) vs young.
func castImage(pix []byte, width, height int, rng *Rand) [6]LineState {
	var lines [6]LineState
	for b := 0; b < 6; b++ {
		startY, endY := bandRange(height, b)
		isYang := RegionBrightness(pix, width, startY, endY) > 128
		old := rng.Float64() < 0.25

		var v LineValue
		switch {
		case isYang && old:
			v = OldYang
		case isYang:
			v = YoungYang
		case old:
			v = OldYin
		default:
			v = YoungYin
		}
		lines[5-b] = NewLineState(v)
	}
	return lines
}

// castCoins simulates three coin tosses per band. The band's brightness
// biases the heads probability into [0.3, 0.7]; heads counts 3, tails 2,
// and the three-toss sum is directly the line value.
func castCoins(pix []byte, width, height int, rng *Rand) [6]LineState {
	var lines [6]LineState
	for b := 0; b < 6; b++ {
		startY, endY := bandRange(height, b)
		heads := 0.3 + (RegionBrightness(pix, width, startY, endY)/255.0)*0.4

		sum := 0
		for toss := 0; toss < 3; toss++ {
			if rng.Float64() < heads {
				sum += 3
			} else {
				sum += 2
			}
		}
		lines[5-b] = NewLineState(LineValue(sum))
	}
	return lines
}

// yarrowRemap converts the three-division sum into the drawn line value.
var yarrowRemap = map[int]LineValue{6: OldYang, 7: YoungYin, 8: YoungYin, 9: OldYin}

// castYarrow simulates the classical 49-stalk process. It ignores the
// image bands entirely; only the seeded stream matters. Lines are drawn
// bottom-up.
func castYarrow(rng *Rand) [6]LineState {
	var lines [6]LineState
	for i := 0; i < 6; i++ {
		lines[i] = NewLineState(yarrowLine(rng))
	}
	return lines
}

func yarrowLine(rng *Rand) LineValue {
	sum := 0
	removed := 0
	for division := 0; division < 3; division++ {
		pile := 49 - removed

		// Withhold one stalk, split the rest into two piles.
		left := 1 + int(rng.Float64()*float64(pile-2))
		right := pile - 1 - left

		inHand := mod4or4(left) + mod4or4(right) + 1
		removed += inHand

		special := 4
		if division == 0 {
			special = 5
		}
		if inHand == special {
			sum += 3
		} else {
			sum += 2
		}
	}
	if v, ok := yarrowRemap[sum]; ok {
		return v
	}
	return YoungYang
}

// mod4or4 is a modulo-4 that yields 4 instead of 0.
func mod4or4(n int) int {
	if m := n % 4; m != 0 {
		return m
	}
	return 4
}
