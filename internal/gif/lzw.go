package gif

// maxTableSize caps the LZW dictionary at 12-bit codes.
const maxTableSize = 4096

// decompress decodes a concatenated GIF LZW stream into exactly
// pixelCount palette indices. A truncated stream or an unrecognized
// code stops decoding and the remainder is zero-filled, the way
// real-world GIF renderers behave. The output never exceeds
// pixelCount bytes.
func decompress(data []byte, minCodeSize, pixelCount int) []byte {
	out := make([]byte, 0, pixelCount)
	pad := func() []byte {
		for len(out) < pixelCount {
			out = append(out, 0)
		}
		return out[:pixelCount]
	}
	if minCodeSize < 2 || minCodeSize > 11 {
		return pad()
	}

	clearCode := 1 << minCodeSize
	endCode := clearCode + 1

	table := make([][]byte, 0, maxTableSize)
	reset := func() {
		table = table[:0]
		for i := 0; i < clearCode; i++ {
			table = append(table, []byte{byte(i)})
		}
		table = append(table, nil, nil) // clear and end slots
	}
	reset()

	codeSize := minCodeSize + 1
	mask := 1<<codeSize - 1

	var prev []byte
	acc, bits := 0, 0

	for _, b := range data {
		acc |= int(b) << bits
		bits += 8

		for bits >= codeSize {
			code := acc & mask
			acc >>= codeSize
			bits -= codeSize

			switch {
			case code == clearCode:
				reset()
				codeSize = minCodeSize + 1
				mask = 1<<codeSize - 1
				prev = nil
				continue
			case code == endCode:
				return pad()
			}

			var entry []byte
			switch {
			case code < len(table) && table[code] != nil:
				entry = table[code]
			case code == len(table) && prev != nil:
				// The classic self-referential case: the code being
				// defined right now. Its expansion is prev + prev[0].
				entry = append(append(make([]byte, 0, len(prev)+1), prev...), prev[0])
			default:
				// Corrupt stream; keep what we have.
				return pad()
			}

			out = append(out, entry...)
			if len(out) >= pixelCount {
				return pad()
			}

			if prev != nil && len(table) < maxTableSize {
				grown := append(append(make([]byte, 0, len(prev)+1), prev...), entry[0])
				table = append(table, grown)
				if len(table) > mask && codeSize < 12 {
					codeSize++
					mask = 1<<codeSize - 1
				}
			}
			prev = entry
		}
	}
	return pad()
}
