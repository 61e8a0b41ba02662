package hexagram

// kingWen maps every 6-bit line pattern to its King Wen hexagram number.
// The binary literals read the hexagram bottom line to top line, left to
// right (so bit 0 is the top line). This is fixed classical data, not
// derived: all 64 patterns map to a unique number in 1..64.
var kingWen = map[uint8]int{
	0b111111: 1,
	0b000000: 2,
	0b100010: 3,
	0b010001: 4,
	0b111010: 5,
	0b010111: 6,
	0b010000: 7,
	0b000010: 8,
	0b111011: 9,
	0b110111: 10,
	0b111000: 11,
	0b000111: 12,
	0b101111: 13,
	0b111101: 14,
	0b001000: 15,
	0b000100: 16,
	0b100110: 17,
	0b011001: 18,
	0b110000: 19,
	0b000011: 20,
	0b100101: 21,
	0b101001: 22,
	0b000001: 23,
	0b100000: 24,
	0b100111: 25,
	0b111001: 26,
	0b100001: 27,
	0b011110: 28,
	0b010010: 29,
	0b101101: 30,
	0b001110: 31,
	0b011100: 32,
	0b001111: 33,
	0b111100: 34,
	0b000101: 35,
	0b101000: 36,
	0b101011: 37,
	0b110101: 38,
	0b001010: 39,
	0b010100: 40,
	0b110001: 41,
	0b100011: 42,
	0b111110: 43,
	0b011111: 44,
	0b000110: 45,
	0b011000: 46,
	0b010110: 47,
	0b011010: 48,
	0b101110: 49,
	0b011101: 50,
	0b100100: 51,
	0b001001: 52,
	0b001011: 53,
	0b110100: 54,
	0b101100: 55,
	0b001101: 56,
	0b011011: 57,
	0b110110: 58,
	0b010011: 59,
	0b110010: 60,
	0b110011: 61,
	0b001100: 62,
	0b101010: 63,
	0b010101: 64,
}

// Pattern encodes six line polarities (index 0 = bottom line, true =
// yang) as a lookup key: bit i of the key is the polarity of line 6-i,
// so the key reads the hexagram top-down.
func Pattern(yang [6]bool) uint8 {
	var key uint8
	for i := 0; i < 6; i++ {
		if yang[5-i] {
			key |= 1 << i
		}
	}
	return key
}

// NumberForPattern resolves a 6-bit pattern to its King Wen number.
// ok is false only for keys outside the 6-bit domain.
func NumberForPattern(key uint8) (int, bool) {
	n, ok := kingWen[key]
	return n, ok
}
