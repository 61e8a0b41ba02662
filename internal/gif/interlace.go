package gif

// interlacePass describes one pass of GIF's four-pass row interleave.
type interlacePass struct {
	start, stride int
}

var interlacePasses = []interlacePass{
	{0, 8}, // pass 1: rows 0, 8, 16, ...
	{4, 8}, // pass 2: rows 4, 12, 20, ...
	{2, 4}, // pass 3: rows 2, 6, 10, ...
	{1, 2}, // pass 4: odd rows
}

// deinterlace reorders an interlaced frame's rows back to top-to-bottom
// order. Pure permutation: source rows are consumed sequentially in
// pass order and placed at their true vertical position.
func deinterlace(pix []byte, width, height int) []byte {
	out := make([]byte, len(pix))
	src := 0
	for _, pass := range interlacePasses {
		for y := pass.start; y < height; y += pass.stride {
			if src+width > len(pix) {
				return out
			}
			copy(out[y*width:(y+1)*width], pix[src:src+width])
			src += width
		}
	}
	return out
}
