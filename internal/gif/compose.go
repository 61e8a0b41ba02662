package gif

// Disposal methods from the graphic control extension.
const (
	disposalNone       = 0
	disposalKeep       = 1
	disposalBackground = 2
	disposalPrevious   = 3
)

// compositor maintains the working RGBA canvas across a frame sequence.
type compositor struct {
	width, height int
	canvas        []byte
}

func newCompositor(width, height int) *compositor {
	return &compositor{
		width:  width,
		height: height,
		canvas: make([]byte, width*height*4),
	}
}

// compose paints one raw frame onto the canvas, snapshots the result as
// the output frame, then applies the frame's disposal method so the
// canvas is ready for the next frame. Disposal 3 restores the exact
// pre-paint canvas from a snapshot taken only when needed.
func (c *compositor) compose(f *rawFrame) Frame {
	var saved []byte
	if f.disposal == disposalPrevious {
		saved = append([]byte(nil), c.canvas...)
	}

	c.paint(f)
	out := append([]byte(nil), c.canvas...)

	switch f.disposal {
	case disposalBackground:
		c.clearRect(f.left, f.top, f.width, f.height)
	case disposalPrevious:
		c.canvas = saved
	}
	return Frame{Pixels: out, DelayMS: f.delayMS}
}

func (c *compositor) paint(f *rawFrame) {
	for y := 0; y < f.height; y++ {
		cy := f.top + y
		if cy < 0 || cy >= c.height {
			continue
		}
		for x := 0; x < f.width; x++ {
			cx := f.left + x
			if cx < 0 || cx >= c.width {
				continue
			}
			i := y*f.width + x
			if i >= len(f.pix) {
				return
			}
			idx := int(f.pix[i])
			if idx == f.transparent {
				continue // leave the canvas pixel beneath
			}
			if idx*3+2 >= len(f.colorTable) {
				continue
			}
			o := (cy*c.width + cx) * 4
			c.canvas[o] = f.colorTable[idx*3]
			c.canvas[o+1] = f.colorTable[idx*3+1]
			c.canvas[o+2] = f.colorTable[idx*3+2]
			c.canvas[o+3] = 0xFF
		}
	}
}

// clearRect resets exactly the frame's rectangle back to transparent.
func (c *compositor) clearRect(left, top, width, height int) {
	for y := top; y < top+height; y++ {
		if y < 0 || y >= c.height {
			continue
		}
		for x := left; x < left+width; x++ {
			if x < 0 || x >= c.width {
				continue
			}
			o := (y*c.width + x) * 4
			c.canvas[o], c.canvas[o+1], c.canvas[o+2], c.canvas[o+3] = 0, 0, 0, 0
		}
	}
}
