// Package gif decodes animated GIF containers from an in-memory byte
// buffer into fully composited RGBA frames. The decoder is tolerant in
// the way real-world GIF renderers are: only a missing signature is a
// hard error; truncated or corrupt streams yield whatever frames (and
// pixels) were reconstructed before the anomaly.
package gif

import "errors"

var (
	// ErrFormat means the buffer does not start with a GIF signature.
	ErrFormat = errors.New("gif: invalid signature")
	// ErrEmptyAnimation means a well-formed file produced zero frames.
	ErrEmptyAnimation = errors.New("gif: no frames decoded")
)

// Frame is one composited output frame: a full-canvas RGBA buffer
// (width*height*4 bytes) and its display delay.
type Frame struct {
	Pixels  []byte
	DelayMS int
}

// Animation is the decoded container. Width and Height are the logical
// screen dimensions and are constant across frames.
type Animation struct {
	Width  int
	Height int
	Frames []Frame
}

// Decode parses a complete GIF file and composites every frame onto the
// logical screen, honoring transparency and disposal methods.
func Decode(data []byte) (*Animation, error) {
	p, err := newParser(data)
	if err != nil {
		return nil, err
	}
	raws := p.parseFrames()
	if len(raws) == 0 {
		return nil, ErrEmptyAnimation
	}

	anim := &Animation{Width: p.width, Height: p.height}
	comp := newCompositor(p.width, p.height)
	for i := range raws {
		anim.Frames = append(anim.Frames, comp.compose(&raws[i]))
	}
	return anim, nil
}

// IsAnimated reports whether the buffer holds a GIF with at least two
// image descriptors. It walks the block structure without LZW
// decompression and short-circuits on the second descriptor.
func IsAnimated(data []byte) bool {
	p, err := newParser(data)
	if err != nil {
		return false
	}
	return p.countImages(2) >= 2
}
