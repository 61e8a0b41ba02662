package gif

import (
	"encoding/binary"

	"github.com/go-restruct/restruct"
)

// Block and extension introducers.
const (
	blockExtension       = 0x21
	blockImageDescriptor = 0x2C
	blockTrailer         = 0x3B

	extGraphicControl = 0xF9
)

// defaultDelayMS is used when no graphic control extension precedes a
// frame, or when the source declares a zero delay.
const defaultDelayMS = 100

// logicalScreenDescriptor is the 7 bytes following the 6-byte header.
type logicalScreenDescriptor struct {
	Width           uint16 `struct:"uint16"`
	Height          uint16 `struct:"uint16"`
	Packed          uint8  `struct:"uint8"`
	BackgroundIndex uint8  `struct:"uint8"`
	AspectRatio     uint8  `struct:"uint8"`
}

// imageDescriptor is the 9 bytes following the 0x2C introducer.
type imageDescriptor struct {
	Left   uint16 `struct:"uint16"`
	Top    uint16 `struct:"uint16"`
	Width  uint16 `struct:"uint16"`
	Height uint16 `struct:"uint16"`
	Packed uint8  `struct:"uint8"`
}

// graphicControl is the 4-byte payload of a 0xF9 extension.
type graphicControl struct {
	Packed           uint8  `struct:"uint8"`
	DelayCentiSec    uint16 `struct:"uint16"`
	TransparentIndex uint8  `struct:"uint8"`
}

// rawFrame is a decoded frame before compositing: indexed pixels (post
// LZW, post deinterlace) plus placement and paint state.
type rawFrame struct {
	pix           []byte // width*height palette indices
	left, top     int
	width, height int
	colorTable    []byte // rgb triples
	disposal      byte
	transparent   int // palette index, -1 when none
	delayMS       int
}

type parser struct {
	data []byte
	pos  int

	width, height    int
	globalColorTable []byte

	// graphic control state for the next image descriptor
	delayMS     int
	transparent int
	disposal    byte
}

// newParser validates the signature and consumes the logical screen
// descriptor plus global color table. A missing "GIF" signature is the
// only hard error in the whole decoder.
func newParser(data []byte) (*parser, error) {
	if len(data) < 6 || data[0] != 'G' || data[1] != 'I' || data[2] != 'F' {
		return nil, ErrFormat
	}
	p := &parser{data: data, pos: 6, delayMS: defaultDelayMS, transparent: -1}

	var lsd logicalScreenDescriptor
	if len(data) < 13 {
		return p, nil // signature only; zero frames downstream
	}
	if err := restruct.Unpack(data[6:13], binary.LittleEndian, &lsd); err != nil {
		return p, nil
	}
	p.pos = 13
	p.width = int(lsd.Width)
	p.height = int(lsd.Height)
	if lsd.Packed&0x80 != 0 {
		size := 3 * (1 << ((lsd.Packed & 0x07) + 1))
		p.globalColorTable = p.take(size)
	}
	return p, nil
}

func (p *parser) take(n int) []byte {
	if p.pos+n > len(p.data) {
		return nil
	}
	b := p.data[p.pos : p.pos+n]
	p.pos += n
	return b
}

func (p *parser) readByte() (byte, bool) {
	if p.pos >= len(p.data) {
		return 0, false
	}
	b := p.data[p.pos]
	p.pos++
	return b, true
}

// skipSubBlocks consumes length-prefixed sub-blocks up to and including
// the zero-length terminator. Returns false on truncation.
func (p *parser) skipSubBlocks() bool {
	for {
		n, ok := p.readByte()
		if !ok {
			return false
		}
		if n == 0 {
			return true
		}
		if p.take(int(n)) == nil {
			return false
		}
	}
}

// readSubBlocks concatenates sub-block payloads into one buffer.
func (p *parser) readSubBlocks() ([]byte, bool) {
	var out []byte
	for {
		n, ok := p.readByte()
		if !ok {
			return out, false
		}
		if n == 0 {
			return out, true
		}
		chunk := p.take(int(n))
		if chunk == nil {
			return out, false
		}
		out = append(out, chunk...)
	}
}

// parseFrames walks the block stream until the trailer, an unknown
// block, or truncation. Frames parsed before an anomaly are kept.
func (p *parser) parseFrames() []rawFrame {
	var frames []rawFrame
	for {
		introducer, ok := p.readByte()
		if !ok {
			return frames
		}
		switch introducer {
		case blockExtension:
			if !p.parseExtension() {
				return frames
			}
		case blockImageDescriptor:
			f, ok := p.parseImage()
			if ok {
				frames = append(frames, f)
			}
			// Graphic control state applies to one image only.
			p.delayMS = defaultDelayMS
			p.transparent = -1
			p.disposal = 0
			if !ok {
				return frames
			}
		case blockTrailer:
			return frames
		default:
			// Malformed but recoverable: keep what we have.
			return frames
		}
	}
}

func (p *parser) parseExtension() bool {
	label, ok := p.readByte()
	if !ok {
		return false
	}
	if label == extGraphicControl {
		n, ok := p.readByte()
		if !ok {
			return false
		}
		body := p.take(int(n))
		if body == nil {
			return false
		}
		var gc graphicControl
		if len(body) >= 4 {
			if err := restruct.Unpack(body, binary.LittleEndian, &gc); err == nil {
				p.disposal = (gc.Packed >> 2) & 0x07
				p.delayMS = int(gc.DelayCentiSec) * 10
				if p.delayMS <= 0 {
					p.delayMS = defaultDelayMS
				}
				p.transparent = -1
				if gc.Packed&0x01 != 0 {
					p.transparent = int(gc.TransparentIndex)
				}
			}
		}
		return p.skipSubBlocks()
	}
	// Every other extension: skip its sub-blocks unconditionally.
	return p.skipSubBlocks()
}

func (p *parser) parseImage() (rawFrame, bool) {
	raw := p.take(9)
	if raw == nil {
		return rawFrame{}, false
	}
	var desc imageDescriptor
	if err := restruct.Unpack(raw, binary.LittleEndian, &desc); err != nil {
		return rawFrame{}, false
	}

	f := rawFrame{
		left:        int(desc.Left),
		top:         int(desc.Top),
		width:       int(desc.Width),
		height:      int(desc.Height),
		colorTable:  p.globalColorTable,
		disposal:    p.disposal,
		transparent: p.transparent,
		delayMS:     p.delayMS,
	}
	interlaced := desc.Packed&0x40 != 0
	if desc.Packed&0x80 != 0 {
		size := 3 * (1 << ((desc.Packed & 0x07) + 1))
		if local := p.take(size); local != nil {
			f.colorTable = local
		} else {
			return rawFrame{}, false
		}
	}

	minCodeSize, ok := p.readByte()
	if !ok {
		return rawFrame{}, false
	}
	compressed, complete := p.readSubBlocks()

	f.pix = decompress(compressed, int(minCodeSize), f.width*f.height)
	if interlaced {
		f.pix = deinterlace(f.pix, f.width, f.height)
	}
	return f, complete
}

// countImages walks the block structure counting image descriptors,
// stopping early at max. No pixel data is decompressed.
func (p *parser) countImages(max int) int {
	count := 0
	for count < max {
		introducer, ok := p.readByte()
		if !ok {
			return count
		}
		switch introducer {
		case blockExtension:
			if _, ok := p.readByte(); !ok {
				return count
			}
			if !p.skipSubBlocks() {
				return count
			}
		case blockImageDescriptor:
			raw := p.take(9)
			if raw == nil {
				return count
			}
			packed := raw[8]
			if packed&0x80 != 0 {
				p.take(3 * (1 << ((packed & 0x07) + 1)))
			}
			if _, ok := p.readByte(); !ok { // LZW minimum code size
				return count
			}
			if !p.skipSubBlocks() {
				return count
			}
			count++
		default:
			return count
		}
	}
	return count
}
