// Package imageio turns image files of any registered format into the
// tightly packed RGBA buffers the divination engine consumes. Animated
// GIFs are routed through the project's own decoder and contribute
// their first composited frame.
package imageio

import (
	"bytes"
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"

	"github.com/AnyUserName/hexcast-cli/internal/gif"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Buffer is a decoded image as raw RGBA bytes.
type Buffer struct {
	Pix    []byte // len = Width*Height*4
	Width  int
	Height int
}

// Load reads and decodes the file at path.
func Load(path string) (Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Buffer{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Decode(data)
}

// Decode converts file bytes into an RGBA buffer. GIF bytes go through
// the tolerant animated decoder; everything else through the standard
// registry with EXIF orientation applied.
func Decode(data []byte) (Buffer, error) {
	if len(data) >= 3 && data[0] == 'G' && data[1] == 'I' && data[2] == 'F' {
		anim, err := gif.Decode(data)
		if err != nil {
			return Buffer{}, fmt.Errorf("decode gif: %w", err)
		}
		return Buffer{Pix: anim.Frames[0].Pixels, Width: anim.Width, Height: anim.Height}, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return Buffer{}, fmt.Errorf("decode image: %w", err)
	}
	return FromImage(img), nil
}

// FromImage flattens any image.Image into a tight RGBA buffer.
func FromImage(img image.Image) Buffer {
	nrgba := imaging.Clone(img) // *image.NRGBA with stride = 4*width
	b := nrgba.Bounds()
	return Buffer{
		Pix:    nrgba.Pix,
		Width:  b.Dx(),
		Height: b.Dy(),
	}
}
