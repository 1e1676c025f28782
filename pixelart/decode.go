package pixelart

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"golang.org/x/image/bmp"
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

// Extensions are the file extensions accepted by the importer.
var Extensions = []string{".png", ".gif", ".bmp"}

// FilterGlob is the file-picker filter for Extensions.
const FilterGlob = "*.png;*.gif;*.bmp"

// HasImageExtension reports whether path ends in one of Extensions.
func HasImageExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Decode decodes a PNG, GIF or BMP file into a float pixel buffer.
// Rows are stored bottom-up so that row 0 is the bottom row of the
// picture, matching the usual 3D host convention.
func Decode(name string, data []byte) (*Image, error) {
	kind, err := filetype.Match(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	var src image.Image
	r := bytes.NewReader(data)
	switch kind.Extension {
	case "png":
		src, err = png.Decode(r)
	case "gif":
		src, err = gif.Decode(r)
	case "bmp":
		src, err = bmp.Decode(r)
	default:
		return nil, fmt.Errorf("%s (%s): %w", name, kind.MIME.Value, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return FromImage(name, src), nil
}

// FromImage converts a Go image into a pixel buffer. Gray images get one
// channel, opaque colour images three, anything with transparency four.
func FromImage(name string, src image.Image) *Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	channels := channelCount(src)
	pixels := make([]float32, 0, w*h*channels)
	for y := h - 1; y >= 0; y-- {
		for x := 0; x < w; x++ {
			c := src.At(b.Min.X+x, b.Min.Y+y)
			if channels == 1 {
				g := color.Gray16Model.Convert(c).(color.Gray16)
				pixels = append(pixels, float32(g.Y)/0xffff)
				continue
			}
			n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
			pixels = append(pixels, float32(n.R)/0xffff, float32(n.G)/0xffff, float32(n.B)/0xffff)
			if channels == 4 {
				pixels = append(pixels, float32(n.A)/0xffff)
			}
		}
	}
	return &Image{Name: name, Width: w, Height: h, Channels: channels, Pixels: pixels}
}

type opaquer interface {
	Opaque() bool
}

func channelCount(src image.Image) int {
	switch src.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	case *image.YCbCr, *image.CMYK:
		return 3
	}
	if o, ok := src.(opaquer); ok && o.Opaque() {
		return 3
	}
	return 4
}
