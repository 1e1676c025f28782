package pixelart

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedChannels = errors.New("unsupported channel count")
	ErrPixelCount          = errors.New("pixel buffer size does not match image dimensions")
)

// Image is a decoded pixel buffer as handed out by a Host.
// Pixels holds Width*Height*Channels samples in [0,1], row-major,
// with row 0 being the first row as stored by the host.
type Image struct {
	Name     string
	Width    int
	Height   int
	Channels int
	Pixels   []float32
}

// NewImage validates the buffer layout and returns the image.
func NewImage(name string, width, height, channels int, pixels []float32) (*Image, error) {
	img := &Image{Name: name, Width: width, Height: height, Channels: channels, Pixels: pixels}
	if err := img.Check(); err != nil {
		return nil, err
	}
	return img, nil
}

// Check reports whether the buffer can be converted.
func (img *Image) Check() error {
	switch img.Channels {
	case 1, 3, 4:
	default:
		return fmt.Errorf("cannot handle image with %d channels: %w", img.Channels, ErrUnsupportedChannels)
	}
	if img.Width < 0 || img.Height < 0 || len(img.Pixels) != img.Width*img.Height*img.Channels {
		return fmt.Errorf("%dx%dx%d image with %d samples: %w", img.Width, img.Height, img.Channels, len(img.Pixels), ErrPixelCount)
	}
	return nil
}

// HasAlpha reports whether the buffer carries an alpha channel.
func (img *Image) HasAlpha() bool {
	return img.Channels == 4
}

// Pixel returns the colour at column x, row y. Grayscale samples are
// replicated into r, g and b; images without alpha report alpha 1.
func (img *Image) Pixel(x, y int) Color {
	i := (y*img.Width + x) * img.Channels
	p := img.Pixels
	switch img.Channels {
	case 1:
		return Color{p[i], p[i], p[i], 1}
	case 3:
		return Color{p[i], p[i+1], p[i+2], 1}
	default:
		return Color{p[i], p[i+1], p[i+2], p[i+3]}
	}
}
