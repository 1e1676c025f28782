package pixelart

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Color is an (r, g, b, a) tuple in [0,1]. It is comparable and used
// as-is for material deduplication: two colours share a material only
// if all four channels are exactly equal.
type Color [4]float32

func (c Color) R() float32 { return c[0] }
func (c Color) G() float32 { return c[1] }
func (c Color) B() float32 { return c[2] }
func (c Color) A() float32 { return c[3] }

// Opaque reports whether alpha is exactly 1.
func (c Color) Opaque() bool {
	return c[3] >= 1
}

// Hex renders the colour as RRGGBBAA, each channel floor(v*255).
// Distinct colours may render to the same string.
func (c Color) Hex() string {
	return fmt.Sprintf("%02X%02X%02X%02X", channelByte(c[0]), channelByte(c[1]), channelByte(c[2]), channelByte(c[3]))
}

func (c Color) String() string {
	return "#" + c.Hex()
}

func channelByte(v float32) uint8 {
	f := math32.Floor(v * 255)
	if f <= 0 || math32.IsNaN(f) {
		return 0
	}
	if f >= 255 {
		return 255
	}
	return uint8(f)
}
