package stream

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultPixels is the strip length used when the config leaves it out.
const DefaultPixels = 500

// Frame represents a frame of RGB pixels to display on an ledrx device.
type Frame struct {
	pixels []colorful.Color
}

// NewFrame creates a new Frame instance.
func NewFrame(numPixels int) *Frame {
	if numPixels < 0 {
		numPixels = 0
	}
	f := new(Frame)
	f.pixels = make([]colorful.Color, numPixels)
	return f
}

// Len is the number of pixels.
func (f *Frame) Len() int { return len(f.pixels) }

// Pixel returns the colour of pixel i.
func (f *Frame) Pixel(i int) colorful.Color { return f.pixels[i] }

// Fill sets every pixel to c.
func (f *Frame) Fill(c colorful.Color) {
	for i := range f.pixels {
		f.pixels[i] = c
	}
}

// InterpolateFrame merges two frames.
func (f *Frame) InterpolateFrame(f2 *Frame, transitionPoint float64) *Frame {
	out := NewFrame(len(f.pixels))
	for i := 0; i < len(f.pixels) && i < len(f2.pixels); i++ {
		out.pixels[i] = f.pixels[i].BlendHcl(f2.pixels[i], transitionPoint).Clamped()
	}

	return out
}

// MarshalBinary converts a Frame into binary data: a little endian pixel count
// followed by one RGB triple per pixel.
func (f *Frame) MarshalBinary() (data []byte, err error) {
	if len(f.pixels) > 0xffff {
		return nil, fmt.Errorf("frame of %d pixels does not fit the wire format", len(f.pixels))
	}
	data = make([]byte, 2, (len(f.pixels)*3)+2)
	binary.LittleEndian.PutUint16(data, uint16(len(f.pixels)))
	for _, p := range f.pixels {
		r, g, b := p.Clamped().RGB255()
		data = append(data, r, g, b)
	}

	return data, nil
}

// UnmarshalBinary reads a frame written by MarshalBinary.
func (f *Frame) UnmarshalBinary(data []byte) error {
	if len(data) < 2 {
		return errors.New("frame header truncated")
	}
	n := int(binary.LittleEndian.Uint16(data))
	if len(data) != 2+n*3 {
		return fmt.Errorf("frame declares %d pixels but carries %d bytes", n, len(data)-2)
	}
	f.pixels = make([]colorful.Color, n)
	for i := 0; i < n; i++ {
		o := 2 + i*3
		f.pixels[i] = colorful.Color{
			R: float64(data[o]) / 255,
			G: float64(data[o+1]) / 255,
			B: float64(data[o+2]) / 255,
		}
	}
	return nil
}
