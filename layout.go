package pixview

import "fmt"

// PixelLength is a length or coordinate measured in pixels.
type PixelLength int

// Stride is a distance in bytes between the starts of two consecutive rows.
type Stride int

// Layout describes the geometry of a dynamically typed image: its size in pixels,
// the number of channels per pixel, the number of bytes per channel and the row stride.
// The stride may include padding bytes past the end of each row's pixel data.
//
// The zero value is the empty layout. Negative or zero dimensions are permitted and denote
// an empty image. Layout performs no validation against any buffer.
type Layout struct {
	Width           PixelLength
	Height          PixelLength
	Channels        int16
	BytesPerChannel int16
	StrideBytes     Stride
}

// NewLayout returns a packed layout, i.e. one whose stride equals the row size.
func NewLayout(width, height PixelLength, channels, bytesPerChannel int16) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		Channels:        channels,
		BytesPerChannel: bytesPerChannel,
		StrideBytes:     Stride(int(width) * int(channels) * int(bytesPerChannel)),
	}
}

// NewLayoutStride returns a layout with an explicit row stride, used for padded or aligned rows.
func NewLayoutStride(width, height PixelLength, channels, bytesPerChannel int16, stride Stride) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		Channels:        channels,
		BytesPerChannel: bytesPerChannel,
		StrideBytes:     stride,
	}
}

// BytesPerPixel returns Channels*BytesPerChannel.
func (l Layout) BytesPerPixel() int {
	return int(l.Channels) * int(l.BytesPerChannel)
}

// RowBytes returns the number of data bytes in each row, excluding padding.
// It follows that StrideBytes >= RowBytes for a well formed layout.
func (l Layout) RowBytes() int {
	return int(l.Width) * l.BytesPerPixel()
}

// TotalBytes returns StrideBytes*Height, the number of bytes the image occupies in memory
// including padding of the last row.
func (l Layout) TotalBytes() int {
	return int(l.StrideBytes) * int(l.Height)
}

// IsPacked reports whether rows are stored without padding.
func (l Layout) IsPacked() bool {
	return int(l.StrideBytes) == l.RowBytes()
}

// IsEmpty reports whether the layout describes no pixels.
func (l Layout) IsEmpty() bool {
	return l.Width <= 0 || l.Height <= 0
}

// Equal reports whether all five layout fields match.
func (l Layout) Equal(other Layout) bool {
	return l == other
}

// ReadableBytes returns the minimum buffer length needed to address every pixel of the
// layout. Unlike TotalBytes it does not count padding after the last row.
func (l Layout) ReadableBytes() int {
	if l.IsEmpty() {
		return 0
	}
	return (int(l.Height)-1)*int(l.StrideBytes) + l.RowBytes()
}

// addressable reports whether no field is negative. Negative fields denote an empty
// image, so no offset is computed from them.
func (l Layout) addressable() bool {
	return l.Width >= 0 && l.Height >= 0 && l.Channels >= 0 && l.BytesPerChannel >= 0 && l.StrideBytes >= 0
}

// AlignedStride returns RowBytes rounded up to a multiple of align.
// An align of 1 or less returns the packed stride.
func (l Layout) AlignedStride(align int) Stride {
	rb := l.RowBytes()
	if align <= 1 {
		return Stride(rb)
	}
	return Stride((rb + align - 1) / align * align)
}

// Validate checks the layout for negative fields and a stride smaller than the row size.
// Layout construction never calls Validate; it is offered to callers that want to
// establish the layout invariants before building a view.
func (l Layout) Validate() error {
	if l.Width < 0 || l.Height < 0 || l.Channels < 0 || l.BytesPerChannel < 0 || l.StrideBytes < 0 {
		return fmt.Errorf("pixview: negative layout field in %v", l)
	} else if int(l.StrideBytes) < l.RowBytes() {
		return fmt.Errorf("pixview: stride %d smaller than row size %d", l.StrideBytes, l.RowBytes())
	}
	return nil
}

func (l Layout) String() string {
	return fmt.Sprintf("%dx%d ch=%d bpc=%d stride=%d", l.Width, l.Height, l.Channels, l.BytesPerChannel, l.StrideBytes)
}
