package filters

import (
	"sync/atomic"

	"github.com/soypat/pixview"
)

// GrayscaleMode selects how an RGB triplet is reduced to a single Y sample.
type GrayscaleMode uint8

const (
	// GrayscaleLuminance weighs channels as 0.299*R + 0.587*G + 0.114*B.
	GrayscaleLuminance GrayscaleMode = iota
	// GrayscaleAverage is (R + G + B) / 3.
	GrayscaleAverage
	// GrayscaleLightness is (max(R,G,B) + min(R,G,B)) / 2.
	GrayscaleLightness
)

func (m GrayscaleMode) String() string {
	switch m {
	case GrayscaleLuminance:
		return "Luminance"
	case GrayscaleAverage:
		return "Average"
	case GrayscaleLightness:
		return "Lightness"
	}
	return "Unknown"
}

// gray reduces one RGB triplet. Unknown modes fall back to luminance.
func (m GrayscaleMode) gray(r, g, b uint8) uint8 {
	switch m {
	case GrayscaleAverage:
		return uint8((uint32(r) + uint32(g) + uint32(b)) / 3)
	case GrayscaleLightness:
		return uint8((uint32(min(r, g, b)) + uint32(max(r, g, b))) / 2)
	}
	// 8 bit fixed point weights summing to 256.
	return uint8((77*uint32(r) + 150*uint32(g) + 29*uint32(b)) >> 8)
}

// NewGrayscalePerPixel creates a filter converting RGB images to single channel Y images.
// The mode can be changed afterwards through the filter's only control.
func NewGrayscalePerPixel(mode GrayscaleMode) *PointFilter {
	var current atomic.Uint32
	current.Store(uint32(mode))
	return &PointFilter{
		In:  pixview.PixelFormatRGB,
		Out: pixview.PixelFormatY,
		Fn: func(dst, src []byte) {
			m := GrayscaleMode(current.Load())
			for i, j := 0, 0; i+2 < len(src); i, j = i+3, j+1 {
				dst[j] = m.gray(src[i], src[i+1], src[i+2])
			}
		},
		Ctrls: []pixview.Control{
			&pixview.ControlEnum[GrayscaleMode]{
				Name:        "Conversion Mode",
				Description: "Algorithm for RGB to grayscale conversion",
				Value:       mode,
				ValidValues: []GrayscaleMode{GrayscaleLuminance, GrayscaleAverage, GrayscaleLightness},
				OnChange: func(m GrayscaleMode) error {
					current.Store(uint32(m))
					return nil
				},
			},
		},
	}
}
