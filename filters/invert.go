package filters

import "github.com/soypat/pixview"

// NewInvertedPerPixel creates a filter that inverts the color channels of RGBA images,
// leaving alpha untouched.
func NewInvertedPerPixel() *PointFilter {
	return &PointFilter{
		In:  pixview.PixelFormatRGBA,
		Out: pixview.PixelFormatRGBA,
		Fn: func(dst, src []byte) {
			for i := 0; i+3 < len(src); i += 4 {
				dst[i] = 255 - src[i]
				dst[i+1] = 255 - src[i+1]
				dst[i+2] = 255 - src[i+2]
				dst[i+3] = src[i+3]
			}
		},
	}
}
