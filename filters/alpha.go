package filters

import "github.com/soypat/pixview"

// NewStripAlpha creates a filter converting RGBA images to RGB by dropping the alpha channel.
// Color values are copied as stored; no premultiplication is undone.
func NewStripAlpha() *PointFilter {
	return &PointFilter{
		In:  pixview.PixelFormatRGBA,
		Out: pixview.PixelFormatRGB,
		Fn: func(dst, src []byte) {
			for i, j := 0, 0; i+3 < len(src); i, j = i+4, j+3 {
				dst[j], dst[j+1], dst[j+2] = src[i], src[i+1], src[i+2]
			}
		},
	}
}
