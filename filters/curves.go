package filters

import (
	"sync/atomic"

	"github.com/soypat/pixview"
)

// NewCurves creates a tone curve filter for RGBA images. The curve maps every color
// channel through the same piecewise linear function; alpha is left untouched.
// Points are normalized to 0-1 on both axes. No points gives the identity curve.
//
// The filter has two controls: the curve itself and a strength in 0-1 range that blends
// the identity (0) with the full curve (1). Strength starts at 1.
func NewCurves(points []pixview.CurvePoint) (*PointFilter, error) {
	curve := &pixview.ControlCurve{
		Name:        "Tone Curve",
		Description: "Maps input channel values (X) to output values (Y)",
	}
	strength := &pixview.ControlOrdered[float32]{
		Name:        "Strength",
		Description: "Blend between unchanged (0) and fully mapped (1) channel values",
		Value:       1,
		Min:         0,
		Max:         1,
		Step:        0.05,
	}
	var lut atomic.Pointer[[256]uint8]
	curve.OnChange = func(pts []pixview.CurvePoint) error {
		lut.Store(curveLUT(pts, strength.Value))
		return nil
	}
	strength.OnChange = func(s float32) error {
		lut.Store(curveLUT(curve.Points, s))
		return nil
	}
	if err := curve.ChangeValue(points); err != nil {
		return nil, err
	}
	return &PointFilter{
		In:  pixview.PixelFormatRGBA,
		Out: pixview.PixelFormatRGBA,
		Fn: func(dst, src []byte) {
			table := lut.Load()
			for i := 0; i+3 < len(src); i += 4 {
				dst[i] = table[src[i]]
				dst[i+1] = table[src[i+1]]
				dst[i+2] = table[src[i+2]]
				dst[i+3] = src[i+3]
			}
		},
		Ctrls: []pixview.Control{curve, strength},
	}, nil
}

// curveLUT samples the curve through pts and moves every entry toward the identity by
// 1-strength. The result always lies between the input value and the curve value.
func curveLUT(pts []pixview.CurvePoint, strength float32) *[256]uint8 {
	full := (&pixview.ControlCurve{Points: pts}).LUT8()
	if strength == 1 {
		return &full
	}
	var table [256]uint8
	for i, y := range full {
		x := float32(i)
		table[i] = uint8(x + strength*(float32(y)-x) + 0.5)
	}
	return &table
}
