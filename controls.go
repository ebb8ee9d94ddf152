package pixview

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/soypat/geometry/ms2"
)

// Control is an editable parameter of a [Filter].
// Accepted changes take effect on the filter's next Process call.
type Control interface {
	// Describe returns a display name and description.
	Describe() (name, description string)
	// ActualValue returns the current value of the control.
	ActualValue() any
	// ChangeValue attempts to update the ActualValue to newValue.
	ChangeValue(newValue any) error
}

// ControlOrdered is a bounded numeric control, typically rendered as a slider.
type ControlOrdered[T cmp.Ordered] struct {
	Name        string
	Description string
	Value       T
	Min         T
	Max         T
	Step        T
	OnChange    func(T) error
}

func (co *ControlOrdered[T]) Describe() (name, description string) {
	return co.Name, co.Description
}

func (co *ControlOrdered[T]) ActualValue() any { return co.Value }

func (co *ControlOrdered[T]) ChangeValue(newValue any) error {
	v, ok := newValue.(T)
	if !ok {
		return fmt.Errorf("new value %T not of type %T", newValue, co.Value)
	}
	if v < co.Min || v > co.Max {
		return fmt.Errorf("new value %v exceeds limits %v..%v", v, co.Min, co.Max)
	}
	return applyChange(&co.Value, v, co.OnChange)
}

type integer interface {
	~int | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~int8 | ~int16 | ~int32 | ~int64
}

// enum is an integer with a display name, such as [PixelFormat].
type enum interface {
	integer
	fmt.Stringer
}

// ControlEnum picks one of a fixed set of values.
type ControlEnum[T enum] struct {
	Name        string
	Description string
	Value       T
	ValidValues []T
	OnChange    func(T) error
}

func (ce *ControlEnum[T]) Describe() (name, description string) {
	return ce.Name, ce.Description
}

func (ce *ControlEnum[T]) ActualValue() any {
	return ce.Value
}

func (ce *ControlEnum[T]) ChangeValue(newValue any) error {
	v, ok := newValue.(T)
	if !ok {
		return fmt.Errorf("new value %T not of type %T", newValue, ce.Value)
	}
	if !slices.Contains(ce.ValidValues, v) {
		return fmt.Errorf("value %v of %T not valid", v, v)
	}
	return applyChange(&ce.Value, v, ce.OnChange)
}

// CurvePoint is a control point for curve-type controls.
// X represents input (0-1), Y represents output (0-1).
type CurvePoint = ms2.Vec

// ControlCurve is a tone curve given by control points joined by straight segments.
// Points are in normalized 0-1 range for both X (input) and Y (output) and are kept
// sorted by X.
type ControlCurve struct {
	Name        string
	Description string
	Points      []CurvePoint
	OnChange    func([]CurvePoint) error
}

func (cc *ControlCurve) Describe() (name, description string) {
	return cc.Name, cc.Description
}

func (cc *ControlCurve) ActualValue() any {
	return cc.Points
}

func (cc *ControlCurve) ChangeValue(newValue any) error {
	pts, ok := newValue.([]CurvePoint)
	if !ok {
		return fmt.Errorf("new value %T not of type []CurvePoint", newValue)
	}
	pts, err := normalizeCurve(pts)
	if err != nil {
		return err
	}
	return applyChange(&cc.Points, pts, cc.OnChange)
}

// Eval returns the curve output for input x. Inputs outside the first and last control
// point hold the end values. A curve without points is the identity.
func (cc *ControlCurve) Eval(x float32) float32 {
	return evalCurve(cc.Points, x)
}

// LUT8 samples the curve at every 8-bit value.
func (cc *ControlCurve) LUT8() (lut [256]uint8) {
	for i := range lut {
		y := evalCurve(cc.Points, float32(i)/255)
		lut[i] = uint8(min(max(y, 0), 1)*255 + 0.5)
	}
	return lut
}

// normalizeCurve returns a copy of pts sorted by X after checking all points lie in [0,1].
func normalizeCurve(pts []CurvePoint) ([]CurvePoint, error) {
	for i, p := range pts {
		if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 {
			return nil, fmt.Errorf("curve point %d (%v,%v) outside 0-1 range", i, p.X, p.Y)
		}
	}
	pts = slices.Clone(pts)
	slices.SortStableFunc(pts, func(a, b CurvePoint) int { return cmp.Compare(a.X, b.X) })
	return pts, nil
}

func evalCurve(pts []CurvePoint, x float32) float32 {
	switch {
	case len(pts) == 0:
		return x
	case x <= pts[0].X:
		return pts[0].Y
	case x >= pts[len(pts)-1].X:
		return pts[len(pts)-1].Y
	}
	i, _ := slices.BinarySearchFunc(pts, x, func(p CurvePoint, x float32) int { return cmp.Compare(p.X, x) })
	// pts[i-1].X < x <= pts[i].X
	a, b := pts[i-1], pts[i]
	if b.X == a.X {
		return b.Y
	}
	t := (x - a.X) / (b.X - a.X)
	return a.Y + t*(b.Y-a.Y)
}

func applyChange[T any](dst *T, v T, onChange func(T) error) error {
	if onChange != nil {
		if err := onChange(v); err != nil {
			return err
		}
	}
	*dst = v
	return nil
}
