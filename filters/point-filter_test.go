package filters

import (
	"bytes"
	"errors"
	"image"
	"math/rand"
	"testing"

	"github.com/soypat/pixview"
)

// randomView returns a view of random pixels with the given layout.
func randomView(rng *rand.Rand, l pixview.Layout, pf pixview.PixelFormat) pixview.MutableView {
	buf := make([]byte, l.TotalBytes())
	rng.Read(buf)
	return pixview.NewMutableViewSemantics(pixview.Mutable(buf), l,
		pixview.NewSemantics(pf, pixview.SampleFormatUnsignedInteger))
}

func TestInvertPadded(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	srcLayout := pixview.NewLayoutStride(5, 4, 4, 1, 24)
	src := randomView(rng, srcLayout, pixview.PixelFormatRGBA)
	cv := src.ConstView()

	f := NewInvertedPerPixel()
	dst := make([]byte, 5*4*4)
	out, err := f.Process(dst, &cv, nil)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if out != pixview.NewLayout(5, 4, 4, 1) {
		t.Fatalf("output layout = %v, want packed 5x4 RGBA", out)
	}
	res := pixview.NewConstView(pixview.Constant(dst), out)
	for y := range 4 {
		for x := range 5 {
			s, _ := src.Pixel(x, y)
			d, _ := res.Pixel(x, y)
			for c := range 3 {
				if d.At(c) != 255-s[c] {
					t.Errorf("pixel (%d,%d) channel %d: got %d, want %d", x, y, c, d.At(c), 255-s[c])
				}
			}
			if d.At(3) != s[3] {
				t.Errorf("pixel (%d,%d) alpha changed: got %d, want %d", x, y, d.At(3), s[3])
			}
		}
	}
}

func TestInvertInPlaceTwice(t *testing.T) {
	rng := rand.New(rand.NewSource(999))
	v := randomView(rng, pixview.NewLayoutStride(3, 3, 4, 1, 16), pixview.PixelFormatRGBA)
	orig := bytes.Clone(v.Bytes())

	f := NewInvertedPerPixel()
	for range 2 {
		out, err := f.Process(nil, &v, nil)
		if err != nil {
			t.Fatalf("in-place Process: %v", err)
		}
		if out != v.Layout() {
			t.Fatalf("in-place output layout %v, want source layout %v", out, v.Layout())
		}
	}
	for y := range 3 {
		got, _ := v.Row(y)
		want := orig[16*y : 16*y+12]
		if !bytes.Equal(got, want) {
			t.Errorf("row %d = %v, want %v", y, got, want)
		}
	}
}

func TestGrayscaleROI(t *testing.T) {
	l := pixview.NewLayout(4, 3, 3, 1)
	buf := make([]byte, l.TotalBytes())
	src := pixview.NewMutableViewSemantics(pixview.Mutable(buf), l,
		pixview.NewSemantics(pixview.PixelFormatRGB, pixview.SampleFormatUnsignedInteger))
	for y := range 3 {
		for x := range 4 {
			px, _ := src.Pixel(x, y)
			px[0], px[1], px[2] = byte(10*x), byte(20*y), 30
		}
	}

	tests := []struct {
		mode GrayscaleMode
		want func(r, g, b uint32) byte
	}{
		{GrayscaleAverage, func(r, g, b uint32) byte { return byte((r + g + b) / 3) }},
		{GrayscaleLuminance, func(r, g, b uint32) byte { return byte((77*r + 150*g + 29*b) >> 8) }},
	}
	roi := image.Rect(1, 1, 4, 3)
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			f := NewGrayscalePerPixel(tt.mode)
			dst := make([]byte, roi.Dx()*roi.Dy())
			out, err := f.Process(dst, &src, &roi)
			if err != nil {
				t.Fatalf("Process: %v", err)
			}
			if out.Channels != 1 || out.Width != 3 || out.Height != 2 {
				t.Fatalf("output layout %v, want 3x2 single channel", out)
			}
			for y := range 2 {
				for x := range 3 {
					sx, sy := x+roi.Min.X, y+roi.Min.Y
					want := tt.want(uint32(10*sx), uint32(20*sy), 30)
					if got := dst[y*3+x]; got != want {
						t.Errorf("(%d,%d) = %d, want %d", x, y, got, want)
					}
				}
			}
		})
	}
}

func TestGrayscaleModeControl(t *testing.T) {
	f := NewGrayscalePerPixel(GrayscaleLuminance)
	ctrls := f.Controls()
	if len(ctrls) != 1 {
		t.Fatalf("got %d controls, want 1", len(ctrls))
	}
	if err := ctrls[0].ChangeValue(GrayscaleLightness); err != nil {
		t.Fatal(err)
	}
	if ctrls[0].ActualValue() != GrayscaleLightness {
		t.Errorf("ActualValue = %v, want Lightness", ctrls[0].ActualValue())
	}
	if err := ctrls[0].ChangeValue(GrayscaleMode(42)); err == nil {
		t.Error("expected error for invalid mode")
	}

	l := pixview.NewLayout(1, 1, 3, 1)
	src := pixview.NewConstView(pixview.Constant([]byte{10, 200, 50}), l)
	dst := make([]byte, 1)
	if _, err := f.Process(dst, &src, nil); err != nil {
		t.Fatal(err)
	}
	if dst[0] != (10+200)/2 {
		t.Errorf("lightness = %d, want %d", dst[0], (10+200)/2)
	}
}

func TestCurves(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	v := randomView(rng, pixview.NewLayout(6, 2, 4, 1), pixview.PixelFormatRGBA)
	cv := v.ConstView()

	identity, err := NewCurves([]pixview.CurvePoint{{X: 0, Y: 0}, {X: 1, Y: 1}})
	if err != nil {
		t.Fatal(err)
	}
	dst := make([]byte, v.TotalBytes())
	if _, err := identity.Process(dst, &cv, nil); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(dst, v.Bytes()) {
		t.Error("identity curve changed pixels")
	}

	// Flipping the curve through its control must match the invert filter.
	ctrl := identity.Controls()[0]
	if err := ctrl.ChangeValue([]pixview.CurvePoint{{X: 1, Y: 0}, {X: 0, Y: 1}}); err != nil {
		t.Fatal(err)
	}
	if _, err := identity.Process(dst, &cv, nil); err != nil {
		t.Fatal(err)
	}
	want := make([]byte, len(dst))
	if _, err := NewInvertedPerPixel().Process(want, &cv, nil); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(dst, want) {
		t.Error("inverted curve does not match invert filter")
	}

	if _, err := NewCurves([]pixview.CurvePoint{{X: 2, Y: 0}}); err == nil {
		t.Error("expected error for out of range curve point")
	}
}

func TestCurvesStrength(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	v := randomView(rng, pixview.NewLayout(8, 3, 4, 1), pixview.PixelFormatRGBA)
	cv := v.ConstView()
	f, err := NewCurves([]pixview.CurvePoint{{X: 0, Y: 1}, {X: 1, Y: 0}})
	if err != nil {
		t.Fatal(err)
	}
	ctrls := f.Controls()
	if len(ctrls) != 2 {
		t.Fatalf("got %d controls, want 2", len(ctrls))
	}
	if name, _ := ctrls[1].Describe(); name != "Strength" || ctrls[1].ActualValue() != float32(1) {
		t.Fatalf("second control %q = %v, want Strength 1", name, ctrls[1].ActualValue())
	}

	tests := []struct {
		strength float32
		want     func(s byte) byte
	}{
		{0, func(s byte) byte { return s }},
		{0.5, func(byte) byte { return 128 }},
		{1, func(s byte) byte { return 255 - s }},
	}
	dst := make([]byte, v.TotalBytes())
	for _, tt := range tests {
		if err := ctrls[1].ChangeValue(tt.strength); err != nil {
			t.Fatalf("strength %v: %v", tt.strength, err)
		}
		if _, err := f.Process(dst, &cv, nil); err != nil {
			t.Fatal(err)
		}
		src := v.Bytes()
		for i := range dst {
			want := tt.want(src[i])
			if i%4 == 3 {
				want = src[i]
			}
			if dst[i] != want {
				t.Errorf("strength %v: byte %d = %d from %d, want %d", tt.strength, i, dst[i], src[i], want)
				break
			}
		}
	}

	// Changing the curve keeps the current strength.
	if err := ctrls[1].ChangeValue(float32(0)); err != nil {
		t.Fatal(err)
	}
	if err := ctrls[0].ChangeValue([]pixview.CurvePoint{{X: 0, Y: 0.5}, {X: 1, Y: 0.5}}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.Process(dst, &cv, nil); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(dst, v.Bytes()) {
		t.Error("zero strength changed pixels after curve change")
	}

	for _, bad := range []any{float32(-0.1), float32(1.5), 0.5} {
		if err := ctrls[1].ChangeValue(bad); err == nil {
			t.Errorf("ChangeValue(%v) succeeded", bad)
		}
	}
}

func TestProcessErrors(t *testing.T) {
	rgb := pixview.NewLayout(2, 2, 3, 1)
	rgbView := pixview.NewConstView(pixview.Constant(make([]byte, rgb.TotalBytes())), rgb)
	rgbaLayout := pixview.NewLayout(2, 2, 4, 1)
	rgbaConst := pixview.NewConstView(pixview.Constant(make([]byte, rgbaLayout.TotalBytes())), rgbaLayout)
	badROI := image.Rect(0, 0, 3, 1)

	tests := []struct {
		name string
		f    *PointFilter
		dst  []byte
		src  pixview.Image
		roi  *image.Rectangle
	}{
		{"channel mismatch", NewInvertedPerPixel(), make([]byte, 16), &rgbView, nil},
		{"nil func", &PointFilter{In: pixview.PixelFormatRGB, Out: pixview.PixelFormatRGB}, make([]byte, 12), &rgbView, nil},
		{"in-place on unbuffered", NewInvertedPerPixel(), nil, &rgbaConst, nil},
		{"roi out of bounds", NewInvertedPerPixel(), make([]byte, 16), &rgbaConst, &badROI},
		{"short dst", NewInvertedPerPixel(), make([]byte, 4), &rgbaConst, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.f.Process(tt.dst, tt.src, tt.roi); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestProcessAliasedChannelChange(t *testing.T) {
	rgba := pixview.NewLayout(2, 1, 4, 1)
	rgb := pixview.NewLayout(2, 2, 3, 1)
	tests := []struct {
		name string
		f    *PointFilter
		l    pixview.Layout
		pf   pixview.PixelFormat
	}{
		{"strip alpha", NewStripAlpha(), rgba, pixview.PixelFormatRGBA},
		{"grayscale", NewGrayscalePerPixel(GrayscaleAverage), rgb, pixview.PixelFormatRGB},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, tt.l.TotalBytes())
			for i := range buf {
				buf[i] = byte(i + 1)
			}
			orig := bytes.Clone(buf)
			src := pixview.NewMutableViewSemantics(pixview.Mutable(buf), tt.l,
				pixview.NewSemantics(tt.pf, pixview.SampleFormatUnsignedInteger))
			if _, err := tt.f.Process(buf, &src, nil); !errors.Is(err, errAliasedDestination) {
				t.Errorf("Process into source buffer error = %v, want errAliasedDestination", err)
			}
			if _, err := tt.f.Process(nil, &src, nil); err == nil {
				t.Error("in-place Process with channel change succeeded")
			}
			if !bytes.Equal(buf, orig) {
				t.Errorf("source modified: %v, want %v", buf, orig)
			}
		})
	}
}

func TestStripAlphaThenGrayscale(t *testing.T) {
	l := pixview.NewLayoutStride(2, 2, 4, 1, 12)
	buf := make([]byte, l.TotalBytes())
	copy(buf, []byte{10, 20, 30, 255, 40, 50, 60, 0, 0xee, 0xee, 0xee, 0xee})
	copy(buf[12:], []byte{90, 90, 90, 1, 255, 0, 0, 128})
	src := pixview.NewMutableViewSemantics(pixview.Mutable(buf), l,
		pixview.NewSemantics(pixview.PixelFormatRGBA, pixview.SampleFormatUnsignedInteger))

	rgb := make([]byte, 2*2*3)
	rgbLayout, err := NewStripAlpha().Process(rgb, &src, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{10, 20, 30, 40, 50, 60, 90, 90, 90, 255, 0, 0}
	if !bytes.Equal(rgb, want) {
		t.Fatalf("stripped = %v, want %v", rgb, want)
	}
	rgbView := pixview.NewConstViewSemantics(pixview.Constant(rgb), rgbLayout,
		pixview.NewSemantics(pixview.PixelFormatRGB, pixview.SampleFormatUnsignedInteger))
	gray := make([]byte, 4)
	if _, err := NewGrayscalePerPixel(GrayscaleAverage).Process(gray, &rgbView, nil); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(gray, []byte{20, 50, 90, 85}) {
		t.Errorf("gray = %v", gray)
	}
}
