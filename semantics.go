package pixview

// PixelFormat describes how the channels of a pixel are to be interpreted.
type PixelFormat uint8

const (
	PixelFormatUnknown PixelFormat = iota // unknown
	PixelFormatY                          // Y
	PixelFormatX                          // X
	PixelFormatYA                         // YA
	PixelFormatXX                         // XX
	PixelFormatRGB                        // RGB
	PixelFormatBGR                        // BGR
	PixelFormatYCbCr                      // YCbCr
	PixelFormatCIELab                     // CIELab
	PixelFormatICCLab                     // ICCLab
	PixelFormatXXX                        // XXX
	PixelFormatRGBA                       // RGBA
	PixelFormatBGRA                       // BGRA
	PixelFormatARGB                       // ARGB
	PixelFormatABGR                       // ABGR
	PixelFormatXXXX                       // XXXX
	PixelFormatCMYK                       // CMYK
	PixelFormatYCCK                       // YCCK
	pixelFormatCount
)

var pixelFormatNames = [pixelFormatCount]string{
	"unknown", "Y", "X", "YA", "XX", "RGB", "BGR", "YCbCr", "CIELab", "ICCLab",
	"XXX", "RGBA", "BGRA", "ARGB", "ABGR", "XXXX", "CMYK", "YCCK",
}

func (pf PixelFormat) String() string {
	if pf >= pixelFormatCount {
		return pixelFormatNames[PixelFormatUnknown]
	}
	return pixelFormatNames[pf]
}

// Channels returns the number of channels the pixel format implies, or 0 if unknown.
func (pf PixelFormat) Channels() int16 {
	switch pf {
	case PixelFormatY, PixelFormatX:
		return 1
	case PixelFormatYA, PixelFormatXX:
		return 2
	case PixelFormatRGB, PixelFormatBGR, PixelFormatYCbCr, PixelFormatCIELab, PixelFormatICCLab, PixelFormatXXX:
		return 3
	case PixelFormatRGBA, PixelFormatBGRA, PixelFormatARGB, PixelFormatABGR, PixelFormatXXXX, PixelFormatCMYK, PixelFormatYCCK:
		return 4
	}
	return 0
}

// SampleFormat describes the numeric representation of a channel value.
type SampleFormat uint8

const (
	SampleFormatUnknown         SampleFormat = iota // unknown
	SampleFormatUnsignedInteger                     // uint
	SampleFormatSignedInteger                       // int
	SampleFormatFloatingPoint                       // float
)

func (sf SampleFormat) String() string {
	switch sf {
	case SampleFormatUnsignedInteger:
		return "uint"
	case SampleFormatSignedInteger:
		return "int"
	case SampleFormatFloatingPoint:
		return "float"
	}
	return "unknown"
}

// Semantics pairs a pixel format with a sample format. It is kept apart from [Layout]
// so the bytes of a view can be reinterpreted without touching its geometry.
// The zero value has both formats unknown.
type Semantics struct {
	PixelFormat  PixelFormat
	SampleFormat SampleFormat
}

// NewSemantics returns the semantics for the given formats.
func NewSemantics(pf PixelFormat, sf SampleFormat) Semantics {
	return Semantics{PixelFormat: pf, SampleFormat: sf}
}

// Equal reports whether both formats match.
func (s Semantics) Equal(other Semantics) bool { return s == other }
