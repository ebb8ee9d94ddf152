package pixview

// Addressing errors returned by the checked view accessors.
// Buffers too short for the addressed bytes report [io.ErrShortBuffer].
const (
	ErrOutOfRange   = errorString("pixview: index out of range")
	ErrSizeMismatch = errorString("pixview: pixel type size does not match layout")
)

type errorString string

func (e errorString) Error() string { return string(e) }
