package grayscale

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyImage   = errors.New("image is empty")
	ErrRaggedRows   = errors.New("all rows must have same width")
	ErrInvalidPixel = errors.New("each pixel must have exactly 3 values (RGB)")
)

// ValidationError reports where an image failed validation.
//
// Kind is one of ErrRaggedRows or ErrInvalidPixel. For row failures Column is
// -1 and Got/Want are row widths. For pixel failures Got is the channel count
// of the offending pixel and Want is always 3.
type ValidationError struct {
	Kind   error
	Row    int
	Column int
	Got    int
	Want   int
}

func (e *ValidationError) Error() string {
	if e.Column < 0 {
		return fmt.Sprintf("row %d has width %d, want %d: %v", e.Row, e.Got, e.Want, e.Kind)
	}
	return fmt.Sprintf("pixel (%d,%d) has %d values, want %d: %v", e.Row, e.Column, e.Got, e.Want, e.Kind)
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// Code returns a stable identifier for the kind of err, suitable for wire
// formats: "empty_image", "ragged_rows", "invalid_pixel", or "" if err is not
// a validation failure.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrEmptyImage):
		return "empty_image"
	case errors.Is(err, ErrRaggedRows):
		return "ragged_rows"
	case errors.Is(err, ErrInvalidPixel):
		return "invalid_pixel"
	default:
		return ""
	}
}
