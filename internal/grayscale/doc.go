// Package grayscale converts RGB images held as nested float64 slices into
// single-channel grayscale images.
//
// The conversion uses the ITU-R BT.601 luma weights:
//
//	gray = 0.299*R + 0.587*G + 0.114*B
//
// Channel values are not range checked. Inputs in [0,255] produce outputs in
// [0,255] and inputs in [0,1] produce outputs in [0,1]. The result is neither
// clamped nor rounded.
//
// # Shape Rules
//
// An RGBImage is indexed as image[row][column][channel]. It is valid when:
//   - it has at least one row
//   - every row has the same width as row 0
//   - every pixel has exactly three channel values
//
// Validate scans rows top to bottom. For each row it checks the width first
// and then the pixels left to right. The first violation found is returned,
// so error reports are deterministic for a given input.
//
// # Error Handling
//
// Failures match one of three sentinels with errors.Is:
//   - ErrEmptyImage: the image has no rows
//   - ErrRaggedRows: a row's width differs from row 0
//   - ErrInvalidPixel: a pixel does not hold exactly three values
//
// Row and pixel failures are returned as *ValidationError. It carries the
// offending position.
//
// # Thread Safety
//
// All functions are pure. They keep no state between calls and never modify
// their input, so they may be called concurrently on any inputs.
package grayscale
