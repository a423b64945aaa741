package grayscale

// Luma weights (ITU-R BT.601).
const (
	RedWeight   = 0.299
	GreenWeight = 0.587
	BlueWeight  = 0.114
)

// Channels is the number of values every pixel must carry.
const Channels = 3

// RGBImage is an image indexed as [row][column][channel] with channels in
// red, green, blue order.
//
// The nested slices may be ragged. Validate decides whether the shape is
// usable.
type RGBImage [][][]float64

// Height returns the number of rows.
func (img RGBImage) Height() int { return len(img) }

// Width returns the length of the first row, or 0 for an empty image.
func (img RGBImage) Width() int {
	if len(img) == 0 {
		return 0
	}
	return len(img[0])
}

// GrayImage is a single-channel image indexed as [row][column].
type GrayImage [][]float64

// Height returns the number of rows.
func (g GrayImage) Height() int { return len(g) }

// Width returns the length of the first row, or 0 for an empty image.
func (g GrayImage) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Validate checks that img is non-empty, rectangular, and made of
// three-channel pixels.
//
// Rows are scanned top to bottom. Each row's width is checked before its
// pixels, and pixels are checked left to right. The first violation wins.
func Validate(img RGBImage) error {
	if len(img) == 0 {
		return ErrEmptyImage
	}

	width := len(img[0])
	for i, row := range img {
		if len(row) != width {
			return &ValidationError{Kind: ErrRaggedRows, Row: i, Column: -1, Got: len(row), Want: width}
		}
		for j, px := range row {
			if len(px) != Channels {
				return &ValidationError{Kind: ErrInvalidPixel, Row: i, Column: j, Got: len(px), Want: Channels}
			}
		}
	}
	return nil
}

// Convert validates img and returns a new grayscale image of the same
// height and width.
//
// Each output cell is RedWeight*R + GreenWeight*G + BlueWeight*B evaluated
// in float64, left to right. Values are not clamped or rounded. On a
// validation error the returned image is nil. img is never modified.
func Convert(img RGBImage) (GrayImage, error) {
	if err := Validate(img); err != nil {
		return nil, err
	}

	height, width := img.Height(), img.Width()
	gray := make(GrayImage, height)
	for i, row := range img {
		out := make([]float64, width)
		for j, px := range row {
			out[j] = luma(px[0], px[1], px[2])
		}
		gray[i] = out
	}
	return gray, nil
}

// luma is the weighted sum for one pixel. The float64 conversions round each
// product, which keeps the compiler from fusing multiply-adds and makes the
// result identical on every architecture.
func luma(r, g, b float64) float64 {
	return float64(RedWeight*r) + float64(GreenWeight*g) + float64(BlueWeight*b)
}

// ToGray is an alias for Convert.
func ToGray(img RGBImage) (GrayImage, error) {
	return Convert(img)
}
