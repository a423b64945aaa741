package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/grayscale-mcp/internal/grayscale"
)

// ChannelRange selects the numeric convention used for channel and
// intensity values when moving between image.Image and the nested slice
// representation.
type ChannelRange int

const (
	// RangeByte maps 8-bit channels to values in [0,255].
	RangeByte ChannelRange = iota
	// RangeUnit maps channels to values in [0,1].
	RangeUnit
)

// String returns "byte" or "unit".
func (r ChannelRange) String() string {
	switch r {
	case RangeByte:
		return "byte"
	case RangeUnit:
		return "unit"
	default:
		return fmt.Sprintf("ChannelRange(%d)", int(r))
	}
}

// ParseChannelRange accepts "byte" (or "255") and "unit" (or "1").
func ParseChannelRange(s string) (ChannelRange, error) {
	switch s {
	case "byte", "255", "":
		return RangeByte, nil
	case "unit", "1":
		return RangeUnit, nil
	default:
		return 0, fmt.Errorf("unknown channel range: %q", s)
	}
}

// FromImage copies the color channels of img into an RGBImage.
//
// Parameters:
//   - img: Any image. Its bounds need not start at (0,0); row 0 of the result
//     is bounds.Min.Y.
//   - rng: RangeByte yields un-premultiplied 8-bit values as float64 in
//     [0,255]. RangeUnit yields un-premultiplied values in [0,1] at 16-bit
//     precision.
//
// Alpha is discarded. Fully transparent pixels come out black. An image with
// empty bounds yields an empty RGBImage, which grayscale.Convert rejects with
// grayscale.ErrEmptyImage.
func FromImage(img image.Image, rng ChannelRange) grayscale.RGBImage {
	bounds := img.Bounds()
	if bounds.Empty() {
		return grayscale.RGBImage{}
	}
	width, height := bounds.Dx(), bounds.Dy()
	out := make(grayscale.RGBImage, height)

	if rng == RangeUnit {
		for y := 0; y < height; y++ {
			row := make([][]float64, width)
			for x := 0; x < width; x++ {
				c, _ := colorful.MakeColor(img.At(x+bounds.Min.X, y+bounds.Min.Y))
				row[x] = []float64{c.R, c.G, c.B}
			}
			out[y] = row
		}
		return out
	}

	// Clone normalizes to a zero-origin NRGBA so Pix can be read directly.
	src := imaging.Clone(img)
	for y := 0; y < height; y++ {
		row := make([][]float64, width)
		i := y * src.Stride
		for x := 0; x < width; x++ {
			row[x] = []float64{
				float64(src.Pix[i+0]),
				float64(src.Pix[i+1]),
				float64(src.Pix[i+2]),
			}
			i += 4
		}
		out[y] = row
	}
	return out
}

// ToGrayImage quantizes a grayscale result into an 8-bit *image.Gray with
// bounds (0,0)-(width,height).
//
// Values are interpreted according to rng (RangeUnit values are scaled by
// 255 first), rounded half up and clamped to [0,255]. NaN becomes 0.
//
// An empty or ragged g fails with grayscale.ErrEmptyImage or
// grayscale.ErrRaggedRows.
func ToGrayImage(g grayscale.GrayImage, rng ChannelRange) (*image.Gray, error) {
	if len(g) == 0 {
		return nil, grayscale.ErrEmptyImage
	}
	width := len(g[0])
	for i, row := range g {
		if len(row) != width {
			return nil, &grayscale.ValidationError{
				Kind: grayscale.ErrRaggedRows, Row: i, Column: -1, Got: len(row), Want: width,
			}
		}
	}

	dst := image.NewGray(image.Rect(0, 0, width, len(g)))
	for y, row := range g {
		for x, v := range row {
			if rng == RangeUnit {
				v *= 255
			}
			dst.SetGray(x, y, color.Gray{Y: quantize(v)})
		}
	}
	return dst, nil
}

// Grayscale converts img to an 8-bit grayscale image using the BT.601
// weights from package grayscale.
//
// The image is converted through the nested slice representation in the
// given range, so the result matches what a host supplying the same pixel
// data would get from grayscale.Convert followed by ToGrayImage.
func Grayscale(img image.Image, rng ChannelRange) (*image.Gray, error) {
	gray, err := grayscale.Convert(FromImage(img, rng))
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	return ToGrayImage(gray, rng)
}

// quantize rounds half up and clamps to the 8-bit range.
func quantize(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Floor(v + 0.5))
}
