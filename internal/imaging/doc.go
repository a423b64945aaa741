// Package imaging bridges Go image.Image values and the nested slice
// representation used by package grayscale.
//
// Go hosts that already hold a decoded image can convert it with FromImage,
// run grayscale.Convert, and quantize the result back into an *image.Gray
// with ToGrayImage. Grayscale does all three steps.
//
// # Coordinate System
//
// Row 0 and column 0 of the nested slices correspond to bounds.Min of the
// source image. Results from ToGrayImage always start at (0,0).
//
// # Channel Ranges
//
// ChannelRange selects the numeric convention on both sides:
//   - RangeByte: channels and intensities in [0,255]
//   - RangeUnit: channels and intensities in [0,1]
//
// Alpha is not carried. Channels are un-premultiplied before conversion, so
// a semi-transparent pixel reports its own color, not a color blended with
// black.
//
// # Thread Safety
//
// All functions are stateless and can be called concurrently on different
// images.
package imaging
