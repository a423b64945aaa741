package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/ironsheep/grayscale-mcp/internal/grayscale"
	"github.com/ironsheep/grayscale-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "grayscale_convert_to_gray").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// ToolErrorData is the error data attached to a failed conversion.
//
// Kind is "empty_image", "ragged_rows" or "invalid_pixel". Row and Column
// locate the failure when known; Column is -1 for a row width mismatch.
type ToolErrorData struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Row     *int   `json:"row,omitempty"`
	Column  *int   `json:"column,omitempty"`
}

// argumentError marks failures caused by malformed tool arguments, which are
// reported as invalid params rather than tool failures.
type argumentError struct {
	err error
}

func (e *argumentError) Error() string { return "invalid arguments: " + e.err.Error() }
func (e *argumentError) Unwrap() error { return e.err }

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Malformed arguments return -32602. Tool execution errors return -32000;
// image validation failures carry a ToolErrorData so the client can tell the
// three failure kinds apart.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	if s.debug {
		s.logger.Printf("tool %s finished in %v (err=%v)", params.Name, time.Since(start), err)
	}
	if err != nil {
		var argErr *argumentError
		if errors.As(err, &argErr) {
			return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
		}
		if kind := grayscale.Code(err); kind != "" {
			return s.errorResponse(req.ID, -32000, "Tool execution failed", toolErrorData(kind, err))
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "grayscale_convert_to_gray", "grayscale_to_gray":
		return s.handleConvert(args)
	case "grayscale_validate":
		return s.handleValidate(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message string, data interface{}) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

func toolErrorData(kind string, err error) ToolErrorData {
	data := ToolErrorData{Kind: kind, Message: err.Error()}
	var verr *grayscale.ValidationError
	if errors.As(err, &verr) {
		row, col := verr.Row, verr.Column
		data.Row = &row
		data.Column = &col
	}
	return data
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals and validates tool arguments into dst.
func (s *Server) decodeArgs(args json.RawMessage, dst interface{}) error {
	if err := json.Unmarshal(args, dst); err != nil {
		return &argumentError{err: err}
	}
	if err := s.validate.Struct(dst); err != nil {
		return &argumentError{err: err}
	}
	return nil
}

// === Conversion Handlers ===

type convertArgs struct {
	Image  grayscale.RGBImage `json:"image" validate:"required_without=Pixels"`
	Pixels *pixelBuffer       `json:"pixels"`
	Output string             `json:"output" validate:"omitempty,oneof=float uint8"`
	Range  string             `json:"range" validate:"omitempty,oneof=byte unit"`
}

// pixelBuffer is a raw raster of non-premultiplied 8-bit RGBA pixels, row
// by row with no padding. RGBA is base64 in JSON.
type pixelBuffer struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	RGBA   []byte `json:"rgba"`
}

// toImage wraps the buffer as an *image.NRGBA without copying.
func (p *pixelBuffer) toImage() (*image.NRGBA, error) {
	if p.Width < 0 || p.Height < 0 || p.Width > maxPixelSide || p.Height > maxPixelSide {
		return nil, fmt.Errorf("pixels: dimensions %dx%d out of range", p.Width, p.Height)
	}
	if want := p.Width * p.Height * 4; len(p.RGBA) != want {
		return nil, fmt.Errorf("pixels: got %d bytes, want %d for %dx%d RGBA", len(p.RGBA), want, p.Width, p.Height)
	}
	return &image.NRGBA{
		Pix:    p.RGBA,
		Stride: 4 * p.Width,
		Rect:   image.Rect(0, 0, p.Width, p.Height),
	}, nil
}

const maxPixelSide = 1 << 16

// ConvertResult is returned by the conversion tools.
//
// Gray holds float64 intensities for output "float" and integers 0-255 for
// output "uint8".
type ConvertResult struct {
	Height int         `json:"height"`
	Width  int         `json:"width"`
	Output string      `json:"output"`
	Gray   interface{} `json:"gray"`
}

func (s *Server) handleConvert(args json.RawMessage) (interface{}, error) {
	var a convertArgs
	if err := s.decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Image != nil && a.Pixels != nil {
		return nil, &argumentError{err: errors.New("image and pixels are mutually exclusive")}
	}
	if a.Output == "" {
		a.Output = "float"
	}
	rng, err := imaging.ParseChannelRange(a.Range)
	if err != nil {
		return nil, &argumentError{err: err}
	}

	src := a.Image
	if a.Pixels != nil {
		img, err := a.Pixels.toImage()
		if err != nil {
			return nil, &argumentError{err: err}
		}
		if a.Output == "uint8" {
			g, err := imaging.Grayscale(img, rng)
			if err != nil {
				return nil, err
			}
			levels := grayLevels(g)
			return &ConvertResult{Height: len(levels), Width: g.Bounds().Dx(), Output: a.Output, Gray: levels}, nil
		}
		src = imaging.FromImage(img, rng)
	}

	gray, err := grayscale.Convert(src)
	if err != nil {
		return nil, err
	}

	result := &ConvertResult{
		Height: gray.Height(),
		Width:  gray.Width(),
		Output: a.Output,
		Gray:   gray,
	}
	if a.Output == "float" {
		return result, nil
	}

	img, err := imaging.ToGrayImage(gray, rng)
	if err != nil {
		return nil, err
	}
	result.Gray = grayLevels(img)
	return result, nil
}

// grayLevels copies an 8-bit image into [row][column] integers.
func grayLevels(img *image.Gray) [][]int {
	b := img.Bounds()
	levels := make([][]int, b.Dy())
	for y := range levels {
		row := make([]int, b.Dx())
		for x := range row {
			row[x] = int(img.GrayAt(b.Min.X+x, b.Min.Y+y).Y)
		}
		levels[y] = row
	}
	return levels
}

type validateArgs struct {
	Image grayscale.RGBImage `json:"image" validate:"required"`
}

// ValidateResult is returned by grayscale_validate for a well-formed image.
type ValidateResult struct {
	Valid  bool `json:"valid"`
	Height int  `json:"height"`
	Width  int  `json:"width"`
}

func (s *Server) handleValidate(args json.RawMessage) (interface{}, error) {
	var a validateArgs
	if err := s.decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := grayscale.Validate(a.Image); err != nil {
		return nil, err
	}
	return &ValidateResult{Valid: true, Height: a.Image.Height(), Width: a.Image.Width()}, nil
}
