package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// imageSchema describes an RGB image as nested arrays: rows of pixels of
// [R, G, B] values.
func imageSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "array",
		"items": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type":  "array",
				"items": map[string]interface{}{"type": "number"},
			},
		},
		"description": "RGB image as [height][width][3]. Every row must have the same width and every pixel exactly 3 values (R, G, B) in 0-255 or 0-1.",
	}
}

// pixelsSchema describes a raw RGBA raster, the form most Go and browser
// hosts already hold decoded images in.
func pixelsSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"width":  map[string]interface{}{"type": "integer", "minimum": 0},
			"height": map[string]interface{}{"type": "integer", "minimum": 0},
			"rgba": map[string]interface{}{
				"type":            "string",
				"contentEncoding": "base64",
				"description":     "width*height*4 bytes of non-premultiplied RGBA, row by row. Alpha is ignored.",
			},
		},
		"required":    []string{"width", "height", "rgba"},
		"description": "Raw 8-bit pixels, as an alternative to 'image'. Channels are read in the given 'range'.",
	}
}

func convertSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"image":  imageSchema(),
			"pixels": pixelsSchema(),
			"output": map[string]interface{}{
				"type":        "string",
				"enum":        []string{"float", "uint8"},
				"description": "Output format. 'float' returns unrounded intensities (default). 'uint8' rounds and clamps to 0-255.",
				"default":     "float",
			},
			"range": map[string]interface{}{
				"type":        "string",
				"enum":        []string{"byte", "unit"},
				"description": "Channel convention of the input, used only with output 'uint8'. 'byte' for 0-255 (default), 'unit' for 0-1.",
				"default":     "byte",
			},
		},
		"oneOf": []map[string]interface{}{
			{"required": []string{"image"}},
			{"required": []string{"pixels"}},
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "grayscale_convert_to_gray",
			Description: "Convert an RGB image to grayscale using Gray = 0.299*R + 0.587*G + 0.114*B. Returns a [height][width] array with the same dimensions as the input.",
			InputSchema: convertSchema(),
		},
		{
			Name:        "grayscale_to_gray",
			Description: "Convert RGB to grayscale. Alias of grayscale_convert_to_gray.",
			InputSchema: convertSchema(),
		},
		{
			Name:        "grayscale_validate",
			Description: "Check that an RGB image is non-empty, rectangular and has exactly 3 values per pixel, without converting it.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image": imageSchema(),
				},
				"required": []string{"image"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
