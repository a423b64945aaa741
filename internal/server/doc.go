// Package server implements the MCP (Model Context Protocol) server that exposes
// grayscale conversion to MCP clients.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - grayscale_convert_to_gray: Convert an RGB image to grayscale
//   - grayscale_to_gray: Alias of grayscale_convert_to_gray
//   - grayscale_validate: Check image shape without converting
//
// Images are passed inline as nested JSON arrays indexed [row][column][channel],
// or to the conversion tools as "pixels": a base64 raster of 8-bit RGBA with
// its width and height. Results are returned as [row][column] arrays of float64 intensities, or of
// 0-255 integers when the "output" argument is "uint8".
//
// # Error Handling
//
// Errors are returned as JSON-RPC error responses:
//   - -32600: request line longer than Config.MaxRequestBytes (id is null;
//     the line is skipped and the session continues)
//   - -32602: malformed params or tool arguments (including a missing image)
//   - -32601: unknown method
//   - -32000: tool execution failure
//
// When a tool fails because the image is malformed, the error data is a
// ToolErrorData whose kind is one of "empty_image", "ragged_rows" or
// "invalid_pixel". Other -32000 errors carry the Go error string.
//
// # Usage
//
//	srv := server.NewWithConfig(server.Config{Version: "1.0.0"})
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
