package server

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
)

// DefaultMaxRequestBytes bounds a single JSON-RPC line. Images travel as
// nested JSON arrays, so this is well above a typical MCP request.
const DefaultMaxRequestBytes = 8 * 1024 * 1024

// DefaultVersion is reported in serverInfo when Config.Version is empty.
const DefaultVersion = "0.1.0"

// Config controls a Server. The zero value is usable.
type Config struct {
	// Version is reported to clients during initialize.
	Version string

	// MaxRequestBytes is the largest request line accepted.
	MaxRequestBytes int

	// Debug enables per-call logging.
	Debug bool

	// Logger receives diagnostics. Defaults to the standard logger.
	Logger *log.Logger
}

// Server handles MCP protocol communication
type Server struct {
	validate        *validator.Validate
	logger          *log.Logger
	version         string
	maxRequestBytes int
	debug           bool
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a new MCP server instance with default settings
func New() *Server {
	return NewWithConfig(Config{})
}

// NewWithConfig creates a server, filling unset fields of cfg with defaults.
func NewWithConfig(cfg Config) *Server {
	if cfg.Version == "" {
		cfg.Version = DefaultVersion
	}
	if cfg.MaxRequestBytes <= 0 {
		cfg.MaxRequestBytes = DefaultMaxRequestBytes
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	return &Server{
		validate:        validator.New(validator.WithRequiredStructEnabled()),
		logger:          cfg.Logger,
		version:         cfg.Version,
		maxRequestBytes: cfg.MaxRequestBytes,
		debug:           cfg.Debug,
	}
}

// Run starts the MCP server, reading from stdin and writing to stdout
func (s *Server) Run(ctx context.Context) error {
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve reads one JSON-RPC request per line from r and writes responses to w.
//
// It returns nil at end of input and ctx.Err() once ctx is cancelled. The
// context is checked between requests; a blocked read is not interrupted.
// A line longer than MaxRequestBytes is answered with -32600 and skipped.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	reader := bufio.NewReaderSize(r, 64*1024)
	encoder := json.NewEncoder(w)

	for {
		line, tooLarge, err := s.readLine(reader)
		if err == io.EOF {
			return ctx.Err()
		}
		if err != nil {
			return fmt.Errorf("read error: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		var resp *MCPResponse
		switch {
		case tooLarge:
			s.logger.Printf("Rejected request over %d bytes", s.maxRequestBytes)
			resp = s.errorResponse(nil, -32600, "Invalid Request",
				fmt.Sprintf("request exceeds %d bytes", s.maxRequestBytes))
		case len(line) == 0:
			continue
		default:
			var req MCPRequest
			if err := json.Unmarshal(line, &req); err != nil {
				s.logger.Printf("Failed to parse request: %v", err)
				continue
			}
			resp = s.handleRequest(&req)
		}

		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				s.logger.Printf("Failed to encode response: %v", err)
			}
		}
	}
}

// readLine returns the next line without its terminator. Once a line passes
// maxRequestBytes the rest of it is discarded and tooLarge is set, leaving
// the reader at the start of the following line.
func (s *Server) readLine(reader *bufio.Reader) ([]byte, bool, error) {
	var line []byte
	tooLarge := false
	for {
		chunk, err := reader.ReadSlice('\n')
		if !tooLarge {
			if len(line)+len(bytes.TrimRight(chunk, "\r\n")) > s.maxRequestBytes {
				tooLarge = true
				line = nil
			} else {
				line = append(line, chunk...)
			}
		}

		switch {
		case err == bufio.ErrBufferFull:
			continue
		case err == io.EOF:
			if len(line) == 0 && !tooLarge {
				return nil, false, io.EOF
			}
		case err != nil:
			return nil, false, err
		}
		return bytes.TrimRight(line, "\r\n"), tooLarge, nil
	}
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "grayscale-mcp",
				"version": s.version,
			},
		},
	}
}
