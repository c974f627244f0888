package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/get2knowio/climax/internal/gateway"
	"github.com/get2knowio/climax/internal/logger"
)

// Version is the server version reported in the initialize handshake.
const Version = "0.1.0"

// Server speaks newline-delimited JSON-RPC over a reader/writer pair,
// normally stdin/stdout. All diagnostics go through the logger (stderr);
// the writer carries protocol frames only.
type Server struct {
	Name    string
	Surface gateway.Surface

	mu sync.Mutex // serializes writes
}

// NewServer creates a server for the given surface.
func NewServer(name string, surface gateway.Surface) *Server {
	return &Server{Name: name, Surface: surface}
}

// Serve reads requests until in is closed or the context ends. Each
// request is handled on its own goroutine; response writes are
// serialized under the server mutex.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var wg sync.WaitGroup
	defer wg.Wait()

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		var req JSONRPCRequest
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			s.write(out, NewJSONRPCErrorResponse(nil, ParseError, "Parse error"))
			continue
		}

		wg.Add(1)
		go func(req JSONRPCRequest) {
			defer wg.Done()
			if resp, reply := s.Handle(ctx, req); reply {
				s.write(out, resp)
			}
		}(req)
	}
	return scanner.Err()
}

// Handle dispatches one request. The second return is false for
// notifications, which get no response frame.
func (s *Server) Handle(ctx context.Context, req JSONRPCRequest) (JSONRPCResponse, bool) {
	switch req.Method {
	case "initialize":
		return NewJSONRPCResponse(req.ID, map[string]interface{}{
			"protocolVersion": ProtocolVersion,
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]string{
				"name":    s.Name,
				"version": Version,
			},
		}), true

	case "notifications/initialized":
		return JSONRPCResponse{}, false

	case "ping":
		return NewJSONRPCResponse(req.ID, map[string]interface{}{}), true

	case "tools/list":
		return NewJSONRPCResponse(req.ID, map[string]interface{}{
			"tools": s.Surface.Tools(),
		}), true

	case "tools/call":
		var params struct {
			Name      string                 `json:"name"`
			Arguments map[string]interface{} `json:"arguments"`
		}
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return NewJSONRPCErrorResponse(req.ID, InvalidParams, fmt.Sprintf("Invalid params for tools/call: %v", err)), true
		}

		logger.Debugf("tools/call %s", params.Name)
		text := s.Surface.Call(ctx, params.Name, params.Arguments)
		return NewJSONRPCResponse(req.ID, map[string]interface{}{
			"content": []map[string]interface{}{
				{"type": "text", "text": text},
			},
		}), true

	default:
		if strings.HasPrefix(req.Method, "notifications/") {
			return JSONRPCResponse{}, false
		}
		return NewJSONRPCErrorResponse(req.ID, MethodNotFound, "Method not found"), true
	}
}

func (s *Server) write(out io.Writer, resp JSONRPCResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		logger.Errorf("failed to encode response: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out.Write(data)
	out.Write([]byte("\n"))
}
