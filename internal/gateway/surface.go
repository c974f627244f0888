package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/get2knowio/climax/internal/config"
)

// Names of the two meta tools the discovery surface exposes.
const (
	SearchToolName = "climax_search"
	CallToolName   = "climax_call"
)

// ToolDescriptor is one tool as advertised over MCP.
type ToolDescriptor struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	InputSchema *config.JSONSchema `json:"inputSchema"`
}

// Surface decides which tools a server advertises and how calls route
// into the gateway. Both implementations share the gateway's execution
// path, so a given call behaves identically on either.
type Surface interface {
	Tools() []ToolDescriptor
	Call(ctx context.Context, name string, args map[string]any) string
}

// NewSurface picks the surface for the requested mode.
func NewSurface(g *Gateway, direct bool) Surface {
	if direct {
		return &DirectSurface{Gateway: g}
	}
	return &DiscoverySurface{Gateway: g}
}

// DiscoverySurface advertises only the two meta tools and keeps the
// full catalog behind them, no matter how many actions are indexed.
type DiscoverySurface struct {
	Gateway *Gateway
}

func (s *DiscoverySurface) Tools() []ToolDescriptor {
	return []ToolDescriptor{
		{
			Name: SearchToolName,
			Description: "Search the action catalog. With no filters this returns a per-source summary; " +
				"pass query, category, or source to list matching actions with their parameter schemas.",
			InputSchema: &config.JSONSchema{
				Type: "object",
				Properties: map[string]config.PropertySchema{
					"query":    {Type: "string", Description: "Case-insensitive substring matched against action names, descriptions, sources, categories and tags"},
					"category": {Type: "string", Description: "Exact category to filter by"},
					"source":   {Type: "string", Description: "Exact source name to filter by"},
					"limit":    {Type: "integer", Description: "Maximum number of results", Default: DefaultSearchLimit},
				},
			},
		},
		{
			Name:        CallToolName,
			Description: "Invoke an action by name with arguments, as discovered via " + SearchToolName + ".",
			InputSchema: &config.JSONSchema{
				Type: "object",
				Properties: map[string]config.PropertySchema{
					"action_name": {Type: "string", Description: "Exact name of the action to invoke"},
					"args":        {Type: "object", Description: "Arguments for the action, keyed by argument name"},
				},
				Required: []string{"action_name"},
			},
		},
	}
}

func (s *DiscoverySurface) Call(ctx context.Context, name string, args map[string]any) string {
	switch name {
	case SearchToolName:
		var req SearchRequest
		if err := decodeArgs(args, &req); err != nil {
			return failureMessage("Argument validation failed", SearchToolName, []string{err.Error()})
		}
		return s.Gateway.Search(req)

	case CallToolName:
		var req InvokeRequest
		if err := decodeArgs(args, &req); err != nil {
			return failureMessage("Argument validation failed", CallToolName, []string{err.Error()})
		}
		if req.ActionName == "" {
			return failureMessage("Argument validation failed", CallToolName, []string{"Missing required argument: action_name"})
		}
		return s.Gateway.Invoke(ctx, req)
	}

	// Any non-meta name fails exactly as an unresolved invoke would.
	return UnknownActionMessage(name, s.Gateway.Index.Names())
}

// DirectSurface advertises every indexed action as its own tool. Calls
// go straight to the gateway's invoke path.
type DirectSurface struct {
	Gateway *Gateway
}

func (s *DirectSurface) Tools() []ToolDescriptor {
	entries := s.Gateway.Index.Entries()
	tools := make([]ToolDescriptor, 0, len(entries))
	for _, entry := range entries {
		tools = append(tools, ToolDescriptor{
			Name:        entry.ActionName,
			Description: entry.Description,
			InputSchema: entry.ParameterSchema,
		})
	}
	return tools
}

func (s *DirectSurface) Call(ctx context.Context, name string, args map[string]any) string {
	return s.Gateway.Invoke(ctx, InvokeRequest{ActionName: name, Args: args})
}

// decodeArgs maps loosely typed call arguments onto a request struct.
func decodeArgs(args map[string]any, out any) error {
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("invalid arguments: %v", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("invalid arguments: %v", err)
	}
	return nil
}
