// Package gateway fronts the discovery index: it answers catalog
// searches, resolves action names, validates and coerces call
// arguments, and hands validated calls to the executor. Both server
// modes funnel through the same gateway, so behavior never depends on
// how an action was surfaced.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/get2knowio/climax/internal/config"
	"github.com/get2knowio/climax/internal/index"
	"github.com/get2knowio/climax/internal/policy"
)

// DefaultSearchLimit caps search and summary responses when the caller
// gives no limit.
const DefaultSearchLimit = 10

// Executor runs a resolved action with validated, coerced arguments and
// renders the outcome as response text.
type Executor interface {
	Execute(ctx context.Context, action *config.ResolvedAction, args map[string]any) string
}

// Gateway binds an index to an executor.
type Gateway struct {
	Index    *index.Index
	Executor Executor
}

// New creates a gateway over an already built index.
func New(idx *index.Index, executor Executor) *Gateway {
	return &Gateway{Index: idx, Executor: executor}
}

// SearchRequest carries the catalog query. Pointer fields distinguish
// an absent filter from an empty one: a request with no filters at all
// is answered in summary mode, anything else in search mode.
type SearchRequest struct {
	Query    *string `json:"query,omitempty"`
	Category *string `json:"category,omitempty"`
	Source   *string `json:"source,omitempty"`
	Limit    *int    `json:"limit,omitempty"`
}

// InvokeRequest names an action and supplies its arguments.
type InvokeRequest struct {
	ActionName string         `json:"action_name"`
	Args       map[string]any `json:"args"`
}

type searchResponse struct {
	Mode    string               `json:"mode"`
	Results []index.CatalogEntry `json:"results"`
}

type summaryResponse struct {
	Mode      string                `json:"mode"`
	Summaries []index.SourceSummary `json:"summaries"`
}

// Search answers a catalog query as JSON text. A negative limit is
// clamped to zero, which matches nothing.
func (g *Gateway) Search(req SearchRequest) string {
	limit := DefaultSearchLimit
	if req.Limit != nil {
		limit = *req.Limit
	}
	if limit < 0 {
		limit = 0
	}

	if req.Query == nil && req.Category == nil && req.Source == nil {
		summaries := g.Index.Summaries()
		if len(summaries) > limit {
			summaries = summaries[:limit]
		}
		return marshalResponse(summaryResponse{Mode: "summary", Summaries: summaries})
	}

	results := g.Index.Search(deref(req.Query), deref(req.Category), deref(req.Source), limit)
	return marshalResponse(searchResponse{Mode: "search", Results: results})
}

// Invoke resolves the named action, validates and coerces its
// arguments, checks policy constraints, and delegates to the executor.
// Every failure is reported as response text.
func (g *Gateway) Invoke(ctx context.Context, req InvokeRequest) string {
	entry, ok := g.Index.Get(req.ActionName)
	if !ok {
		return UnknownActionMessage(req.ActionName, g.Index.Names())
	}

	args, problems := CoerceArgs(entry.Action.Def, req.Args)
	if len(problems) > 0 {
		return failureMessage("Argument validation failed", req.ActionName, problems)
	}

	if problems := policy.CheckConstraints(entry.Action, args); len(problems) > 0 {
		return failureMessage("Policy validation failed", req.ActionName, problems)
	}

	return g.Executor.Execute(ctx, entry.Action, args)
}

// UnknownActionMessage renders the resolution failure for a name the
// catalog does not know, listing every name it does.
func UnknownActionMessage(name string, known []string) string {
	return fmt.Sprintf("Unknown action: %s. Available actions: %s", name, strings.Join(known, ", "))
}

func failureMessage(prefix, name string, problems []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s for %s:", prefix, name)
	for _, p := range problems {
		b.WriteString("\n- ")
		b.WriteString(p)
	}
	return b.String()
}

func marshalResponse(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("failed to encode response: %v", err)
	}
	return string(data)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
