// Package tools provides the deterministic sales and marketing calculators
// exposed to swarm agents: lead scoring, campaign analytics, content
// optimisation, SEO analysis, email campaign health, market segmentation,
// and multi-channel ROI.
package tools

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
)

// Standard errors
var (
	// ErrToolNotFound is returned when a tool is not registered.
	ErrToolNotFound = errors.New("tool not found")

	// ErrUnknownCalcType is returned for an unsupported calc_type value.
	ErrUnknownCalcType = errors.New("unknown calc_type")
)

// ToolError wraps errors with tool context.
type ToolError struct {
	ToolName string
	Err      error
}

func (e *ToolError) Error() string {
	return "tool " + e.ToolName + ": " + e.Err.Error()
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// Tool is a named calculator. Run takes loosely typed parameters, as they
// arrive from JSON request bodies or LLM tool calls, and returns a result map.
type Tool interface {
	Name() string
	Description() string
	CalcTypes() []string
	Run(params map[string]any) (map[string]any, error)
}

// Registry is a collection of tools keyed by name.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool, replacing any existing tool with the same name.
func (r *Registry) Register(t Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[t.Name()] = t
}

// Get looks up a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// Names returns registered tool names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns all registered tools sorted by name.
func (r *Registry) All() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name() < all[j].Name() })
	return all
}

// Execute runs a registered tool, wrapping failures in ToolError.
func (r *Registry) Execute(name string, params map[string]any) (map[string]any, error) {
	t, ok := r.Get(name)
	if !ok {
		return nil, &ToolError{ToolName: name, Err: ErrToolNotFound}
	}
	data, err := t.Run(params)
	if err != nil {
		return nil, &ToolError{ToolName: name, Err: err}
	}
	return data, nil
}

// Default returns a registry with all built-in calculators registered.
func Default() *Registry {
	r := NewRegistry()
	r.Register(&LeadScoringCalc{})
	r.Register(&CampaignAnalyticsCalc{})
	r.Register(&ContentOptimizer{})
	r.Register(&SEOAnalyzer{})
	r.Register(&EmailCampaignManager{})
	r.Register(&MarketSegmentation{})
	r.Register(&ROICalculator{})
	return r
}

func unknownCalc(calcType string, valid []string) error {
	return fmt.Errorf("%w %q, valid: %v", ErrUnknownCalcType, calcType, valid)
}

// Loose parameter accessors. Request bodies arrive as map[string]any with
// JSON numbers decoded as float64, but callers may also pass native Go
// ints and bools, so each accessor converts what it can.

func strParam(params map[string]any, key, def string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

func numParam(params map[string]any, key string, def float64) float64 {
	if v, ok := params[key]; ok {
		switch n := v.(type) {
		case float64:
			return n
		case float32:
			return float64(n)
		case int:
			return float64(n)
		case int64:
			return float64(n)
		}
	}
	return def
}

func intParam(params map[string]any, key string, def int) int {
	if v, ok := params[key]; ok {
		switch n := v.(type) {
		case float64:
			return int(n)
		case int:
			return n
		case int64:
			return int(n)
		}
	}
	return def
}

func boolParam(params map[string]any, key string, def bool) bool {
	if v, ok := params[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

func sliceParam(params map[string]any, key string) []any {
	if v, ok := params[key]; ok {
		if s, ok := v.([]any); ok {
			return s
		}
	}
	return nil
}

func stringsParam(params map[string]any, key string) []string {
	raw := sliceParam(params, key)
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		out = append(out, fmt.Sprint(v))
	}
	return out
}

func floatsParam(params map[string]any, key string, def []float64) []float64 {
	raw, ok := params[key]
	if !ok {
		return def
	}
	items, ok := raw.([]any)
	if !ok {
		if f, ok := raw.([]float64); ok {
			return f
		}
		return def
	}
	out := make([]float64, 0, len(items))
	for _, v := range items {
		switch n := v.(type) {
		case float64:
			out = append(out, n)
		case int:
			out = append(out, float64(n))
		}
	}
	return out
}

// roundN rounds to n decimal places, matching the rounding used in
// reported metric values throughout the calculators.
func roundN(v float64, n int) float64 {
	pow := math.Pow(10, float64(n))
	return math.Round(v*pow) / pow
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
