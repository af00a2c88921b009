package serve

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ttracx/sales-marketing-nanobot-swarm/tools"
)

func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	all := s.tools.All()
	list := make([]ToolSummary, 0, len(all))
	for _, t := range all {
		list = append(list, ToolSummary{
			Name:        t.Name(),
			Description: t.Description(),
			CalcTypes:   t.CalcTypes(),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total": len(list),
		"tools": list,
		"usage_hint": "POST /tools/{name} with a JSON body containing 'calc_type' " +
			"and the calculator's input parameters.",
	})
}

func (s *Server) handleGetTool(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	tool, ok := s.tools.Get(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{
			Error: fmt.Sprintf("Tool '%s' not found. Available tools: %s",
				name, strings.Join(s.tools.Names(), ", ")),
		})
		return
	}

	writeJSON(w, http.StatusOK, ToolSummary{
		Name:        tool.Name(),
		Description: tool.Description(),
		CalcTypes:   tool.CalcTypes(),
	})
}

func (s *Server) handleRunTool(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	params := map[string]any{}
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body"})
			return
		}
	}

	t0 := time.Now()
	result, err := s.tools.Execute(name, params)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, tools.ErrToolNotFound) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, ErrorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"tool":            name,
		"result":          result,
		"latency_seconds": roundSeconds(time.Since(t0)),
	})
}
