package nanobot

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed teams.yaml
var teamsYAML []byte

// AgentTeam is a pre-configured multi-agent team definition.
type AgentTeam struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Mode        string   `yaml:"mode" json:"mode"`
	Agents      []string `yaml:"agents" json:"agents"`
	Tools       []string `yaml:"tools" json:"tools"`
	UseCases    []string `yaml:"use_cases" json:"use_cases"`
	KPIs        []string `yaml:"kpis" json:"kpis"`
	Category    string   `yaml:"category" json:"category"`
}

var (
	teamsMu      sync.RWMutex
	teamRegistry map[string]AgentTeam
)

func init() {
	var doc struct {
		Teams []AgentTeam `yaml:"teams"`
	}
	if err := yaml.Unmarshal(teamsYAML, &doc); err != nil {
		panic(fmt.Sprintf("parse embedded teams.yaml: %v", err))
	}

	teamRegistry = make(map[string]AgentTeam, len(doc.Teams))
	for _, t := range doc.Teams {
		teamRegistry[t.Name] = t
	}
}

// RegisterTeam adds or replaces a team in the registry.
func RegisterTeam(t AgentTeam) error {
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	teamsMu.Lock()
	defer teamsMu.Unlock()
	teamRegistry[t.Name] = t
	return nil
}

// GetTeam looks up a team by name.
func GetTeam(name string) (AgentTeam, bool) {
	teamsMu.RLock()
	defer teamsMu.RUnlock()
	t, ok := teamRegistry[name]
	return t, ok
}

// TeamNames returns all registered team names, sorted.
func TeamNames() []string {
	teamsMu.RLock()
	defer teamsMu.RUnlock()
	names := make([]string, 0, len(teamRegistry))
	for name := range teamRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Teams returns all registered teams sorted by name.
func Teams() []AgentTeam {
	teamsMu.RLock()
	defer teamsMu.RUnlock()
	teams := make([]AgentTeam, 0, len(teamRegistry))
	for _, t := range teamRegistry {
		teams = append(teams, t)
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })
	return teams
}

// UniqueAgents returns the number of distinct agent roles across all teams.
func UniqueAgents() int {
	teamsMu.RLock()
	defer teamsMu.RUnlock()
	seen := make(map[string]struct{})
	for _, t := range teamRegistry {
		for _, a := range t.Agents {
			seen[a] = struct{}{}
		}
	}
	return len(seen)
}
