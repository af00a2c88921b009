// Package main provides the nanoswarm CLI.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	nanobot "github.com/ttracx/sales-marketing-nanobot-swarm"
	"github.com/ttracx/sales-marketing-nanobot-swarm/tools"
)

var (
	version = "dev"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "serve":
		serveCmd(args)
	case "teams":
		teamsCmd(args)
	case "tools":
		toolsCmd(args)
	case "version":
		fmt.Printf("nanoswarm %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`nanoswarm - Sales & Marketing LLM gateway

Usage:
  nanoswarm <command> [options]

Commands:
  serve     Start the HTTP gateway
  teams     List pre-configured teams, or show one team's configuration
  tools     List calculator tools, show one, or run one locally
  version   Print version information
  help      Show this help message

Examples:
  nanoswarm serve --addr :8080
  nanoswarm teams
  nanoswarm teams lead-generation-engine
  nanoswarm tools lead_scoring_calc '{"calc_type":"ilt_score","company_size":500}'

Run 'nanoswarm <command> --help' for more information on a command.`)
}

// teamsCmd prints the team registry.
func teamsCmd(args []string) {
	fs := flag.NewFlagSet("teams", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "Print as JSON")
	fs.Usage = func() {
		fmt.Println(`Usage: nanoswarm teams [name] [options]

List all pre-configured sales & marketing teams, or show the full
configuration of a single team.

Options:`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() >= 1 {
		name := fs.Arg(0)
		team, ok := nanobot.GetTeam(name)
		if !ok {
			fmt.Fprintf(os.Stderr, "Team %q not found. Available: %s\n",
				name, strings.Join(nanobot.TeamNames(), ", "))
			os.Exit(1)
		}
		printJSON(team)
		return
	}

	teams := nanobot.Teams()
	if *asJSON {
		printJSON(teams)
		return
	}

	fmt.Printf("%d teams, %d unique agents\n\n", len(teams), nanobot.UniqueAgents())
	for _, team := range teams {
		fmt.Printf("%-28s %-14s %2d agents  %s\n", team.Name, team.Mode, len(team.Agents), team.Description)
	}
}

// toolsCmd prints the calculator registry or executes one calculator.
func toolsCmd(args []string) {
	fs := flag.NewFlagSet("tools", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Println(`Usage: nanoswarm tools [name] [json-params]

List all calculator tools, show one tool's calc types, or run a tool
locally with a JSON parameter object containing 'calc_type'.

Examples:
  nanoswarm tools
  nanoswarm tools roi_calculator
  nanoswarm tools campaign_analytics_calc '{"calc_type":"roas","ad_spend":1000,"revenue_attributed":4500}'`)
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	registry := tools.Default()

	if fs.NArg() == 0 {
		for _, t := range registry.All() {
			fmt.Printf("%-26s %s\n", t.Name(), t.Description())
		}
		return
	}

	name := fs.Arg(0)
	tool, ok := registry.Get(name)
	if !ok {
		fmt.Fprintf(os.Stderr, "Tool %q not found. Available: %s\n",
			name, strings.Join(registry.Names(), ", "))
		os.Exit(1)
	}

	if fs.NArg() == 1 {
		fmt.Println(tool.Name())
		fmt.Println(tool.Description())
		fmt.Printf("calc types: %s\n", strings.Join(tool.CalcTypes(), ", "))
		return
	}

	var params map[string]any
	if err := json.Unmarshal([]byte(fs.Arg(1)), &params); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid JSON params: %v\n", err)
		os.Exit(1)
	}

	result, err := registry.Execute(name, params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	printJSON(result)
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}
