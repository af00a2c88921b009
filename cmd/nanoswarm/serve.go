package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	nanobot "github.com/ttracx/sales-marketing-nanobot-swarm"
	"github.com/ttracx/sales-marketing-nanobot-swarm/llm"
	"github.com/ttracx/sales-marketing-nanobot-swarm/serve"
)

// serveCmd starts the HTTP gateway.
func serveCmd(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", ":8080", "HTTP listen address")
	dbPath := fs.String("db", nanobot.DefaultDBPath(), "SQLite database path")
	logLevel := fs.String("log-level", "info", "Log level: debug, info, warn, error")
	logFormat := fs.String("log-format", "text", "Log format: text or json")
	logFile := fs.String("log-file", "", "Rotating log file path (default: stderr)")

	fs.Usage = func() {
		fmt.Println(`Usage: nanoswarm serve [options]

Start the Sales & Marketing gateway: swarm dispatch, OpenAI-compatible chat
completions, team registry, calculator tools, run history, schedules, and the
SSE activity feed.

Backends are configured via environment variables:
  OLLAMA_API_KEY      primary backend (Ollama Cloud)
  NVIDIA_API_KEY      fallback backend (NVIDIA NIM)
  GATEWAY_API_KEY     optional X-Api-Key gate on mutating endpoints
  TELEGRAM_BOT_TOKEN  optional Telegram bridge

Options:`)
		fs.PrintDefaults()
		fmt.Println(`
Examples:
  nanoswarm serve
  nanoswarm serve --addr :3000 --db /tmp/nanoswarm.db
  nanoswarm serve --log-format json --log-file /var/log/nanoswarm.log`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	setupLogging(*logLevel, *logFormat, *logFile)

	if err := nanobot.EnsureHome(); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating home directory: %v\n", err)
		os.Exit(1)
	}

	gw := nanobot.ConfigFromEnv()
	if gw.OllamaAPIKey == "" && gw.NvidiaAPIKey == "" {
		fmt.Fprintln(os.Stderr, "Warning: no backend configured. Set OLLAMA_API_KEY or NVIDIA_API_KEY.")
	}

	dispatcher := llm.NewDispatcher(gw.PrimaryBackend(), gw.FallbackBackend())
	srv := serve.New(dispatcher, gw, serve.Config{
		Addr:   *addr,
		DBPath: *dbPath,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
