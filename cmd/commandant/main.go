// Package main runs the commandant MCP server over stdio.
//
// It reads config from flags/env and serves until shutdown.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v11"

	"github.com/commandant-mcp/commandant"
	"github.com/commandant-mcp/commandant/server"
)

type envConfig struct {
	ConfigURL    string `env:"COMMANDANT_CONFIG_URL"`
	BlacklistURL string `env:"COMMANDANT_BLACKLIST_URL"`
	TraceFile    string `env:"COMMANDANT_TRACE_FILE"`
}

func main() {
	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("parse env: %v", err)
	}
	configURL := flag.String("config", cfg.ConfigURL, "config document URL (YAML)")
	blacklistURL := flag.String("blacklist", cfg.BlacklistURL, "blacklist document URL (overrides config)")
	traceFile := flag.String("trace", cfg.TraceFile, "write traces to this file instead of stderr")
	tracingOn := flag.Bool("tracing", false, "enable OpenTelemetry tracing")
	flag.Parse()

	// stdout carries the MCP stdio transport; all logging goes to stderr.
	log.SetOutput(os.Stderr)
	log.SetPrefix("[commandant] ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configURL, *blacklistURL, *traceFile, *tracingOn); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}

func run(ctx context.Context, configURL, blacklistURL, traceFile string, tracingOn bool) error {
	var options []commandant.Option
	if configURL != "" {
		config, err := commandant.LoadConfig(ctx, configURL)
		if err != nil {
			return err
		}
		options = append(options, commandant.WithConfig(config))
	}
	if blacklistURL != "" {
		options = append(options, commandant.WithBlacklistURL(blacklistURL))
	}
	if tracingOn {
		options = append(options, commandant.WithTracing("commandant", server.Version, traceFile))
	}

	core, err := commandant.New(ctx, options...)
	if err != nil {
		return err
	}
	return server.New("commandant", core.Dispatcher()).Run(ctx)
}
