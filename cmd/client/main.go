package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"Pokedex/internal/cli/commands"
	"Pokedex/internal/config"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	// Load unified config (env + flags)
	cfg := config.NewConfig()

	if cfg.Version {
		printVersion()
		return
	}

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	sugar := logger.Sugar()
	commands.SetLogger(sugar)
	//сброс буфера логгера
	defer func() { _ = logger.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sugar.Debugw("config",
		"api", cfg.APIURL,
		"page_size", cfg.PageSize,
		"debounce", cfg.SearchDebounce,
		"cache_ttl", cfg.CacheTTL,
		"strict_pages", cfg.StrictPages,
	)

	// dispatcher
	exitCode := commands.Dispatch(ctx, cfg, flag.Args())
	if exitCode == 0 {
		return
	}
	_ = logger.Sync()
	os.Exit(exitCode)
}

func printVersion() {
	fmt.Printf("Pokedex CLI\nVersion: %s\nBuild date: %s\n", version, buildDate)
}
