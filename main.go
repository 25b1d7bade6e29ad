package main

import (
	"fmt"
	"os"

	"github.com/atomicstack/gooeynav/internal/app"
	"github.com/atomicstack/gooeynav/internal/config"
	"github.com/atomicstack/gooeynav/internal/logging"
	"github.com/atomicstack/gooeynav/internal/logging/events"
)

func main() {
	cfg := config.MustLoad()
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)

	if logging.TraceEnabled() {
		events.App.Start(startupTracePayload(cfg))
	}

	if err := app.Run(cfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// startupTracePayload records how the program was started: flags, the
// resolved config file, the item set and the terminal it found.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath

	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
		"items":  len(cfg.App.Items),
		"file":   cfg.File,
		"found":  cfg.FileFound,
		"tty":    probeTerminal(),
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	}
	return payload
}
