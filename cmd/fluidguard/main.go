package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fluidguard/fluidguard/internal/cli"
	"github.com/fluidguard/fluidguard/internal/config"
	"github.com/fluidguard/fluidguard/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.LoadConfig()

	// Evaluation events and watcher diagnostics go to stderr only when asked for.
	var observer service.EvaluationObserver = service.NoopEvaluationObserver{}
	if cfg.LogUseCases {
		observer = service.NewLogEvaluationObserver(os.Stderr)
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	app := &cli.App{
		Evaluate: service.NewEvaluateService(nil, observer),
		Config:   cfg,
	}

	// Detect interactive terminal for the bare "fluidguard" entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
