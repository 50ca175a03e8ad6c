package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/vk/framegraphgo/internal/app"
	"github.com/vk/framegraphgo/internal/cli"
	"github.com/vk/framegraphgo/internal/hcl"
)

// main is the entrypoint for the framegraphgo application.
func main() {
	// A .env file may seed LOG_LEVEL/LOG_FORMAT; its absence is fine.
	_ = godotenv.Load()

	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, envDefaults(os.Args[1:])); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// envDefaults prepends flag values sourced from the environment, so
// explicit command-line flags still win.
func envDefaults(args []string) []string {
	var prefix []string
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		prefix = append(prefix, "--log-level", level)
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		prefix = append(prefix, "--log-format", format)
	}
	return append(prefix, args...)
}

// run encapsulates the main application logic for easier testing and error
// handling.
func run(outW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// The app panics on critical startup errors, so we recover here to
	// provide a clean exit message to the user.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(outW, "A critical startup error occurred: %v\n", r)
			os.Exit(1)
		}
	}()

	loader := hcl.NewLoader()
	frameGraphApp := app.NewApp(outW, appConfig, loader)

	return frameGraphApp.Run(context.Background())
}
