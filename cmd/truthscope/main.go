package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/truthscope/truthscope/internal/cli"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(),
	})))

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// logLevel reads TRUTHSCOPE_LOG_LEVEL; pipeline noise stays at warn by
// default so reports remain readable on the terminal
func logLevel() slog.Level {
	switch strings.ToLower(os.Getenv("TRUTHSCOPE_LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
