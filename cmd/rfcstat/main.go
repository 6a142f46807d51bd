// Command rfcstat counts a person's RFC contributions by role using the
// IETF Datatracker metadata service.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"rfcstat/internal/config"
	"rfcstat/internal/datatracker"
	"rfcstat/internal/models"
	"rfcstat/internal/report"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("rfcstat", flag.ContinueOnError)
	fs.SetOutput(stderr)
	name := fs.String("n", "", `full name to search for, e.g. "Firstname Lastname" (required)`)
	verbose := fs.Bool("v", false, "list the matching document identifiers per category")
	debug := fs.Bool("d", false, "print debug info")
	configPath := fs.String("c", "", "path to a YAML config file")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if strings.TrimSpace(*name) == "" {
		fmt.Fprintln(stderr, "rfcstat: -n is required")
		fs.Usage()
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "rfcstat: %v\n", err)
		return 1
	}
	if *debug {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "rfcstat: invalid configuration: %v\n", err)
		return 1
	}

	// Logs go to stderr so the report on stdout stays machine-clean.
	logger := newLogger(stderr, cfg.Log)

	// The HTTP client lives for exactly one run.
	httpc := &http.Client{
		Timeout: cfg.Service.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:    100,
			IdleConnTimeout: 90 * time.Second,
		},
	}
	defer httpc.CloseIdleConnections()

	client := datatracker.New(cfg, httpc, logger)
	ctx := context.Background()
	start := time.Now()

	person, err := client.ResolvePerson(ctx, *name)
	if err != nil {
		fmt.Fprintf(stderr, "rfcstat: %v\n", err)
		return 1
	}
	logger.Info("person resolved", "name", person.Name, "id", person.ID)

	// Sequential fetches in report order; the first failure aborts the run.
	results := make(map[models.Role][]string, len(models.RoleOrder))
	for _, role := range models.RoleOrder {
		ids, err := client.Fetch(ctx, role, person)
		if err != nil {
			fmt.Fprintf(stderr, "rfcstat: %v\n", err)
			return 1
		}
		results[role] = ids
	}

	rep, err := report.Aggregate(results, time.Since(start))
	if err != nil {
		fmt.Fprintf(stderr, "rfcstat: %v\n", err)
		return 1
	}
	if err := report.Print(stdout, rep, *verbose); err != nil {
		fmt.Fprintf(stderr, "rfcstat: writing report: %v\n", err)
		return 1
	}
	return 0
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Level)}
	var handler slog.Handler
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
