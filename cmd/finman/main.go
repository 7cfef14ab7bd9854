package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"finance-tracker/internal/cli"
	"finance-tracker/internal/config"
	"finance-tracker/internal/storage"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	// .env is optional for local development
	_ = godotenv.Load()

	cfg := config.Load()

	fs := flag.NewFlagSet("finman", flag.ContinueOnError)
	fs.SetOutput(stderr)

	dbPath := fs.String("db", cfg.DBPath, "Path to database file")
	logLevel := fs.String("log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.DBPath = *dbPath
	cfg.LogLevel = *logLevel
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	db, err := storage.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	logger.Debug("database ready", "path", cfg.DBPath)

	return cli.New(db, stdin, stdout, logger).Run()
}
