package main

import (
	"fmt"
	"os"
	"time"

	"github.com/jarx/after15/internal/cli"
	"github.com/jarx/after15/internal/config"
	"github.com/jarx/after15/internal/ledger"
	"github.com/jarx/after15/internal/logscan"
	"github.com/jarx/after15/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := os.Getenv("AFTER15_CONFIG")
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg := config.Load(configPath)

	loc := cfg.Location()

	sched, err := cfg.ShiftSchedule()
	if err != nil {
		return fmt.Errorf("loading shift schedule: %w", err)
	}

	logRoot := os.Getenv("AFTER15_LOGS")
	if logRoot == "" {
		logRoot, err = logscan.DefaultRoot()
		if err != nil {
			return fmt.Errorf("finding log directory: %w", err)
		}
	}

	ledgerPath := os.Getenv("AFTER15_LEDGER")
	if ledgerPath == "" {
		ledgerPath, err = ledger.DefaultPath()
		if err != nil {
			return fmt.Errorf("finding data directory: %w", err)
		}
	}

	scanner := &logscan.Scanner{
		Root:        logRoot,
		TrackedPath: cfg.Projects.TrackedPath,
		Loc:         loc,
	}

	app := &cli.App{
		Overtime: service.NewOvertimeService(scanner, ledger.NewStore(ledgerPath), sched, loc),
		Config:   cfg,
		Schedule: sched,
		Loc:      loc,
		Now:      time.Now,
	}

	return cli.NewRootCmd(app).Execute()
}
