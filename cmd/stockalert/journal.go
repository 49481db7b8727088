package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"StockNewsAlert/internal/recorder"

	"github.com/google/subcommands"
)

type journalCmd struct {
	configFlags
	limit int
}

func (*journalCmd) Name() string     { return "journal" }
func (*journalCmd) Synopsis() string { return "list the most recent runs from the SQLite journal" }
func (*journalCmd) Usage() string {
	return `journal [-config <path>] [-env-file <path>] [-n <count>]

  Prints the outcome of recent runs. Requires database.sqlite_path (or SQLITE_PATH).
`
}

func (c *journalCmd) SetFlags(f *flag.FlagSet) {
	c.register(f)
	f.IntVar(&c.limit, "n", 10, "number of runs to show")
}

func (c *journalCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.limit <= 0 {
		fmt.Fprintln(os.Stderr, "-n must be positive")
		return subcommands.ExitUsageError
	}
	cfg, err := loadConfig(c.configPath, c.envFile)
	if err != nil {
		log.Printf("[FATAL] %v", err)
		return subcommands.ExitFailure
	}
	if cfg.Database.SQLitePath == "" {
		fmt.Fprintln(os.Stderr, "journal is disabled: set database.sqlite_path or SQLITE_PATH")
		return subcommands.ExitFailure
	}

	sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
	if err != nil {
		log.Printf("[ERROR] open journal: %v", err)
		return subcommands.ExitFailure
	}
	defer sr.Close()

	runs, err := sr.RecentRuns(c.limit)
	if err != nil {
		log.Printf("[ERROR] read journal: %v", err)
		return subcommands.ExitFailure
	}
	printRuns(os.Stdout, runs)
	return subcommands.ExitSuccess
}
