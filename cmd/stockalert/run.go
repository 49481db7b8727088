package main

import (
	"context"
	"flag"
	"log"

	"github.com/google/subcommands"
)

type runCmd struct {
	configFlags
	dryRun bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "check the ticker once and email related news if it moved enough" }
func (*runCmd) Usage() string {
	return `run [-config <path>] [-env-file <path>] [-dry-run]

  Fetches daily closes, compares the last two trading days and, when the
  change meets the threshold, emails up to 3 related headlines.
  Meant to be invoked periodically by an external scheduler.
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	c.register(f)
	f.BoolVar(&c.dryRun, "dry-run", false, "log the notification instead of emailing it")
}

func (c *runCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	log.Println("[INFO] StockNewsAlert starting...")

	cfg, err := loadConfig(c.configPath, c.envFile)
	if err != nil {
		log.Printf("[FATAL] %v", err)
		return subcommands.ExitFailure
	}

	rec := openRecorder(cfg)
	defer rec.Close()

	// Every terminal state of a run is a normal exit.
	buildPipeline(cfg, c.dryRun, rec).Run(ctx)
	return subcommands.ExitSuccess
}
