package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/membercards/internal/config"
	"github.com/MrJamesThe3rd/membercards/internal/logger"
	"github.com/MrJamesThe3rd/membercards/internal/pipeline"
	"github.com/MrJamesThe3rd/membercards/internal/report"
	"github.com/MrJamesThe3rd/membercards/internal/sheet"
)

var rootCmd = &cobra.Command{
	Use:          "cards",
	Short:        "Membership card renewal and postal batch pipeline",
	SilenceUsage: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the pipeline and log a summary without writing files",
	RunE: func(cmd *cobra.Command, args []string) error {
		return execute(false)
	},
}

var writeCmd = &cobra.Command{
	Use:   "write",
	Short: "Run the pipeline and write the card, letter and batch files",
	RunE: func(cmd *cobra.Command, args []string) error {
		return execute(true)
	},
}

func execute(write bool) error {
	// A missing .env is fine; the environment may carry everything.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Log.Level)

	snap, err := pipeline.LoadSnapshot(sheet.NewDir(cfg.Files.Dir), log)
	if err != nil {
		return fmt.Errorf("loading inputs: %w", err)
	}

	result, err := pipeline.Run(cfg, snap, time.Now().UTC(), log)
	if err != nil {
		return fmt.Errorf("running pipeline: %w", err)
	}

	if !write {
		return nil
	}

	if err := report.NewWriter(cfg.Files.OutputDir, log).WriteAll(result); err != nil {
		return fmt.Errorf("writing outputs: %w", err)
	}

	return nil
}

func main() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(writeCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
