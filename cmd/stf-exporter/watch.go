package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hellenic-development/stf-exporter/pkg/config"
	"github.com/hellenic-development/stf-exporter/pkg/watch"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-export the model snapshot whenever it changes",
		RunE:  runWatch,
	}
	cmd.Flags().StringP("output", "o", "", "Output STF file (default: <project name>.stf)")
	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, &cfg)

	red := color.New(color.FgRed)
	cyan := color.New(color.FgCyan)

	// Export once up front so the file exists before the first edit.
	if _, err := exportOnce(cfg); err != nil {
		red.Printf("Error: %v\n", err)
	}

	w, err := watch.New(cfg.Model, cfg.Watch.Debounce)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)

	cyan.Printf("👀 Watching %s (Ctrl+C to stop)\n", w.File)
	for {
		select {
		case change := <-w.Changes:
			if change.Removed {
				red.Printf("Model snapshot %s was removed\n", change.File)
				continue
			}
			cyan.Printf("\n🔄 %s changed, exporting...\n", change.File)
			if _, err := exportOnce(cfg); err != nil {
				red.Printf("Error: %v\n", err)
			}
		case err := <-w.Errors:
			red.Printf("Watch error: %v\n", err)
		case <-sigs:
			return nil
		}
	}
}
