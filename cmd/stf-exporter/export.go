package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	stfexporter "github.com/hellenic-development/stf-exporter"
	"github.com/hellenic-development/stf-exporter/pkg/config"
	"github.com/hellenic-development/stf-exporter/pkg/model"
)

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, &cfg)

	cyan := color.New(color.FgCyan)
	cyan.Println("\n💡 STF Exporter")
	cyan.Println("===============")
	cyan.Println()

	_, err = exportOnce(cfg)
	return err
}

// applyFlagOverrides applies command-local flag values to the loaded config.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if f := cmd.Flags().Lookup("output"); f != nil && f.Changed {
		cfg.Output = f.Value.String()
	}
}

// exportOnce loads the model snapshot named in cfg, exports it and prints a
// summary.
func exportOnce(cfg config.Config) (*stfexporter.Result, error) {
	green := color.New(color.FgGreen)
	cyan := color.New(color.FgCyan)

	if cfg.Model == "" {
		return nil, errors.New("no model snapshot given (use --model or the model config key)")
	}

	snap, err := model.LoadSnapshot(cfg.Model)
	if err != nil {
		return nil, err
	}

	output := cfg.Output
	if output == "" {
		output = stfexporter.SuggestedFileName(snap.ProjectInfo().Name)
	}

	result, err := stfexporter.Run(stfexporter.Options{
		Provider:       snap,
		OutputPath:     output,
		Operator:       cfg.Operator,
		ProgramName:    cfg.ProgramName,
		ProgramVersion: cfg.ProgramVersion,
		WindowPosition: cfg.WindowPosition,
		Logger:         &cliLogger{verbose: cfg.Verbose},
	})
	if err != nil {
		return nil, err
	}

	doc := result.Document
	lums, furns := 0, 0
	for _, room := range doc.Rooms {
		lums += len(room.Luminaires)
		furns += len(room.Furnishings)
	}

	cyan.Println("📊 Export Summary:")
	fmt.Printf("  • Rooms: %d\n", len(doc.Rooms))
	fmt.Printf("  • Luminaires placed: %d\n", lums)
	fmt.Printf("  • Luminaire types: %d\n", len(doc.Luminaires))
	fmt.Printf("  • Doors and windows: %d\n", furns)
	if len(result.Skipped) > 0 {
		fmt.Printf("  • Skipped elements: %d\n", len(result.Skipped))
	}

	green.Printf("\n✨ Successfully exported %s to %s\n\n", cfg.Model, result.OutputPath)
	return result, nil
}
