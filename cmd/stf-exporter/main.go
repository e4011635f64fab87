package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	stfexporter "github.com/hellenic-development/stf-exporter"
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "stf-exporter",
		Short:        "Export building model spaces and luminaires to STF",
		Long:         "A tool to export the spaces, luminaires, doors and windows visible in a building model's active view to an STF file for lighting design",
		RunE:         runExport,
		SilenceUsage: true,
		// Runs before every subcommand, once per Execute.
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initConfig(cmd.Root())
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default .stf-exporter.yaml)")
	pf.StringP("model", "m", "", "Model snapshot file (.json, .yaml or .toml)")
	pf.StringP("operator", "p", "", "Operator name written to the project section (default: host user)")
	pf.String("window-position", "basis", "Window position mode: basis (placement approximation) or location")
	pf.BoolP("verbose", "v", false, "verbose output")

	rootCmd.Flags().StringP("output", "o", "", "Output STF file (default: <project name>.stf)")

	_ = viper.BindPFlag("model", pf.Lookup("model"))
	_ = viper.BindPFlag("operator", pf.Lookup("operator"))
	_ = viper.BindPFlag("window_position", pf.Lookup("window-position"))
	_ = viper.BindPFlag("verbose", pf.Lookup("verbose"))

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the model snapshot to an STF file",
		RunE:  runExport,
	}
	exportCmd.Flags().StringP("output", "o", "", "Output STF file (default: <project name>.stf)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("stf-exporter version %s (STF %s)\n", stfexporter.Version, stfexporter.FormatVersion)
		},
	}

	rootCmd.AddCommand(exportCmd, newWatchCmd(), newServeCmd(), versionCmd)
	return rootCmd
}

func initConfig(rootCmd *cobra.Command) {
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".stf-exporter")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}
