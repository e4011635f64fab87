package main

import "github.com/fatih/color"

// cliLogger implements stfexporter.Logger with colored terminal output.
type cliLogger struct {
	verbose bool
}

func (l *cliLogger) Infof(format string, args ...any) {
	if !l.verbose {
		return
	}
	color.New(color.FgYellow).Printf(format+"\n", args...)
}

func (l *cliLogger) Warnf(format string, args ...any) {
	color.New(color.FgYellow).Printf("⚠ "+format+"\n", args...)
}

func (l *cliLogger) Errorf(format string, args ...any) {
	color.New(color.FgRed).Printf("✗ "+format+"\n", args...)
}
