package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hellenic-development/stf-exporter/pkg/config"
	"github.com/hellenic-development/stf-exporter/pkg/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP converter service",
		Long:  "Serve POST /convert: a model snapshot (JSON, YAML or TOML) in the request body is returned as an STF file",
		RunE:  runServe,
	}
	cmd.Flags().Int("port", 0, "listen port (default 8095)")
	_ = viper.BindPFlag("serve.port", cmd.Flags().Lookup("port"))
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	app := server.New(server.Options{
		Operator:       cfg.Operator,
		ProgramName:    cfg.ProgramName,
		ProgramVersion: cfg.ProgramVersion,
		WindowPosition: cfg.WindowPosition,
		ReadTimeout:    cfg.Serve.ReadTimeout,
		WriteTimeout:   cfg.Serve.WriteTimeout,
		BodyLimit:      cfg.Serve.BodyLimit,
		AccessLog:      cfg.Verbose,
	})

	addr := fmt.Sprintf(":%d", cfg.Serve.Port)
	log.Printf("Starting STF Converter Service on %s", addr)
	return app.Listen(addr)
}
