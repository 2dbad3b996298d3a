package main

import (
	"github.com/spf13/cobra"

	"github.com/AmerThamer/bkv-inspector-app/config"
	"github.com/AmerThamer/bkv-inspector-app/observability"
)

// app is the state shared by subcommands once the root has loaded it.
type app struct {
	cfgFile  string
	logLevel string

	cfg    *config.Config
	logger observability.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "inspectionpdf",
		Short: "Render transit inspection reports as PDF",
		Long: `inspectionpdf turns an inspection form into an A4 PDF report and keeps
the driver, route and inspector lists the forms are filled from.

Reports are written to <Documents>/Inspections unless output_dir says
otherwise. Settings come from config.yaml and INSPECTOR_* variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}
	root.PersistentFlags().StringVar(
		&a.cfgFile, "config", "", "config file (default: ./config.yaml or $XDG_CONFIG_HOME/bkv-inspector/config.yaml)",
	)
	root.PersistentFlags().StringVar(
		&a.logLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides log_level)",
	)

	root.AddCommand(newRenderCmd(a), newImportCmd(a), newLinesCmd(a))
	return root
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = observability.NewHCLogger("inspectionpdf", cfg.LogLevel, cmd.ErrOrStderr())
	return nil
}
