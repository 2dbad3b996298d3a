package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/AmerThamer/bkv-inspector-app/fonts"
	"github.com/AmerThamer/bkv-inspector-app/observability"
	"github.com/AmerThamer/bkv-inspector-app/refdata"
	"github.com/AmerThamer/bkv-inspector-app/report"
	"github.com/AmerThamer/bkv-inspector-app/writer"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		outDir   string
		template string
	)
	cmd := &cobra.Command{
		Use:   "render <form.yaml>",
		Short: "Render an inspection form to PDF",
		Long: `Render reads an inspection form, normalizes its times, fills the driver's
name or code from the imported driver list and writes the PDF. The path of
the written file is printed on success.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := LoadForm(args[0])
			if err != nil {
				return err
			}
			if template != "" {
				a.cfg.Template = strings.ToLower(template)
			}
			if outDir != "" {
				a.cfg.OutputDir = outDir
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			tpl, err := report.TemplateByName(a.cfg.Template)
			if err != nil {
				return err
			}
			labels, err := report.LabelsByName(a.cfg.Labels)
			if err != nil {
				return err
			}

			drivers := a.drivers(cmd)
			if form.HeaderTitle == "" {
				form.HeaderTitle = a.cfg.HeaderTitle
			}
			data, err := form.ReportData(time.Now(), labels, drivers)
			if err != nil {
				return err
			}

			renderer := report.NewRenderer(
				report.WithTemplate(tpl),
				report.WithLabels(labels),
				report.WithFonts(fonts.Paths{
					Regular: a.cfg.Fonts.Regular,
					Bold:    a.cfg.Fonts.Bold,
					Title:   a.cfg.Fonts.Title,
					Italic:  a.cfg.Fonts.Italic,
				}),
				report.WithHeaderImageFile(a.cfg.HeaderImage),
				report.WithLogger(a.logger),
			)
			gen := report.NewGenerator(renderer, a.cfg.OutputDir,
				report.WithWriterConfig(writer.Config{Version: writer.PDF17, Compression: a.cfg.Compression}),
				report.WithGeneratorLogger(a.logger),
			)
			path, err := gen.Generate(cmd.Context(), data)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (overrides output_dir)")
	cmd.Flags().StringVarP(&template, "template", "t", "", "report template: structured or classic")
	return cmd
}

// drivers returns the imported driver list. A missing or unreadable store
// only disables autofill.
func (a *app) drivers(cmd *cobra.Command) []refdata.Driver {
	store, err := refdata.Open(a.cfg.DataDir)
	if err != nil {
		a.logger.Warn("reference data unavailable", observability.Error("error", err))
		return nil
	}
	defer store.Close()

	drivers, err := store.Drivers(cmd.Context())
	if err != nil {
		a.logger.Warn("driver list unavailable", observability.Error("error", err))
		return nil
	}
	return drivers
}
