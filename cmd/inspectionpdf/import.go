package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/AmerThamer/bkv-inspector-app/observability"
	"github.com/AmerThamer/bkv-inspector-app/refdata"
)

func newImportCmd(a *app) *cobra.Command {
	var (
		files = make(map[refdata.Kind]*string, len(refdata.Kinds))
		watch bool
	)
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import driver, route and inspector lists",
		Long: `Import reads comma separated reference lists into the local store. Each
file given is remembered, so a later run without flags reimports the same
files. With --watch the command keeps running and reimports a list whenever
its file changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := refdata.Open(a.cfg.DataDir)
			if err != nil {
				return err
			}
			defer store.Close()

			im := refdata.NewImporter(store, a.logger)
			for _, kind := range refdata.Kinds {
				if p := *files[kind]; p != "" {
					abs, err := filepath.Abs(p)
					if err != nil {
						return err
					}
					if err := im.Remember(ctx, kind, abs); err != nil {
						return err
					}
				}
			}

			stats, err := im.Import(ctx)
			if err != nil {
				return err
			}
			printStats(cmd.OutOrStdout(), stats)
			if !watch {
				return nil
			}
			return watchSources(ctx, store, im, a.logger)
		},
	}
	for _, kind := range refdata.Kinds {
		files[kind] = cmd.Flags().String(string(kind), "", fmt.Sprintf("%s list file", kind))
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reimport lists when their files change")
	return cmd
}

func printStats(w io.Writer, stats map[refdata.Kind]refdata.Stats) {
	for _, kind := range refdata.Kinds {
		s, ok := stats[kind]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%s: %d records", kind, s.Records)
		if s.Skipped > 0 {
			fmt.Fprintf(w, " (%d lines skipped)", s.Skipped)
		}
		fmt.Fprintln(w)
	}
}

func watchSources(ctx context.Context, store *refdata.Store, im *refdata.Importer, logger observability.Logger) error {
	byPath := make(map[string]refdata.Kind)
	var paths []string
	for _, kind := range refdata.Kinds {
		p, err := store.SourceFile(ctx, kind)
		if err != nil {
			return err
		}
		if p != "" {
			byPath[p] = kind
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		return fmt.Errorf("nothing to watch: no list files have been imported")
	}

	logger.Info("watching reference lists", observability.Int("files", len(paths)))
	return refdata.Watch(ctx, paths, func(path string) {
		kind, ok := byPath[path]
		if !ok {
			return
		}
		if _, err := im.ImportFile(ctx, kind, path); err != nil {
			logger.Warn("reimport failed", observability.String("file", path), observability.Error("error", err))
		}
	})
}
