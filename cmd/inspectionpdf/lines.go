package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AmerThamer/bkv-inspector-app/refdata"
)

func newLinesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lines [line]",
		Short: "List imported lines, or the stops of one line",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := refdata.Open(a.cfg.DataDir)
			if err != nil {
				return err
			}
			defer store.Close()

			routes, err := store.Routes(cmd.Context())
			if err != nil {
				return err
			}
			out := refdata.Lines(routes)
			if len(args) == 1 {
				out = refdata.LocationsForLine(routes, args[0])
			}
			for _, s := range out {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}
}
