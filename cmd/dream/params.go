package main

import (
	"fmt"
	"io"

	"dreamvoid/internal/core"
	"dreamvoid/internal/dream"

	"github.com/spf13/cobra"
)

func runParams(cmd *cobra.Command, args []string) error {
	d, err := dream.FromConfig(cfg, logger)
	if err != nil {
		return err
	}
	printParams(cmd.OutOrStdout(), d.Parameters())
	return nil
}

func printParams(out io.Writer, snap core.ParameterSnapshot) {
	for _, group := range snap.Groups {
		fmt.Fprintln(out, headerStyle.Render(group.Name))
		for _, p := range group.Params {
			fmt.Fprintf(out, "  %-28s %-12s %s\n", p.Key, p.Value, dimStyle.Render(p.Label))
		}
	}
}
