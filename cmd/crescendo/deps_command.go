package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"crescendo/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check that required external binaries are installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.ForConfig(cfg))
			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				state := "missing"
				if status.Available {
					state = "ok"
				} else if status.Optional {
					state = "missing (optional)"
				}
				detail := status.Detail
				if detail == "" {
					detail = status.Description
				}
				rows = append(rows, []string{status.Name, status.Command, state, detail})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Dependency", "Command", "Status", "Detail"},
				rows,
				nil,
			))

			if missing := deps.MissingRequired(statuses); len(missing) > 0 {
				return newExitCode(2, fmt.Sprintf("%d required dependency(ies) missing", len(missing)))
			}
			return nil
		},
	}
}
