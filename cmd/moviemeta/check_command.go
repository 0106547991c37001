package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"moviemeta/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify TMDB credentials and directory access",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			results := preflight.RunAll(ctx.runContext(cmd, "check"), cfg)
			out := cmd.OutOrStdout()
			for _, r := range results {
				status := "OK  "
				if !r.Passed {
					status = "FAIL"
				}
				fmt.Fprintf(out, "%s %s: %s\n", status, r.Name, r.Detail)
			}
			if preflight.Failed(results) {
				return errors.New("preflight checks failed")
			}
			return nil
		},
	}
}
