package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"paracell/internal/observ"
)

func printTimings(cmd *cobra.Command, r observ.Report) {
	if !boolFlag(cmd, "timings") || boolFlag(cmd, "quiet") {
		return
	}
	fmt.Fprint(cmd.ErrOrStderr(), r.Summary())
}
