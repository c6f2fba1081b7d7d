package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"paracell/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show paracell build information",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type versionPayload struct {
	Tool       string `json:"tool"`
	Version    string `json:"version"`
	GitCommit  string `json:"git_commit,omitempty"`
	GitMessage string `json:"git_message,omitempty"`
	BuildDate  string `json:"build_date,omitempty"`
}

func runVersion(cmd *cobra.Command, _ []string) error {
	format, err := readFormat(cmd, formatPretty, formatJSON)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if format == formatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(versionPayload{
			Tool:       "paracell",
			Version:    version.Version,
			GitCommit:  version.GitCommit,
			GitMessage: version.GitMessage,
			BuildDate:  version.BuildDate,
		})
	}
	colored, err := useColor(cmd, os.Stdout)
	if err != nil {
		return err
	}
	color.NoColor = !colored
	_, err = fmt.Fprint(out, version.Banner())
	return err
}
