package cmd

import (
	"github.com/spf13/cobra"

	"github.com/go-drift/propgrid/pkg/propgrid"
)

type versionResult struct {
	Version      string `yaml:"version" json:"version"`
	BuildTime    string `yaml:"build_time" json:"build_time"`
	StateVersion string `yaml:"state_version" json:"state_version"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the CLI and editable-state versions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printResult(cmd, versionResult{
			Version:      Version,
			BuildTime:    BuildTime,
			StateVersion: propgrid.StateVersion,
		})
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
