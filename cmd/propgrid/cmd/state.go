package cmd

import (
	"github.com/spf13/cobra"

	"github.com/go-drift/propgrid/pkg/platform"
	"github.com/go-drift/propgrid/pkg/propgrid"
)

type stateResult struct {
	Version    string   `yaml:"version" json:"version"`
	Compatible bool     `yaml:"compatible" json:"compatible"`
	Flags      []string `yaml:"flags" json:"flags"`
	BlobBytes  int      `yaml:"blob_bytes" json:"blob_bytes"`
}

var stateCmd = &cobra.Command{
	Use:   "state <editable-state>",
	Short: "Decode the header of a saved editable state",
	Long: `Decode a string produced by PropertyGrid.SaveEditableState and report its
version, whether this build can restore it, and which parts it covers.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := decodeState(args[0])
		if err != nil {
			return err
		}
		return printResult(cmd, res)
	},
}

func init() {
	rootCmd.AddCommand(stateCmd)
}

var stateFlagNames = []struct {
	flag platform.StateFlags
	name string
}{
	{platform.StateSelection, "selection"},
	{platform.StateExpanded, "expanded"},
	{platform.StateScroll, "scroll"},
	{platform.StateSplitter, "splitter"},
	{platform.StateDescBox, "description"},
}

func decodeState(s string) (stateResult, error) {
	st, err := propgrid.ParseEditableState(s)
	if err != nil {
		return stateResult{}, err
	}
	res := stateResult{
		Version:    st.Version,
		Compatible: st.Compatible(),
		Flags:      []string{},
		BlobBytes:  len(st.Blob),
	}
	for _, f := range stateFlagNames {
		if st.Flags&f.flag != 0 {
			res.Flags = append(res.Flags, f.name)
		}
	}
	return res, nil
}
