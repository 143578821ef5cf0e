package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/go-drift/propgrid/cmd/propgrid/internal/config"
	"github.com/go-drift/propgrid/pkg/propgrid"
)

type checkProperty struct {
	Name     string `yaml:"name" json:"name"`
	Label    string `yaml:"label,omitempty" json:"label,omitempty"`
	Category string `yaml:"category,omitempty" json:"category,omitempty"`
	Validate string `yaml:"validate,omitempty" json:"validate,omitempty"`
	Choices  int    `yaml:"choices,omitempty" json:"choices,omitempty"`
}

type checkType struct {
	Name       string          `yaml:"name" json:"name"`
	Properties []checkProperty `yaml:"properties" json:"properties"`
}

type checkResult struct {
	File       string      `yaml:"file" json:"file"`
	Version    string      `yaml:"version" json:"version"`
	Types      []checkType `yaml:"types" json:"types"`
	Validators int         `yaml:"validators" json:"validators"`
}

var checkCmd = &cobra.Command{
	Use:   "check [overrides.yaml]",
	Short: "Validate an override file",
	Long: `Parse an override file, check its format version and compile every
validator expression in it. Without an argument the file configured as
grid.overrides in the project's propgrid.yaml is checked, after the
project's grid.state_version has been validated too.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().String("dir", ".", "Directory inside the project to resolve propgrid.yaml from")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	} else {
		dir, _ := cmd.Flags().GetString("dir")
		root, err := config.FindProjectRoot(dir)
		if err != nil {
			return err
		}
		resolved, err := config.Resolve(root)
		if err != nil {
			return err
		}
		if resolved.OverridesPath == "" {
			return fmt.Errorf("no override file given and grid.overrides is not set in %s", config.FileName)
		}
		path = resolved.OverridesPath
	}

	res, err := checkFile(path)
	if err != nil {
		return err
	}
	return printResult(cmd, res)
}

func checkFile(path string) (checkResult, error) {
	o, err := propgrid.LoadOverridesFile(path)
	if err != nil {
		return checkResult{}, err
	}
	validators, err := o.Compile()
	if err != nil {
		return checkResult{}, err
	}

	res := checkResult{File: path, Version: o.Version, Types: []checkType{}, Validators: len(validators)}
	for _, typeName := range o.TypeNames() {
		props := o.Types[typeName]
		names := make([]string, 0, len(props))
		for name := range props {
			names = append(names, name)
		}
		sort.Strings(names)

		ct := checkType{Name: typeName}
		for _, name := range names {
			po := props[name]
			cp := checkProperty{Name: name, Validate: po.Validate, Choices: len(po.Choices)}
			if po.Label != nil {
				cp.Label = *po.Label
			}
			if po.Category != nil {
				cp.Category = *po.Category
			}
			ct.Properties = append(ct.Properties, cp)
		}
		res.Types = append(res.Types, ct)
	}
	return res, nil
}
