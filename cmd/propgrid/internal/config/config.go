package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/propgrid/pkg/propgrid"
)

// FileName is the optional per-project configuration file.
const FileName = "propgrid.yaml"

// Config represents the optional propgrid.yaml configuration.
type Config struct {
	App  AppConfig  `yaml:"app"`
	Grid GridConfig `yaml:"grid"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty"`
}

// GridConfig contains property grid defaults.
type GridConfig struct {
	// Overrides is the override file, relative to the project root.
	Overrides         string `yaml:"overrides,omitempty"`
	BoolsAsCheckboxes bool   `yaml:"bools_as_checkboxes,omitempty"`
	Indent            int    `yaml:"indent,omitempty"`
	// StateVersion pins the editable-state version the app expects.
	StateVersion string `yaml:"state_version,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root              string
	ModulePath        string
	AppName           string
	OverridesPath     string
	BoolsAsCheckboxes bool
	Indent            int
	StateVersion      string
}

// LoadOptional reads propgrid.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Resolve loads propgrid.yaml (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultAppName(modulePath, dir)
	}

	overrides := strings.TrimSpace(cfg.Grid.Overrides)
	if overrides != "" && !filepath.IsAbs(overrides) {
		overrides = filepath.Join(dir, overrides)
	}

	stateVersion := strings.TrimSpace(cfg.Grid.StateVersion)
	if stateVersion == "" {
		stateVersion = propgrid.StateVersion
	}
	if err := validateStateVersion(stateVersion); err != nil {
		return nil, err
	}

	if cfg.Grid.Indent < 0 {
		return nil, fmt.Errorf("grid.indent must not be negative (got %d)", cfg.Grid.Indent)
	}

	return &Resolved{
		Root:              dir,
		ModulePath:        modulePath,
		AppName:           appName,
		OverridesPath:     overrides,
		BoolsAsCheckboxes: cfg.Grid.BoolsAsCheckboxes,
		Indent:            cfg.Grid.Indent,
		StateVersion:      stateVersion,
	}, nil
}

// Options returns grid options reading overrides from reg.
func (r *Resolved) Options(reg *propgrid.Registry) propgrid.Options {
	return propgrid.Options{
		Registry:          reg,
		BoolsAsCheckboxes: r.BoolsAsCheckboxes,
		Indent:            r.Indent,
	}
}

// LoadOverrides reads the configured override file. It returns an empty
// set when none is configured.
func (r *Resolved) LoadOverrides() (*propgrid.Overrides, error) {
	if r.OverridesPath == "" {
		return &propgrid.Overrides{}, nil
	}
	return propgrid.LoadOverridesFile(r.OverridesPath)
}

// FindProjectRoot walks up from dir to find go.mod.
func FindProjectRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultAppName(modulePath, dir string) string {
	base := filepath.Base(dir)
	modName, _, ok := module.SplitPathVersion(modulePath)
	if ok {
		parts := strings.Split(modName, "/")
		if len(parts) > 0 {
			base = parts[len(parts)-1]
		}
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "propgrid_app"
	}
	return base
}

func validateStateVersion(v string) error {
	st := propgrid.EditableState{Version: v}
	if _, err := propgrid.ParseEditableState(st.String()); err != nil {
		return fmt.Errorf("grid.state_version %q is not a semantic version", v)
	}
	if !st.Compatible() {
		return fmt.Errorf("grid.state_version %q is incompatible with %s", v, propgrid.StateVersion)
	}
	return nil
}
