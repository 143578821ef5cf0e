package propgrid

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// OverridesVersion is the override file format this package reads. Files
// declaring another major version are rejected.
const OverridesVersion = "v1.0.0"

// ErrOverridesVersion is returned for an override file of an unsupported
// format version.
var ErrOverridesVersion = stderrors.New("propgrid: unsupported override file version")

// Overrides is the content of an override file:
//
//	version: v1.0.0
//	types:
//	  shapes.ShapeBase:
//	    Width:
//	      label: Width (px)
//	      category: Geometry
//	      min: 0
//	      validate: value <= 10000
//	  shapes.Fill:
//	    Pattern:
//	      choices:
//	        - {label: Solid, value: 0}
//	        - {label: Hatched, value: 1}
//
// Type keys use the "pkg.Type" form returned by TypeName.
type Overrides struct {
	// Version is the file format version; empty means OverridesVersion.
	Version string                                 `yaml:"version,omitempty"`
	Types   map[string]map[string]PropertyOverride `yaml:"types"`
}

// PropertyOverride holds the optional overrides of one property.
type PropertyOverride struct {
	Label       *string       `yaml:"label,omitempty"`
	Description *string       `yaml:"description,omitempty"`
	Category    *string       `yaml:"category,omitempty"`
	ReadOnly    *bool         `yaml:"readonly,omitempty"`
	Hidden      *bool         `yaml:"hidden,omitempty"`
	Precision   *int          `yaml:"precision,omitempty"`
	Format      *string       `yaml:"format,omitempty"`
	Locale      *string       `yaml:"locale,omitempty"`
	Min         *float64      `yaml:"min,omitempty"`
	Max         *float64      `yaml:"max,omitempty"`
	Validate    string        `yaml:"validate,omitempty"`
	Flags       bool          `yaml:"flags,omitempty"`
	Choices     []ChoiceEntry `yaml:"choices,omitempty"`
}

// ChoiceEntry is one YAML choice.
type ChoiceEntry struct {
	Label string `yaml:"label"`
	Value int64  `yaml:"value"`
}

// ErrUnknownProperty is returned when an override names a field the type
// does not have.
var ErrUnknownProperty = stderrors.New("propgrid: unknown property")

// LoadOverrides parses an override file.
func LoadOverrides(r io.Reader) (*Overrides, error) {
	var o Overrides
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&o); err != nil {
		if stderrors.Is(err, io.EOF) {
			return &Overrides{Version: OverridesVersion}, nil
		}
		return nil, fmt.Errorf("parse overrides: %w", err)
	}
	if o.Version == "" {
		o.Version = OverridesVersion
	}
	if !semver.IsValid(o.Version) || semver.Major(o.Version) != semver.Major(OverridesVersion) {
		return nil, fmt.Errorf("%w: %q", ErrOverridesVersion, o.Version)
	}
	return &o, nil
}

// LoadOverridesFile parses the override file at path.
func LoadOverridesFile(path string) (*Overrides, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadOverrides(f)
}

// TypeNames returns the type keys in sorted order.
func (o *Overrides) TypeNames() []string {
	names := make([]string, 0, len(o.Types))
	for name := range o.Types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Compile checks every validator expression and returns them keyed by
// "pkg.Type.Field".
func (o *Overrides) Compile() (map[string]*ExprValidator, error) {
	out := make(map[string]*ExprValidator)
	var errs []error
	for _, typeName := range o.TypeNames() {
		for field, po := range o.Types[typeName] {
			if po.Validate == "" {
				continue
			}
			v, err := NewExprValidator(po.Validate)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s.%s: %w", typeName, field, err))
				continue
			}
			out[typeName+"."+field] = v
		}
	}
	return out, stderrors.Join(errs...)
}

// Apply writes the overrides of the given types into reg. Entries for types
// not listed are ignored, so one file can serve several programs.
func (o *Overrides) Apply(reg *Registry, types ...reflect.Type) error {
	validators, err := o.Compile()
	if err != nil {
		return err
	}
	var errs []error
	for _, t := range types {
		typeName := TypeName(t)
		props, ok := o.Types[typeName]
		if !ok {
			continue
		}
		tr := reg.TypeRegistry(t)
		for field, po := range props {
			pr := tr.PropRegistryByName(field)
			if pr == nil {
				errs = append(errs, fmt.Errorf("%w: %s.%s", ErrUnknownProperty, typeName, field))
				continue
			}
			po.applyTo(pr.Params())
			if v, ok := validators[typeName+"."+field]; ok {
				pr.Params().SetValidator(v)
			}
		}
	}
	return stderrors.Join(errs...)
}

func (po PropertyOverride) applyTo(p *ItemParams) {
	if po.Label != nil {
		p.SetLabel(*po.Label)
	}
	if po.Description != nil {
		p.SetDescription(*po.Description)
	}
	if po.Category != nil {
		p.SetCategory(*po.Category)
	}
	if po.ReadOnly != nil {
		p.SetReadOnly(*po.ReadOnly)
	}
	if po.Hidden != nil {
		p.SetHidden(*po.Hidden)
	}
	if po.Precision != nil {
		p.SetPrecision(*po.Precision)
	}
	if po.Format != nil {
		p.SetFormat(*po.Format)
	}
	if po.Locale != nil {
		p.SetLocale(*po.Locale)
	}
	if po.Min != nil {
		p.SetMin(*po.Min)
	}
	if po.Max != nil {
		p.SetMax(*po.Max)
	}
	if len(po.Choices) > 0 {
		items := make([]Choice, len(po.Choices))
		for i, c := range po.Choices {
			items[i] = Choice{Label: c.Label, Value: c.Value}
		}
		if po.Flags {
			p.SetChoices(NewFlagsChoices(items...))
		} else {
			p.SetChoices(NewChoices(items...))
		}
	}
}
