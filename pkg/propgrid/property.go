package propgrid

import (
	"fmt"
	"path"
	"reflect"
	"strconv"
	"strings"
)

// Property describes one editable field of a struct type.
type Property struct {
	// Name is the Go field name.
	Name string
	// Index is the field index path from Owner, as used by
	// reflect.Value.FieldByIndex. Promoted fields have paths longer than one.
	Index []int
	// Type is the field's Go type.
	Type reflect.Type
	// Kind is the editor kind resolved from Type.
	Kind ValueKind
	// Owner is the struct type the descriptor was taken from.
	Owner reflect.Type

	defaults map[Param]any
	hidden   bool
}

// Same reports whether p and other describe the same field of the same type.
func (p Property) Same(other Property) bool {
	return p.Owner == other.Owner && indexKey(p.Index) == indexKey(other.Index)
}

// QualifiedName returns "pkg.Type.Field".
func (p Property) QualifiedName() string {
	return TypeName(p.Owner) + "." + p.Name
}

// Browsable reports whether the field should get a row.
func (p Property) Browsable() bool {
	return !p.hidden && p.Kind != KindInvalid
}

func indexKey(index []int) string {
	var sb strings.Builder
	for i, n := range index {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.Itoa(n))
	}
	return sb.String()
}

// TypeName returns the short "pkg.Type" name used in override files.
func TypeName(t reflect.Type) string {
	t = normalize(t)
	if t == nil {
		return ""
	}
	name := t.Name()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	if p := t.PkgPath(); p != "" {
		return path.Base(p) + "." + name
	}
	return name
}

// normalize strips pointer layers so *T and T share a registry.
func normalize(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// PropertiesOf lists the exported, visible fields of a struct type in
// declaration order, promoted fields included. Embedded structs themselves
// are not listed; their fields are. Fields tagged `propgrid:"-"` are skipped.
func PropertiesOf(t reflect.Type) []Property {
	t = normalize(t)
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	var props []Property
	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() || isEmbeddedStruct(f) {
			continue
		}
		tag, ok := f.Tag.Lookup("propgrid")
		if ok && tag == "-" {
			continue
		}
		props = append(props, newProperty(t, f, tag))
	}
	return props
}

// propertyByName returns the visible field called name.
func propertyByName(t reflect.Type, name string) (Property, bool) {
	t = normalize(t)
	if t == nil || t.Kind() != reflect.Struct {
		return Property{}, false
	}
	f, ok := t.FieldByName(name)
	if !ok || !f.IsExported() || isEmbeddedStruct(f) {
		return Property{}, false
	}
	return newProperty(t, f, f.Tag.Get("propgrid")), true
}

func newProperty(owner reflect.Type, f reflect.StructField, tag string) Property {
	p := Property{
		Name:  f.Name,
		Index: append([]int(nil), f.Index...),
		Type:  f.Type,
		Kind:  KindOf(f.Type),
		Owner: owner,
	}
	p.defaults, p.hidden = parseTag(tag)
	return p
}

func isEmbeddedStruct(f reflect.StructField) bool {
	return f.Anonymous && normalize(f.Type).Kind() == reflect.Struct
}

// parseTag reads `propgrid:"label=Width (px),category=Geometry,readonly,desc=..."`.
// Values may not contain commas.
func parseTag(tag string) (map[Param]any, bool) {
	if tag == "" {
		return nil, false
	}
	defaults := make(map[Param]any)
	hidden := false
	for _, part := range strings.Split(tag, ",") {
		key, value, hasValue := strings.Cut(strings.TrimSpace(part), "=")
		switch key {
		case "label":
			defaults[ParamLabel] = value
		case "desc":
			defaults[ParamDescription] = value
		case "category":
			defaults[ParamCategory] = value
		case "format":
			defaults[ParamFormat] = value
		case "readonly":
			defaults[ParamReadOnly] = !hasValue || value == "true"
		case "hidden":
			hidden = !hasValue || value == "true"
		case "precision":
			if n, err := strconv.Atoi(value); err == nil {
				defaults[ParamPrecision] = n
			}
		case "min":
			if f, err := strconv.ParseFloat(value, 64); err == nil {
				defaults[ParamMin] = f
			}
		case "max":
			if f, err := strconv.ParseFloat(value, 64); err == nil {
				defaults[ParamMax] = f
			}
		}
	}
	return defaults, hidden
}

// baseType returns the first embedded struct of t, or nil.
func baseType(t reflect.Type) reflect.Type {
	t = normalize(t)
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	for i := 0; i < t.NumField(); i++ {
		if f := t.Field(i); isEmbeddedStruct(f) {
			return normalize(f.Type)
		}
	}
	return nil
}

func (p Property) String() string {
	return fmt.Sprintf("%s (%s)", p.QualifiedName(), p.Kind)
}
