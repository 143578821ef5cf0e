package propgrid

import (
	"errors"
	"reflect"

	"github.com/go-drift/propgrid/pkg/platform"
)

var (
	// ErrNilAdapter is returned when an adapter-backed item is created
	// without an adapter.
	ErrNilAdapter = errors.New("propgrid: nil property adapter")

	// ErrNotStructPointer is returned when properties are requested for a
	// value that is not a non-nil pointer to a struct.
	ErrNotStructPointer = errors.New("propgrid: want non-nil pointer to struct")
)

// PropertyAdapter backs an item whose value is synthesized rather than
// stored in a field, e.g. a font assembled from family, size and weight.
type PropertyAdapter interface {
	// Kind returns the editor kind of the synthesized value.
	Kind() ValueKind
	// Get returns the current Go value.
	Get() (any, error)
	// Set stores a Go value converted from the editor.
	Set(value any) error
}

// Item is one row of the grid: a category, a free-standing value, a field
// of a bound struct, or an adapter-backed value.
type Item struct {
	handle platform.ItemHandle
	name   string
	label  string
	kind   ValueKind

	parent   *Item
	children []*Item

	// instance is the addressable struct the bound field lives in.
	instance reflect.Value
	prop     *Property
	params   *Constructed
	adapter  PropertyAdapter
	choices  *Choices

	// value is the initial display value of unbound items.
	value any

	collapsed bool
	checkbox  bool
	// structChild marks a field of a struct-valued property; reloading it
	// also refreshes the parent's summary.
	structChild bool
}

// Handle returns the native handle, or 0 while the item is not in a grid.
func (it *Item) Handle() platform.ItemHandle { return it.handle }

// Name returns the property name.
func (it *Item) Name() string { return it.name }

// Label returns the displayed label.
func (it *Item) Label() string { return it.label }

// Kind returns the editor kind.
func (it *Item) Kind() ValueKind { return it.kind }

// IsCategory reports whether the item is a synthetic category row.
func (it *Item) IsCategory() bool { return it.kind == KindCategory }

// Parent returns the parent item, or nil for top-level items.
func (it *Item) Parent() *Item { return it.parent }

// Children returns the child items.
func (it *Item) Children() []*Item { return append([]*Item(nil), it.children...) }

// IsCollapsed reports whether the item was collapsed.
func (it *Item) IsCollapsed() bool { return it.collapsed }

// IsCheckbox reports whether the item renders as a checkbox.
func (it *Item) IsCheckbox() bool { return it.checkbox }

// Property returns the bound field, if any.
func (it *Item) Property() (Property, bool) {
	if it.prop == nil {
		return Property{}, false
	}
	return *it.prop, true
}

// Params returns the resolved overrides of a bound item, or nil.
func (it *Item) Params() *Constructed { return it.params }

// IsBound reports whether the item reads its value from a struct field or
// an adapter.
func (it *Item) IsBound() bool {
	return it.adapter != nil || (it.prop != nil && it.instance.IsValid())
}

// AppendChild attaches child before the item is added to a grid. Children of
// an added item must go through PropertyGrid.Add.
func (it *Item) AppendChild(child *Item) {
	if child == nil || child == it {
		return
	}
	child.parent = it
	it.children = append(it.children, child)
}

func (it *Item) readOnly() bool {
	return it.params != nil && it.params.IsReadOnly()
}

// walk visits the item and its descendants depth first.
func (it *Item) walk(fn func(*Item)) {
	fn(it)
	for _, c := range it.children {
		c.walk(fn)
	}
}

// row describes the item to the native handler.
func (it *Item) row(value any) platform.PropertyRow {
	row := platform.PropertyRow{
		Kind:      it.kind.Editor(),
		Label:     it.label,
		Name:      it.name,
		Value:     value,
		ReadOnly:  it.readOnly(),
		Precision: -1,
	}
	if it.choices != nil {
		row.Choices = it.choices.entries()
	}
	if it.params != nil {
		if ek, ok := it.params.EditKind(); ok {
			row.Kind = ek.Editor()
		}
		row.Help, _ = it.params.Description()
		if p, ok := it.params.Precision(); ok {
			row.Precision = p
		}
		row.Format, _ = it.params.Format()
		row.Locale, _ = it.params.Locale()
	}
	return row
}
