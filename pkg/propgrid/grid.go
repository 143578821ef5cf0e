package propgrid

import (
	stderrors "errors"
	"math"
	"reflect"
	"sort"

	"golang.org/x/image/font"

	"github.com/go-drift/propgrid/pkg/errors"
	"github.com/go-drift/propgrid/pkg/platform"
)

var (
	// ErrNilItem is returned when a nil item is passed to the grid.
	ErrNilItem = stderrors.New("propgrid: nil item")

	// ErrAlreadyAdded is returned when an item is added twice.
	ErrAlreadyAdded = stderrors.New("propgrid: item already in a grid")

	// ErrNotAdded is returned for items that are not in the grid.
	ErrNotAdded = stderrors.New("propgrid: item not in grid")

	// ErrReadOnly is reported when an edit targets a read-only property.
	ErrReadOnly = stderrors.New("propgrid: property is read-only")

	errNilAdapterValue = stderrors.New("propgrid: adapter returned a nil value")
)

// maxObjectDepth bounds how deep struct-valued properties are expanded.
const maxObjectDepth = 8

// Options configures a PropertyGrid.
type Options struct {
	// Registry supplies overrides; nil means DefaultRegistry().
	Registry *Registry
	// Choices supplies enum choice lists; nil means DefaultChoicesCache().
	Choices *ChoicesCache
	// BoolsAsCheckboxes renders bool and flags rows as checkboxes.
	BoolsAsCheckboxes bool
	// LabelFace measures labels in FitColumns; nil means basicfont.Face7x13.
	LabelFace font.Face
	// Indent is the per-level label indentation in pixels; 0 means 16.
	Indent int
}

// PropertyGrid is the Go front-end of a native property grid.
type PropertyGrid struct {
	handler  platform.PropertyGridHandler
	opts     Options
	registry *Registry
	choices  *ChoicesCache

	items map[platform.ItemHandle]*Item
	roots []*Item

	onChange []func(*Item)
	onSelect []func(*Item)
}

// New creates a grid forwarding to handler and subscribes to its events.
func New(handler platform.PropertyGridHandler, opts Options) *PropertyGrid {
	g := &PropertyGrid{
		handler:  handler,
		opts:     opts,
		registry: opts.Registry,
		choices:  opts.Choices,
		items:    make(map[platform.ItemHandle]*Item),
	}
	if g.registry == nil {
		g.registry = DefaultRegistry()
	}
	if g.choices == nil {
		g.choices = DefaultChoicesCache()
	}
	if g.opts.Indent <= 0 {
		g.opts.Indent = 16
	}
	handler.SetListener(gridListener{g})
	return g
}

// Handler returns the native handler.
func (g *PropertyGrid) Handler() platform.PropertyGridHandler { return g.handler }

// Registry returns the override registry used by the grid.
func (g *PropertyGrid) Registry() *Registry { return g.registry }

// OnChange registers fn to run after a user edit was committed.
func (g *PropertyGrid) OnChange(fn func(*Item)) {
	g.onChange = append(g.onChange, fn)
}

// OnSelect registers fn to run when the selected row changes.
func (g *PropertyGrid) OnSelect(fn func(*Item)) {
	g.onSelect = append(g.onSelect, fn)
}

// CreateCategory returns a category row.
func (g *PropertyGrid) CreateCategory(label string) *Item {
	return &Item{name: label, label: label, kind: KindCategory}
}

// CreateItem returns an unbound row showing value. It returns nil for
// KindInvalid.
func (g *PropertyGrid) CreateItem(kind ValueKind, label, name string, value any) *Item {
	if kind == KindInvalid {
		return nil
	}
	it := &Item{name: name, label: label, kind: kind, value: value}
	if (kind == KindEnum || kind == KindFlags) && value != nil {
		it.choices = g.choices.CreateChoicesOnce(reflect.TypeOf(value))
		if rv := reflect.ValueOf(value); rv.CanInt() {
			it.value = rv.Int()
		}
	}
	return it
}

// CreateAdapterItem returns a row backed by adapter. It returns nil for an
// adapter of KindInvalid.
func (g *PropertyGrid) CreateAdapterItem(label, name string, adapter PropertyAdapter) (*Item, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}
	kind := adapter.Kind()
	if kind == KindInvalid {
		return nil, nil
	}
	return &Item{name: name, label: label, kind: kind, adapter: adapter}, nil
}

// CreatePropertyItem returns a row bound to prop of the struct instance
// points to (or is, when addressable). Struct-valued fields get one child per
// field. It returns nil for fields the grid cannot edit or that are hidden.
func (g *PropertyGrid) CreatePropertyItem(instance reflect.Value, prop Property) *Item {
	for instance.IsValid() && instance.Kind() == reflect.Pointer {
		if instance.IsNil() {
			return nil
		}
		instance = instance.Elem()
	}
	if !instance.IsValid() || instance.Kind() != reflect.Struct {
		return nil
	}
	return g.createPropertyItem(instance, prop, 0)
}

func (g *PropertyGrid) createPropertyItem(instance reflect.Value, prop Property, depth int) *Item {
	if !prop.Browsable() {
		return nil
	}
	params := g.registry.TypeRegistry(instance.Type()).PropRegistry(prop).Constructed()
	if params.IsHidden() {
		return nil
	}

	p := prop
	it := &Item{
		name:     prop.Name,
		label:    params.LabelOr(prop.Name),
		kind:     prop.Kind,
		instance: instance,
		prop:     &p,
		params:   params,
	}
	if c, ok := params.Choices(); ok {
		it.choices = c
	} else if prop.Kind == KindEnum || prop.Kind == KindFlags {
		it.choices = g.choices.CreateChoicesOnce(prop.Type)
	}

	if prop.Kind == KindObject && depth < maxObjectDepth {
		fv, err := instance.FieldByIndexErr(prop.Index)
		if err == nil && fv.Kind() == reflect.Pointer && !fv.IsNil() {
			fv = fv.Elem()
		}
		if err == nil && fv.Kind() == reflect.Struct {
			for _, child := range g.createProperties(fv, depth+1) {
				child.structChild = true
				it.AppendChild(child)
			}
		}
	}
	return it
}

// CreateProperties returns one row per editable exported field of the
// struct obj points to, in declaration order. Fields of unsupported kinds
// and hidden fields are skipped.
func (g *PropertyGrid) CreateProperties(obj any) ([]*Item, error) {
	rv := reflect.ValueOf(obj)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil, ErrNotStructPointer
	}
	return g.createProperties(rv.Elem(), 0), nil
}

func (g *PropertyGrid) createProperties(instance reflect.Value, depth int) []*Item {
	var items []*Item
	for _, prop := range PropertiesOf(instance.Type()) {
		if it := g.createPropertyItem(instance, prop, depth); it != nil {
			items = append(items, it)
		}
	}
	return items
}

// MiscCategory is the category of properties without one.
const MiscCategory = "Misc"

// CreateCategorizedProperties is like CreateProperties but groups the rows
// under category items, in order of first appearance. Rows without a
// category go to MiscCategory, which comes last.
func (g *PropertyGrid) CreateCategorizedProperties(obj any) ([]*Item, error) {
	items, err := g.CreateProperties(obj)
	if err != nil {
		return nil, err
	}
	var order []*Item
	byName := make(map[string]*Item)
	var misc *Item
	for _, it := range items {
		name, _ := it.params.Category()
		if name == "" || name == MiscCategory {
			if misc == nil {
				misc = g.CreateCategory(MiscCategory)
			}
			misc.AppendChild(it)
			continue
		}
		cat, ok := byName[name]
		if !ok {
			cat = g.CreateCategory(name)
			byName[name] = cat
			order = append(order, cat)
		}
		cat.AppendChild(it)
	}
	if misc != nil {
		order = append(order, misc)
	}
	return order, nil
}

// Add inserts item under parent (nil for top level), then its pre-populated
// children. An item with children is collapsed once they are in. If any
// native insert fails the rows already created are deleted again.
func (g *PropertyGrid) Add(item, parent *Item) error {
	if item == nil {
		return ErrNilItem
	}
	if item.handle != 0 {
		return ErrAlreadyAdded
	}
	parentHandle := platform.RootHandle
	if parent != nil {
		if parent.handle == 0 {
			return ErrNotAdded
		}
		parentHandle = parent.handle
	}

	if err := g.insert(item, parentHandle); err != nil {
		g.rollback(item)
		return err
	}

	if parent != nil {
		if item.parent != parent {
			parent.AppendChild(item)
		}
	} else {
		item.parent = nil
		g.roots = append(g.roots, item)
	}
	return nil
}

func (g *PropertyGrid) insert(item *Item, parentHandle platform.ItemHandle) error {
	value, _ := g.readNative(item)
	h, err := g.handler.Append(parentHandle, item.row(value))
	if err != nil {
		g.report("propgrid.Add", errors.KindNative, item, err)
		return err
	}
	item.handle = h
	g.items[h] = item

	if g.opts.BoolsAsCheckboxes && (item.kind == KindBool || item.kind == KindFlags) {
		if err := g.handler.SetCheckbox(h, true); err == nil {
			item.checkbox = true
		}
	}

	for _, child := range item.children {
		if err := g.insert(child, h); err != nil {
			return err
		}
	}

	if len(item.children) > 0 {
		if err := g.handler.Collapse(h); err == nil {
			item.collapsed = true
		}
	}
	return nil
}

// rollback removes the rows a failed insert left behind.
func (g *PropertyGrid) rollback(item *Item) {
	if item.handle != 0 {
		if err := g.handler.Delete(item.handle); err != nil {
			g.report("propgrid.Add", errors.KindNative, item, err)
		}
	}
	g.forget(item)
}

// Item returns the item with the given native handle.
func (g *PropertyGrid) Item(handle platform.ItemHandle) (*Item, bool) {
	it, ok := g.items[handle]
	return it, ok
}

// Items returns every item in the grid ordered by handle.
func (g *PropertyGrid) Items() []*Item {
	out := make([]*Item, 0, len(g.items))
	for _, it := range g.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].handle < out[j].handle })
	return out
}

// Roots returns the top-level items.
func (g *PropertyGrid) Roots() []*Item {
	return append([]*Item(nil), g.roots...)
}

// Len returns the number of items in the grid.
func (g *PropertyGrid) Len() int {
	return len(g.items)
}

// ItemByName returns the first item, depth first, whose name matches.
func (g *PropertyGrid) ItemByName(name string) *Item {
	var found *Item
	for _, root := range g.roots {
		root.walk(func(it *Item) {
			if found == nil && it.name == name && !it.IsCategory() {
				found = it
			}
		})
	}
	return found
}

// RemoveProperty takes item and its children out of the grid. The item keeps
// its children and binding and can be added again.
func (g *PropertyGrid) RemoveProperty(item *Item) error {
	if item == nil {
		return ErrNilItem
	}
	if _, ok := g.items[item.handle]; !ok {
		return ErrNotAdded
	}
	if err := g.handler.Delete(item.handle); err != nil {
		g.report("propgrid.RemoveProperty", errors.KindNative, item, err)
		return err
	}
	g.forget(item)
	g.detach(item)
	return nil
}

// DeleteProperty removes item from the grid and releases it.
func (g *PropertyGrid) DeleteProperty(item *Item) error {
	if err := g.RemoveProperty(item); err != nil {
		return err
	}
	item.walk(func(it *Item) {
		it.instance = reflect.Value{}
		it.adapter = nil
	})
	item.children = nil
	return nil
}

// Clear removes every item.
func (g *PropertyGrid) Clear() error {
	if err := g.handler.Clear(); err != nil {
		g.report("propgrid.Clear", errors.KindNative, nil, err)
		return err
	}
	for _, it := range g.items {
		it.handle = 0
		it.collapsed = false
		it.checkbox = false
	}
	g.items = make(map[platform.ItemHandle]*Item)
	g.roots = nil
	return nil
}

func (g *PropertyGrid) forget(item *Item) {
	item.walk(func(it *Item) {
		delete(g.items, it.handle)
		it.handle = 0
		it.collapsed = false
		it.checkbox = false
	})
}

func (g *PropertyGrid) detach(item *Item) {
	if p := item.parent; p != nil {
		for i, c := range p.children {
			if c == item {
				p.children = append(p.children[:i], p.children[i+1:]...)
				break
			}
		}
		item.parent = nil
		return
	}
	for i, r := range g.roots {
		if r == item {
			g.roots = append(g.roots[:i], g.roots[i+1:]...)
			break
		}
	}
}

// ReloadPropertyValue re-reads the bound value of item and pushes it to the
// native editor without validation. Fields of a struct-valued property also
// refresh the parent's summary. A failing read is reported and leaves the
// displayed value as it was.
func (g *PropertyGrid) ReloadPropertyValue(item *Item) {
	if item == nil || item.handle == 0 {
		return
	}
	if item.IsBound() {
		if value, ok := g.readNative(item); ok {
			if err := g.handler.SetValue(item.handle, value); err != nil {
				g.report("propgrid.ReloadPropertyValue", errors.KindNative, item, err)
			}
		}
	}
	if item.structChild && item.parent != nil {
		g.ReloadPropertyValue(item.parent)
	}
}

// ReloadAll reloads every bound item.
func (g *PropertyGrid) ReloadAll() {
	for _, it := range g.Items() {
		if it.IsBound() {
			g.ReloadPropertyValue(it)
		}
	}
}

// readNative returns the native display value of item.
func (g *PropertyGrid) readNative(item *Item) (value any, ok bool) {
	defer errors.Recover("propgrid.readNative")

	var v reflect.Value
	switch {
	case item.adapter != nil:
		x, err := item.adapter.Get()
		if err != nil {
			g.report("propgrid.readNative", errors.KindReflect, item, err)
			return nil, false
		}
		v = reflect.ValueOf(x)
	case item.prop != nil && item.instance.IsValid():
		fv, err := item.instance.FieldByIndexErr(item.prop.Index)
		if err != nil {
			g.report("propgrid.readNative", errors.KindReflect, item, err)
			return nil, false
		}
		v = fv
	default:
		return item.value, true
	}

	native, err := toNative(v, item.kind, item.params)
	if err != nil {
		g.report("propgrid.readNative", errors.KindConvert, item, err)
		return nil, false
	}
	return native, true
}

// ApplyValue commits a value reported by the native editor: it converts it,
// validates it against the item's overrides and stores it in the bound field
// or adapter. It returns whether the value was stored. On failure the error
// is reported and the editor is reset to the stored value.
func (g *PropertyGrid) ApplyValue(item *Item, native any) bool {
	if item == nil {
		return false
	}
	if !item.IsBound() {
		item.value = native
		g.notifyChange(item)
		return true
	}
	if item.readOnly() {
		g.report("propgrid.ApplyValue", errors.KindValidate, item, ErrReadOnly)
		g.ReloadPropertyValue(item)
		return false
	}
	if !g.commit(item, native) {
		g.ReloadPropertyValue(item)
		return false
	}
	g.ReloadPropertyValue(item)
	g.notifyChange(item)
	return true
}

func (g *PropertyGrid) commit(item *Item, native any) (ok bool) {
	defer errors.Recover("propgrid.ApplyValue")

	var target reflect.Type
	if item.adapter != nil {
		current, err := item.adapter.Get()
		if err == nil && current == nil {
			err = errNilAdapterValue
		}
		if err != nil {
			g.report("propgrid.ApplyValue", errors.KindReflect, item, err)
			return false
		}
		target = reflect.TypeOf(current)
	} else {
		target = item.prop.Type
	}

	v, err := fromNative(native, target, item.kind, item.choices)
	if err != nil {
		g.report("propgrid.ApplyValue", errors.KindConvert, item, err)
		return false
	}
	if err := g.validate(item, v.Interface()); err != nil {
		g.report("propgrid.ApplyValue", errors.KindValidate, item, err)
		return false
	}

	if item.adapter != nil {
		if err := item.adapter.Set(v.Interface()); err != nil {
			g.report("propgrid.ApplyValue", errors.KindReflect, item, err)
			return false
		}
		return true
	}

	field, err := item.instance.FieldByIndexErr(item.prop.Index)
	if err != nil || !field.CanSet() {
		if err == nil {
			err = ErrReadOnly
		}
		g.report("propgrid.ApplyValue", errors.KindReflect, item, err)
		return false
	}
	field.Set(v)
	return true
}

func (g *PropertyGrid) validate(item *Item, value any) error {
	if item.params == nil {
		return nil
	}
	lo, hasMin := item.params.Min()
	hi, hasMax := item.params.Max()
	if hasMin || hasMax {
		r := RangeValidator{Min: lo, Max: hi}
		if !hasMin {
			r.Min = -math.MaxFloat64
		}
		if !hasMax {
			r.Max = math.MaxFloat64
		}
		if err := r.Validate(value); err != nil {
			return err
		}
	}
	if v, ok := item.params.Validator(); ok && v != nil {
		return v.Validate(value)
	}
	return nil
}

// Select makes item the selected row; nil clears the selection.
func (g *PropertyGrid) Select(item *Item) error {
	handle := platform.RootHandle
	if item != nil {
		if _, ok := g.items[item.handle]; !ok {
			return ErrNotAdded
		}
		handle = item.handle
	}
	return g.handler.Select(handle)
}

// Selected returns the selected item, or nil.
func (g *PropertyGrid) Selected() *Item {
	return g.items[g.handler.Selection()]
}

// Expand expands item.
func (g *PropertyGrid) Expand(item *Item) error {
	if item == nil || item.handle == 0 {
		return ErrNotAdded
	}
	if err := g.handler.Expand(item.handle); err != nil {
		return err
	}
	item.collapsed = false
	return nil
}

// Collapse collapses item.
func (g *PropertyGrid) Collapse(item *Item) error {
	if item == nil || item.handle == 0 {
		return ErrNotAdded
	}
	if err := g.handler.Collapse(item.handle); err != nil {
		return err
	}
	item.collapsed = true
	return nil
}

// SetPropertyReadOnly toggles the native read-only state of one row without
// touching the registry.
func (g *PropertyGrid) SetPropertyReadOnly(item *Item, readOnly bool) error {
	if item == nil || item.handle == 0 {
		return ErrNotAdded
	}
	return g.handler.SetReadOnly(item.handle, readOnly)
}

// SetPropertyLabel changes the label of one row.
func (g *PropertyGrid) SetPropertyLabel(item *Item, label string) error {
	if item == nil || item.handle == 0 {
		return ErrNotAdded
	}
	if err := g.handler.SetLabel(item.handle, label); err != nil {
		return err
	}
	item.label = label
	return nil
}

// SetColumnCount sets the number of columns (at least 2).
func (g *PropertyGrid) SetColumnCount(count int) error {
	return g.handler.SetColumnCount(count)
}

// SetSplitterPosition moves the splitter right of column.
func (g *PropertyGrid) SetSplitterPosition(column, position int) error {
	return g.handler.SetSplitterPosition(column, position)
}

// SplitterPosition returns the splitter position right of column.
func (g *PropertyGrid) SplitterPosition(column int) int {
	return g.handler.SplitterPosition(column)
}

func (g *PropertyGrid) notifyChange(item *Item) {
	for _, fn := range g.onChange {
		fn(item)
	}
}

func (g *PropertyGrid) report(op string, kind errors.ErrorKind, item *Item, err error) {
	var property string
	if item != nil {
		if item.prop != nil {
			property = item.prop.QualifiedName()
		} else {
			property = item.name
		}
	}
	errors.ReportOp(op, kind, property, err)
}

// gridListener receives native events for a grid.
type gridListener struct {
	g *PropertyGrid
}

// OnPropertyChanged applies a native edit. A panicking change listener may
// have left the bound value half updated, so the row is read back.
func (l gridListener) OnPropertyChanged(handle platform.ItemHandle, value any) {
	it, ok := l.g.items[handle]
	if !ok {
		return
	}
	defer errors.RecoverWithCallback("propgrid.OnPropertyChanged", func(any) {
		l.g.ReloadPropertyValue(it)
	})
	l.g.ApplyValue(it, value)
}

func (l gridListener) OnPropertySelected(handle platform.ItemHandle) {
	defer errors.Recover("propgrid.OnPropertySelected")
	it := l.g.items[handle]
	for _, fn := range l.g.onSelect {
		fn(it)
	}
}
