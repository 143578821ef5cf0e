package platform

import (
	"sync"
	"sync/atomic"
)

// ItemHandle identifies one row of a native property grid. Handles are
// allocated on the Go side and are never reused within a view.
type ItemHandle int64

// RootHandle addresses the invisible root of the grid.
const RootHandle ItemHandle = 0

// EditorKind names the native editor used for a row.
type EditorKind string

const (
	EditorBool     EditorKind = "bool"
	EditorInt      EditorKind = "int"
	EditorUint     EditorKind = "uint"
	EditorFloat    EditorKind = "float"
	EditorString   EditorKind = "string"
	EditorEnum     EditorKind = "enum"
	EditorFlags    EditorKind = "flags"
	EditorDate     EditorKind = "date"
	EditorDuration EditorKind = "duration"
	EditorObject   EditorKind = "object"
	EditorCategory EditorKind = "category"
)

// ChoiceEntry is one selectable entry of an enum or flags editor.
type ChoiceEntry struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
}

// PropertyRow describes a row to create in the native grid.
type PropertyRow struct {
	Kind      EditorKind
	Label     string
	Name      string
	Help      string
	Value     any
	Choices   []ChoiceEntry
	ReadOnly  bool
	// Precision is the number of decimals for float editors; -1 leaves the
	// native default.
	Precision int
	Format    string
	Locale    string
}

func (r PropertyRow) params() map[string]any {
	p := map[string]any{
		"kind":     string(r.Kind),
		"label":    r.Label,
		"name":     r.Name,
		"value":    r.Value,
		"readOnly": r.ReadOnly,
	}
	if r.Help != "" {
		p["help"] = r.Help
	}
	if len(r.Choices) > 0 {
		p["choices"] = r.Choices
	}
	if r.Kind == EditorFloat && r.Precision >= 0 {
		p["precision"] = r.Precision
	}
	if r.Format != "" {
		p["format"] = r.Format
	}
	if r.Locale != "" {
		p["locale"] = r.Locale
	}
	return p
}

// StateFlags selects which parts of the grid's editable state are saved or
// restored.
type StateFlags int

const (
	StateSelection StateFlags = 1 << iota
	StateExpanded
	StateScroll
	StateSplitter
	StateDescBox

	StateAll = StateSelection | StateExpanded | StateScroll | StateSplitter | StateDescBox
)

// PropertyGridListener receives user-originated events from a native grid.
// Calls arrive on the UI thread.
type PropertyGridListener interface {
	// OnPropertyChanged is called when the user commits a new value.
	OnPropertyChanged(handle ItemHandle, value any)
	// OnPropertySelected is called when the selected row changes.
	OnPropertySelected(handle ItemHandle)
}

// PropertyGridHandler is the native capability behind a property grid.
type PropertyGridHandler interface {
	ViewID() int64

	// Append creates a row under parent (RootHandle for top level).
	Append(parent ItemHandle, row PropertyRow) (ItemHandle, error)
	// Delete removes a row and its children.
	Delete(handle ItemHandle) error
	// Clear removes every row.
	Clear() error

	// SetValue replaces the displayed value without validation.
	SetValue(handle ItemHandle, value any) error
	// Value returns the value currently displayed for a row.
	Value(handle ItemHandle) (any, bool)

	SetLabel(handle ItemHandle, label string) error
	SetReadOnly(handle ItemHandle, readOnly bool) error
	SetCheckbox(handle ItemHandle, checkbox bool) error
	Collapse(handle ItemHandle) error
	Expand(handle ItemHandle) error
	IsExpanded(handle ItemHandle) bool

	Select(handle ItemHandle) error
	Selection() ItemHandle

	SetColumnCount(count int) error
	SetSplitterPosition(column, position int) error
	SplitterPosition(column int) int

	// SaveEditableState returns an opaque blob owned by the native backend.
	SaveEditableState(flags StateFlags) (string, error)
	// RestoreEditableState applies a blob produced by SaveEditableState.
	RestoreEditableState(state string, flags StateFlags) error

	SetListener(listener PropertyGridListener)
}

type rowState struct {
	parent   ItemHandle
	value    any
	expanded bool
	checkbox bool
	readOnly bool
	label    string
}

// PropertyGridView is the channel-backed PropertyGridHandler.
type PropertyGridView struct {
	viewID     int64
	nextHandle atomic.Int64
	listener   PropertyGridListener

	mu        sync.RWMutex
	rows      map[ItemHandle]*rowState
	selection ItemHandle
	splitters map[int]int
	columns   int
}

var _ PropertyGridHandler = (*PropertyGridView)(nil)

// NewPropertyGridView creates the native property grid through the global
// view registry.
func NewPropertyGridView(params map[string]any) (*PropertyGridView, error) {
	view, err := GetViewRegistry().Create("propertygrid", params)
	if err != nil {
		return nil, err
	}
	return view.(*PropertyGridView), nil
}

func newPropertyGridView(viewID int64) *PropertyGridView {
	return &PropertyGridView{
		viewID:    viewID,
		rows:      make(map[ItemHandle]*rowState),
		splitters: make(map[int]int),
		columns:   2,
	}
}

func (v *PropertyGridView) ViewID() int64 { return v.viewID }

func (v *PropertyGridView) ViewType() string { return "propertygrid" }

// Dispose forgets every mirrored row.
func (v *PropertyGridView) Dispose() {
	v.mu.Lock()
	v.rows = make(map[ItemHandle]*rowState)
	v.selection = RootHandle
	v.mu.Unlock()
}

func (v *PropertyGridView) invoke(method string, args map[string]any) (any, error) {
	return GetViewRegistry().InvokeViewMethod(v.viewID, method, args)
}

func (v *PropertyGridView) row(handle ItemHandle) (*rowState, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	r, ok := v.rows[handle]
	return r, ok
}

func (v *PropertyGridView) Append(parent ItemHandle, row PropertyRow) (ItemHandle, error) {
	if parent != RootHandle {
		if _, ok := v.row(parent); !ok {
			return 0, ErrUnknownHandle
		}
	}
	handle := ItemHandle(v.nextHandle.Add(1))

	args := row.params()
	args["handle"] = int64(handle)
	args["parent"] = int64(parent)
	if _, err := v.invoke("append", args); err != nil {
		return 0, err
	}

	v.mu.Lock()
	v.rows[handle] = &rowState{
		parent:   parent,
		value:    row.Value,
		expanded: true,
		readOnly: row.ReadOnly,
		label:    row.Label,
	}
	v.mu.Unlock()
	return handle, nil
}

func (v *PropertyGridView) Delete(handle ItemHandle) error {
	if _, ok := v.row(handle); !ok {
		return ErrUnknownHandle
	}
	if _, err := v.invoke("delete", map[string]any{"handle": int64(handle)}); err != nil {
		return err
	}
	v.mu.Lock()
	v.deleteLocked(handle)
	v.mu.Unlock()
	return nil
}

func (v *PropertyGridView) deleteLocked(handle ItemHandle) {
	for h, r := range v.rows {
		if r.parent == handle {
			v.deleteLocked(h)
		}
	}
	delete(v.rows, handle)
	if v.selection == handle {
		v.selection = RootHandle
	}
}

func (v *PropertyGridView) Clear() error {
	if _, err := v.invoke("clear", nil); err != nil {
		return err
	}
	v.mu.Lock()
	v.rows = make(map[ItemHandle]*rowState)
	v.selection = RootHandle
	v.mu.Unlock()
	return nil
}

func (v *PropertyGridView) SetValue(handle ItemHandle, value any) error {
	if _, ok := v.row(handle); !ok {
		return ErrUnknownHandle
	}
	if _, err := v.invoke("setValue", map[string]any{
		"handle": int64(handle),
		"value":  value,
	}); err != nil {
		return err
	}
	v.mu.Lock()
	if r, ok := v.rows[handle]; ok {
		r.value = value
	}
	v.mu.Unlock()
	return nil
}

func (v *PropertyGridView) Value(handle ItemHandle) (any, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	r, ok := v.rows[handle]
	if !ok {
		return nil, false
	}
	return r.value, true
}

// setRowFlag sends method to native and, on success, applies update to the
// mirrored row.
func (v *PropertyGridView) setRowFlag(handle ItemHandle, method string, args map[string]any, update func(*rowState)) error {
	if _, ok := v.row(handle); !ok {
		return ErrUnknownHandle
	}
	if args == nil {
		args = map[string]any{}
	}
	args["handle"] = int64(handle)
	if _, err := v.invoke(method, args); err != nil {
		return err
	}
	v.mu.Lock()
	if r, ok := v.rows[handle]; ok {
		update(r)
	}
	v.mu.Unlock()
	return nil
}

func (v *PropertyGridView) SetLabel(handle ItemHandle, label string) error {
	return v.setRowFlag(handle, "setLabel", map[string]any{"label": label}, func(r *rowState) { r.label = label })
}

func (v *PropertyGridView) SetReadOnly(handle ItemHandle, readOnly bool) error {
	return v.setRowFlag(handle, "setReadOnly", map[string]any{"readOnly": readOnly}, func(r *rowState) { r.readOnly = readOnly })
}

func (v *PropertyGridView) SetCheckbox(handle ItemHandle, checkbox bool) error {
	return v.setRowFlag(handle, "setCheckbox", map[string]any{"checkbox": checkbox}, func(r *rowState) { r.checkbox = checkbox })
}

func (v *PropertyGridView) Collapse(handle ItemHandle) error {
	return v.setRowFlag(handle, "collapse", nil, func(r *rowState) { r.expanded = false })
}

func (v *PropertyGridView) Expand(handle ItemHandle) error {
	return v.setRowFlag(handle, "expand", nil, func(r *rowState) { r.expanded = true })
}

func (v *PropertyGridView) IsExpanded(handle ItemHandle) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	r, ok := v.rows[handle]
	return ok && r.expanded
}

// IsCheckbox reports whether the row renders as a checkbox.
func (v *PropertyGridView) IsCheckbox(handle ItemHandle) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	r, ok := v.rows[handle]
	return ok && r.checkbox
}

func (v *PropertyGridView) Select(handle ItemHandle) error {
	if handle != RootHandle {
		if _, ok := v.row(handle); !ok {
			return ErrUnknownHandle
		}
	}
	if _, err := v.invoke("select", map[string]any{"handle": int64(handle)}); err != nil {
		return err
	}
	v.mu.Lock()
	v.selection = handle
	v.mu.Unlock()
	return nil
}

func (v *PropertyGridView) Selection() ItemHandle {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.selection
}

func (v *PropertyGridView) SetColumnCount(count int) error {
	if count < 2 {
		return ErrInvalidArguments
	}
	if _, err := v.invoke("setColumnCount", map[string]any{"count": count}); err != nil {
		return err
	}
	v.mu.Lock()
	v.columns = count
	v.mu.Unlock()
	return nil
}

func (v *PropertyGridView) SetSplitterPosition(column, position int) error {
	v.mu.RLock()
	columns := v.columns
	v.mu.RUnlock()
	if column < 0 || column >= columns-1 || position < 0 {
		return ErrInvalidArguments
	}
	if _, err := v.invoke("setSplitterPosition", map[string]any{
		"column":   column,
		"position": position,
	}); err != nil {
		return err
	}
	v.mu.Lock()
	v.splitters[column] = position
	v.mu.Unlock()
	return nil
}

func (v *PropertyGridView) SplitterPosition(column int) int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.splitters[column]
}

func (v *PropertyGridView) SaveEditableState(flags StateFlags) (string, error) {
	result, err := v.invoke("saveEditableState", map[string]any{"flags": int(flags)})
	if err != nil {
		return "", err
	}
	state, _ := result.(string)
	return state, nil
}

func (v *PropertyGridView) RestoreEditableState(state string, flags StateFlags) error {
	_, err := v.invoke("restoreEditableState", map[string]any{
		"state": state,
		"flags": int(flags),
	})
	return err
}

func (v *PropertyGridView) SetListener(listener PropertyGridListener) {
	v.mu.Lock()
	v.listener = listener
	v.mu.Unlock()
}

func (v *PropertyGridView) currentListener() PropertyGridListener {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.listener
}

// handleNativeCall processes user edits reported by native code.
func (v *PropertyGridView) handleNativeCall(method string, args map[string]any) (any, error) {
	raw, ok := toInt64(args["handle"])
	if !ok {
		return nil, ErrInvalidArguments
	}
	handle := ItemHandle(raw)

	switch method {
	case "onPropertyChanged":
		if _, ok := v.row(handle); !ok {
			return nil, ErrUnknownHandle
		}
		value := args["value"]
		if l := v.currentListener(); l != nil {
			Dispatch(func() { l.OnPropertyChanged(handle, value) })
		}
		return nil, nil

	case "onSelected":
		v.mu.Lock()
		v.selection = handle
		v.mu.Unlock()
		if l := v.currentListener(); l != nil {
			Dispatch(func() { l.OnPropertySelected(handle) })
		}
		return nil, nil

	case "onExpanded", "onCollapsed":
		expanded := method == "onExpanded"
		v.mu.Lock()
		if r, ok := v.rows[handle]; ok {
			r.expanded = expanded
		}
		v.mu.Unlock()
		return nil, nil

	default:
		return nil, ErrMethodNotFound
	}
}

type propertyGridViewFactory struct{}

func (propertyGridViewFactory) ViewType() string { return "propertygrid" }

func (propertyGridViewFactory) Create(viewID int64, params map[string]any) (PlatformView, error) {
	v := newPropertyGridView(viewID)
	if n, ok := toInt(params["columns"]); ok && n >= 2 {
		v.columns = n
	}
	return v, nil
}
