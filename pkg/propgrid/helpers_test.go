package propgrid

import (
	"errors"
	"testing"
	"time"

	pgerrors "github.com/go-drift/propgrid/pkg/errors"
	"github.com/go-drift/propgrid/pkg/platform"
)

// --- Fixture types ---

type ShapeBase struct {
	Name  string
	Width float64
}

type Rectangle struct {
	ShapeBase
	Height float64
}

// Square redeclares Width, shadowing ShapeBase.Width.
type Square struct {
	Rectangle
	Width float64
}

type Color int

func (Color) EnumMembers() []EnumMember {
	return []EnumMember{{"Red", 0}, {"Green", 1}, {"Blue", 2}}
}

type Style uint8

func (Style) EnumMembers() []EnumMember {
	return []EnumMember{{"None", 0}, {"A", 1}, {"B", 2}, {"C", 4}}
}

func (Style) IsFlags() bool { return true }

type Point struct {
	X int
	Y int
}

type Widget struct {
	Title    string `propgrid:"label=Title text,category=General"`
	Enabled  bool   `propgrid:"category=General"`
	Count    int32
	Ratio    float64 `propgrid:"precision=2"`
	Fill     Color
	Style    Style
	Origin   Point
	Created  time.Time
	Timeout  time.Duration
	Secret   string `propgrid:"hidden"`
	Skipped  string `propgrid:"-"`
	Updates  chan int
	Callback func()
	internal int
}

type Tree struct {
	*Inner
	Label string
}

type Inner struct {
	Depth int
}

// --- Fake native handler ---

type fakeRow struct {
	parent    platform.ItemHandle
	row       platform.PropertyRow
	value     any
	collapsed bool
	checkbox  bool
	readOnly  bool
	label     string
}

type fakeHandler struct {
	next      platform.ItemHandle
	rows      map[platform.ItemHandle]*fakeRow
	selection platform.ItemHandle
	splitters map[int]int
	columns   int
	listener  platform.PropertyGridListener

	savedBlob     string
	restoredBlob  string
	restoredFlags platform.StateFlags

	setValueErr error
	appendErr   error
	// failAppendAt makes the n-th Append call (1-based) fail with appendErr.
	failAppendAt int
	appends      int
}

var _ platform.PropertyGridHandler = (*fakeHandler)(nil)

func newFakeHandler() *fakeHandler {
	return &fakeHandler{
		rows:      make(map[platform.ItemHandle]*fakeRow),
		splitters: make(map[int]int),
		columns:   2,
	}
}

func (h *fakeHandler) ViewID() int64 { return 1 }

func (h *fakeHandler) Append(parent platform.ItemHandle, row platform.PropertyRow) (platform.ItemHandle, error) {
	h.appends++
	if h.appendErr != nil && (h.failAppendAt == 0 || h.appends == h.failAppendAt) {
		return 0, h.appendErr
	}
	if parent != platform.RootHandle {
		if _, ok := h.rows[parent]; !ok {
			return 0, platform.ErrUnknownHandle
		}
	}
	h.next++
	h.rows[h.next] = &fakeRow{parent: parent, row: row, value: row.Value, readOnly: row.ReadOnly, label: row.Label}
	return h.next, nil
}

func (h *fakeHandler) Delete(handle platform.ItemHandle) error {
	if _, ok := h.rows[handle]; !ok {
		return platform.ErrUnknownHandle
	}
	for child, r := range h.rows {
		if r.parent == handle {
			h.Delete(child)
		}
	}
	delete(h.rows, handle)
	return nil
}

func (h *fakeHandler) Clear() error {
	h.rows = make(map[platform.ItemHandle]*fakeRow)
	return nil
}

func (h *fakeHandler) SetValue(handle platform.ItemHandle, value any) error {
	if h.setValueErr != nil {
		return h.setValueErr
	}
	r, ok := h.rows[handle]
	if !ok {
		return platform.ErrUnknownHandle
	}
	r.value = value
	return nil
}

func (h *fakeHandler) Value(handle platform.ItemHandle) (any, bool) {
	r, ok := h.rows[handle]
	if !ok {
		return nil, false
	}
	return r.value, true
}

func (h *fakeHandler) withRow(handle platform.ItemHandle, fn func(*fakeRow)) error {
	r, ok := h.rows[handle]
	if !ok {
		return platform.ErrUnknownHandle
	}
	fn(r)
	return nil
}

func (h *fakeHandler) SetLabel(handle platform.ItemHandle, label string) error {
	return h.withRow(handle, func(r *fakeRow) { r.label = label })
}

func (h *fakeHandler) SetReadOnly(handle platform.ItemHandle, readOnly bool) error {
	return h.withRow(handle, func(r *fakeRow) { r.readOnly = readOnly })
}

func (h *fakeHandler) SetCheckbox(handle platform.ItemHandle, checkbox bool) error {
	return h.withRow(handle, func(r *fakeRow) { r.checkbox = checkbox })
}

func (h *fakeHandler) Collapse(handle platform.ItemHandle) error {
	return h.withRow(handle, func(r *fakeRow) { r.collapsed = true })
}

func (h *fakeHandler) Expand(handle platform.ItemHandle) error {
	return h.withRow(handle, func(r *fakeRow) { r.collapsed = false })
}

func (h *fakeHandler) IsExpanded(handle platform.ItemHandle) bool {
	r, ok := h.rows[handle]
	return ok && !r.collapsed
}

func (h *fakeHandler) Select(handle platform.ItemHandle) error {
	h.selection = handle
	return nil
}

func (h *fakeHandler) Selection() platform.ItemHandle { return h.selection }

func (h *fakeHandler) SetColumnCount(count int) error {
	h.columns = count
	return nil
}

func (h *fakeHandler) SetSplitterPosition(column, position int) error {
	h.splitters[column] = position
	return nil
}

func (h *fakeHandler) SplitterPosition(column int) int { return h.splitters[column] }

func (h *fakeHandler) SaveEditableState(flags platform.StateFlags) (string, error) {
	return h.savedBlob, nil
}

func (h *fakeHandler) RestoreEditableState(state string, flags platform.StateFlags) error {
	h.restoredBlob = state
	h.restoredFlags = flags
	return nil
}

func (h *fakeHandler) SetListener(listener platform.PropertyGridListener) {
	h.listener = listener
}

// --- Error capture ---

type capturedErrors struct {
	errs   []*pgerrors.PropGridError
	panics []*pgerrors.PanicError
}

func (c *capturedErrors) HandleError(err *pgerrors.PropGridError) { c.errs = append(c.errs, err) }

func (c *capturedErrors) HandlePanic(err *pgerrors.PanicError) { c.panics = append(c.panics, err) }

func (c *capturedErrors) has(kind pgerrors.ErrorKind) bool {
	for _, e := range c.errs {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// captureErrors routes reported errors to a recorder for the test's duration.
func captureErrors(t *testing.T) *capturedErrors {
	t.Helper()
	c := &capturedErrors{}
	old := pgerrors.DefaultHandler
	pgerrors.SetHandler(c)
	t.Cleanup(func() { pgerrors.SetHandler(old) })
	return c
}

func newTestGrid(t *testing.T, opts Options) (*PropertyGrid, *fakeHandler) {
	t.Helper()
	if opts.Registry == nil {
		opts.Registry = NewRegistry()
	}
	if opts.Choices == nil {
		opts.Choices = NewChoicesCache()
	}
	h := newFakeHandler()
	return New(h, opts), h
}

// --- Adapters ---

type funcAdapter struct {
	kind ValueKind
	get  func() (any, error)
	set  func(any) error
}

func (a *funcAdapter) Kind() ValueKind   { return a.kind }
func (a *funcAdapter) Get() (any, error) { return a.get() }
func (a *funcAdapter) Set(v any) error   { return a.set(v) }

var errGetter = errors.New("getter failed")

// linkedNode embeds a pointer to itself.
type linkedNode struct {
	*linkedNode
	Value int
}

// ping and pong embed each other.
type ping struct {
	*pong
	Hits int
}

type pong struct {
	*ping
	Misses int
}
