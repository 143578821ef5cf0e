package propgrid

import (
	"errors"
	"reflect"
	"testing"
	"time"

	pgerrors "github.com/go-drift/propgrid/pkg/errors"
	"github.com/go-drift/propgrid/pkg/platform"
)

func addAll(t *testing.T, g *PropertyGrid, items []*Item) {
	t.Helper()
	for _, it := range items {
		if err := g.Add(it, nil); err != nil {
			t.Fatalf("Add(%s): %v", it.Name(), err)
		}
	}
}

func newWidget() *Widget {
	return &Widget{
		Title:   "knob",
		Enabled: true,
		Count:   3,
		Ratio:   0.5,
		Fill:    Green,
		Style:   StyleA | StyleC,
		Origin:  Point{X: 1, Y: 2},
		Created: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Timeout: 90 * time.Second,
	}
}

const (
	Red Color = iota
	Green
	Blue
)

const (
	StyleA Style = 1 << iota
	StyleB
	StyleC
)

func TestAddRegistersChildrenAndCollapses(t *testing.T) {
	g, h := newTestGrid(t, Options{})

	parent := g.CreateCategory("Geometry")
	parent.AppendChild(g.CreateItem(KindInt, "X", "X", 1))
	parent.AppendChild(g.CreateItem(KindInt, "Y", "Y", 2))

	if err := g.Add(parent, nil); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if g.Len() != 3 {
		t.Fatalf("Len = %d, want 3", g.Len())
	}
	if !parent.IsCollapsed() || !h.rows[parent.Handle()].collapsed {
		t.Error("parent with children should be collapsed")
	}
	for _, c := range parent.Children() {
		if c.Handle() == 0 {
			t.Fatalf("child %s was not added", c.Name())
		}
		if got := h.rows[c.Handle()].parent; got != parent.Handle() {
			t.Errorf("child %s native parent = %d, want %d", c.Name(), got, parent.Handle())
		}
		if c.IsCollapsed() {
			t.Errorf("leaf %s should not be collapsed", c.Name())
		}
		if it, ok := g.Item(c.Handle()); !ok || it != c {
			t.Errorf("Item(%d) lookup failed", c.Handle())
		}
	}
	if got := h.rows[parent.Handle()].row.Kind; got != platform.EditorCategory {
		t.Errorf("category row kind = %q", got)
	}
}

func TestAddErrors(t *testing.T) {
	g, h := newTestGrid(t, Options{})
	errs := captureErrors(t)

	if err := g.Add(nil, nil); !errors.Is(err, ErrNilItem) {
		t.Errorf("Add(nil) = %v, want ErrNilItem", err)
	}

	orphanParent := g.CreateCategory("P")
	if err := g.Add(g.CreateItem(KindString, "a", "a", "x"), orphanParent); !errors.Is(err, ErrNotAdded) {
		t.Errorf("Add under unadded parent = %v, want ErrNotAdded", err)
	}

	it := g.CreateItem(KindString, "a", "a", "x")
	if err := g.Add(it, nil); err != nil {
		t.Fatal(err)
	}
	if err := g.Add(it, nil); !errors.Is(err, ErrAlreadyAdded) {
		t.Errorf("second Add = %v, want ErrAlreadyAdded", err)
	}

	h.appendErr = platform.ErrPlatformUnavailable
	if err := g.Add(g.CreateItem(KindString, "b", "b", "y"), nil); !errors.Is(err, platform.ErrPlatformUnavailable) {
		t.Errorf("Add with failing native = %v", err)
	}
	if !errs.has(pgerrors.KindNative) {
		t.Error("native failure should be reported")
	}
}

func TestAddRollsBackPartialInsert(t *testing.T) {
	g, h := newTestGrid(t, Options{})
	errs := captureErrors(t)

	parent := g.CreateCategory("Geometry")
	parent.AppendChild(g.CreateItem(KindInt, "X", "X", 1))
	parent.AppendChild(g.CreateItem(KindInt, "Y", "Y", 2))

	h.appendErr = platform.ErrPlatformUnavailable
	h.failAppendAt = 3
	if err := g.Add(parent, nil); !errors.Is(err, platform.ErrPlatformUnavailable) {
		t.Fatalf("Add = %v, want ErrPlatformUnavailable", err)
	}
	if !errs.has(pgerrors.KindNative) {
		t.Error("failed insert should be reported")
	}
	if g.Len() != 0 || len(g.Roots()) != 0 {
		t.Errorf("grid kept Len=%d roots=%d after failed Add", g.Len(), len(g.Roots()))
	}
	if len(h.rows) != 0 {
		t.Errorf("native kept %d rows after failed Add", len(h.rows))
	}
	parent.walk(func(it *Item) {
		if it.Handle() != 0 || it.IsCollapsed() {
			t.Errorf("%s kept handle=%d collapsed=%v", it.Name(), it.Handle(), it.IsCollapsed())
		}
	})

	h.appendErr = nil
	if err := g.Add(parent, nil); err != nil {
		t.Fatalf("retry Add: %v", err)
	}
	if g.Len() != 3 || len(g.Roots()) != 1 || len(h.rows) != 3 {
		t.Errorf("after retry Len=%d roots=%d native=%d, want 3/1/3", g.Len(), len(g.Roots()), len(h.rows))
	}
}

func TestAddUnderParent(t *testing.T) {
	g, h := newTestGrid(t, Options{})
	cat := g.CreateCategory("General")
	if err := g.Add(cat, nil); err != nil {
		t.Fatal(err)
	}
	child := g.CreateItem(KindBool, "On", "On", true)
	if err := g.Add(child, cat); err != nil {
		t.Fatal(err)
	}
	if child.Parent() != cat || len(cat.Children()) != 1 {
		t.Error("child should be linked to its parent")
	}
	if h.rows[child.Handle()].parent != cat.Handle() {
		t.Error("native row should be under the category")
	}
	if len(g.Roots()) != 1 {
		t.Errorf("Roots = %d, want 1", len(g.Roots()))
	}
}

func TestBoolsAsCheckboxes(t *testing.T) {
	g, h := newTestGrid(t, Options{BoolsAsCheckboxes: true})
	items, err := g.CreateProperties(newWidget())
	if err != nil {
		t.Fatal(err)
	}
	addAll(t, g, items)

	for _, it := range g.Items() {
		want := it.Kind() == KindBool || it.Kind() == KindFlags
		if it.IsCheckbox() != want || h.rows[it.Handle()].checkbox != want {
			t.Errorf("%s checkbox = %v, want %v", it.Name(), it.IsCheckbox(), want)
		}
	}
}

func TestCreateProperties(t *testing.T) {
	reg := NewRegistry()
	reg.PropRegistryByName(reflect.TypeOf(Widget{}), "Count").Params().SetHidden(true)
	g, h := newTestGrid(t, Options{Registry: reg})

	w := newWidget()
	items, err := g.CreateProperties(w)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, it := range items {
		names = append(names, it.Name())
	}
	want := []string{"Title", "Enabled", "Ratio", "Fill", "Style", "Origin", "Created", "Timeout"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("items = %v, want %v", names, want)
	}
	if items[0].Label() != "Title text" {
		t.Errorf("label = %q, want tag label", items[0].Label())
	}

	addAll(t, g, items)
	origin := g.ItemByName("Origin")
	if len(origin.Children()) != 2 || !origin.IsCollapsed() {
		t.Fatalf("Origin should have two collapsed children, got %d", len(origin.Children()))
	}

	values := map[string]any{
		"Title":   "knob",
		"Enabled": true,
		"Ratio":   0.5,
		"Fill":    int64(1),
		"Style":   int64(5),
		"Origin":  "(X=1, Y=2)",
		"X":       int64(1),
		"Created": "2024-05-01T12:00:00Z",
		"Timeout": "1m30s",
	}
	for name, want := range values {
		it := g.ItemByName(name)
		if it == nil {
			t.Fatalf("no item %s", name)
		}
		if got := h.rows[it.Handle()].value; got != want {
			t.Errorf("%s native value = %#v, want %#v", name, got, want)
		}
	}

	fill := h.rows[g.ItemByName("Fill").Handle()].row
	if len(fill.Choices) != 3 || fill.Choices[2].Label != "Blue" {
		t.Errorf("Fill choices = %v", fill.Choices)
	}
	if p := h.rows[g.ItemByName("Ratio").Handle()].row.Precision; p != 2 {
		t.Errorf("Ratio precision = %d, want 2", p)
	}

	if _, err := g.CreateProperties(Widget{}); !errors.Is(err, ErrNotStructPointer) {
		t.Errorf("CreateProperties(value) = %v, want ErrNotStructPointer", err)
	}
}

func TestCreatePropertyItemInvalidKind(t *testing.T) {
	g, _ := newTestGrid(t, Options{})
	var updates Property
	for _, p := range PropertiesOf(reflect.TypeOf(Widget{})) {
		if p.Name == "Updates" {
			updates = p
		}
	}
	if it := g.CreatePropertyItem(reflect.ValueOf(newWidget()), updates); it != nil {
		t.Error("chan field should not produce an item")
	}
	if it := g.CreateItem(KindInvalid, "x", "x", nil); it != nil {
		t.Error("CreateItem(KindInvalid) should return nil")
	}
	var nilWidget *Widget
	if it := g.CreatePropertyItem(reflect.ValueOf(nilWidget), PropertiesOf(reflect.TypeOf(Widget{}))[0]); it != nil {
		t.Error("nil instance should not produce an item")
	}
}

func TestCreateCategorizedProperties(t *testing.T) {
	g, _ := newTestGrid(t, Options{})
	cats, err := g.CreateCategorizedProperties(newWidget())
	if err != nil {
		t.Fatal(err)
	}
	if len(cats) != 2 {
		t.Fatalf("categories = %d, want 2", len(cats))
	}
	if cats[0].Label() != "General" || len(cats[0].Children()) != 2 {
		t.Errorf("first category = %s with %d items", cats[0].Label(), len(cats[0].Children()))
	}
	if cats[1].Label() != MiscCategory || !cats[1].IsCategory() {
		t.Errorf("last category = %s, want %s", cats[1].Label(), MiscCategory)
	}
}

func TestReloadStructChildRefreshesParent(t *testing.T) {
	g, h := newTestGrid(t, Options{})
	w := newWidget()
	items, _ := g.CreateProperties(w)
	addAll(t, g, items)

	w.Origin.X = 5
	x := g.ItemByName("X")
	g.ReloadPropertyValue(x)

	if got := h.rows[x.Handle()].value; got != int64(5) {
		t.Errorf("X = %#v, want 5", got)
	}
	if got := h.rows[g.ItemByName("Origin").Handle()].value; got != "(X=5, Y=2)" {
		t.Errorf("Origin summary = %#v", got)
	}
}

func TestReloadFailureKeepsDisplayedValue(t *testing.T) {
	g, h := newTestGrid(t, Options{})
	errs := captureErrors(t)

	var fail, explode bool
	adapter := &funcAdapter{
		kind: KindInt,
		get: func() (any, error) {
			if explode {
				panic("boom")
			}
			if fail {
				return nil, errGetter
			}
			return 3, nil
		},
		set: func(any) error { return nil },
	}
	it, err := g.CreateAdapterItem("Size", "Size", adapter)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Add(it, nil); err != nil {
		t.Fatal(err)
	}
	if got := h.rows[it.Handle()].value; got != int64(3) {
		t.Fatalf("initial value = %#v, want 3", got)
	}

	fail = true
	g.ReloadPropertyValue(it)
	if got := h.rows[it.Handle()].value; got != int64(3) {
		t.Errorf("value after failing getter = %#v, want 3", got)
	}
	if !errs.has(pgerrors.KindReflect) {
		t.Error("getter error should be reported")
	}

	fail, explode = false, true
	g.ReloadPropertyValue(it)
	if got := h.rows[it.Handle()].value; got != int64(3) {
		t.Errorf("value after panicking getter = %#v, want 3", got)
	}
	if len(errs.panics) != 1 {
		t.Errorf("panics reported = %d, want 1", len(errs.panics))
	}
}

func TestReloadNilEmbeddedPointer(t *testing.T) {
	g, h := newTestGrid(t, Options{})
	errs := captureErrors(t)

	tree := &Tree{Label: "root"}
	items, err := g.CreateProperties(tree)
	if err != nil {
		t.Fatal(err)
	}
	addAll(t, g, items)

	depth := g.ItemByName("Depth")
	if depth == nil {
		t.Fatal("promoted field through a pointer should be listed")
	}
	if got := h.rows[depth.Handle()].value; got != nil {
		t.Errorf("unreadable value = %#v, want nil", got)
	}
	if !errs.has(pgerrors.KindReflect) {
		t.Error("nil embedded pointer should be reported")
	}

	tree.Inner = &Inner{Depth: 4}
	g.ReloadPropertyValue(depth)
	if got := h.rows[depth.Handle()].value; got != int64(4) {
		t.Errorf("Depth = %#v, want 4", got)
	}
}

func TestReloadNativeFailureReported(t *testing.T) {
	g, h := newTestGrid(t, Options{})
	errs := captureErrors(t)
	items, _ := g.CreateProperties(newWidget())
	addAll(t, g, items)

	h.setValueErr = platform.ErrPlatformUnavailable
	g.ReloadAll()
	if !errs.has(pgerrors.KindNative) {
		t.Error("SetValue failure should be reported")
	}
}

func TestApplyValue(t *testing.T) {
	reg := NewRegistry()
	wt := reflect.TypeOf(Widget{})
	reg.PropRegistryByName(wt, "Count").Params().SetMin(0).SetMax(100)
	ratioCheck, err := NewExprValidator("value >= 0 && value <= 1")
	if err != nil {
		t.Fatal(err)
	}
	reg.PropRegistryByName(wt, "Ratio").Params().SetValidator(ratioCheck)
	reg.PropRegistryByName(wt, "Title").Params().SetReadOnly(true)

	g, h := newTestGrid(t, Options{Registry: reg})
	errs := captureErrors(t)
	w := newWidget()
	items, _ := g.CreateProperties(w)
	addAll(t, g, items)

	var changed []string
	g.OnChange(func(it *Item) { changed = append(changed, it.Name()) })

	count := g.ItemByName("Count")
	if !g.ApplyValue(count, float64(42)) {
		t.Fatal("ApplyValue(42) failed")
	}
	if w.Count != 42 || h.rows[count.Handle()].value != int64(42) {
		t.Errorf("Count = %d, native %v", w.Count, h.rows[count.Handle()].value)
	}

	tests := []struct {
		name   string
		native any
		kind   pgerrors.ErrorKind
	}{
		{"Count", float64(500), pgerrors.KindValidate},
		{"Count", "abc", pgerrors.KindConvert},
		{"Count", 1.5, pgerrors.KindConvert},
		{"Ratio", 2.0, pgerrors.KindValidate},
		{"Title", "changed", pgerrors.KindValidate},
	}
	for _, tt := range tests {
		errs.errs = nil
		it := g.ItemByName(tt.name)
		if g.ApplyValue(it, tt.native) {
			t.Errorf("ApplyValue(%s, %v) succeeded", tt.name, tt.native)
		}
		if !errs.has(tt.kind) {
			t.Errorf("ApplyValue(%s, %v) did not report %v", tt.name, tt.native, tt.kind)
		}
	}
	if w.Count != 42 || w.Ratio != 0.5 || w.Title != "knob" {
		t.Errorf("rejected edits changed the widget: %+v", w)
	}
	if h.rows[count.Handle()].value != int64(42) {
		t.Error("native editor should be reset to the stored value")
	}
	if !reflect.DeepEqual(changed, []string{"Count"}) {
		t.Errorf("change notifications = %v", changed)
	}
}

func TestApplyValueKinds(t *testing.T) {
	g, _ := newTestGrid(t, Options{})
	w := newWidget()
	items, _ := g.CreateProperties(w)
	addAll(t, g, items)

	edits := []struct {
		name   string
		native any
	}{
		{"Fill", "Blue"},
		{"Style", "B | C"},
		{"Enabled", false},
		{"Timeout", "2m"},
		{"Created", "2025-01-02T03:04:05Z"},
		{"Y", float64(9)},
	}
	for _, e := range edits {
		if !g.ApplyValue(g.ItemByName(e.name), e.native) {
			t.Errorf("ApplyValue(%s, %v) failed", e.name, e.native)
		}
	}

	if w.Fill != Blue {
		t.Errorf("Fill = %v, want Blue", w.Fill)
	}
	if w.Style != StyleB|StyleC {
		t.Errorf("Style = %v, want B|C", w.Style)
	}
	if w.Enabled {
		t.Error("Enabled should be false")
	}
	if w.Timeout != 2*time.Minute {
		t.Errorf("Timeout = %v", w.Timeout)
	}
	if !w.Created.Equal(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)) {
		t.Errorf("Created = %v", w.Created)
	}
	if w.Origin.Y != 9 {
		t.Errorf("Origin.Y = %d, want 9", w.Origin.Y)
	}
}

func TestApplyValueAdapter(t *testing.T) {
	g, h := newTestGrid(t, Options{})
	stored := 3
	adapter := &funcAdapter{
		kind: KindInt,
		get:  func() (any, error) { return stored, nil },
		set: func(v any) error {
			stored = v.(int)
			return nil
		},
	}
	it, _ := g.CreateAdapterItem("Size", "Size", adapter)
	if err := g.Add(it, nil); err != nil {
		t.Fatal(err)
	}
	if !g.ApplyValue(it, float64(9)) {
		t.Fatal("ApplyValue failed")
	}
	if stored != 9 || h.rows[it.Handle()].value != int64(9) {
		t.Errorf("stored = %d, native = %v", stored, h.rows[it.Handle()].value)
	}
}

func TestCreateAdapterItemNil(t *testing.T) {
	g, _ := newTestGrid(t, Options{})
	if _, err := g.CreateAdapterItem("x", "x", nil); !errors.Is(err, ErrNilAdapter) {
		t.Errorf("err = %v, want ErrNilAdapter", err)
	}
}

func TestNativeEvents(t *testing.T) {
	g, h := newTestGrid(t, Options{})
	w := newWidget()
	items, _ := g.CreateProperties(w)
	addAll(t, g, items)

	var selected *Item
	g.OnSelect(func(it *Item) { selected = it })

	enabled := g.ItemByName("Enabled")
	h.listener.OnPropertyChanged(enabled.Handle(), false)
	if w.Enabled {
		t.Error("native change should be applied")
	}

	h.listener.OnPropertySelected(enabled.Handle())
	if selected != enabled {
		t.Errorf("selected = %v, want Enabled", selected)
	}

	h.listener.OnPropertyChanged(9999, true)
}

func TestNativeEventListenerPanic(t *testing.T) {
	g, h := newTestGrid(t, Options{})
	errs := captureErrors(t)
	w := newWidget()
	items, _ := g.CreateProperties(w)
	addAll(t, g, items)

	g.OnChange(func(it *Item) {
		w.Count = 7
		panic("listener failed")
	})
	count := g.ItemByName("Count")
	h.listener.OnPropertyChanged(count.Handle(), int64(42))

	if len(errs.panics) != 1 || errs.panics[0].Op != "propgrid.OnPropertyChanged" {
		t.Fatalf("panics = %v, want one from OnPropertyChanged", errs.panics)
	}
	if got := h.rows[count.Handle()].value; got != int64(7) {
		t.Errorf("native Count = %v, want row read back as 7", got)
	}

	g.OnSelect(func(*Item) { panic("select failed") })
	h.listener.OnPropertySelected(count.Handle())
	if len(errs.panics) != 2 {
		t.Errorf("selection listener panic should be reported, got %d panics", len(errs.panics))
	}
}

func TestRemoveAndDeleteProperty(t *testing.T) {
	g, h := newTestGrid(t, Options{})
	items, _ := g.CreateProperties(newWidget())
	addAll(t, g, items)
	total := g.Len()

	origin := g.ItemByName("Origin")
	if err := g.RemoveProperty(origin); err != nil {
		t.Fatal(err)
	}
	if g.Len() != total-3 {
		t.Errorf("Len = %d, want %d", g.Len(), total-3)
	}
	if origin.Handle() != 0 || g.ItemByName("Origin") != nil {
		t.Error("removed item should be detached")
	}
	if len(h.rows) != total-3 {
		t.Errorf("native rows = %d, want %d", len(h.rows), total-3)
	}
	if err := g.RemoveProperty(origin); !errors.Is(err, ErrNotAdded) {
		t.Errorf("second RemoveProperty = %v, want ErrNotAdded", err)
	}

	if err := g.Add(origin, nil); err != nil {
		t.Fatalf("re-adding a removed item: %v", err)
	}
	if g.Len() != total {
		t.Errorf("Len after re-add = %d, want %d", g.Len(), total)
	}

	if err := g.DeleteProperty(origin); err != nil {
		t.Fatal(err)
	}
	if origin.IsBound() || len(origin.Children()) != 0 {
		t.Error("deleted item should be released")
	}
}

func TestClear(t *testing.T) {
	g, h := newTestGrid(t, Options{})
	items, _ := g.CreateProperties(newWidget())
	addAll(t, g, items)

	if err := g.Clear(); err != nil {
		t.Fatal(err)
	}
	if g.Len() != 0 || len(g.Roots()) != 0 || len(h.rows) != 0 {
		t.Errorf("Clear left %d items, %d roots, %d rows", g.Len(), len(g.Roots()), len(h.rows))
	}
	if items[0].Handle() != 0 {
		t.Error("cleared items should lose their handles")
	}
}

func TestSelectionAndLayout(t *testing.T) {
	g, h := newTestGrid(t, Options{})
	it := g.CreateItem(KindString, "Name", "Name", "x")
	if err := g.Select(it); !errors.Is(err, ErrNotAdded) {
		t.Errorf("Select before Add = %v, want ErrNotAdded", err)
	}
	if err := g.Add(it, nil); err != nil {
		t.Fatal(err)
	}
	if err := g.Select(it); err != nil {
		t.Fatal(err)
	}
	if g.Selected() != it {
		t.Error("Selected should return the selected item")
	}
	if err := g.Select(nil); err != nil || g.Selected() != nil {
		t.Error("Select(nil) should clear the selection")
	}

	if err := g.SetPropertyLabel(it, "Full name"); err != nil {
		t.Fatal(err)
	}
	if it.Label() != "Full name" || h.rows[it.Handle()].label != "Full name" {
		t.Error("label not updated")
	}
	if err := g.SetPropertyReadOnly(it, true); err != nil || !h.rows[it.Handle()].readOnly {
		t.Error("read-only not forwarded")
	}
	if err := g.SetColumnCount(3); err != nil || h.columns != 3 {
		t.Error("column count not forwarded")
	}
	if err := g.SetSplitterPosition(1, 240); err != nil || g.SplitterPosition(1) != 240 {
		t.Error("splitter not forwarded")
	}
}

func TestFitColumns(t *testing.T) {
	g, h := newTestGrid(t, Options{})
	cat := g.CreateCategory("Geo")
	cat.AppendChild(g.CreateItem(KindString, "LongLabel", "LongLabel", ""))
	if err := g.Add(cat, nil); err != nil {
		t.Fatal(err)
	}

	// basicfont.Face7x13 advances 7px per glyph; the child is indented 16px.
	const want = 9*7 + 16 + labelPadding
	got, err := g.FitColumns()
	if err != nil {
		t.Fatal(err)
	}
	if got != want || h.splitters[0] != want {
		t.Errorf("FitColumns = %d (native %d), want %d", got, h.splitters[0], want)
	}
}

func TestEditableStateRoundTrip(t *testing.T) {
	g, h := newTestGrid(t, Options{})
	h.savedBlob = "sel=3;exp=1,2"

	flags := platform.StateSelection | platform.StateExpanded
	state, err := g.SaveEditableState(flags)
	if err != nil {
		t.Fatal(err)
	}
	parsed, err := ParseEditableState(state)
	if err != nil {
		t.Fatalf("ParseEditableState(%q): %v", state, err)
	}
	if parsed.Version != StateVersion || parsed.Flags != flags || parsed.Blob != h.savedBlob {
		t.Errorf("parsed = %+v", parsed)
	}

	if err := g.RestoreEditableState(state); err != nil {
		t.Fatal(err)
	}
	if h.restoredBlob != h.savedBlob || h.restoredFlags != flags {
		t.Errorf("restored %q/%v", h.restoredBlob, h.restoredFlags)
	}
}

func TestRestoreEditableStateRejects(t *testing.T) {
	g, h := newTestGrid(t, Options{})
	tests := []struct {
		state string
		want  error
	}{
		{"propgrid/v2.1.0;1;blob", ErrStateVersion},
		{"propgrid/v1;1;blob", nil},
		{"garbage", ErrStateFormat},
		{"propgrid/1.0.0;1;blob", ErrStateFormat},
		{"propgrid/v1.0.0;x;blob", ErrStateFormat},
		{"propgrid/v1.0.0;1", ErrStateFormat},
	}
	for _, tt := range tests {
		h.restoredBlob = ""
		err := g.RestoreEditableState(tt.state)
		if tt.want == nil {
			if err != nil || h.restoredBlob != "blob" {
				t.Errorf("RestoreEditableState(%q) = %v", tt.state, err)
			}
			continue
		}
		if !errors.Is(err, tt.want) {
			t.Errorf("RestoreEditableState(%q) = %v, want %v", tt.state, err, tt.want)
		}
	}
}
