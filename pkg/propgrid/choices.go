package propgrid

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-drift/propgrid/pkg/platform"
)

// EnumMember is one named value of an enumeration.
type EnumMember struct {
	Name  string
	Value int64
}

// Enum is implemented by the zero value of integer types the grid should
// edit with a choice list.
//
//	type Color int
//
//	func (Color) EnumMembers() []propgrid.EnumMember {
//		return []propgrid.EnumMember{{Name: "Red", Value: 0}, {Name: "Green", Value: 1}}
//	}
type Enum interface {
	EnumMembers() []EnumMember
}

// FlagsEnum marks a bit-mask enumeration. The zero member of a flags enum
// is left out of its choice list.
type FlagsEnum interface {
	Enum
	IsFlags() bool
}

// Choice is one entry of a choice list.
type Choice struct {
	Label string
	Value int64
}

// Choices is an ordered, immutable choice list.
type Choices struct {
	items []Choice
	flags bool
}

// NewChoices builds a choice list from explicit entries.
func NewChoices(items ...Choice) *Choices {
	return &Choices{items: append([]Choice(nil), items...)}
}

// NewFlagsChoices builds a bit-mask choice list from explicit entries.
func NewFlagsChoices(items ...Choice) *Choices {
	c := NewChoices(items...)
	c.flags = true
	return c
}

// Len returns the number of entries.
func (c *Choices) Len() int {
	return len(c.items)
}

// At returns the i'th entry.
func (c *Choices) At(i int) Choice {
	return c.items[i]
}

// All returns a copy of the entries.
func (c *Choices) All() []Choice {
	return append([]Choice(nil), c.items...)
}

// IsFlags reports whether the list describes a bit mask.
func (c *Choices) IsFlags() bool {
	return c.flags
}

// Label returns the label of the entry holding value.
func (c *Choices) Label(value int64) (string, bool) {
	for _, ch := range c.items {
		if ch.Value == value {
			return ch.Label, true
		}
	}
	return "", false
}

// Value returns the value of the entry labelled label.
func (c *Choices) Value(label string) (int64, bool) {
	for _, ch := range c.items {
		if ch.Label == label {
			return ch.Value, true
		}
	}
	return 0, false
}

// FlagsLabel renders a bit mask as "A | C". Bits with no entry are ignored.
func (c *Choices) FlagsLabel(value int64) string {
	var parts []string
	for _, ch := range c.items {
		if ch.Value != 0 && value&ch.Value == ch.Value {
			parts = append(parts, ch.Label)
		}
	}
	return strings.Join(parts, " | ")
}

// ParseFlags is the inverse of FlagsLabel.
func (c *Choices) ParseFlags(s string) (int64, bool) {
	var mask int64
	for _, part := range strings.Split(s, "|") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, ok := c.Value(part)
		if !ok {
			return 0, false
		}
		mask |= v
	}
	return mask, true
}

func (c *Choices) entries() []platform.ChoiceEntry {
	out := make([]platform.ChoiceEntry, len(c.items))
	for i, ch := range c.items {
		out[i] = platform.ChoiceEntry{Label: ch.Label, Value: ch.Value}
	}
	return out
}

// ChoicesCache memoizes the choice list of each enum type.
type ChoicesCache struct {
	mu sync.Mutex
	m  map[reflect.Type]*Choices
}

// NewChoicesCache returns an empty cache.
func NewChoicesCache() *ChoicesCache {
	return &ChoicesCache{m: make(map[reflect.Type]*Choices)}
}

var (
	defaultChoices     *ChoicesCache
	defaultChoicesOnce sync.Once
)

// DefaultChoicesCache returns the process-wide cache.
func DefaultChoicesCache() *ChoicesCache {
	defaultChoicesOnce.Do(func() {
		defaultChoices = NewChoicesCache()
	})
	return defaultChoices
}

// CreateChoicesOnce returns the choice list of an enum type, building it on
// the first call. Later calls return the same *Choices. It returns nil when
// t does not implement Enum.
func (c *ChoicesCache) CreateChoicesOnce(t reflect.Type) *Choices {
	if t == nil || !isIntegerKind(t.Kind()) || !t.Implements(enumType) {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if ch, ok := c.m[t]; ok {
		return ch
	}

	zero := reflect.Zero(t).Interface()
	flags := false
	if f, ok := zero.(FlagsEnum); ok {
		flags = f.IsFlags()
	}

	members := zero.(Enum).EnumMembers()
	ch := &Choices{items: make([]Choice, 0, len(members)), flags: flags}
	for _, m := range members {
		if flags && m.Value == 0 {
			continue
		}
		ch.items = append(ch.items, Choice{Label: m.Name, Value: m.Value})
	}
	c.m[t] = ch
	return ch
}
