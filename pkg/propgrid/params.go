package propgrid

// Param names one override slot of ItemParams.
type Param uint8

const (
	ParamLabel Param = iota
	ParamDescription
	ParamCategory
	ParamChoices
	ParamReadOnly
	ParamHidden
	ParamEditKind
	ParamPrecision
	ParamFormat
	ParamLocale
	ParamMin
	ParamMax
	ParamValidator
)

// ItemParams is the raw override bag of one property. Every slot is optional;
// getters report whether the slot is set.
type ItemParams struct {
	values map[Param]any
	// onChange is called after every mutation so that cached Constructed
	// views can notice.
	onChange func()
}

func newItemParams(onChange func()) *ItemParams {
	return &ItemParams{values: make(map[Param]any), onChange: onChange}
}

func (p *ItemParams) get(param Param) (any, bool) {
	v, ok := p.values[param]
	return v, ok
}

func (p *ItemParams) set(param Param, v any) *ItemParams {
	p.values[param] = v
	if p.onChange != nil {
		p.onChange()
	}
	return p
}

// Unset clears a slot.
func (p *ItemParams) Unset(param Param) *ItemParams {
	if _, ok := p.values[param]; !ok {
		return p
	}
	delete(p.values, param)
	if p.onChange != nil {
		p.onChange()
	}
	return p
}

// IsSet reports whether a slot holds a value.
func (p *ItemParams) IsSet(param Param) bool {
	_, ok := p.values[param]
	return ok
}

// SetLabel sets the row caption.
func (p *ItemParams) SetLabel(label string) *ItemParams { return p.set(ParamLabel, label) }

// SetDescription sets the help text shown under the grid.
func (p *ItemParams) SetDescription(desc string) *ItemParams { return p.set(ParamDescription, desc) }

// SetCategory sets the group the row is listed under.
func (p *ItemParams) SetCategory(category string) *ItemParams { return p.set(ParamCategory, category) }

// SetChoices restricts the editor to a fixed list.
func (p *ItemParams) SetChoices(choices *Choices) *ItemParams { return p.set(ParamChoices, choices) }

// SetReadOnly blocks edits from the native side.
func (p *ItemParams) SetReadOnly(readOnly bool) *ItemParams { return p.set(ParamReadOnly, readOnly) }

// SetHidden keeps the property out of CreateProperties.
func (p *ItemParams) SetHidden(hidden bool) *ItemParams { return p.set(ParamHidden, hidden) }

// SetEditKind forces a different editor, e.g. KindString for a number that
// should be typed freely.
func (p *ItemParams) SetEditKind(kind ValueKind) *ItemParams { return p.set(ParamEditKind, kind) }

// SetPrecision sets the number of decimals shown by float editors.
func (p *ItemParams) SetPrecision(decimals int) *ItemParams { return p.set(ParamPrecision, decimals) }

// SetFormat sets a display layout: a time layout for date editors, a
// fmt verb such as "%.3e" for numbers.
func (p *ItemParams) SetFormat(format string) *ItemParams { return p.set(ParamFormat, format) }

// SetLocale sets the BCP 47 tag the native editor formats with.
func (p *ItemParams) SetLocale(tag string) *ItemParams { return p.set(ParamLocale, tag) }

// SetMin sets the lowest accepted number.
func (p *ItemParams) SetMin(v float64) *ItemParams { return p.set(ParamMin, v) }

// SetMax sets the highest accepted number.
func (p *ItemParams) SetMax(v float64) *ItemParams { return p.set(ParamMax, v) }

// SetValidator sets the check run before a native edit is committed.
func (p *ItemParams) SetValidator(v Validator) *ItemParams { return p.set(ParamValidator, v) }

// Label returns the caption stored on this property only; ok is false when
// it is unset. The other getters below read their slot the same way.
func (p *ItemParams) Label() (string, bool) { return typed[string](p.get(ParamLabel)) }

// Description returns the stored help text.
func (p *ItemParams) Description() (string, bool) { return typed[string](p.get(ParamDescription)) }

// Category returns the stored group name.
func (p *ItemParams) Category() (string, bool) { return typed[string](p.get(ParamCategory)) }

// Choices returns the stored fixed value list.
func (p *ItemParams) Choices() (*Choices, bool) { return typed[*Choices](p.get(ParamChoices)) }

// ReadOnly returns the stored read-only flag.
func (p *ItemParams) ReadOnly() (bool, bool) { return typed[bool](p.get(ParamReadOnly)) }

// Hidden returns the stored hidden flag.
func (p *ItemParams) Hidden() (bool, bool) { return typed[bool](p.get(ParamHidden)) }

// EditKind returns the stored forced editor kind.
func (p *ItemParams) EditKind() (ValueKind, bool) { return typed[ValueKind](p.get(ParamEditKind)) }

// Precision returns the stored decimal count.
func (p *ItemParams) Precision() (int, bool) { return typed[int](p.get(ParamPrecision)) }

// Format returns the stored display layout.
func (p *ItemParams) Format() (string, bool) { return typed[string](p.get(ParamFormat)) }

// Locale returns the stored culture tag.
func (p *ItemParams) Locale() (string, bool) { return typed[string](p.get(ParamLocale)) }

// Min returns the stored lower bound.
func (p *ItemParams) Min() (float64, bool) { return typed[float64](p.get(ParamMin)) }

// Max returns the stored upper bound.
func (p *ItemParams) Max() (float64, bool) { return typed[float64](p.get(ParamMax)) }

// Validator returns the stored edit check.
func (p *ItemParams) Validator() (Validator, bool) { return typed[Validator](p.get(ParamValidator)) }

func typed[T any](v any, ok bool) (T, bool) {
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// Constructed is the read-only view of a property's parameters with unset
// slots inherited from base types.
//
// A slot set on the property's own bag always wins and is read fresh. An
// unset slot is resolved through Registry.ValidBasePropRegistry, nearest
// ancestor first, and the outcome (including "not found") is cached. The
// cache is keyed by the registry generation, so any later override anywhere
// in the registry invalidates it. When no ancestor sets the slot, the field's
// struct tag supplies the last default.
type Constructed struct {
	prop  *PropRegistry
	cache map[Param]cachedParam
}

type cachedParam struct {
	gen   uint64
	value any
	ok    bool
}

func (c *Constructed) lookup(param Param) (any, bool) {
	if v, ok := c.prop.params.get(param); ok {
		return v, true
	}

	reg := c.prop.owner.registry
	gen := reg.generation()
	entry, cached := c.cache[param]
	if !cached || entry.gen != gen {
		entry = cachedParam{gen: gen}
		base := reg.ValidBasePropRegistry(c.prop.owner.typ, c.prop.prop, func(pr *PropRegistry) bool {
			return pr != c.prop && pr.params.IsSet(param)
		})
		if base != nil {
			entry.value, entry.ok = base.params.get(param)
		}
		c.cache[param] = entry
	}
	if entry.ok {
		return entry.value, true
	}

	v, ok := c.prop.prop.defaults[param]
	return v, ok
}

// Label returns the resolved caption: own value, then the nearest base
// type, then the struct tag. The other getters below resolve the same way.
func (c *Constructed) Label() (string, bool) { return typed[string](c.lookup(ParamLabel)) }

// Description returns the resolved help text.
func (c *Constructed) Description() (string, bool) { return typed[string](c.lookup(ParamDescription)) }

// Category returns the resolved group name.
func (c *Constructed) Category() (string, bool) { return typed[string](c.lookup(ParamCategory)) }

// Choices returns the resolved fixed value list.
func (c *Constructed) Choices() (*Choices, bool) { return typed[*Choices](c.lookup(ParamChoices)) }

// ReadOnly returns the resolved read-only flag.
func (c *Constructed) ReadOnly() (bool, bool) { return typed[bool](c.lookup(ParamReadOnly)) }

// Hidden returns the resolved hidden flag.
func (c *Constructed) Hidden() (bool, bool) { return typed[bool](c.lookup(ParamHidden)) }

// EditKind returns the resolved forced editor kind.
func (c *Constructed) EditKind() (ValueKind, bool) { return typed[ValueKind](c.lookup(ParamEditKind)) }

// Precision returns the resolved decimal count.
func (c *Constructed) Precision() (int, bool) { return typed[int](c.lookup(ParamPrecision)) }

// Format returns the resolved display layout.
func (c *Constructed) Format() (string, bool) { return typed[string](c.lookup(ParamFormat)) }

// Locale returns the resolved culture tag.
func (c *Constructed) Locale() (string, bool) { return typed[string](c.lookup(ParamLocale)) }

// Min returns the resolved lower bound.
func (c *Constructed) Min() (float64, bool) { return typed[float64](c.lookup(ParamMin)) }

// Max returns the resolved upper bound.
func (c *Constructed) Max() (float64, bool) { return typed[float64](c.lookup(ParamMax)) }

// Validator returns the resolved edit check.
func (c *Constructed) Validator() (Validator, bool) { return typed[Validator](c.lookup(ParamValidator)) }

// LabelOr returns the resolved label or fallback.
func (c *Constructed) LabelOr(fallback string) string {
	if l, ok := c.Label(); ok && l != "" {
		return l
	}
	return fallback
}

// IsReadOnly reports the resolved read-only flag, false when unset.
func (c *Constructed) IsReadOnly() bool {
	ro, _ := c.ReadOnly()
	return ro
}

// IsHidden reports the resolved hidden flag, false when unset.
func (c *Constructed) IsHidden() bool {
	h, _ := c.Hidden()
	return h
}
