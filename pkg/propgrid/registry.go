package propgrid

import (
	"reflect"
	"sync"
	"sync/atomic"
)

// Registry caches per-type override metadata. Entries are created on first
// use and live as long as the Registry; there is no eviction.
type Registry struct {
	mu    sync.Mutex
	types map[reflect.Type]*TypeRegistry
	gen   atomic.Uint64
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[reflect.Type]*TypeRegistry)}
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process-wide registry used by grids created
// without an explicit one.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

func (r *Registry) generation() uint64 {
	return r.gen.Load()
}

func (r *Registry) touch() {
	r.gen.Add(1)
}

// ClearCache drops every value a Constructed view resolved from a base type.
// Overrides themselves are kept.
func (r *Registry) ClearCache() {
	r.touch()
}

// TypeRegistry returns the registry of t, creating it on first use.
// *T and T share one registry.
func (r *Registry) TypeRegistry(t reflect.Type) *TypeRegistry {
	t = normalize(t)
	r.mu.Lock()
	defer r.mu.Unlock()
	if tr, ok := r.types[t]; ok {
		return tr
	}
	tr := &TypeRegistry{
		registry: r,
		typ:      t,
		byIndex:  make(map[string]*PropRegistry),
		byName:   make(map[string]*PropRegistry),
	}
	r.types[t] = tr
	return tr
}

// Len returns the number of type registries created so far.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.types)
}

// PropRegistry returns the override registry of prop on t.
func (r *Registry) PropRegistry(t reflect.Type, prop Property) *PropRegistry {
	return r.TypeRegistry(t).PropRegistry(prop)
}

// PropRegistryByName returns the override registry of the field called name
// on t, or nil if t has no such exported field.
func (r *Registry) PropRegistryByName(t reflect.Type, name string) *PropRegistry {
	return r.TypeRegistry(t).PropRegistryByName(name)
}

// ValidBasePropRegistry searches t and then its base types for an existing
// property registry accepted by valid. On t itself the property is matched
// by descriptor; on base types it is matched by field name, so a field
// redeclared in a derived struct still inherits the base's overrides.
// It returns nil when no registry qualifies.
func (r *Registry) ValidBasePropRegistry(t reflect.Type, prop Property, valid func(*PropRegistry) bool) *PropRegistry {
	tr := r.TypeRegistry(t)
	if pr := tr.existing(prop); pr != nil && valid(pr) {
		return pr
	}
	// Embedding through a pointer may lead back to a type already seen.
	seen := map[*TypeRegistry]bool{tr: true}
	for base := tr.BaseTypeRegistry(); base != nil && !seen[base]; base = base.BaseTypeRegistry() {
		seen[base] = true
		if pr := base.existingByName(prop.Name); pr != nil && valid(pr) {
			return pr
		}
	}
	return nil
}

// TypeRegistry holds the property registries of one struct type.
type TypeRegistry struct {
	registry *Registry
	typ      reflect.Type

	mu      sync.Mutex
	byIndex map[string]*PropRegistry
	byName  map[string]*PropRegistry
}

// Type returns the registered type.
func (tr *TypeRegistry) Type() reflect.Type {
	return tr.typ
}

// BaseTypeRegistry returns the registry of the first embedded struct of the
// type, or nil when there is none.
func (tr *TypeRegistry) BaseTypeRegistry() *TypeRegistry {
	base := baseType(tr.typ)
	if base == nil {
		return nil
	}
	return tr.registry.TypeRegistry(base)
}

// Properties lists the editable fields of the type.
func (tr *TypeRegistry) Properties() []Property {
	return PropertiesOf(tr.typ)
}

// PropRegistry returns the registry of prop, creating it on first use.
// A descriptor taken from another type is re-resolved by name.
func (tr *TypeRegistry) PropRegistry(prop Property) *PropRegistry {
	if prop.Owner != tr.typ {
		return tr.PropRegistryByName(prop.Name)
	}
	key := indexKey(prop.Index)

	tr.mu.Lock()
	defer tr.mu.Unlock()
	if pr, ok := tr.byIndex[key]; ok {
		return pr
	}
	pr := newPropRegistry(tr, prop)
	tr.byIndex[key] = pr
	tr.byName[prop.Name] = pr
	return pr
}

// PropRegistryByName returns the registry of the field called name, or nil.
func (tr *TypeRegistry) PropRegistryByName(name string) *PropRegistry {
	if pr := tr.existingByName(name); pr != nil {
		return pr
	}
	prop, ok := propertyByName(tr.typ, name)
	if !ok {
		return nil
	}
	return tr.PropRegistry(prop)
}

func (tr *TypeRegistry) existing(prop Property) *PropRegistry {
	if prop.Owner != tr.typ {
		return tr.existingByName(prop.Name)
	}
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return tr.byIndex[indexKey(prop.Index)]
}

func (tr *TypeRegistry) existingByName(name string) *PropRegistry {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return tr.byName[name]
}

// PropRegistry holds the overrides of one property of one type.
type PropRegistry struct {
	owner       *TypeRegistry
	prop        Property
	params      *ItemParams
	constructed *Constructed
}

func newPropRegistry(owner *TypeRegistry, prop Property) *PropRegistry {
	pr := &PropRegistry{
		owner:  owner,
		prop:   prop,
		params: newItemParams(owner.registry.touch),
	}
	pr.constructed = &Constructed{prop: pr, cache: make(map[Param]cachedParam)}
	return pr
}

// Property returns the descriptor the registry was created for.
func (pr *PropRegistry) Property() Property {
	return pr.prop
}

// Params returns the raw, mutable override bag.
func (pr *PropRegistry) Params() *ItemParams {
	return pr.params
}

// Constructed returns the inheriting read-only view of the overrides.
func (pr *PropRegistry) Constructed() *Constructed {
	return pr.constructed
}
