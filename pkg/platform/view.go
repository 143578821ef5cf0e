package platform

import (
	"sync"
	"sync/atomic"
)

// PlatformView represents a native widget hosted by a Go control.
type PlatformView interface {
	// ViewID returns the unique identifier for this view.
	ViewID() int64

	// ViewType returns the type identifier for this view (e.g., "propertygrid").
	ViewType() string

	// Dispose cleans up Go-side state for the view.
	Dispose()
}

// nativeEventReceiver is implemented by views that accept calls from native
// code (value edits, selection, text changes).
type nativeEventReceiver interface {
	handleNativeCall(method string, args map[string]any) (any, error)
}

// PlatformViewFactory creates platform views of a specific type.
type PlatformViewFactory interface {
	// Create creates a new platform view instance.
	Create(viewID int64, params map[string]any) (PlatformView, error)

	// ViewType returns the view type this factory creates.
	ViewType() string
}

// ViewRegistry manages view factories and live views.
type ViewRegistry struct {
	factories map[string]PlatformViewFactory
	views     map[int64]PlatformView
	nextID    atomic.Int64
	mu        sync.RWMutex
	channel   *MethodChannel
}

var (
	viewRegistry     *ViewRegistry
	viewRegistryOnce sync.Once
)

// GetViewRegistry returns the global view registry.
func GetViewRegistry() *ViewRegistry {
	viewRegistryOnce.Do(func() {
		viewRegistry = newViewRegistry("propgrid/views")
		viewRegistry.RegisterFactory(propertyGridViewFactory{})
		viewRegistry.RegisterFactory(textBoxViewFactory{})
	})
	return viewRegistry
}

func newViewRegistry(channel string) *ViewRegistry {
	r := &ViewRegistry{
		factories: make(map[string]PlatformViewFactory),
		views:     make(map[int64]PlatformView),
		channel:   NewMethodChannel(channel),
	}
	r.channel.SetHandler(r.handleMethodCall)
	return r
}

// RegisterFactory registers a factory for a view type.
func (r *ViewRegistry) RegisterFactory(factory PlatformViewFactory) {
	r.mu.Lock()
	r.factories[factory.ViewType()] = factory
	r.mu.Unlock()
}

// Create creates a new view of the given type and asks native to build it.
func (r *ViewRegistry) Create(viewType string, params map[string]any) (PlatformView, error) {
	r.mu.RLock()
	factory, ok := r.factories[viewType]
	r.mu.RUnlock()

	if !ok {
		return nil, ErrViewTypeNotFound
	}

	viewID := r.nextID.Add(1)

	view, err := factory.Create(viewID, params)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.views[viewID] = view
	r.mu.Unlock()

	_, err = r.channel.Invoke("create", map[string]any{
		"viewId":   viewID,
		"viewType": viewType,
		"params":   params,
	})
	if err != nil {
		r.mu.Lock()
		delete(r.views, viewID)
		r.mu.Unlock()
		return nil, err
	}

	return view, nil
}

// Dispose destroys a view.
func (r *ViewRegistry) Dispose(viewID int64) {
	r.mu.Lock()
	view, ok := r.views[viewID]
	if ok {
		delete(r.views, viewID)
	}
	r.mu.Unlock()

	if ok {
		view.Dispose()
		r.channel.Invoke("dispose", map[string]any{
			"viewId": viewID,
		})
	}
}

// GetView returns a live view by ID.
func (r *ViewRegistry) GetView(viewID int64) PlatformView {
	r.mu.RLock()
	view := r.views[viewID]
	r.mu.RUnlock()
	return view
}

// InvokeViewMethod invokes a method on a specific native view.
func (r *ViewRegistry) InvokeViewMethod(viewID int64, method string, args map[string]any) (any, error) {
	invokeArgs := make(map[string]any, len(args)+2)
	for k, v := range args {
		invokeArgs[k] = v
	}
	invokeArgs["viewId"] = viewID
	invokeArgs["method"] = method
	return r.channel.Invoke("invokeViewMethod", invokeArgs)
}

// handleMethodCall routes calls from native code to the addressed view.
func (r *ViewRegistry) handleMethodCall(method string, args any) (any, error) {
	m := argsMap(args)
	if m == nil {
		return nil, ErrInvalidArguments
	}
	viewID, ok := toInt64(m["viewId"])
	if !ok {
		return nil, ErrInvalidArguments
	}
	view := r.GetView(viewID)
	if view == nil {
		return nil, ErrViewNotFound
	}
	receiver, ok := view.(nativeEventReceiver)
	if !ok {
		return nil, ErrMethodNotFound
	}
	return receiver.handleNativeCall(method, m)
}
