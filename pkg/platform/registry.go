package platform

import (
	"sync"

	"github.com/go-drift/propgrid/pkg/errors"
)

// channelRegistry manages all registered method channels.
type channelRegistry struct {
	methodChannels map[string]*MethodChannel
	mu             sync.RWMutex
}

var registry = &channelRegistry{
	methodChannels: make(map[string]*MethodChannel),
}

func (r *channelRegistry) registerMethod(name string, ch *MethodChannel) {
	r.mu.Lock()
	r.methodChannels[name] = ch
	r.mu.Unlock()
}

func (r *channelRegistry) unregisterMethod(name string) {
	r.mu.Lock()
	delete(r.methodChannels, name)
	r.mu.Unlock()
}

func (r *channelRegistry) getMethodChannel(name string) *MethodChannel {
	r.mu.RLock()
	ch := r.methodChannels[name]
	r.mu.RUnlock()
	return ch
}

var (
	bridgeMu     sync.RWMutex
	nativeBridge NativeBridge
)

// NativeBridge defines the interface for calling native platform code.
// The native backend installs one with SetNativeBridge during start-up.
type NativeBridge interface {
	// InvokeMethod calls a method on the native side.
	InvokeMethod(channel, method string, args []byte) ([]byte, error)
}

// SetNativeBridge sets the native bridge implementation.
func SetNativeBridge(bridge NativeBridge) {
	bridgeMu.Lock()
	nativeBridge = bridge
	bridgeMu.Unlock()
}

func currentBridge() NativeBridge {
	bridgeMu.RLock()
	defer bridgeMu.RUnlock()
	return nativeBridge
}

// invokeNative calls a method on the native side.
func invokeNative(channel, method string, args any) (any, error) {
	bridge := currentBridge()
	if bridge == nil {
		return nil, ErrPlatformUnavailable
	}

	argsData, err := DefaultCodec.Encode(args)
	if err != nil {
		return nil, err
	}

	resultData, err := bridge.InvokeMethod(channel, method, argsData)
	if err != nil {
		errors.ReportOp("platform.invoke."+method, errors.KindNative, "", err)
		return nil, err
	}

	return DefaultCodec.Decode(resultData)
}

// HandleMethodCall is called from the bridge when native invokes a Go method.
func HandleMethodCall(channel, method string, argsData []byte) ([]byte, error) {
	ch := registry.getMethodChannel(channel)
	if ch == nil {
		return nil, ErrChannelNotFound
	}

	args, err := DefaultCodec.Decode(argsData)
	if err != nil {
		return nil, err
	}

	result, err := ch.handleCall(method, args)
	if err != nil {
		return nil, err
	}

	return DefaultCodec.Encode(result)
}

// ResetForTest resets all global platform state for test isolation.
// It clears the native bridge, the dispatch function and every live view.
// This should only be called from tests.
func ResetForTest() {
	SetNativeBridge(nil)

	dispatchMu.Lock()
	dispatchFunc = nil
	dispatchMu.Unlock()

	if viewRegistry != nil {
		viewRegistry.mu.Lock()
		viewRegistry.views = make(map[int64]PlatformView)
		viewRegistry.mu.Unlock()
		viewRegistry.nextID.Store(0)
	}
}
