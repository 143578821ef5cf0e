package platform

import (
	"sync"
	"unicode/utf8"
)

// TextBoxClient receives callbacks from a native text box.
type TextBoxClient interface {
	// OnTextChanged is called when text or selection changes.
	OnTextChanged(text string, selection TextSelection)

	// OnFocusChanged is called when focus state changes.
	OnFocusChanged(focused bool)
}

// TextBoxConfig holds the native presentation settings of a text box.
type TextBoxConfig struct {
	Multiline   bool
	ReadOnly    bool
	Password    bool
	MaxLength   int
	Placeholder string
}

func (c TextBoxConfig) params() map[string]any {
	return map[string]any{
		"multiline":   c.Multiline,
		"readOnly":    c.ReadOnly,
		"password":    c.Password,
		"maxLength":   c.MaxLength,
		"placeholder": c.Placeholder,
	}
}

// TextBoxHandler is the native capability behind a text box.
type TextBoxHandler interface {
	ViewID() int64

	SetText(text string) error
	Text() string
	SetSelection(selection TextSelection) error
	Selection() TextSelection
	UpdateConfig(config TextBoxConfig) error
	Config() TextBoxConfig
	Focus() error
	IsFocused() bool

	SetClient(client TextBoxClient)
}

// TextBoxView is the channel-backed TextBoxHandler.
type TextBoxView struct {
	viewID int64

	mu        sync.RWMutex
	config    TextBoxConfig
	client    TextBoxClient
	text      string
	selection TextSelection
	focused   bool
}

var _ TextBoxHandler = (*TextBoxView)(nil)

// NewTextBoxView creates a native text box through the global view registry.
func NewTextBoxView(config TextBoxConfig) (*TextBoxView, error) {
	view, err := GetViewRegistry().Create("textbox", config.params())
	if err != nil {
		return nil, err
	}
	return view.(*TextBoxView), nil
}

func newTextBoxView(viewID int64, config TextBoxConfig) *TextBoxView {
	return &TextBoxView{
		viewID:    viewID,
		config:    config,
		selection: TextSelectionCollapsed(0),
	}
}

func (v *TextBoxView) ViewID() int64 { return v.viewID }

func (v *TextBoxView) ViewType() string { return "textbox" }

func (v *TextBoxView) Dispose() {}

func (v *TextBoxView) invoke(method string, args map[string]any) error {
	_, err := GetViewRegistry().InvokeViewMethod(v.viewID, method, args)
	return err
}

// SetText replaces the text and collapses the selection at its end.
func (v *TextBoxView) SetText(text string) error {
	if err := v.invoke("setText", map[string]any{"text": text}); err != nil {
		return err
	}
	v.mu.Lock()
	v.text = text
	v.selection = TextSelectionCollapsed(utf8.RuneCountInString(text))
	v.mu.Unlock()
	return nil
}

func (v *TextBoxView) Text() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.text
}

func (v *TextBoxView) SetSelection(selection TextSelection) error {
	if !selection.IsValid() {
		return ErrInvalidArguments
	}
	if err := v.invoke("setSelection", map[string]any{
		"selectionBase":   selection.BaseOffset,
		"selectionExtent": selection.ExtentOffset,
	}); err != nil {
		return err
	}
	v.mu.Lock()
	v.selection = selection
	v.mu.Unlock()
	return nil
}

func (v *TextBoxView) Selection() TextSelection {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.selection
}

func (v *TextBoxView) UpdateConfig(config TextBoxConfig) error {
	if err := v.invoke("updateConfig", config.params()); err != nil {
		return err
	}
	v.mu.Lock()
	v.config = config
	v.mu.Unlock()
	return nil
}

func (v *TextBoxView) Config() TextBoxConfig {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.config
}

func (v *TextBoxView) Focus() error {
	return v.invoke("focus", nil)
}

func (v *TextBoxView) IsFocused() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.focused
}

func (v *TextBoxView) SetClient(client TextBoxClient) {
	v.mu.Lock()
	v.client = client
	v.mu.Unlock()
}

func (v *TextBoxView) handleNativeCall(method string, args map[string]any) (any, error) {
	switch method {
	case "onTextChanged":
		text, ok := args["text"].(string)
		if !ok {
			return nil, ErrInvalidArguments
		}
		base, _ := toInt(args["selectionBase"])
		extent, _ := toInt(args["selectionExtent"])
		sel := TextSelection{BaseOffset: base, ExtentOffset: extent}

		v.mu.Lock()
		v.text = text
		v.selection = sel
		client := v.client
		v.mu.Unlock()

		if client != nil {
			Dispatch(func() { client.OnTextChanged(text, sel) })
		}
		return nil, nil

	case "onFocusChanged":
		focused, ok := toBool(args["focused"])
		if !ok {
			return nil, ErrInvalidArguments
		}
		v.mu.Lock()
		v.focused = focused
		client := v.client
		v.mu.Unlock()

		if client != nil {
			Dispatch(func() { client.OnFocusChanged(focused) })
		}
		return nil, nil

	default:
		return nil, ErrMethodNotFound
	}
}

type textBoxViewFactory struct{}

func (textBoxViewFactory) ViewType() string { return "textbox" }

func (textBoxViewFactory) Create(viewID int64, params map[string]any) (PlatformView, error) {
	config := TextBoxConfig{}
	if v, ok := params["multiline"].(bool); ok {
		config.Multiline = v
	}
	if v, ok := params["readOnly"].(bool); ok {
		config.ReadOnly = v
	}
	if v, ok := params["password"].(bool); ok {
		config.Password = v
	}
	if v, ok := toInt(params["maxLength"]); ok {
		config.MaxLength = v
	}
	if v, ok := params["placeholder"].(string); ok {
		config.Placeholder = v
	}
	return newTextBoxView(viewID, config), nil
}
