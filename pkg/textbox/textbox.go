// Package textbox is the Go front-end of a native single or multi line
// text box.
package textbox

import (
	"sync"
	"unicode/utf8"

	"github.com/go-drift/propgrid/pkg/errors"
	"github.com/go-drift/propgrid/pkg/platform"
)

// TextBox forwards every operation to a platform.TextBoxHandler and
// enforces MaxLength on text set from Go.
type TextBox struct {
	handler platform.TextBoxHandler

	mu             sync.RWMutex
	listeners      map[int]func(text string)
	focusListeners map[int]func(focused bool)
	nextListenerID int
}

// New wraps handler and subscribes to its native events.
func New(handler platform.TextBoxHandler) *TextBox {
	tb := &TextBox{
		handler:        handler,
		listeners:      make(map[int]func(string)),
		focusListeners: make(map[int]func(bool)),
	}
	handler.SetClient(client{tb})
	return tb
}

// NewNative creates a native text box with config through the platform view
// registry.
func NewNative(config platform.TextBoxConfig) (*TextBox, error) {
	view, err := platform.NewTextBoxView(config)
	if err != nil {
		return nil, err
	}
	return New(view), nil
}

// Handler returns the native handler.
func (tb *TextBox) Handler() platform.TextBoxHandler { return tb.handler }

// Text returns the current text.
func (tb *TextBox) Text() string {
	return tb.handler.Text()
}

// SetText replaces the text, truncated to MaxLength runes when one is set.
func (tb *TextBox) SetText(text string) error {
	text = truncate(text, tb.handler.Config().MaxLength)
	if err := tb.handler.SetText(text); err != nil {
		return err
	}
	tb.notify(text)
	return nil
}

// Append adds text at the end.
func (tb *TextBox) Append(text string) error {
	return tb.SetText(tb.Text() + text)
}

// Clear empties the text box.
func (tb *TextBox) Clear() error {
	return tb.SetText("")
}

// Len returns the text length in runes.
func (tb *TextBox) Len() int {
	return utf8.RuneCountInString(tb.Text())
}

// Selection returns the current selection in rune offsets.
func (tb *TextBox) Selection() platform.TextSelection {
	return tb.handler.Selection()
}

// SetSelection selects the runes in [start, end). Offsets are clamped to
// the text.
func (tb *TextBox) SetSelection(start, end int) error {
	sel := platform.TextSelection{BaseOffset: start, ExtentOffset: end}
	return tb.handler.SetSelection(sel.Clamp(tb.Len()))
}

// SelectAll selects the whole text.
func (tb *TextBox) SelectAll() error {
	return tb.SetSelection(0, tb.Len())
}

// SelectedText returns the selected runes.
func (tb *TextBox) SelectedText() string {
	runes := []rune(tb.Text())
	sel := tb.Selection().Clamp(len(runes))
	return string(runes[sel.Start():sel.End()])
}

// Focus asks the native side for keyboard focus.
func (tb *TextBox) Focus() error {
	return tb.handler.Focus()
}

// IsFocused reports whether the text box has focus.
func (tb *TextBox) IsFocused() bool {
	return tb.handler.IsFocused()
}

func (tb *TextBox) update(fn func(*platform.TextBoxConfig)) error {
	cfg := tb.handler.Config()
	fn(&cfg)
	return tb.handler.UpdateConfig(cfg)
}

// ReadOnly reports whether the user can edit the text.
func (tb *TextBox) ReadOnly() bool { return tb.handler.Config().ReadOnly }

// SetReadOnly toggles editing.
func (tb *TextBox) SetReadOnly(readOnly bool) error {
	return tb.update(func(c *platform.TextBoxConfig) { c.ReadOnly = readOnly })
}

// Multiline reports whether the text box accepts line breaks.
func (tb *TextBox) Multiline() bool { return tb.handler.Config().Multiline }

// SetMultiline toggles line breaks.
func (tb *TextBox) SetMultiline(multiline bool) error {
	return tb.update(func(c *platform.TextBoxConfig) { c.Multiline = multiline })
}

// Password reports whether the text is masked.
func (tb *TextBox) Password() bool { return tb.handler.Config().Password }

// SetPassword toggles masking.
func (tb *TextBox) SetPassword(password bool) error {
	return tb.update(func(c *platform.TextBoxConfig) { c.Password = password })
}

// Placeholder returns the hint shown while the text box is empty.
func (tb *TextBox) Placeholder() string { return tb.handler.Config().Placeholder }

// SetPlaceholder sets the hint shown while the text box is empty.
func (tb *TextBox) SetPlaceholder(placeholder string) error {
	return tb.update(func(c *platform.TextBoxConfig) { c.Placeholder = placeholder })
}

// MaxLength returns the rune limit, 0 for none.
func (tb *TextBox) MaxLength() int { return tb.handler.Config().MaxLength }

// SetMaxLength sets the rune limit and truncates the current text to it.
func (tb *TextBox) SetMaxLength(n int) error {
	if n < 0 {
		n = 0
	}
	if err := tb.update(func(c *platform.TextBoxConfig) { c.MaxLength = n }); err != nil {
		return err
	}
	if text := tb.Text(); n > 0 && utf8.RuneCountInString(text) > n {
		return tb.SetText(text)
	}
	return nil
}

// OnTextChanged registers fn to run after the text changed, from Go or from
// the user. It returns an unsubscribe function.
func (tb *TextBox) OnTextChanged(fn func(text string)) func() {
	tb.mu.Lock()
	id := tb.nextListenerID
	tb.nextListenerID++
	tb.listeners[id] = fn
	tb.mu.Unlock()

	return func() {
		tb.mu.Lock()
		delete(tb.listeners, id)
		tb.mu.Unlock()
	}
}

// OnFocusChanged registers fn to run when focus is gained or lost. It
// returns an unsubscribe function.
func (tb *TextBox) OnFocusChanged(fn func(focused bool)) func() {
	tb.mu.Lock()
	id := tb.nextListenerID
	tb.nextListenerID++
	tb.focusListeners[id] = fn
	tb.mu.Unlock()

	return func() {
		tb.mu.Lock()
		delete(tb.focusListeners, id)
		tb.mu.Unlock()
	}
}

func (tb *TextBox) notify(text string) {
	tb.mu.RLock()
	listeners := make([]func(string), 0, len(tb.listeners))
	for _, fn := range tb.listeners {
		listeners = append(listeners, fn)
	}
	tb.mu.RUnlock()

	for _, fn := range listeners {
		fn(text)
	}
}

func (tb *TextBox) notifyFocus(focused bool) {
	tb.mu.RLock()
	listeners := make([]func(bool), 0, len(tb.focusListeners))
	for _, fn := range tb.focusListeners {
		listeners = append(listeners, fn)
	}
	tb.mu.RUnlock()

	for _, fn := range listeners {
		fn(focused)
	}
}

// client adapts native callbacks.
type client struct {
	tb *TextBox
}

func (c client) OnTextChanged(text string, _ platform.TextSelection) {
	defer errors.Recover("textbox.OnTextChanged")
	if limit := c.tb.MaxLength(); limit > 0 && utf8.RuneCountInString(text) > limit {
		if err := c.tb.SetText(text); err != nil {
			errors.ReportOp("textbox.OnTextChanged", errors.KindNative, "", err)
		}
		return
	}
	c.tb.notify(text)
}

func (c client) OnFocusChanged(focused bool) {
	defer errors.Recover("textbox.OnFocusChanged")
	c.tb.notifyFocus(focused)
}

func truncate(text string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	return string([]rune(text)[:limit])
}
