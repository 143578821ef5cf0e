package platform

// TextSelection is a text box selection in rune offsets. BaseOffset is where
// the selection started and ExtentOffset where it ends, so Base may be
// greater than Extent for a backwards selection.
type TextSelection struct {
	BaseOffset   int
	ExtentOffset int
}

// TextSelectionCollapsed returns a caret at offset.
func TextSelectionCollapsed(offset int) TextSelection {
	return TextSelection{BaseOffset: offset, ExtentOffset: offset}
}

// Start returns the smaller offset.
func (s TextSelection) Start() int {
	return min(s.BaseOffset, s.ExtentOffset)
}

// End returns the larger offset.
func (s TextSelection) End() int {
	return max(s.BaseOffset, s.ExtentOffset)
}

// Len returns the number of selected runes.
func (s TextSelection) Len() int {
	return s.End() - s.Start()
}

// IsCollapsed reports whether the selection is a bare caret.
func (s TextSelection) IsCollapsed() bool {
	return s.BaseOffset == s.ExtentOffset
}

// IsValid reports whether both offsets are non-negative.
func (s TextSelection) IsValid() bool {
	return s.BaseOffset >= 0 && s.ExtentOffset >= 0
}

// Clamp limits both offsets to [0, n], keeping the direction.
func (s TextSelection) Clamp(n int) TextSelection {
	return TextSelection{
		BaseOffset:   clampOffset(s.BaseOffset, n),
		ExtentOffset: clampOffset(s.ExtentOffset, n),
	}
}

func clampOffset(offset, n int) int {
	return max(0, min(offset, n))
}
