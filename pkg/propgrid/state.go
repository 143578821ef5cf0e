package propgrid

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/go-drift/propgrid/pkg/platform"
)

// StateVersion tags saved editable states. Blobs from another major
// version are refused on restore.
const StateVersion = "v1.0.0"

const statePrefix = "propgrid/"

var (
	// ErrStateFormat is returned for a state string without a valid header.
	ErrStateFormat = stderrors.New("propgrid: malformed editable state")

	// ErrStateVersion is returned for a state saved by an incompatible version.
	ErrStateVersion = stderrors.New("propgrid: incompatible editable state version")
)

// EditableState is a decoded SaveEditableState result. Blob is owned by the
// native backend and is passed back unchanged.
type EditableState struct {
	Version string
	Flags   platform.StateFlags
	Blob    string
}

// String encodes the state as "propgrid/<version>;<flags>;<blob>".
func (s EditableState) String() string {
	return statePrefix + s.Version + ";" + strconv.Itoa(int(s.Flags)) + ";" + s.Blob
}

// ParseEditableState decodes a string produced by SaveEditableState.
func ParseEditableState(s string) (EditableState, error) {
	rest, ok := strings.CutPrefix(s, statePrefix)
	if !ok {
		return EditableState{}, ErrStateFormat
	}
	version, rest, ok := strings.Cut(rest, ";")
	if !ok || !semver.IsValid(version) {
		return EditableState{}, ErrStateFormat
	}
	flagsText, blob, ok := strings.Cut(rest, ";")
	if !ok {
		return EditableState{}, ErrStateFormat
	}
	flags, err := strconv.Atoi(flagsText)
	if err != nil || flags < 0 {
		return EditableState{}, ErrStateFormat
	}
	return EditableState{Version: version, Flags: platform.StateFlags(flags), Blob: blob}, nil
}

// Compatible reports whether the state can be restored by this version.
func (s EditableState) Compatible() bool {
	return semver.Major(s.Version) == semver.Major(StateVersion)
}

// SaveEditableState captures selection, expansion, scroll and splitter
// state as selected by flags.
func (g *PropertyGrid) SaveEditableState(flags platform.StateFlags) (string, error) {
	blob, err := g.handler.SaveEditableState(flags)
	if err != nil {
		return "", err
	}
	return EditableState{Version: StateVersion, Flags: flags, Blob: blob}.String(), nil
}

// RestoreEditableState applies a string produced by SaveEditableState,
// restoring only the parts it was saved with.
func (g *PropertyGrid) RestoreEditableState(state string) error {
	st, err := ParseEditableState(state)
	if err != nil {
		return err
	}
	if !st.Compatible() {
		return fmt.Errorf("%w: %s", ErrStateVersion, st.Version)
	}
	return g.handler.RestoreEditableState(st.Blob, st.Flags)
}
