// Package messages defines the typed instructions that flow between the
// PTY collaborator, the Screen event loop, and the client-facing wire, per
// the one-struct-per-message-type convention used throughout this core.
package messages

// PaneID identifies a single pane's PTY across all message types.
type PaneID int

// Direction is a split or focus-move direction.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

// --- PTY collaborator contract (consumed by the PTY goroutines) ---

// NewTab requests a new tab with a single pane spawning the given command.
type NewTab struct {
	Command string
	Cwd     string
	Rows    uint16
	Cols    uint16
}

// ClosePane requests the PTY collaborator tear down a single pane's child
// process.
type ClosePane struct {
	Pane PaneID
}

// CloseTab requests the PTY collaborator tear down every pane in a tab.
type CloseTab struct {
	Panes []PaneID
}

// Exit requests the PTY collaborator shut down all children.
type Exit struct{}

// --- PTY collaborator → Screen (consumed by the Screen event loop) ---

// PtyBytes carries raw bytes read from one pane's PTY for the grid to
// interpret.
type PtyBytes struct {
	Pane PaneID
	Data []byte
}

// PaneExited announces a pane's child process has exited (or its PTY read
// loop hit a fatal I/O error), so the Screen should reclaim its layout
// space and drop its bookkeeping.
type PaneExited struct {
	Pane PaneID
}

// NewPane announces a pane's PTY is ready and should be attached to the
// active tab.
type NewPane struct {
	Pane PaneID
}

// HorizontalSplit requests splitting the focused pane along a horizontal
// divider (stacking the new pane below it).
type HorizontalSplit struct {
	Pane PaneID
}

// VerticalSplit requests splitting the focused pane along a vertical
// divider (placing the new pane to its right).
type VerticalSplit struct {
	Pane PaneID
}

// ApplyLayout requests a tab be built from a parsed layout tree, with one
// PTY already spawned per leaf.
type ApplyLayout struct {
	Layout LayoutNode
	Panes  []PaneID
}

// LayoutNode is one node of a parsed layout tree: either a leaf (a single
// pane) or a split with weighted children.
type LayoutNode struct {
	SplitVertical bool
	Children      []LayoutChild
}

// LayoutChild pairs a layout subtree with its share of the parent's space.
type LayoutChild struct {
	Weight float64
	Leaf   bool
	Node   *LayoutNode
}

// --- Screen event loop input (everything the Screen dispatches) ---

// Resize requests resizing the focused pane by one step in a direction.
type Resize struct {
	Direction Direction
}

// ResizeTab requests proportionally resizing every pane in the active tab
// to fit a new terminal size.
type ResizeTab struct {
	Rows uint16
	Cols uint16
}

// FocusMove requests moving focus to the nearest pane in a direction.
type FocusMove struct {
	Direction Direction
}

// FocusPane requests focus move to a specific pane by ID.
type FocusPane struct {
	Pane PaneID
}

// ScrollUp requests scrolling the focused pane's viewport up by n lines.
type ScrollUp struct {
	Lines int
}

// ScrollDown requests scrolling the focused pane's viewport down by n
// lines.
type ScrollDown struct {
	Lines int
}

// ClearScroll resets the focused pane's viewport to the live screen.
type ClearScroll struct{}

// SetSelectable marks a pane as excluded from or included in the focus
// and resize traversal order (used for fixed chrome panes).
type SetSelectable struct {
	Pane       PaneID
	Selectable bool
}

// SetPaneBorder toggles whether a pane draws its border.
type SetPaneBorder struct {
	Pane    PaneID
	Visible bool
}

// SetMaxPaneHeight caps a pane's height: pane resize steps and pane
// closing do not grow it past the cap. Whole-tab resize does not consult
// it.
type SetMaxPaneHeight struct {
	Pane   PaneID
	Height int
}

// TogglePaneFullscreen toggles the focused pane's fullscreen state,
// hiding or restoring every other pane in the tab.
type TogglePaneFullscreen struct{}

// ToggleSyncInput toggles whether keystrokes sent to the focused pane are
// broadcast to every pane in the active tab.
type ToggleSyncInput struct{}

// SwitchTab switches the active tab by index.
type SwitchTab struct {
	Index int
}

// GoToNextTab switches to the next tab, wrapping around.
type GoToNextTab struct{}

// GoToPreviousTab switches to the previous tab, wrapping around.
type GoToPreviousTab struct{}

// CloseActiveTab closes the currently active tab.
type CloseActiveTab struct{}

// UpdateTabName sets the active tab's display name.
type UpdateTabName struct {
	Name string
}

// TerminalResize announces the client's terminal dimensions changed.
type TerminalResize struct {
	Rows uint16
	Cols uint16
}

// ChangeMode switches the Screen's input-interpretation mode (normal vs.
// a pending keybinding prefix), mirroring the original multiplexer's modal
// keybinding model.
type ChangeMode struct {
	Mode string
}

// Attached signals a client reconnected; rendering resumes from the next
// render request.
type Attached struct{}

// Detached signals the client disconnected; renders are suppressed until
// a new Attached arrives.
type Detached struct{}

// --- Client-facing wire ---

// NewClient announces a client connection with its negotiated terminal
// attributes and CLI options.
type NewClient struct {
	Cols, Rows uint16
	Args       []string
}

// ClientExit announces the client disconnected cleanly.
type ClientExit struct{}

// Render carries a composed frame to send to the client. Skip=true (with
// an empty Frame) means no frame should be sent.
type Render struct {
	Frame string
	Skip  bool
}

// UnblockInputThread tells the client it may resume forwarding keystrokes,
// sent once the Screen has drained its backlog of pending input.
type UnblockInputThread struct{}

// ServerError carries a fatal error and its trace for the client to
// display before the connection is torn down.
type ServerError struct {
	Err   error
	Trace string
}

func (e ServerError) Error() string {
	return e.Err.Error()
}
