// Package state is the in-memory registry of the window manager:
// workspaces, managed clients, focus history, and drag-gesture anchors.
// It is owned and mutated exclusively by the dispatch goroutine, so no
// locking happens here. Every operation returns a typed error instead
// of aborting; callers decide what is fatal.
package state

import (
	"errors"
	"math"
	"strconv"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/floatwm/internal/command"
	"github.com/1broseidon/floatwm/internal/geometry"
)

var (
	ErrClientNotFound         = errors.New("client not found")
	ErrClientAlreadyExists    = errors.New("client already exists")
	ErrWorkspaceNotFound      = errors.New("workspace not found")
	ErrWorkspaceAlreadyExists = errors.New("workspace already exists")

	// ErrCycleNotSupported rejects Cycle selectors: they are part of
	// the wire schema but no cycle order is defined yet.
	ErrCycleNotSupported = errors.New("cycle selectors are not supported")
)

// MinClientSize is the floor a resize gesture can never shrink a window
// below, per axis.
var MinClientSize = geometry.New(32, 32)

// Client is everything the registry knows about one managed top-level
// window. A window id appears in at most one workspace at a time.
type Client struct {
	Window xproto.Window
	Pos    geometry.Vector2D
	Size   geometry.Vector2D
}

// State is the registry. The zero window id means "none" for focus
// bookkeeping; X never hands out id 0.
type State struct {
	// Root is the display's root window, fixed at startup.
	Root xproto.Window
	// Child is the invisible manager-owned window holding the EWMH
	// supporting-WM-check and name properties. It is never a Client.
	Child xproto.Window

	// Drag-gesture anchors, recorded on ButtonPress and read on every
	// MotionNotify while a drag or resize button is held.
	DragStartPos      geometry.Vector2D
	DragStartFramePos geometry.Vector2D

	workspaces  []*Workspace
	active      int
	focused     xproto.Window
	lastFocused xproto.Window
}

// New returns a registry with the single startup workspace "1".
func New() *State {
	return &State{
		workspaces: []*Workspace{newWorkspace("1")},
	}
}

// AddWorkspace appends an empty workspace. A nil name resolves to the
// 1-based ordinal of the new workspace.
func (s *State) AddWorkspace(name *string) error {
	resolved := strconv.Itoa(len(s.workspaces) + 1)
	if name != nil {
		resolved = *name
	}
	if s.workspaceIndexByName(resolved) >= 0 {
		return ErrWorkspaceAlreadyExists
	}
	s.workspaces = append(s.workspaces, newWorkspace(resolved))
	return nil
}

// RenameWorkspace changes only the workspace's name; clients and the
// position in the workspace order are untouched.
func (s *State) RenameWorkspace(sel command.WorkspaceSelector, newName string) error {
	idx, err := s.resolveWorkspace(sel)
	if err != nil {
		return err
	}
	if other := s.workspaceIndexByName(newName); other >= 0 && other != idx {
		return ErrWorkspaceAlreadyExists
	}
	s.workspaces[idx].name = newName
	return nil
}

// ActivateWorkspace switches the active workspace and returns the
// resolved index for the desktop-property side effect. Focus is left as
// is: it may now dangle into an inactive workspace, which is harmless
// because every mutating selector resolves against the active one.
func (s *State) ActivateWorkspace(sel command.WorkspaceSelector) (int, error) {
	idx, err := s.resolveWorkspace(sel)
	if err != nil {
		return 0, err
	}
	s.active = idx
	return idx, nil
}

// WorkspaceNames returns the names in insertion order.
func (s *State) WorkspaceNames() []string {
	names := make([]string, len(s.workspaces))
	for i, ws := range s.workspaces {
		names[i] = ws.name
	}
	return names
}

// ActiveIndex returns the index of the active workspace.
func (s *State) ActiveIndex() int {
	return s.active
}

// ActiveClients returns copies of the active workspace's clients in
// insertion order.
func (s *State) ActiveClients() []Client {
	return s.activeWorkspace().clients()
}

// AddClient registers a window in the active workspace.
func (s *State) AddClient(window xproto.Window, pos, size geometry.Vector2D) (Client, error) {
	ws := s.activeWorkspace()
	if ws.get(window) != nil {
		return Client{}, ErrClientAlreadyExists
	}
	c := &Client{Window: window, Pos: pos, Size: size}
	ws.add(c)
	return *c, nil
}

// RemoveClient removes the selected client from the active workspace
// and returns it. Removing the focused client clears focus; it does not
// promote the last-focused window.
func (s *State) RemoveClient(sel command.WindowSelector) (Client, error) {
	c, err := s.resolveClient(sel)
	if err != nil {
		return Client{}, err
	}
	s.activeWorkspace().remove(c.Window)
	if s.focused == c.Window {
		s.focused = 0
	}
	return *c, nil
}

// DragClient moves a client so that it tracks the cursor's delta from
// the gesture start, not the absolute cursor position.
func (s *State) DragClient(window xproto.Window, mousePos geometry.Vector2D) (Client, error) {
	c := s.activeWorkspace().get(window)
	if c == nil {
		return Client{}, ErrClientNotFound
	}
	c.Pos = s.DragStartFramePos.Add(mousePos).Sub(s.DragStartPos)
	return *c, nil
}

// DragResizeClient resizes a client toward the cursor, clamped to
// MinClientSize per axis.
func (s *State) DragResizeClient(window xproto.Window, mousePos geometry.Vector2D) (Client, error) {
	c := s.activeWorkspace().get(window)
	if c == nil {
		return Client{}, ErrClientNotFound
	}
	c.Size = mousePos.Sub(c.Pos).Max(MinClientSize)
	return *c, nil
}

// TeleportClient sets an absolute position.
func (s *State) TeleportClient(window xproto.Window, pos geometry.Vector2D) (Client, error) {
	c := s.activeWorkspace().get(window)
	if c == nil {
		return Client{}, ErrClientNotFound
	}
	c.Pos = pos
	return *c, nil
}

// FocusClient focuses the selected client, rotating the previous focus
// into last-focused. Selecting the root window clears focus.
func (s *State) FocusClient(sel command.WindowSelector) error {
	switch sel := sel.(type) {
	case command.Window:
		if s.Root != 0 && xproto.Window(sel.ID) == s.Root {
			s.setFocused(0)
			return nil
		}
	case command.Closest:
		_, err := s.FocusClosestClient(command.Focused{}, sel.Direction)
		return err
	case command.Cycle:
		return ErrCycleNotSupported
	}
	c, err := s.resolveClient(sel)
	if err != nil {
		return err
	}
	s.setFocused(c.Window)
	return nil
}

// FocusClosestClient focuses the client nearest to the selected one in
// the given direction. It returns nil with no error, leaving focus
// unchanged, when no client lies on that side.
func (s *State) FocusClosestClient(sel command.WindowSelector, dir command.CardinalDirection) (*Client, error) {
	ref, err := s.resolveClient(sel)
	if err != nil {
		return nil, err
	}
	closest := s.closestClient(ref, dir)
	if closest == nil {
		return nil, nil
	}
	s.setFocused(closest.Window)
	out := *closest
	return &out, nil
}

// SelectClient resolves a selector without touching focus. A Closest
// selector with no qualifying candidate resolves to nil with no error.
func (s *State) SelectClient(sel command.WindowSelector) (*Client, error) {
	switch sel := sel.(type) {
	case command.Closest:
		ref, err := s.resolveClient(command.Focused{})
		if err != nil {
			return nil, err
		}
		closest := s.closestClient(ref, sel.Direction)
		if closest == nil {
			return nil, nil
		}
		out := *closest
		return &out, nil
	case command.Cycle:
		return nil, ErrCycleNotSupported
	}
	c, err := s.resolveClient(sel)
	if err != nil {
		return nil, err
	}
	out := *c
	return &out, nil
}

// Focused returns the focused window id, or 0 when no window is focused.
func (s *State) Focused() xproto.Window {
	return s.focused
}

// LastFocused returns the previously focused window id, or 0.
func (s *State) LastFocused() xproto.Window {
	return s.lastFocused
}

// closestClient scans all other clients of the active workspace and
// picks the one with minimal squared Euclidean distance among those
// strictly on the dir side of ref: a half-plane filter, not a cone.
// Squared distance keeps the comparison exact without a square root;
// ties go to the first client in insertion order.
func (s *State) closestClient(ref *Client, dir command.CardinalDirection) *Client {
	var closest *Client
	minDistance := int32(math.MaxInt32)

	for _, c := range s.activeWorkspace().all() {
		if c.Window == ref.Window {
			continue
		}
		dx := c.Pos.X - ref.Pos.X
		dy := c.Pos.Y - ref.Pos.Y
		distance := dx*dx + dy*dy

		var qualifies bool
		switch dir {
		case command.East:
			qualifies = c.Pos.X > ref.Pos.X
		case command.West:
			qualifies = c.Pos.X < ref.Pos.X
		case command.North:
			qualifies = c.Pos.Y < ref.Pos.Y
		case command.South:
			qualifies = c.Pos.Y > ref.Pos.Y
		}
		if qualifies && distance < minDistance {
			minDistance = distance
			closest = c
		}
	}
	return closest
}

func (s *State) resolveClient(sel command.WindowSelector) (*Client, error) {
	var window xproto.Window
	switch sel := sel.(type) {
	case command.Focused:
		if s.focused == 0 {
			return nil, ErrClientNotFound
		}
		window = s.focused
	case command.Window:
		window = xproto.Window(sel.ID)
	default:
		return nil, ErrCycleNotSupported
	}

	c := s.activeWorkspace().get(window)
	if c == nil {
		return nil, ErrClientNotFound
	}
	return c, nil
}

func (s *State) resolveWorkspace(sel command.WorkspaceSelector) (int, error) {
	switch sel := sel.(type) {
	case command.Index:
		if sel.Index < 0 || sel.Index >= len(s.workspaces) {
			return 0, ErrWorkspaceNotFound
		}
		return sel.Index, nil
	case command.Name:
		if idx := s.workspaceIndexByName(sel.Name); idx >= 0 {
			return idx, nil
		}
		return 0, ErrWorkspaceNotFound
	}
	return 0, ErrWorkspaceNotFound
}

func (s *State) workspaceIndexByName(name string) int {
	for i, ws := range s.workspaces {
		if ws.name == name {
			return i
		}
	}
	return -1
}

func (s *State) activeWorkspace() *Workspace {
	return s.workspaces[s.active]
}

func (s *State) setFocused(window xproto.Window) {
	s.lastFocused = s.focused
	s.focused = window
}
