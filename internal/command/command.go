// Package command defines the closed set of user intents the window
// manager accepts over IPC, plus the tagged JSON wire codec. A command
// is immutable, carries no reference into manager state, and is the
// sole unit of cross-process communication.
package command

import (
	"fmt"
	"strings"
)

// Command is a closed union. The concrete types below are the only
// implementations; dispatch sites switch over them exhaustively.
type Command interface {
	isCommand()
}

// Quit stops the dispatch loop and exits the manager process.
type Quit struct{}

// Focus focuses the window the selector resolves to.
type Focus struct {
	Selector WindowSelector
}

// Close asks the selected window to close gracefully, or kills its
// client if it does not participate in WM_DELETE_WINDOW.
type Close struct {
	Selector WindowSelector
}

// AddWorkspace appends a new empty workspace. A nil Name picks the
// 1-based ordinal of the new workspace.
type AddWorkspace struct {
	Name *string
}

// RenameWorkspace renames the selected workspace without reordering it.
type RenameWorkspace struct {
	Selector WorkspaceSelector
	Name     string
}

// ActivateWorkspace switches the active workspace.
type ActivateWorkspace struct {
	Selector WorkspaceSelector
}

// SetBorderWidth reconfigures the border width of every client in the
// active workspace.
type SetBorderWidth struct {
	Width uint32
}

// SetBorderColor recolors every client in the active workspace except
// the focused one.
type SetBorderColor struct {
	Color uint32
}

// SetFocusedBorderColor recolors only the focused client, if any.
type SetFocusedBorderColor struct {
	Color uint32
}

func (Quit) isCommand()                  {}
func (Focus) isCommand()                 {}
func (Close) isCommand()                 {}
func (AddWorkspace) isCommand()          {}
func (RenameWorkspace) isCommand()       {}
func (ActivateWorkspace) isCommand()     {}
func (SetBorderWidth) isCommand()        {}
func (SetBorderColor) isCommand()        {}
func (SetFocusedBorderColor) isCommand() {}

// WindowSelector picks a window to operate on. Selectors are resolved
// against live registry state at command-application time, never cached.
type WindowSelector interface {
	isWindowSelector()
}

// Focused selects the currently focused window.
type Focused struct{}

// Window selects a window by raw X id. Construction is total; whether
// the id denotes a live, managed window is decided at lookup time.
type Window struct {
	ID uint32
}

// Closest selects the nearest window in a cardinal direction from the
// focused window.
type Closest struct {
	Direction CardinalDirection
}

// Cycle selects the next or previous window in cycle order. It is part
// of the wire schema but no cycle order is defined yet; resolution
// rejects it.
type Cycle struct {
	Direction CycleDirection
}

func (Focused) isWindowSelector() {}
func (Window) isWindowSelector()  {}
func (Closest) isWindowSelector() {}
func (Cycle) isWindowSelector()   {}

// WorkspaceSelector picks a workspace by position or name.
type WorkspaceSelector interface {
	isWorkspaceSelector()
}

// Index selects a workspace by 0-based position.
type Index struct {
	Index int
}

// Name selects a workspace by its unique name.
type Name struct {
	Name string
}

func (Index) isWorkspaceSelector() {}
func (Name) isWorkspaceSelector()  {}

// CardinalDirection is one of the four screen directions.
type CardinalDirection string

const (
	East  CardinalDirection = "East"
	West  CardinalDirection = "West"
	North CardinalDirection = "North"
	South CardinalDirection = "South"
)

// CycleDirection walks a cycle order forward or backward.
type CycleDirection string

const (
	Next CycleDirection = "Next"
	Prev CycleDirection = "Prev"
)

// ParseCardinalDirection maps a CLI argument to a direction.
func ParseCardinalDirection(s string) (CardinalDirection, error) {
	switch strings.ToLower(s) {
	case "east":
		return East, nil
	case "west":
		return West, nil
	case "north":
		return North, nil
	case "south":
		return South, nil
	}
	return "", fmt.Errorf("invalid direction %q (want east, west, north or south)", s)
}

// ParseCycleDirection maps a CLI argument to a cycle direction.
func ParseCycleDirection(s string) (CycleDirection, error) {
	switch strings.ToLower(s) {
	case "next":
		return Next, nil
	case "prev":
		return Prev, nil
	}
	return "", fmt.Errorf("invalid cycle direction %q (want next or prev)", s)
}
