package main

import (
	"errors"
	"flag"

	"github.com/1broseidon/floatwm/internal/command"
)

// windowSelectorFlags is the mutually-exclusive flag group picking the
// target window of a focus/close command. With no flag set the focused
// window is targeted.
type windowSelectorFlags struct {
	focused bool
	window  uint
	closest string
	cycle   string
}

func addWindowSelectorFlags(fs *flag.FlagSet) *windowSelectorFlags {
	f := &windowSelectorFlags{}
	fs.BoolVar(&f.focused, "focused", false, "target the focused window (default)")
	fs.UintVar(&f.window, "window", 0, "target a window by id")
	fs.StringVar(&f.closest, "closest", "", "target the closest window in a direction (east|west|north|south)")
	fs.StringVar(&f.cycle, "cycle", "", "target the next window in cycle order (next|prev)")
	return f
}

func (f *windowSelectorFlags) selector() (command.WindowSelector, error) {
	set := 0
	if f.window != 0 {
		set++
	}
	if f.closest != "" {
		set++
	}
	if f.cycle != "" {
		set++
	}
	if set > 1 || (f.focused && set > 0) {
		return nil, errors.New("--focused, --window, --closest and --cycle are mutually exclusive")
	}

	switch {
	case f.window != 0:
		return command.Window{ID: uint32(f.window)}, nil
	case f.closest != "":
		dir, err := command.ParseCardinalDirection(f.closest)
		if err != nil {
			return nil, err
		}
		return command.Closest{Direction: dir}, nil
	case f.cycle != "":
		dir, err := command.ParseCycleDirection(f.cycle)
		if err != nil {
			return nil, err
		}
		return command.Cycle{Direction: dir}, nil
	default:
		return command.Focused{}, nil
	}
}

// workspaceSelectorFlags picks the target workspace. Exactly one of
// --index or --name is required.
type workspaceSelectorFlags struct {
	index int
	name  string
}

func addWorkspaceSelectorFlags(fs *flag.FlagSet) *workspaceSelectorFlags {
	f := &workspaceSelectorFlags{}
	fs.IntVar(&f.index, "index", -1, "target a workspace by 0-based index")
	fs.StringVar(&f.name, "name", "", "target a workspace by name")
	return f
}

func (f *workspaceSelectorFlags) selector() (command.WorkspaceSelector, error) {
	byIndex := f.index >= 0
	byName := f.name != ""
	if byIndex == byName {
		return nil, errors.New("exactly one of --index or --name is required")
	}
	if byIndex {
		return command.Index{Index: f.index}, nil
	}
	return command.Name{Name: f.name}, nil
}
