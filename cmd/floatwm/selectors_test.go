package main

import (
	"flag"
	"io"
	"reflect"
	"testing"

	"github.com/1broseidon/floatwm/internal/command"
)

func parseWindowSelector(t *testing.T, args ...string) (command.WindowSelector, error) {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	sel := addWindowSelectorFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse(%v): %v", args, err)
	}
	return sel.selector()
}

func parseWorkspaceSelector(t *testing.T, args ...string) (command.WorkspaceSelector, error) {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	sel := addWorkspaceSelectorFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse(%v): %v", args, err)
	}
	return sel.selector()
}

func TestWindowSelector_DefaultsToFocused(t *testing.T) {
	sel, err := parseWindowSelector(t)
	if err != nil {
		t.Fatalf("selector: %v", err)
	}
	if !reflect.DeepEqual(sel, command.Focused{}) {
		t.Fatalf("got %#v, want Focused", sel)
	}
}

func TestWindowSelector_Variants(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want command.WindowSelector
	}{
		{"explicit focused", []string{"--focused"}, command.Focused{}},
		{"window id", []string{"--window", "42"}, command.Window{ID: 42}},
		{"closest east", []string{"--closest", "east"}, command.Closest{Direction: command.East}},
		{"cycle next", []string{"--cycle", "next"}, command.Cycle{Direction: command.Next}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := parseWindowSelector(t, tt.args...)
			if err != nil {
				t.Fatalf("selector: %v", err)
			}
			if !reflect.DeepEqual(sel, tt.want) {
				t.Fatalf("got %#v, want %#v", sel, tt.want)
			}
		})
	}
}

func TestWindowSelector_MutuallyExclusive(t *testing.T) {
	if _, err := parseWindowSelector(t, "--window", "42", "--closest", "east"); err == nil {
		t.Fatal("expected error for --window with --closest")
	}
	if _, err := parseWindowSelector(t, "--focused", "--cycle", "prev"); err == nil {
		t.Fatal("expected error for --focused with --cycle")
	}
}

func TestWindowSelector_RejectsBadDirection(t *testing.T) {
	if _, err := parseWindowSelector(t, "--closest", "up"); err == nil {
		t.Fatal("expected error for unknown direction")
	}
}

func TestWorkspaceSelector_RequiresExactlyOne(t *testing.T) {
	if _, err := parseWorkspaceSelector(t); err == nil {
		t.Fatal("expected error with neither --index nor --name")
	}
	if _, err := parseWorkspaceSelector(t, "--index", "0", "--name", "mail"); err == nil {
		t.Fatal("expected error with both --index and --name")
	}
}

func TestWorkspaceSelector_Variants(t *testing.T) {
	sel, err := parseWorkspaceSelector(t, "--index", "2")
	if err != nil {
		t.Fatalf("selector: %v", err)
	}
	if !reflect.DeepEqual(sel, command.Index{Index: 2}) {
		t.Fatalf("got %#v, want Index(2)", sel)
	}

	sel, err = parseWorkspaceSelector(t, "--name", "mail")
	if err != nil {
		t.Fatalf("selector: %v", err)
	}
	if !reflect.DeepEqual(sel, command.Name{Name: "mail"}) {
		t.Fatalf("got %#v, want Name(mail)", sel)
	}
}
