package state

import (
	"errors"
	"reflect"
	"testing"

	"github.com/1broseidon/floatwm/internal/command"
)

func TestAddWorkspace_DefaultNamesAreOrdinals(t *testing.T) {
	s := New()
	if err := s.AddWorkspace(nil); err != nil {
		t.Fatalf("AddWorkspace: %v", err)
	}
	if err := s.AddWorkspace(nil); err != nil {
		t.Fatalf("AddWorkspace: %v", err)
	}

	want := []string{"1", "2", "3"}
	if got := s.WorkspaceNames(); !reflect.DeepEqual(got, want) {
		t.Fatalf("WorkspaceNames() = %v, want %v", got, want)
	}
}

func TestAddWorkspace_DuplicateNameFails(t *testing.T) {
	s := New()
	name := "1"
	if err := s.AddWorkspace(&name); !errors.Is(err, ErrWorkspaceAlreadyExists) {
		t.Fatalf("AddWorkspace(%q) = %v, want ErrWorkspaceAlreadyExists", name, err)
	}
	if got := s.WorkspaceNames(); len(got) != 1 {
		t.Fatalf("WorkspaceNames() = %v, want just the startup workspace", got)
	}
}

func TestRenameWorkspace_PreservesOrderAndClients(t *testing.T) {
	s := New()
	if err := s.AddWorkspace(nil); err != nil {
		t.Fatalf("AddWorkspace: %v", err)
	}
	addClient(t, s, 1, 0, 0)

	if err := s.RenameWorkspace(command.Index{Index: 0}, "code"); err != nil {
		t.Fatalf("RenameWorkspace: %v", err)
	}

	want := []string{"code", "2"}
	if got := s.WorkspaceNames(); !reflect.DeepEqual(got, want) {
		t.Fatalf("WorkspaceNames() = %v, want %v", got, want)
	}
	if n := len(s.ActiveClients()); n != 1 {
		t.Fatalf("have %d clients after rename, want 1", n)
	}
}

func TestRenameWorkspace_ToExistingNameFails(t *testing.T) {
	s := New()
	if err := s.AddWorkspace(nil); err != nil {
		t.Fatalf("AddWorkspace: %v", err)
	}

	if err := s.RenameWorkspace(command.Index{Index: 1}, "1"); !errors.Is(err, ErrWorkspaceAlreadyExists) {
		t.Fatalf("RenameWorkspace = %v, want ErrWorkspaceAlreadyExists", err)
	}
	want := []string{"1", "2"}
	if got := s.WorkspaceNames(); !reflect.DeepEqual(got, want) {
		t.Fatalf("WorkspaceNames() = %v, want unchanged %v", got, want)
	}
}

func TestRenameWorkspace_SameNameIsNoop(t *testing.T) {
	s := New()
	if err := s.RenameWorkspace(command.Name{Name: "1"}, "1"); err != nil {
		t.Fatalf("renaming to own name: %v", err)
	}
}

func TestRenameWorkspace_NotFound(t *testing.T) {
	s := New()
	if err := s.RenameWorkspace(command.Index{Index: 5}, "x"); !errors.Is(err, ErrWorkspaceNotFound) {
		t.Fatalf("RenameWorkspace = %v, want ErrWorkspaceNotFound", err)
	}
}

func TestActivateWorkspace_ByIndexAndName(t *testing.T) {
	s := New()
	if err := s.AddWorkspace(nil); err != nil {
		t.Fatalf("AddWorkspace: %v", err)
	}

	idx, err := s.ActivateWorkspace(command.Index{Index: 1})
	if err != nil {
		t.Fatalf("ActivateWorkspace(Index 1): %v", err)
	}
	if idx != 1 || s.ActiveIndex() != 1 {
		t.Fatalf("active = %d (returned %d), want 1", s.ActiveIndex(), idx)
	}

	idx, err = s.ActivateWorkspace(command.Name{Name: "1"})
	if err != nil {
		t.Fatalf("ActivateWorkspace(Name 1): %v", err)
	}
	if idx != 0 || s.ActiveIndex() != 0 {
		t.Fatalf("active = %d (returned %d), want 0", s.ActiveIndex(), idx)
	}
}

func TestActivateWorkspace_UnknownNameLeavesActive(t *testing.T) {
	s := New()
	if _, err := s.ActivateWorkspace(command.Name{Name: "x"}); !errors.Is(err, ErrWorkspaceNotFound) {
		t.Fatalf("ActivateWorkspace = %v, want ErrWorkspaceNotFound", err)
	}
	if s.ActiveIndex() != 0 {
		t.Fatalf("active = %d, want unchanged 0", s.ActiveIndex())
	}
}

// Switching workspaces leaves focus pointing at the old workspace's
// window. That is deliberate: selectors resolve against the active
// workspace, so the dangling focus can never be acted on.
func TestActivateWorkspace_FocusDanglesHarmlessly(t *testing.T) {
	s := New()
	if err := s.AddWorkspace(nil); err != nil {
		t.Fatalf("AddWorkspace: %v", err)
	}
	addClient(t, s, 1, 0, 0)
	if err := s.FocusClient(command.Window{ID: 1}); err != nil {
		t.Fatalf("FocusClient: %v", err)
	}

	if _, err := s.ActivateWorkspace(command.Index{Index: 1}); err != nil {
		t.Fatalf("ActivateWorkspace: %v", err)
	}

	if got := s.Focused(); got != 1 {
		t.Fatalf("focus = %d after switch, want preserved 1", got)
	}
	if err := s.FocusClient(command.Focused{}); !errors.Is(err, ErrClientNotFound) {
		t.Fatalf("FocusClient(Focused) on new workspace = %v, want ErrClientNotFound", err)
	}
	if _, err := s.RemoveClient(command.Window{ID: 1}); !errors.Is(err, ErrClientNotFound) {
		t.Fatalf("RemoveClient across workspaces = %v, want ErrClientNotFound", err)
	}
}

// Clients added on different workspaces stay isolated; the same id can
// only ever live in one workspace because AddClient targets the active
// one and map-requests arrive once per window.
func TestClients_ArePerWorkspace(t *testing.T) {
	s := New()
	addClient(t, s, 1, 0, 0)
	if err := s.AddWorkspace(nil); err != nil {
		t.Fatalf("AddWorkspace: %v", err)
	}
	if _, err := s.ActivateWorkspace(command.Index{Index: 1}); err != nil {
		t.Fatalf("ActivateWorkspace: %v", err)
	}
	addClient(t, s, 2, 0, 0)

	if got := s.ActiveClients(); len(got) != 1 || got[0].Window != 2 {
		t.Fatalf("active clients = %v, want only window 2", got)
	}
}
