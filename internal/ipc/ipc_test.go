package ipc

import (
	"io"
	"log/slog"
	"net"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/1broseidon/floatwm/internal/command"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func startServer(t *testing.T) (*Client, chan command.Command) {
	t.Helper()

	socketPath := filepath.Join(t.TempDir(), "floatwm.sock")
	commands := make(chan command.Command, 16)

	srv := NewServer(socketPath, commands, testLogger())
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(srv.Stop)

	return NewClientWithPath(socketPath), commands
}

func receive(t *testing.T, commands chan command.Command) command.Command {
	t.Helper()
	select {
	case cmd := <-commands:
		return cmd
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for command")
		return nil
	}
}

func TestRoundTrip_FocusWindow(t *testing.T) {
	client, commands := startServer(t)

	sent := command.Focus{Selector: command.Window{ID: 42}}
	if err := client.Send(sent); err != nil {
		t.Fatalf("Send: %v", err)
	}

	got := receive(t, commands)
	if !reflect.DeepEqual(got, sent) {
		t.Fatalf("received %#v, want %#v", got, sent)
	}
}

func TestRoundTrip_OneCommandPerConnection(t *testing.T) {
	client, commands := startServer(t)

	// Connections are handled concurrently, so drive them one at a
	// time; each command still rides its own connection.
	sent := []command.Command{
		command.AddWorkspace{},
		command.ActivateWorkspace{Selector: command.Index{Index: 1}},
		command.SetBorderWidth{Width: 3},
		command.Quit{},
	}
	for _, want := range sent {
		if err := client.Send(want); err != nil {
			t.Fatalf("Send(%#v): %v", want, err)
		}
		got := receive(t, commands)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("received %#v, want %#v", got, want)
		}
	}
}

func TestServer_DropsMalformedPayload(t *testing.T) {
	client, commands := startServer(t)

	conn, err := net.Dial("unix", client.socketPath)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	if _, err := conn.Write([]byte("{not json")); err != nil {
		t.Fatalf("write: %v", err)
	}
	conn.Close()

	// The listener must survive and keep serving well-formed commands.
	if err := client.Send(command.Quit{}); err != nil {
		t.Fatalf("Send after malformed payload: %v", err)
	}
	if got := receive(t, commands); !reflect.DeepEqual(got, command.Quit{}) {
		t.Fatalf("received %#v, want Quit", got)
	}
}

func TestClient_SendFailsWithoutServer(t *testing.T) {
	client := NewClientWithPath(filepath.Join(t.TempDir(), "nobody-home.sock"))
	if err := client.Send(command.Quit{}); err == nil {
		t.Fatal("expected connection error")
	}
}
