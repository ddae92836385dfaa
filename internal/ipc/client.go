package ipc

import (
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/floatwm/internal/command"
	"github.com/1broseidon/floatwm/internal/runtimepath"
)

// Client submits commands to a running manager. Each command gets a
// fresh connection, closed right after the write: fire-and-forget, so
// application failures are only visible in the manager's log.
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates an IPC client for the default socket path.
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep the constructor non-failing; Send surfaces connection
		// errors.
		socketPath = ""
	}

	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// NewClientWithPath creates an IPC client for an explicit socket path.
func NewClientWithPath(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// Send serializes one command and writes it on a fresh connection.
func (c *Client) Send(cmd command.Command) error {
	data, err := command.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("failed to marshal command: %w", err)
	}

	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return fmt.Errorf("failed to connect to manager: %w (is floatwm running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))
	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("failed to send command: %w", err)
	}
	return nil
}
