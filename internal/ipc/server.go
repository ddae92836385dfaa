// Package ipc carries commands from the companion client process to
// the manager over a Unix domain socket. One connection carries exactly
// one command, delimited by end-of-stream, and gets no response.
package ipc

import (
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"

	"github.com/1broseidon/floatwm/internal/command"
)

// Server accepts connections and forwards decoded commands into the
// dispatch loop's command channel. A malformed payload is logged and
// its connection dropped without affecting the listener.
type Server struct {
	socketPath   string
	listener     net.Listener
	commands     chan<- command.Command
	logger       *slog.Logger
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates an IPC server that forwards into commands.
func NewServer(socketPath string, commands chan<- command.Command, logger *slog.Logger) *Server {
	return &Server{
		socketPath: socketPath,
		commands:   commands,
		logger:     logger,
	}
}

// Start binds the socket, removing any stale file first, and begins
// accepting connections in the background.
func (s *Server) Start() error {
	// Stale socket from a previous run.
	os.Remove(s.socketPath)

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.logger.Info("IPC server listening", "socket", s.socketPath)

	go s.acceptLoop()

	return nil
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			stopping := s.shuttingDown
			s.shutdownMu.Unlock()
			if stopping {
				return
			}
			s.logger.Error("IPC accept failed", "error", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection reads one command to EOF and forwards it. The
// issuer gets no acknowledgement; command application is observable
// only through the manager's own effects.
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	data, err := io.ReadAll(conn)
	if err != nil {
		s.logger.Error("IPC read failed", "error", err)
		return
	}

	cmd, err := command.Unmarshal(data)
	if err != nil {
		s.logger.Error("dropping invalid IPC command", "error", err)
		return
	}

	s.commands <- cmd
}

// Stop closes the listener and removes the socket file. The daemon
// itself never calls this; the listener is reclaimed by process exit.
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}
