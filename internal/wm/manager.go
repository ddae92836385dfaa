// Package wm runs the window-manager core: a single-threaded dispatch
// loop that owns the registry and configuration, fed by the X event
// reader and the IPC listener over unbounded channels.
package wm

import (
	"fmt"
	"log/slog"
	"os/exec"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/floatwm/internal/command"
	"github.com/1broseidon/floatwm/internal/config"
	"github.com/1broseidon/floatwm/internal/queue"
	"github.com/1broseidon/floatwm/internal/state"
	"github.com/1broseidon/floatwm/internal/x11"
)

// Manager owns the registry and configuration. Both live on the
// dispatch goroutine only; no other goroutine ever touches them.
type Manager struct {
	conn     *x11.Connection
	state    *state.State
	cfg      *config.Config
	commands <-chan command.Command
	logger   *slog.Logger

	events <-chan xgb.Event

	// Atom the pager uses to request a desktop switch.
	netCurrentDesktop xproto.Atom
}

// New creates a manager reading remote commands from commands.
func New(conn *x11.Connection, cfg *config.Config, commands <-chan command.Command, logger *slog.Logger) *Manager {
	return &Manager{
		conn:     conn,
		state:    state.New(),
		cfg:      cfg,
		commands: commands,
		logger:   logger,
	}
}

// Run claims window manager duties, advertises EWMH support, spawns the
// event reader, and serves the dispatch loop until a Quit command. Any
// error it returns is fatal; the process should exit non-zero.
func (m *Manager) Run() error {
	if err := m.setup(); err != nil {
		return err
	}
	return m.serve()
}

func (m *Manager) setup() error {
	m.state.Root = m.conn.Root

	if err := m.conn.BecomeWM(); err != nil {
		return err
	}

	child, err := m.createCheckWindow()
	if err != nil {
		return err
	}
	m.state.Child = child

	if err := m.conn.Advertise("floatwm", child); err != nil {
		return err
	}
	if err := m.conn.SetActiveWindow(child); err != nil {
		return err
	}
	if err := m.conn.SetCurrentDesktop(0); err != nil {
		return err
	}
	if err := m.refreshWorkspaces(); err != nil {
		return err
	}

	m.netCurrentDesktop, err = m.conn.Atom("_NET_CURRENT_DESKTOP")
	if err != nil {
		return fmt.Errorf("failed to intern _NET_CURRENT_DESKTOP: %w", err)
	}

	if m.cfg.Autostart != "" {
		if err := exec.Command(m.cfg.Autostart).Start(); err != nil {
			m.logger.Warn("autostart failed", "path", m.cfg.Autostart, "error", err)
		}
	}

	m.events = m.readEvents()

	m.logger.Info("window manager running", "root", m.state.Root)
	return nil
}

// createCheckWindow makes the invisible 1x1 input-only window that
// carries the supporting-WM-check properties.
func (m *Manager) createCheckWindow() (xproto.Window, error) {
	wid, err := xproto.NewWindowId(m.conn.Conn())
	if err != nil {
		return 0, fmt.Errorf("failed to allocate check window id: %w", err)
	}

	err = xproto.CreateWindowChecked(
		m.conn.Conn(),
		0, // depth: copy from parent
		wid,
		m.conn.Root,
		0, 0, 1, 1,
		0, // border width
		xproto.WindowClassInputOnly,
		0, // visual: copy from parent
		0,
		[]uint32{},
	).Check()
	if err != nil {
		return 0, fmt.Errorf("failed to create check window: %w", err)
	}
	return wid, nil
}

// readEvents spawns the blocking event reader. It pushes every decoded
// event onto an unbounded queue and closes it if the connection dies;
// it is never joined, process exit reclaims it.
func (m *Manager) readEvents() <-chan xgb.Event {
	in, out := queue.New[xgb.Event]()
	go func() {
		for {
			ev, xerr := m.conn.WaitForEvent()
			if ev == nil && xerr == nil {
				close(in)
				return
			}
			if xerr != nil {
				m.logger.Error("X error", "error", xerr)
				continue
			}
			in <- ev
		}
	}()
	return out
}

// serve merges X events and remote commands. When both channels are
// ready the runtime picks one at random; ordering between a racing
// event and command is deliberately unspecified, and every handler is
// written to be safe in either order.
func (m *Manager) serve() error {
	for {
		select {
		case ev, ok := <-m.events:
			if !ok {
				return fmt.Errorf("display connection closed")
			}
			if err := m.handleEvent(ev); err != nil {
				return err
			}
		case cmd := <-m.commands:
			quit, err := m.handleCommand(cmd)
			if err != nil {
				return err
			}
			if quit {
				m.logger.Info("quitting")
				return nil
			}
		}
	}
}
