package wm

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/floatwm/internal/command"
	"github.com/1broseidon/floatwm/internal/config"
	"github.com/1broseidon/floatwm/internal/geometry"
)

// handleEvent dispatches one X event. Registry misses are logged and
// swallowed; a failed protocol request propagates and kills the loop.
func (m *Manager) handleEvent(ev xgb.Event) error {
	switch e := ev.(type) {
	case xproto.ButtonPressEvent:
		return m.handleButtonPress(e)
	case xproto.MotionNotifyEvent:
		return m.handleMotionNotify(e)
	case xproto.ConfigureRequestEvent:
		return m.handleConfigureRequest(e)
	case xproto.MapRequestEvent:
		return m.handleMapRequest(e)
	case xproto.DestroyNotifyEvent:
		m.handleDestroyNotify(e)
		return nil
	case xproto.ClientMessageEvent:
		return m.handleClientMessage(e)
	default:
		m.logger.Debug("unhandled event", "event", ev)
		return nil
	}
}

// handleButtonPress records the gesture anchors and, on the select
// button, focuses the pressed window.
func (m *Manager) handleButtonPress(ev xproto.ButtonPressEvent) error {
	geom, err := xproto.GetGeometry(m.conn.Conn(), xproto.Drawable(ev.Event)).Reply()
	if err != nil {
		return fmt.Errorf("failed to query geometry: %w", err)
	}

	m.state.DragStartPos = geometry.New(int32(ev.RootX), int32(ev.RootY))
	m.state.DragStartFramePos = geometry.New(int32(geom.X), int32(geom.Y))

	if ev.Detail == xproto.Button(config.SelectButton) {
		if err := m.state.FocusClient(command.Window{ID: uint32(ev.Event)}); err != nil {
			m.logger.Warn("pressed window is not managed", "window", ev.Event, "error", err)
			return nil
		}
		return m.focusWindow(ev.Event)
	}
	return nil
}

// handleMotionNotify drives the drag and resize gestures. Motion
// without the modifier held is ignored.
func (m *Manager) handleMotionNotify(ev xproto.MotionNotifyEvent) error {
	if ev.State&config.ModKeyMask == 0 {
		return nil
	}
	mousePos := geometry.New(int32(ev.RootX), int32(ev.RootY))

	switch {
	case ev.State&config.DragButtonMask != 0:
		cl, err := m.state.DragClient(ev.Event, mousePos)
		if err != nil {
			m.logger.Warn("drag on unmanaged window", "window", ev.Event, "error", err)
			return nil
		}
		return xproto.ConfigureWindowChecked(
			m.conn.Conn(),
			ev.Event,
			xproto.ConfigWindowX|xproto.ConfigWindowY,
			[]uint32{uint32(cl.Pos.X), uint32(cl.Pos.Y)},
		).Check()
	case ev.State&config.ResizeButtonMask != 0:
		cl, err := m.state.DragResizeClient(ev.Event, mousePos)
		if err != nil {
			m.logger.Warn("resize on unmanaged window", "window", ev.Event, "error", err)
			return nil
		}
		return xproto.ConfigureWindowChecked(
			m.conn.Conn(),
			ev.Event,
			xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
			[]uint32{uint32(cl.Size.X), uint32(cl.Size.Y)},
		).Check()
	}
	return nil
}

// handleConfigureRequest honors the client's requested geometry and
// stacking verbatim, adding the configured border. Dock windows are
// left unmanaged.
func (m *Manager) handleConfigureRequest(ev xproto.ConfigureRequestEvent) error {
	if m.conn.IsDock(ev.Window) {
		return nil
	}
	return xproto.ConfigureWindowChecked(
		m.conn.Conn(),
		ev.Window,
		xproto.ConfigWindowX|xproto.ConfigWindowY|
			xproto.ConfigWindowWidth|xproto.ConfigWindowHeight|
			xproto.ConfigWindowBorderWidth|xproto.ConfigWindowStackMode,
		[]uint32{
			uint32(ev.X),
			uint32(ev.Y),
			uint32(ev.Width),
			uint32(ev.Height),
			m.cfg.BorderWidth,
			uint32(ev.StackMode),
		},
	).Check()
}

// handleMapRequest maps the window and, unless it is a dock, takes it
// under management: register it, dress the border, hook substructure
// events, add it to the save-set, reparent under root, focus it, and
// install the three pointer-button grabs.
func (m *Manager) handleMapRequest(ev xproto.MapRequestEvent) error {
	if err := xproto.MapWindowChecked(m.conn.Conn(), ev.Window).Check(); err != nil {
		return fmt.Errorf("failed to map window: %w", err)
	}

	if m.conn.IsDock(ev.Window) {
		return nil
	}

	geom, err := xproto.GetGeometry(m.conn.Conn(), xproto.Drawable(ev.Window)).Reply()
	if err != nil {
		return fmt.Errorf("failed to query geometry: %w", err)
	}

	pos := geometry.New(int32(geom.X), int32(geom.Y))
	size := geometry.New(int32(geom.Width), int32(geom.Height))
	if _, err := m.state.AddClient(ev.Window, pos, size); err != nil {
		m.logger.Warn("window already managed", "window", ev.Window, "error", err)
		return nil
	}

	if err := xproto.ConfigureWindowChecked(
		m.conn.Conn(),
		ev.Window,
		xproto.ConfigWindowBorderWidth,
		[]uint32{m.cfg.BorderWidth},
	).Check(); err != nil {
		return err
	}

	if err := xproto.ChangeWindowAttributesChecked(
		m.conn.Conn(),
		ev.Window,
		xproto.CwBorderPixel|xproto.CwEventMask,
		[]uint32{
			m.cfg.BorderColor,
			xproto.EventMaskSubstructureNotify | xproto.EventMaskSubstructureRedirect,
		},
	).Check(); err != nil {
		return err
	}

	// Save-set: if the manager dies, the server reparents the window
	// back to root instead of destroying it.
	if err := xproto.ChangeSaveSetChecked(m.conn.Conn(), xproto.SetModeInsert, ev.Window).Check(); err != nil {
		return err
	}

	if err := xproto.ReparentWindowChecked(m.conn.Conn(), ev.Window, m.state.Root, 0, 0).Check(); err != nil {
		return err
	}

	if err := xproto.SetInputFocusChecked(
		m.conn.Conn(),
		xproto.InputFocusPointerRoot,
		ev.Window,
		xproto.TimeCurrentTime,
	).Check(); err != nil {
		return err
	}

	// Select gesture replays the press to the client, so owner_events
	// is set and the pointer is released right after.
	if err := m.grabButton(ev.Window, config.SelectButton, true,
		xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease); err != nil {
		return err
	}
	if err := xproto.AllowEventsChecked(
		m.conn.Conn(),
		xproto.AllowAsyncPointer,
		xproto.TimeCurrentTime,
	).Check(); err != nil {
		return err
	}

	motionMask := uint16(xproto.EventMaskButtonPress | xproto.EventMaskButtonRelease | xproto.EventMaskButtonMotion)
	if err := m.grabButton(ev.Window, config.DragButton, false, motionMask); err != nil {
		return err
	}
	return m.grabButton(ev.Window, config.ResizeButton, false, motionMask)
}

func (m *Manager) grabButton(win xproto.Window, button byte, ownerEvents bool, eventMask uint16) error {
	return xproto.GrabButtonChecked(
		m.conn.Conn(),
		ownerEvents,
		win,
		eventMask,
		xproto.GrabModeAsync,
		xproto.GrabModeAsync,
		xproto.WindowNone,
		xproto.CursorNone,
		button,
		config.ModKey,
	).Check()
}

// handleDestroyNotify drops the window from the registry. A miss is
// expected when the removal raced a Close command.
func (m *Manager) handleDestroyNotify(ev xproto.DestroyNotifyEvent) {
	if _, err := m.state.RemoveClient(command.Window{ID: uint32(ev.Window)}); err != nil {
		m.logger.Warn("failed to remove client", "window", ev.Window, "error", err)
	}
}

// handleClientMessage services desktop-switch requests from pagers.
func (m *Manager) handleClientMessage(ev xproto.ClientMessageEvent) error {
	if ev.Type != m.netCurrentDesktop || ev.Format != 32 {
		return nil
	}
	index := int(ev.Data.Data32[0])
	return m.activateWorkspace(command.Index{Index: index})
}

// handleCommand applies one remote command. The first return reports a
// Quit; registry errors are logged and swallowed, protocol errors
// propagate and are fatal.
func (m *Manager) handleCommand(cmd command.Command) (bool, error) {
	m.logger.Debug("handling command", "command", fmt.Sprintf("%#v", cmd))

	switch c := cmd.(type) {
	case command.Quit:
		return true, nil

	case command.Focus:
		return false, m.focusBySelector(c.Selector)

	case command.Close:
		cl, err := m.state.SelectClient(c.Selector)
		if err != nil {
			m.logger.Warn("close target not found", "error", err)
			return false, nil
		}
		return false, m.conn.CloseWindow(cl.Window)

	case command.AddWorkspace:
		if err := m.state.AddWorkspace(c.Name); err != nil {
			m.logger.Warn("failed to add workspace", "error", err)
			return false, nil
		}
		return false, m.refreshWorkspaces()

	case command.RenameWorkspace:
		if err := m.state.RenameWorkspace(c.Selector, c.Name); err != nil {
			m.logger.Warn("failed to rename workspace", "error", err)
			return false, nil
		}
		return false, m.refreshWorkspaces()

	case command.ActivateWorkspace:
		return false, m.activateWorkspace(c.Selector)

	case command.SetBorderWidth:
		m.cfg.BorderWidth = c.Width
		for _, cl := range m.state.ActiveClients() {
			if err := xproto.ConfigureWindowChecked(
				m.conn.Conn(),
				cl.Window,
				xproto.ConfigWindowBorderWidth,
				[]uint32{m.cfg.BorderWidth},
			).Check(); err != nil {
				return false, err
			}
		}
		return false, nil

	case command.SetBorderColor:
		m.cfg.BorderColor = c.Color
		for _, cl := range m.state.ActiveClients() {
			if cl.Window == m.state.Focused() {
				continue
			}
			if err := m.setBorderPixel(cl.Window, m.cfg.BorderColor); err != nil {
				return false, err
			}
		}
		return false, nil

	case command.SetFocusedBorderColor:
		m.cfg.FocusedBorderColor = c.Color
		if focused := m.state.Focused(); focused != 0 {
			return false, m.setBorderPixel(focused, m.cfg.FocusedBorderColor)
		}
		return false, nil

	default:
		m.logger.Warn("unhandled command", "command", fmt.Sprintf("%#v", cmd))
		return false, nil
	}
}

// focusBySelector resolves a Focus command. A Closest selector with no
// qualifying candidate is a quiet no-op, not an error.
func (m *Manager) focusBySelector(sel command.WindowSelector) error {
	if closest, ok := sel.(command.Closest); ok {
		cl, err := m.state.FocusClosestClient(command.Focused{}, closest.Direction)
		if err != nil {
			m.logger.Warn("failed to focus closest window", "error", err)
			return nil
		}
		if cl == nil {
			return nil
		}
		return m.focusWindow(cl.Window)
	}

	if err := m.state.FocusClient(sel); err != nil {
		m.logger.Warn("failed to focus window", "error", err)
		return nil
	}
	if focused := m.state.Focused(); focused != 0 {
		return m.focusWindow(focused)
	}
	return nil
}

// focusWindow emits the focus side effects for a window the registry
// already marked focused: restore the previous window's border, dress
// the new one, take input focus, raise it, and advertise it.
func (m *Manager) focusWindow(win xproto.Window) error {
	if last := m.state.LastFocused(); last != 0 && last != win {
		if err := m.setBorderPixel(last, m.cfg.BorderColor); err != nil {
			return err
		}
	}

	if err := m.setBorderPixel(win, m.cfg.FocusedBorderColor); err != nil {
		return err
	}

	if err := xproto.SetInputFocusChecked(
		m.conn.Conn(),
		xproto.InputFocusPointerRoot,
		win,
		xproto.TimeCurrentTime,
	).Check(); err != nil {
		return err
	}

	if err := xproto.ConfigureWindowChecked(
		m.conn.Conn(),
		win,
		xproto.ConfigWindowStackMode,
		[]uint32{xproto.StackModeAbove},
	).Check(); err != nil {
		return err
	}

	return m.conn.SetActiveWindow(win)
}

func (m *Manager) setBorderPixel(win xproto.Window, color uint32) error {
	return xproto.ChangeWindowAttributesChecked(
		m.conn.Conn(),
		win,
		xproto.CwBorderPixel,
		[]uint32{color},
	).Check()
}

// activateWorkspace switches desktops: unmap the outgoing clients,
// flip the registry, advertise the new index, then map the incoming
// clients, in that order so pagers observe a consistent final index.
func (m *Manager) activateWorkspace(sel command.WorkspaceSelector) error {
	outgoing := m.state.ActiveClients()

	index, err := m.state.ActivateWorkspace(sel)
	if err != nil {
		m.logger.Warn("failed to activate workspace", "error", err)
		return nil
	}

	for _, cl := range outgoing {
		if err := xproto.UnmapWindowChecked(m.conn.Conn(), cl.Window).Check(); err != nil {
			return err
		}
	}

	if err := m.conn.SetCurrentDesktop(index); err != nil {
		return err
	}

	for _, cl := range m.state.ActiveClients() {
		if err := xproto.MapWindowChecked(m.conn.Conn(), cl.Window).Check(); err != nil {
			return err
		}
	}
	return nil
}

// refreshWorkspaces advertises the desktop count and names.
func (m *Manager) refreshWorkspaces() error {
	return m.conn.SetDesktops(m.state.WorkspaceNames())
}
