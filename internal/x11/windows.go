package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
)

// IsDock reports whether a window declares _NET_WM_WINDOW_TYPE_DOCK.
// Windows without a readable type are treated as regular windows.
func (c *Connection) IsDock(win xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, win)
	if err != nil {
		return false
	}
	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_DOCK" {
			return true
		}
	}
	return false
}

// CloseWindow asks a window to close. Clients that speak WM_DELETE_WINDOW
// get a polite client message so they can prompt for unsaved state;
// everything else is killed outright.
func (c *Connection) CloseWindow(win xproto.Window) error {
	protocols, err := icccm.WmProtocolsGet(c.XUtil, win)
	if err == nil {
		for _, p := range protocols {
			if p == "WM_DELETE_WINDOW" {
				return c.sendDeleteWindow(win)
			}
		}
	}
	return xproto.KillClientChecked(c.Conn(), uint32(win)).Check()
}

// sendDeleteWindow builds the WM_DELETE_WINDOW client message manually.
// The xgbutil icccm helpers panic on this library version when composing
// protocol messages, so we go through xproto directly.
func (c *Connection) sendDeleteWindow(win xproto.Window) error {
	wmProtocols, err := c.Atom("WM_PROTOCOLS")
	if err != nil {
		return fmt.Errorf("failed to intern WM_PROTOCOLS: %w", err)
	}
	wmDelete, err := c.Atom("WM_DELETE_WINDOW")
	if err != nil {
		return fmt.Errorf("failed to intern WM_DELETE_WINDOW: %w", err)
	}

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   wmProtocols,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{uint32(wmDelete), 0, 0, 0, 0}),
	}

	return xproto.SendEventChecked(
		c.Conn(),
		false,
		win,
		xproto.EventMaskNoEvent,
		string(ev.Bytes()),
	).Check()
}
