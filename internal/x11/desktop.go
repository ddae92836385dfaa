package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xprop"
)

// supportedAtoms lists the EWMH atoms advertised via _NET_SUPPORTED.
var supportedAtoms = []string{
	"_NET_SUPPORTED",
	"_NET_SUPPORTING_WM_CHECK",
	"_NET_WM_NAME",
	"_NET_ACTIVE_WINDOW",
	"_NET_NUMBER_OF_DESKTOPS",
	"_NET_DESKTOP_NAMES",
	"_NET_CURRENT_DESKTOP",
	"_NET_WM_WINDOW_TYPE",
}

// Advertise publishes the EWMH properties that identify this client as
// the running window manager. check is the supporting check window the
// manager owns for its lifetime.
func (c *Connection) Advertise(name string, check xproto.Window) error {
	if err := ewmh.SupportedSet(c.XUtil, supportedAtoms); err != nil {
		return fmt.Errorf("failed to set _NET_SUPPORTED: %w", err)
	}
	if err := ewmh.SupportingWmCheckSet(c.XUtil, c.Root, check); err != nil {
		return fmt.Errorf("failed to set _NET_SUPPORTING_WM_CHECK on root: %w", err)
	}
	if err := ewmh.SupportingWmCheckSet(c.XUtil, check, check); err != nil {
		return fmt.Errorf("failed to set _NET_SUPPORTING_WM_CHECK on check window: %w", err)
	}
	if err := ewmh.WmNameSet(c.XUtil, check, name); err != nil {
		return fmt.Errorf("failed to set _NET_WM_NAME: %w", err)
	}
	return nil
}

// SetActiveWindow publishes _NET_ACTIVE_WINDOW on the root window.
func (c *Connection) SetActiveWindow(win xproto.Window) error {
	return ewmh.ActiveWindowSet(c.XUtil, win)
}

// SetDesktops publishes the desktop count and names.
func (c *Connection) SetDesktops(names []string) error {
	if err := ewmh.NumberOfDesktopsSet(c.XUtil, uint(len(names))); err != nil {
		return fmt.Errorf("failed to set _NET_NUMBER_OF_DESKTOPS: %w", err)
	}
	if err := ewmh.DesktopNamesSet(c.XUtil, names); err != nil {
		return fmt.Errorf("failed to set _NET_DESKTOP_NAMES: %w", err)
	}
	return nil
}

// SetCurrentDesktop publishes the active desktop number (0-indexed).
func (c *Connection) SetCurrentDesktop(desktop int) error {
	return ewmh.CurrentDesktopSet(c.XUtil, uint(desktop))
}

// Atom interns (or fetches) the named atom.
func (c *Connection) Atom(name string) (xproto.Atom, error) {
	return xprop.Atm(c.XUtil, name)
}
