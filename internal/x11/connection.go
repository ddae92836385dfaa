package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window
}

// NewConnection establishes a connection to the X11 server
func NewConnection() (*Connection, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, err
	}

	return &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}, nil
}

// Conn returns the raw xgb connection for direct protocol requests.
func (c *Connection) Conn() *xgb.Conn {
	return c.XUtil.Conn()
}

// EventMask is the root window event selection a window manager needs:
// substructure redirection for map/configure requests plus button events
// for the pointer gestures.
const EventMask = xproto.EventMaskSubstructureNotify |
	xproto.EventMaskSubstructureRedirect |
	xproto.EventMaskButtonPress |
	xproto.EventMaskButtonRelease

// BecomeWM claims window manager duties by selecting substructure
// redirection on the root window. Exactly one client may hold that
// selection, so this fails if another window manager is already running.
func (c *Connection) BecomeWM() error {
	err := xproto.ChangeWindowAttributesChecked(
		c.Conn(),
		c.Root,
		xproto.CwEventMask,
		[]uint32{uint32(EventMask)},
	).Check()
	if err != nil {
		return fmt.Errorf("another window manager is already running: %w", err)
	}
	return nil
}

// WaitForEvent blocks until the next X event or connection error arrives.
func (c *Connection) WaitForEvent() (xgb.Event, xgb.Error) {
	return c.Conn().WaitForEvent()
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.Conn().Close()
}
