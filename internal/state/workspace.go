package state

import "github.com/BurntSushi/xgb/xproto"

// Workspace is a named, insertion-ordered set of clients. Names are
// unique across the registry. Workspaces are never deleted.
type Workspace struct {
	name     string
	order    []xproto.Window
	byWindow map[xproto.Window]*Client
}

func newWorkspace(name string) *Workspace {
	return &Workspace{
		name:     name,
		byWindow: make(map[xproto.Window]*Client),
	}
}

// Name returns the workspace name.
func (w *Workspace) Name() string {
	return w.name
}

func (w *Workspace) add(c *Client) {
	w.order = append(w.order, c.Window)
	w.byWindow[c.Window] = c
}

func (w *Workspace) get(window xproto.Window) *Client {
	return w.byWindow[window]
}

func (w *Workspace) remove(window xproto.Window) {
	if _, ok := w.byWindow[window]; !ok {
		return
	}
	delete(w.byWindow, window)
	for i, win := range w.order {
		if win == window {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
}

// all returns the live clients in insertion order.
func (w *Workspace) all() []*Client {
	out := make([]*Client, 0, len(w.order))
	for _, win := range w.order {
		out = append(out, w.byWindow[win])
	}
	return out
}

// clients returns copies in insertion order.
func (w *Workspace) clients() []Client {
	out := make([]Client, 0, len(w.order))
	for _, win := range w.order {
		out = append(out, *w.byWindow[win])
	}
	return out
}
