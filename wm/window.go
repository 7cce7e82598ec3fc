package wm

import (
	"github.com/friedelschoen/riverwm/layout"
	"github.com/friedelschoen/riverwm/wire"
)

// WindowState is the §4.5 state machine: Pending -> Mapped -> {Mapped |
// Fullscreen} -> Closed.
type WindowState int

const (
	WindowPending WindowState = iota
	WindowMapped
	WindowFullscreen
	WindowClosed
)

// windowSender is the outgoing-request capability a Window needs;
// satisfied by *conn.Conn without an import (same pattern as
// objects.Sender / conn.EventSchemaLookup).
type windowSender interface {
	Send(msg wire.Message, fds ...int)
}

const (
	opWindowSetGeometry   = 0
	opWindowSetFullscreen = 1
	opWindowClose         = 2
	opWindowDestroy       = 3

	evWindowTitle    = 0
	evWindowAppID    = 1
	evWindowMapped   = 2
	evWindowUnmapped = 3
	evWindowUrgent   = 4
	evWindowClosed   = 5
)

// Window wraps a river_window_v1 object id and the attributes of §3's
// Window record. It is owned by exactly one *Workspace at a time.
type Window struct {
	ID    uint32
	conn  windowSender
	owner *Manager

	Title         string
	AppID         string
	State         WindowState
	Urgent        bool
	Geometry      layout.Geometry
	Remembered    layout.Geometry // last floating placement, for the Floating layout
	HasRemembered bool
}

func newWindow(id uint32, conn windowSender, owner *Manager) *Window {
	return &Window{ID: id, conn: conn, owner: owner, State: WindowPending}
}

// Mapped reports whether the window currently counts toward layout
// (Mapped or Fullscreen, not Pending or Closed).
func (w *Window) Mapped() bool {
	return w.State == WindowMapped || w.State == WindowFullscreen
}

// HandleTitle applies the river_window_v1.title event.
func (w *Window) HandleTitle(msg wire.Message) {
	w.Title = msg.Args[0].String
	w.owner.onWindowAttributeChanged(w)
}

// HandleAppID applies the river_window_v1.app_id event.
func (w *Window) HandleAppID(msg wire.Message) {
	w.AppID = msg.Args[0].String
	w.owner.onWindowAttributeChanged(w)
}

// HandleMapped applies the river_window_v1.mapped event: §4.5 "a newly
// mapped window becomes focused."
func (w *Window) HandleMapped(wire.Message) {
	if w.State == WindowClosed {
		return
	}
	w.State = WindowMapped
	w.owner.onWindowMapped(w)
}

// HandleUnmapped applies the river_window_v1.unmapped event: §4.5 "an
// unmapped focused window transfers focus to the next mapped sibling."
func (w *Window) HandleUnmapped(wire.Message) {
	if w.State == WindowClosed {
		return
	}
	w.State = WindowPending
	w.owner.onWindowUnmapped(w)
}

// HandleUrgent applies the river_window_v1.urgent event.
func (w *Window) HandleUrgent(msg wire.Message) {
	w.Urgent = msg.Args[0].Uint != 0
	w.owner.onWindowAttributeChanged(w)
}

// HandleClosed applies the river_window_v1.closed event: the compositor's
// destructor notification, per §4.4 idempotent with any destroy request
// the client may have already issued.
func (w *Window) HandleClosed(wire.Message) {
	w.State = WindowClosed
	w.owner.onWindowClosed(w)
}

// Dispatch routes a decoded river_window_v1 event by opcode, the fixed
// per-interface dispatch function named in §9's design notes.
func (w *Window) Dispatch(msg wire.Message) {
	switch msg.Opcode {
	case evWindowTitle:
		w.HandleTitle(msg)
	case evWindowAppID:
		w.HandleAppID(msg)
	case evWindowMapped:
		w.HandleMapped(msg)
	case evWindowUnmapped:
		w.HandleUnmapped(msg)
	case evWindowUrgent:
		w.HandleUrgent(msg)
	case evWindowClosed:
		w.HandleClosed(msg)
	}
}

// SetGeometry issues the commit-phase set_geometry request (§4.5).
func (w *Window) SetGeometry(g layout.Geometry) {
	w.Geometry = g
	w.conn.Send(wire.Message{
		ObjectID: w.ID,
		Opcode:   opWindowSetGeometry,
		Args: []wire.Arg{
			wire.ArgInt(int32(g.X)),
			wire.ArgInt(int32(g.Y)),
			wire.ArgInt(int32(g.W)),
			wire.ArgInt(int32(g.H)),
			wire.ArgUint(uint32(g.Border)),
		},
	})
}

// SetFullscreen issues the set_fullscreen request and updates local state;
// layout recomputation skips fullscreen windows per §4.5.
func (w *Window) SetFullscreen(fullscreen bool) {
	if fullscreen {
		w.State = WindowFullscreen
	} else if w.State == WindowFullscreen {
		w.State = WindowMapped
	}
	flag := uint32(0)
	if fullscreen {
		flag = 1
	}
	w.conn.Send(wire.Message{ObjectID: w.ID, Opcode: opWindowSetFullscreen, Args: []wire.Arg{wire.ArgUint(flag)}})
}

// Close issues the close request (§4.5 close_window action).
func (w *Window) Close() {
	w.conn.Send(wire.Message{ObjectID: w.ID, Opcode: opWindowClose})
}
