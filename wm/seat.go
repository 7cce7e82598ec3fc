package wm

import (
	"github.com/friedelschoen/riverwm/wire"
)

const (
	evSeatFocusedWindow = 0

	evBindingTriggered = 0

	evPointerEnter  = 0
	evPointerLeave  = 1
	evPointerMotion = 2
	evPointerButton = 3

	btnLeft  = 0x110
	btnRight = 0x111

	pointerStatePressed = 1
)

// gesture tracks an in-progress Super+drag move/resize (§4.6).
type gesture struct {
	active bool
	seeded bool // startX/startY already set from a motion event
	resize bool
	window *Window
	startX int32
	startY int32
}

// Seat wraps a river_seat_v1 object plus its bindings table and in-progress
// pointer gesture state (§3 Seat, §4.6 pointer gestures).
type Seat struct {
	ID    uint32
	owner *Manager
	conn  windowSender

	Bindings        *BindingTable
	FocusedWindowID uint32 // weak reference; 0 means none
	Modifiers       Modifier

	drag gesture
}

func newSeat(id uint32, conn windowSender, owner *Manager) *Seat {
	return &Seat{ID: id, conn: conn, owner: owner, Bindings: NewBindingTable()}
}

// HandleFocusedWindow applies the river_seat_v1.focused_window event.
func (s *Seat) HandleFocusedWindow(msg wire.Message) {
	s.FocusedWindowID = msg.Args[0].Uint
}

// Dispatch routes a decoded river_seat_v1 event by opcode.
func (s *Seat) Dispatch(msg wire.Message) {
	switch msg.Opcode {
	case evSeatFocusedWindow:
		s.HandleFocusedWindow(msg)
	}
}

// DispatchBinding routes a decoded river_seat_bindings_v1.binding_triggered
// event: looks up the (mods, keysym) pair and forwards the resolved action
// to the manager.
func (s *Seat) DispatchBinding(msg wire.Message) {
	mods := Modifier(msg.Args[0].Uint)
	keysym := msg.Args[1].Uint
	binding, ok := s.Bindings.Lookup(mods, keysym)
	if !ok {
		return
	}
	s.owner.handleAction(s, binding)
}

// DispatchPointer routes a decoded wl_pointer event into gesture handling
// for floating move/resize (§4.6: "Super+LeftButton starts a move;
// Super+RightButton starts a resize").
func (s *Seat) DispatchPointer(msg wire.Message) {
	switch msg.Opcode {
	case evPointerButton:
		button := msg.Args[2].Uint
		state := msg.Args[3].Uint
		s.handlePointerButton(button, state)
	case evPointerMotion:
		x := msg.Args[1].Fixed
		y := msg.Args[2].Fixed
		s.handlePointerMotion(int32(x.ToFloat64()), int32(y.ToFloat64()))
	}
}

func (s *Seat) handlePointerButton(button, state uint32) {
	if state != pointerStatePressed {
		if s.drag.active {
			s.drag = gesture{}
		}
		return
	}
	if s.Modifiers&ModSuper == 0 {
		return
	}
	w := s.owner.windowByID(s.FocusedWindowID)
	if w == nil {
		return
	}
	switch button {
	case btnLeft:
		s.drag = gesture{active: true, resize: false, window: w}
		s.owner.makeFloating(w)
	case btnRight:
		s.drag = gesture{active: true, resize: true, window: w}
		s.owner.makeFloating(w)
	}
}

func (s *Seat) handlePointerMotion(x, y int32) {
	if !s.drag.active {
		return
	}
	if !s.drag.seeded {
		s.drag.seeded = true
		s.drag.startX, s.drag.startY = x, y
		return
	}
	w := s.drag.window
	g := w.Geometry
	if s.drag.resize {
		g.W += int(x - s.drag.startX)
		g.H += int(y - s.drag.startY)
	} else {
		g.X += int(x - s.drag.startX)
		g.Y += int(y - s.drag.startY)
	}
	s.drag.startX, s.drag.startY = x, y
	w.Remembered = g
	w.HasRemembered = true
	w.SetGeometry(g)
}
