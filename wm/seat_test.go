package wm

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/friedelschoen/riverwm/wire"
)

func TestDispatchBindingResolvesAndFiresAction(t *testing.T) {
	sender := &fakeSender{}
	m := NewManager(sender, Options{}, zerolog.Nop())
	m.NewOutput(1, 2)
	seat := m.NewSeat(10)
	seat.Bindings.Set(ModSuper, 0x72, Binding{Action: ActionQuit})

	msg := wire.Message{Args: []wire.Arg{wire.ArgUint(uint32(ModSuper)), wire.ArgUint(0x72)}}
	seat.DispatchBinding(msg)

	assert.False(t, m.Running)
}

func TestDispatchBindingUnknownPairIsIgnored(t *testing.T) {
	sender := &fakeSender{}
	m := NewManager(sender, Options{}, zerolog.Nop())
	seat := m.NewSeat(10)

	msg := wire.Message{Args: []wire.Arg{wire.ArgUint(uint32(ModAlt)), wire.ArgUint(0x99)}}
	seat.DispatchBinding(msg) // must not panic or affect Running
	assert.True(t, m.Running)
}

func TestPointerGestureMakesWindowFloatingAndMoves(t *testing.T) {
	sender := &fakeSender{}
	m := NewManager(sender, Options{}, zerolog.Nop())
	m.NewOutput(1, 2)
	w := m.NewWindow(5)
	w.HandleMapped(wire.Message{})
	w.Geometry.X, w.Geometry.Y = 100, 100

	seat := m.NewSeat(10)
	seat.Modifiers = ModSuper
	seat.FocusedWindowID = w.ID

	// button press
	seat.DispatchPointer(wire.Message{
		Opcode: evPointerButton,
		Args:   []wire.Arg{wire.ArgUint(0), wire.ArgUint(0), wire.ArgUint(btnLeft), wire.ArgUint(pointerStatePressed)},
	})
	require.True(t, seat.drag.active)
	assert.True(t, w.HasRemembered)

	// first motion just seeds the start position
	seat.DispatchPointer(wire.Message{
		Opcode: evPointerMotion,
		Args:   []wire.Arg{wire.ArgUint(0), wire.ArgFixed(wire.FixedFromFloat64(110)), wire.ArgFixed(wire.FixedFromFloat64(100))},
	})
	assert.Equal(t, 100, w.Geometry.X)

	// second motion applies the delta
	seat.DispatchPointer(wire.Message{
		Opcode: evPointerMotion,
		Args:   []wire.Arg{wire.ArgUint(0), wire.ArgFixed(wire.FixedFromFloat64(130)), wire.ArgFixed(wire.FixedFromFloat64(100))},
	})
	assert.Equal(t, 120, w.Geometry.X)

	// release ends the gesture
	seat.DispatchPointer(wire.Message{
		Opcode: evPointerButton,
		Args:   []wire.Arg{wire.ArgUint(0), wire.ArgUint(0), wire.ArgUint(btnLeft), wire.ArgUint(0)},
	})
	assert.False(t, seat.drag.active)
}
