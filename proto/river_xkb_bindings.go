package proto

import "github.com/friedelschoen/riverwm/wire"

// zriver_xkb_bindings_v1 registers (modifier mask, keysym) key bindings with
// the compositor per seat (§4.6); the compositor echoes back which
// registered binding fired rather than forwarding raw key codes, so the
// client never needs a keymap to resolve bindings.
func init() {
	register(Interface{
		Name:    "zriver_xkb_bindings_v1",
		Version: 1,
		Requests: []Message{
			{Name: "get_seat_bindings", Args: []wire.Kind{wire.KindNewID, wire.KindObject}},
			{Name: "destroy", Args: nil},
		},
	})

	register(Interface{
		Name:    "river_seat_bindings_v1",
		Version: 1,
		Requests: []Message{
			// add_binding replaces any existing binding for the same
			// (mods, keysym) pair, per §4.6: "re-registration replaces".
			{Name: "add_binding", Args: []wire.Kind{wire.KindUint, wire.KindUint, wire.KindString}},
			{Name: "clear_bindings", Args: nil},
			{Name: "destroy", Args: nil},
		},
		Events: []Message{
			{Name: "binding_triggered", Args: []wire.Kind{wire.KindUint, wire.KindUint}},
		},
	})
}
