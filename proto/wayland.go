package proto

import "github.com/friedelschoen/riverwm/wire"

// Core Wayland globals (wayland.xml), restricted to the requests and events
// this client actually sends or handles.
func init() {
	register(Interface{
		Name:    "wl_display",
		Version: 1,
		Requests: []Message{
			{Name: "sync", Args: []wire.Kind{wire.KindNewID}},
			{Name: "get_registry", Args: []wire.Kind{wire.KindNewID}},
		},
		Events: []Message{
			{Name: "error", Args: []wire.Kind{wire.KindObject, wire.KindUint, wire.KindString}},
			{Name: "delete_id", Args: []wire.Kind{wire.KindUint}},
		},
	})

	register(Interface{
		Name:    "wl_registry",
		Version: 1,
		Requests: []Message{
			{Name: "bind", Args: []wire.Kind{wire.KindUint, wire.KindString, wire.KindUint, wire.KindNewID}},
		},
		Events: []Message{
			{Name: "global", Args: []wire.Kind{wire.KindUint, wire.KindString, wire.KindUint}},
			{Name: "global_remove", Args: []wire.Kind{wire.KindUint}},
		},
	})

	register(Interface{
		Name:   "wl_callback",
		Events: []Message{{Name: "done", Args: []wire.Kind{wire.KindUint}}},
	})

	register(Interface{
		Name:    "wl_compositor",
		Version: 5,
		Requests: []Message{
			{Name: "create_surface", Args: []wire.Kind{wire.KindNewID}},
			{Name: "create_region", Args: []wire.Kind{wire.KindNewID}},
		},
	})

	register(Interface{
		Name:    "wl_shm",
		Version: 1,
		Requests: []Message{
			{Name: "create_pool", Args: []wire.Kind{wire.KindNewID, wire.KindFD, wire.KindInt}},
		},
		Events: []Message{
			{Name: "format", Args: []wire.Kind{wire.KindUint}},
		},
	})

	register(Interface{
		Name:    "wl_shm_pool",
		Version: 1,
		Requests: []Message{
			{Name: "create_buffer", Args: []wire.Kind{wire.KindNewID, wire.KindInt, wire.KindInt, wire.KindInt, wire.KindInt, wire.KindUint}},
			{Name: "destroy", Args: nil},
			{Name: "resize", Args: []wire.Kind{wire.KindInt}},
		},
	})

	register(Interface{
		Name:     "wl_buffer",
		Version:  1,
		Requests: []Message{{Name: "destroy", Args: nil}},
		Events:   []Message{{Name: "release", Args: nil}},
	})

	register(Interface{
		Name:    "wl_surface",
		Version: 5,
		Requests: []Message{
			{Name: "destroy", Args: nil},
			{Name: "attach", Args: []wire.Kind{wire.KindObject, wire.KindInt, wire.KindInt}},
			{Name: "damage", Args: []wire.Kind{wire.KindInt, wire.KindInt, wire.KindInt, wire.KindInt}},
			{Name: "frame", Args: []wire.Kind{wire.KindNewID}},
			{Name: "set_opaque_region", Args: []wire.Kind{wire.KindObject}},
			{Name: "set_input_region", Args: []wire.Kind{wire.KindObject}},
			{Name: "commit", Args: nil},
			{Name: "set_buffer_transform", Args: []wire.Kind{wire.KindInt}},
			{Name: "set_buffer_scale", Args: []wire.Kind{wire.KindInt}},
			{Name: "damage_buffer", Args: []wire.Kind{wire.KindInt, wire.KindInt, wire.KindInt, wire.KindInt}},
		},
		Events: []Message{
			{Name: "enter", Args: []wire.Kind{wire.KindObject}},
			{Name: "leave", Args: []wire.Kind{wire.KindObject}},
		},
	})

	register(Interface{
		Name:    "wl_output",
		Version: 4,
		Requests: []Message{
			{Name: "release", Args: nil},
		},
		Events: []Message{
			{Name: "geometry", Args: []wire.Kind{wire.KindInt, wire.KindInt, wire.KindInt, wire.KindInt, wire.KindInt, wire.KindString, wire.KindString, wire.KindInt}},
			{Name: "mode", Args: []wire.Kind{wire.KindUint, wire.KindInt, wire.KindInt, wire.KindInt}},
			{Name: "done", Args: nil},
			{Name: "scale", Args: []wire.Kind{wire.KindInt}},
			{Name: "name", Args: []wire.Kind{wire.KindString}},
			{Name: "description", Args: []wire.Kind{wire.KindString}},
		},
	})

	register(Interface{
		Name:    "wl_seat",
		Version: 8,
		Requests: []Message{
			{Name: "get_pointer", Args: []wire.Kind{wire.KindNewID}},
			{Name: "get_keyboard", Args: []wire.Kind{wire.KindNewID}},
			{Name: "get_touch", Args: []wire.Kind{wire.KindNewID}},
			{Name: "release", Args: nil},
		},
		Events: []Message{
			{Name: "capabilities", Args: []wire.Kind{wire.KindUint}},
			{Name: "name", Args: []wire.Kind{wire.KindString}},
		},
	})

	register(Interface{
		Name:    "wl_keyboard",
		Version: 4,
		Requests: []Message{
			{Name: "release", Args: nil},
		},
		Events: []Message{
			{Name: "keymap", Args: []wire.Kind{wire.KindUint, wire.KindFD, wire.KindUint}},
			{Name: "enter", Args: []wire.Kind{wire.KindUint, wire.KindObject, wire.KindArray}},
			{Name: "leave", Args: []wire.Kind{wire.KindUint, wire.KindObject}},
			{Name: "key", Args: []wire.Kind{wire.KindUint, wire.KindUint, wire.KindUint, wire.KindUint}},
			{Name: "modifiers", Args: []wire.Kind{wire.KindUint, wire.KindUint, wire.KindUint, wire.KindUint, wire.KindUint}},
			{Name: "repeat_info", Args: []wire.Kind{wire.KindInt, wire.KindInt}},
		},
	})

	register(Interface{
		Name:    "wl_pointer",
		Version: 8,
		Requests: []Message{
			{Name: "set_cursor", Args: []wire.Kind{wire.KindUint, wire.KindObject, wire.KindInt, wire.KindInt}},
			{Name: "release", Args: nil},
		},
		Events: []Message{
			{Name: "enter", Args: []wire.Kind{wire.KindUint, wire.KindObject, wire.KindFixed, wire.KindFixed}},
			{Name: "leave", Args: []wire.Kind{wire.KindUint, wire.KindObject}},
			{Name: "motion", Args: []wire.Kind{wire.KindUint, wire.KindFixed, wire.KindFixed}},
			{Name: "button", Args: []wire.Kind{wire.KindUint, wire.KindUint, wire.KindUint, wire.KindUint}},
			{Name: "axis", Args: []wire.Kind{wire.KindUint, wire.KindUint, wire.KindFixed}},
			{Name: "frame", Args: nil},
			{Name: "axis_source", Args: []wire.Kind{wire.KindUint}},
			{Name: "axis_stop", Args: []wire.Kind{wire.KindUint, wire.KindUint}},
			{Name: "axis_discrete", Args: []wire.Kind{wire.KindUint, wire.KindInt}},
		},
	})
}
