package proto

import "github.com/friedelschoen/riverwm/wire"

// zriver_window_management_v1 and its dependent per-object interfaces: the
// manager global announces windows, outputs, and seats as they come and go;
// each announced object then carries its own attribute/state events and the
// geometry-commit request the manager core issues from §4.5.
func init() {
	register(Interface{
		Name:    "zriver_window_management_v1",
		Version: 1,
		Requests: []Message{
			{Name: "destroy", Args: nil},
		},
		Events: []Message{
			{Name: "window", Args: []wire.Kind{wire.KindNewID}},
			{Name: "output", Args: []wire.Kind{wire.KindNewID, wire.KindObject}},
			{Name: "seat", Args: []wire.Kind{wire.KindNewID, wire.KindObject}},
		},
	})

	register(Interface{
		Name:    "river_window_v1",
		Version: 1,
		Requests: []Message{
			// set_geometry(x, y, width, height, border): border is the
			// LayoutGeometry.Border tag (§3), encoded as an enum uint.
			{Name: "set_geometry", Args: []wire.Kind{wire.KindInt, wire.KindInt, wire.KindInt, wire.KindInt, wire.KindUint}},
			{Name: "set_fullscreen", Args: []wire.Kind{wire.KindUint}},
			{Name: "close", Args: nil},
			{Name: "destroy", Args: nil},
		},
		Events: []Message{
			{Name: "title", Args: []wire.Kind{wire.KindString}},
			{Name: "app_id", Args: []wire.Kind{wire.KindString}},
			{Name: "mapped", Args: nil},
			{Name: "unmapped", Args: nil},
			{Name: "urgent", Args: []wire.Kind{wire.KindUint}},
			{Name: "closed", Args: nil},
		},
	})

	register(Interface{
		Name:    "river_output_v1",
		Version: 1,
		Requests: []Message{
			{Name: "destroy", Args: nil},
		},
		Events: []Message{
			{Name: "removed", Args: nil},
		},
	})

	register(Interface{
		Name:    "river_seat_v1",
		Version: 1,
		Requests: []Message{
			{Name: "destroy", Args: nil},
		},
		Events: []Message{
			// focused_window carries a nullable object id; 0 means none.
			{Name: "focused_window", Args: []wire.Kind{wire.KindObject}},
		},
	})
}
