package proto

import "github.com/friedelschoen/riverwm/wire"

// zwlr_layer_shell_v1 reserves surface regions (panels, backgrounds, the
// window decoration overlay) outside the tiled window area. Grounded
// directly on the teacher's proto usage in wayland.go/window.go
// (GetLayerSurface, SetAnchor, SetSize, SetExclusiveZone, AckConfigure).
const (
	LayerBackground uint32 = 0
	LayerBottom     uint32 = 1
	LayerTop        uint32 = 2
	LayerOverlay    uint32 = 3
)

const (
	AnchorTop    uint32 = 1
	AnchorBottom uint32 = 2
	AnchorLeft   uint32 = 4
	AnchorRight  uint32 = 8
)

func init() {
	register(Interface{
		Name:    "zwlr_layer_shell_v1",
		Version: 4,
		Requests: []Message{
			{Name: "get_layer_surface", Args: []wire.Kind{wire.KindNewID, wire.KindObject, wire.KindObject, wire.KindUint, wire.KindString}},
			{Name: "destroy", Args: nil},
		},
	})

	register(Interface{
		Name:    "zwlr_layer_surface_v1",
		Version: 4,
		Requests: []Message{
			{Name: "set_size", Args: []wire.Kind{wire.KindUint, wire.KindUint}},
			{Name: "set_anchor", Args: []wire.Kind{wire.KindUint}},
			{Name: "set_exclusive_zone", Args: []wire.Kind{wire.KindInt}},
			{Name: "set_margin", Args: []wire.Kind{wire.KindInt, wire.KindInt, wire.KindInt, wire.KindInt}},
			{Name: "set_keyboard_interactivity", Args: []wire.Kind{wire.KindUint}},
			{Name: "get_popup", Args: []wire.Kind{wire.KindObject}},
			{Name: "ack_configure", Args: []wire.Kind{wire.KindUint}},
			{Name: "destroy", Args: nil},
			{Name: "set_layer", Args: []wire.Kind{wire.KindUint}},
		},
		Events: []Message{
			{Name: "configure", Args: []wire.Kind{wire.KindUint, wire.KindUint, wire.KindUint}},
			{Name: "closed", Args: nil},
		},
	})
}
