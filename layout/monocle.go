package layout

// monocle gives every window the full area; only the focused window (or the
// last in order, if none is focused) is marked visible, per §4.7: "one
// window fills the area, others retained but hidden."
func monocle(windows []uint32, focused uint32, hasFocused bool, area Area) map[uint32]Geometry {
	top := windows[len(windows)-1]
	if hasFocused {
		for _, id := range windows {
			if id == focused {
				top = id
				break
			}
		}
	}

	result := make(map[uint32]Geometry, len(windows))
	for _, id := range windows {
		visible := id == top
		border := BorderNormal
		if visible {
			border = BorderFocused
		}
		result[id] = Geometry{X: area.X, Y: area.Y, W: area.W, H: area.H, Border: border, Visible: visible}
	}
	return result
}
