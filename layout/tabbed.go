package layout

// TabDecorationSize returns the width and height, in pixels, of the tab bar
// reserved at the top of area when tabHeight is the configured tab height.
func TabDecorationSize(area Area, tabHeight int) (w, h int) {
	return area.W, tabHeight
}

// tabbed reserves a tabHeight strip at the top of the area for the tab bar
// and gives every window the full remaining area; only the focused window is
// marked visible, the same single-visible convention as monocle (§4.7).
func tabbed(windows []uint32, focused uint32, hasFocused bool, area Area, params Params) map[uint32]Geometry {
	top := windows[len(windows)-1]
	if hasFocused {
		for _, id := range windows {
			if id == focused {
				top = id
				break
			}
		}
	}

	tabH := params.TabHeight
	if tabH < 0 {
		tabH = 0
	}
	contentArea := Area{X: area.X, Y: area.Y + tabH, W: area.W, H: area.H - tabH}
	if contentArea.H < 0 {
		contentArea.H = 0
	}

	result := make(map[uint32]Geometry, len(windows))
	for _, id := range windows {
		visible := id == top
		border := BorderNormal
		if visible {
			border = BorderFocused
		}
		result[id] = Geometry{X: contentArea.X, Y: contentArea.Y, W: contentArea.W, H: contentArea.H, Border: border, Visible: visible}
	}
	return result
}
