package layout

// grid arranges windows into a ceil(sqrt(n))-column grid, rows filled left
// to right, with the final row's columns stretched to share the row's
// width evenly (§4.7: "last row may hold fewer than cols windows; its
// cells still divide the row width evenly").
func grid(windows []uint32, area Area, params Params) map[uint32]Geometry {
	n := len(windows)
	cols := ceilSqrt(n)
	rows := ceilDiv(n, cols)
	gap := params.InnerGap

	rowHeights := splitLinear(area.H, rows, gap)
	rowYs := offsets(area.Y, rowHeights, gap)

	result := make(map[uint32]Geometry, n)
	idx := 0
	for r := 0; r < rows && idx < n; r++ {
		remaining := n - idx
		colsInRow := cols
		if remaining < colsInRow {
			colsInRow = remaining
		}

		colWidths := splitLinear(area.W, colsInRow, gap)
		colXs := offsets(area.X, colWidths, gap)

		for c := 0; c < colsInRow; c++ {
			id := windows[idx]
			result[id] = Geometry{
				X: colXs[c], Y: rowYs[r],
				W: colWidths[c], H: rowHeights[r],
				Border: BorderNormal, Visible: true,
			}
			idx++
		}
	}
	return result
}
