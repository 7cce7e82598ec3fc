package layout

import "math"

// axisToRect maps a (main-axis, cross-axis) placement onto (x, y, w, h).
// For tile-right the main axis is horizontal (columns); tile-bottom
// transposes main/cross onto vertical/horizontal (rows on top).
func axisToRect(transpose bool, mainPos, mainSize, crossPos, crossSize int) (x, y, w, h int) {
	if transpose {
		return crossPos, mainPos, crossSize, mainSize
	}
	return mainPos, crossPos, mainSize, crossSize
}

// tile implements tile-right (transpose=false) and tile-bottom
// (transpose=true): the first masterCount windows occupy a master
// column/row of width/height area * ratio; the rest stack in the
// remaining space. If masterCount >= len(windows), every window is a
// master and occupies a single full-area column/row (§4.7 table).
func tile(windows []uint32, area Area, params Params, transpose bool) map[uint32]Geometry {
	n := len(windows)
	masters := params.MasterCount
	if masters < 1 {
		masters = 1
	}
	if masters > n {
		masters = n
	}
	gap := params.InnerGap

	mainAxis, crossAxis := area.W, area.H
	mainOrigin, crossOrigin := area.X, area.Y
	if transpose {
		mainAxis, crossAxis = area.H, area.W
		mainOrigin, crossOrigin = area.Y, area.X
	}

	result := make(map[uint32]Geometry, n)

	if masters == n {
		sizes := splitLinear(crossAxis, n, gap)
		offs := offsets(crossOrigin, sizes, gap)
		for i, id := range windows {
			x, y, w, h := axisToRect(transpose, mainOrigin, mainAxis, offs[i], sizes[i])
			result[id] = Geometry{X: x, Y: y, W: w, H: h, Border: BorderNormal, Visible: true}
		}
		return result
	}

	usableMain := mainAxis - gap
	masterMain := int(math.Round(float64(usableMain) * params.MasterRatio))
	stackMain := usableMain - masterMain

	masterWindows := windows[:masters]
	stackWindows := windows[masters:]

	masterSizes := splitLinear(crossAxis, masters, gap)
	masterOffs := offsets(crossOrigin, masterSizes, gap)
	for i, id := range masterWindows {
		x, y, w, h := axisToRect(transpose, mainOrigin, masterMain, masterOffs[i], masterSizes[i])
		result[id] = Geometry{X: x, Y: y, W: w, H: h, Border: BorderNormal, Visible: true}
	}

	stackSizes := splitLinear(crossAxis, len(stackWindows), gap)
	stackOffs := offsets(crossOrigin, stackSizes, gap)
	stackMainPos := mainOrigin + masterMain + gap
	for i, id := range stackWindows {
		x, y, w, h := axisToRect(transpose, stackMainPos, stackMain, stackOffs[i], stackSizes[i])
		result[id] = Geometry{X: x, Y: y, W: w, H: h, Border: BorderNormal, Visible: true}
	}

	return result
}
