package layout

import "math"

// centeredMaster places the first masterCount windows in a column centered
// horizontally at MasterRatio of the area width; the remaining windows split
// between a left stack and a right stack filling the margins on either side
// (§4.7: "master column centered; stack windows alternate left/right").
func centeredMaster(windows []uint32, area Area, params Params) map[uint32]Geometry {
	n := len(windows)
	masters := params.MasterCount
	if masters < 1 {
		masters = 1
	}
	if masters > n {
		masters = n
	}
	gap := params.InnerGap

	result := make(map[uint32]Geometry, n)

	if masters == n {
		sizes := splitLinear(area.H, n, gap)
		ys := offsets(area.Y, sizes, gap)
		for i, id := range windows {
			result[id] = Geometry{X: area.X, Y: ys[i], W: area.W, H: sizes[i], Border: BorderNormal, Visible: true}
		}
		return result
	}

	masterW := int(math.Round(float64(area.W) * params.MasterRatio))
	stackWindows := windows[masters:]

	var left, right []uint32
	for i, id := range stackWindows {
		if i%2 == 0 {
			right = append(right, id)
		} else {
			left = append(left, id)
		}
	}

	// With only one side occupied this degenerates to tile-right: that
	// side takes the whole remaining width, not half of it (§4.7: "with
	// ≤1 remaining, degenerates to tile-right with master on left").
	var leftW, rightW int
	switch {
	case len(left) > 0 && len(right) > 0:
		leftW = (area.W - masterW - 2*gap) / 2
		rightW = area.W - masterW - 2*gap - leftW
	case len(left) > 0:
		leftW = area.W - masterW - gap
	case len(right) > 0:
		rightW = area.W - masterW - gap
	}

	leftX := area.X
	masterX := area.X
	rightX := area.X
	switch {
	case len(left) > 0 && len(right) > 0:
		masterX = leftX + leftW + gap
		rightX = masterX + masterW + gap
	case len(right) > 0:
		rightX = masterX + masterW + gap
	case len(left) > 0:
		// masterX stays at area.X; left occupies the trailing margin.
		leftX = masterX + masterW + gap
	}

	masterSizes := splitLinear(area.H, masters, gap)
	masterYs := offsets(area.Y, masterSizes, gap)
	for i, id := range windows[:masters] {
		result[id] = Geometry{X: masterX, Y: masterYs[i], W: masterW, H: masterSizes[i], Border: BorderNormal, Visible: true}
	}

	if len(left) > 0 {
		sizes := splitLinear(area.H, len(left), gap)
		ys := offsets(area.Y, sizes, gap)
		for i, id := range left {
			result[id] = Geometry{X: leftX, Y: ys[i], W: leftW, H: sizes[i], Border: BorderNormal, Visible: true}
		}
	}
	if len(right) > 0 {
		sizes := splitLinear(area.H, len(right), gap)
		ys := offsets(area.Y, sizes, gap)
		for i, id := range right {
			result[id] = Geometry{X: rightX, Y: ys[i], W: rightW, H: sizes[i], Border: BorderNormal, Visible: true}
		}
	}

	return result
}
