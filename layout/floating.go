package layout

const (
	floatCascadeStep    = 30
	floatDefaultWFactor = 2
	floatDefaultHFactor = 2
)

// floating restores each window's remembered geometry (RememberedBy) if one
// exists; windows with no prior placement cascade from the area's top-left
// at half the area's size each (§4.7: "floating never computes from
// scratch — it restores or cascades").
func floating(windows []uint32, area Area, params Params) map[uint32]Geometry {
	result := make(map[uint32]Geometry, len(windows))
	defaultW := area.W / floatDefaultWFactor
	defaultH := area.H / floatDefaultHFactor
	cascaded := 0

	for _, id := range windows {
		if params.RememberedBy != nil {
			if g, ok := params.RememberedBy(id); ok {
				g.Visible = true
				result[id] = g
				continue
			}
		}

		x := area.X + (cascaded*floatCascadeStep)%max(1, area.W-defaultW+1)
		y := area.Y + (cascaded*floatCascadeStep)%max(1, area.H-defaultH+1)
		cascaded++

		result[id] = Geometry{X: x, Y: y, W: defaultW, H: defaultH, Border: BorderNormal, Visible: true}
	}
	return result
}
