// Package layout implements the pure, deterministic layout algorithms of
// §4.7: calculate(windows, area, params) -> geometry map. Nothing here
// touches the wire or the manager; it is a function from input to output.
package layout

import "math"

// Border tags the decoration color a window's geometry should render with.
type Border int

const (
	BorderNone Border = iota
	BorderNormal
	BorderFocused
	BorderUrgent
)

// Geometry is one window's computed placement (§3 LayoutGeometry).
type Geometry struct {
	X, Y, W, H int
	Border     Border
	Visible    bool // false for layouts that stack windows (monocle, tabbed)
}

// Area is the output's usable rectangle, already shrunk by the outer gap
// (§3): the layout engine never subtracts the outer gap itself.
type Area struct {
	X, Y, W, H int
}

// Kind selects one of the §4.7 algorithms.
type Kind int

const (
	TileRight Kind = iota
	TileBottom
	Monocle
	Grid
	CenteredMaster
	Floating
	Tabbed
)

// Count is the number of layouts a manager cycles through with
// cycle-layout-next/prev (§4.5); kept here since it is the layout engine
// that enumerates its own algorithms.
const Count = int(Tabbed) + 1

// Params bundles every layout's configuration knobs; each algorithm reads
// only the fields it needs.
type Params struct {
	MasterCount  int
	MasterRatio  float64
	InnerGap     int
	TabHeight    int
	RememberedBy func(id uint32) (Geometry, bool) // Floating: prior placement, if any
}

// Calculate dispatches to the algorithm named by kind. windows is the
// mapped, non-fullscreen sequence in workspace order; focused, if
// hasFocused, names the window that gets top z-order/visibility in the
// layouts that stack windows. Ties: zero windows always yields an empty map.
func Calculate(kind Kind, windows []uint32, focused uint32, hasFocused bool, area Area, params Params) map[uint32]Geometry {
	if len(windows) == 0 {
		return map[uint32]Geometry{}
	}
	switch kind {
	case TileRight:
		return tile(windows, area, params, false)
	case TileBottom:
		return tile(windows, area, params, true)
	case Monocle:
		return monocle(windows, focused, hasFocused, area)
	case Grid:
		return grid(windows, area, params)
	case CenteredMaster:
		return centeredMaster(windows, area, params)
	case Floating:
		return floating(windows, area, params)
	case Tabbed:
		return tabbed(windows, focused, hasFocused, area, params)
	default:
		return map[uint32]Geometry{}
	}
}

// splitLinear partitions an axis of length total into count cells separated
// by gap, distributing any leftover pixels to the first recipients so the
// sum of returned sizes plus (count-1)*gap equals total exactly (§4.7:
// "Rounding distributes leftover pixels to the first recipients").
func splitLinear(total, count, gap int) []int {
	if count <= 0 {
		return nil
	}
	usable := total - gap*(count-1)
	if usable < 0 {
		usable = 0
	}
	base := usable / count
	rem := usable % count
	sizes := make([]int, count)
	for i := range sizes {
		sizes[i] = base
		if i < rem {
			sizes[i]++
		}
	}
	return sizes
}

// offsets returns the cumulative starting position of each cell given its
// size and the fixed gap between cells, starting at origin.
func offsets(origin int, sizes []int, gap int) []int {
	out := make([]int, len(sizes))
	pos := origin
	for i, s := range sizes {
		out[i] = pos
		pos += s + gap
	}
	return out
}

func ceilSqrt(n int) int {
	return int(math.Ceil(math.Sqrt(float64(n))))
}

func ceilDiv(a, b int) int {
	if b == 0 {
		return 0
	}
	return (a + b - 1) / b
}
