package wm

import (
	"github.com/friedelschoen/riverwm/layout"
	"github.com/friedelschoen/riverwm/wire"
)

const (
	evOutputRemoved = 0
)

// Output wraps a river_output_v1 object id plus the wl_output attributes
// named in §3: a logical rectangle, scale, and nine workspaces of which one
// is active.
type Output struct {
	ID     uint32
	owner  *Manager
	conn   windowSender
	wlID   uint32 // the backing wl_output id, for geometry/mode/scale/name events

	Name            string
	X, Y            int
	W, H            int
	Scale           int
	ActiveWorkspace int // 1..9
	Workspaces      [WorkspaceCount]*Workspace
}

func newOutput(id, wlID uint32, conn windowSender, owner *Manager) *Output {
	o := &Output{ID: id, wlID: wlID, conn: conn, owner: owner, ActiveWorkspace: 1, Scale: 1}
	for i := range o.Workspaces {
		o.Workspaces[i] = newWorkspace(i + 1)
	}
	return o
}

// Active returns the output's currently active workspace.
func (o *Output) Active() *Workspace {
	return o.Workspaces[o.ActiveWorkspace-1]
}

// WlOutputID returns the backing wl_output object id, needed by anything
// that binds a surface directly to this output (e.g. a layer-shell overlay)
// rather than going through river's output wrapper.
func (o *Output) WlOutputID() uint32 {
	return o.wlID
}

// Area returns the output's usable rectangle shrunk by outerGap (§3 Area),
// which the layout engine receives pre-shrunk and never touches itself.
func (o *Output) Area(outerGap int) layout.Area {
	return layout.Area{
		X: o.X + outerGap,
		Y: o.Y + outerGap,
		W: max0(o.W - 2*outerGap),
		H: max0(o.H - 2*outerGap),
	}
}

func max0(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

// HandleRemoved applies the river_output_v1.removed event.
func (o *Output) HandleRemoved(wire.Message) {
	o.owner.onOutputRemoved(o)
}

// Dispatch routes a decoded river_output_v1 event by opcode.
func (o *Output) Dispatch(msg wire.Message) {
	switch msg.Opcode {
	case evOutputRemoved:
		o.HandleRemoved(msg)
	}
}

// ApplyGeometry applies a wl_output.geometry event's position fields.
func (o *Output) ApplyGeometry(x, y int) {
	o.X, o.Y = x, y
}

// ApplyMode applies a wl_output.mode event's size fields.
func (o *Output) ApplyMode(w, h int) {
	o.W, o.H = w, h
}

// ApplyScale applies a wl_output.scale event.
func (o *Output) ApplyScale(scale int) {
	o.Scale = scale
}

// ApplyName applies a wl_output.name event.
func (o *Output) ApplyName(name string) {
	o.Name = name
}
