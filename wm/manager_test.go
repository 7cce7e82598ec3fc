package wm

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/friedelschoen/riverwm/layout"
	"github.com/friedelschoen/riverwm/wire"
)

type fakeSender struct {
	sent []wire.Message
}

func (f *fakeSender) Send(msg wire.Message, fds ...int) {
	f.sent = append(f.sent, msg)
}

func newTestManager() (*Manager, *fakeSender) {
	sender := &fakeSender{}
	m := NewManager(sender, Options{InnerGap: 10}, zerolog.Nop())
	return m, sender
}

// TestMoveWindowToWorkspaceScenarioE reproduces spec §8 Scenario E.
func TestMoveWindowToWorkspaceScenarioE(t *testing.T) {
	m, _ := newTestManager()
	out := m.NewOutput(100, 200)

	w := m.NewWindow(1)
	w.HandleMapped(wire.Message{})
	other := m.NewWindow(2)
	other.HandleMapped(wire.Message{})

	require.Equal(t, 1, out.ActiveWorkspace)
	ws1 := out.Workspaces[0]
	ws1.FocusedIndex = ws1.indexOf(w) // focus=W on workspace 1, per the scenario's premise
	require.Same(t, w, ws1.FocusedWindow())

	m.MoveWindowToWorkspace(3)

	assert.Equal(t, -1, ws1.indexOf(w))
	assert.Equal(t, 1, out.ActiveWorkspace) // unchanged
	ws3 := out.Workspaces[2]
	require.Len(t, ws3.Windows, 1)
	assert.Same(t, w, ws3.Windows[0])
	assert.True(t, w.Mapped()) // retains mapped state

	// Focus on workspace 1 moves to W's former neighbor.
	assert.Same(t, other, ws1.FocusedWindow())
}

// TestExactlyOneLocation covers §8 property 4: every window belongs to
// exactly one (output, workspace) pair.
func TestExactlyOneLocation(t *testing.T) {
	m, _ := newTestManager()
	m.NewOutput(100, 200)
	w := m.NewWindow(1)
	w.HandleMapped(wire.Message{})

	count := 0
	for _, out := range m.outputs {
		for _, ws := range out.Workspaces {
			if ws.indexOf(w) >= 0 {
				count++
			}
		}
	}
	assert.Equal(t, 1, count)
}

// TestWorkspaceMovePreservesMapping covers §8 property 9.
func TestWorkspaceMovePreservesMapping(t *testing.T) {
	m, _ := newTestManager()
	m.NewOutput(100, 200)
	w := m.NewWindow(1)
	w.HandleMapped(wire.Message{})
	require.True(t, w.Mapped())

	m.MoveWindowToWorkspace(5)
	assert.True(t, w.Mapped())
}

// TestIdempotentQuit covers §8 property 10.
func TestIdempotentQuit(t *testing.T) {
	m, _ := newTestManager()
	m.Quit()
	assert.False(t, m.Running)
	m.Quit()
	assert.False(t, m.Running)
}

// TestCycleLayoutDeterminism mirrors spec §8 Scenario F's modulo-arithmetic
// shape (next wraps forward, prev wraps backward) against the engine's
// actual layout count.
func TestCycleLayoutDeterminism(t *testing.T) {
	m, _ := newTestManager()
	m.NewOutput(100, 200)
	w := m.NewWindow(1)
	w.HandleMapped(wire.Message{})
	ws := m.currentWorkspace()

	for i := 0; i < layout.Count+1; i++ {
		m.cycleLayout(1)
	}
	assert.Equal(t, 1, ws.LayoutIndex)

	ws.LayoutIndex = 0
	m.cycleLayout(-1)
	assert.Equal(t, layout.Count-1, ws.LayoutIndex)
}

// TestFocusAfterRemovalNextOrNone covers §8 property 8 at the manager
// level: closing the focused window advances focus to the next window in
// sequence if one exists.
func TestFocusAfterRemovalNextOrNone(t *testing.T) {
	m, _ := newTestManager()
	m.NewOutput(100, 200)
	a := m.NewWindow(1)
	a.HandleMapped(wire.Message{})
	b := m.NewWindow(2)
	b.HandleMapped(wire.Message{})

	ws := m.currentWorkspace()
	ws.FocusedIndex = ws.indexOf(a)

	a.HandleClosed(wire.Message{})
	assert.Same(t, b, ws.FocusedWindow())

	b.HandleClosed(wire.Message{})
	assert.Nil(t, ws.FocusedWindow())
}

// TestCommitEmitsGeometryForMappedWindows exercises the commit phase end
// to end against a fake sender.
func TestCommitEmitsGeometryForMappedWindows(t *testing.T) {
	m, sender := newTestManager()
	out := m.NewOutput(100, 200)
	out.W, out.H = 1000, 1000

	w1 := m.NewWindow(1)
	w1.HandleMapped(wire.Message{})
	w2 := m.NewWindow(2)
	w2.HandleMapped(wire.Message{})

	m.Commit()

	require.Len(t, sender.sent, 2)
	for _, msg := range sender.sent {
		assert.Equal(t, uint16(opWindowSetGeometry), msg.Opcode)
	}
}

// TestCommitEmitsFullAreaGeometryForFullscreenWindow covers §4.5's
// toggle_fullscreen: a fullscreen window still gets a commit-phase
// set_geometry covering the output's full area, even though it is excluded
// from the tiled layout calculation.
func TestCommitEmitsFullAreaGeometryForFullscreenWindow(t *testing.T) {
	m, sender := newTestManager()
	out := m.NewOutput(100, 200)
	out.X, out.Y, out.W, out.H = 0, 0, 1000, 800

	w := m.NewWindow(1)
	w.HandleMapped(wire.Message{})
	ws := m.currentWorkspace()
	ws.FocusedIndex = ws.indexOf(w)

	m.toggleFullscreen()
	require.Equal(t, WindowFullscreen, w.State)

	sender.sent = nil
	m.Commit()

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, w.ID, msg.ObjectID)
	assert.Equal(t, uint16(opWindowSetGeometry), msg.Opcode)
	assert.Equal(t, int32(0), msg.Args[0].Int)
	assert.Equal(t, int32(0), msg.Args[1].Int)
	assert.Equal(t, int32(1000), msg.Args[2].Int)
	assert.Equal(t, int32(800), msg.Args[3].Int)
}

// TestOutputRemovedMigratesWindows covers §4.5 output_removed: windows
// migrate to the next remaining output's matching workspace.
func TestOutputRemovedMigratesWindows(t *testing.T) {
	m, _ := newTestManager()
	out1 := m.NewOutput(100, 200)
	out2 := m.NewOutput(101, 201)

	w := m.NewWindow(1)
	w.HandleMapped(wire.Message{})
	require.Equal(t, w, out1.Workspaces[0].Windows[0])

	m.onOutputRemoved(out1)

	assert.Len(t, out2.Workspaces[0].Windows, 1)
	assert.Same(t, w, out2.Workspaces[0].Windows[0])
}
