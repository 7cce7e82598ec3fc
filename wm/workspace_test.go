package wm

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWindow(id uint32) *Window {
	return &Window{ID: id, State: WindowMapped}
}

// TestWorkspaceRemoveScenarioD reproduces spec §8 Scenario D exactly.
func TestWorkspaceRemoveScenarioD(t *testing.T) {
	a, b, c := newTestWindow(1), newTestWindow(2), newTestWindow(3)
	ws := newWorkspace(1)
	ws.append(a)
	ws.append(b)
	ws.append(c)
	ws.FocusedIndex = 1 // B

	ws.remove(b)
	require.Equal(t, []*Window{a, c}, ws.Windows)
	assert.Same(t, c, ws.FocusedWindow())

	ws.remove(c)
	require.Equal(t, []*Window{a}, ws.Windows)
	assert.Same(t, a, ws.FocusedWindow())

	ws.remove(a)
	assert.Empty(t, ws.Windows)
	assert.Nil(t, ws.FocusedWindow())
}

// TestWorkspaceRemoveUnfocusedAdjustsIndex covers §8 property 5 (focus
// consistency): removing a non-focused window must not leave
// FocusedIndex pointing past the end or at the wrong survivor.
func TestWorkspaceRemoveUnfocusedAdjustsIndex(t *testing.T) {
	a, b, c := newTestWindow(1), newTestWindow(2), newTestWindow(3)
	ws := newWorkspace(1)
	ws.append(a)
	ws.append(b)
	ws.append(c)
	ws.FocusedIndex = 2 // C

	ws.remove(a)
	require.Equal(t, []*Window{b, c}, ws.Windows)
	assert.Same(t, c, ws.FocusedWindow())
}

func TestWorkspaceRotateFocusWraps(t *testing.T) {
	a, b, c := newTestWindow(1), newTestWindow(2), newTestWindow(3)
	ws := newWorkspace(1)
	ws.append(a)
	ws.append(b)
	ws.append(c)
	ws.FocusedIndex = 2 // C

	ws.rotateFocus(1)
	assert.Same(t, a, ws.FocusedWindow())

	ws.rotateFocus(-1)
	assert.Same(t, c, ws.FocusedWindow())
}

func TestWorkspaceFocusNextMappedFromSkipsUnmapped(t *testing.T) {
	a := newTestWindow(1)
	b := newTestWindow(2)
	b.State = WindowPending
	c := newTestWindow(3)
	ws := newWorkspace(1)
	ws.append(a)
	ws.append(b)
	ws.append(c)

	next := ws.focusNextMappedFrom(1) // from B's index
	require.Equal(t, 2, next)
	assert.Same(t, c, ws.Windows[next])
}

// TestWorkspaceRedrawCoalescing covers §5's "at most one pending redraw per
// workspace": a second markRedrawPending before the first is cleared issues
// a fresh token, so a stale token from an earlier round can no longer clear
// it.
func TestWorkspaceRedrawCoalescing(t *testing.T) {
	ws := newWorkspace(1)
	assert.Equal(t, uuid.Nil, ws.pendingRedraw)

	first := ws.markRedrawPending()
	assert.NotEqual(t, uuid.Nil, first)

	second := ws.markRedrawPending()
	assert.NotEqual(t, first, second)

	assert.False(t, ws.clearRedrawPending(first))
	assert.True(t, ws.clearRedrawPending(second))
	assert.Equal(t, uuid.Nil, ws.pendingRedraw)
}
