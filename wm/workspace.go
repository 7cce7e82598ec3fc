package wm

import (
	"github.com/friedelschoen/riverwm/layout"

	"github.com/google/uuid"
)

const WorkspaceCount = 9

// Workspace holds one of an output's nine ordered window lists (§3).
type Workspace struct {
	Index         int
	Windows       []*Window
	FocusedIndex  int // -1 when empty
	LayoutIndex   int
	LayoutParams  layout.Params
	pendingRedraw uuid.UUID // coalescing token; §5 "at most one pending redraw per workspace"
}

// markRedrawPending stamps the workspace with a fresh coalescing token and
// returns it. Called once per markDirty regardless of how many events land
// in the same run_once iteration, so repeated calls before the next Commit
// just overwrite the token rather than accumulate redraw work.
func (ws *Workspace) markRedrawPending() uuid.UUID {
	ws.pendingRedraw = uuid.New()
	return ws.pendingRedraw
}

// clearRedrawPending reports whether token is still the workspace's current
// coalescing token and, if so, resets it to the zero value. A mismatch means
// the workspace was marked dirty again after token was issued, so the caller
// (Commit) must not treat this pass as having cleared the pending redraw.
func (ws *Workspace) clearRedrawPending(token uuid.UUID) bool {
	if ws.pendingRedraw != token {
		return false
	}
	ws.pendingRedraw = uuid.Nil
	return true
}

func newWorkspace(index int) *Workspace {
	return &Workspace{
		Index:        index,
		FocusedIndex: -1,
		LayoutParams: layout.Params{MasterCount: 1, MasterRatio: 0.5},
	}
}

// FocusedWindow returns the workspace's focused window, if any.
func (ws *Workspace) FocusedWindow() *Window {
	if ws.FocusedIndex < 0 || ws.FocusedIndex >= len(ws.Windows) {
		return nil
	}
	return ws.Windows[ws.FocusedIndex]
}

// append adds w to the tail of the workspace's window list.
func (ws *Workspace) append(w *Window) {
	ws.Windows = append(ws.Windows, w)
}

// indexOf returns the position of w in Windows, or -1.
func (ws *Workspace) indexOf(w *Window) int {
	for i, cur := range ws.Windows {
		if cur == w {
			return i
		}
	}
	return -1
}

// remove drops w from the workspace and fixes focus per §4.5 / Scenario D:
// the removed window's neighbor (the one that shifts into its old index, or
// the new last element if it was the tail) becomes focused; an empty
// workspace ends with no focus.
func (ws *Workspace) remove(w *Window) {
	i := ws.indexOf(w)
	if i < 0 {
		return
	}
	wasFocused := ws.FocusedIndex == i
	ws.Windows = append(ws.Windows[:i], ws.Windows[i+1:]...)

	switch {
	case len(ws.Windows) == 0:
		ws.FocusedIndex = -1
	case !wasFocused:
		if ws.FocusedIndex > i {
			ws.FocusedIndex--
		}
	default:
		if i >= len(ws.Windows) {
			ws.FocusedIndex = len(ws.Windows) - 1
		} else {
			ws.FocusedIndex = i
		}
	}
}

// mappedWindows returns the sequence of windows eligible for layout: mapped
// and not fullscreen (§4.7 input contract).
func (ws *Workspace) mappedWindows() []*Window {
	out := make([]*Window, 0, len(ws.Windows))
	for _, w := range ws.Windows {
		if w.State == WindowMapped {
			out = append(out, w)
		}
	}
	return out
}

// focusNextMappedFrom scans forward from index i (wrapping, excluding i
// itself) for the next mapped window, returning its index or -1 if none is
// mapped. Used when the currently focused window stops being mapped (§4.5:
// "an unmapped focused window transfers focus to the next mapped sibling").
func (ws *Workspace) focusNextMappedFrom(i int) int {
	n := len(ws.Windows)
	for step := 1; step < n; step++ {
		j := (i + step) % n
		if ws.Windows[j].State == WindowMapped {
			return j
		}
	}
	return -1
}

// rotateFocus moves FocusedIndex by delta among the mapped windows,
// wrapping, per §4.5 focus_next/focus_prev.
func (ws *Workspace) rotateFocus(delta int) {
	mapped := ws.mappedWindows()
	if len(mapped) == 0 {
		return
	}
	cur := ws.FocusedWindow()
	pos := 0
	for i, w := range mapped {
		if w == cur {
			pos = i
			break
		}
	}
	pos = ((pos+delta)%len(mapped) + len(mapped)) % len(mapped)
	ws.FocusedIndex = ws.indexOf(mapped[pos])
}
