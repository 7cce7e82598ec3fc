// Package wm implements the window-management state machine of §4.5: it
// reconciles compositor-originated events with user intent, maintains the
// data model of §3 (outputs, workspaces, windows, seats, focus triad), and
// emits layout commits. Nothing here touches the socket directly; every
// outgoing request goes through the windowSender duck-type so the manager
// is testable against a fake.
package wm

import (
	"github.com/friedelschoen/riverwm/errs"
	"github.com/friedelschoen/riverwm/layout"

	"github.com/rs/zerolog"
)

// Options configures the gaps, border width, tab height and spawn actions
// the manager reads from the command-line surface (§6).
type Options struct {
	OuterGap      int
	InnerGap      int
	BorderWidth   int
	TabHeight     int
	SpawnTerminal func()
	SpawnLauncher func()
}

// TabbedCommitHook is invoked once per dirty output whose active workspace
// is using the tabbed layout, after its fullscreen windows and before its
// tiled windows receive their commit-phase set_geometry — the hook's windows
// slice is exactly the
// set the decoration buffer needs to render one tab for (§4.7's "a
// decoration buffer ... is requested for the workspace").
type TabbedCommitHook func(out *Output, ws *Workspace, windows []*Window)

// Manager is the single root object threaded through the event dispatcher
// (§9: "one explicit root object ... no process-wide mutable variables").
type Manager struct {
	conn windowSender
	opts Options
	log  zerolog.Logger

	outputs map[uint32]*Output
	seats   map[uint32]*Seat
	windows map[uint32]*Window

	outputOrder []uint32 // insertion order, for output_removed migration target

	focusedOutput uint32
	dirtyOutputs  map[uint32]struct{}

	tabbedHook TabbedCommitHook

	Running  bool
	ExitCode int
}

// SetTabbedCommitHook installs the callback commitOutput invokes for a
// dirty output currently on the tabbed layout. Set once at startup, after
// the decoration machinery has bound the globals it needs.
func (m *Manager) SetTabbedCommitHook(hook TabbedCommitHook) {
	m.tabbedHook = hook
}

// NewManager constructs an empty manager; conn is used for every outgoing
// request the manager's windows/outputs/seats issue.
func NewManager(conn windowSender, opts Options, log zerolog.Logger) *Manager {
	return &Manager{
		conn:         conn,
		opts:         opts,
		log:          log,
		outputs:      make(map[uint32]*Output),
		seats:        make(map[uint32]*Seat),
		windows:      make(map[uint32]*Window),
		dirtyOutputs: make(map[uint32]struct{}),
		Running:      true,
	}
}

// --- object table wiring -----------------------------------------------

// Log returns the manager's logger, for bootstrap code that needs to
// report non-fatal setup conditions (e.g. an absent optional global)
// before any object exists to log through.
func (m *Manager) Log() zerolog.Logger {
	return m.log
}

// NewWindow registers a freshly-announced window object and assigns it to
// the focused workspace of the focused output (§4.5 window_created), at
// the end of the sequence, unmapped until its mapped event arrives.
func (m *Manager) NewWindow(id uint32) *Window {
	w := newWindow(id, m.conn, m)
	m.windows[id] = w

	out := m.outputs[m.focusedOutput]
	if out != nil {
		ws := out.Active()
		ws.append(w)
		m.markDirty(out.ID)
	}
	return w
}

// NewOutput registers a freshly-announced output, initializing its nine
// workspaces (§4.5 output_added). The first output added becomes focused.
func (m *Manager) NewOutput(id, wlID uint32) *Output {
	o := newOutput(id, wlID, m.conn, m)
	m.outputs[id] = o
	m.outputOrder = append(m.outputOrder, id)
	if m.focusedOutput == 0 {
		m.focusedOutput = id
	}
	return o
}

// NewSeat registers a freshly-announced seat with an empty binding table;
// its default key bindings are added by the caller (§4.6 / §6 action tags).
func (m *Manager) NewSeat(id uint32) *Seat {
	s := newSeat(id, m.conn, m)
	m.seats[id] = s
	return s
}

func (m *Manager) windowByID(id uint32) *Window {
	if id == 0 {
		return nil
	}
	return m.windows[id]
}

// locate returns the output and workspace currently holding w, if any.
func (m *Manager) locate(w *Window) (*Output, *Workspace) {
	for _, out := range m.outputs {
		for _, ws := range out.Workspaces {
			if ws.indexOf(w) >= 0 {
				return out, ws
			}
		}
	}
	return nil, nil
}

func (m *Manager) markDirty(outputID uint32) {
	m.dirtyOutputs[outputID] = struct{}{}
	if out := m.outputs[outputID]; out != nil {
		out.Active().markRedrawPending()
	}
}

// --- window event handlers ----------------------------------------------

func (m *Manager) onWindowMapped(w *Window) {
	_, ws := m.locate(w)
	if ws == nil {
		return
	}
	ws.FocusedIndex = ws.indexOf(w)
	if out, _ := m.locate(w); out != nil {
		m.markDirty(out.ID)
	}
}

func (m *Manager) onWindowUnmapped(w *Window) {
	out, ws := m.locate(w)
	if ws == nil {
		return
	}
	if ws.FocusedWindow() == w {
		ws.FocusedIndex = ws.focusNextMappedFrom(ws.indexOf(w))
	}
	if out != nil {
		m.markDirty(out.ID)
	}
}

func (m *Manager) onWindowClosed(w *Window) {
	out, ws := m.locate(w)
	if ws != nil {
		ws.remove(w)
	}
	delete(m.windows, w.ID)
	if out != nil {
		m.markDirty(out.ID)
	}
}

func (m *Manager) onWindowAttributeChanged(w *Window) {
	if out, _ := m.locate(w); out != nil {
		m.markDirty(out.ID)
	}
}

func (m *Manager) onOutputRemoved(o *Output) {
	delete(m.outputs, o.ID)
	for i, id := range m.outputOrder {
		if id == o.ID {
			m.outputOrder = append(m.outputOrder[:i], m.outputOrder[i+1:]...)
			break
		}
	}

	var target *Output
	for _, id := range m.outputOrder {
		target = m.outputs[id]
		break
	}

	for i, ws := range o.Workspaces {
		if target == nil {
			continue // no output remains; windows held in a pending set (the removed output's own list)
		}
		for _, w := range ws.Windows {
			target.Workspaces[i].append(w)
		}
		m.markDirty(target.ID)
	}

	if m.focusedOutput == o.ID {
		m.focusedOutput = 0
		if target != nil {
			m.focusedOutput = target.ID
		}
	}
}

// --- user actions (§4.5) -------------------------------------------------

func (m *Manager) handleAction(s *Seat, b Binding) {
	switch b.Action {
	case ActionSpawnTerminal:
		if m.opts.SpawnTerminal != nil {
			m.opts.SpawnTerminal()
		}
	case ActionSpawnLauncher:
		if m.opts.SpawnLauncher != nil {
			m.opts.SpawnLauncher()
		}
	case ActionCloseWindow:
		m.closeFocused()
	case ActionQuit:
		m.Quit()
	case ActionFocusNext:
		m.rotateFocusCurrent(1)
	case ActionFocusPrev:
		m.rotateFocusCurrent(-1)
	case ActionSwapNext:
		m.swapCurrent(1)
	case ActionSwapPrev:
		m.swapCurrent(-1)
	case ActionPromoteMaster:
		m.promoteToMaster()
	case ActionCycleLayoutNext:
		m.cycleLayout(1)
	case ActionCycleLayoutPrev:
		m.cycleLayout(-1)
	case ActionToggleFullscreen:
		m.toggleFullscreen()
	case ActionSwitchWorkspace:
		m.SwitchWorkspace(b.Workspace)
	case ActionMoveWindowToWorkspace:
		m.MoveWindowToWorkspace(b.Workspace)
	}
}

func (m *Manager) currentWorkspace() *Workspace {
	out := m.outputs[m.focusedOutput]
	if out == nil {
		return nil
	}
	return out.Active()
}

// rotateFocusCurrent implements focus_next/focus_prev.
func (m *Manager) rotateFocusCurrent(delta int) {
	ws := m.currentWorkspace()
	if ws == nil {
		return
	}
	ws.rotateFocus(delta)
	m.markDirty(m.focusedOutput)
}

// swapCurrent implements swap_next/swap_prev: swap focused window with its
// sequence neighbor; focus follows the moved window.
func (m *Manager) swapCurrent(delta int) {
	ws := m.currentWorkspace()
	if ws == nil || len(ws.Windows) < 2 {
		return
	}
	i := ws.FocusedIndex
	if i < 0 {
		return
	}
	j := ((i+delta)%len(ws.Windows) + len(ws.Windows)) % len(ws.Windows)
	ws.Windows[i], ws.Windows[j] = ws.Windows[j], ws.Windows[i]
	ws.FocusedIndex = j
	m.markDirty(m.focusedOutput)
}

// promoteToMaster moves the focused window to index 0.
func (m *Manager) promoteToMaster() {
	ws := m.currentWorkspace()
	if ws == nil {
		return
	}
	w := ws.FocusedWindow()
	if w == nil {
		return
	}
	i := ws.indexOf(w)
	ws.Windows = append(ws.Windows[:i], ws.Windows[i+1:]...)
	ws.Windows = append([]*Window{w}, ws.Windows...)
	ws.FocusedIndex = 0
	m.markDirty(m.focusedOutput)
}

// cycleLayout implements cycle_layout(+1/-1): change layout_index modulo
// the configured layout count (§4.5, Scenario F).
func (m *Manager) cycleLayout(delta int) {
	ws := m.currentWorkspace()
	if ws == nil {
		return
	}
	ws.LayoutIndex = ((ws.LayoutIndex+delta)%layout.Count + layout.Count) % layout.Count
	m.markDirty(m.focusedOutput)
}

// toggleFullscreen flips the flag on the focused window.
func (m *Manager) toggleFullscreen() {
	ws := m.currentWorkspace()
	if ws == nil {
		return
	}
	w := ws.FocusedWindow()
	if w == nil {
		return
	}
	w.SetFullscreen(w.State != WindowFullscreen)
	m.markDirty(m.focusedOutput)
}

// MoveWindowToWorkspace implements move-window-to-workspace-N (§4.5,
// Scenario E): detaches from the current workspace, appends to workspace n
// on the same output, retaining its mapped state; the active workspace
// index is unchanged.
func (m *Manager) MoveWindowToWorkspace(n int) {
	if n < 1 || n > WorkspaceCount {
		return
	}
	out := m.outputs[m.focusedOutput]
	if out == nil {
		return
	}
	ws := out.Active()
	w := ws.FocusedWindow()
	if w == nil {
		return
	}
	ws.remove(w)
	out.Workspaces[n-1].append(w)
	m.markDirty(out.ID)
}

// SwitchWorkspace implements switch-workspace-N: sets active_workspace_index
// on the focused output.
func (m *Manager) SwitchWorkspace(n int) {
	if n < 1 || n > WorkspaceCount {
		return
	}
	out := m.outputs[m.focusedOutput]
	if out == nil {
		return
	}
	out.ActiveWorkspace = n
	m.markDirty(out.ID)
}

// closeFocused issues close-window on the currently focused window.
func (m *Manager) closeFocused() {
	ws := m.currentWorkspace()
	if ws == nil {
		return
	}
	if w := ws.FocusedWindow(); w != nil {
		w.Close()
	}
}

// makeFloating exempts w from layout for the pointer-gesture move/resize
// path (§4.6): it keeps its workspace membership but the commit phase
// restores its remembered geometry rather than computing one.
func (m *Manager) makeFloating(w *Window) {
	w.Remembered = w.Geometry
	w.HasRemembered = true
}

// Quit implements quit: idempotent per §8 property 10.
func (m *Manager) Quit() {
	m.Running = false
}

// --- commit phase ---------------------------------------------------------

// Commit recomputes layouts for every output marked dirty since the last
// call and emits set_geometry for each of its windows (§4.5 commit phase);
// it must run once per run_once iteration, after event dispatch and before
// the next poll.
func (m *Manager) Commit() {
	for id := range m.dirtyOutputs {
		out := m.outputs[id]
		if out == nil {
			continue
		}
		m.commitOutput(out)
	}
	m.dirtyOutputs = make(map[uint32]struct{})
}

func (m *Manager) commitOutput(out *Output) {
	ws := out.Active()
	token := ws.pendingRedraw
	defer ws.clearRedrawPending(token)

	tiling := layout.Kind(ws.LayoutIndex) != layout.Floating
	var fullscreen []*Window
	var floating []*Window
	var tiled []*Window
	for _, w := range ws.Windows {
		if !w.Mapped() {
			continue
		}
		switch {
		case w.State == WindowFullscreen:
			fullscreen = append(fullscreen, w)
		case w.HasRemembered && tiling:
			floating = append(floating, w)
		default:
			tiled = append(tiled, w)
		}
	}

	area := out.Area(m.opts.OuterGap)
	for _, w := range fullscreen {
		w.SetGeometry(layout.Geometry{X: out.X, Y: out.Y, W: out.W, H: out.H, Border: layout.BorderFocused, Visible: true})
	}
	for _, w := range floating {
		w.SetGeometry(w.Remembered)
	}

	if layout.Kind(ws.LayoutIndex) == layout.Tabbed && m.tabbedHook != nil {
		m.tabbedHook(out, ws, tiled)
	}

	if len(tiled) == 0 {
		return
	}

	ids := make([]uint32, len(tiled))
	byID := make(map[uint32]*Window, len(tiled))
	for i, w := range tiled {
		ids[i] = w.ID
		byID[w.ID] = w
	}

	var focused uint32
	hasFocused := false
	if fw := ws.FocusedWindow(); fw != nil {
		if _, ok := byID[fw.ID]; ok {
			focused, hasFocused = fw.ID, true
		}
	}

	params := ws.LayoutParams
	params.InnerGap = m.opts.InnerGap
	params.TabHeight = m.opts.TabHeight
	params.RememberedBy = func(id uint32) (layout.Geometry, bool) {
		w := byID[id]
		if w == nil || !w.HasRemembered {
			return layout.Geometry{}, false
		}
		return w.Remembered, true
	}

	geoms := layout.Calculate(layout.Kind(ws.LayoutIndex), ids, focused, hasFocused, area, params)
	for id, g := range geoms {
		byID[id].SetGeometry(g)
	}
}

// --- display/protocol error plumbing --------------------------------------

// HandleDisplayError translates a wl_display.error event into the §7
// ServerError taxonomy: logged here, but propagated to the caller via
// Running/ExitCode rather than exiting in place — §7's "manager surfaces
// fatal errors by setting running = false with a stored exit code," not by
// terminating mid-dispatch. The run loop (cmd/riverwm) exits with ExitCode
// once it observes !Running.
func (m *Manager) HandleDisplayError(objectID, code uint32, message string) {
	err := &errs.ServerError{ObjectID: objectID, Code: code, Message: message}
	m.log.Error().Err(err).Msg("server reported a fatal error")
	m.Running = false
	m.ExitCode = err.ExitCode()
}
