package wm

import "fmt"

// Modifier is a bitflag in the fixed 1-256 range named in §4.6.
type Modifier uint32

const (
	ModShift Modifier = 1 << iota
	ModCaps
	ModCtrl
	ModAlt  // Mod1
	ModMod2
	ModMod3
	ModSuper // Mod4
	ModMod5
)

// Action is one of the tags enumerated in §6's key-binding action table.
type Action int

const (
	ActionSpawnTerminal Action = iota
	ActionSpawnLauncher
	ActionCloseWindow
	ActionQuit
	ActionFocusNext
	ActionFocusPrev
	ActionSwapNext
	ActionSwapPrev
	ActionPromoteMaster
	ActionCycleLayoutNext
	ActionCycleLayoutPrev
	ActionToggleFullscreen
	// ActionSwitchWorkspace and ActionMoveWindowToWorkspace carry their
	// workspace number (1..9) out of band in Binding.Workspace.
	ActionSwitchWorkspace
	ActionMoveWindowToWorkspace
)

// bindingKey identifies a binding by exactly the pair the compositor keys
// registrations on (§4.6): "at most one binding for a given (mod mask,
// keysym) pair; re-registration replaces."
type bindingKey struct {
	Mods   Modifier
	Keysym uint32
}

// Binding pairs an action with its workspace argument, when the action is
// one of the N-parameterized ones.
type Binding struct {
	Action    Action
	Workspace int // 1..9, meaningful only for the two workspace actions
}

// BindingTable is a seat's (mod mask, keysym) -> action map, registered with
// the compositor via river_seat_bindings_v1.add_binding as entries are added.
type BindingTable struct {
	entries map[bindingKey]Binding
}

// NewBindingTable returns an empty table.
func NewBindingTable() *BindingTable {
	return &BindingTable{entries: make(map[bindingKey]Binding)}
}

// Set registers or replaces the binding for (mods, keysym).
func (t *BindingTable) Set(mods Modifier, keysym uint32, binding Binding) {
	t.entries[bindingKey{mods, keysym}] = binding
}

// Lookup resolves a (mods, keysym) pair as reported by a
// river_seat_bindings_v1.binding_triggered event.
func (t *BindingTable) Lookup(mods Modifier, keysym uint32) (Binding, bool) {
	b, ok := t.entries[bindingKey{mods, keysym}]
	return b, ok
}

// ActionName renders an action tag exactly as §6 names it, for
// add_binding's descriptive string argument and for diagnostics.
func ActionName(b Binding) string { return actionName(b) }

func actionName(b Binding) string {
	switch b.Action {
	case ActionSpawnTerminal:
		return "spawn-terminal"
	case ActionSpawnLauncher:
		return "spawn-launcher"
	case ActionCloseWindow:
		return "close-window"
	case ActionQuit:
		return "quit"
	case ActionFocusNext:
		return "focus-next"
	case ActionFocusPrev:
		return "focus-prev"
	case ActionSwapNext:
		return "swap-next"
	case ActionSwapPrev:
		return "swap-prev"
	case ActionPromoteMaster:
		return "promote-master"
	case ActionCycleLayoutNext:
		return "cycle-layout-next"
	case ActionCycleLayoutPrev:
		return "cycle-layout-prev"
	case ActionToggleFullscreen:
		return "toggle-fullscreen"
	case ActionSwitchWorkspace:
		return fmt.Sprintf("switch-workspace-%d", b.Workspace)
	case ActionMoveWindowToWorkspace:
		return fmt.Sprintf("move-window-to-workspace-%d", b.Workspace)
	default:
		return "unknown"
	}
}

// DefaultModifier parses the cmdline "modifier key" option (§6) into its
// bitflag.
func DefaultModifier(name string) (Modifier, error) { return defaultModifier(name) }

// defaultModifier parses the cmdline "modifier key" option (§6) into its
// bitflag; Alt and Super are the two variants the union-of-capabilities
// open question (§9) keeps both available for.
func defaultModifier(name string) (Modifier, error) {
	switch name {
	case "Shift":
		return ModShift, nil
	case "Ctrl":
		return ModCtrl, nil
	case "Alt":
		return ModAlt, nil
	case "Super":
		return ModSuper, nil
	default:
		return 0, fmt.Errorf("unknown modifier key %q", name)
	}
}
