package wm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindingTableReplacesOnReregistration(t *testing.T) {
	table := NewBindingTable()
	table.Set(ModSuper, 0x71, Binding{Action: ActionCloseWindow})
	table.Set(ModSuper, 0x71, Binding{Action: ActionQuit})

	b, ok := table.Lookup(ModSuper, 0x71)
	require.True(t, ok)
	assert.Equal(t, ActionQuit, b.Action)
}

func TestBindingTableMissLookup(t *testing.T) {
	table := NewBindingTable()
	_, ok := table.Lookup(ModAlt, 0x41)
	assert.False(t, ok)
}

func TestActionNameIncludesWorkspaceNumber(t *testing.T) {
	assert.Equal(t, "switch-workspace-3", actionName(Binding{Action: ActionSwitchWorkspace, Workspace: 3}))
	assert.Equal(t, "move-window-to-workspace-9", actionName(Binding{Action: ActionMoveWindowToWorkspace, Workspace: 9}))
}

func TestDefaultModifierBothAltAndSuper(t *testing.T) {
	alt, err := defaultModifier("Alt")
	require.NoError(t, err)
	assert.Equal(t, ModAlt, alt)

	super, err := defaultModifier("Super")
	require.NoError(t, err)
	assert.Equal(t, ModSuper, super)

	_, err = defaultModifier("Nope")
	assert.Error(t, err)
}
