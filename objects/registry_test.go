package objects

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/friedelschoen/riverwm/errs"
	"github.com/friedelschoen/riverwm/wire"
)

type fakeSender struct {
	sent []wire.Message
}

func (f *fakeSender) Send(msg wire.Message, fds ...int) {
	f.sent = append(f.sent, msg)
}

func globalMsg(name uint32, iface string, version uint32) wire.Message {
	return wire.Message{
		Opcode: evRegistryGlobal,
		Args:   []wire.Arg{wire.ArgUint(name), wire.ArgString(iface), wire.ArgUint(version)},
	}
}

// TestRegistryBootstrapScenarioB implements §8 Scenario B.
func TestRegistryBootstrapScenarioB(t *testing.T) {
	table := New()
	sender := &fakeSender{}
	reg := NewRegistry(sender, table, func(uint32, uint32, string) {})

	reg.dispatch(globalMsg(1, "wl_compositor", 5))
	reg.dispatch(globalMsg(2, "wl_shm", 1))
	reg.dispatch(globalMsg(3, "wl_seat", 8))
	reg.dispatch(globalMsg(4, "zriver_window_management_v1", 1))

	for _, iface := range []string{"wl_compositor", "wl_shm", "wl_seat", "zriver_window_management_v1"} {
		_, err := reg.RequireGlobal(iface, 99, func(wire.Message) {})
		require.NoError(t, err)
	}
}

func TestRegistryMissingGlobalIsFatal(t *testing.T) {
	table := New()
	sender := &fakeSender{}
	reg := NewRegistry(sender, table, func(uint32, uint32, string) {})

	reg.dispatch(globalMsg(1, "wl_compositor", 5))
	reg.dispatch(globalMsg(2, "wl_shm", 1))
	reg.dispatch(globalMsg(3, "wl_seat", 8))
	// zriver_window_management_v1 absent.

	_, err := reg.RequireGlobal("zriver_window_management_v1", 1, func(wire.Message) {})
	require.Error(t, err)
	var missing *errs.MissingGlobalError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "zriver_window_management_v1", missing.Interface)
	assert.Equal(t, 1, missing.ExitCode())
}

// fakePumpSender is a Sender+Pumper that answers its own wl_display.sync
// requests on the first RunOnce call, the way a real Conn answers sync once
// the compositor round-trip completes.
type fakePumpSender struct {
	table   *Table
	sent    []wire.Message
	runOnce int
}

func (f *fakePumpSender) Send(msg wire.Message, fds ...int) {
	f.sent = append(f.sent, msg)
}

func (f *fakePumpSender) RunOnce(timeout time.Duration) (bool, error) {
	f.runOnce++
	for _, msg := range f.sent {
		if msg.ObjectID == DisplayID && msg.Opcode == opDisplaySync {
			cbID := msg.Args[0].Uint
			_ = f.table.Dispatch(cbID, wire.Message{ObjectID: cbID, Opcode: evCallbackDone})
		}
	}
	f.sent = nil
	return true, nil
}

// TestRegistrySyncDrivesPumpItself reproduces the startup deadlock: Sync
// must pump the connection itself rather than block on a channel nothing
// else can ever signal.
func TestRegistrySyncDrivesPumpItself(t *testing.T) {
	table := New()
	sender := &fakePumpSender{table: table}
	reg := NewRegistry(sender, table, func(uint32, uint32, string) {})

	err := reg.Sync(sender)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, sender.runOnce, 1)
}

type closedPumpSender struct{}

func (closedPumpSender) Send(msg wire.Message, fds ...int) {}
func (closedPumpSender) RunOnce(timeout time.Duration) (bool, error) {
	return false, nil
}

// TestRegistrySyncReportsClosedConnection covers the case where the peer
// closes the socket before the sync round-trip completes.
func TestRegistrySyncReportsClosedConnection(t *testing.T) {
	table := New()
	reg := NewRegistry(closedPumpSender{}, table, func(uint32, uint32, string) {})

	err := reg.Sync(closedPumpSender{})
	require.Error(t, err)
}

func TestBindNegotiatesMinVersion(t *testing.T) {
	table := New()
	sender := &fakeSender{}
	reg := NewRegistry(sender, table, func(uint32, uint32, string) {})
	reg.dispatch(globalMsg(1, "wl_seat", 8))

	g, ok := reg.Find("wl_seat")
	require.True(t, ok)

	id := reg.Bind(g, 5, func(wire.Message) {})
	entry, ok := table.Lookup(id)
	require.True(t, ok)
	assert.Equal(t, uint32(5), entry.Version)
}
