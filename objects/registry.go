package objects

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/friedelschoen/riverwm/errs"
	"github.com/friedelschoen/riverwm/wire"
)

// syncPollInterval bounds how long each Pumper.RunOnce call inside Sync
// blocks waiting for the wl_callback.done round-trip; kept short since Sync
// itself loops until done fires.
const syncPollInterval = 20 * time.Millisecond

// Pumper drives the connection's read/dispatch/write cycle; satisfied by
// *conn.Conn without an import (same duck-typing pattern as Sender).
type Pumper interface {
	RunOnce(timeout time.Duration) (bool, error)
}

// Global is one interface advertised by the compositor's registry.
type Global struct {
	Name      uint32
	Interface string
	Version   uint32
}

// Sender is the minimal outgoing-message capability the registry needs;
// satisfied by *conn.Conn without importing it (avoids an import cycle,
// since conn depends on objects for dispatch).
type Sender interface {
	Send(msg wire.Message, fds ...int)
}

// opcodes for wl_display, wl_registry and wl_callback, per §2.4.
const (
	opDisplaySync        = 0
	opDisplayGetRegistry = 1

	evDisplayError    = 0
	evDisplayDeleteID = 1

	opRegistryBind = 0

	evRegistryGlobal       = 0
	evRegistryGlobalRemove = 1

	evCallbackDone = 0
)

// Registry tracks the set of globals advertised by the compositor registry
// object and performs the bind handshake the manager needs at startup.
type Registry struct {
	ID      uint32
	conn    Sender
	table   *Table
	mu      sync.Mutex
	globals map[uint32]Global
}

// NewRegistry allocates the registry's id, registers it in table, sends
// wl_display.get_registry, and wires the display's error/delete_id handlers.
// conn is used for all outgoing requests (get_registry, bind, sync).
func NewRegistry(conn Sender, table *Table, onDisplayError func(objectID, code uint32, message string)) *Registry {
	r := &Registry{
		conn:    conn,
		table:   table,
		globals: make(map[uint32]Global),
	}

	table.Register(DisplayID, "wl_display", 1, func(msg wire.Message) {
		switch msg.Opcode {
		case evDisplayError:
			onDisplayError(msg.Args[0].Uint, msg.Args[1].Uint, msg.Args[2].String)
		case evDisplayDeleteID:
			table.Free(msg.Args[0].Uint)
		}
	})

	r.ID = table.Allocate()
	table.Register(r.ID, "wl_registry", 1, r.dispatch)

	conn.Send(wire.Message{
		ObjectID: DisplayID,
		Opcode:   opDisplayGetRegistry,
		Args:     []wire.Arg{wire.ArgNewID(r.ID)},
	})

	return r
}

func (r *Registry) dispatch(msg wire.Message) {
	switch msg.Opcode {
	case evRegistryGlobal:
		g := Global{
			Name:      msg.Args[0].Uint,
			Interface: msg.Args[1].String,
			Version:   msg.Args[2].Uint,
		}
		r.mu.Lock()
		r.globals[g.Name] = g
		r.mu.Unlock()
	case evRegistryGlobalRemove:
		r.mu.Lock()
		delete(r.globals, msg.Args[0].Uint)
		r.mu.Unlock()
	}
}

// Globals returns a snapshot of the currently advertised globals.
func (r *Registry) Globals() []Global {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Global, 0, len(r.globals))
	for _, g := range r.globals {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Find returns a global advertising iface, if any. When several globals
// advertise iface, which of them is returned is not defined.
func (r *Registry) Find(iface string) (Global, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.globals {
		if g.Interface == iface {
			return g, true
		}
	}
	return Global{}, false
}

// Bind requests a new object id bound to global g, negotiating
// min(server_version, clientMaxVersion), and registers the new id's
// dispatcher in the table. It returns the bound object id.
func (r *Registry) Bind(g Global, clientMaxVersion uint32, dispatch Dispatcher) uint32 {
	version := g.Version
	if clientMaxVersion < version {
		version = clientMaxVersion
	}

	id := r.table.Allocate()
	r.table.Register(id, g.Interface, version, dispatch)

	r.conn.Send(wire.Message{
		ObjectID: r.ID,
		Opcode:   opRegistryBind,
		Args: []wire.Arg{
			wire.ArgUint(g.Name),
			wire.ArgString(g.Interface),
			wire.ArgUint(version),
			wire.ArgNewID(id),
		},
	})

	return id
}

// RequireGlobal binds iface if advertised, else returns a MissingGlobalError
// per §3/§7: "any missing required global is fatal with a clear report of
// which interface was absent."
func (r *Registry) RequireGlobal(iface string, clientMaxVersion uint32, dispatch Dispatcher) (uint32, error) {
	g, ok := r.Find(iface)
	if !ok {
		return 0, &errs.MissingGlobalError{Interface: iface}
	}
	return r.Bind(g, clientMaxVersion, dispatch), nil
}

// Sync sends wl_display.sync and drives pump's RunOnce itself until the
// compositor's wl_callback.done event arrives, implementing the round-trip
// used to know the registry's first full pass of globals has been received.
// It must drive the connection itself rather than block on a channel
// nothing else signals: at this point in startup nothing else is pumping
// the socket, so the sync request would never even reach the wire.
func (r *Registry) Sync(pump Pumper) error {
	done := make(chan struct{})
	cbID := r.table.Allocate()
	r.table.Register(cbID, "wl_callback", 1, func(msg wire.Message) {
		if msg.Opcode == evCallbackDone {
			r.table.Destroy(cbID)
			close(done)
		}
	})

	r.conn.Send(wire.Message{
		ObjectID: DisplayID,
		Opcode:   opDisplaySync,
		Args:     []wire.Arg{wire.ArgNewID(cbID)},
	})

	for {
		select {
		case <-done:
			return nil
		default:
		}
		live, err := pump.RunOnce(syncPollInterval)
		if err != nil {
			return err
		}
		if !live {
			return &errs.TransportError{Err: errors.New("connection closed while waiting for sync")}
		}
	}
}
