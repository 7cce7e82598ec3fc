// Package objects implements the client-side object table: the map from a
// live Wayland object id to its interface identity and event dispatcher,
// plus monotonic id allocation and the registry bootstrap handshake.
package objects

import (
	"fmt"
	"sync"

	"github.com/friedelschoen/riverwm/wire"
)

// DisplayID is the well-known object id of wl_display; it is never
// allocated through Table.Allocate.
const DisplayID uint32 = 1

// Dispatcher receives a decoded event addressed to its object.
type Dispatcher func(msg wire.Message)

// Entry is one live object's bookkeeping.
type Entry struct {
	ID        uint32
	Interface string
	Version   uint32
	Dispatch  Dispatcher
}

// Table maps object ids to entries. Ids are allocated monotonically from 2
// (id 1 is always the display); an id freed by delete_id is only handed
// out again on a subsequent Allocate call, never re-used mid-batch.
type Table struct {
	mu      sync.Mutex
	nextID  uint32
	free    []uint32
	entries map[uint32]*Entry
}

// New returns an empty table whose allocation starts at 2; the display entry
// at id 1 is registered by NewRegistry.
func New() *Table {
	t := &Table{
		nextID:  2,
		entries: make(map[uint32]*Entry),
	}
	return t
}

// Allocate reserves the next client-side object id, preferring a
// previously freed id over growing the monotonic counter.
func (t *Table) Allocate() uint32 {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.free) > 0 {
		id := t.free[0]
		t.free = t.free[1:]
		return id
	}
	id := t.nextID
	t.nextID++
	return id
}

// Register records iface/version/dispatcher for an already-allocated id.
func (t *Table) Register(id uint32, iface string, version uint32, dispatch Dispatcher) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[id] = &Entry{ID: id, Interface: iface, Version: version, Dispatch: dispatch}
}

// Lookup returns the entry for id, if any.
func (t *Table) Lookup(id uint32) (*Entry, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[id]
	return e, ok
}

// Destroy removes id's entry immediately, ahead of the server's delete_id
// acknowledgement — §4.4: "both sends the message and removes the local
// entry immediately (the subsequent delete_id is idempotent)". The id is
// not returned to the free pool here; that only happens on Free, once the
// server actually confirms via delete_id.
func (t *Table) Destroy(id uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, id)
}

// Free handles a delete_id event: the entry (if still present) is removed
// and the id becomes eligible for reuse on the next Allocate.
func (t *Table) Free(id uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, id)
	t.free = append(t.free, id)
}

// Dispatch looks up id and invokes its dispatcher with msg. A message for an
// unknown object id is a StateError per §7: non-fatal, logged and ignored
// by the caller (this method just reports absence).
func (t *Table) Dispatch(id uint32, msg wire.Message) error {
	e, ok := t.Lookup(id)
	if !ok {
		return fmt.Errorf("objects: no such object %d", id)
	}
	e.Dispatch(msg)
	return nil
}
