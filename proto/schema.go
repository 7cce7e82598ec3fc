// Package proto holds the static, by-name-and-opcode descriptions of the
// Wayland interfaces this client binds: the core globals plus the three
// river extensions and layer-shell. Each request/event is an ordered list
// of argument kinds, used by the connection to decode event bodies and
// by the object wrappers (package wm) to marshal requests.
package proto

import "github.com/friedelschoen/riverwm/wire"

// Message describes one request or event's name and argument layout.
type Message struct {
	Name string
	Args []wire.Kind
}

// Interface describes one protocol interface's requests (indexed by
// opcode, client→server) and events (indexed by opcode, server→client).
type Interface struct {
	Name     string
	Version  uint32
	Requests []Message
	Events   []Message
}

// Table is the set of interfaces this client knows about, keyed by name.
type Table map[string]Interface

// Schemas is the complete set of interfaces bound by this client.
var Schemas = Table{}

func register(iface Interface) {
	Schemas[iface.Name] = iface
}

// RequestSchema returns the argument kinds for iface's request opcode.
func (t Table) RequestSchema(iface string, opcode uint16) ([]wire.Kind, bool) {
	i, ok := t[iface]
	if !ok || int(opcode) >= len(i.Requests) {
		return nil, false
	}
	return i.Requests[opcode].Args, true
}

// EventSchema returns the argument kinds for iface's event opcode.
func (t Table) EventSchema(iface string, opcode uint16) ([]wire.Kind, bool) {
	i, ok := t[iface]
	if !ok || int(opcode) >= len(i.Events) {
		return nil, false
	}
	return i.Events[opcode].Args, true
}
