// Package errs implements the error taxonomy of §7: a small set of
// sentinel-wrapped error types, each carrying the process exit code its
// category maps to when fatal.
package errs

import "fmt"

// TransportError wraps a socket I/O failure. Fatal: exit code 2.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("transport: %v", e.Err) }
func (e *TransportError) Unwrap() error  { return e.Err }
func (e *TransportError) ExitCode() int  { return 2 }

// ProtocolError wraps a malformed frame, unknown opcode on a known object,
// or argument overrun. Fatal: exit code 3.
type ProtocolError struct {
	ObjectID uint32
	Opcode   uint16
	Frame    []byte // first bytes of the offending frame, for diagnostics
	Err      error
}

func (e *ProtocolError) Error() string {
	n := len(e.Frame)
	if n > 32 {
		n = 32
	}
	return fmt.Sprintf("protocol: object %d opcode %d: %v (frame %x)", e.ObjectID, e.Opcode, e.Err, e.Frame[:n])
}
func (e *ProtocolError) Unwrap() error { return e.Err }
func (e *ProtocolError) ExitCode() int { return 3 }

// ServerError wraps a wl_display.error event. Fatal: exit code 1 for every
// server error; Code is not mapped to any other exit code.
type ServerError struct {
	ObjectID uint32
	Code     uint32
	Message  string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server: object %d code %d: %s", e.ObjectID, e.Code, e.Message)
}
func (e *ServerError) ExitCode() int { return 1 }

// MissingGlobalError names a required interface absent after the initial
// registry sync. Fatal: exit code 1.
type MissingGlobalError struct {
	Interface string
}

func (e *MissingGlobalError) Error() string {
	return fmt.Sprintf("missing required global: %s", e.Interface)
}
func (e *MissingGlobalError) ExitCode() int { return 1 }

// StateError references an unknown object id in an incoming event. Non-fatal
// by default: racing destructor events are expected, so callers log and
// ignore it rather than propagate it as fatal.
type StateError struct {
	ObjectID uint32
}

func (e *StateError) Error() string {
	return fmt.Sprintf("state: event referenced unknown object %d", e.ObjectID)
}

// UserError is a binding action that referenced a window destroyed before
// the action ran. Non-fatal: silently dropped by the caller.
type UserError struct {
	Action string
}

func (e *UserError) Error() string {
	return fmt.Sprintf("user: action %q referenced a destroyed window", e.Action)
}

// ExitCoder is implemented by every fatal error category.
type ExitCoder interface {
	error
	ExitCode() int
}
