// Package conn owns the stream socket to the compositor: ancillary-data
// reads/writes carrying file descriptors, buffering of partial messages
// across reads, and the three primitives the upper layers use — Send,
// drain via RunOnce's dispatch, and the blocking poll-with-timeout itself.
package conn

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"

	"github.com/friedelschoen/riverwm/errs"
	"github.com/friedelschoen/riverwm/objects"
	"github.com/friedelschoen/riverwm/wire"
)

// EventSchemaLookup resolves an interface+opcode event to its argument
// layout; satisfied by proto.Table.
type EventSchemaLookup interface {
	EventSchema(iface string, opcode uint16) ([]wire.Kind, bool)
}

// StateErrorHandler is invoked when an event names an object id the table
// has no entry for — §7 StateError, non-fatal by default.
type StateErrorHandler func(err *errs.StateError)

const maxPendingFDs = 16

type pendingWrite struct {
	data []byte
	fds  []int
}

// Conn is the single connection to the compositor's unix socket.
type Conn struct {
	uconn   *net.UnixConn
	table   *objects.Table
	schema  EventSchemaLookup
	onState StateErrorHandler

	outgoing []pendingWrite

	inBuf []byte
	fds   wire.FDQueue
}

// SocketPath resolves the compositor socket location per §6:
// $XDG_RUNTIME_DIR/$WAYLAND_DISPLAY, falling back to wayland-0, failing
// clearly if XDG_RUNTIME_DIR is unset.
func SocketPath() (string, error) {
	display := os.Getenv("WAYLAND_DISPLAY")
	if display == "" {
		display = "wayland-0"
	}
	if filepath.IsAbs(display) {
		return display, nil
	}
	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir == "" {
		return "", &errs.TransportError{Err: errors.New("XDG_RUNTIME_DIR is not set and WAYLAND_DISPLAY is not absolute")}
	}
	return filepath.Join(runtimeDir, display), nil
}

// Connect resolves the compositor socket, establishes the stream
// connection, and registers the well-known display entry (id 1) isn't done
// here — that's objects.NewRegistry's job, since it owns the display's
// error/delete_id dispatcher. table and schema are used to decode and route
// every subsequent incoming event; onState is called for StateErrors.
func Connect(table *objects.Table, schema EventSchemaLookup, onState StateErrorHandler) (*Conn, error) {
	path, err := SocketPath()
	if err != nil {
		return nil, err
	}

	addr, err := net.ResolveUnixAddr("unix", path)
	if err != nil {
		return nil, &errs.TransportError{Err: err}
	}
	uconn, err := net.DialUnix("unix", nil, addr)
	if err != nil {
		return nil, &errs.TransportError{Err: fmt.Errorf("connect %s: %w", path, err)}
	}

	return &Conn{
		uconn:   uconn,
		table:   table,
		schema:  schema,
		onState: onState,
	}, nil
}

// Close closes the underlying socket.
func (c *Conn) Close() error {
	return c.uconn.Close()
}

// Send marshals msg and enqueues it (and its attached fds, if any) for the
// next flush. Per §4.2, fds are written on the same syscall boundary as the
// message bytes that first reference them, so each Send call keeps its own
// pendingWrite entry rather than being coalesced with others.
func (c *Conn) Send(msg wire.Message, fds ...int) {
	data, encodedFDs, err := wire.Encode(msg)
	if err != nil {
		// Encode errors here are programmer errors in a wrapper (schema
		// mismatch), not a wire-level failure; fail loudly rather than
		// silently drop a request.
		panic(fmt.Sprintf("conn: encode object %d opcode %d: %v", msg.ObjectID, msg.Opcode, err))
	}
	all := append(append([]int{}, encodedFDs...), fds...)
	c.outgoing = append(c.outgoing, pendingWrite{data: data, fds: all})
}

// flush drains as much of the outgoing queue as the socket accepts without
// blocking; entries left unsent (EAGAIN-equivalent deadline exceeded) stay
// queued for the next RunOnce per §4.2's "send buffer overflow is not
// tolerated — implementation must wait for drain."
func (c *Conn) flush() error {
	for len(c.outgoing) > 0 {
		w := c.outgoing[0]

		if err := c.uconn.SetWriteDeadline(time.Now().Add(10 * time.Millisecond)); err != nil {
			return &errs.TransportError{Err: err}
		}

		var werr error
		if len(w.fds) > 0 {
			_, _, werr = c.uconn.WriteMsgUnix(w.data, unix.UnixRights(w.fds...), nil)
		} else {
			_, werr = c.uconn.Write(w.data)
		}

		if werr != nil {
			if ne, ok := werr.(net.Error); ok && ne.Timeout() {
				return nil // retry this entry on the next poll
			}
			return &errs.TransportError{Err: werr}
		}

		c.outgoing = c.outgoing[1:]
	}
	return nil
}

// RunOnce polls the socket for up to timeout: on read readiness it reads
// both bytes and ancillary descriptors, decodes and dispatches as many
// complete messages as possible, then drains the outgoing buffer. It
// returns true while the connection is live, false on clean close by the
// peer.
func (c *Conn) RunOnce(timeout time.Duration) (bool, error) {
	readBuf := make([]byte, 4096)
	oobBuf := make([]byte, unix.CmsgSpace(maxPendingFDs*4))

	if err := c.uconn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return false, &errs.TransportError{Err: err}
	}

	n, oobn, _, _, err := c.uconn.ReadMsgUnix(readBuf, oobBuf)
	switch {
	case err == nil:
		c.inBuf = append(c.inBuf, readBuf[:n]...)
		if oobn > 0 {
			cmsgs, perr := unix.ParseSocketControlMessage(oobBuf[:oobn])
			if perr != nil {
				return false, &errs.TransportError{Err: perr}
			}
			for _, cmsg := range cmsgs {
				rights, rerr := unix.ParseUnixRights(&cmsg)
				if rerr != nil {
					return false, &errs.TransportError{Err: rerr}
				}
				c.fds.Push(rights...)
			}
		}
		if n == 0 && oobn == 0 {
			return false, nil // clean close
		}
	case isTimeout(err):
		// no data ready within the poll interval; fall through to flush.
	case errors.Is(err, os.ErrClosed):
		return false, nil
	default:
		return false, &errs.TransportError{Err: err}
	}

	if err := c.dispatchReady(); err != nil {
		return false, err
	}

	if err := c.flush(); err != nil {
		return false, err
	}

	return true, nil
}

func isTimeout(err error) bool {
	ne, ok := err.(net.Error)
	return ok && ne.Timeout()
}

func (c *Conn) dispatchReady() error {
	for {
		objectID, opcode, length, ok := wire.PeekHeader(c.inBuf)
		if !ok {
			return nil
		}
		if length < 8 || length%4 != 0 {
			return &errs.ProtocolError{ObjectID: objectID, Opcode: opcode, Frame: c.inBuf, Err: wire.ErrMalformedFrame}
		}
		if len(c.inBuf) < length {
			return nil
		}

		entry, found := c.table.Lookup(objectID)
		if !found {
			c.inBuf = c.inBuf[length:]
			if c.onState != nil {
				c.onState(&errs.StateError{ObjectID: objectID})
			}
			continue
		}

		schema, ok := c.schema.EventSchema(entry.Interface, opcode)
		if !ok {
			return &errs.ProtocolError{ObjectID: objectID, Opcode: opcode, Frame: c.inBuf, Err: fmt.Errorf("unknown opcode")}
		}

		msg, consumed, err := wire.Decode(c.inBuf, schema, &c.fds)
		if err != nil {
			if errors.Is(err, wire.ErrNeedMore) {
				return nil
			}
			return &errs.ProtocolError{ObjectID: objectID, Opcode: opcode, Frame: c.inBuf, Err: err}
		}

		c.inBuf = c.inBuf[consumed:]
		entry.Dispatch(msg)
	}
}
