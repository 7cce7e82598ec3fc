// Package decor owns the shared-memory buffer and layer-shell surface used
// to present a workspace's decoration (currently: the tabbed layout's tab
// bar, per §4.7's "a decoration buffer of size (area.w x tab_height) is
// requested for the workspace"). Filling the pixel buffer with content is
// delegated to a Painter collaborator; decor itself only owns the fd, the
// mmap, and the wl_shm_pool/wl_buffer/wl_surface damage-attach-commit
// sequence (§9 "the core requires a pixel buffer filled by an external
// graphics collaborator ... the core owns the shared-memory file
// descriptor, pool mapping, and damage/attach/commit sequence").
//
// Grounded on the teacher's wayland.go (createTmpfile, openFile,
// drawFrame): the mmap'd tmpfile-backed pool and single-buffer
// attach/commit pattern carries over almost unchanged, generalized from a
// fixed source PNG to an arbitrary per-workspace render.
package decor

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/friedelschoen/riverwm/objects"
	"github.com/friedelschoen/riverwm/wire"
)

const (
	opCompositorCreateSurface = 0

	opShmCreatePool = 0

	opShmPoolCreateBuffer = 0
	opShmPoolDestroy      = 1

	opBufferDestroy = 0
	evBufferRelease = 0

	opSurfaceDestroy = 0
	opSurfaceAttach  = 1
	opSurfaceDamage  = 2
	opSurfaceCommit  = 6

	opLayerShellGetLayerSurface = 0

	opLayerSurfaceSetSize          = 0
	opLayerSurfaceSetAnchor        = 1
	opLayerSurfaceSetExclusiveZone = 2
	opLayerSurfaceAckConfigure     = 6
	opLayerSurfaceDestroy          = 7
	evLayerSurfaceConfigure        = 0
	evLayerSurfaceClosed           = 1

	shmFormatArgb8888 = 0

	anchorTop  uint32 = 1
	anchorLeft uint32 = 4

	layerTop uint32 = 2
)

// Painter fills an ARGB8888 pixel buffer of the given stride/width/height.
// It is the "external graphics collaborator" the core forwards a raw
// buffer to; decor never interprets pixel content itself.
type Painter interface {
	Paint(buf []byte, stride, w, h int)
}

// sender is the outgoing-request capability a Decoration needs; satisfied
// by *conn.Conn without an import, the same duck-typed pattern used by
// objects.Sender and wm.windowSender.
type sender interface {
	Send(msg wire.Message, fds ...int)
}

// Decoration owns one layer-shell surface and its shm-backed buffer,
// sized to a workspace's tab bar (or any other single-buffer overlay).
type Decoration struct {
	conn  sender
	table *objects.Table

	shmID          uint32
	surfaceID      uint32
	layerSurfaceID uint32

	painter Painter
	width   int
	height  int
	stride  int

	file *os.File
	mem  []byte
	pool uint32
	buf  uint32

	configured bool
}

// New creates the wl_surface + zwlr_layer_surface_v1 pair anchored to the
// top-left of output, ready to be sized and painted once the compositor's
// configure event arrives. shmID is the bound wl_shm global's object id,
// the actual wire-protocol target of the create_pool request Repaint
// issues for every buffer it allocates.
func New(conn sender, table *objects.Table, compositorID, shmID, layerShellID, outputID uint32, appID string, painter Painter) *Decoration {
	d := &Decoration{conn: conn, table: table, shmID: shmID, painter: painter}

	d.surfaceID = table.Allocate()
	table.Register(d.surfaceID, "wl_surface", 5, func(wire.Message) {})
	conn.Send(wire.Message{
		ObjectID: compositorID,
		Opcode:   opCompositorCreateSurface,
		Args:     []wire.Arg{wire.ArgNewID(d.surfaceID)},
	})

	d.layerSurfaceID = table.Allocate()
	table.Register(d.layerSurfaceID, "zwlr_layer_surface_v1", 4, d.dispatchLayerSurface)
	conn.Send(wire.Message{
		ObjectID: layerShellID,
		Opcode:   opLayerShellGetLayerSurface,
		Args: []wire.Arg{
			wire.ArgNewID(d.layerSurfaceID),
			wire.ArgObject(d.surfaceID),
			wire.ArgObject(outputID),
			wire.ArgUint(layerTop),
			wire.ArgString(appID),
		},
	})

	conn.Send(wire.Message{
		ObjectID: d.layerSurfaceID,
		Opcode:   opLayerSurfaceSetAnchor,
		Args:     []wire.Arg{wire.ArgUint(anchorTop | anchorLeft)},
	})
	conn.Send(wire.Message{
		ObjectID: d.layerSurfaceID,
		Opcode:   opLayerSurfaceSetExclusiveZone,
		Args:     []wire.Arg{wire.ArgInt(-1)},
	})
	conn.Send(wire.Message{ObjectID: d.surfaceID, Opcode: opSurfaceCommit})

	return d
}

func (d *Decoration) dispatchLayerSurface(msg wire.Message) {
	switch msg.Opcode {
	case evLayerSurfaceConfigure:
		serial := msg.Args[0].Uint
		width := int(msg.Args[1].Uint)
		height := int(msg.Args[2].Uint)
		d.conn.Send(wire.Message{
			ObjectID: d.layerSurfaceID,
			Opcode:   opLayerSurfaceAckConfigure,
			Args:     []wire.Arg{wire.ArgUint(serial)},
		})
		d.configured = true
		if width > 0 && height > 0 {
			d.Resize(width, height)
		}
		d.Repaint()
	case evLayerSurfaceClosed:
		d.Destroy()
	}
}

// Resize requests the surface take on w x h and reallocates the backing
// shm pool to match (stride = w * 4, ARGB8888).
func (d *Decoration) Resize(w, h int) {
	d.releaseBuffer()

	d.width, d.height, d.stride = w, h, w*4
	conn := d.conn
	conn.Send(wire.Message{
		ObjectID: d.layerSurfaceID,
		Opcode:   opLayerSurfaceSetSize,
		Args:     []wire.Arg{wire.ArgUint(uint32(w)), wire.ArgUint(uint32(h))},
	})

	size := d.stride * d.height
	if size <= 0 {
		return
	}

	file, err := createTmpfile(int64(size))
	if err != nil {
		return
	}
	d.file = file

	mem, err := unix.Mmap(int(file.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return
	}
	d.mem = mem
}

// Repaint fills the current buffer via the configured Painter and issues
// the create_buffer/attach/damage/commit request sequence.
func (d *Decoration) Repaint() {
	if !d.configured || d.mem == nil {
		return
	}
	d.painter.Paint(d.mem, d.stride, d.width, d.height)

	poolID := d.table.Allocate()
	d.table.Register(poolID, "wl_shm_pool", 1, func(wire.Message) {})
	d.pool = poolID

	bufID := d.table.Allocate()
	d.table.Register(bufID, "wl_buffer", 1, func(msg wire.Message) {
		if msg.Opcode == evBufferRelease {
			d.conn.Send(wire.Message{ObjectID: bufID, Opcode: opBufferDestroy})
			d.table.Destroy(bufID)
		}
	})
	d.buf = bufID

	d.conn.Send(wire.Message{
		ObjectID: d.shmID,
		Opcode:   opShmCreatePool,
		Args:     []wire.Arg{wire.ArgNewID(poolID), wire.ArgFD(int(d.file.Fd())), wire.ArgInt(int32(len(d.mem)))},
	})
	d.conn.Send(wire.Message{
		ObjectID: poolID,
		Opcode:   opShmPoolCreateBuffer,
		Args: []wire.Arg{
			wire.ArgNewID(bufID),
			wire.ArgInt(0),
			wire.ArgInt(int32(d.width)),
			wire.ArgInt(int32(d.height)),
			wire.ArgInt(int32(d.stride)),
			wire.ArgUint(shmFormatArgb8888),
		},
	})
	d.conn.Send(wire.Message{ObjectID: poolID, Opcode: opShmPoolDestroy})

	d.conn.Send(wire.Message{
		ObjectID: d.surfaceID,
		Opcode:   opSurfaceAttach,
		Args:     []wire.Arg{wire.ArgObject(bufID), wire.ArgInt(0), wire.ArgInt(0)},
	})
	d.conn.Send(wire.Message{
		ObjectID: d.surfaceID,
		Opcode:   opSurfaceDamage,
		Args:     []wire.Arg{wire.ArgInt(0), wire.ArgInt(0), wire.ArgInt(int32(d.width)), wire.ArgInt(int32(d.height))},
	})
	d.conn.Send(wire.Message{ObjectID: d.surfaceID, Opcode: opSurfaceCommit})
}

func (d *Decoration) releaseBuffer() {
	if d.mem != nil {
		unix.Munmap(d.mem)
		d.mem = nil
	}
	if d.file != nil {
		d.file.Close()
		d.file = nil
	}
}

// Destroy releases the buffer memory and destroys the layer surface and
// wl_surface objects; idempotent, matching the §4.4 closed-event
// idempotency the rest of the protocol surface relies on.
func (d *Decoration) Destroy() {
	d.releaseBuffer()
	if d.layerSurfaceID != 0 {
		d.conn.Send(wire.Message{ObjectID: d.layerSurfaceID, Opcode: opLayerSurfaceDestroy})
		d.table.Destroy(d.layerSurfaceID)
		d.layerSurfaceID = 0
	}
	if d.surfaceID != 0 {
		d.conn.Send(wire.Message{ObjectID: d.surfaceID, Opcode: opSurfaceDestroy})
		d.table.Destroy(d.surfaceID)
		d.surfaceID = 0
	}
}

func createTmpfile(size int64) (*os.File, error) {
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		return nil, errors.New("XDG_RUNTIME_DIR is not defined in env")
	}
	file, err := os.CreateTemp(dir, "riverwm-shm-*")
	if err != nil {
		return nil, fmt.Errorf("create shm tmpfile: %w", err)
	}
	if err := file.Truncate(size); err != nil {
		file.Close()
		return nil, fmt.Errorf("truncate shm tmpfile: %w", err)
	}
	if err := os.Remove(file.Name()); err != nil {
		file.Close()
		return nil, fmt.Errorf("unlink shm tmpfile: %w", err)
	}
	return file, nil
}
