package decor

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/friedelschoen/riverwm/objects"
	"github.com/friedelschoen/riverwm/wire"
)

type recordingSender struct {
	sent []wire.Message
}

func (r *recordingSender) Send(msg wire.Message, fds ...int) {
	r.sent = append(r.sent, msg)
}

type countingPainter struct {
	calls int
	lastW int
	lastH int
}

func (p *countingPainter) Paint(buf []byte, stride, w, h int) {
	p.calls++
	p.lastW, p.lastH = w, h
}

func TestNewEmitsCreateSurfaceAndLayerSurfaceRequests(t *testing.T) {
	sender := &recordingSender{}
	table := objects.New()
	painter := &countingPainter{}

	d := New(sender, table, 100, 101, 102, 103, "riverwm-tab", painter)
	require.NotZero(t, d.surfaceID)
	require.NotZero(t, d.layerSurfaceID)
	assert.Equal(t, uint32(101), d.shmID)

	require.GreaterOrEqual(t, len(sender.sent), 4)
	assert.Equal(t, uint32(100), sender.sent[0].ObjectID)
	assert.Equal(t, uint16(opCompositorCreateSurface), sender.sent[0].Opcode)
	assert.Equal(t, uint32(102), sender.sent[1].ObjectID)
	assert.Equal(t, uint16(opLayerShellGetLayerSurface), sender.sent[1].Opcode)
}

func TestConfigureTriggersResizeAndRepaint(t *testing.T) {
	sender := &recordingSender{}
	table := objects.New()
	painter := &countingPainter{}
	d := New(sender, table, 100, 101, 102, 103, "riverwm-tab", painter)

	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	d.dispatchLayerSurface(wire.Message{
		Opcode: evLayerSurfaceConfigure,
		Args:   []wire.Arg{wire.ArgUint(1), wire.ArgUint(800), wire.ArgUint(24)},
	})

	assert.True(t, d.configured)
	assert.Equal(t, 800, d.width)
	assert.Equal(t, 24, d.height)
	assert.Equal(t, 1, painter.calls)
	assert.Equal(t, 800, painter.lastW)
	assert.Equal(t, 24, painter.lastH)
}

// TestRepaintAddressesCreatePoolToShmGlobal covers the wl_shm.create_pool
// request: it must target the bound wl_shm global's object id, not the
// brand-new pool id being created.
func TestRepaintAddressesCreatePoolToShmGlobal(t *testing.T) {
	sender := &recordingSender{}
	table := objects.New()
	painter := &countingPainter{}
	d := New(sender, table, 100, 101, 102, 103, "riverwm-tab", painter)

	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())
	d.dispatchLayerSurface(wire.Message{
		Opcode: evLayerSurfaceConfigure,
		Args:   []wire.Arg{wire.ArgUint(1), wire.ArgUint(800), wire.ArgUint(24)},
	})

	var createPool *wire.Message
	for i := range sender.sent {
		if sender.sent[i].Opcode == opShmCreatePool {
			createPool = &sender.sent[i]
		}
	}
	require.NotNil(t, createPool)
	assert.Equal(t, uint32(101), createPool.ObjectID)
	assert.NotEqual(t, createPool.ObjectID, createPool.Args[0].Uint) // pool's own new_id differs from its target
}

func TestDestroyIsIdempotent(t *testing.T) {
	sender := &recordingSender{}
	table := objects.New()
	painter := &countingPainter{}
	d := New(sender, table, 100, 101, 102, 103, "riverwm-tab", painter)

	d.Destroy()
	d.Destroy() // must not panic or double-send

	assert.Zero(t, d.surfaceID)
	assert.Zero(t, d.layerSurfaceID)
}

func TestTextPainterPaintWithoutTabsStillSwizzles(t *testing.T) {
	p := &TextPainter{Border: color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}}
	buf := make([]byte, 4*10*10)
	for i := range buf {
		buf[i] = byte(i)
	}
	before := append([]byte(nil), buf...)
	p.Paint(buf, 40, 10, 10)
	assert.NotEqual(t, before, buf)
	// The border fill is R,G,B,A in image.RGBA; after the swizzle it is B,G,R,A.
	assert.Equal(t, []byte{0x30, 0x20, 0x10, 0xff}, buf[0:4])
}

func TestTextPainterPaintWithTabsDoesNotPanic(t *testing.T) {
	p := &TextPainter{Tabs: []Tab{
		{Title: "alpha", Focused: true},
		{Title: "beta", Urgent: true},
	}}
	buf := make([]byte, 4*100*20)
	p.Paint(buf, 400, 100, 20)
}
