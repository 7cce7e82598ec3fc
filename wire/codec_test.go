package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeScenarioA(t *testing.T) {
	// wl_surface.attach(object=7, int=0, int=0) on object id 5, opcode 1.
	msg := Message{
		ObjectID: 5,
		Opcode:   1,
		Args:     []Arg{ArgObject(7), ArgInt(0), ArgInt(0)},
	}

	buf, fds, err := Encode(msg)
	require.NoError(t, err)
	assert.Empty(t, fds)
	assert.Len(t, buf, 20)
	assert.Equal(t, 0, len(buf)%4)

	schema := []Kind{KindObject, KindInt, KindInt}
	var queue FDQueue
	decoded, n, err := Decode(buf, schema, &queue)
	require.NoError(t, err)
	assert.Equal(t, 20, n)
	assert.Equal(t, uint32(5), decoded.ObjectID)
	assert.Equal(t, uint16(1), decoded.Opcode)
	require.Len(t, decoded.Args, 3)
	assert.Equal(t, uint32(7), decoded.Args[0].Uint)
	assert.Equal(t, int32(0), decoded.Args[1].Int)
	assert.Equal(t, int32(0), decoded.Args[2].Int)
	assert.Empty(t, decoded.FDs)
}

func TestRoundTripAllKinds(t *testing.T) {
	msg := Message{
		ObjectID: 42,
		Opcode:   3,
		Args: []Arg{
			ArgInt(-7),
			ArgUint(99),
			ArgFixed(FixedFromFloat64(3.5)),
			ArgString("hello"),
			ArgArray([]byte{1, 2, 3, 4, 5}),
			ArgObject(9),
			ArgNewID(10),
			ArgFD(123),
		},
	}

	buf, fds, err := Encode(msg)
	require.NoError(t, err)
	assert.Equal(t, []int{123}, fds)
	assert.Equal(t, 0, len(buf)%4)

	schema := []Kind{KindInt, KindUint, KindFixed, KindString, KindArray, KindObject, KindNewID, KindFD}
	var queue FDQueue
	queue.Push(123)

	decoded, n, err := Decode(buf, schema, &queue)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Equal(t, int32(-7), decoded.Args[0].Int)
	assert.Equal(t, uint32(99), decoded.Args[1].Uint)
	assert.InDelta(t, 3.5, decoded.Args[2].Fixed.ToFloat64(), 0.01)
	assert.Equal(t, "hello", decoded.Args[3].String)
	assert.Equal(t, []byte{1, 2, 3, 4, 5}, decoded.Args[4].Array)
	assert.Equal(t, uint32(9), decoded.Args[5].Uint)
	assert.Equal(t, uint32(10), decoded.Args[6].Uint)
	assert.Equal(t, []int{123}, decoded.FDs)
	assert.Equal(t, 0, queue.Len())
}

func TestDecodeNeedMore(t *testing.T) {
	var queue FDQueue
	_, _, err := Decode([]byte{1, 2, 3}, nil, &queue)
	assert.ErrorIs(t, err, ErrNeedMore)

	// Header says length 16 but only 12 bytes are present.
	buf, _, err := Encode(Message{ObjectID: 1, Opcode: 0, Args: []Arg{ArgUint(0), ArgUint(0)}})
	require.NoError(t, err)
	_, _, err = Decode(buf[:12], []Kind{KindUint, KindUint}, &queue)
	assert.ErrorIs(t, err, ErrNeedMore)
}

func TestDecodeMalformedLength(t *testing.T) {
	var queue FDQueue
	buf := make([]byte, 8)
	buf[6] = 6 // length 6, not a multiple of 4 and smaller than header
	_, _, err := Decode(buf, nil, &queue)
	assert.ErrorIs(t, err, ErrMalformedFrame)
}

func TestEmptyStringVsNullString(t *testing.T) {
	msg := Message{ObjectID: 1, Opcode: 0, Args: []Arg{ArgString(""), ArgNullString()}}
	buf, _, err := Encode(msg)
	require.NoError(t, err)

	var queue FDQueue
	decoded, _, err := Decode(buf, []Kind{KindString, KindString}, &queue)
	require.NoError(t, err)
	assert.Equal(t, "", decoded.Args[0].String)
	assert.False(t, decoded.Args[0].Null)
	assert.True(t, decoded.Args[1].Null)
}

func TestFixedConversion(t *testing.T) {
	f := FixedFromFloat64(-12.25)
	assert.InDelta(t, -12.25, f.ToFloat64(), 0.001)
}
