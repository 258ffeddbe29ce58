// Copyright (c) 2024-2026 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package conjecture

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferSetFillClamps(t *testing.T) {
	is := assert.New(t)

	b := NewBuffer(4)
	b.SetFill(-1)
	is.Equal(0, b.Fill())

	b.SetFill(10)
	is.Equal(4, b.Fill())

	b.SetFill(2)
	is.Equal(2, b.Fill())
}

func TestCopyRequiresMatchingCapacity(t *testing.T) {
	is := assert.New(t)

	a := NewBuffer(4)
	b := NewBuffer(8)
	is.ErrorIs(Copy(a, b), ErrBufferCapacityMismatch)
}

func TestCopyCopiesFillAndBytes(t *testing.T) {
	is := assert.New(t)

	src := NewBuffer(4)
	copy(src.Data(), []byte{1, 2, 3})
	src.SetFill(3)

	dst := NewBuffer(4)
	is.NoError(Copy(dst, src))
	is.Equal(3, dst.Fill())
	is.Equal([]byte{1, 2, 3}, dst.Bytes())
}

func TestBufferStringFormat(t *testing.T) {
	is := assert.New(t)

	b := NewBuffer(4)
	copy(b.Data(), []byte{0x0a, 0xff})
	b.SetFill(2)

	is.Equal("[0a|ff]:2", b.String())
}

func TestShrinkLessOrdersByFillThenLexicographically(t *testing.T) {
	is := assert.New(t)

	short := NewBuffer(4)
	short.SetFill(1)

	long := NewBuffer(4)
	long.SetFill(2)

	is.True(ShrinkLess(short, long), "shorter buffer should be shrink-less regardless of contents")
	is.False(ShrinkLess(long, short))

	a := NewBuffer(4)
	copy(a.Data(), []byte{1, 5})
	a.SetFill(2)

	b := NewBuffer(4)
	copy(b.Data(), []byte{1, 9})
	b.SetFill(2)

	is.True(ShrinkLess(a, b))
	is.False(ShrinkLess(b, a))
	is.False(ShrinkLess(a, a))
}

func TestLocalCommsFlagRoundTrips(t *testing.T) {
	is := assert.New(t)

	comms := NewLocalComms()
	is.False(comms.Flag.Get())
	comms.Flag.Set(true)
	is.True(comms.Flag.Get())
	comms.Flag.Set(false)
	is.False(comms.Flag.Get())
}

func TestBufferReleaseIsANoOp(t *testing.T) {
	is := assert.New(t)

	b := NewBuffer(4)
	copy(b.Data(), []byte{1, 2})
	b.SetFill(2)

	b.Release()

	is.Equal(2, b.Fill())
	is.Equal([]byte{1, 2}, b.Bytes())
}

func TestContextAccessors(t *testing.T) {
	is := assert.New(t)

	buf := NewBuffer(8)
	ctx := NewContext(buf, nil)
	is.Equal(NoResult, ctx.Status())
	is.Equal(0, ctx.Index())
	is.Same(buf, ctx.Buffer())
}
