// Copyright (c) 2024-2026 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package conjecture

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestContext(data ...byte) *Context {
	buf := NewBuffer(len(data) + 32)
	copy(buf.Data(), data)
	buf.SetFill(len(data))
	return NewContext(buf, nil)
}

func TestDrawBytesRejectsPastFill(t *testing.T) {
	is := assert.New(t)

	ctx := newTestContext(1, 2)

	dst := make([]byte, 4)
	DrawBytes(ctx, 4, dst)

	is.Equal(DataRejected, ctx.Status())
	is.Equal([]byte{0, 0, 0, 0}, dst)
}

func TestDrawBytesAdvancesIndex(t *testing.T) {
	is := assert.New(t)

	ctx := newTestContext(1, 2, 3, 4)
	dst := make([]byte, 2)
	DrawBytes(ctx, 2, dst)

	is.Equal([]byte{1, 2}, dst)
	is.Equal(2, ctx.Index())
	is.Equal(NoResult, ctx.Status())
}

func TestDrawUint8ReadsOneByte(t *testing.T) {
	is := assert.New(t)

	ctx := newTestContext(0x42)
	is.Equal(uint8(0x42), DrawUint8(ctx))
}

func TestDrawBoolReadsLowBit(t *testing.T) {
	is := assert.New(t)

	is.True(DrawBool(newTestContext(0x01)))
	is.False(DrawBool(newTestContext(0x02)))
}

func TestDrawUint64ConsumesNineBytesAndHonorsLength(t *testing.T) {
	is := assert.New(t)

	// length byte low 3 bits = 1 -> read 2 bytes big-endian from the 8
	// that follow.
	ctx := newTestContext(0x01, 0xAB, 0xCD, 0, 0, 0, 0, 0, 0)
	is.Equal(uint64(0xABCD), DrawUint64(ctx))
	is.Equal(9, ctx.Index())
}

func TestDrawSmallUint64StopsOnFirstNonMaxByte(t *testing.T) {
	is := assert.New(t)

	ctx := newTestContext(0xff, 0xff, 0x02)
	is.Equal(uint64(0xff+0xff+0x02), DrawSmallUint64(ctx))
}

func TestSaturateProducesAllOnesMask(t *testing.T) {
	is := assert.New(t)

	is.Equal(uint64(0), saturate(0))
	is.Equal(uint64(0x0f), saturate(0x0a))
	is.Equal(uint64(0xff), saturate(0xff))
	is.Equal(uint64(0xffff), saturate(0x8001))
}

func TestDrawUint64UnderStaysWithinBound(t *testing.T) {
	is := assert.New(t)

	is.Equal(uint64(0), DrawUint64Under(newTestContext(), 0))

	for i := 0; i < 64; i++ {
		ctx := newTestContext(byte(i), byte(i * 7), byte(i * 13))
		v := DrawUint64Under(ctx, 9)
		is.LessOrEqual(v, uint64(9))
	}
}

func TestMinusLowerHandlesIntMin(t *testing.T) {
	is := assert.New(t)

	is.Equal(uint64(1)<<63, minusLower(math.MinInt64))
	is.Equal(uint64(5), minusLower(-5))
	is.Equal(uint64(0), minusLower(0))
}

func TestDrawInt64BetweenDegenerateCases(t *testing.T) {
	is := assert.New(t)

	ctx := newTestContext()
	is.Equal(int64(5), DrawInt64Between(ctx, 5, 5))

	ctx = newTestContext()
	v := DrawInt64Between(ctx, 3, 2)
	is.Equal(DataRejected, ctx.Status())
	is.Equal(int64(3), v)
}

func TestDrawInt64BetweenStaysInRange(t *testing.T) {
	is := assert.New(t)

	ranges := [][2]int64{
		{-10, 10},
		{0, 100},
		{math.MinInt64, math.MinInt64 + 5},
		{math.MaxInt64 - 5, math.MaxInt64},
	}

	for _, r := range ranges {
		for seed := byte(0); seed < 32; seed++ {
			ctx := newTestContext(seed, seed*3, seed*7, seed*11, seed*13, seed*17, seed*19, seed*23, seed*29)
			v := DrawInt64Between(ctx, r[0], r[1])
			if ctx.Status() == DataRejected {
				continue
			}
			is.GreaterOrEqual(v, r[0])
			is.LessOrEqual(v, r[1])
		}
	}
}

func TestDrawFractionalDoubleStaysInUnitInterval(t *testing.T) {
	is := assert.New(t)

	for seed := byte(0); seed < 32; seed++ {
		ctx := newTestContext(seed, seed*3, seed*7, seed*11, seed*13, seed*17, seed*19, seed*23, seed*29)
		f := DrawFractionalDouble(ctx)
		if ctx.Status() == DataRejected {
			continue
		}
		is.GreaterOrEqual(f, 0.0)
		is.LessOrEqual(f, 1.0)
	}
}

func TestDrawDoubleNastyBranchUsesTable(t *testing.T) {
	is := assert.New(t)

	// branch = 255 - drawn byte; drawing 255 gives branch=0 -> nastyDoubles[0] = 0.0
	ctx := newTestContext(0xff)
	is.Equal(0.0, DrawDouble(ctx))
}

func TestDrawStringStopsAtZeroByte(t *testing.T) {
	is := assert.New(t)

	// maxLength byte must be < 0xff to terminate DrawSmallUint64 immediately.
	ctx := newTestContext(5, 'h', 'i', 0, 'x', 'x')
	s := DrawString(ctx)
	is.Equal([]byte{'h', 'i', 0}, s)
}

func TestDrawStringAppendsTerminatorWhenExhausted(t *testing.T) {
	is := assert.New(t)

	ctx := newTestContext(2, 'a', 'b')
	s := DrawString(ctx)
	is.Equal([]byte{'a', 'b', 0}, s)
}
