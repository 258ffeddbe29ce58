// Copyright (c) 2024-2026 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package conjecture

import "math"

// DrawBytes copies n bytes from the context's buffer into dst, which must
// have at least n bytes of space. If the read would run past the buffer's
// fill, the example is rejected, the first n bytes of dst are zeroed, and
// the cursor is left unchanged.
func DrawBytes(ctx *Context, n int, dst []byte) {
	if n+ctx.index > ctx.buffer.fill {
		for i := 0; i < n && i < len(dst); i++ {
			dst[i] = 0
		}
		Reject(ctx)
		return
	}
	copy(dst, ctx.buffer.data[ctx.index:ctx.index+n])
	ctx.index += n
}

// DrawUint8 draws a single byte.
func DrawUint8(ctx *Context) uint8 {
	var b [1]byte
	DrawBytes(ctx, 1, b[:])
	return b[0]
}

// DrawBool draws the low bit of a single byte.
func DrawBool(ctx *Context) bool {
	return DrawUint8(ctx)&1 == 1
}

// DrawUint64 always consumes 9 bytes: the first byte's low 3 bits select a
// length in [0,7], then 8 bytes are read and the result is the big-endian
// value of the first length+1 of them. The fixed 9-byte consumption keeps
// shrinking aligned regardless of the drawn length.
func DrawUint64(ctx *Context) uint64 {
	length := DrawUint8(ctx) & 7
	var buf [8]byte
	DrawBytes(ctx, 8, buf[:])
	var result uint64
	for i := 0; i <= int(length); i++ {
		result = (result << 8) + uint64(buf[i])
	}
	return result
}

// DrawSmallUint64 repeatedly reads bytes and sums them, stopping at the
// first byte strictly less than 0xff. This biases heavily toward zero so
// shrinking naturally finds small counts.
func DrawSmallUint64(ctx *Context) uint64 {
	var result uint64
	for {
		b := DrawUint8(ctx)
		result += uint64(b)
		if b < 0xff {
			return result
		}
	}
}

// saturate rounds x up to the next value of the form 2^n - 1 that is >= x,
// by OR-ing in every lower bit once any higher bit is set. It is the
// smallest bitmask that can represent any value up to x.
func saturate(x uint64) uint64 {
	x |= x >> 1
	x |= x >> 2
	x |= x >> 4
	x |= x >> 8
	x |= x >> 16
	x |= x >> 32
	return x
}

// DrawUint64Under draws x such that 0 <= x <= max via rejection sampling:
// mask each candidate to the smallest 2^n-1 at least max, then resample
// until the masked candidate fits. If max is 0 no bytes are consumed.
func DrawUint64Under(ctx *Context, max uint64) uint64 {
	if max == 0 {
		return 0
	}
	mask := saturate(max)
	for {
		probe := mask & DrawUint64(ctx)
		if probe <= max {
			return probe
		}
	}
}

// DrawInt64 bit-casts the result of DrawUint64.
func DrawInt64(ctx *Context) int64 {
	return int64(DrawUint64(ctx))
}

// minusLower computes the unsigned two's-complement negation of lower,
// i.e. the value that satisfies minusLower + uint64(lower) == 0 (mod 2^64),
// without relying on an intermediate signed negation that overflows when
// lower == math.MinInt64. This is the explicit construction the original
// C source's Open Question calls for: conceptually "(uint64) -(int64)
// lower" computed so the math.MinInt64 boundary is never routed through an
// undefined signed negation.
func minusLower(lower int64) uint64 {
	if lower == math.MinInt64 {
		return uint64(1) << 63
	}
	return uint64(-lower)
}

// DrawInt64Between draws x such that lo <= x <= hi. Degenerate cases short
// circuit: lo == hi consumes no bytes and returns lo; the full int64 range
// defers to DrawInt64. Otherwise the unsigned gap hi-lo is computed via
// modular arithmetic (avoiding overflow at math.MinInt64), a candidate is
// drawn under that gap, and the result is reconstructed with the correct
// sign.
func DrawInt64Between(ctx *Context, lo, hi int64) int64 {
	if lo > hi {
		Reject(ctx)
		return lo
	}
	if lo == hi {
		return lo
	}
	if lo == math.MinInt64 && hi == math.MaxInt64 {
		return DrawInt64(ctx)
	}

	ml := minusLower(lo)

	var gap uint64
	if hi < 0 {
		gap = uint64(hi - lo)
	} else {
		gap = uint64(hi) + ml
	}

	probe := DrawUint64Under(ctx, gap)
	if probe >= ml {
		return int64(probe - ml)
	}
	return -int64(ml - probe)
}

// DrawFractionalDouble draws a double in the closed interval [0, 1]. It
// draws a denominator a; if zero, returns 0; otherwise draws a numerator b
// in [0, a] with DrawUint64Under and returns b/a.
func DrawFractionalDouble(ctx *Context) float64 {
	a := DrawUint64(ctx)
	if a == 0 {
		return 0.0
	}
	b := DrawUint64Under(ctx, a)
	return float64(b) / float64(a)
}

// nastyDoubles are the 16 shrink-disfavored double values: constants that
// tend to trigger edge-case bugs (boundary floats, subnormals, NaN,
// infinity) but that a minimal failing example should avoid unless the
// nastiness is load-bearing for the failure.
var nastyDoubles = [16]float64{
	0.0,
	0.5,
	1.0 / 3,
	10e6,
	10e-6,
	1.175494351e-38,
	2.2250738585072014e-308,
	1.7976931348623157e+308,
	3.402823466e+38,
	9007199254740992,
	1 - 10e-6,
	1 + 10e-6,
	1.192092896e-07,
	2.2204460492503131e-016,
	math.Inf(1),
	math.NaN(),
}

// DrawDouble draws an arbitrary double, possibly a nasty constant (NaN,
// infinity, subnormal boundary). The "branch" byte driving the nasty-vs-tame
// decision is read inverted (255 - drawn byte) so that shrinking, which
// drives bytes toward zero, pushes the branch value up and out of the nasty
// range: the minimal failing example is a tame float unless the nastiness
// is essential to the failure.
func DrawDouble(ctx *Context) float64 {
	branch := 255 - DrawUint8(ctx)
	if branch < 32 {
		base := nastyDoubles[branch&15]
		if branch&16 != 0 {
			base = -base
		}
		return base
	}
	integral := DrawInt64(ctx)
	fractional := DrawFractionalDouble(ctx)
	return float64(integral) + fractional
}

// DrawString draws a null-terminated byte slice: a max length via
// DrawSmallUint64, then bytes one at a time, stopping early at the first
// zero byte. The returned slice always contains a trailing terminator (the
// zero byte itself when terminated early, else an appended zero), so
// callers always observe a well-formed terminated string.
func DrawString(ctx *Context) []byte {
	maxLength := int(DrawSmallUint64(ctx))
	data := make([]byte, 0, maxLength+1)
	for i := 0; i < maxLength; i++ {
		c := DrawUint8(ctx)
		data = append(data, c)
		if c == 0 {
			return data
		}
	}
	return append(data, 0)
}
