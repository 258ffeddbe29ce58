// Copyright (c) 2024-2026 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package conjecture

// bufferDeleteRange removes buffer.data[start:end], shifting the tail left
// and shrinking fill by the gap. If end reaches or passes fill, this
// degenerates to a truncation.
func bufferDeleteRange(buffer *Buffer, start, end int) {
	if end >= buffer.fill {
		buffer.fill = start
		return
	}
	gap := end - start
	copy(buffer.data[start:], buffer.data[end:buffer.fill])
	buffer.fill -= gap
}

// shrinkCandidate writes the stage'th shrink candidate for src into dst and
// reports whether one exists. stage enumerates, in order, across six
// strategies: prefix truncation, range deletion, range zeroing, byte-wise
// reduction, adjacent-pair reordering, and carry shifts between adjacent
// bytes. This is the "richer" shrinker the engine's Open Questions call
// for — of the two equivalent shrinker formulations in the original
// engine, this one was chosen because it minimizes faster and produces
// tidier counterexamples (fewer, more targeted candidates) than the
// simpler byte-wise-reduction-plus-big-integer-decrement alternative.
//
// Every candidate this function can produce is, by construction, strictly
// shrink-smaller than src: callers may assume ShrinkLess(dst, src) holds
// whenever shrinkCandidate returns true.
func shrinkCandidate(dst, src *Buffer, stage uint64) bool {
	_ = Copy(dst, src)

	// 1: prefix truncation to length i, for i in [0, fill-1). Length
	// fill-1 is produced by stage 2 deleting the range [fill-1, fill).
	for i := 0; i+1 < src.fill; i++ {
		if stage == 0 {
			dst.fill = i
			return true
		}
		stage--
	}

	// 2: deletion of a contiguous range [i, j).
	for i := 0; i < src.fill; i++ {
		for j := src.fill; j > i; j-- {
			if stage == 0 {
				bufferDeleteRange(dst, i, j)
				return true
			}
			stage--
		}
	}

	// 3: zeroing a contiguous range that is not already all zero. Ranges
	// that are already all zero don't consume a distinct stage index —
	// they're skipped in place so the budget isn't spent on no-ops.
	for i := 0; i < src.fill; i++ {
		for j := src.fill; j > i; j-- {
			if stage == 0 {
				anyNonZero := false
				for k := i; k < j; k++ {
					if dst.data[k] > 0 {
						anyNonZero = true
						dst.data[k] = 0
					}
				}
				if anyNonZero {
					return true
				}
				stage++
			}
			stage--
		}
	}

	// 4: byte-wise reduction, ascending candidate values below src.data[i].
	for i := 0; i < src.fill; i++ {
		for c := byte(0); c < src.data[i]; c++ {
			if stage == 0 {
				dst.data[i] = c
				return true
			}
			stage--
		}
	}

	// 5: adjacent out-of-order swap.
	for i := 0; i+1 < src.fill; i++ {
		if dst.data[i] > dst.data[i+1] {
			if stage == 0 {
				dst.data[i], dst.data[i+1] = dst.data[i+1], dst.data[i]
				return true
			}
			stage--
		}
	}

	// 6: carry shift between adjacent bytes, two variants per pair.
	for i := 0; i+1 < src.fill; i++ {
		if dst.data[i] > 0 && dst.data[i+1] < 0xff {
			if stage == 0 {
				dst.data[i]--
				dst.data[i+1]++
				return true
			}
			stage--
			if stage == 0 {
				dst.data[i]--
				dst.data[i+1] = 0xff
				return true
			}
			stage--
		}
	}

	return false
}
