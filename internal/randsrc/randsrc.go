// Copyright (c) 2024-2026 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package randsrc adapts the module's supported randomness backends to the
// plain io.Reader a conjecture.Runner expects for WithRandSource. The
// default, crypto/rand.Reader, is fine for occasional use, but a property
// run that draws a fresh buffer for every one of several hundred examples
// benefits from a pooled, non-blocking DRBG instead of hitting the OS CSPRNG
// on every attempt.
package randsrc

import (
	"io"

	ctrdrbg "github.com/sixafter/aes-ctr-drbg"
	prng "github.com/sixafter/prng-chacha"
)

// CTRDRBG returns an io.Reader backed by a pooled AES-CTR DRBG seeded from
// the OS CSPRNG, reseeding itself under the hood per opts.
func CTRDRBG(opts ...ctrdrbg.Option) (io.Reader, error) {
	return ctrdrbg.NewReader(opts...)
}

// ChaCha returns an io.Reader backed by a pooled ChaCha20 PRNG.
func ChaCha() (io.Reader, error) {
	return prng.NewReader()
}
