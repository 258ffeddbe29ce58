// Copyright (c) 2024-2026 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package conjecture

import (
	"crypto/rand"
	"io"
	"os"
)

const (
	// defaultMaxExamples is how many accepted examples the runner tries
	// before declaring a test passing.
	defaultMaxExamples = 200

	// defaultMaxBufferSize bounds the engine's internal memory usage: a
	// Context's Buffer has at most this many bytes, and draws past the
	// end of it reject the example.
	defaultMaxBufferSize = 64 * 1024

	// initialFill is the starting size of the random refill each
	// generation attempt draws, before any rejection-driven doubling.
	initialFill = 64
)

// Option configures a Runner using the standard functional-options shape.
type Option func(*runnerConfig)

// runnerConfig holds the configurable options for a Runner before defaults
// are resolved into the runtime fields.
type runnerConfig struct {
	maxExamples    int
	maxBufferSize  int
	suppressOutput bool
	forker         Forker
	forkerSet      bool
	randSource     io.Reader
	out            io.Writer
}

// WithMaxExamples overrides how many accepted examples are generated before
// a test without a discovered failure is declared passing. Default 200.
func WithMaxExamples(n int) Option {
	return func(c *runnerConfig) { c.maxExamples = n }
}

// WithMaxBufferSize overrides the capacity of the runner's two internal
// buffers. Default 65536 (64 KiB).
func WithMaxBufferSize(n int) Option {
	return func(c *runnerConfig) { c.maxBufferSize = n }
}

// WithSuppressOutput controls whether attempts (other than the final
// replay) have their stdout/stderr muted. Default true.
func WithSuppressOutput(suppress bool) Option {
	return func(c *runnerConfig) { c.suppressOutput = suppress }
}

// WithForker overrides the isolation primitive. Pass nil to force the
// in-process execution path even on platforms where reexec isolation is
// available. Defaults to the platform's reexec-based Forker where one
// exists, nil otherwise.
func WithForker(f Forker) Option {
	return func(c *runnerConfig) {
		c.forker = f
		c.forkerSet = true
	}
}

// WithRandSource overrides the randomness source used to refill the
// generation buffer each attempt. Default crypto/rand.Reader. Swap in
// github.com/sixafter/aes-ctr-drbg's or github.com/sixafter/prng-chacha's
// Reader (see internal/randsrc) for a pooled, high-throughput DRBG instead
// of going to the OS CSPRNG on every attempt.
func WithRandSource(r io.Reader) Option {
	return func(c *runnerConfig) { c.randSource = r }
}

// WithOutput overrides where diagnostic lines (per-attempt and shrink
// updates, summaries) are written. Default os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(c *runnerConfig) { c.out = w }
}

func defaultConfig() *runnerConfig {
	return &runnerConfig{
		maxExamples:    defaultMaxExamples,
		maxBufferSize:  defaultMaxBufferSize,
		suppressOutput: true,
		randSource:     rand.Reader,
		out:            os.Stdout,
	}
}
