// Copyright (c) 2024-2026 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package conjecture

import (
	"context"
	"fmt"
	"io"
)

// Runner is the top-level driver: it generates random buffers until either
// the accepted-example quota is met or a failing buffer is found, shrinks
// any failing buffer, and replays the minimized result unsuppressed and
// in-process.
type Runner struct {
	maxExamples    int
	maxBufferSize  int
	suppressOutput bool
	forker         Forker
	randSource     io.Reader
	out            io.Writer

	comms     *Comms
	primary   *Buffer
	secondary *Buffer

	calls        int
	accepted     int
	shrinks      int
	extraTries   int
	foundFailure bool
}

// NewRunner builds a Runner with defaults (MaxExamples=200,
// MaxBufferSize=65536, SuppressOutput=true, the platform's reexec Forker
// where available) overridden by opts, and allocates its buffers and Comms
// region.
func NewRunner(opts ...Option) (*Runner, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if !cfg.forkerSet {
		cfg.forker = defaultForker(cfg.suppressOutput)
	}

	r := &Runner{
		maxExamples:    cfg.maxExamples,
		maxBufferSize:  cfg.maxBufferSize,
		suppressOutput: cfg.suppressOutput,
		forker:         cfg.forker,
		randSource:     cfg.randSource,
		out:            cfg.out,
		primary:        NewBuffer(cfg.maxBufferSize),
		secondary:      NewBuffer(cfg.maxBufferSize),
	}

	if r.forker != nil {
		comms, err := newSharedComms()
		if err != nil {
			return nil, err
		}
		r.comms = comms
	} else {
		r.comms = NewLocalComms()
	}

	return r, nil
}

// Close releases the runner's Comms resources. It is a no-op when the
// runner never needed shared memory (in-process mode).
func (r *Runner) Close() error {
	closeSharedComms(r.comms)
	return nil
}

// RunTest is the primary entry point: it repeatedly runs tc under name
// until a failing buffer is found and minimized, then replays the minimal
// buffer once, unsuppressed and in-process, to confirm the failure
// reproduces. It returns ErrCounterexampleFound if it does (the engine
// worked: the runner's diagnostic output above the error already shows the
// minimized buffer and the trace the replay printed), ErrFlaky if it
// doesn't, ErrTooFewValidExamples if generation could not find enough
// accepted examples, or nil if no failure was found at all.
func (r *Runner) RunTest(ctx context.Context, name string, tc TestCase, data any) error {
	buf, err := r.RunTestForBuffer(ctx, name, tc, data)
	if err != nil {
		return err
	}
	if buf == nil {
		return nil
	}

	resolved := tc
	if resolved == nil {
		var ok bool
		resolved, ok = lookupTestCase(name)
		if !ok {
			return ErrUnregisteredTestCase
		}
	}

	replayComms := NewLocalComms()
	attempt := inProcessExecute(buf, resolved, data, replayComms, false)
	if attempt.failing {
		return ErrCounterexampleFound
	}

	printFlaky(r.out)
	return ErrFlaky
}

// RunTestForBuffer runs tc under name until a failing buffer is found and
// minimized, and returns that buffer without replaying it. It returns a
// nil buffer (and nil error) when no failure was found within the example
// budget.
func (r *Runner) RunTestForBuffer(ctx context.Context, name string, tc TestCase, data any) (*Buffer, error) {
	if tc != nil {
		RegisterTestCase(name, tc)
	} else if _, ok := lookupTestCase(name); !ok {
		return nil, ErrUnregisteredTestCase
	}

	if err := r.generate(ctx, name, tc, data); err != nil {
		return nil, err
	}

	if !r.foundFailure {
		if r.accepted*10 < r.calls {
			printTooFewValidExamples(r.out)
			return nil, ErrTooFewValidExamples
		}
		printNoFailure(r.out, r.calls, r.accepted)
		return nil, nil
	}

	printFoundFailure(r.out, r.calls, r.accepted)
	printInitialFailingBuffer(r.out, r.primary)

	if err := r.shrink(ctx, name, tc, data); err != nil {
		return nil, err
	}

	printShrinkSummary(r.out, r.shrinks, r.extraTries)
	printFinalBuffer(r.out, r.primary)

	result := NewBuffer(r.primary.capacity)
	_ = Copy(result, r.primary)
	return result, nil
}

// generate is the generation phase (spec §4.4): refill secondary with
// random bytes, submit it, and double the refill size whenever an attempt
// rejects, until either a failure is found or the example budget runs out.
func (r *Runner) generate(ctx context.Context, name string, tc TestCase, data any) error {
	r.calls, r.accepted, r.shrinks, r.extraTries = 0, 0, 0, 0
	r.foundFailure = false

	fill := initialFill
	if fill > r.maxBufferSize {
		fill = r.maxBufferSize
	}

	for r.accepted < r.maxExamples && r.calls < 5*r.maxExamples {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := io.ReadFull(r.randSource, r.secondary.data[:fill])
		if err != nil {
			return fmt.Errorf("%w: %v", ErrRandSourceUnavailable, err)
		}
		r.secondary.SetFill(n)

		committed, rejected, err := r.checkAndUpdate(name, tc, data)
		if err != nil {
			return err
		}
		if committed {
			break
		}
		if rejected {
			fill *= 2
			if fill > r.maxBufferSize {
				fill = r.maxBufferSize
			}
		}
	}
	return nil
}

// checkAndUpdate is the runner's single attempt-submission path (spec
// §4.5), shared by generation and shrinking: it accounts for the call and
// acceptance counters, prunes candidates during shrinking that cannot
// possibly be an improvement, executes otherwise, and commits primary :=
// secondary on a genuine failure.
func (r *Runner) checkAndUpdate(name string, tc TestCase, data any) (committed, rejected bool, err error) {
	r.calls++
	r.accepted++

	if r.foundFailure && !ShrinkLess(r.secondary, r.primary) {
		return false, false, nil
	}

	var attempt execAttempt
	if r.forker != nil {
		attempt, err = isolatedExecute(r.forker, r.secondary, name, r.comms)
		if err != nil {
			return false, false, err
		}
	} else {
		resolved := tc
		if resolved == nil {
			var ok bool
			resolved, ok = lookupTestCase(name)
			if !ok {
				return false, false, ErrUnregisteredTestCase
			}
		}
		attempt = inProcessExecute(r.secondary, resolved, data, r.comms, r.suppressOutput)
	}

	if attempt.failing {
		r.primary, r.secondary = r.secondary, r.primary
		r.shrinks++
		r.foundFailure = true
		return true, false, nil
	}

	if attempt.rejected {
		r.accepted--
		return false, true, nil
	}

	return false, false, nil
}

// shrink is the shrinking phase (spec §4.6): repeat full passes over
// shrinkCandidate's stage enumeration, committing the first candidate in
// each pass that still fails, until a full pass commits nothing.
func (r *Runner) shrink(ctx context.Context, name string, tc TestCase, data any) error {
	changed := true
	for changed {
		changed = false
		var stage uint64
		for shrinkCandidate(r.secondary, r.primary, stage) {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			stage++
			r.extraTries++

			committed, _, err := r.checkAndUpdate(name, tc, data)
			if err != nil {
				return err
			}
			if committed {
				printShrankBuffer(r.out, r.primary)
				changed = true
				break
			}
		}
	}
	return nil
}
