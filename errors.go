// Copyright (c) 2024-2026 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package conjecture

import "errors"

var (
	// ErrTooFewValidExamples is returned when fewer than 10% of attempted
	// calls were accepted before the example budget ran out.
	ErrTooFewValidExamples = errors.New("conjecture: too few valid examples")

	// ErrFlaky is returned when the minimized failing buffer no longer
	// reproduces the failure on final, unsuppressed replay.
	ErrFlaky = errors.New("conjecture: flaky test, failure did not reproduce")

	// ErrForkFailed is returned when the configured Forker could not spawn
	// a child process.
	ErrForkFailed = errors.New("conjecture: unable to fork child process")

	// ErrCommsUnavailable is returned when the shared rejection channel
	// could not be created.
	ErrCommsUnavailable = errors.New("conjecture: unable to create comms region")

	// ErrRandSourceUnavailable is returned when the configured randomness
	// source could not be read from.
	ErrRandSourceUnavailable = errors.New("conjecture: unable to read randomness source")

	// ErrBufferCapacityMismatch is returned by Copy when the two buffers
	// do not share the same capacity.
	ErrBufferCapacityMismatch = errors.New("conjecture: buffer capacity mismatch")

	// ErrUnregisteredTestCase is returned by Runner.RunTest and
	// Runner.RunTestForBuffer when tc is nil and no test case is registered
	// under the given name. The reexec worker prints it and exits 1 when
	// asked for a name that was never registered.
	ErrUnregisteredTestCase = errors.New("conjecture: unregistered test case")

	// ErrCounterexampleFound is returned by RunTest when the minimized
	// failing buffer reproduces the failure on final, unsuppressed
	// replay — the engine did its job and found a real counterexample.
	// Callers that want the original engine's process-exits-non-zero
	// behavior should treat this (along with ErrFlaky and
	// ErrTooFewValidExamples) as cause to exit non-zero.
	ErrCounterexampleFound = errors.New("conjecture: counterexample reproduced")
)
