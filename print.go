// Copyright (c) 2024-2026 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package conjecture

import (
	"fmt"
	"io"
)

// The functions below are the engine's fixed diagnostic vocabulary (spec
// §6's "Diagnostic output format"): one line per phase transition, written
// to a Runner's configured output. Buffer values print via Buffer.String,
// which is what produces the "[b0|b1|...|bn]:n" format these lines embed.

func printFoundFailure(out io.Writer, calls, accepted int) {
	fmt.Fprintf(out, "Found failing test case after %d examples (%d accepted)\n", calls, accepted)
}

func printInitialFailingBuffer(out io.Writer, buf *Buffer) {
	fmt.Fprintf(out, "Initial failing buffer: %s\n", buf)
}

func printShrankBuffer(out io.Writer, buf *Buffer) {
	fmt.Fprintf(out, "Shrank failing buffer: %s\n", buf)
}

func printShrinkSummary(out io.Writer, shrinks, extraTries int) {
	fmt.Fprintf(out, "Shrank example %d times in %d extra tries\n", shrinks, extraTries)
}

func printFinalBuffer(out io.Writer, buf *Buffer) {
	fmt.Fprintf(out, "Final buffer: %s\n", buf)
}

func printNoFailure(out io.Writer, calls, accepted int) {
	fmt.Fprintf(out, "No failing test case after %d examples (%d accepted)\n", calls, accepted)
}

func printTooFewValidExamples(out io.Writer) {
	fmt.Fprintln(out, "Failing test due to too few valid examples.")
}

func printFlaky(out io.Writer) {
	fmt.Fprintln(out, "Flaky test! That was supposed to crash but it didn't.")
}
