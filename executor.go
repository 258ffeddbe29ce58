// Copyright (c) 2024-2026 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package conjecture

import (
	"os"
)

// conjectureExit is the exit code a child process uses to explicitly
// signal a test failure via Fail. It is reserved: 0 means success or
// rejection, 17 means "the test routine called Fail".
const conjectureExit = 17

// TestCase is a user-supplied test routine. It consumes bytes from ctx to
// produce typed values and asserts properties about them, calling Reject,
// Fail, or Assume (or simply returning) to report its outcome. data is an
// opaque pointer passed through unexamined.
type TestCase func(ctx *Context, data any)

// Reject declares the current example structurally invalid. Under
// isolation this terminates the child process with a success exit status
// after signalling the shared Comms flag; in-process it records
// DataRejected on the context and returns, mirroring the original engine's
// behavior of not forcibly unwinding a test routine that is not running
// under a subprocess.
func Reject(ctx *Context) {
	ctx.status = DataRejected
	if ctx.comms != nil {
		ctx.comms.Flag.Set(true)
	}
	if ctx.isolated {
		os.Exit(0)
	}
}

// Fail declares the current example a failure. Under isolation this exits
// the child process with the reserved conjectureExit code; in-process it
// records TestFailed on the context for the caller to observe once the
// routine returns.
func Fail(ctx *Context) {
	ctx.status = TestFailed
	if ctx.isolated {
		os.Exit(conjectureExit)
	}
}

// Assume rejects the current example unless condition holds. It consumes
// no bytes.
func Assume(ctx *Context, condition bool) {
	if !condition {
		Reject(ctx)
	}
}

// execAttempt is a single attempt result, enough for the runner to drive
// both generation and shrinking without re-deriving outcome classification
// at each call site.
type execAttempt struct {
	failing  bool
	rejected bool
}

// inProcessExecute runs tc directly in the current process, muting stdout
// and stderr when suppress is requested. It is the executor path for
// platforms without the isolation forker, and for the final, unsuppressed
// replay that must observe the real failure (which itself disables
// suppression and isolation together).
func inProcessExecute(buf *Buffer, tc TestCase, data any, comms *Comms, suppress bool) execAttempt {
	if comms != nil {
		comms.Flag.Set(false)
	}

	var restore func()
	if suppress {
		restore = muteStdOutErr()
	}

	ctx := NewContext(buf, comms)
	func() {
		defer func() {
			if recover() != nil {
				ctx.status = TestFailed
			}
		}()
		tc(ctx, data)
	}()

	if restore != nil {
		restore()
	}

	rejected := ctx.status == DataRejected
	if comms != nil && comms.Flag.Get() {
		rejected = true
	}
	return execAttempt{failing: ctx.status == TestFailed, rejected: rejected}
}

// muteStdOutErr points the os.Stdout and os.Stderr variables at the null
// device and returns a function that restores the originals. It is the
// in-process analogue of the isolated executor's redirect-before-fork step.
// File descriptors 1 and 2 are not redirected, so output written to them
// directly rather than through os.Stdout/os.Stderr is not muted.
func muteStdOutErr() func() {
	origOut, origErr := os.Stdout, os.Stderr
	devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		return func() {}
	}
	os.Stdout = devNull
	os.Stderr = devNull
	return func() {
		os.Stdout = origOut
		os.Stderr = origErr
		_ = devNull.Close()
	}
}

// Child is a spawned, isolated attempt process. Wait blocks until it exits
// and reports whether it exited normally and, if so, with what code —
// exactly the information is_failing_test_case needs from waitpid/WIFEXITED
// /WEXITSTATUS in the original engine.
type Child interface {
	Wait() (exited bool, code int, err error)
}

// Forker spawns one isolated attempt process for caseName, streaming buf's
// valid bytes to it and granting it access to comms. The default
// implementation (unix build tag) re-execs the current binary; callers may
// supply their own for testing or for platforms with a cheaper isolation
// primitive.
type Forker interface {
	Fork(buf *Buffer, caseName string, comms *Comms) (Child, error)
}

// isolatedExecute spawns one attempt via forker and interprets its exit
// status. The attempt is failing iff the child did not exit normally or
// exited with a non-zero code; a child that exits 0 after setting comms'
// flag is a reject, not a failure — the two are distinguished by reading
// the shared flag after reap, never by exit code alone.
func isolatedExecute(forker Forker, buf *Buffer, caseName string, comms *Comms) (execAttempt, error) {
	comms.Flag.Set(false)

	child, err := forker.Fork(buf, caseName, comms)
	if err != nil {
		return execAttempt{}, ErrForkFailed
	}

	exited, code, err := child.Wait()
	if err != nil {
		return execAttempt{}, err
	}

	failing := !exited || code != 0
	rejected := comms.Flag.Get()
	return execAttempt{failing: failing, rejected: rejected}, nil
}
