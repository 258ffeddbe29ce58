//go:build unix

// Copyright (c) 2024-2026 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package conjecture

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"golang.org/x/sys/unix"
)

// commsRegionFD is the well-known file descriptor number the reexec'd
// worker finds its shared Comms mapping on. It is the single entry of
// cmd.ExtraFiles, which os/exec always places starting at fd 3 (after the
// inherited stdin/stdout/stderr).
const commsRegionFD = 3

// workerModeEnv marks a process as the re-exec'd isolated worker, the
// idiomatic Go stand-in for inspecting getpid()/fork() return values: Go's
// runtime cannot safely raw-fork a multi-threaded process (only the calling
// goroutine's state would survive into the child image), so isolation is
// implemented the way moby/runc implement sandboxed re-exec, by spawning a
// fresh copy of the current binary and flagging its role through the
// environment.
const workerModeEnv = "CONJECTURE_WORKER_MODE"

// workerCaseFlag is the flag the worker binary uses to find which
// registered TestCase to run.
const workerCaseFlag = "-case="

// mmapFlag is a CommsFlag backed by a one-page shared memory mapping,
// created over a memfd so the region is fd-scoped (no System V shmid to
// leak across a crashed parent) and handed to the child via ExtraFiles.
type mmapFlag struct {
	region []byte
}

func (f *mmapFlag) Get() bool { return f.region[0] != 0 }

func (f *mmapFlag) Set(v bool) {
	if v {
		f.region[0] = 1
	} else {
		f.region[0] = 0
	}
}

// newSharedComms creates a memfd-backed shared page, maps it into this
// process, and returns a Comms carrying both the mapping and the open file
// a Forker can hand to a child via ExtraFiles.
func newSharedComms() (*Comms, error) {
	fd, err := unix.MemfdCreate("conjecture-comms", 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCommsUnavailable, err)
	}
	file := os.NewFile(uintptr(fd), "conjecture-comms")

	pageSize := os.Getpagesize()
	if err := file.Truncate(int64(pageSize)); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("%w: %v", ErrCommsUnavailable, err)
	}

	region, err := unix.Mmap(fd, 0, pageSize, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("%w: %v", ErrCommsUnavailable, err)
	}

	return &Comms{Flag: &mmapFlag{region: region}, file: file}, nil
}

// mapInheritedComms is the worker-side half of newSharedComms: it maps the
// fd the parent placed at commsRegionFD.
func mapInheritedComms() (*Comms, error) {
	pageSize := os.Getpagesize()
	region, err := unix.Mmap(commsRegionFD, 0, pageSize, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCommsUnavailable, err)
	}
	return &Comms{Flag: &mmapFlag{region: region}}, nil
}

// closeSharedComms releases the parent-side resources of a shared Comms
// region. It is safe to call on an in-process (non-shared) Comms.
func closeSharedComms(c *Comms) {
	if c == nil || c.file == nil {
		return
	}
	if f, ok := c.Flag.(*mmapFlag); ok {
		_ = unix.Munmap(f.region)
	}
	_ = c.file.Close()
}

// reexecForker is the default unix Forker: it spawns os.Args[0] again with
// workerModeEnv set, streams the candidate buffer's bytes over the child's
// stdin, and hands the child the shared Comms region as an inherited file
// descriptor.
type reexecForker struct {
	suppressOutput bool
}

// NewReexecForker returns the default isolation Forker, which re-execs the
// current binary rather than calling a raw fork() (unsafe for a
// multi-threaded Go process; see the workerModeEnv doc comment).
func NewReexecForker(suppressOutput bool) Forker {
	return &reexecForker{suppressOutput: suppressOutput}
}

// defaultForker is the unix platform's default Runner.Forker.
func defaultForker(suppressOutput bool) Forker {
	return NewReexecForker(suppressOutput)
}

type reexecChild struct {
	cmd *exec.Cmd
}

func (c *reexecChild) Wait() (exited bool, code int, err error) {
	waitErr := c.cmd.Wait()
	if waitErr == nil {
		return true, 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		return exitErr.Exited(), exitErr.ExitCode(), nil
	}
	return false, -1, waitErr
}

func (f *reexecForker) Fork(buf *Buffer, caseName string, comms *Comms) (Child, error) {
	if comms.file == nil {
		return nil, ErrCommsUnavailable
	}

	cmd := exec.Command(os.Args[0], workerCaseFlag+caseName)
	cmd.Env = append(os.Environ(), workerModeEnv+"=1")
	cmd.ExtraFiles = []*os.File{comms.file}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrForkFailed, err)
	}

	if f.suppressOutput {
		cmd.Stdout = nil
		cmd.Stderr = nil
	} else {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrForkFailed, err)
	}

	if _, err := stdin.Write(buf.Bytes()); err != nil && !errors.Is(err, io.ErrClosedPipe) {
		_ = stdin.Close()
		_ = cmd.Process.Kill()
		return nil, fmt.Errorf("%w: %v", ErrForkFailed, err)
	}
	_ = stdin.Close()

	return &reexecChild{cmd: cmd}, nil
}

// IsWorkerProcess reports whether the current process was spawned as an
// isolated attempt worker (workerModeEnv is set). cmd/conjecture-worker and
// cmd/conjecture use this to decide whether to call RunWorker at all.
func IsWorkerProcess() bool {
	return os.Getenv(workerModeEnv) == "1"
}

// RunWorker is the isolated worker's entire job: parse which registered
// test case to run from argv, read the candidate buffer from stdin, map the
// inherited Comms region, build a Context, run the test case, and exit with
// the appropriate reserved code. It is exported so a user's test binary can
// call it from its own main (guarded by IsWorkerProcess) instead of needing
// a second cmd/ binary, mirroring how the original engine's forked child
// runs inside the very same executable image.
func RunWorker(args []string) {
	var caseName string
	for _, a := range args {
		if len(a) > len(workerCaseFlag) && a[:len(workerCaseFlag)] == workerCaseFlag {
			caseName = a[len(workerCaseFlag):]
		}
	}

	tc, ok := lookupTestCase(caseName)
	if !ok {
		fmt.Fprintf(os.Stderr, "%v: %s\n", ErrUnregisteredTestCase, caseName)
		os.Exit(1)
	}

	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conjecture worker: unable to read buffer: %v\n", err)
		os.Exit(1)
	}

	buf := NewBuffer(len(raw))
	copy(buf.data, raw)
	buf.SetFill(len(raw))

	comms, err := mapInheritedComms()
	if err != nil {
		fmt.Fprintf(os.Stderr, "conjecture worker: %v\n", err)
		os.Exit(1)
	}

	ctx := NewContext(buf, comms)
	ctx.setIsolated(true)

	func() {
		defer func() {
			if recover() != nil {
				os.Exit(1)
			}
		}()
		tc(ctx, nil)
	}()

	os.Exit(0)
}
