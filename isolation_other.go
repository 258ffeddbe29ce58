//go:build !unix

// Copyright (c) 2024-2026 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package conjecture

// On platforms without a unix process model there is no cheap isolation
// primitive to build a Forker on top of (no fork, no memfd_create). The
// engine falls back to the in-process path spec.md §4.3 documents for
// "environments that cannot fork": Runner.Forker stays nil and every
// attempt runs in the driver's own process, muted but not sandboxed against
// aborts.

// newSharedComms on a non-unix platform returns a local, non-shared Comms:
// there is no child process to share it with, so an ordinary in-process
// flag is sufficient.
func newSharedComms() (*Comms, error) {
	return NewLocalComms(), nil
}

// closeSharedComms is a no-op outside unix; NewLocalComms allocates no
// external resources to release.
func closeSharedComms(*Comms) {}

// defaultForker is nil outside unix: there is no isolation primitive to
// build one on, so Runner always falls back to the in-process path.
func defaultForker(bool) Forker { return nil }

// IsWorkerProcess is always false outside unix: there is no re-exec worker
// mode to enter.
func IsWorkerProcess() bool { return false }

// RunWorker is unreachable outside unix (IsWorkerProcess is always false),
// kept only so callers can guard with IsWorkerProcess uniformly across
// platforms without a build-tag switch of their own.
func RunWorker([]string) {}
