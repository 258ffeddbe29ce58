// Copyright (c) 2024-2026 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package conjecture

import "sync"

// registry maps a stable test case name to its TestCase function. A
// re-exec'd isolated child is a fresh process image: it cannot simply
// inherit a function pointer the way a forked child would, so it looks the
// test case up here by name instead.
var (
	registryMu sync.RWMutex
	registry   = map[string]TestCase{}
)

// RegisterTestCase makes tc reachable by name from an isolated worker
// process. Runner.RunTest and Runner.RunTestForBuffer call this
// automatically under the name they are given, so most callers never need
// to call it directly; it is exported for callers that want to register
// ahead of time (e.g. from the worker binary's own init, to guarantee the
// registration happens before flags are parsed).
func RegisterTestCase(name string, tc TestCase) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = tc
}

// lookupTestCase returns the TestCase registered under name, if any.
func lookupTestCase(name string) (TestCase, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	tc, ok := registry[name]
	return tc, ok
}
