// Copyright (c) 2024-2026 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Command conjecture-worker is not meant to be invoked directly. It is the
// reexec target a conjecture.Runner's default Forker launches to run a
// single test case attempt in isolation: see conjecture.IsWorkerProcess and
// conjecture.RunWorker.
package main

import (
	"os"

	"github.com/dmaciver/conjecture"
)

func main() {
	if conjecture.IsWorkerProcess() {
		conjecture.RunWorker(os.Args[1:])
		return
	}
	os.Exit(1)
}
