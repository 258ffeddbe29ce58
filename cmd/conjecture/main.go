// Copyright (c) 2024-2026 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Command conjecture is a thin driver around conjecture.Runner for callers
// who want the engine's original exit-code-driven behaviour (0 on pass,
// non-zero on a discovered or flaky failure) rather than Go's normal
// testing.T integration. It runs whichever conjecture.TestCase was
// registered under -case by the process's own init functions — a caller
// copies this file into their own main package, which also blank-imports
// the package defining their test case.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dmaciver/conjecture"
)

func main() {
	if conjecture.IsWorkerProcess() {
		conjecture.RunWorker(os.Args[1:])
		return
	}

	caseName := flag.String("case", "", "name of the registered test case to run")
	maxExamples := flag.Int("examples", 0, "override the maximum number of accepted examples (0 = default)")
	flag.Parse()

	if *caseName == "" {
		fmt.Fprintln(os.Stderr, "conjecture: -case is required")
		os.Exit(2)
	}

	opts := []conjecture.Option{}
	if *maxExamples > 0 {
		opts = append(opts, conjecture.WithMaxExamples(*maxExamples))
	}

	runner, err := conjecture.NewRunner(opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "conjecture:", err)
		os.Exit(1)
	}
	defer runner.Close()

	err = runner.RunTest(context.Background(), *caseName, nil, nil)
	switch {
	case err == nil:
		os.Exit(0)
	case err == conjecture.ErrUnregisteredTestCase:
		fmt.Fprintln(os.Stderr, "conjecture:", err)
		os.Exit(2)
	default:
		fmt.Fprintln(os.Stderr, "conjecture:", err)
		os.Exit(1)
	}
}
