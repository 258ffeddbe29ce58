// Copyright (c) 2024-2026 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package conjecture

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfigValues(t *testing.T) {
	is := assert.New(t)

	cfg := defaultConfig()
	is.Equal(defaultMaxExamples, cfg.maxExamples)
	is.Equal(defaultMaxBufferSize, cfg.maxBufferSize)
	is.True(cfg.suppressOutput)
	is.False(cfg.forkerSet)
}

func TestOptionsOverrideDefaults(t *testing.T) {
	is := assert.New(t)

	var out bytes.Buffer
	cfg := defaultConfig()
	for _, opt := range []Option{
		WithMaxExamples(5),
		WithMaxBufferSize(128),
		WithSuppressOutput(false),
		WithOutput(&out),
		WithForker(nil),
	} {
		opt(cfg)
	}

	is.Equal(5, cfg.maxExamples)
	is.Equal(128, cfg.maxBufferSize)
	is.False(cfg.suppressOutput)
	is.Same(&out, cfg.out)
	is.True(cfg.forkerSet)
	is.Nil(cfg.forker)
}
