// Copyright (c) 2024-2026 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package randsrc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCTRDRBGReaderFillsBuffer(t *testing.T) {
	is := assert.New(t)

	r, err := CTRDRBG()
	is.NoError(err)

	buf := make([]byte, 64)
	n, err := r.Read(buf)
	is.NoError(err)
	is.Equal(len(buf), n)
}

func TestChaChaReaderFillsBuffer(t *testing.T) {
	is := assert.New(t)

	r, err := ChaCha()
	is.NoError(err)

	buf := make([]byte, 64)
	n, err := r.Read(buf)
	is.NoError(err)
	is.Equal(len(buf), n)
}
