// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package gc_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkival/pathvet/src/internal/helper/gc"
)

func TestDefaultPoolRoundTrip(t *testing.T) {
	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	n, err := buf.Write([]byte("results"))
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	_, err = buf.WriteString(" document")
	require.NoError(t, err)
	require.NoError(t, buf.WriteByte('\n'))

	assert.Equal(t, "results document\n", string(buf.Bytes()))

	buf.Reset()
	assert.Empty(t, buf.Bytes(), "reset must clear previous content")
}

func TestBufferReadFrom(t *testing.T) {
	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	n, err := buf.ReadFrom(strings.NewReader("streamed"))
	require.NoError(t, err)
	assert.Equal(t, int64(8), n)
	assert.Equal(t, "streamed", string(buf.Bytes()))
}

func TestPoolReuseDoesNotLeakContent(t *testing.T) {
	buf := gc.Default.Get()
	_, err := buf.WriteString("stale data")
	require.NoError(t, err)
	buf.Reset()
	gc.Default.Put(buf)

	fresh := gc.Default.Get()
	defer gc.Default.Put(fresh)
	assert.Empty(t, fresh.Bytes(), "pooled buffers must come back empty")
}
