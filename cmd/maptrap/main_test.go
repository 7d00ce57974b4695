package main

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeValue(t *testing.T, order binary.ByteOrder, n int32) string {
	t.Helper()
	b := make([]byte, 8)
	order.PutUint32(b, uint32(n))
	path := filepath.Join(t.TempDir(), "input.bin")
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestRun_Unsafe(t *testing.T) {
	path := writeValue(t, binary.BigEndian, 42)
	var stdout, stderr bytes.Buffer

	code := run([]string{"UNSAFE", path}, &stdout, &stderr)
	assert.Equal(t, 0, code, stderr.String())
	assert.Equal(t, "strategy: UNSAFE\n42\n", stdout.String())
	assert.NoFileExists(t, path)
}

func TestRun_ByteOrderFlag(t *testing.T) {
	path := writeValue(t, binary.LittleEndian, -5)
	var stdout, stderr bytes.Buffer

	code := run([]string{"-byte-order=little", "UNSAFE", path}, &stdout, &stderr)
	assert.Equal(t, 0, code, stderr.String())
	assert.Equal(t, "strategy: UNSAFE\n-5\n", stdout.String())
}

func TestRun_InvalidStrategy(t *testing.T) {
	path := writeValue(t, binary.BigEndian, 1)
	var stdout, stderr bytes.Buffer

	code := run([]string{"BOGUS", path}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "InvalidStrategyName")
	assert.Contains(t, stderr.String(), usage)
	assert.FileExists(t, path)
}

func TestRun_Usage(t *testing.T) {
	for _, args := range [][]string{
		nil,
		{"UNSAFE"},
		{"UNSAFE", "a", "b"},
		{"-byte-order=middle", "UNSAFE", "a"},
	} {
		var stdout, stderr bytes.Buffer
		assert.Equal(t, 1, run(args, &stdout, &stderr))
		assert.Contains(t, stderr.String(), "UsageError")
		assert.Empty(t, stdout.String())
	}
}

func TestRun_UnknownFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, run([]string{"-nope", "UNSAFE", "x"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), usage)
}

func TestRun_MissingFile(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"UNSAFE", filepath.Join(t.TempDir(), "missing")}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "got error (NotFound)")
}

func TestRun_Truncated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.bin")
	require.NoError(t, os.WriteFile(path, []byte{1, 2}, 0o600))
	var stdout, stderr bytes.Buffer

	code := run([]string{"GC", path}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "got error (TruncatedRead)")
	assert.FileExists(t, path)
}
