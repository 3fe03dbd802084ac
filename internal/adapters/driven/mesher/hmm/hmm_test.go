package hmm

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chibicitiberiu/3d-coin-maker/internal/core/domain"
)

// stubBinary writes an executable shell script standing in for hmm.
func stubBinary(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs require a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "hmm-stub")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return path
}

func TestGenerateRelief_BinaryMissing(t *testing.T) {
	m := New(filepath.Join(t.TempDir(), "does-not-exist"), time.Second)

	err := m.GenerateRelief(context.Background(), "in.png", "out.stl", 1.0, 0.1)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExternalTool)
	assert.Contains(t, err.Error(), "not found")
}

func TestGenerateRelief_Success(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.stl")
	m := New(stubBinary(t, `touch "$2"; exit 0`), time.Second)

	err := m.GenerateRelief(context.Background(), "in.png", out, 1.0, 0.1)

	require.NoError(t, err)
	assert.FileExists(t, out)
}

func TestGenerateRelief_NonZeroExit(t *testing.T) {
	m := New(stubBinary(t, `echo "bad heightmap" >&2; exit 3`), time.Second)

	err := m.GenerateRelief(context.Background(), "in.png", "out.stl", 1.0, 0.1)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExternalTool)
	assert.Contains(t, err.Error(), "bad heightmap")
}

func TestGenerateRelief_Timeout(t *testing.T) {
	m := New(stubBinary(t, `sleep 10`), 100*time.Millisecond)

	start := time.Now()
	err := m.GenerateRelief(context.Background(), "in.png", "out.stl", 1.0, 0.1)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExternalTool)
	assert.Contains(t, err.Error(), "timed out")
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestGenerateRelief_PassesArguments(t *testing.T) {
	dir := t.TempDir()
	argsFile := filepath.Join(dir, "args")
	m := New(stubBinary(t, `echo "$@" > `+argsFile), time.Second)

	require.NoError(t, m.GenerateRelief(context.Background(), "hm.png", "relief.stl", 1.5, 0.1))

	got, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Contains(t, string(got), "hm.png relief.stl -z 1.5 -b 0.1")
}
