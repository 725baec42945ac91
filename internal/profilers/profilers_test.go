package profilers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fileSize returns the size of the file at path, failing the test if it doesn't exist.
func fileSize(t *testing.T, path string) int64 {
	info, err := os.Stat(path)
	require.NoError(t, err)
	return info.Size()
}

func TestProfiles(t *testing.T) {
	dir := t.TempDir()

	cpuPath := filepath.Join(dir, "cpu.prof")
	stopCPU, err := startCPUProfile(cpuPath)
	require.NoError(t, err)
	tracePath := filepath.Join(dir, "trace.out")
	stopTrace, err := startTrace(tracePath)
	require.NoError(t, err)

	var nodes [][]int
	for ii := range 1000 {
		nodes = append(nodes, make([]int, ii))
	}
	stopTrace()
	stopCPU()
	assert.Positive(t, fileSize(t, cpuPath))
	assert.Positive(t, fileSize(t, tracePath))

	memPath := filepath.Join(dir, "mem.prof")
	require.NoError(t, writeHeapProfile(memPath))
	assert.Positive(t, fileSize(t, memPath))
	assert.Len(t, nodes, 1000)

	require.Error(t, writeHeapProfile(filepath.Join(dir, "missing", "mem.prof")))
	_, err = startCPUProfile(filepath.Join(dir, "missing", "cpu.prof"))
	require.Error(t, err)
}

func TestStartWithoutFlags(t *testing.T) {
	stop := Start(context.Background())
	stop()
}

func TestServeHTTPAfterInterrupt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// Already interrupted: it doesn't wait.
	serveHTTP(ctx, "localhost:0")()
}
