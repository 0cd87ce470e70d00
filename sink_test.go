package main

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock hands out a fixed time, advanced manually.
type fakeClock struct {
	mut sync.Mutex
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mut.Lock()
	defer c.mut.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mut.Lock()
	c.now = c.now.Add(d)
	c.mut.Unlock()
}

func testOutput(dir string, maxMB int) OutputConfig {
	return OutputConfig{Directory: dir, Rotation: RotationConfig{MaxSizeMB: maxMB}}
}

func readDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestFileSinkAppends(t *testing.T) {
	dir := t.TempDir()
	clock := newFakeClock(time.Date(2026, 3, 10, 14, 30, 5, 0, time.UTC))
	sink, err := NewFileSink(testOutput(dir, 100), clock, NewLogger(0))
	require.NoError(t, err)

	require.NoError(t, sink.Write("nginx", "first line"))
	require.NoError(t, sink.Write("nginx", "second line"))
	require.NoError(t, sink.Write("cdn", "other service"))
	require.NoError(t, sink.Close())

	names := readDir(t, filepath.Join(dir, "nginx"))
	require.Len(t, names, 1)
	assert.Equal(t, "nginx_20260310_143005.log", names[0])

	data, err := os.ReadFile(filepath.Join(dir, "nginx", names[0]))
	require.NoError(t, err)
	assert.Equal(t, "first line\nsecond line\n", string(data))

	require.Len(t, readDir(t, filepath.Join(dir, "cdn")), 1)
}

func TestFileSinkRotatesBySize(t *testing.T) {
	dir := t.TempDir()
	clock := newFakeClock(time.Date(2026, 3, 10, 14, 30, 5, 0, time.UTC))
	sink, err := NewFileSink(testOutput(dir, 100), clock, NewLogger(0))
	require.NoError(t, err)
	// shrink the threshold below two records so the second write rotates
	sink.maxSize = 20

	long := strings.Repeat("x", 15)
	require.NoError(t, sink.Write("nginx", long))
	clock.Advance(2 * time.Second)
	require.NoError(t, sink.Write("nginx", long))
	require.NoError(t, sink.Close())

	names := readDir(t, filepath.Join(dir, "nginx"))
	require.Len(t, names, 2, "expected a rotation to open a second file")

	// no record is split: every file holds complete lines only
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, "nginx", name))
		require.NoError(t, err)
		assert.Equal(t, long+"\n", string(data))
	}
}

func TestFileSinkRotatesByAge(t *testing.T) {
	dir := t.TempDir()
	clock := newFakeClock(time.Date(2026, 3, 10, 14, 30, 5, 0, time.UTC))
	cfg := testOutput(dir, 100)
	cfg.Rotation.MaxAge = Duration(time.Minute)
	sink, err := NewFileSink(cfg, clock, NewLogger(0))
	require.NoError(t, err)

	require.NoError(t, sink.Write("cicd", "before"))
	clock.Advance(2 * time.Minute)
	require.NoError(t, sink.Write("cicd", "after"))
	require.NoError(t, sink.Close())

	require.Len(t, readDir(t, filepath.Join(dir, "cicd")), 2)
}

func TestFileSinkRotationWithinSameSecond(t *testing.T) {
	dir := t.TempDir()
	clock := newFakeClock(time.Date(2026, 3, 10, 14, 30, 5, 0, time.UTC))
	sink, err := NewFileSink(testOutput(dir, 100), clock, NewLogger(0))
	require.NoError(t, err)
	sink.maxSize = 10

	require.NoError(t, sink.Write("nginx", "aaaaaaaa"))
	require.NoError(t, sink.Write("nginx", "bbbbbbbb"))
	require.NoError(t, sink.Write("nginx", "cccccccc"))
	require.NoError(t, sink.Close())

	names := readDir(t, filepath.Join(dir, "nginx"))
	assert.Len(t, names, 3, "same-second rotations must still open distinct files")
}

func TestFileSinkWriteFailure(t *testing.T) {
	dir := t.TempDir()
	clock := newFakeClock(time.Now())
	sink, err := NewFileSink(testOutput(dir, 100), clock, NewLogger(0))
	require.NoError(t, err)

	// occupy the service directory path with a plain file so MkdirAll fails
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nginx"), []byte("in the way"), 0o644))

	require.Error(t, sink.Write("nginx", "this record is dropped"))
	// other services keep working
	require.NoError(t, sink.Write("cdn", "still flowing"))
	require.NoError(t, sink.Close())
}

func TestCountingSink(t *testing.T) {
	sink := NewCountingSink()
	require.NoError(t, sink.Write("nginx", "a"))
	require.NoError(t, sink.Write("nginx", "b"))
	require.NoError(t, sink.Write("cdn", "c"))
	assert.Equal(t, int64(2), sink.Count("nginx"))
	assert.Equal(t, int64(3), sink.Total())
	require.NoError(t, sink.Close())
}
