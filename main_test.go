package main

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TimGoTheCreator/NEXT/internal/config"
	"github.com/TimGoTheCreator/NEXT/internal/particle"
	"github.com/TimGoTheCreator/NEXT/internal/snapshot"
)

func TestDumpOnceWritesFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Format = snapshot.VTK

	s := particle.NewStore(0)
	s.Append(0, 0, 0, 0, 0, 0, 1.0, particle.Star)

	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(oldWd)

	dumpOnce(cfg, s, snapshot.For(cfg.Format), 0, 0.1)

	_, err = os.Stat(filepath.Join(dir, "dump_0.vtk"))
	require.NoError(t, err)
}

func TestWatchForQuitSignalsOnQ(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("hello\nq\n"))
	ch := watchForQuit(r)
	<-ch
}

func TestWatchForQuitIgnoresNonQLines(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("hello\nworld\n"))
	ch := watchForQuit(r)
	select {
	case <-ch:
		t.Fatal("did not expect quit signal")
	default:
	}
}

func TestBannerIsNonEmpty(t *testing.T) {
	assert.NotEmpty(t, banner)
}
