package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/springnet/checkpoint"
	"github.com/katalvlaran/springnet/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--log-level", "warn"}, args...))
	err := root.Execute()

	return out.String(), err
}

func smallConfig(t *testing.T, dir string) string {
	t.Helper()
	cfg := config.Default()
	cfg.N = 6
	cfg.Rc = 0.75 // every pair in the unit box is within range
	cfg.MaxIt = 3
	cfg.Tol = 0
	cfg.Seed = 5
	cfg.CheckpointEvery = 2
	cfg.DeltaFD = 1e-3
	path := filepath.Join(dir, "run.yaml")
	require.NoError(t, config.Save(path, cfg))

	return path
}

func TestInitWritesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	out, err := execute(t, "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	_, err = execute(t, "init", path)
	require.Error(t, err)
	_, err = execute(t, "init", "--force", path)
	require.NoError(t, err)
}

func TestRunResumeHistory(t *testing.T) {
	dir := t.TempDir()
	cfgPath := smallConfig(t, dir)
	ckpt := filepath.Join(dir, "ckpt.json")
	hist := filepath.Join(dir, "hist")

	out, err := execute(t, "run", "--config", cfgPath, "--checkpoint", ckpt, "--history", hist)
	require.NoError(t, err)
	assert.Contains(t, out, "max_iter after 3 iterations")

	snap, err := checkpoint.Load(ckpt)
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Iteration)

	out, err = execute(t, "resume", "--checkpoint", ckpt, "--history", hist, "--max-it", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "after 5 iterations")

	snap, err = checkpoint.Load(ckpt)
	require.NoError(t, err)
	assert.Equal(t, 5, snap.Iteration)

	out, err = execute(t, "history", "--history", hist)
	require.NoError(t, err)
	assert.Equal(t, snap.RunID, strings.TrimSpace(out))

	out, err = execute(t, "history", "--history", hist, snap.RunID)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 6) // header + 5 iterations
}

func TestResumeMissingCheckpoint(t *testing.T) {
	_, err := execute(t, "resume", "--checkpoint", filepath.Join(t.TempDir(), "none.json"))
	require.ErrorIs(t, err, checkpoint.ErrNotFound)
}

func TestSpectrumFromConfig(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "spectrum", "--config", smallConfig(t, dir), "--modes", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "mode")
	assert.Contains(t, out, "rigid translations expected: 2")
	assert.Contains(t, out, "gap n=3")
}

func TestBadLogLevel(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--log-level", "loud", "init", filepath.Join(t.TempDir(), "x.yaml")})
	require.Error(t, root.Execute())
}

func TestRunMissingConfig(t *testing.T) {
	_, err := execute(t, "run", "--config", filepath.Join(t.TempDir(), "absent.yaml"), "--checkpoint", "")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestHistoryMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "typo")
	_, err := execute(t, "history", "--history", dir)
	require.ErrorIs(t, err, checkpoint.ErrNotFound)
	_, err = os.Stat(dir)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDegreeSummary(t *testing.T) {
	lo, hi, isolated := degreeSummary([]int{2, 0, 3, 1})
	assert.Equal(t, 0, lo)
	assert.Equal(t, 3, hi)
	assert.Equal(t, 1, isolated)

	lo, hi, isolated = degreeSummary(nil)
	assert.Zero(t, lo+hi+isolated)
}
