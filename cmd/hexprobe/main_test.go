package main

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), c)

	c, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), c)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lattice.yaml")
	data := []byte("lattice:\n  n: 4\n  centered: true\nweights:\n  lambda: 6\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 4, c.Lattice.N)
	require.True(t, c.Lattice.Centered)
	require.Equal(t, 1.0, c.Lattice.Spacing, "unset fields keep defaults")
	require.Equal(t, 6.0, c.Weights.Lambda)
	require.Equal(t, 2.5, c.Bump.Radius)
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("lattice:\n  n: 0\n  spacing: -1\n"), 0o600))
	_, err := Load(bad)
	require.Error(t, err)
	require.Contains(t, err.Error(), "lattice.n")
	require.Contains(t, err.Error(), "lattice.spacing")

	garbled := filepath.Join(dir, "garbled.yaml")
	require.NoError(t, os.WriteFile(garbled, []byte("lattice: [1, 2"), 0o600))
	_, err = Load(garbled)
	require.ErrorContains(t, err, "failed to parse config")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { logger = zap.NewNop() })

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCheckCommandPasses(t *testing.T) {
	for _, args := range [][]string{
		{"--n", "4", "check"},
		{"--n", "5", "--centered", "check"},
		{"--n", "3", "--spacing", "2.5", "check"},
	} {
		out, err := execute(t, args...)
		require.NoError(t, err, "args %v", args)
		require.Regexp(t, `wrap\(unwrapped\) == direct\s+true`, out)
		require.Regexp(t, `matmul ~= direct\s+true`, out)
	}
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lattice.yaml")
	require.NoError(t, os.WriteFile(path, []byte("lattice:\n  n: 6\n"), 0o600))

	_, err := execute(t, "--config", path, "--n", "3", "check")
	require.NoError(t, err)
	require.Equal(t, 3, cfg.Lattice.N)

	_, err = execute(t, "--config", path, "check")
	require.NoError(t, err)
	require.Equal(t, 6, cfg.Lattice.N)
}

func TestInvalidFlagIsRejected(t *testing.T) {
	_, err := execute(t, "--n", "0", "check")
	require.Error(t, err)
}

func TestCoordsCommand(t *testing.T) {
	out, err := execute(t, "--n", "3", "coords", "--limit", "0")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2+27)
	require.True(t, strings.HasPrefix(lines[0], "i"))
}

func TestDistancesCommand(t *testing.T) {
	out, err := execute(t, "--n", "4", "distances")
	require.NoError(t, err)
	require.Contains(t, out, "[64 64]")
	require.Regexp(t, `neighbours\(cell 0\)\s+12`, out)
}

func TestWeightsCommand(t *testing.T) {
	out, err := execute(t, "--n", "4", "weights")
	require.NoError(t, err)
	require.Contains(t, out, "weights")
	require.Contains(t, out, "[64 64]")
}

func TestEncoderCommand(t *testing.T) {
	var buf bytes.Buffer
	c := DefaultConfig()
	c.Lattice.N = 4
	require.NoError(t, runEncoder(&buf, c, 6))

	out := buf.String()
	require.Regexp(t, `encoder\s+64 x 96`, out)

	m := regexp.MustCompile(`max error\s+(\S+)`).FindStringSubmatch(out)
	require.Len(t, m, 2)
	worst, err := strconv.ParseFloat(m[1], 64)
	require.NoError(t, err)
	require.Less(t, worst, 1e-10)
}

func TestDFTCommand(t *testing.T) {
	var buf bytes.Buffer
	c := DefaultConfig()
	c.Lattice.N = 4
	require.NoError(t, runDFT(&buf, c, 3))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2+3)
	require.Regexp(t, `^0\s+0\s+0\s`, lines[2], "the mean dominates a positive bump")
}
