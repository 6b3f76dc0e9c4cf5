package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdbg-dev/kdbg/internal/cli"
)

func runConfigCmd(t *testing.T, args ...string) string {
	t.Helper()

	cmd := cli.NewRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	require.NoError(t, cmd.Execute())

	return out.String()
}

func TestConfigPathCmd(t *testing.T) {
	t.Parallel()

	target := filepath.Join(t.TempDir(), "config.yaml")

	out := runConfigCmd(t, "config", "path", "--config", target)
	assert.Equal(t, target+"\n", out)
}

func TestConfigInitCmd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "config.yaml")

	out := runConfigCmd(t, "config", "init", "--config", target)
	assert.Contains(t, out, target)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "apiVersion: kdbg.dev/v1beta1")

	// The JSON schema lands next to the config for editor integration.
	_, err = os.Stat(filepath.Join(dir, "kdbg.v1beta1.json"))
	require.NoError(t, err)

	// A second init without force leaves the existing file alone.
	require.NoError(t, os.WriteFile(target, []byte("# edited\n"), 0o600))
	runConfigCmd(t, "config", "init", "--config", target)

	data, err = os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "# edited\n", string(data))

	// Force replaces the file and keeps a backup.
	runConfigCmd(t, "config", "init", "--force", "--config", target)

	data, err = os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "apiVersion: kdbg.dev/v1beta1")

	backups, err := filepath.Glob(filepath.Join(dir, "config.yaml.*.old"))
	require.NoError(t, err)
	assert.Len(t, backups, 1)
}
