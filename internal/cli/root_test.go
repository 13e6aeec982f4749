package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := newRootCmd()
	var outBuf, errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(context.Background())
	return outBuf.String(), errBuf.String(), err
}

const testScenario = `
hooks:
  - name: setup
    params: [a]
plugins:
  - name: first
    impls:
      - hook: setup
        result: one
        tryfirst: true
  - name: last
    impls:
      - hook: setup
        result: two
        trylast: true
calls:
  - hook: setup
    args: {a: 1}
`

func TestRootCmd(t *testing.T) {
	t.Run("prints the dispatch plan and call results", func(t *testing.T) {
		path := writeScenario(t, testScenario)

		stdout, _, err := execute(t, path)
		require.NoError(t, err)

		assert.Contains(t, stdout, "hook setup")
		assert.Contains(t, stdout, "last [trylast]")
		assert.Contains(t, stdout, "first [tryfirst]")
		assert.Contains(t, stdout, "call setup")
		assert.Contains(t, stdout, "[one two]")
	})

	t.Run("no-exec skips call execution", func(t *testing.T) {
		path := writeScenario(t, testScenario)

		stdout, _, err := execute(t, path, "--no-exec")
		require.NoError(t, err)

		assert.Contains(t, stdout, "hook setup")
		assert.NotContains(t, stdout, "call setup")
	})

	t.Run("fails on a missing scenario file", func(t *testing.T) {
		_, _, err := execute(t, filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("fails on pending implementations without a spec", func(t *testing.T) {
		path := writeScenario(t, `
plugins:
  - name: p1
    impls:
      - hook: unknown
        result: 1
`)
		_, _, err := execute(t, path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no specification")
	})

	t.Run("requires exactly one argument", func(t *testing.T) {
		_, _, err := execute(t)
		require.Error(t, err)
	})
}
