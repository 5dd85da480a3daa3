package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/alt/internal/debug"
)

type result struct {
	code   int
	stdout string
	stderr string
}

// runAlt runs the app in process. A non-empty stdin is treated as piped.
func runAlt(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Cleanup(func() {
		debug.Enable(false)
		debug.SetDebugOutput(nil)
	})

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), append([]string{"alt"}, args...), &env{
		stdin:      strings.NewReader(stdin),
		stdout:     &stdout,
		stderr:     &stderr,
		stdinPiped: stdin != "",
	})
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func setupProject(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		full := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("x"), 0o644))
	}
	return root
}

const railsList = `app/models/user.rb
app/models/topic.rb
app/controllers/users_controller.rb
spec/models/user_spec.rb
spec/models/topic_spec.rb
spec/controllers/users_controller_spec.rb
`

func TestStdinList_ImplementationToSpec(t *testing.T) {
	t.Chdir(t.TempDir())
	res := runAlt(t, railsList, "app/models/topic.rb")

	assert.Equal(t, exitMatch, res.code, res.stderr)
	assert.Equal(t, "spec/models/topic_spec.rb\n", res.stdout)
}

func TestStdinList_SpecToImplementation(t *testing.T) {
	t.Chdir(t.TempDir())
	res := runAlt(t, railsList, "./spec/controllers/users_controller_spec.rb")

	assert.Equal(t, exitMatch, res.code, res.stderr)
	assert.Equal(t, "app/controllers/users_controller.rb\n", res.stdout)
}

func TestNoMatchExitsOne(t *testing.T) {
	t.Chdir(t.TempDir())
	res := runAlt(t, "spec/a_spec.rb\ntest/b_test.rb\n", "spec/c_spec.rb")

	assert.Equal(t, exitNoMatch, res.code)
	assert.Empty(t, res.stdout)
	assert.Empty(t, res.stderr)
}

func TestFileFlag(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	list := filepath.Join(dir, "candidates.txt")
	require.NoError(t, os.WriteFile(list, []byte("toaster.py\ntest/test_toaster.py\nlib/oven.py\n"), 0o644))

	res := runAlt(t, "", "-f", list, "toaster.py")
	assert.Equal(t, exitMatch, res.code, res.stderr)
	assert.Equal(t, "test/test_toaster.py\n", res.stdout)
}

func TestMissingFileExitsTwo(t *testing.T) {
	t.Chdir(t.TempDir())
	res := runAlt(t, "", "--file", "nope.txt", "toaster.py")

	assert.Equal(t, exitError, res.code)
	assert.Contains(t, res.stderr, "nope.txt")
}

func TestWalkRoot(t *testing.T) {
	root := setupProject(t,
		"app/models/user.rb",
		"spec/models/user_spec.rb",
		"node_modules/user/index.rb",
	)
	t.Chdir(t.TempDir())

	res := runAlt(t, "", "--root", root, filepath.Join(root, "spec", "models", "user_spec.rb"))
	assert.Equal(t, exitMatch, res.code, res.stderr)
	assert.Equal(t, "app/models/user.rb\n", res.stdout)
}

func TestWalkHonoursConfigAndExclude(t *testing.T) {
	root := setupProject(t,
		"lib/login.ts",
		"e2e/login.ts",
		"legacy/login.ts",
	)
	require.NoError(t, os.WriteFile(filepath.Join(root, ".alt.kdl"), []byte(`classify { prefix "e2e/"; }`), 0o644))
	t.Chdir(root)

	res := runAlt(t, "", "--exclude", "legacy/**", "e2e/login.ts")
	assert.Equal(t, exitMatch, res.code, res.stderr)
	assert.Equal(t, "lib/login.ts\n", res.stdout)
}

func TestLimitAndScores(t *testing.T) {
	t.Chdir(t.TempDir())
	res := runAlt(t, "x/ab\nspec/z_spec.rb\ny/ab\nc/a_s.rb\n", "-n", "2", "-s", "spec/a_spec.rb")

	assert.Equal(t, exitMatch, res.code, res.stderr)
	assert.Equal(t, "0.6250 c/a_s.rb\n0.5000 x/ab\n", res.stdout)
}

func TestAnyFlagAllowsSameKind(t *testing.T) {
	t.Chdir(t.TempDir())
	list := "src/models/nft-wallet.ts\nsrc/concerns/nft/models/nft-wallet.ts\nsrc/database/wallet/repository.ts\n"

	res := runAlt(t, list, "src/models/nft-wallet.ts")
	assert.Equal(t, exitNoMatch, res.code)

	res = runAlt(t, list, "--any", "--judge", "weighted", "src/models/nft-wallet.ts")
	assert.Equal(t, exitMatch, res.code, res.stderr)
	assert.Equal(t, "src/concerns/nft/models/nft-wallet.ts\n", res.stdout)
}

func TestWorkerCountsAgree(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, w := range []string{"1", "2", "8"} {
		res := runAlt(t, railsList, "-w", w, "--threshold", "1", "app/models/user.rb")
		assert.Equal(t, exitMatch, res.code, res.stderr)
		assert.Equal(t, "spec/models/user_spec.rb\n", res.stdout, "workers %s", w)
	}
}

func TestInvalidSettingsExitTwo(t *testing.T) {
	t.Chdir(t.TempDir())

	res := runAlt(t, railsList, "--judge", "levenshtein", "app/models/user.rb")
	assert.Equal(t, exitError, res.code)
	assert.Contains(t, res.stderr, "unknown judge")

	res = runAlt(t, railsList, "-w", "-3", "app/models/user.rb")
	assert.Equal(t, exitError, res.code)

	res = runAlt(t, railsList, "--filename-weight", "0", "--path-weight", "0", "app/models/user.rb")
	assert.Equal(t, exitError, res.code)
	assert.Contains(t, res.stderr, "cannot both be zero")
}

func TestArgumentCount(t *testing.T) {
	t.Chdir(t.TempDir())

	res := runAlt(t, railsList)
	assert.Equal(t, exitError, res.code)
	assert.Contains(t, res.stderr, "exactly one PATH")

	res = runAlt(t, railsList, "a.rb", "b.rb")
	assert.Equal(t, exitError, res.code)
}

func TestVersion(t *testing.T) {
	res := runAlt(t, "", "--version")
	assert.Equal(t, exitMatch, res.code)
	assert.Equal(t, "alt v0.1.0\n", res.stdout)
}

func TestDebugWritesToStderr(t *testing.T) {
	t.Chdir(t.TempDir())
	res := runAlt(t, railsList, "--debug", "app/models/user.rb")

	assert.Equal(t, exitMatch, res.code)
	assert.Equal(t, "spec/models/user_spec.rb\n", res.stdout, "debug output never reaches stdout")
	assert.Contains(t, res.stderr, "[DEBUG:MATCH]")
	assert.Contains(t, res.stderr, "[DEBUG:SOURCE]")
}

func TestDebugLogFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TMPDIR", t.TempDir())
	res := runAlt(t, railsList, "--debug-log", "app/models/user.rb")

	assert.Equal(t, exitMatch, res.code, res.stderr)
	assert.Equal(t, "spec/models/user_spec.rb\n", res.stdout)
	require.True(t, strings.HasPrefix(res.stderr, "debug log: "), res.stderr)

	logPath := strings.TrimSpace(strings.TrimPrefix(res.stderr, "debug log: "))
	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[DEBUG:MATCH]")
}
