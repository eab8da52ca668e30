package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

type result struct {
	code   int
	stdout string
	stderr string
}

// env isolates a test from the user's config and script database.
type env struct {
	t     *testing.T
	dir   string
	store string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	return &env{t: t, dir: dir, store: filepath.Join(dir, "scripts.db")}
}

func (e *env) file(name, content string) string {
	e.t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(e.t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (e *env) run(stdin string, args ...string) result {
	e.t.Helper()
	var stdout, stderr bytes.Buffer
	args = append(args, "--store", e.store)
	code := Execute(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestDemos(t *testing.T) {
	res := newEnv(t).run("", "demos")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "quiz")
	assert.Contains(t, res.stdout, "flow")
	assert.Contains(t, res.stdout, "sandbox")
}

func TestRunWithScriptFile(t *testing.T) {
	e := newEnv(t)
	path := e.file("answers.yaml", "name: answers\nsteps:\n  - \"no\"\n")

	res := e.run("", "run", "quiz", "--script", path)
	assert.Equal(t, 0, res.code, res.stderr)
	assert.Empty(t, res.stderr)
}

func TestRunAutomationErrorExitsWithTwo(t *testing.T) {
	e := newEnv(t)
	path := e.file("bad.txt", "yes\ne\n")

	res := e.run("", "run", "quiz", "--script", path)
	assert.Equal(t, ExitAutomation, res.code)
	assert.Contains(t, res.stderr, "AUTOMATION ERROR")
	assert.Contains(t, res.stderr, `Command: "e"`)
}

func TestRunAutomationErrorKeepsStatusWhenTraceFails(t *testing.T) {
	e := newEnv(t)
	path := e.file("bad.txt", "yes\ne\n")
	tracePath := filepath.Join(e.dir, "missing", "quiz.dot")

	res := e.run("", "run", "quiz", "--script", path, "--trace", tracePath)
	assert.Equal(t, ExitAutomation, res.code)
	assert.Contains(t, res.stderr, "AUTOMATION ERROR")
}

func TestRunUnknownDemo(t *testing.T) {
	res := newEnv(t).run("", "run", "nope")
	assert.Equal(t, ExitFailure, res.code)
	assert.Contains(t, res.stderr, `unknown demo "nope"`)
}

func TestRunWritesTrace(t *testing.T) {
	e := newEnv(t)
	path := e.file("flow.txt", "# leave both menus\nback\nback\n")
	tracePath := filepath.Join(e.dir, "flow.dot")

	// The welcome prompt comes before any input and waits for Enter.
	res := e.run("\n", "run", "flow", "--script", path, "--trace", tracePath)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "> Welcome to the program!")

	dot, err := os.ReadFile(tracePath)
	require.NoError(t, err)
	assert.Contains(t, string(dot), "Welcome!")
	assert.Contains(t, string(dot), "Hello there")
}

func TestRecordThenReplay(t *testing.T) {
	e := newEnv(t)
	live := strings.Join([]string{"yes", "", "a", "", "b", "", "d", "", "a", "", "c", "", ""}, "\n") + "\n"

	res := e.run(live, "run", "quiz", "--record", "perfect")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "You got 5 out of 5 questions right.")

	res = e.run("", "script", "show", "perfect")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "name: perfect")
	assert.Contains(t, res.stdout, "recorded from quiz")

	res = e.run("", "run", "quiz", "--stored", "perfect")
	assert.Equal(t, 0, res.code, res.stderr)
}

func TestScriptCommands(t *testing.T) {
	e := newEnv(t)
	path := e.file("walk.txt", "show test\nback\nconfirm back\n")

	res := e.run("", "script", "list")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "No stored scripts.")

	res = e.run("", "script", "import", path)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, `Stored "walk" (3 steps)`)

	res = e.run("", "script", "import", path, "--name", "other")
	require.Equal(t, 0, res.code, res.stderr)

	res = e.run("", "script", "list")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Regexp(t, `(?s)other\s+3.*walk\s+3`, res.stdout)

	res = e.run("", "script", "show", "walk")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "mode: confirm")

	res = e.run("", "script", "delete", "walk")
	require.Equal(t, 0, res.code, res.stderr)

	res = e.run("", "script", "delete", "walk")
	assert.Equal(t, ExitFailure, res.code)
	assert.Contains(t, res.stderr, "not found")
}

func TestConfigFile(t *testing.T) {
	e := newEnv(t)
	cfgPath := e.file("navigator.yaml", "style:\n  bar_length: 4\nui:\n  encoding: cp437\n")
	path := e.file("flow.txt", "back\nback\n")

	res := e.run("\n", "run", "flow", "--config", cfgPath, "--script", path)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "____\n\n")
	assert.NotContains(t, res.stdout, "_____")

	res = e.run("", "demos", "--config", filepath.Join(e.dir, "missing.yaml"))
	assert.Equal(t, ExitFailure, res.code)
}

func TestInputEncoding(t *testing.T) {
	enc, err := inputEncoding("")
	require.NoError(t, err)
	assert.Nil(t, enc)

	enc, err = inputEncoding("CP437")
	require.NoError(t, err)
	assert.Equal(t, charmap.CodePage437, enc)

	_, err = inputEncoding("ebcdic")
	assert.Error(t, err)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, ExitFailure, ExitCode(errors.New("boom")))
	assert.Equal(t, ExitAutomation, ExitCode(errors.Wrap(&ExitError{Code: ExitAutomation}, "run")))
	assert.Equal(t, "exit status 2", (&ExitError{Code: 2}).Error())
}
