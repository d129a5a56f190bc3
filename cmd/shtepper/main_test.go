package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgree/smoosh/core/ast"
)

const echoTrace = `[{"term":{"tag":"Command","assigns":[],"args":[{"tag":"S","v":"echo"},{"tag":"F"},{"tag":"S","v":"hi"}],"rs":[]},
"env":{},"locals":[],"step":{"tag":"XSStep","msg":""},"STDOUT":"","STDERR":""}]`

const echoText = "echo hi\nVariable\tValue\nSTDOUT\nSTDERR\n"

// cleanEnv keeps the caller's environment from leaking into a test.
func cleanEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"SHTEPPER_ENGINE", "SHTEPPER_TIMEOUT", "SHTEPPER_DEBUG", "NO_COLOR"} {
		t.Setenv(k, "")
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cleanEnv(t)
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string, mode os.FileMode) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), mode))
	return path
}

func TestRenderStdin(t *testing.T) {
	out, _, err := execute(t, echoTrace, "render")
	require.NoError(t, err)
	assert.Equal(t, echoText, out)

	out, _, err = execute(t, echoTrace, "render", "-")
	require.NoError(t, err)
	assert.Equal(t, echoText, out)
}

func TestRenderFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "trace.json", echoTrace, 0o644)
	out, _, err := execute(t, "", "render", path)
	require.NoError(t, err)
	assert.Equal(t, echoText, out)
}

func TestRenderHTML(t *testing.T) {
	out, _, err := execute(t, echoTrace, "render", "--format", "html")
	require.NoError(t, err)
	assert.Contains(t, out, `<table class="ui unstackable compact table`)
	assert.Contains(t, out, "echo")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestRenderANSI(t *testing.T) {
	out, _, err := execute(t, echoTrace, "render", "--format", "ansi")
	require.NoError(t, err)
	assert.Contains(t, out, "\x1b[")
}

func TestNoColorKeepsPlainText(t *testing.T) {
	out, _, err := execute(t, echoTrace, "render", "--no-color")
	require.NoError(t, err)
	assert.NotContains(t, out, "\x1b[")
}

func TestRenderErrorDocument(t *testing.T) {
	out, _, err := execute(t, `[{"error":"syntax error near fi"}]`, "render")
	require.NoError(t, err)
	assert.Equal(t, "Parse error\nsyntax error near fi\n", out)
}

func TestRenderUnknownTag(t *testing.T) {
	bad := strings.Replace(echoTrace, `"tag":"Command"`, `"tag":"Comand"`, 1)
	_, _, err := execute(t, bad, "render")
	require.Error(t, err)

	var tagErr *ast.TagError
	require.True(t, errors.As(err, &tagErr), "got %T", err)
	assert.Equal(t, "Comand", tagErr.Tag)
	assert.Equal(t, "<stdin>", err.(*decodeError).source)

	var buf bytes.Buffer
	FormatError(&buf, err, false)
	assert.Contains(t, buf.String(), `unknown statement tag "Comand"`)
	assert.Contains(t, buf.String(), "Hint: ")
}

func TestCheck(t *testing.T) {
	doc := `[` + strings.TrimPrefix(strings.TrimSuffix(echoTrace, "]"), "[") + `,{"error":"boom"}]`
	out, _, err := execute(t, doc, "check")
	require.NoError(t, err)
	assert.Equal(t, "ok: 1 steps, 1 error records\n", out)
}

func TestCheckInvalid(t *testing.T) {
	_, _, err := execute(t, `{"steps": 3}`, "check")
	require.Error(t, err)

	var cliErr *CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, "check", cliErr.Type)
	assert.Equal(t, 2, exitCode(err))
}

func TestMissingInput(t *testing.T) {
	_, _, err := execute(t, "", "render", filepath.Join(t.TempDir(), "nope.json"))
	var cliErr *CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, "input", cliErr.Type)
	assert.Equal(t, 1, exitCode(err))
}

func TestExplicitConfigMustExist(t *testing.T) {
	_, _, err := execute(t, echoTrace, "render", "--config", filepath.Join(t.TempDir(), "missing.yml"))
	var cliErr *CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, "config", cliErr.Type)
}

func TestInvalidFormat(t *testing.T) {
	_, _, err := execute(t, echoTrace, "render", "--format", "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format "pdf"`)
}

func TestDebugLogging(t *testing.T) {
	_, stderr, err := execute(t, echoTrace, "render", "--debug")
	require.NoError(t, err)
	assert.Contains(t, stderr, "msg=\"decoded trace\"")
	assert.NotContains(t, stderr, "level=")
	assert.NotContains(t, stderr, "time=")
}

func engineConfig(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake engine is a shell script")
	}
	dir := t.TempDir()
	exe := writeFile(t, dir, "engine", "#!/bin/sh\n"+body+"\n", 0o755)
	return writeFile(t, dir, "shtepper.yml", "engine:\n  executable: "+exe+"\n  timeout: 10s\n", 0o644)
}

func TestRun(t *testing.T) {
	cfg := engineConfig(t, "cat <<'JSON'\n"+echoTrace+"\nJSON")
	script := writeFile(t, t.TempDir(), "script.sh", "echo hi\n", 0o644)

	out, _, err := execute(t, "", "run", "--config", cfg, script)
	require.NoError(t, err)
	assert.Equal(t, echoText, out)

	out, _, err = execute(t, "", "run", "--config", cfg, "--json", script)
	require.NoError(t, err)
	assert.JSONEq(t, echoTrace, out)
}

func TestRunEngineFailure(t *testing.T) {
	cfg := engineConfig(t, "echo 'parse error' >&2\nexit 1")
	script := writeFile(t, t.TempDir(), "script.sh", "fi\n", 0o644)

	out, _, err := execute(t, "", "run", "--config", cfg, script)
	require.NoError(t, err)
	assert.Equal(t, "Parse error\nparse error\n", out)
}

func TestRunMissingEngine(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "shtepper.yml", "engine:\n  executable: "+filepath.Join(dir, "absent")+"\n", 0o644)
	script := writeFile(t, dir, "script.sh", "true\n", 0o644)

	_, _, err := execute(t, "", "run", "--config", cfg, script)
	var cliErr *CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, "engine", cliErr.Type)
}

// syncBuffer is a bytes.Buffer safe to read while the watcher writes.
type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func TestWatch(t *testing.T) {
	cleanEnv(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "trace.json", echoTrace, 0o644)

	var stdout, stderr syncBuffer
	cmd := newRootCmd()
	cmd.SetArgs([]string{"watch", path})
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool {
		return strings.Contains(stdout.String(), "echo hi")
	}, 5*time.Second, 20*time.Millisecond)

	updated := strings.Replace(echoTrace, `"v":"hi"`, `"v":"bye"`, 1)
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o644))
	require.Eventually(t, func() bool {
		return strings.Contains(stdout.String(), "echo bye")
	}, 5*time.Second, 20*time.Millisecond)

	// a broken document is reported and the watch carries on
	require.NoError(t, os.WriteFile(path, []byte("[{"), 0o644))
	require.Eventually(t, func() bool {
		return strings.Contains(stderr.String(), "Error: ")
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestFormatCLIError(t *testing.T) {
	var buf bytes.Buffer
	FormatError(&buf, &CLIError{Message: "could not run", Details: "exit 1", Hint: "try again"}, false)
	out := buf.String()
	assert.Contains(t, out, "Error: could not run\n")
	assert.Contains(t, out, "\nexit 1\n")
	assert.Contains(t, out, "Hint: try again\n")
	assert.NotContains(t, out, "\x1b[")
}
