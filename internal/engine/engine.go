// Package engine runs the external stepping shell on a script and turns its
// outcome into a trace document.
package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/mgree/smoosh/core/invariant"
)

// Exit codes reported when the engine never produced one of its own.
const (
	ExitTimeout  = 124
	ExitNotFound = 127
	// ExitSignal plus the signal number is reported for an engine killed by
	// a signal, as shells do.
	ExitSignal = 128
)

// Runner invokes the engine as
//
//	<Executable> -env-file ENV -user-file USERS SCRIPT
//
// in a fresh directory under Workdir.
type Runner struct {
	Executable string
	// Timeout bounds a single run. Zero means no limit.
	Timeout time.Duration
	Workdir string
	// Keep leaves the run directory behind.
	Keep   bool
	Logger *slog.Logger
}

// Invocation is one script with the environment and home directories the
// engine should pretend exist.
type Invocation struct {
	Script string
	Env    map[string]string
	Users  map[string]string
}

type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
	// Dir is the run directory. It no longer exists unless Keep was set.
	Dir string
}

// Run executes inv. A non-zero exit is reported in the Result, not as an
// error; the error return is for runs that could not happen at all.
func (r *Runner) Run(ctx context.Context, inv Invocation) (*Result, error) {
	invariant.NotNil(ctx, "context")
	invariant.Precondition(r.Executable != "", "engine executable cannot be empty")

	dir, err := os.MkdirTemp(r.Workdir, "shtepper-")
	if err != nil {
		return nil, fmt.Errorf("creating run directory: %w", err)
	}
	if !r.Keep {
		defer func() { _ = os.RemoveAll(dir) }()
	}

	shell := filepath.Join(dir, "shell")
	envFile := filepath.Join(dir, "env")
	users := filepath.Join(dir, "users")
	for path, content := range map[string]string{
		shell:   NormalizeScript(inv.Script),
		envFile: assignments(inv.Env),
		users:   assignments(inv.Users),
	} {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", filepath.Base(path), err)
		}
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.Executable, "-env-file", envFile, "-user-file", users, shell)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// don't wait forever on grandchildren holding the pipes
	cmd.WaitDelay = time.Second

	r.logger().Debug("running engine", "executable", r.Executable, "dir", dir, "timeout", r.Timeout)

	start := time.Now()
	code, err := exitCode(ctx, cmd.Run())
	res := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: code,
		Duration: time.Since(start),
		Dir:      dir,
	}
	if err != nil {
		return nil, fmt.Errorf("running %s: %w", r.Executable, err)
	}

	r.logger().Debug("engine finished", "exit", res.ExitCode, "duration", res.Duration)
	return res, nil
}

// Document is the trace document for res: the engine's stdout when it
// succeeded, otherwise a one-record document carrying its stderr.
func (res *Result) Document() []byte {
	if res.ExitCode == 0 {
		return []byte(res.Stdout)
	}
	msg := res.Stderr
	if msg == "" {
		if res.ExitCode == ExitTimeout {
			msg = fmt.Sprintf("engine timed out after %s", res.Duration.Round(time.Millisecond))
		} else {
			msg = fmt.Sprintf("engine exited with status %d", res.ExitCode)
		}
	}
	doc, err := json.Marshal([]map[string]string{{"error": msg}})
	invariant.ExpectNoError(err, "marshalling error document")
	return doc
}

// NormalizeScript drops invalid UTF-8 and turns CRLF and lone CR line
// endings into LF.
func NormalizeScript(s string) string {
	s = strings.ToValidUTF8(s, "")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}

// assignments renders m as sorted key=value lines.
func assignments(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%s\n", k, m[k])
	}
	return b.String()
}

// exitCode maps the result of Run to an exit status. Cancellation and
// timeouts report ExitTimeout, death by signal ExitSignal plus the signal
// number; failing to start reports ExitNotFound along
// with the error.
func exitCode(ctx context.Context, err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	if ctx.Err() != nil {
		return ExitTimeout, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			return ExitSignal + int(ws.Signal()), nil
		}
		if exitErr.ExitCode() == -1 {
			return ExitSignal, nil
		}
		return exitErr.ExitCode(), nil
	}
	return ExitNotFound, err
}
