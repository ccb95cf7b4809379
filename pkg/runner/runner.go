// Package runner starts external programs and unpacks archives in process.
package runner

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"sort"

	"github.com/arthur-debert/rxr/pkg/errors"
	"github.com/arthur-debert/rxr/pkg/logging"
)

// Spec describes one program invocation.
type Spec struct {
	Program string
	Args    []string
	Env     map[string]string
	Dir     string

	// Stdout and Stderr receive a copy of the program's output when set.
	Stdout io.Writer
	Stderr io.Writer
}

// Result is the outcome of a finished program.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the program exited with status zero.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Runner runs programs. A program that starts and exits non-zero is not an
// error; its exit code is reported in the Result.
type Runner interface {
	Run(ctx context.Context, spec Spec) (Result, error)
}

// Exec runs programs with os/exec.
type Exec struct{}

// NewExec returns a Runner backed by os/exec.
func NewExec() *Exec {
	return &Exec{}
}

// Run starts spec.Program and waits for it to exit. The environment is the
// process environment with spec.Env applied on top.
func (e *Exec) Run(ctx context.Context, spec Spec) (Result, error) {
	logger := logging.GetLogger("runner")
	logging.LogCommand(logger, spec.Program, spec.Args)

	cmd := exec.CommandContext(ctx, spec.Program, spec.Args...)
	cmd.Dir = spec.Dir
	cmd.Env = mergeEnv(os.Environ(), spec.Env)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = tee(&stdout, spec.Stdout)
	cmd.Stderr = tee(&stderr, spec.Stderr)

	err := cmd.Run()
	result := Result{Stdout: stdout.String(), Stderr: stderr.String()}

	if err != nil {
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			return result, errors.Wrapf(err, errors.ErrCommandExecute, "failed to run %s", spec.Program).
				WithDetail("program", spec.Program)
		}
		result.ExitCode = exitErr.ExitCode()
	}

	logger.Debug().
		Str("program", spec.Program).
		Int("exit_code", result.ExitCode).
		Msg("Command finished")
	return result, nil
}

func tee(buf *bytes.Buffer, w io.Writer) io.Writer {
	if w == nil {
		return buf
	}
	return io.MultiWriter(buf, w)
}

// mergeEnv applies overrides to a KEY=VALUE environment list. Overrides
// are appended in key order so the result is deterministic; later entries
// win for os/exec.
func mergeEnv(base []string, overrides map[string]string) []string {
	env := append([]string(nil), base...)
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = append(env, k+"="+overrides[k])
	}
	return env
}
