// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package process runs the external translation tools.

A [Runner] executes one [Command] to completion. [ExecRunner] merges the
child's standard output and error into one stream and forwards every
completed line as soon as it is read, so long-running tools report progress
incrementally. A non-zero exit becomes a [*ProcessFailure].

Commands never change the working directory of the calling process: the
child is started in [Command.Dir] instead, so sibling invocations always see
the original directory regardless of how a previous one ended.
*/
package process

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

var (
	ErrEmptyCommand = errors.New("empty command")
	ErrStart        = errors.New("failed to start command")
)

// Command is a single external tool invocation.
type Command struct {
	// Args is the argument vector; Args[0] is the program.
	Args []string
	// Dir is the working directory of the child. Empty means the caller's.
	Dir string
	// Env overrides entries of the inherited environment.
	Env map[string]string
}

// String renders the argument vector for logs and errors.
func (c Command) String() string {
	return strings.Join(c.Args, " ")
}

// Runner executes commands.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// ProcessFailure reports a command that exited with a non-zero status.
type ProcessFailure struct {
	Args     []string
	ExitCode int
}

func (e *ProcessFailure) Error() string {
	return fmt.Sprintf("command %q exited with status %d", strings.Join(e.Args, " "), e.ExitCode)
}

// ExecRunner runs commands as child processes.
type ExecRunner struct {
	// Out receives each line of combined output. Nil discards it.
	Out io.Writer
	// Logger records invocations and, at debug level, each output line.
	Logger zerolog.Logger
}

// NewExecRunner returns an ExecRunner that streams tool output to out.
func NewExecRunner(out io.Writer, logger zerolog.Logger) *ExecRunner {
	return &ExecRunner{
		Out:    out,
		Logger: logger.With().Str("sys", "process").Logger(),
	}
}

// Run starts cmd and blocks until it exits, draining its output on the
// calling goroutine.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) error {
	if len(cmd.Args) == 0 {
		return ErrEmptyCommand
	}

	out := r.Out
	if out == nil {
		out = io.Discard
	}

	tool := cmd.Args[0]

	r.Logger.Info().
		Str("tool", tool).
		Strs("args", cmd.Args).
		Str("dir", cmd.Dir).
		Msg("Running command")

	c := exec.CommandContext(ctx, tool, cmd.Args[1:]...) // #nosec G204 -- argument vectors are built by package pipeline
	c.Dir = cmd.Dir
	c.Env = mergeEnv(os.Environ(), cmd.Env)

	pr, pw, err := os.Pipe()
	if err != nil {
		return fmt.Errorf("failed to create output pipe: %w", err)
	}
	defer pr.Close()

	c.Stdout = pw
	c.Stderr = pw

	if err := c.Start(); err != nil {
		_ = pw.Close()

		return fmt.Errorf("%w %q: %w", ErrStart, cmd.String(), err)
	}

	// The child holds its own copy of the write end; ours must be closed for
	// the reader to see EOF once the child exits.
	_ = pw.Close()

	scanErr := r.stream(pr, out, tool)

	waitErr := c.Wait()
	if waitErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("command %q abandoned: %w", cmd.String(), ctxErr)
		}

		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			failure := &ProcessFailure{Args: append([]string(nil), cmd.Args...), ExitCode: exitErr.ExitCode()}

			r.Logger.Error().
				Str("tool", tool).
				Int("exit_code", failure.ExitCode).
				Msg("Command failed")

			return failure
		}

		return fmt.Errorf("failed waiting for %q: %w", cmd.String(), waitErr)
	}

	if scanErr != nil {
		return fmt.Errorf("failed reading output of %q: %w", cmd.String(), scanErr)
	}

	r.Logger.Debug().Str("tool", tool).Msg("Command finished")

	return nil
}

// stream copies lines from src to dst as they arrive. Lines have no length
// limit; a final line without a newline is still forwarded.
func (r *ExecRunner) stream(src io.Reader, dst io.Writer, tool string) error {
	reader := bufio.NewReader(src)

	var writeErr error

	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			line = strings.TrimRight(line, "\r\n")

			r.Logger.Debug().Str("tool", tool).Msg(line)

			if writeErr == nil {
				_, writeErr = fmt.Fprintln(dst, line)
			}
		}

		if errors.Is(err, io.EOF) {
			return writeErr
		}

		if err != nil {
			// Keep draining so the child never blocks on a full pipe.
			_, _ = io.Copy(io.Discard, src)

			return err
		}
	}
}

// mergeEnv returns base with overrides applied, overrides in key order.
func mergeEnv(base []string, overrides map[string]string) []string {
	if len(overrides) == 0 {
		return nil // nil inherits the parent environment
	}

	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	out := make([]string, 0, len(base)+len(overrides))

	for _, kv := range base {
		name, _, _ := strings.Cut(kv, "=")
		if _, ok := overrides[name]; ok {
			continue
		}

		out = append(out, kv)
	}

	for _, k := range keys {
		out = append(out, k+"="+overrides[k])
	}

	return out
}
