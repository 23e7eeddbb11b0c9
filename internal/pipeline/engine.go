package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrCommandNotFound is returned when a stage name has no registered stage.
var ErrCommandNotFound = errors.New("command not found")

// Stage is one step of a pipeline. It reads line-oriented input from in,
// writes line-oriented output to out, and must not retain either after
// returning.
type Stage interface {
	Run(ctx context.Context, in io.Reader, out io.Writer, args []string) error
}

// StageFunc adapts a function to the Stage interface.
type StageFunc func(ctx context.Context, in io.Reader, out io.Writer, args []string) error

// Run calls f.
func (f StageFunc) Run(ctx context.Context, in io.Reader, out io.Writer, args []string) error {
	return f(ctx, in, out, args)
}

// Resolver looks stages up by name or alias.
type Resolver interface {
	Lookup(name string) (Stage, bool)
}

// Engine executes parsed commands against a Resolver.
type Engine struct {
	resolver Resolver
}

// New returns an Engine resolving stage names through r.
func New(r Resolver) *Engine {
	return &Engine{resolver: r}
}

// Run executes cmds in order. Stage i reads in when i is 0 and the buffered
// output of stage i-1 otherwise; the last stage writes out.
//
// An unknown stage name stops the run: "Command not found: <name>" is written
// to out and ErrCommandNotFound returned. Stages that already ran keep their
// side effects. Any stage error likewise aborts the remaining stages.
func (e *Engine) Run(ctx context.Context, in io.Reader, out io.Writer, cmds []Command) error {
	input := in
	for i, cmd := range cmds {
		stage, ok := e.resolver.Lookup(cmd.Name)
		if !ok {
			//nolint:errcheck // best-effort report; the error below carries the same information
			fmt.Fprintf(out, "Command not found: %s\n", cmd.Name)
			return fmt.Errorf("%w: %s", ErrCommandNotFound, cmd.Name)
		}

		var (
			output io.Writer = out
			buf    *bytes.Buffer
		)
		if i < len(cmds)-1 {
			buf = &bytes.Buffer{}
			output = buf
		}

		if err := stage.Run(ctx, input, output, cmd.Args); err != nil {
			return fmt.Errorf("%s: %w", cmd.Name, err)
		}

		if buf != nil {
			input = buf
		}
	}
	return nil
}
