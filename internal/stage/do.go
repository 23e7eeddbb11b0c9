package stage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// Do runs an external command whose arguments are the stage arguments
// followed by every input line, and waits for it. The command's output is the
// stage output. Its exit status is not propagated: a command that runs and
// fails does not fail the pipeline. A command that cannot be started does.
type Do struct {
	env *Env
}

func (d *Do) Run(ctx context.Context, in io.Reader, out io.Writer, args []string) error {
	argv := append([]string(nil), args...)

	// Reading lines from an interactive terminal would wait for the user to
	// type paths; the terminal goes to the child instead.
	if !d.isTerminal(in) {
		lines, err := readLines(in)
		if err != nil {
			return err
		}
		argv = append(argv, lines...)
	}
	if len(argv) == 0 {
		return ErrMissingCommand
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = out
	cmd.Stderr = d.env.Stderr
	if d.env.Terminal != nil {
		cmd.Stdin = d.env.Terminal
	}

	d.env.Logf("do: %s\n", quoteArgs(argv))
	err := cmd.Run()

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		d.env.Logf("do: %s exited with status %d (ignored)\n", argv[0], exitErr.ExitCode())
		return nil
	}
	if err != nil {
		return fmt.Errorf("run %s: %w", argv[0], err)
	}
	return nil
}

func (d *Do) isTerminal(in io.Reader) bool {
	f, ok := in.(*os.File)
	return ok && d.env.Terminal != nil && f == d.env.Terminal
}

// quoteArgs renders argv as a bash command line.
func quoteArgs(argv []string) string {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		q, err := syntax.Quote(arg, syntax.LangBash)
		if err != nil {
			q = strconv.Quote(arg)
		}
		quoted[i] = q
	}
	return strings.Join(quoted, " ")
}
