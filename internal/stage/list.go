package stage

import (
	"context"
	"io"
	"slices"

	"github.com/boshu2/todo/internal/scan"
)

// List writes issue file paths found under the root, or project roots when
// any argument is a configured projects alias. Input is ignored.
type List struct {
	env     *Env
	scanner *scan.Scanner
}

func (l *List) Run(_ context.Context, _ io.Reader, out io.Writer, args []string) error {
	var (
		paths []string
		err   error
	)
	if l.projectsMode(args) {
		l.env.Logf("list: projects under %s\n", l.env.Root)
		paths, err = l.scanner.Projects(l.env.Root)
	} else {
		l.env.Logf("list: issues under %s\n", l.env.Root)
		paths, err = l.scanner.Issues(l.env.Root)
	}
	if err != nil {
		return err
	}
	return writeLines(out, paths)
}

func (l *List) projectsMode(args []string) bool {
	for _, arg := range args {
		if slices.Contains(l.env.Config.ProjectAliases, arg) {
			return true
		}
	}
	return false
}
