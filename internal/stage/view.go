package stage

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/boshu2/todo/internal/issue"
)

// View writes "project<TAB>scope<TAB>name" for each input path. A line that
// is not an issue path stops the stage after flushing what was already
// written.
type View struct {
	env *Env
}

func (v *View) Run(_ context.Context, in io.Reader, out io.Writer, _ []string) error {
	lines, err := readLines(in)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(out)
	for _, line := range lines {
		p, ok := issue.Parse(line, v.env.Config.IssueDirs)
		if !ok {
			if err := w.Flush(); err != nil {
				return err
			}
			return fmt.Errorf("%w: %q", issue.ErrNotIssuePath, line)
		}
		//nolint:errcheck // bufio errors are sticky and surface on Flush
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.Project, p.Scope, p.Name)
	}
	return w.Flush()
}
