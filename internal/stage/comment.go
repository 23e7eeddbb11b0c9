package stage

import (
	"bufio"
	"context"
	"io"

	"github.com/boshu2/todo/internal/storage"
)

// Comment appends a comment block to every input issue file and passes the
// paths through unchanged.
type Comment struct {
	env   *Env
	store storage.Storage
}

func (c *Comment) Run(_ context.Context, in io.Reader, out io.Writer, args []string) error {
	opts := ParseCommentOptions(args, c.env.Config)

	lines, err := readLines(in)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(out)
	for _, path := range lines {
		err := c.store.AppendComment(path, storage.Comment{
			User:    opts.User,
			Time:    c.env.Now(),
			Message: opts.Message,
		})
		if err != nil {
			if ferr := w.Flush(); ferr != nil {
				return ferr
			}
			return err
		}
		c.env.Logf("comment: appended to %s\n", path)
		//nolint:errcheck // bufio errors are sticky and surface on Flush
		w.WriteString(path + "\n")
	}
	return w.Flush()
}
