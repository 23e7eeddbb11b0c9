package stage

import (
	"context"
	"io"
	"slices"
)

// Sort reads the whole input and writes it back in ascending byte order.
// Unlike the other stages it cannot produce anything before its input ends.
type Sort struct{}

func (Sort) Run(_ context.Context, in io.Reader, out io.Writer, _ []string) error {
	lines, err := readLines(in)
	if err != nil {
		return err
	}
	slices.Sort(lines)
	return writeLines(out, lines)
}
