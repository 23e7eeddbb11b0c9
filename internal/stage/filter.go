package stage

import (
	"context"
	"fmt"
	"io"
	"regexp"
)

// Filter keeps the input lines that contain a match of the first argument,
// a regular expression. Without arguments every line passes unchanged.
type Filter struct{}

func (Filter) Run(_ context.Context, in io.Reader, out io.Writer, args []string) error {
	var re *regexp.Regexp
	if len(args) > 0 {
		var err error
		if re, err = regexp.Compile(args[0]); err != nil {
			return fmt.Errorf("%w %q: %v", ErrBadPattern, args[0], err)
		}
	}

	lines, err := readLines(in)
	if err != nil {
		return err
	}

	if re == nil {
		return writeLines(out, lines)
	}
	kept := lines[:0]
	for _, line := range lines {
		if re.MatchString(line) {
			kept = append(kept, line)
		}
	}
	return writeLines(out, kept)
}
