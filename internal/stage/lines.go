package stage

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// maxLineSize bounds a single input line.
const maxLineSize = 1 << 20

// readLines reads all of in, one record per line, with trailing whitespace
// removed. A nil reader yields no lines.
func readLines(in io.Reader) ([]string, error) {
	if in == nil {
		return nil, nil
	}

	var lines []string
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		lines = append(lines, strings.TrimRightFunc(sc.Text(), unicode.IsSpace))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return lines, nil
}

// writeLines writes each line followed by a newline.
func writeLines(out io.Writer, lines []string) error {
	w := bufio.NewWriter(out)
	for _, line := range lines {
		//nolint:errcheck // bufio errors are sticky and surface on Flush
		w.WriteString(line)
		//nolint:errcheck // bufio errors are sticky and surface on Flush
		w.WriteByte('\n')
	}
	return w.Flush()
}
