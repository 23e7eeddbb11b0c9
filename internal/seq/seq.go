// Package seq allocates issue identifiers from a counter file.
//
// The counter is read, incremented and rewritten through a single open
// handle. There is no locking: two processes allocating from the same file at
// the same moment can receive the same value. That is accepted for a
// single-user tool.
package seq

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

// ErrMalformedCounter is returned when the counter file does not hold an integer.
var ErrMalformedCounter = errors.New("malformed sequence counter")

// Allocator hands out identifiers from a counter file.
type Allocator struct {
	fs    afero.Fs
	file  string
	local bool
}

// New returns an Allocator reading file. When local is set the file is first
// looked up inside the project root and then in the invocation directory;
// otherwise file is used as given.
func New(fs afero.Fs, file string, local bool) *Allocator {
	return &Allocator{fs: fs, file: file, local: local}
}

// Resolve returns the counter file path that NextID would use for root, and
// whether it exists.
func (a *Allocator) Resolve(root string) (string, bool, error) {
	candidates := []string{a.file}
	if a.local {
		candidates = []string{filepath.Join(root, a.file), a.file}
	}

	for _, path := range candidates {
		ok, err := afero.Exists(a.fs, path)
		if err != nil {
			return "", false, fmt.Errorf("stat %s: %w", path, err)
		}
		if ok {
			return path, true, nil
		}
	}
	return "", false, nil
}

// NextID returns the current counter value and stores value+1. The second
// result is false when no counter file exists; callers then fall back to a
// non-numeric identifier.
func (a *Allocator) NextID(root string) (int, bool, error) {
	path, ok, err := a.Resolve(root)
	if err != nil || !ok {
		return 0, false, err
	}

	f, err := a.fs.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return 0, false, fmt.Errorf("open counter: %w", err)
	}
	defer func() {
		_ = f.Close() //nolint:errcheck // write errors are reported below
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		return 0, false, fmt.Errorf("read counter %s: %w", path, err)
	}

	value, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, false, fmt.Errorf("%w: %s contains %q", ErrMalformedCounter, path, strings.TrimSpace(string(data)))
	}

	if err := f.Truncate(0); err != nil {
		return 0, false, fmt.Errorf("truncate counter %s: %w", path, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return 0, false, fmt.Errorf("seek counter %s: %w", path, err)
	}
	if _, err := f.WriteString(strconv.Itoa(value + 1)); err != nil {
		return 0, false, fmt.Errorf("write counter %s: %w", path, err)
	}
	if err := f.Sync(); err != nil {
		return 0, false, fmt.Errorf("sync counter %s: %w", path, err)
	}

	return value, true, nil
}
