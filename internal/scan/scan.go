// Package scan walks a directory tree looking for issue marker directories.
//
// Both walks are depth-first and emit in directory-listing order at each
// level. Nothing is sorted globally; ordering is the job of the sort stage.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/afero"
)

// Scanner finds issue files and project roots on a filesystem.
type Scanner struct {
	fs      afero.Fs
	markers []string
}

// New returns a Scanner that treats directories named after any of markers
// as issue directories.
func New(fs afero.Fs, markers []string) *Scanner {
	return &Scanner{fs: fs, markers: markers}
}

// IsMarker reports whether name is a configured marker directory name.
func (s *Scanner) IsMarker(name string) bool {
	return slices.Contains(s.markers, name)
}

// Issues returns every regular file located anywhere below a marker
// directory under root. Once a marker has been entered, all descendants count
// as issues, including those below nested marker directories.
func (s *Scanner) Issues(root string) ([]string, error) {
	var found []string
	if err := s.walkIssues(root, false, &found); err != nil {
		return nil, err
	}
	return found, nil
}

func (s *Scanner) walkIssues(dir string, inIssues bool, found *[]string) error {
	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return fmt.Errorf("read dir %s: %w", dir, err)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		switch {
		case entry.IsDir():
			if err := s.walkIssues(path, inIssues || s.IsMarker(entry.Name()), found); err != nil {
				return err
			}
		case inIssues && entry.Mode().IsRegular():
			*found = append(*found, path)
		}
	}
	return nil
}

// Projects returns every directory under root (root included) that directly
// contains a marker directory. Marker directories themselves are not
// descended into, and a directory with several markers is reported once.
func (s *Scanner) Projects(root string) ([]string, error) {
	var found []string
	if err := s.walkProjects(root, &found); err != nil {
		return nil, err
	}
	return found, nil
}

func (s *Scanner) walkProjects(dir string, found *[]string) error {
	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return fmt.Errorf("read dir %s: %w", dir, err)
	}

	reported := false
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if s.IsMarker(entry.Name()) {
			if !reported {
				*found = append(*found, dir)
				reported = true
			}
			continue
		}
		if err := s.walkProjects(filepath.Join(dir, entry.Name()), found); err != nil {
			return err
		}
	}
	return nil
}

// MarkerDir returns the name of the first marker directory found directly
// under root, in listing order.
func (s *Scanner) MarkerDir(root string) (string, bool, error) {
	entries, err := afero.ReadDir(s.fs, root)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read dir %s: %w", root, err)
	}

	for _, entry := range entries {
		if entry.IsDir() && s.IsMarker(entry.Name()) {
			return entry.Name(), true, nil
		}
	}
	return "", false, nil
}
