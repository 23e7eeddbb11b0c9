// Package issue models issue file locations: the project/scope/name triple
// derived from a path, and the file name composed for a new issue.
package issue

import (
	"errors"
	"path/filepath"
	"strings"
)

// ErrNotIssuePath is returned when a path does not contain any marker directory.
var ErrNotIssuePath = errors.New("not an issue path")

// DefaultMarkers is the marker directory set used when none is configured.
var DefaultMarkers = []string{"issues"}

// Path is the location of an issue file relative to its project.
//
// For "root/issues/a/b/name.md" the project is "root", the scope "a/b" and
// the name "name.md". Scope is empty for files directly under the marker.
type Path struct {
	Project string
	Scope   string
	Name    string
}

// Parse splits p into project, scope and name using the first marker (in the
// given order) that structurally matches. Later markers are not consulted
// once one matches, even if they would also match.
func Parse(p string, markers []string) (Path, bool) {
	p = strings.TrimPrefix(filepath.ToSlash(p), "./")

	for _, marker := range markers {
		if marker == "" {
			continue
		}

		var index, start int
		if strings.HasPrefix(p, marker+"/") {
			start = len(marker) + 1
		} else {
			sep := "/" + marker + "/"
			index = strings.Index(p, sep)
			if index < 0 {
				continue
			}
			start = index + len(sep)
		}

		last := strings.LastIndex(p, "/")
		var scope string
		if last > start {
			scope = p[start:last]
		}
		return Path{
			Project: p[:index],
			Scope:   scope,
			Name:    p[last+1:],
		}, true
	}

	return Path{}, false
}

// Join rebuilds the slash-separated path using marker as the issues directory.
func (p Path) Join(marker string) string {
	parts := make([]string, 0, 4)
	if p.Project != "" {
		parts = append(parts, p.Project)
	}
	parts = append(parts, marker)
	if p.Scope != "" {
		parts = append(parts, p.Scope)
	}
	parts = append(parts, p.Name)
	return strings.Join(parts, "/")
}

// FileName composes "<priority><sep><id><sep><name><ext>", dropping empty
// parts so no separator is doubled.
func FileName(priority, id, name, sep, ext string) string {
	var parts []string
	for _, part := range []string{priority, id, name} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, sep) + ext
}
