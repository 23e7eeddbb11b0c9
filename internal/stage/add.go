package stage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/boshu2/todo/internal/issue"
	"github.com/boshu2/todo/internal/pipeline"
	"github.com/boshu2/todo/internal/scan"
	"github.com/boshu2/todo/internal/seq"
	"github.com/boshu2/todo/internal/storage"
)

// Add creates one empty issue file and writes its path. Input is ignored.
//
// The file is placed at <project>/<marker>/[<scope>/]<name>, where project is
// the first sorted project root matching the project: pattern (or the scan
// root) and marker is the first marker directory present there.
type Add struct {
	env      *Env
	registry *Registry
	scanner  *scan.Scanner
	alloc    *seq.Allocator
	store    storage.Storage
}

func (a *Add) Run(ctx context.Context, _ io.Reader, out io.Writer, args []string) error {
	cfg := a.env.Config
	opts := ParseAddOptions(args, cfg)
	if strings.ContainsAny(opts.Name, "/"+string(filepath.Separator)) {
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, opts.Name)
	}
	if escapesDir(opts.Scope) {
		return fmt.Errorf("%w: scope %q leaves the issues directory", ErrInvalidName, opts.Scope)
	}

	root := a.env.Root
	if opts.Project != "" {
		var err error
		if root, err = a.findProject(ctx, opts.Project); err != nil {
			return err
		}
	}

	marker, ok, err := a.scanner.MarkerDir(root)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w under %s", ErrNoIssuesDir, root)
	}

	id, err := a.nextID(root, opts)
	if err != nil {
		return err
	}

	name := issue.FileName(opts.Priority, id, opts.Name, cfg.Separator, cfg.Extension)
	path := filepath.Join(root, marker, opts.Scope, name)
	if err := a.store.Create(path); err != nil {
		return err
	}
	a.env.Logf("add: created %s\n", path)

	return writeLines(out, []string{path})
}

// escapesDir reports whether the relative path rel, once cleaned, climbs
// above the directory it is joined to.
func escapesDir(rel string) bool {
	if rel == "" {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(filepath.Clean(rel)), "/") {
		if part == ".." {
			return true
		}
	}
	return false
}

// findProject runs "list projects | filter pattern | sort" and returns the
// first resulting line.
func (a *Add) findProject(ctx context.Context, pattern string) (string, error) {
	var buf bytes.Buffer
	err := pipeline.New(a.registry).Run(ctx, nil, &buf, []pipeline.Command{
		{Name: "list", Args: []string{a.projectsAlias()}},
		{Name: "filter", Args: []string{pattern}},
		{Name: "sort"},
	})
	if err != nil {
		return "", err
	}

	lines, err := readLines(&buf)
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "", fmt.Errorf("%w: %q", ErrProjectNotFound, pattern)
	}
	a.env.Logf("add: project %q resolved to %s\n", pattern, lines[0])
	return lines[0], nil
}

func (a *Add) projectsAlias() string {
	if aliases := a.env.Config.ProjectAliases; len(aliases) > 0 {
		return aliases[0]
	}
	return "projects"
}

// nextID returns the explicit id, the next counter value, or "<user>_<unix
// time>" when no counter file exists.
func (a *Add) nextID(root string, opts AddOptions) (string, error) {
	if opts.ID != "" {
		return opts.ID, nil
	}

	n, ok, err := a.alloc.NextID(root)
	if err != nil {
		return "", err
	}
	if ok {
		a.env.Logf("add: allocated id %d\n", n)
		return strconv.Itoa(n), nil
	}

	id := fmt.Sprintf("%s_%d", opts.User, a.env.Now().Unix())
	a.env.Logf("add: no sequence file, using %s\n", id)
	return id, nil
}
