// Package stage implements the built-in pipeline stages (list, view, filter,
// sort, add, comment, do, config) and the registry that maps stage names and
// aliases to them.
package stage

import (
	"io"
	"os"
	"time"

	"github.com/spf13/afero"

	"github.com/boshu2/todo/internal/config"
	"github.com/boshu2/todo/internal/pipeline"
	"github.com/boshu2/todo/internal/scan"
	"github.com/boshu2/todo/internal/seq"
	"github.com/boshu2/todo/internal/storage"
)

// Env is everything the stages need from the outside world.
type Env struct {
	// Config is the resolved configuration.
	Config *config.Config

	// Fs is the filesystem holding the project tree (default: OS filesystem).
	Fs afero.Fs

	// Root is the directory list scans and add targets without a project
	// pattern (default: ".").
	Root string

	// Now returns the current time (default: time.Now).
	Now func() time.Time

	// Terminal is the interactive terminal handed to commands run by the do
	// stage, or nil when the process is not attached to one.
	Terminal *os.File

	// Stderr receives the standard error of commands run by the do stage
	// (default: os.Stderr).
	Stderr io.Writer

	// Logf receives verbose diagnostics (default: discard).
	Logf func(format string, args ...any)
}

func (e *Env) withDefaults() {
	if e.Config == nil {
		e.Config = config.Default()
	}
	if e.Fs == nil {
		e.Fs = afero.NewOsFs()
	}
	if e.Root == "" {
		e.Root = "."
	}
	if e.Now == nil {
		e.Now = time.Now
	}
	if e.Stderr == nil {
		e.Stderr = os.Stderr
	}
	if e.Logf == nil {
		e.Logf = func(string, ...any) {}
	}
}

// Entry describes one registered stage for help output.
type Entry struct {
	Names []string
	Short string
}

// Registry maps stage names and aliases to stages. It implements
// pipeline.Resolver.
type Registry struct {
	stages  map[string]pipeline.Stage
	entries []Entry
}

// NewRegistry returns a registry holding every built-in stage bound to env.
func NewRegistry(env Env) *Registry {
	env.withDefaults()
	cfg := env.Config

	r := &Registry{stages: make(map[string]pipeline.Stage)}
	scanner := scan.New(env.Fs, cfg.IssueDirs)
	store := storage.NewFileStorage(storage.WithFs(env.Fs))

	r.Register(&List{env: &env, scanner: scanner},
		"List issue files, or project roots with a projects argument", "list", "l")
	r.Register(&View{env: &env},
		"Show project, scope and name of each input path", "view", "v")
	r.Register(&Filter{},
		"Keep input lines matching a regular expression", "filter", "f")
	r.Register(&Sort{},
		"Sort input lines", "sort", "s")
	r.Register(&Add{
		env:      &env,
		registry: r,
		scanner:  scanner,
		alloc:    seq.New(env.Fs, cfg.SeqFile, cfg.LocalSequence()),
		store:    store,
	}, "Create a new issue file", "add", "a")
	r.Register(&Comment{env: &env, store: store},
		"Append a comment to each input issue", "comment", "c")
	r.Register(&Do{env: &env},
		"Run a command with input lines as extra arguments", "do", "d", "util")
	r.Register(&Config{env: &env},
		"Show the resolved configuration", "config")

	return r
}

// Register adds s under every given name. Later registrations replace
// earlier ones with the same name.
func (r *Registry) Register(s pipeline.Stage, short string, names ...string) {
	for _, name := range names {
		r.stages[name] = s
	}
	r.entries = append(r.entries, Entry{Names: names, Short: short})
}

// Lookup returns the stage registered under name.
func (r *Registry) Lookup(name string) (pipeline.Stage, bool) {
	s, ok := r.stages[name]
	return s, ok
}

// Entries lists registered stages in registration order.
func (r *Registry) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}
