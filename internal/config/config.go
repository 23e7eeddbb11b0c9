// Package config provides configuration management for todo.
// Configuration is loaded from (highest to lowest priority):
// 1. Environment variables (TODO_*)
// 2. Project config (.todo/config.yaml in cwd, or $TODO_CONFIG)
// 3. Home config (~/.todo/config.yaml)
// 4. Defaults
//
// The result is loaded once at process start and passed explicitly to every
// component that needs it.
package config

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all todo configuration.
type Config struct {
	// IssueDirs are the marker directory names, tried in order.
	// Default: [issues]
	IssueDirs []string `yaml:"issue_dirs" json:"issue_dirs"`

	// ProjectAliases are the list arguments that switch to project listing.
	// Default: [p, prj, project, projects]
	ProjectAliases []string `yaml:"project_aliases" json:"project_aliases"`

	// Priority is the default priority prefix of new issue files.
	Priority string `yaml:"priority" json:"priority"`

	// Scope is the default sub-directory below the marker for new issues.
	Scope string `yaml:"scope" json:"scope"`

	// Extension is appended to new issue file names.
	Extension string `yaml:"extension" json:"extension"`

	// Separator joins priority, id and name in issue file names.
	Separator string `yaml:"separator" json:"separator"`

	// SeqFile is the sequence counter file name.
	SeqFile string `yaml:"seq_file" json:"seq_file"`

	// SeqLocal resolves SeqFile inside the project first. Nil means unset.
	SeqLocal *bool `yaml:"seq_local" json:"seq_local"`

	// User is the display name written into comments and fallback ids.
	User string `yaml:"user" json:"user"`

	// Verbose enables diagnostic output on stderr.
	Verbose bool `yaml:"verbose" json:"verbose"`
}

// Default config values (used in resolution and validation).
const (
	defaultPriority  = "B"
	defaultExtension = ".md"
	defaultSeparator = "."
	defaultSeqFile   = ".sequence"
)

var (
	defaultIssueDirs      = []string{"issues"}
	defaultProjectAliases = []string{"p", "prj", "project", "projects"}
)

// Default returns the default configuration.
func Default() *Config {
	local := true
	return &Config{
		IssueDirs:      append([]string(nil), defaultIssueDirs...),
		ProjectAliases: append([]string(nil), defaultProjectAliases...),
		Priority:       defaultPriority,
		Scope:          "",
		Extension:      defaultExtension,
		Separator:      defaultSeparator,
		SeqFile:        defaultSeqFile,
		SeqLocal:       &local,
		User:           currentUser(),
		Verbose:        false,
	}
}

// LocalSequence reports whether the counter file is looked up in the project first.
func (c *Config) LocalSequence() bool {
	return c.SeqLocal == nil || *c.SeqLocal
}

// Load loads configuration with proper precedence.
// Priority: env > project > home > defaults
func Load() (*Config, error) {
	l, err := loadLayers()
	if err != nil {
		return nil, err
	}
	return l.merged(), nil
}

// layers holds each configuration source as read, before merging. A nil
// file layer means the file does not exist.
type layers struct {
	home    *Config
	project *Config
	env     *Config
}

func loadLayers() (layers, error) {
	home, err := loadFromPath(homeConfigPath())
	if err != nil {
		return layers{}, err
	}
	project, err := loadFromPath(projectConfigPath())
	if err != nil {
		return layers{}, err
	}
	return layers{home: home, project: project, env: applyEnv(&Config{})}, nil
}

// merged applies the layers over the defaults, lowest priority first.
func (l layers) merged() *Config {
	cfg := Default()
	for _, layer := range []*Config{l.home, l.project, l.env} {
		if layer != nil {
			cfg = merge(cfg, layer)
		}
	}
	cfg.SeqFile = expandHome(cfg.SeqFile)
	return cfg
}

// homeConfigPath returns the home config path.
func homeConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".todo", "config.yaml")
}

// projectConfigPath returns the project config path.
func projectConfigPath() string {
	if override := strings.TrimSpace(os.Getenv("TODO_CONFIG")); override != "" {
		return override
	}
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return filepath.Join(cwd, ".todo", "config.yaml")
}

// loadFromPath loads config from a YAML file. A missing file is not an error.
func loadFromPath(path string) (*Config, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return &cfg, nil
}

// applyEnv applies environment variable overrides.
func applyEnv(cfg *Config) *Config {
	if v := os.Getenv("TODO_ISSUE_DIRS"); v != "" {
		cfg.IssueDirs = splitList(v)
	}
	if v := os.Getenv("TODO_PRIORITY"); v != "" {
		cfg.Priority = v
	}
	if v := os.Getenv("TODO_SCOPE"); v != "" {
		cfg.Scope = v
	}
	if v := os.Getenv("TODO_EXTENSION"); v != "" {
		cfg.Extension = v
	}
	if v := os.Getenv("TODO_SEPARATOR"); v != "" {
		cfg.Separator = v
	}
	if v := os.Getenv("TODO_SEQ_FILE"); v != "" {
		cfg.SeqFile = v
	}
	if v, err := strconv.ParseBool(os.Getenv("TODO_SEQ_LOCAL")); err == nil {
		cfg.SeqLocal = &v
	}
	if v := os.Getenv("TODO_USER"); v != "" {
		cfg.User = v
	}
	if os.Getenv("TODO_VERBOSE") == "true" || os.Getenv("TODO_VERBOSE") == "1" {
		cfg.Verbose = true
	}
	return cfg
}

// mergeStr overwrites dst with src when src is non-empty.
func mergeStr(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

// mergeList overwrites dst with src when src has entries.
func mergeList(dst *[]string, src []string) {
	if len(src) > 0 {
		*dst = append([]string(nil), src...)
	}
}

// merge merges src into dst, with src values taking precedence.
func merge(dst, src *Config) *Config {
	mergeList(&dst.IssueDirs, src.IssueDirs)
	mergeList(&dst.ProjectAliases, src.ProjectAliases)
	mergeStr(&dst.Priority, src.Priority)
	mergeStr(&dst.Scope, src.Scope)
	mergeStr(&dst.Extension, src.Extension)
	mergeStr(&dst.Separator, src.Separator)
	mergeStr(&dst.SeqFile, src.SeqFile)
	mergeStr(&dst.User, src.User)
	if src.SeqLocal != nil {
		v := *src.SeqLocal
		dst.SeqLocal = &v
	}
	if src.Verbose {
		dst.Verbose = true
	}
	return dst
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// currentUser returns the current system username.
func currentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "unknown"
}

// Source represents where a config value came from.
type Source string

const (
	SourceDefault Source = "default"
	SourceHome    Source = "~/.todo/config.yaml"
	SourceProject Source = ".todo/config.yaml"
	SourceEnv     Source = "environment"
	SourceRuntime Source = "runtime"
)

// Setting is one resolved configuration value with its origin.
type Setting struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Source Source `json:"source"`
}

// field describes how a key is read from a config layer and the environment.
type field struct {
	key string
	env string
	get func(*Config) string
}

var fields = []field{
	{"issue_dirs", "TODO_ISSUE_DIRS", func(c *Config) string { return strings.Join(c.IssueDirs, ",") }},
	{"project_aliases", "", func(c *Config) string { return strings.Join(c.ProjectAliases, ",") }},
	{"priority", "TODO_PRIORITY", func(c *Config) string { return c.Priority }},
	{"scope", "TODO_SCOPE", func(c *Config) string { return c.Scope }},
	{"extension", "TODO_EXTENSION", func(c *Config) string { return c.Extension }},
	{"separator", "TODO_SEPARATOR", func(c *Config) string { return c.Separator }},
	{"seq_file", "TODO_SEQ_FILE", func(c *Config) string { return c.SeqFile }},
	{"seq_local", "TODO_SEQ_LOCAL", func(c *Config) string {
		if c.SeqLocal == nil {
			return ""
		}
		return strconv.FormatBool(*c.SeqLocal)
	}},
	{"user", "TODO_USER", func(c *Config) string { return c.User }},
	{"verbose", "TODO_VERBOSE", func(c *Config) string {
		if c.Verbose {
			return "true"
		}
		return ""
	}},
}

// resolveStringField resolves a string through the precedence chain.
func resolveStringField(home, project, env, def string) Setting {
	result := Setting{Value: def, Source: SourceDefault}
	if home != "" {
		result = Setting{Value: home, Source: SourceHome}
	}
	if project != "" {
		result = Setting{Value: project, Source: SourceProject}
	}
	if env != "" {
		result = Setting{Value: env, Source: SourceEnv}
	}
	return result
}

// Resolve loads the configuration and returns every key with its effective
// value and source.
func Resolve() ([]Setting, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	return ResolveFrom(cfg)
}

// ResolveFrom returns every key of cfg with the layer it came from. Values
// are always taken from cfg. A value that no layer produces was changed after
// loading and is reported as SourceRuntime.
func ResolveFrom(cfg *Config) ([]Setting, error) {
	l, err := loadLayers()
	if err != nil {
		return nil, err
	}
	layered := l.merged()
	defaults := Default()

	settings := make([]Setting, 0, len(fields))
	for _, f := range fields {
		var home, project, env string
		if l.home != nil {
			home = f.get(l.home)
		}
		if l.project != nil {
			project = f.get(l.project)
		}
		if f.env != "" {
			env = f.get(l.env)
		}

		s := resolveStringField(home, project, env, f.get(defaults))
		s.Key = f.key
		s.Value = f.get(cfg)
		if s.Value != f.get(layered) {
			s.Source = SourceRuntime
		}
		if f.key == "verbose" && s.Value == "" {
			s.Value = "false"
		}
		settings = append(settings, s)
	}
	return settings, nil
}
