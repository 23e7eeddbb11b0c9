package stage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/boshu2/todo/internal/config"
	"github.com/boshu2/todo/internal/pipeline"
)

var fixedNow = time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC)

// testConfig is the default configuration with a fixed user.
func testConfig() *config.Config {
	cfg := config.Default()
	cfg.User = "tester"
	return cfg
}

// memEnv returns an Env over an in-memory filesystem rooted at /w holding
// the given files (path -> content).
func memEnv(t *testing.T, files map[string]string) Env {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		full := filepath.Join("/w", path)
		require.NoError(t, fs.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, afero.WriteFile(fs, full, []byte(content), 0o644))
	}
	require.NoError(t, fs.MkdirAll("/w", 0o755))
	return Env{
		Config: testConfig(),
		Fs:     fs,
		Root:   "/w",
		Now:    func() time.Time { return fixedNow },
	}
}

// dirEnv returns an Env over a temporary directory addressed with relative
// paths from ".", the way the CLI runs inside a working directory.
func dirEnv(t *testing.T, files map[string]string) (Env, string) {
	t.Helper()
	dir := t.TempDir()
	for path, content := range files {
		full := filepath.Join(dir, path)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
	return Env{
		Config: testConfig(),
		Fs:     afero.NewBasePathFs(afero.NewOsFs(), dir),
		Root:   ".",
		Now:    func() time.Time { return fixedNow },
	}, dir
}

// mkdir creates an empty directory inside a dirEnv tree.
func mkdir(t *testing.T, env Env, path string) {
	t.Helper()
	require.NoError(t, env.Fs.MkdirAll(path, 0o755))
}

// runStage runs the named stage from a fresh registry with input text.
func runStage(t *testing.T, env Env, name, input string, args ...string) (string, error) {
	t.Helper()
	s, ok := NewRegistry(env).Lookup(name)
	require.True(t, ok, "stage %q not registered", name)

	var out bytes.Buffer
	err := s.Run(context.Background(), strings.NewReader(input), &out, args)
	return out.String(), err
}

// runLine parses and runs a whole command line against env.
func runLine(t *testing.T, env Env, input string, args ...string) (string, error) {
	t.Helper()
	cmds, err := pipeline.Parse(args)
	require.NoError(t, err)

	var out bytes.Buffer
	err = pipeline.New(NewRegistry(env)).Run(context.Background(), strings.NewReader(input), &out, cmds)
	return out.String(), err
}

func lines(s ...string) string {
	if len(s) == 0 {
		return ""
	}
	return strings.Join(s, "\n") + "\n"
}
