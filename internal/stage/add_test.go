package stage

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boshu2/todo/internal/seq"
	"github.com/boshu2/todo/internal/storage"
)

func TestAdd_CreatesIssueFile(t *testing.T) {
	env, dir := dirEnv(t, nil)
	mkdir(t, env, "issues")

	out, err := runLine(t, env, "", "add", "name:fix bug", "id:42")
	require.NoError(t, err)
	assert.Equal(t, lines("issues/B.42.fix bug.md"), out)

	data, err := os.ReadFile(filepath.Join(dir, "issues", "B.42.fix bug.md"))
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestAdd_ExistingFileIsNotTouched(t *testing.T) {
	env, dir := dirEnv(t, map[string]string{
		"issues/B.42.fix bug.md": "keep me\n",
	})

	out, err := runLine(t, env, "", "a", "name:fix bug", "id:42")
	require.ErrorIs(t, err, storage.ErrIssueExists)
	assert.Empty(t, out)

	data, err := os.ReadFile(filepath.Join(dir, "issues", "B.42.fix bug.md"))
	require.NoError(t, err)
	assert.Equal(t, "keep me\n", string(data))

	entries, err := os.ReadDir(filepath.Join(dir, "issues"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestAdd_PositionalWordsFormTheName(t *testing.T) {
	env, _ := dirEnv(t, nil)
	mkdir(t, env, "issues")

	out, err := runLine(t, env, "", "add", "id:7", "priority:A", "crash", "on", "start")
	require.NoError(t, err)
	assert.Equal(t, lines("issues/A.7.crash on start.md"), out)
}

func TestAdd_Scope(t *testing.T) {
	env, dir := dirEnv(t, nil)
	mkdir(t, env, "issues")

	out, err := runLine(t, env, "", "add", "scope:ui/forms", "id:1", "name:x")
	require.NoError(t, err)
	assert.Equal(t, lines("issues/ui/forms/B.1.x.md"), out)
	assert.FileExists(t, filepath.Join(dir, "issues", "ui", "forms", "B.1.x.md"))
}

func TestAdd_EmptyPartsDropSeparators(t *testing.T) {
	env, _ := dirEnv(t, nil)
	mkdir(t, env, "issues")

	out, err := runLine(t, env, "", "add", "priority:", "id:3", "name:bare")
	require.NoError(t, err)
	assert.Equal(t, lines("issues/3.bare.md"), out)
}

func TestAdd_ConfiguredSeparatorAndExtension(t *testing.T) {
	env, _ := dirEnv(t, nil)
	mkdir(t, env, "issues")
	env.Config.Separator = "-"
	env.Config.Extension = ".txt"

	out, err := runLine(t, env, "", "add", "id:5", "name:x")
	require.NoError(t, err)
	assert.Equal(t, lines("issues/B-5-x.txt"), out)
}

func TestAdd_SequenceCounter(t *testing.T) {
	env, dir := dirEnv(t, map[string]string{".sequence": "7\n"})
	mkdir(t, env, "issues")

	out, err := runLine(t, env, "", "add", "name:first")
	require.NoError(t, err)
	assert.Equal(t, lines("issues/B.7.first.md"), out)

	out, err = runLine(t, env, "", "add", "name:second")
	require.NoError(t, err)
	assert.Equal(t, lines("issues/B.8.second.md"), out)

	data, err := os.ReadFile(filepath.Join(dir, ".sequence"))
	require.NoError(t, err)
	assert.Equal(t, "9", string(data))
}

func TestAdd_ExplicitIDLeavesCounterAlone(t *testing.T) {
	env, dir := dirEnv(t, map[string]string{".sequence": "7"})
	mkdir(t, env, "issues")

	_, err := runLine(t, env, "", "add", "id:99", "name:x")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, ".sequence"))
	require.NoError(t, err)
	assert.Equal(t, "7", string(data))
}

func TestAdd_MalformedCounter(t *testing.T) {
	env, _ := dirEnv(t, map[string]string{".sequence": "seven"})
	mkdir(t, env, "issues")

	_, err := runLine(t, env, "", "add", "name:x")
	assert.ErrorIs(t, err, seq.ErrMalformedCounter)
}

func TestAdd_FallbackID(t *testing.T) {
	env, _ := dirEnv(t, nil)
	mkdir(t, env, "issues")

	out, err := runLine(t, env, "", "add", "name:x", "user:ann")
	require.NoError(t, err)
	assert.Equal(t, lines(fmt.Sprintf("issues/B.ann_%d.x.md", fixedNow.Unix())), out)
}

func TestAdd_ProjectPattern(t *testing.T) {
	env, dir := dirEnv(t, nil)
	for _, d := range []string{"issues", "alpha/issues", "beta/issues", "betamax/todo", "betamax/issues"} {
		mkdir(t, env, d)
	}

	out, err := runLine(t, env, "", "add", "project:beta", "id:1", "name:x")
	require.NoError(t, err)
	assert.Equal(t, lines("beta/issues/B.1.x.md"), out)
	assert.FileExists(t, filepath.Join(dir, "beta", "issues", "B.1.x.md"))
}

func TestAdd_ProjectLocalCounter(t *testing.T) {
	env, dir := dirEnv(t, map[string]string{
		".sequence":     "100",
		"api/.sequence": "3",
	})
	mkdir(t, env, "api/issues")

	out, err := runLine(t, env, "", "add", "project:api", "name:x")
	require.NoError(t, err)
	assert.Equal(t, lines("api/issues/B.3.x.md"), out)

	root, err := os.ReadFile(filepath.Join(dir, ".sequence"))
	require.NoError(t, err)
	assert.Equal(t, "100", string(root))
}

func TestAdd_SharedCounterWhenNotLocal(t *testing.T) {
	env, _ := dirEnv(t, map[string]string{
		".sequence":     "100",
		"api/.sequence": "3",
	})
	mkdir(t, env, "api/issues")
	local := false
	env.Config.SeqLocal = &local

	out, err := runLine(t, env, "", "add", "project:api", "name:x")
	require.NoError(t, err)
	assert.Equal(t, lines("api/issues/B.100.x.md"), out)
}

func TestAdd_ProjectNotFound(t *testing.T) {
	env, _ := dirEnv(t, nil)
	mkdir(t, env, "alpha/issues")

	_, err := runLine(t, env, "", "add", "project:gamma", "name:x")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestAdd_BadProjectPattern(t *testing.T) {
	env, _ := dirEnv(t, nil)
	mkdir(t, env, "alpha/issues")

	_, err := runLine(t, env, "", "add", "project:(", "name:x")
	assert.ErrorIs(t, err, ErrBadPattern)
}

func TestAdd_NoIssuesDir(t *testing.T) {
	env, dir := dirEnv(t, nil)
	mkdir(t, env, "docs")

	_, err := runLine(t, env, "", "add", "id:1", "name:x")
	require.ErrorIs(t, err, ErrNoIssuesDir)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "nothing is created without a marker directory")
}

func TestAdd_FirstPresentMarker(t *testing.T) {
	env, _ := dirEnv(t, nil)
	mkdir(t, env, "todo")
	env.Config.IssueDirs = []string{"issues", "todo"}

	out, err := runLine(t, env, "", "add", "id:1", "name:x")
	require.NoError(t, err)
	assert.Equal(t, lines("todo/B.1.x.md"), out)
}

func TestAdd_InvalidName(t *testing.T) {
	env, _ := dirEnv(t, nil)
	mkdir(t, env, "issues")

	_, err := runLine(t, env, "", "add", "id:1", "name:../escape")
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestAdd_IgnoresInput(t *testing.T) {
	env, _ := dirEnv(t, nil)
	mkdir(t, env, "issues")

	out, err := runStage(t, env, "add", lines("issues/other.md"), "id:1", "name:x")
	require.NoError(t, err)
	assert.Equal(t, lines("issues/B.1.x.md"), out)
}

func TestAdd_OutputIsAViewablePath(t *testing.T) {
	env, _ := dirEnv(t, nil)
	mkdir(t, env, "core/issues")

	out, err := runLine(t, env, "", "--add", "project:core", "scope:net", "id:2", "name:dns", "--view")
	require.NoError(t, err)
	assert.Equal(t, lines("core\tnet\tB.2.dns.md"), out)
}

func TestAdd_ScopeCannotLeaveIssuesDir(t *testing.T) {
	env, dir := dirEnv(t, nil)
	mkdir(t, env, "issues")

	for _, scope := range []string{"..", "../../x", "a/../../b"} {
		_, err := runLine(t, env, "", "add", "scope:"+scope, "id:1", "name:x")
		assert.ErrorIs(t, err, ErrInvalidName, scope)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "nothing is created next to the issues directory")

	entries, err = os.ReadDir(filepath.Join(dir, "issues"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAdd_ScopeIsCleaned(t *testing.T) {
	env, _ := dirEnv(t, nil)
	mkdir(t, env, "issues")

	out, err := runLine(t, env, "", "add", "scope:a/../b", "id:1", "name:x")
	require.NoError(t, err)
	assert.Equal(t, lines("issues/b/B.1.x.md"), out)
}

func TestEscapesDir(t *testing.T) {
	for rel, want := range map[string]bool{
		"":          false,
		"ui":        false,
		"ui/forms":  false,
		"a/../b":    false,
		"..":        true,
		"../x":      true,
		"a/../../b": true,
		"./..":      true,
	} {
		assert.Equal(t, want, escapesDir(rel), rel)
	}
}
