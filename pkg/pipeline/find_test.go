package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFind_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("project: p"), 0o644))

	found, err := Find(t.TempDir(), path)
	require.NoError(t, err)
	assert.Equal(t, path, found)
}

func TestFind_ExplicitPathMissing(t *testing.T) {
	_, err := Find(t.TempDir(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestFind_WalksUpToParent(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, FileName)
	require.NoError(t, os.WriteFile(path, []byte("project: p"), 0o644))

	child := filepath.Join(root, "sub", "dir")
	require.NoError(t, os.MkdirAll(child, 0o755))

	found, err := Find(child, "")
	require.NoError(t, err)
	assert.Equal(t, path, found)
}

func TestFind_StopsAtGitRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte("project: p"), 0o644))

	// A .git directory below the config file stops the upward walk.
	repo := filepath.Join(root, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))

	_, err := Find(repo, "")
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(validYAML), 0o644))

	p, path, err := Load(dir, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FileName), path)
	assert.Equal(t, "task-manager", p.Project)
}

func TestLoad_InvalidContent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("project: p"), 0o644))

	_, _, err := Load(dir, "")
	assert.Error(t, err)
}
