package tools

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobTool_MatchesPattern(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.go"), []byte("package a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("text"), 0o644))

	tool := &GlobTool{}
	res, err := tool.Execute(context.Background(), GlobInput{Pattern: "*.go", Path: dir})

	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Contains(t, res.Content, "a.go")
	assert.NotContains(t, res.Content, "b.txt")
}

func TestGlobTool_RecursivePattern(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested", "deep")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "deep.go"), []byte("package deep"), 0o644))

	tool := &GlobTool{}
	res, err := tool.Execute(context.Background(), GlobInput{Pattern: "**/*.go", Path: dir})

	require.NoError(t, err)
	assert.Contains(t, res.Content, "deep.go")
}

func TestGlobTool_NoMatches(t *testing.T) {
	tool := &GlobTool{}
	res, err := tool.Execute(context.Background(), GlobInput{Pattern: "*.zig", Path: t.TempDir()})

	require.NoError(t, err)
	assert.Equal(t, "No files matched the pattern.", res.Content)
}

func TestGlobTool_MissingPattern(t *testing.T) {
	tool := &GlobTool{}
	res, err := tool.Execute(context.Background(), GlobInput{})

	require.NoError(t, err)
	assert.True(t, res.IsError)
}
