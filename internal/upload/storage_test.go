package upload

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveWritesFileAndReturnsRef(t *testing.T) {
	dir := t.TempDir()
	s, err := New(filepath.Join(dir, "uploads"))
	require.NoError(t, err)

	ref, err := s.Save(context.Background(), "фото.jpg", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ref, "/uploads/"))
	assert.True(t, strings.HasSuffix(ref, ".jpg"))

	name := strings.TrimPrefix(ref, "/uploads/")
	data, err := os.ReadFile(filepath.Join(s.Dir(), name))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	a, err := s.Save(context.Background(), "a.png", strings.NewReader("1"))
	require.NoError(t, err)
	b, err := s.Save(context.Background(), "a.png", strings.NewReader("2"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestSaveKeepsNoExtension(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	ref, err := s.Save(context.Background(), "noext", strings.NewReader("x"))
	require.NoError(t, err)
	assert.False(t, strings.Contains(filepath.Base(ref), "."))
}
