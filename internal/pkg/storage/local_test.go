package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_Save(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewLocalStorage(dir)
	require.NoError(t, err)

	location, err := s.Save(ctx, strings.NewReader("a,b\n1,2\n"), "employees.csv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "employees.csv"), location)

	data, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(data))

	_, err = s.Save(ctx, strings.NewReader("replaced"), "employees.csv")
	require.NoError(t, err)
	data, err = os.ReadFile(location)
	require.NoError(t, err)
	assert.Equal(t, "replaced", string(data))
}

func TestLocalStorage_StaysInsideBase(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir)
	require.NoError(t, err)

	location, err := s.Save(context.Background(), strings.NewReader("x"), "../../escape.csv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "escape.csv"), location)
}
