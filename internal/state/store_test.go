package state

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Store {
	return map[string]Store{
		"file":   NewFileStore(filepath.Join(t.TempDir(), "nested", "data")),
		"memory": NewMemoryStore(),
	}
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ctx, "bandhan_form_data")
			require.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Put(ctx, "bandhan_form_data", []byte(`{"a":1}`)))
			got, err := s.Get(ctx, "bandhan_form_data")
			require.NoError(t, err)
			assert.JSONEq(t, `{"a":1}`, string(got))

			require.NoError(t, s.Put(ctx, "bandhan_form_data", []byte(`{"b":2}`)))
			got, err = s.Get(ctx, "bandhan_form_data")
			require.NoError(t, err)
			assert.JSONEq(t, `{"b":2}`, string(got))

			require.NoError(t, s.Delete(ctx, "bandhan_form_data"))
			_, err = s.Get(ctx, "bandhan_form_data")
			require.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_DeleteAbsent(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Delete(context.Background(), "missing"))
		})
	}
}

func TestFileStore_NoTempLeftBehind(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)
	require.NoError(t, s.Put(context.Background(), "k", []byte("v")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "k.json", entries[0].Name())
}

func TestFileStore_PathStaysInDir(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)
	assert.Equal(t, dir, filepath.Dir(s.Path("../../etc/passwd")))
}

func TestMemoryStore_Fail(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	boom := errors.New("quota exceeded")

	s.Fail(boom)
	require.ErrorIs(t, s.Put(ctx, "k", []byte("v")), boom)
	_, err := s.Get(ctx, "k")
	require.ErrorIs(t, err, boom)

	s.Fail(nil)
	require.NoError(t, s.Put(ctx, "k", []byte("v")))
	assert.Equal(t, []string{"k"}, s.Keys())
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	v := []byte("abc")
	require.NoError(t, s.Put(ctx, "k", v))
	v[0] = 'x'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}
