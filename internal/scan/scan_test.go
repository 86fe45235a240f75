package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func TestSupported(t *testing.T) {
	tests := []struct {
		ext  string
		want bool
	}{
		{".jpg", true},
		{".jpeg", true},
		{".png", true},
		{".mp4", true},
		{".mov", true},
		{".heic", true},
		{".avi", true},
		{".gif", true},
		{".txt", false},
		{".json", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			assert.Equal(t, tt.want, Supported(tt.ext))
		})
	}
}

func TestExt(t *testing.T) {
	assert.Equal(t, ".heic", Ext("/photos/IMG_0001.HEIC"))
	assert.Equal(t, ".jpg", Ext("a/b/c.jpg"))
	assert.Equal(t, "", Ext("README"))
}

func TestNewRecord(t *testing.T) {
	rec, err := NewRecord("/photos", "/photos/2021/IMG_0001.HEIC")
	require.NoError(t, err)
	assert.Equal(t, "/photos/2021/IMG_0001.HEIC", rec.Path)
	assert.Equal(t, filepath.Join("2021", "IMG_0001.HEIC"), rec.RelPath)
	assert.Equal(t, ".heic", rec.Ext)

	_, err = NewRecord("/photos", "/elsewhere/IMG_0001.jpg")
	assert.ErrorIs(t, err, ErrOutsideRoot)
}

func TestWalk(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.jpg"))
	touch(t, filepath.Join(dir, "a.mov"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, "nested", "c.HEIC"))
	touch(t, filepath.Join(dir, "nested", "sidecar.json"))

	var paths []string
	var exts []string
	err := Walk(dir, func(path, ext string) error {
		paths = append(paths, path)
		exts = append(exts, ext)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "a.mov"),
		filepath.Join(dir, "b.jpg"),
		filepath.Join(dir, "nested", "c.HEIC"),
	}, paths)
	assert.Equal(t, []string{".mov", ".jpg", ".heic"}, exts)
}

func TestWalkMissingRoot(t *testing.T) {
	err := Walk(filepath.Join(t.TempDir(), "nope"), func(string, string) error {
		t.Fatal("callback should not run")
		return nil
	})
	assert.Error(t, err)
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.heic"))
	touch(t, filepath.Join(dir, "a.HEIC"))
	touch(t, filepath.Join(dir, "c.jpg"))
	touch(t, filepath.Join(dir, "nested", "d.heic"))

	got, err := Find(dir, ".heic")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.HEIC"),
		filepath.Join(dir, "b.heic"),
		filepath.Join(dir, "nested", "d.heic"),
	}, got)
}
