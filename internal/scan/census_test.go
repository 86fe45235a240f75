package scan

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountExtensions(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.jpg"))
	touch(t, filepath.Join(dir, "b.JPG"))
	touch(t, filepath.Join(dir, "c.txt"))
	touch(t, filepath.Join(dir, "README"))
	touch(t, filepath.Join(dir, "deep", "d.jpg"))
	touch(t, filepath.Join(dir, "deep", "e.mov"))

	counts, err := CountExtensions(dir)
	require.NoError(t, err)

	assert.Len(t, counts, 4)
	assert.Equal(t, 3, counts[".jpg"])
	assert.Equal(t, 1, counts[".txt"])
	assert.Equal(t, 1, counts[".mov"])
	assert.Equal(t, 1, counts[NoExtension])
}

func TestCountExtensionsMissingRoot(t *testing.T) {
	_, err := CountExtensions(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestSortedCounts(t *testing.T) {
	got := SortedCounts(map[string]int{
		".jpg":  3,
		".mov":  1,
		".heic": 3,
		".png":  7,
	})

	assert.Equal(t, []ExtCount{
		{Ext: ".png", Count: 7},
		{Ext: ".heic", Count: 3},
		{Ext: ".jpg", Count: 3},
		{Ext: ".mov", Count: 1},
	}, got)
}
