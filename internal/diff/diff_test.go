package diff

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("data"), 0644))
}

func TestCompare(t *testing.T) {
	left := t.TempDir()
	right := t.TempDir()

	touch(t, filepath.Join(left, "a.jpg"))
	touch(t, filepath.Join(left, "sub", "b.mov"))
	touch(t, filepath.Join(left, "c.png"))
	touch(t, filepath.Join(right, "x", "a.jpg"))
	touch(t, filepath.Join(right, "c.png"))

	res, err := Compare(context.Background(), left, right, false)
	require.NoError(t, err)

	assert.Equal(t, 3, res.LeftTotal)
	assert.Equal(t, 2, res.RightTotal)
	require.Len(t, res.Missing, 1)
	assert.Equal(t, filepath.Join(left, "sub", "b.mov"), res.Missing[0].Path)
	assert.Equal(t, filepath.Join("sub", "b.mov"), res.Missing[0].RelPath)
	assert.Equal(t, "b.mov", res.Missing[0].Name)
	assert.Empty(t, res.Missing[0].Hint)
}

func TestCompareNormalizesUnicode(t *testing.T) {
	left := t.TempDir()
	right := t.TempDir()

	// Same name, composed on one side and decomposed on the other.
	touch(t, filepath.Join(left, "café.jpg"))
	touch(t, filepath.Join(right, "café.jpg"))

	res, err := Compare(context.Background(), left, right, false)
	require.NoError(t, err)
	assert.Empty(t, res.Missing)
}

func TestCompareFuzzyHints(t *testing.T) {
	left := t.TempDir()
	right := t.TempDir()

	touch(t, filepath.Join(left, "IMG_1234.jpg"))
	touch(t, filepath.Join(left, "zzz_unique_video.mp4"))
	touch(t, filepath.Join(right, "IMG_1234 (1).jpg"))
	touch(t, filepath.Join(right, "beach.png"))

	res, err := Compare(context.Background(), left, right, true)
	require.NoError(t, err)

	require.Len(t, res.Missing, 2)
	byName := make(map[string]Missing, len(res.Missing))
	for _, m := range res.Missing {
		byName[m.Name] = m
	}
	assert.Equal(t, "IMG_1234 (1).jpg", byName["IMG_1234.jpg"].Hint)
	assert.Empty(t, byName["zzz_unique_video.mp4"].Hint)
}

func TestCompareMissingRoot(t *testing.T) {
	_, err := Compare(context.Background(), filepath.Join(t.TempDir(), "nope"), t.TempDir(), false)
	assert.Error(t, err)
}

func TestCopyMissing(t *testing.T) {
	left := t.TempDir()
	right := t.TempDir()
	dest := t.TempDir()

	touch(t, filepath.Join(left, "sub", "b.mov"))

	res, err := Compare(context.Background(), left, right, false)
	require.NoError(t, err)
	require.Len(t, res.Missing, 1)

	copied, failed := CopyMissing(res, dest, testLogger())
	assert.Equal(t, 1, copied)
	assert.Equal(t, 0, failed)

	data, err := os.ReadFile(filepath.Join(dest, "sub", "b.mov"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))
}

func TestCopyMissingSkipsFailures(t *testing.T) {
	res := &Result{Missing: []Missing{
		{Path: filepath.Join(t.TempDir(), "gone.jpg"), RelPath: "gone.jpg", Name: "gone.jpg"},
	}}

	copied, failed := CopyMissing(res, t.TempDir(), testLogger())
	assert.Equal(t, 0, copied)
	assert.Equal(t, 1, failed)
}
