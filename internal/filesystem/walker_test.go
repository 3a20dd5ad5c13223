package filesystem

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/IvanShishkin/filemanifest/internal/config"
	"github.com/IvanShishkin/filemanifest/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestWalker(t *testing.T) *Walker {
	t.Helper()
	cfg := &config.Config{
		ChecksumAlgorithm: "sha256",
		Timezone:          "UTC",
		TimeFormat:        config.DefaultTimeFormat,
	}
	w, err := NewWalker(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	return w
}

func collect(t *testing.T, w *Walker, roots ...string) ([]models.ManifestRecord, *models.ScanResults) {
	t.Helper()
	results := &models.ScanResults{}
	var records []models.ManifestRecord
	for _, root := range roots {
		err := w.Scan(root, results, func(rec models.ManifestRecord) error {
			records = append(records, rec)
			return nil
		})
		require.NoError(t, err)
	}
	return records, results
}

func TestGetExtension(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"archive.tar.gz", "gz"},
		{"README", ""},
		{".gitignore", ""},
		{"trailing.", ""},
		{"file.PHP", "PHP"},
		{"/path/to/file.js", "js"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetExtension(tt.name))
		})
	}
}

func TestNewWalker_InvalidConfig(t *testing.T) {
	_, err := NewWalker(&config.Config{ChecksumAlgorithm: "crc32"}, zaptest.NewLogger(t))
	assert.Error(t, err)

	_, err = NewWalker(&config.Config{Timezone: "Nowhere/Land"}, zaptest.NewLogger(t))
	assert.Error(t, err)
}

func TestWalker_DepthOne(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a.txt", "b.csv", "c"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte("data "+name), 0644))
	}
	for _, name := range []string{"sub1", "sub2"} {
		dir := filepath.Join(root, name)
		require.NoError(t, os.Mkdir(dir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "nested.txt"), []byte("nested"), 0644))
	}

	records, results := collect(t, newTestWalker(t), root)

	names := make([]string, 0, len(records))
	for _, rec := range records {
		names = append(names, rec.FileName)
	}
	sort.Strings(names)
	assert.Equal(t, []string{"a.txt", "b.csv", "c"}, names)
	assert.Equal(t, 3, results.RecordsWritten)
	assert.Zero(t, results.UnreadableRoots)
}

func TestWalker_RecordFields(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "report.tar.gz")
	content := make([]byte, 1500)
	for i := range content {
		content[i] = 'a'
	}
	require.NoError(t, os.WriteFile(path, content, 0644))
	mtime := time.Date(2024, 3, 15, 10, 30, 45, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, mtime, mtime))

	records, _ := collect(t, newTestWalker(t), root)
	require.Len(t, records, 1)
	rec := records[0]

	c, err := NewChecksummer("sha256")
	require.NoError(t, err)
	sum, err := c.Sum(path)
	require.NoError(t, err)

	resolvedRoot, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)

	assert.Equal(t, "report.tar.gz", rec.FileName)
	assert.Equal(t, int64(2), rec.FileSizeKB)
	assert.Equal(t, "gz", rec.FileExtension)
	assert.Equal(t, "2024-03-15T10:30:45", rec.LastModifiedTime)
	assert.NotEmpty(t, rec.CreationTime)
	assert.True(t, filepath.IsAbs(rec.FilePath))
	assert.Equal(t, filepath.Join(resolvedRoot, "report.tar.gz"), resolveOrSelf(rec.FilePath))
	assert.Equal(t, sum, rec.Checksum)
	assert.Len(t, []rune(rec.ContentSample), SampleLimit)
}

func resolveOrSelf(p string) string {
	if r, err := filepath.EvalSymlinks(p); err == nil {
		return r
	}
	return p
}

func TestWalker_BinarySampleSuppressed(t *testing.T) {
	root := t.TempDir()
	data := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 512)...)
	require.NoError(t, os.WriteFile(filepath.Join(root, "image.png"), data, 0644))

	records, _ := collect(t, newTestWalker(t), root)
	require.Len(t, records, 1)

	assert.Empty(t, records[0].ContentSample)
	assert.NotEmpty(t, records[0].Checksum)
	assert.Equal(t, "png", records[0].FileExtension)
	assert.Equal(t, int64(1), records[0].FileSizeKB)
}

func TestWalker_UnreadableRoots(t *testing.T) {
	existing := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(existing, "one.txt"), []byte("1"), 0644))
	missing := filepath.Join(t.TempDir(), "does-not-exist")

	records, results := collect(t, newTestWalker(t), missing, existing)

	require.Len(t, records, 1)
	assert.Equal(t, "one.txt", records[0].FileName)
	assert.Equal(t, 1, results.UnreadableRoots)
}

func TestWalker_RootOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(first, "first.txt"), []byte("1"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(second, "second.txt"), []byte("2"), 0644))

	records, _ := collect(t, newTestWalker(t), second, first)

	require.Len(t, records, 2)
	assert.Equal(t, "second.txt", records[0].FileName)
	assert.Equal(t, "first.txt", records[1].FileName)
}

func TestWalker_PermissionDeniedContent(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root bypasses file permissions")
	}
	root := t.TempDir()
	path := filepath.Join(root, "locked.txt")
	require.NoError(t, os.WriteFile(path, make([]byte, 1500), 0644))
	require.NoError(t, os.Chmod(path, 0000))
	t.Cleanup(func() { os.Chmod(path, 0644) })

	records, results := collect(t, newTestWalker(t), root)

	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, "locked.txt", rec.FileName)
	assert.Equal(t, int64(2), rec.FileSizeKB)
	assert.Empty(t, rec.Checksum)
	assert.Empty(t, rec.ContentSample)
	assert.Equal(t, 1, results.ChecksumErrors)
	assert.Equal(t, 1, results.SampleErrors)
}

func TestWalker_CallbackErrorStops(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("a"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.txt"), []byte("b"), 0644))

	w := newTestWalker(t)
	calls := 0
	err := w.Scan(root, nil, func(models.ManifestRecord) error {
		calls++
		return os.ErrClosed
	})

	assert.ErrorIs(t, err, os.ErrClosed)
	assert.Equal(t, 1, calls)
}

func TestWalker_SymlinkToDirectorySkipped(t *testing.T) {
	root := t.TempDir()
	target := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "plain.txt"), []byte("x"), 0644))
	if err := os.Symlink(target, filepath.Join(root, "link")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	records, _ := collect(t, newTestWalker(t), root)

	require.Len(t, records, 1)
	assert.Equal(t, "plain.txt", records[0].FileName)
}

func TestWalker_Exclude(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "keep.txt"), []byte("k"), 0644))
	out := filepath.Join(root, "manifest.csv")
	require.NoError(t, os.WriteFile(out, nil, 0644))

	w := newTestWalker(t)
	require.NoError(t, w.Exclude(out))

	records, results := collect(t, w, root)

	require.Len(t, records, 1)
	assert.Equal(t, "keep.txt", records[0].FileName)
	assert.Equal(t, 1, results.RecordsWritten)
	assert.Zero(t, results.SkippedEntries)

	assert.Error(t, w.Exclude(filepath.Join(root, "missing.csv")))
}
