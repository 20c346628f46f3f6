package filesystem

import (
	"archive/zip"
	"bytes"
	"log/slog"
	"os"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/require"
)

const testUUID = "1234-5678"

func newTestFS(t *testing.T) billy.Filesystem {
	t.Helper()
	fsys := memfs.New()
	require.NoError(t, fsys.MkdirAll("/tmp", 0o755))
	return fsys
}

func writeFile(t *testing.T, fsys billy.Filesystem, path, content string) {
	t.Helper()
	require.NoError(t, util.WriteFile(fsys, path, []byte(content), 0o644))
}

func writeZip(t *testing.T, fsys billy.Filesystem, path string, entries map[string]string) {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, util.WriteFile(fsys, path, buf.Bytes(), 0o644))
}

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// failingFS refuses to open selected paths
type failingFS struct {
	billy.Filesystem
	fail map[string]bool
}

func (f *failingFS) Open(name string) (billy.File, error) {
	if f.fail[name] {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
	}
	return f.Filesystem.Open(name)
}

func extractionDirs(t *testing.T, fsys billy.Filesystem, tempDir string) []string {
	t.Helper()
	entries, err := fsys.ReadDir(tempDir)
	require.NoError(t, err)

	var dirs []string
	for _, e := range entries {
		dirs = append(dirs, e.Name())
	}
	return dirs
}
