package cmd

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const uuid = "1234-5678"

type result struct {
	code   int
	stdout string
	stderr string
}

func newTestFS(t *testing.T) billy.Filesystem {
	t.Helper()
	t.Setenv("PROVCHECK_TEMP_DIR", "/tmp")
	fsys := memfs.New()
	require.NoError(t, fsys.MkdirAll("/tmp", 0o755))
	return fsys
}

func writeFile(t *testing.T, fsys billy.Filesystem, path, content string) {
	t.Helper()
	require.NoError(t, util.WriteFile(fsys, path, []byte(content), 0o644))
}

func writeProfiles(t *testing.T, fsys billy.Filesystem) {
	t.Helper()
	writeFile(t, fsys, "/profiles/a.mobileprovision", "device "+uuid)
	writeFile(t, fsys, "/profiles/nested/b.mobileprovision", "device "+uuid)
	writeFile(t, fsys, "/profiles/c.mobileprovision", "another device")
	writeFile(t, fsys, "/profiles/readme.txt", uuid)
}

func run(t *testing.T, fsys billy.Filesystem, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Run(context.Background(), args, Options{Stdout: &stdout, Stderr: &stderr, FS: fsys})
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestCheck_Folder(t *testing.T) {
	fsys := newTestFS(t)
	writeProfiles(t, fsys)

	res := run(t, fsys, "check", uuid, "/profiles")

	require.Equal(t, ExitOK, res.code, res.stderr)
	want := `Detected input type: folder
Found 3 .mobileprovision file(s), checking for identifier 1234-5678...

✅ Identifier found in the following files:
  - /profiles/a.mobileprovision
  - /profiles/nested/b.mobileprovision

❌ Identifier missing in the following files:
  - /profiles/c.mobileprovision

Checked 3 files total.
`
	assert.Equal(t, want, res.stdout)
	assert.Empty(t, res.stderr)
}

func TestCheck_AllMatched(t *testing.T) {
	fsys := newTestFS(t)
	writeFile(t, fsys, "/profiles/a.mobileprovision", uuid)

	res := run(t, fsys, "check", uuid, "/profiles")

	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "✅ Identifier found in all .mobileprovision files!")
	assert.Contains(t, res.stdout, "Checked 1 file total.")
}

func TestCheck_NoFilesIsNotAFailure(t *testing.T) {
	fsys := newTestFS(t)
	require.NoError(t, fsys.MkdirAll("/empty", 0o755))

	res := run(t, fsys, "check", uuid, "/empty")

	assert.Equal(t, ExitOK, res.code)
	assert.Contains(t, res.stdout, "⚠️  No .mobileprovision files found.")
	assert.Contains(t, res.stdout, "Checked 0 files total.")
}

func TestCheck_SingleFile(t *testing.T) {
	fsys := newTestFS(t)
	writeProfiles(t, fsys)

	res := run(t, fsys, "check", uuid, "/profiles/c.mobileprovision")

	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Detected input type: file")
	assert.Contains(t, res.stdout, "Checking single .mobileprovision file /profiles/c.mobileprovision for identifier 1234-5678...")
	assert.Contains(t, res.stdout, "  - /profiles/c.mobileprovision")
}

func TestCheck_Archive(t *testing.T) {
	fsys := newTestFS(t)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("Payload/App.app/embedded.mobileprovision")
	require.NoError(t, err)
	_, err = w.Write([]byte("devices " + uuid))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	writeFile(t, fsys, "/App.ipa", buf.String())

	res := run(t, fsys, "check", uuid, "/App.ipa")

	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Detected input type: archive")
	assert.Contains(t, res.stdout, "Unpacking App.ipa...")
	assert.Contains(t, res.stdout, "✅ Identifier found in all .mobileprovision files!")

	entries, err := fsys.ReadDir("/tmp")
	require.NoError(t, err)
	assert.Empty(t, entries, "extraction directory should be removed")
}

func TestCheck_SymlinkedFolder(t *testing.T) {
	fsys := newTestFS(t)
	writeProfiles(t, fsys)
	require.NoError(t, fsys.Symlink("/profiles", "/linked"))

	res := run(t, fsys, "check", uuid, "/linked")

	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Detected input type: folder")
	assert.Contains(t, res.stdout, "Found 3 .mobileprovision file(s)")
	assert.Contains(t, res.stdout, "  - /linked/nested/b.mobileprovision")
	assert.Contains(t, res.stdout, "Checked 3 files total.")
}

func TestCheck_JSON(t *testing.T) {
	fsys := newTestFS(t)
	writeProfiles(t, fsys)

	res := run(t, fsys, "check", uuid, "/profiles", "--json", "-j", "4")

	require.Equal(t, ExitOK, res.code, res.stderr)
	var got struct {
		Mode     string `json:"mode"`
		Verdict  string `json:"verdict"`
		Total    int    `json:"total"`
		Matching []any  `json:"matching"`
		Missing  []any  `json:"missing"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &got), "stdout must hold only the JSON report")
	assert.Equal(t, "folder", got.Mode)
	assert.Equal(t, "itemized", got.Verdict)
	assert.Equal(t, 3, got.Total)
	assert.Len(t, got.Matching, 2)
	assert.Len(t, got.Missing, 1)
}

func TestCheck_UnreadableFilesAreDiagnosed(t *testing.T) {
	fsys := newTestFS(t)
	writeProfiles(t, fsys)

	res := run(t, fsys, "check", uuid, "/profiles", "--max-bytes", "5")

	require.Equal(t, ExitOK, res.code)
	assert.Contains(t, res.stdout, "(unreadable:")
	assert.Contains(t, res.stdout, "Checked 3 files total.")
	assert.Contains(t, res.stderr, "could not read profile")
}

func TestCheck_SuffixFromEnvAndFlag(t *testing.T) {
	fsys := newTestFS(t)
	writeFile(t, fsys, "/profiles/a.provisionprofile", uuid)
	writeFile(t, fsys, "/profiles/b.mobileprovision", uuid)

	t.Setenv("PROVCHECK_SUFFIX", ".provisionprofile")
	res := run(t, fsys, "check", uuid, "/profiles")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Found 1 .provisionprofile file(s)")

	res = run(t, fsys, "check", uuid, "/profiles", "--suffix", ".mobileprovision")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Found 1 .mobileprovision file(s)")
}

func TestCheck_Errors(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantCode  int
		wantInErr string
		wantUsage bool
	}{
		{
			name:      "missing path",
			args:      []string{"check", uuid},
			wantCode:  ExitUsage,
			wantInErr: "accepts 2 arg(s), received 1",
			wantUsage: true,
		},
		{
			name:      "too many arguments",
			args:      []string{"check", uuid, "/profiles", "extra"},
			wantCode:  ExitUsage,
			wantInErr: "accepts 2 arg(s), received 3",
			wantUsage: true,
		},
		{
			name:      "unknown flag",
			args:      []string{"check", "--bogus", uuid, "/profiles"},
			wantCode:  ExitUsage,
			wantInErr: "unknown flag: --bogus",
			wantUsage: true,
		},
		{
			name:      "json with interactive",
			args:      []string{"check", uuid, "/profiles", "--json", "-i"},
			wantCode:  ExitUsage,
			wantInErr: "cannot be used together",
			wantUsage: true,
		},
		{
			name:      "negative size cap",
			args:      []string{"check", uuid, "/profiles", "--max-bytes", "-1"},
			wantCode:  ExitUsage,
			wantInErr: "must not be negative",
			wantUsage: true,
		},
		{
			name:      "unsupported file",
			args:      []string{"check", uuid, "/profiles/readme.txt"},
			wantCode:  ExitError,
			wantInErr: "unsupported input type",
		},
		{
			name:      "nonexistent path",
			args:      []string{"check", uuid, "/nowhere"},
			wantCode:  ExitError,
			wantInErr: "unsupported input type",
		},
		{
			name:      "corrupt archive",
			args:      []string{"check", uuid, "/broken.ipa"},
			wantCode:  ExitError,
			wantInErr: "Error:",
		},
		{
			name:      "zero workers",
			args:      []string{"check", uuid, "/profiles", "-j", "0"},
			wantCode:  ExitError,
			wantInErr: "workers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := newTestFS(t)
			writeProfiles(t, fsys)
			writeFile(t, fsys, "/broken.ipa", "not a zip")

			res := run(t, fsys, tt.args...)

			assert.Equal(t, tt.wantCode, res.code)
			assert.Contains(t, res.stderr, tt.wantInErr)
			assert.NotContains(t, res.stdout, "Checked")
			if tt.wantUsage {
				assert.Empty(t, res.stdout, "usage belongs on stderr")
				assert.Contains(t, res.stderr, "Usage:")
				assert.Contains(t, res.stderr, "provcheck check <identifier> <path>")
			} else {
				assert.NotContains(t, res.stderr, "Usage:")
			}
		})
	}
}

func TestHelpExitsZero(t *testing.T) {
	fsys := newTestFS(t)

	res := run(t, fsys, "check", "--help")

	assert.Equal(t, ExitOK, res.code)
	assert.Contains(t, res.stdout, "check <identifier> <path>")
}

func TestList(t *testing.T) {
	fsys := newTestFS(t)
	writeProfiles(t, fsys)

	res := run(t, fsys, "list", "/profiles")

	require.Equal(t, ExitOK, res.code, res.stderr)
	want := `/profiles (folder)
  - /profiles/a.mobileprovision
  - /profiles/c.mobileprovision
  - /profiles/nested/b.mobileprovision

Found 3 .mobileprovision file(s).
`
	assert.Equal(t, want, res.stdout)
}

func TestList_JSON(t *testing.T) {
	fsys := newTestFS(t)
	writeProfiles(t, fsys)

	res := run(t, fsys, "list", "/profiles", "--json")

	require.Equal(t, ExitOK, res.code, res.stderr)
	var got struct {
		Total int      `json:"total"`
		Files []string `json:"files"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &got))
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, "/profiles/a.mobileprovision", got.Files[0])
}

func TestVersion(t *testing.T) {
	res := run(t, memfs.New(), "version")

	assert.Equal(t, ExitOK, res.code)
	assert.Equal(t, "provcheck dev\n", res.stdout)
}
