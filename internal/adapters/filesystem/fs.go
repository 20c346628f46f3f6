package filesystem

import (
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// NewOS returns the host filesystem rooted at the filesystem root,
// so absolute paths resolve as they would with the os package
func NewOS() billy.Filesystem {
	return osfs.New(string(filepath.Separator))
}

// absPath makes p absolute relative to the working directory
func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
