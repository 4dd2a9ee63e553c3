package projectfinder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aalvaropc/mkr1/internal/domain"
)

// Finder locates an mkr1 project root by searching upward for a directory
// that directly contains the project folder.
type Finder struct {
	ProjectFolder string // defaults to "mkr1"
}

func NewFinder() *Finder {
	return &Finder{ProjectFolder: domain.ProjectFolder}
}

func (f *Finder) FindRoot(startDir string) (string, error) {
	if startDir == "" {
		return "", &domain.OpError{
			Op:   "projectfinder.findroot",
			Kind: domain.KindInvalidArgument,
			Err:  errors.New("startDir is empty"),
		}
	}

	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", &domain.OpError{
			Op:   "projectfinder.findroot",
			Kind: domain.KindExecution,
			Err:  fmt.Errorf("%w: %w", domain.ErrExecution, err),
		}
	}

	cur := filepath.Clean(abs)
	for {
		if isDir(filepath.Join(cur, f.ProjectFolder)) {
			return cur, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			// Reached filesystem root.
			return "", &domain.OpError{
				Op:   "projectfinder.findroot",
				Kind: domain.KindDirectoryNotFound,
				Err:  fmt.Errorf("%w: could not find the '%s' directory", domain.ErrDirectoryNotFound, f.ProjectFolder),
			}
		}
		cur = parent
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
