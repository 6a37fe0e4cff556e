// Package configfinder locates the nearest project configuration file by
// walking from a start directory toward the filesystem root.
package configfinder

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/davidgraeff/graphql-client/internal/domain"
	"github.com/davidgraeff/graphql-client/internal/infra/config"
)

type Finder struct {
	FileNames []string // defaults to config.DefaultFileNames
}

func NewFinder() *Finder {
	return &Finder{FileNames: config.DefaultFileNames}
}

// Find returns the path of the first config file found in startDir or any of
// its parents.
func (f *Finder) Find(startDir string) (string, error) {
	if startDir == "" {
		return "", &domain.OpError{
			Op:   "configfinder.find",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("startDir is empty"),
		}
	}

	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", &domain.OpError{
			Op:   "configfinder.find",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}

	// If given a file path, start from its directory.
	info, statErr := os.Stat(abs)
	if statErr == nil && !info.IsDir() {
		abs = filepath.Dir(abs)
	}

	names := f.FileNames
	if len(names) == 0 {
		names = config.DefaultFileNames
	}

	cur := filepath.Clean(abs)
	for {
		for _, name := range names {
			p := filepath.Join(cur, name)
			if info, err := os.Stat(p); err == nil && !info.IsDir() {
				return p, nil
			}
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return "", &domain.OpError{
				Op:   "configfinder.find",
				Kind: domain.KindNotFound,
				Err:  domain.ErrNotFound,
			}
		}
		cur = parent
	}
}
