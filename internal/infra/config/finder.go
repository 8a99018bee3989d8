package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/drueck/reboot/internal/domain"
	"github.com/drueck/reboot/internal/ports"
)

// FileNames are the configuration files recognized in a workspace, in order
// of preference when a directory holds more than one.
var FileNames = []string{FileName, "reboot.yml"}

// Finder locates the reboot.yaml that governs a directory: the first one
// found in that directory or any of its parents.
type Finder struct {
	Names []string // defaults to FileNames
}

func NewFinder() *Finder {
	return &Finder{Names: FileNames}
}

var _ ports.ConfigLocator = (*Finder)(nil)

// FindConfig returns the path of the nearest configuration file at or above
// start. A start naming a file (an instruction file, say) searches from its
// directory.
func (f *Finder) FindConfig(start string) (string, error) {
	if start == "" {
		return "", &domain.OpError{
			Op:   "config.find",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("start directory is empty"),
		}
	}

	dir, err := filepath.Abs(start)
	if err != nil {
		return "", &domain.OpError{Op: "config.find", Kind: domain.KindExecution, Path: start, Err: err}
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	names := f.Names
	if len(names) == 0 {
		names = FileNames
	}

	for {
		for _, name := range names {
			p := filepath.Join(dir, name)
			if info, err := os.Stat(p); err == nil && !info.IsDir() {
				return p, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", &domain.OpError{
				Op:   "config.find",
				Kind: domain.KindNotFound,
				Path: start,
				Err:  domain.ErrNotFound,
			}
		}
		dir = parent
	}
}
