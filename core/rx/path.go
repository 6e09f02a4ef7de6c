package rx

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ErrPath indicates a path that cannot be resolved.
var ErrPath = errors.New("invalid path")

// FullPath returns the absolute path of the given existing path with all symbolic links
// resolved. A leading ~ is replaced with the home directory of the current user.
func FullPath(path string) (string, error) {
	if path == "" {
		return "", errors.Wrap(ErrPath, "empty path")
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Printf("cannot resolve %s: %v", path, err)
			return "", errors.Wrap(ErrPath, path)
		}
		path = filepath.Join(home, path[1:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		log.Printf("cannot resolve %s: %v", path, err)
		return "", errors.Wrap(ErrPath, path)
	}
	result, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		log.Printf("cannot resolve %s: %v", path, err)
		return "", errors.Wrap(ErrPath, path)
	}
	return result, nil
}

// OpenFile opens the IF data file with the given path for reading.
func OpenFile(path string) (*os.File, error) {
	fullPath, err := FullPath(path)
	if err != nil {
		return nil, err
	}
	result, err := os.Open(fullPath)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open IF data file %s", fullPath)
	}
	return result, nil
}
