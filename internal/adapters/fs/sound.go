// Package fs resolves asset files relative to a directory chosen at startup.
package fs

import (
	"errors"
	"os"
	"path/filepath"
)

// DefaultSoundFile is the completion sound looked up in the asset directory.
const DefaultSoundFile = "timer.mp3"

// AssetResolver locates asset files in a single directory.
type AssetResolver struct {
	dir string
}

// NewAssetResolver creates a resolver for dir. An empty dir resolves
// against the directory of the running executable.
func NewAssetResolver(dir string) *AssetResolver {
	if dir == "" {
		dir = ExecutableDir()
	}
	return &AssetResolver{dir: dir}
}

// Dir returns the asset directory.
func (r *AssetResolver) Dir() string {
	return r.dir
}

// Path returns the path of name inside the asset directory. Absolute
// names are returned unchanged.
func (r *AssetResolver) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(r.dir, name)
}

// Resolve returns the path of name if it exists as a regular file.
func (r *AssetResolver) Resolve(name string) (string, error) {
	if name == "" {
		return "", os.ErrNotExist
	}
	path := r.Path(name)
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", &os.PathError{Op: "resolve", Path: path, Err: errors.New("is a directory")}
	}
	return path, nil
}

// ExecutableDir returns the directory containing the running binary, or
// the working directory if it cannot be determined.
func ExecutableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}
