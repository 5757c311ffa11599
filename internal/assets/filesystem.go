package assets

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FilesystemLoader loads assets from a directory laid out like the embedded
// tree. Every read goes through an os.Root, so neither names nor symlinks
// can reach files outside the directory.
type FilesystemLoader struct {
	basePath string
}

// NewFilesystemLoader creates a FilesystemLoader for the given directory.
// Returns ErrInvalidBasePath if the path is not a readable directory.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	info, err := os.Stat(absPath)
	switch {
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, absPath)
	}

	loader := &FilesystemLoader{basePath: absPath}
	if err := loader.withRoot(func(fs.FS) error { return nil }); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	return loader, nil
}

func (f *FilesystemLoader) LoadStyle(name string) (string, error) {
	return f.read(styleKind, name)
}

func (f *FilesystemLoader) LoadTemplate(name string) (string, error) {
	return f.read(templateKind, name)
}

// ListStyles returns the .css names under {basePath}/styles.
func (f *FilesystemLoader) ListStyles() []string {
	var names []string
	_ = f.withRoot(func(fsys fs.FS) error {
		names = styleKind.names(fsys)
		return nil
	})
	return names
}

func (f *FilesystemLoader) read(k kind, name string) (string, error) {
	var content string
	err := f.withRoot(func(fsys fs.FS) error {
		var err error
		content, err = k.read(fsys, name)
		return err
	})
	return content, err
}

// withRoot opens the base directory as an os.Root for the duration of fn.
func (f *FilesystemLoader) withRoot(fn func(fs.FS) error) error {
	root, err := os.OpenRoot(f.basePath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	defer root.Close()
	return fn(root.FS())
}

var _ AssetLoader = (*FilesystemLoader)(nil)
