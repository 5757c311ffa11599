package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

// AssetLoader loads CSS styles and page templates by name, without extension.
// Misses are reported as ErrStyleNotFound or ErrTemplateNotFound and unsafe
// names as ErrInvalidAssetName.
type AssetLoader interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)
	ListStyles() []string
}

// kind locates one asset type inside a loader's file tree.
type kind struct {
	dir      string
	ext      string
	notFound error
}

var (
	styleKind    = kind{dir: "styles", ext: ".css", notFound: ErrStyleNotFound}
	templateKind = kind{dir: "templates", ext: ".html", notFound: ErrTemplateNotFound}
)

// path returns the slash-separated location of the named asset.
func (k kind) path(name string) string {
	return path.Join(k.dir, name+k.ext)
}

// read loads the named asset from fsys.
func (k kind) read(fsys fs.FS, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	data, err := fs.ReadFile(fsys, k.path(name))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %q", k.notFound, name)
	case err != nil:
		return "", fmt.Errorf("%w: %s: %v", ErrAssetRead, k.path(name), err)
	}
	return string(data), nil
}

// names lists the assets of this kind in fsys, sorted.
// A missing directory yields none.
func (k kind) names(fsys fs.FS) []string {
	entries, err := fs.ReadDir(fsys, k.dir)
	if err != nil {
		return nil
	}

	var names []string
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), k.ext); ok && !e.IsDir() {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}
