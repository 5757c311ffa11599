package assets

import (
	"errors"
	"maps"
	"slices"
)

// AssetResolver looks assets up in a custom directory first and falls back
// to the embedded set for names the directory does not provide, so a
// directory may override a single style and keep the rest.
type AssetResolver struct {
	loaders []AssetLoader // custom (optional), then embedded
}

// NewAssetResolver creates an AssetResolver. An empty customBasePath uses
// the embedded assets only.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{}
	if customBasePath != "" {
		custom, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.loaders = append(r.loaders, custom)
	}
	r.loaders = append(r.loaders, NewEmbeddedLoader())
	return r, nil
}

func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadStyle(name) })
}

func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadTemplate(name) })
}

// ListStyles returns the union of every loader's styles, sorted.
func (r *AssetResolver) ListStyles() []string {
	set := make(map[string]struct{})
	for _, l := range r.loaders {
		for _, name := range l.ListStyles() {
			set[name] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(set))
}

// first returns the first hit across loaders. Only misses move on to the
// next loader; validation and I/O errors are returned as is.
func (r *AssetResolver) first(load func(AssetLoader) (string, error)) (string, error) {
	var err error
	for _, l := range r.loaders {
		var content string
		if content, err = load(l); !isNotFoundError(err) {
			return content, err
		}
	}
	return "", err
}

func isNotFoundError(err error) bool {
	return errors.Is(err, ErrStyleNotFound) || errors.Is(err, ErrTemplateNotFound)
}

var _ AssetLoader = (*AssetResolver)(nil)
