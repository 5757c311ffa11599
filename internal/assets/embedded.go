package assets

import "embed"

//go:embed styles/*.css templates/*.html
var files embed.FS

// EmbeddedLoader loads the assets compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

func (*EmbeddedLoader) LoadStyle(name string) (string, error) {
	return styleKind.read(files, name)
}

func (*EmbeddedLoader) LoadTemplate(name string) (string, error) {
	return templateKind.read(files, name)
}

func (*EmbeddedLoader) ListStyles() []string {
	return styleKind.names(files)
}

var _ AssetLoader = (*EmbeddedLoader)(nil)
