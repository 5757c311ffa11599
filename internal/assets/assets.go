package assets

// Built-in asset names.
const (
	DefaultStyleName = "default"
	PageTemplateName = "page"
)

var embedded = NewEmbeddedLoader()

// LoadStyle loads an embedded CSS style by name.
func LoadStyle(name string) (string, error) {
	return embedded.LoadStyle(name)
}

// LoadTemplate loads an embedded page template by name.
func LoadTemplate(name string) (string, error) {
	return embedded.LoadTemplate(name)
}

// Styles lists the embedded style names.
func Styles() []string {
	return embedded.ListStyles()
}
