package assets

import (
	"errors"
	"html/template"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Embedded assets
// ---------------------------------------------------------------------------

func TestLoadStyle(t *testing.T) {
	t.Parallel()

	for _, name := range []string{DefaultStyleName, "dark"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			css, err := LoadStyle(name)
			if err != nil {
				t.Fatalf("LoadStyle(%q) error = %v", name, err)
			}
			for _, sel := range []string{".text", ".photo__img", "iframe.video", ".post__meta"} {
				if !strings.Contains(css, sel) {
					t.Errorf("style %q missing selector %q", name, sel)
				}
			}
		})
	}

	t.Run("unknown style", func(t *testing.T) {
		t.Parallel()

		_, err := LoadStyle("nonexistent")
		if !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("error = %v, want ErrStyleNotFound", err)
		}
	})

	t.Run("invalid name", func(t *testing.T) {
		t.Parallel()

		_, err := LoadStyle("../default")
		if !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("error = %v, want ErrInvalidAssetName", err)
		}
	})
}

func TestLoadTemplate(t *testing.T) {
	t.Parallel()

	content, err := LoadTemplate(PageTemplateName)
	if err != nil {
		t.Fatalf("LoadTemplate(%q) error = %v", PageTemplateName, err)
	}
	for _, field := range []string{"{{.Body}}", "{{.Photo}}", ".Href", ".Date", ".Handle"} {
		if !strings.Contains(content, field) {
			t.Errorf("page template missing %q", field)
		}
	}
	if _, err := template.New("page").Parse(content); err != nil {
		t.Errorf("page template does not parse: %v", err)
	}

	if _, err := LoadTemplate("cover"); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("LoadTemplate(cover) error = %v, want ErrTemplateNotFound", err)
	}
}

func TestStyles(t *testing.T) {
	t.Parallel()

	got := Styles()
	want := []string{"dark", "default"}
	if len(got) != len(want) {
		t.Fatalf("Styles() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Styles()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
