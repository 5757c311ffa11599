package tweet2html

import (
	"reflect"
	"strings"
	"testing"

	"github.com/alnah/go-tweet2html/internal/pipeline"
)

func TestPostRawText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		post Post
		want string
	}{
		{"full text preferred", Post{Text: "a…", FullText: "abc"}, "abc"},
		{"text fallback", Post{Text: "abc"}, "abc"},
		{"empty", Post{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.post.RawText(); got != tt.want {
				t.Errorf("RawText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToEntityBag(t *testing.T) {
	t.Parallel()

	post := newPost()
	post.Entities.Media = []Media{{
		Indices: []int{1, 2}, Type: "photo", ExpandedURL: "https://e", MediaURLHTTPS: "https://i",
	}}

	bag := toEntityBag(post)

	want := pipeline.EntityBag{
		pipeline.CategoryMedia: {{
			Indices: []int{1, 2}, ExpandedURL: "https://e", MediaURL: "https://i", MediaType: pipeline.MediaPhoto,
		}},
		pipeline.CategoryHashtags: {{Indices: []int{0, 3}, Text: "go"}},
		pipeline.CategoryMentions: {{Indices: []int{7, 14}, Text: "gopher", UserID: "7"}},
		pipeline.CategoryURLs: {{
			Indices: []int{15, 29}, DisplayURL: "go.dev", ExpandedURL: "https://go.dev",
		}},
	}
	if !reflect.DeepEqual(bag, want) {
		t.Errorf("toEntityBag() =\n%+v\nwant\n%+v", bag, want)
	}

	bag[pipeline.CategoryHashtags][0].Indices[0] = 99
	if post.Entities.Hashtags[0].Indices[0] != 0 {
		t.Error("entity bag shares index memory with the post")
	}
}

func TestToEntityBag_ExtendedMedia(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		extended *Entities
		wantURL  string
	}{
		{
			name:    "no extended entities",
			wantURL: "https://standard",
		},
		{
			name:     "extended entities without media",
			extended: &Entities{},
			wantURL:  "https://standard",
		},
		{
			name: "extended media replace standard media",
			extended: &Entities{Media: []Media{{
				Indices: []int{0, 1}, Type: "photo", ExpandedURL: "https://extended",
			}}},
			wantURL: "https://extended",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			post := &Post{
				Text: "x",
				Entities: Entities{Media: []Media{{
					Indices: []int{0, 1}, Type: "photo", ExpandedURL: "https://standard",
				}}},
				ExtendedEntities: tt.extended,
			}
			media := toEntityBag(post)[pipeline.CategoryMedia]
			if len(media) != 1 || media[0].ExpandedURL != tt.wantURL {
				t.Errorf("media = %+v, want one entity from %s", media, tt.wantURL)
			}
		})
	}
}

func TestToDropped(t *testing.T) {
	t.Parallel()

	if got := toDropped(nil); got != nil {
		t.Errorf("toDropped(nil) = %+v, want nil", got)
	}

	got := toDropped([]pipeline.Adjustment{{Span: pipeline.Span{Start: 1, End: 3}, Replacement: "<a>"}})
	want := []Adjustment{{Start: 1, End: 3, Replacement: "<a>"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("toDropped() = %+v, want %+v", got, want)
	}
}

func TestResultFragment(t *testing.T) {
	t.Parallel()

	bare := &Result{Markup: "<div>text</div>"}
	if got := bare.Fragment(); got != "<div>text</div>" {
		t.Errorf("Fragment() without photo = %q, want markup only", got)
	}

	withPhoto := &Result{
		Markup: "<div>text</div>",
		Photo:  &Photo{URL: "https://t.co/p", Src: "https://pbs.example/p.jpg"},
	}
	got := withPhoto.Fragment()
	if !strings.HasPrefix(got, "<div>text</div>") {
		t.Errorf("Fragment() = %q, want markup first", got)
	}
	if !strings.Contains(got, `src="https://pbs.example/p.jpg"`) {
		t.Errorf("Fragment() = %q, want photo image", got)
	}
}
