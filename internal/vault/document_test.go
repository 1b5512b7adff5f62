package vault

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseDocument(t *testing.T) {
	tests := []struct {
		name    string
		relPath string
		content string
		check   func(t *testing.T, doc *Document)
	}{
		{
			name:    "frontmatter with dates and tags",
			relPath: "trips/rome.md",
			content: "---\nstartDate: \"2025-01-15\"\nendDate: \"2025-01-20\"\ntags:\n  - travel\n  - italy\n---\n# Rome Trip\n\nNotes here.",
			check: func(t *testing.T, doc *Document) {
				if doc.Properties["startDate"] != "2025-01-15" {
					t.Errorf("startDate = %v, want 2025-01-15", doc.Properties["startDate"])
				}
				if diff := cmp.Diff([]string{"travel", "italy"}, doc.Tags); diff != "" {
					t.Errorf("tags mismatch (-want +got):\n%s", diff)
				}
				if doc.Title != "Rome Trip" {
					t.Errorf("title = %q, want %q", doc.Title, "Rome Trip")
				}
				if doc.Folder != "trips" {
					t.Errorf("folder = %q, want %q", doc.Folder, "trips")
				}
			},
		},
		{
			name:    "no frontmatter",
			relPath: "note.md",
			content: "# Just A Note\n\nBody.",
			check: func(t *testing.T, doc *Document) {
				if doc.Properties != nil {
					t.Errorf("properties = %v, want nil", doc.Properties)
				}
				if doc.Title != "Just A Note" {
					t.Errorf("title = %q, want %q", doc.Title, "Just A Note")
				}
			},
		},
		{
			name:    "h2 title when no h1",
			relPath: "note.md",
			content: "## Secondary Heading\n\nBody.",
			check: func(t *testing.T, doc *Document) {
				if doc.Title != "Secondary Heading" {
					t.Errorf("title = %q, want %q", doc.Title, "Secondary Heading")
				}
			},
		},
		{
			name:    "title falls back to filename",
			relPath: "daily/morning pages.md",
			content: "no headings here",
			check: func(t *testing.T, doc *Document) {
				if doc.Title != "Morning Pages" {
					t.Errorf("title = %q, want %q", doc.Title, "Morning Pages")
				}
			},
		},
		{
			name:    "malformed frontmatter is skipped",
			relPath: "bad.md",
			content: "---\nkey: [unclosed\n---\n# Valid Title",
			check: func(t *testing.T, doc *Document) {
				if doc.Properties != nil {
					t.Errorf("properties = %v, want nil for malformed frontmatter", doc.Properties)
				}
				if doc.Title != "Valid Title" {
					t.Errorf("title = %q, want %q", doc.Title, "Valid Title")
				}
			},
		},
		{
			name:    "unclosed frontmatter treated as body",
			relPath: "open.md",
			content: "---\nstartDate: 2025-01-15\nno closing fence",
			check: func(t *testing.T, doc *Document) {
				if doc.Properties != nil {
					t.Errorf("properties = %v, want nil", doc.Properties)
				}
			},
		},
		{
			name:    "single string tag",
			relPath: "note.md",
			content: "---\ntags: inbox\n---\nbody",
			check: func(t *testing.T, doc *Document) {
				if diff := cmp.Diff([]string{"inbox"}, doc.Tags); diff != "" {
					t.Errorf("tags mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name:    "empty file",
			relPath: "empty.md",
			content: "",
			check: func(t *testing.T, doc *Document) {
				if doc.Title != "Empty" {
					t.Errorf("title = %q, want %q", doc.Title, "Empty")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := ParseDocument(tt.relPath, []byte(tt.content))
			tt.check(t, doc)
		})
	}
}

func TestParseDocumentUnquotedYAMLDate(t *testing.T) {
	// Unquoted YAML dates decode to time.Time; the property bag must carry
	// them through untouched for the extraction layer to classify.
	doc := ParseDocument("note.md", []byte("---\ndate: 2025-01-15\n---\nbody"))
	if doc.Properties == nil {
		t.Fatal("properties = nil, want date field")
	}
	if _, ok := doc.Properties["date"]; !ok {
		t.Fatal("date property missing")
	}
}
