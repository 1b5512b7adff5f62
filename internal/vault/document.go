package vault

import (
	"bytes"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// Document is the raw material extraction works from: the document name,
// its frontmatter property bag, and display metadata.
type Document struct {
	RelPath    string
	Folder     string
	Title      string
	Tags       []string
	Properties map[string]any
	Body       []byte
}

var frontmatterFence = []byte("---")

// ParseDocument splits YAML frontmatter from content and extracts the
// display title. Malformed frontmatter yields an empty property bag rather
// than an error; a document without dates is simply not indexed, so parse
// problems must not abort a scan.
func ParseDocument(relPath string, content []byte) *Document {
	doc := &Document{
		RelPath: relPath,
		Folder:  folderOf(relPath),
	}

	frontmatter, body := splitFrontmatter(content)
	doc.Body = body

	if len(frontmatter) > 0 {
		var props map[string]any
		if err := yaml.Unmarshal(frontmatter, &props); err == nil {
			doc.Properties = props
			doc.Tags = tagsFrom(props)
		}
	}

	doc.Title = extractTitle(body, relPath)
	return doc
}

// splitFrontmatter returns the YAML block between leading "---" fences and
// the remaining body. Content without a frontmatter block is returned
// unchanged.
func splitFrontmatter(content []byte) (frontmatter, body []byte) {
	if !bytes.HasPrefix(content, frontmatterFence) {
		return nil, content
	}
	rest := content[len(frontmatterFence):]
	if len(rest) == 0 || (rest[0] != '\n' && !bytes.HasPrefix(rest, []byte("\r\n"))) {
		return nil, content
	}

	end := bytes.Index(rest, []byte("\n---"))
	if end == -1 {
		return nil, content
	}
	frontmatter = rest[:end+1]

	body = rest[end+len("\n---"):]
	if i := bytes.IndexByte(body, '\n'); i != -1 {
		body = body[i+1:]
	} else {
		body = nil
	}
	return frontmatter, body
}

// tagsFrom reads the conventional "tags" frontmatter field, accepting both
// a list and a single string.
func tagsFrom(props map[string]any) []string {
	switch v := props["tags"].(type) {
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []any:
		var tags []string
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				tags = append(tags, s)
			}
		}
		return tags
	default:
		return nil
	}
}

var titleParser = goldmark.New()

// extractTitle extracts the document title:
// 1. First # Heading (level 1)
// 2. First ## Heading (level 2) if no level 1
// 3. Filename without extension (capitalize words) if no headings
func extractTitle(body []byte, relPath string) string {
	if len(body) > 0 {
		doc := titleParser.Parser().Parse(text.NewReader(body))

		var firstH1, firstH2 string
		_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
			if !entering {
				return ast.WalkContinue, nil
			}
			heading, ok := n.(*ast.Heading)
			if !ok {
				return ast.WalkContinue, nil
			}

			headingText := headingText(heading, body)
			if heading.Level == 1 && firstH1 == "" {
				firstH1 = headingText
				return ast.WalkStop, nil
			}
			if heading.Level == 2 && firstH2 == "" {
				firstH2 = headingText
			}
			return ast.WalkContinue, nil
		})

		if firstH1 != "" {
			return firstH1
		}
		if firstH2 != "" {
			return firstH2
		}
	}

	return titleFromFilename(relPath)
}

// headingText collects the text content of a heading node.
func headingText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(source))
		case *ast.String:
			b.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

// titleFromFilename derives a title by removing the extension and
// capitalizing words.
func titleFromFilename(relPath string) string {
	name := filepath.Base(relPath)
	if ext := filepath.Ext(name); ext != "" {
		name = name[:len(name)-len(ext)]
	}

	words := strings.Fields(name)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
