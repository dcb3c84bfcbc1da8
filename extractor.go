package webextract

import "strings"

// HeadingLevels lists the heading tags reported in Result.Headings.
var HeadingLevels = []string{"h1", "h2", "h3", "h4", "h5", "h6"}

// CardClass is the class token that marks an element as a card.
const CardClass = "card"

// Result holds the fields extracted from an HTML page.
type Result struct {
	// Title is the text of the first title element, nil if there is none.
	Title *string `json:"title"`

	// MetaDescription is the content of the first description meta element.
	// Nil if the element is missing or has no content attribute.
	MetaDescription *string `json:"meta_description"`

	Body     string              `json:"body"`
	Links    []string            `json:"links"`
	Images   []string            `json:"images"`
	Headings map[string][]string `json:"headings"`
	Cards    []string            `json:"cards"`
}

// Summary is the minimal response shape: body text and links only.
type Summary struct {
	Body  string   `json:"body"`
	Links []string `json:"links"`
}

// Summary projects the result onto the minimal response shape.
func (r *Result) Summary() *Summary {
	return &Summary{
		Body:  r.Body,
		Links: r.Links,
	}
}

// Extract derives a Result from a parsed document.
// The only failure is a missing body element, reported as ENOTFOUND. Every
// other missing element or attribute degrades to a nil or empty field.
//
// All text fields use the same rule: descendant text nodes are concatenated
// as-is and the whole string is trimmed of surrounding whitespace.
func Extract(doc Document) (*Result, error) {
	bodies := doc.Find("body")
	if len(bodies) == 0 {
		return nil, Errorf(ENOTFOUND, "No body tag found in the webpage")
	}

	result := &Result{
		Title:           extractTitle(doc),
		MetaDescription: extractMetaDescription(doc),
		Body:            text(bodies[0]),
		Links:           attrValues(doc.Find("a"), "href"),
		Images:          attrValues(doc.Find("img"), "src"),
		Headings:        make(map[string][]string, len(HeadingLevels)),
		Cards:           texts(doc.FindFunc(isCard)),
	}
	for _, level := range HeadingLevels {
		result.Headings[level] = texts(doc.Find(level))
	}

	return result, nil
}

func extractTitle(doc Document) *string {
	titles := doc.Find("title")
	if len(titles) == 0 {
		return nil
	}
	title := text(titles[0])
	return &title
}

func extractMetaDescription(doc Document) *string {
	for _, meta := range doc.Find("meta") {
		if name, ok := meta.Attr("name"); !ok || name != "description" {
			continue
		}
		// Only the first description element counts, even without content.
		content, ok := meta.Attr("content")
		if !ok {
			return nil
		}
		return &content
	}
	return nil
}

// attrValues returns the raw value of attr for every node that carries it.
func attrValues(nodes []Node, attr string) []string {
	values := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if v, ok := n.Attr(attr); ok {
			values = append(values, v)
		}
	}
	return values
}

func texts(nodes []Node) []string {
	values := make([]string, 0, len(nodes))
	for _, n := range nodes {
		values = append(values, text(n))
	}
	return values
}

func text(n Node) string {
	return strings.TrimSpace(n.Text())
}

// isCard reports whether the class attribute contains the exact card token.
func isCard(n Node) bool {
	class, ok := n.Attr("class")
	if !ok {
		return false
	}
	for _, token := range strings.Fields(class) {
		if token == CardClass {
			return true
		}
	}
	return false
}
