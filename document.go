package webextract

// Node is an element in a parsed HTML document.
type Node interface {
	// Tag returns the lowercase element name (e.g. "a", "h2").
	Tag() string

	// Attr returns the value of the named attribute and whether it is set.
	Attr(name string) (string, bool)

	// Text returns the content of all descendant text nodes concatenated in
	// document order, unmodified.
	Text() string
}

// Document is a read-only, queryable HTML tree.
// A Document is owned by a single extraction and never mutated after parsing.
type Document interface {
	// Find returns all elements with the given tag name in document order.
	Find(tag string) []Node

	// FindFunc returns all elements for which match returns true, in
	// document order.
	FindFunc(match func(Node) bool) []Node
}

// Parser builds a Document from raw markup.
// Parsing is tolerant: malformed markup yields a best-effort tree rather
// than an error. Errors are reserved for failures reading the input.
type Parser interface {
	Parse(html string) (Document, error)
}
