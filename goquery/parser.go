// Package goquery implements webextract.Parser on top of goquery and the
// golang.org/x/net/html HTML5 parser.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webextract"
	"golang.org/x/net/html"
)

// Ensure Parser implements webextract.Parser at compile time.
var _ webextract.Parser = (*Parser)(nil)

// synthesizedTags are the elements the HTML5 tree builder inserts when the
// source omits them.
var synthesizedTags = []string{"html", "head", "body"}

// Parser parses markup into a queryable Document.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse builds a Document from markup. Malformed markup never fails: the
// HTML5 algorithm closes open elements and keeps unknown tags as generic
// elements. Scripting is disabled, so <noscript> content is parsed as
// markup the way a client without JavaScript sees it.
//
// Elements the tree builder synthesized (html, head and body without a
// matching start tag in the source) are hidden from queries, so a page
// without a <body> tag reports no body element. Their descendants stay
// visible.
func (p *Parser) Parse(markup string) (webextract.Document, error) {
	root, err := html.ParseWithOptions(strings.NewReader(markup), html.ParseOptionEnableScripting(false))
	if err != nil {
		return nil, webextract.Errorf(webextract.EINTERNAL, "failed to parse HTML: %v", err)
	}
	doc := goquery.NewDocumentFromNode(root)

	seen := startTags(markup, synthesizedTags)
	implied := make(map[*html.Node]bool)
	for _, tag := range synthesizedTags {
		if seen[tag] {
			continue
		}
		for _, n := range doc.Find(tag).Nodes {
			implied[n] = true
		}
	}

	return &Document{doc: doc, implied: implied}, nil
}

// startTags reports which of tags occur as start tags in markup.
// The tokenizer skips comments and raw text, so "<body>" inside a script
// or comment does not count. <noscript> content is tokenized as markup to
// match the tree builder with scripting disabled.
func startTags(markup string, tags []string) map[string]bool {
	want := make(map[string]bool, len(tags))
	for _, tag := range tags {
		want[tag] = true
	}

	seen := make(map[string]bool)
	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return seen
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if string(name) == "noscript" {
				z.NextIsNotRawText()
			}
			if want[string(name)] {
				seen[string(name)] = true
			}
		}
	}
}

// Ensure Document implements webextract.Document at compile time.
var _ webextract.Document = (*Document)(nil)

// Document is a parsed HTML tree.
type Document struct {
	doc     *goquery.Document
	implied map[*html.Node]bool
}

// Find returns all elements with the given tag name in document order.
func (d *Document) Find(tag string) []webextract.Node {
	tag = strings.ToLower(tag)
	return d.FindFunc(func(n webextract.Node) bool {
		return n.Tag() == tag
	})
}

// FindFunc returns all elements for which match returns true, in document order.
func (d *Document) FindFunc(match func(webextract.Node) bool) []webextract.Node {
	var nodes []webextract.Node
	d.doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		if d.implied[sel.Get(0)] {
			return
		}
		n := &Node{sel: sel}
		if match(n) {
			nodes = append(nodes, n)
		}
	})
	return nodes
}

// Ensure Node implements webextract.Node at compile time.
var _ webextract.Node = (*Node)(nil)

// Node is a single element in a Document.
type Node struct {
	sel *goquery.Selection
}

// Tag returns the lowercase element name.
func (n *Node) Tag() string {
	return goquery.NodeName(n.sel)
}

// Attr returns the value of the named attribute and whether it is set.
func (n *Node) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}

// Text returns the concatenated descendant text in document order.
// Contents of script, style and template elements are not page text and
// are skipped, as are ruby annotations (rt, rp).
func (n *Node) Text() string {
	var b strings.Builder
	collectText(&b, n.sel.Get(0))
	return b.String()
}

func collectText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		switch n.Data {
		case "script", "style", "template", "rt", "rp":
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c)
	}
}
