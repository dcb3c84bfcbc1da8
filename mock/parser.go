package mock

import "github.com/fwojciec/webextract"

var _ webextract.Parser = (*Parser)(nil)

// Parser is a mock implementation of webextract.Parser.
type Parser struct {
	ParseFn func(html string) (webextract.Document, error)
}

func (p *Parser) Parse(html string) (webextract.Document, error) {
	return p.ParseFn(html)
}
