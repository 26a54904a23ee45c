package scraper

import (
	"fmt"

	"github.com/fritzstats/fritzstats/pkg/types"
)

// Page formats accepted by NewParser.
const (
	FormatAuto   = "auto"
	FormatScript = "script"
	FormatXML    = "xml"
)

// PageParser turns one status page body into a record.
type PageParser interface {
	Name() string
	// Match reports whether the parser recognises body.
	Match(body []byte) bool
	Parse(body []byte) (*types.MetricsRecord, error)
}

// NewParser returns the parser for format. "auto" picks script or XML per
// page by content.
func NewParser(format string, schema Schema) (PageParser, error) {
	switch format {
	case FormatScript:
		return NewScriptParser(schema), nil
	case FormatXML:
		return NewXMLParser(schema), nil
	case FormatAuto, "":
		return &autoParser{candidates: []PageParser{
			NewScriptParser(schema),
			NewXMLParser(schema),
		}}, nil
	default:
		return nil, fmt.Errorf("scraper: unsupported format %q", format)
	}
}

// Parse parses body with the parser for format.
func Parse(body []byte, format string, schema Schema) (*types.MetricsRecord, error) {
	p, err := NewParser(format, schema)
	if err != nil {
		return nil, err
	}
	return p.Parse(body)
}

// autoParser delegates to the first candidate whose Match accepts the body.
type autoParser struct {
	candidates []PageParser
}

func (p *autoParser) Name() string { return FormatAuto }

func (p *autoParser) Match(body []byte) bool {
	return p.Select(body) != nil
}

// Select returns the candidate that recognises body, or nil.
func (p *autoParser) Select(body []byte) PageParser {
	for _, c := range p.candidates {
		if c.Match(body) {
			return c
		}
	}
	return nil
}

func (p *autoParser) Parse(body []byte) (*types.MetricsRecord, error) {
	c := p.Select(body)
	if c == nil {
		return nil, &ScrapeError{Kind: ErrUnsupportedFormat}
	}
	return c.Parse(body)
}
