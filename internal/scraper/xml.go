package scraper

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"

	"github.com/fritzstats/fritzstats/pkg/types"
)

// XMLParser reads the XML attribute format:
//
//	<DSL>
//	  <DATARATE rx="16000" tx="1024"/>
//	  <STATISTIC><ES cpe="12" coe="7"/></STATISTIC>
//	</DSL>
type XMLParser struct {
	schema Schema
	// tags are the "<NAME" openers of every element the schema reads.
	tags [][]byte
}

// NewXMLParser returns a parser for the XML attribute format.
func NewXMLParser(schema Schema) *XMLParser {
	seen := make(map[string]bool)
	var tags [][]byte
	for _, f := range schema.fields {
		if !f.XML.Exposed() {
			continue
		}
		name := f.XML.Path[strings.LastIndexByte(f.XML.Path, '/')+1:]
		if !seen[name] {
			seen[name] = true
			tags = append(tags, []byte("<"+name))
		}
	}
	return &XMLParser{schema: schema, tags: tags}
}

func (p *XMLParser) Name() string { return "xml" }

// Match reports whether body looks like an XML document carrying at least
// one schema element. It only scans bytes; Parse does the decoding.
func (p *XMLParser) Match(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '<' {
		return false
	}
	for _, tag := range p.tags {
		if hasElement(trimmed, tag) {
			return true
		}
	}
	return false
}

// hasElement reports whether body contains tag ("<NAME") as a whole element
// name.
func hasElement(body, tag []byte) bool {
	for rest := body; ; {
		i := bytes.Index(rest, tag)
		if i < 0 {
			return false
		}
		end := i + len(tag)
		if end == len(rest) {
			return false
		}
		switch rest[end] {
		case ' ', '\t', '\n', '\r', '/', '>':
			return true
		}
		rest = rest[end:]
	}
}

func (p *XMLParser) Parse(body []byte) (*types.MetricsRecord, error) {
	doc, err := indexXML(body)
	if err != nil {
		return nil, &ScrapeError{Kind: ErrUnsupportedFormat, Err: err}
	}
	if !p.known(doc) {
		return nil, &ScrapeError{Kind: ErrUnsupportedFormat, Err: errors.New("no known elements")}
	}
	return buildRecord(p.schema, func(f Field) (string, bool, bool) {
		if !f.XML.Exposed() {
			return "", false, false
		}
		v, ok := doc.attr(f.XML.Path, f.XML.Attr)
		return v, f.XML.PerSecond, ok
	})
}

func (p *XMLParser) known(doc xmlIndex) bool {
	for _, f := range p.schema.fields {
		if f.XML.Exposed() && doc.find(f.XML.Path) != nil {
			return true
		}
	}
	return false
}

// xmlElement is one element's slash-joined path from the root and its
// attributes.
type xmlElement struct {
	path  string
	attrs map[string]string
}

// xmlIndex lists elements in document order.
type xmlIndex []xmlElement

// find returns the first element whose path ends in suffix.
func (x xmlIndex) find(suffix string) *xmlElement {
	for i := range x {
		p := x[i].path
		if p == suffix || strings.HasSuffix(p, "/"+suffix) {
			return &x[i]
		}
	}
	return nil
}

func (x xmlIndex) attr(path, name string) (string, bool) {
	el := x.find(path)
	if el == nil {
		return "", false
	}
	v, ok := el.attrs[name]
	return v, ok
}

func indexXML(body []byte) (xmlIndex, error) {
	dec := xml.NewDecoder(bytes.NewReader(body))
	dec.CharsetReader = charsetReader

	var (
		doc   xmlIndex
		stack []string
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			stack = append(stack, t.Name.Local)
			attrs := make(map[string]string, len(t.Attr))
			for _, a := range t.Attr {
				attrs[a.Name.Local] = a.Value
			}
			doc = append(doc, xmlElement{path: strings.Join(stack, "/"), attrs: attrs})
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		}
	}
	if len(doc) == 0 {
		return nil, errors.New("decode xml: no elements")
	}
	return doc, nil
}

// charsetReader handles the non-UTF-8 declarations older firmware emits
// (iso-8859-1 mostly).
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
	}
	return enc.NewDecoder().Reader(input), nil
}
