package scraper

import (
	"bytes"
	"regexp"

	"github.com/fritzstats/fritzstats/pkg/types"
)

// scriptMarker introduces the status variables in the embedded-script page.
var scriptMarker = []byte(`["` + sar)

var scriptPair = regexp.MustCompile(`\[\s*"([^"]+)"\s*\]\s*=\s*"([^"]*)"`)

// ScriptParser reads the embedded-script format:
//
//	var data = {
//	    ["sar:status/ds_fec_minute"] = "3.5",
//	    ...
//	}
type ScriptParser struct {
	schema Schema
}

// NewScriptParser returns a parser for the embedded-script format.
func NewScriptParser(schema Schema) *ScriptParser {
	return &ScriptParser{schema: schema}
}

func (p *ScriptParser) Name() string { return "script" }

// Match reports whether body contains a status variable block.
func (p *ScriptParser) Match(body []byte) bool {
	return bytes.Contains(body, scriptMarker)
}

func (p *ScriptParser) Parse(body []byte) (*types.MetricsRecord, error) {
	block := scriptBlock(body)
	if block == nil {
		return nil, &ScrapeError{Kind: ErrUnsupportedFormat}
	}
	vars := ScriptVars(block)
	return buildRecord(p.schema, func(f Field) (string, bool, bool) {
		if f.ScriptKey == "" {
			return "", false, false
		}
		v, ok := vars[f.ScriptKey]
		return v, false, ok
	})
}

// ScriptVars extracts every ["key"] = "value" pair. Later keys win.
func ScriptVars(block []byte) map[string]string {
	vars := make(map[string]string)
	for _, m := range scriptPair.FindAllSubmatch(block, -1) {
		vars[string(m[1])] = string(m[2])
	}
	return vars
}

// scriptBlock returns the braced block holding the first status variable:
// from the nearest '{' before the marker to its matching '}'. Braces inside
// quoted strings are ignored. An unterminated block runs to the end of body.
func scriptBlock(body []byte) []byte {
	at := bytes.Index(body, scriptMarker)
	if at < 0 {
		return nil
	}
	start := bytes.LastIndexByte(body[:at], '{')
	if start < 0 {
		start = at
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(body); i++ {
		c := body[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth <= 0 {
				return body[start : i+1]
			}
		}
	}
	return body[start:]
}
