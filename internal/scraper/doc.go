// Package scraper fetches the DSL status page with a session id and parses it
// into a types.MetricsRecord.
//
// Two page formats exist, depending on firmware: an embedded script block of
// ["sar:status/..."] = "value" pairs (ScriptParser) and an XML document with
// rx/tx or cpe/coe attributes (XMLParser). NewParser selects one by name, or
// by content for "auto".
//
// Schema is the fixed field list. Every field is present in every record;
// fields a format does not expose, and values the device reports as "-",
// are types.Unavailable (-1). Non-numeric values fail the whole parse with
// ErrFieldParse. Per-second XML rates are scaled to per-minute.
//
// Parse is pure: the same body and format always give the same record, so a
// dumped page can be re-parsed offline.
package scraper
