package scraper

import (
	"errors"
	"fmt"
)

var (
	ErrPageUnreachable   = errors.New("page unreachable")
	ErrFieldParse        = errors.New("field parse failed")
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// ScrapeError reports why a status page could not be turned into a record.
type ScrapeError struct {
	// Kind is one of the Err* sentinels above.
	Kind error
	// Page is the status page path, when known.
	Page string
	// Field names the schema field for ErrFieldParse.
	Field string
	// StatusCode is the HTTP status for ErrPageUnreachable, zero otherwise.
	StatusCode int
	Err        error
}

func (e *ScrapeError) Error() string {
	msg := "scrape"
	if e.Page != "" {
		msg += " " + e.Page
	}
	msg += ": " + e.Kind.Error()
	if e.Field != "" {
		msg += fmt.Sprintf(" (field %s)", e.Field)
	}
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *ScrapeError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func fieldError(field string, err error) *ScrapeError {
	return &ScrapeError{Kind: ErrFieldParse, Field: field, Err: err}
}
