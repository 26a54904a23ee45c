package scraper

import (
	"context"
	"errors"
	"net/http"

	"github.com/fritzstats/fritzstats/internal/logging"
	"github.com/fritzstats/fritzstats/internal/session"
	"github.com/fritzstats/fritzstats/pkg/types"
)

// Scraper fetches and parses one status page per call.
type Scraper struct {
	client   *http.Client
	endpoint session.AuthEndpoint
	parser   PageParser
	page     string
	onPage   func(body []byte)
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithPage overrides the endpoint's default status page. Empty is ignored.
func WithPage(page string) Option {
	return func(s *Scraper) {
		if page != "" {
			s.page = page
		}
	}
}

// WithPageHook registers fn to receive every raw page body before it is
// parsed.
func WithPageHook(fn func(body []byte)) Option {
	return func(s *Scraper) { s.onPage = fn }
}

// New returns a Scraper that fetches through endpoint and parses with parser.
func New(client *http.Client, endpoint session.AuthEndpoint, parser PageParser, opts ...Option) *Scraper {
	s := &Scraper{
		client:   client,
		endpoint: endpoint,
		parser:   parser,
		page:     endpoint.DefaultPage(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Page returns the status page path the scraper requests.
func (s *Scraper) Page() string { return s.page }

// Fetch requests the status page with sess and parses it.
func (s *Scraper) Fetch(ctx context.Context, sess session.Session) (*types.MetricsRecord, error) {
	body, err := s.FetchPage(ctx, sess)
	if err != nil {
		return nil, err
	}
	if s.onPage != nil {
		s.onPage(body)
	}

	rec, err := s.parser.Parse(body)
	if err != nil {
		var se *ScrapeError
		if errors.As(err, &se) && se.Page == "" {
			se.Page = s.page
		}
		return nil, err
	}
	logging.FromContext(ctx).Debug("scraper: page parsed",
		"page", s.page, "parser", s.parser.Name(), "fields", rec.Len())
	return rec, nil
}

// FetchPage returns the raw status page body.
func (s *Scraper) FetchPage(ctx context.Context, sess session.Session) ([]byte, error) {
	req, err := s.endpoint.PageRequest(ctx, s.page, sess.ID)
	if err != nil {
		return nil, &ScrapeError{Kind: ErrPageUnreachable, Page: s.page, Err: err}
	}
	status, body, err := session.Do(s.client, req)
	if err != nil {
		return nil, &ScrapeError{Kind: ErrPageUnreachable, Page: s.page, Err: err}
	}
	if !session.IsSuccess(status) {
		return nil, &ScrapeError{Kind: ErrPageUnreachable, Page: s.page, StatusCode: status}
	}
	return body, nil
}
