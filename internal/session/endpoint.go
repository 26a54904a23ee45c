package session

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/fritzstats/fritzstats/internal/logging"
)

// Endpoint kinds accepted by NewEndpoint.
const (
	KindLegacy = "legacy"
	KindModern = "modern"
)

const (
	legacyCGI      = "/cgi-bin/webcm"
	legacySIDPage  = "../html/login_sid.xml"
	legacyDSLPage  = "../html/de/internet/adsldaten.xml"
	modernLoginLua = "/login_sid.lua"
	modernDSLPage  = "internet/dsl_stats_tab.lua"
	formContent    = "application/x-www-form-urlencoded"
)

// AuthEndpoint builds the three requests of one poll for a given firmware
// generation. Implementations only build requests; Manager and the scraper
// send them.
type AuthEndpoint interface {
	// Name is the kind string: "legacy" or "modern".
	Name() string
	// DefaultPage is the DSL status page used when none is configured.
	DefaultPage() string
	ChallengeRequest(ctx context.Context) (*http.Request, error)
	LoginRequest(ctx context.Context, response, username string) (*http.Request, error)
	PageRequest(ctx context.Context, page, sid string) (*http.Request, error)
}

// NewEndpoint returns the endpoint for kind ("legacy" or "modern") on host.
func NewEndpoint(kind, host string) (AuthEndpoint, error) {
	base := baseURL(host)
	switch kind {
	case KindLegacy:
		return &Legacy{base: base}, nil
	case KindModern:
		return &Modern{base: base}, nil
	default:
		return nil, fmt.Errorf("session: unsupported endpoint kind %q", kind)
	}
}

// Probe asks the device for a modern login challenge and returns Modern if
// one comes back, Legacy otherwise. It never fails: an unreachable device
// is reported by the real challenge request that follows.
func Probe(ctx context.Context, client *http.Client, host string) AuthEndpoint {
	modern := &Modern{base: baseURL(host)}
	legacy := &Legacy{base: modern.base}

	req, err := modern.ChallengeRequest(ctx)
	if err != nil {
		return legacy
	}
	status, body, err := Do(client, req)
	if err != nil || !IsSuccess(status) {
		logging.FromContext(ctx).Debug("session: modern login endpoint not available, using legacy",
			"host", host, "status", status, "err", err)
		return legacy
	}
	if _, ok := extractChallenge(body); !ok {
		return legacy
	}
	return modern
}

// Legacy is the cgi-bin/webcm interface of older firmware.
type Legacy struct {
	base string
}

func (e *Legacy) Name() string        { return KindLegacy }
func (e *Legacy) DefaultPage() string { return legacyDSLPage }

func (e *Legacy) ChallengeRequest(ctx context.Context) (*http.Request, error) {
	return http.NewRequestWithContext(ctx, http.MethodGet,
		e.base+legacyCGI+"?getpage="+legacySIDPage, nil)
}

// LoginRequest posts the response; the username is not supported by webcm.
func (e *Legacy) LoginRequest(ctx context.Context, response, _ string) (*http.Request, error) {
	body := "login:command/response=" + formEscape(response) + "&getpage=" + legacySIDPage
	return e.post(ctx, body)
}

func (e *Legacy) PageRequest(ctx context.Context, page, sid string) (*http.Request, error) {
	body := "getpage=" + formEscape(page) + "&sid=" + formEscape(sid)
	return e.post(ctx, body)
}

func (e *Legacy) post(ctx context.Context, body string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.base+legacyCGI, strings.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", formContent)
	return req, nil
}

// Modern is the login_sid.lua interface of current firmware.
type Modern struct {
	base string
}

func (e *Modern) Name() string        { return KindModern }
func (e *Modern) DefaultPage() string { return modernDSLPage }

func (e *Modern) ChallengeRequest(ctx context.Context) (*http.Request, error) {
	return http.NewRequestWithContext(ctx, http.MethodGet, e.base+modernLoginLua, nil)
}

func (e *Modern) LoginRequest(ctx context.Context, response, username string) (*http.Request, error) {
	q := url.Values{"response": {response}}
	if username != "" {
		q.Set("username", username)
	}
	return http.NewRequestWithContext(ctx, http.MethodGet, e.base+modernLoginLua+"?"+q.Encode(), nil)
}

func (e *Modern) PageRequest(ctx context.Context, page, sid string) (*http.Request, error) {
	sep := "?"
	if strings.Contains(page, "?") {
		sep = "&"
	}
	u := e.base + "/" + strings.TrimPrefix(page, "/") + sep + "sid=" + url.QueryEscape(sid)
	return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
}

// baseURL turns a bare host into an http:// URL. Hosts that already carry a
// scheme are used as given.
func baseURL(host string) string {
	host = strings.TrimRight(host, "/")
	if strings.Contains(host, "://") {
		return host
	}
	return "http://" + host
}

// formEscape query-escapes v but leaves '/' alone; webcm page paths are sent
// verbatim.
func formEscape(v string) string {
	return strings.ReplaceAll(url.QueryEscape(v), "%2F", "/")
}
