// Package fritztest provides an in-process fake FRITZ!Box for tests. It
// speaks both login endpoint shapes and serves a configurable status page.
package fritztest

import (
	"crypto/md5" //nolint:gosec // mirrors the device's login hash
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"unicode/utf16"
)

// ZeroSID is what the device returns in place of a session id on failure.
const ZeroSID = "0000000000000000"

// Request is one request the fake device received.
type Request struct {
	Method string
	Path   string
	Query  string
	Body   string
}

// Device is a fake router. Set fields before the first request.
type Device struct {
	Server *httptest.Server

	// Legacy serves cgi-bin/webcm; otherwise login_sid.lua.
	Legacy bool

	Challenge string
	Password  string
	Username  string
	SID       string

	// PagePath is the status page path the device serves (without the
	// leading slash for the modern shape).
	PagePath string
	Page     []byte

	// Non-zero values force that status on the corresponding stage.
	ChallengeStatus int
	LoginStatus     int
	PageStatus      int

	// ChallengeBody, when set, replaces the generated challenge document.
	ChallengeBody string

	mu       sync.Mutex
	requests []Request
}

// NewDevice starts a fake device and stops it when the test ends.
func NewDevice(t testing.TB, legacy bool, page []byte) *Device {
	t.Helper()
	d := &Device{
		Legacy:    legacy,
		Challenge: "1234567z",
		Password:  "password",
		SID:       "b2d5f0e9c8a71b3f",
		Page:      page,
	}
	if legacy {
		d.PagePath = "../html/de/internet/adsldaten.xml"
	} else {
		d.PagePath = "internet/dsl_stats_tab.lua"
	}
	d.Server = httptest.NewServer(http.HandlerFunc(d.serve))
	t.Cleanup(d.Server.Close)
	return d
}

// Host returns the host:port the device listens on.
func (d *Device) Host() string {
	return strings.TrimPrefix(d.Server.URL, "http://")
}

// Requests returns a copy of every request received so far.
func (d *Device) Requests() []Request {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Request(nil), d.requests...)
}

// ExpectedResponse is the login response the device accepts.
func (d *Device) ExpectedResponse() string {
	u := utf16.Encode([]rune(d.Challenge + "-" + d.Password))
	buf := make([]byte, 0, len(u)*2)
	for _, c := range u {
		buf = append(buf, byte(c), byte(c>>8))
	}
	sum := md5.Sum(buf) //nolint:gosec
	return d.Challenge + "-" + hex.EncodeToString(sum[:])
}

func (d *Device) serve(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	d.mu.Lock()
	d.requests = append(d.requests, Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Body:   string(raw),
	})
	d.mu.Unlock()

	if d.Legacy {
		d.serveLegacy(w, r, string(raw))
		return
	}
	d.serveModern(w, r)
}

func (d *Device) serveLegacy(w http.ResponseWriter, r *http.Request, body string) {
	if r.URL.Path != "/cgi-bin/webcm" {
		http.NotFound(w, r)
		return
	}
	if r.Method == http.MethodGet {
		if r.URL.Query().Get("getpage") != "../html/login_sid.xml" {
			http.NotFound(w, r)
			return
		}
		d.writeChallenge(w)
		return
	}

	form, err := url.ParseQuery(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if resp := form.Get("login:command/response"); resp != "" {
		d.writeLogin(w, resp, "")
		return
	}
	d.writePage(w, form.Get("getpage"), form.Get("sid"))
}

func (d *Device) serveModern(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if r.URL.Path == "/login_sid.lua" {
		if resp := q.Get("response"); resp != "" {
			d.writeLogin(w, resp, q.Get("username"))
			return
		}
		d.writeChallenge(w)
		return
	}
	d.writePage(w, strings.TrimPrefix(r.URL.Path, "/"), q.Get("sid"))
}

func (d *Device) writeChallenge(w http.ResponseWriter) {
	if d.ChallengeStatus != 0 {
		w.WriteHeader(d.ChallengeStatus)
		return
	}
	if d.ChallengeBody != "" {
		_, _ = io.WriteString(w, d.ChallengeBody)
		return
	}
	writeSessionInfo(w, ZeroSID, d.Challenge)
}

func (d *Device) writeLogin(w http.ResponseWriter, response, username string) {
	if d.LoginStatus != 0 {
		w.WriteHeader(d.LoginStatus)
		return
	}
	sid := ZeroSID
	if response == d.ExpectedResponse() && username == d.Username {
		sid = d.SID
	}
	writeSessionInfo(w, sid, d.Challenge)
}

func (d *Device) writePage(w http.ResponseWriter, page, sid string) {
	if d.PageStatus != 0 {
		w.WriteHeader(d.PageStatus)
		return
	}
	if sid != d.SID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	if page != d.PagePath {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	_, _ = w.Write(d.Page)
}

func writeSessionInfo(w http.ResponseWriter, sid, challenge string) {
	w.Header().Set("Content-Type", "text/xml")
	fmt.Fprintf(w, `<?xml version="1.0" encoding="utf-8"?>`+
		`<SessionInfo><SID>%s</SID><Challenge>%s</Challenge><BlockTime>0</BlockTime></SessionInfo>`,
		sid, challenge)
}
