package session

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"github.com/fritzstats/fritzstats/internal/logging"
)

var (
	challengeTag = regexp.MustCompile(`<Challenge>(.*?)</Challenge>`)
	challengeVar = regexp.MustCompile(`\bchallenge"?\s*[:=]\s*"([^"]+)"`)
	sidTag       = regexp.MustCompile(`<SID>(.*?)</SID>`)
)

// Credentials identify one device login. Immutable for one poll.
type Credentials struct {
	Host     string
	Username string
	Password string
}

// Session is the result of a successful handshake.
type Session struct {
	ID string
}

// Manager runs the challenge-response handshake. It holds no state between
// calls besides its client and endpoint.
type Manager struct {
	client   *http.Client
	endpoint AuthEndpoint
}

// NewManager returns a Manager that logs in through endpoint.
func NewManager(client *http.Client, endpoint AuthEndpoint) *Manager {
	return &Manager{client: client, endpoint: endpoint}
}

// Endpoint returns the endpoint the Manager logs in through.
func (m *Manager) Endpoint() AuthEndpoint { return m.endpoint }

// Login fetches a challenge, answers it and returns the new session.
// Each failing stage aborts the handshake with an *AuthError.
func (m *Manager) Login(ctx context.Context, creds Credentials) (Session, error) {
	log := logging.FromContext(ctx)

	req, err := m.endpoint.ChallengeRequest(ctx)
	if err != nil {
		return Session{}, &AuthError{Kind: ErrChallengeUnreachable, Host: creds.Host, Err: err}
	}
	status, body, err := Do(m.client, req)
	if err != nil {
		return Session{}, &AuthError{Kind: ErrChallengeUnreachable, Host: creds.Host, Err: err}
	}
	if !IsSuccess(status) {
		return Session{}, &AuthError{Kind: ErrChallengeUnreachable, Host: creds.Host, StatusCode: status}
	}

	challenge, ok := extractChallenge(body)
	if !ok {
		return Session{}, &AuthError{Kind: ErrChallengeNotFound, Host: creds.Host}
	}
	log.Debug("session: got challenge", "host", creds.Host, "endpoint", m.endpoint.Name())

	response, err := Response(challenge, creds.Password)
	if err != nil {
		return Session{}, &AuthError{Kind: ErrLoginRejected, Host: creds.Host, Err: err}
	}

	req, err = m.endpoint.LoginRequest(ctx, response, creds.Username)
	if err != nil {
		return Session{}, &AuthError{Kind: ErrLoginRejected, Host: creds.Host, Err: err}
	}
	status, body, err = Do(m.client, req)
	if err != nil {
		return Session{}, &AuthError{Kind: ErrLoginRejected, Host: creds.Host, Err: err}
	}
	if !IsSuccess(status) {
		return Session{}, &AuthError{Kind: ErrLoginRejected, Host: creds.Host, StatusCode: status}
	}

	sid, ok := extractSID(body)
	if !ok {
		return Session{}, &AuthError{Kind: ErrSessionNotFound, Host: creds.Host}
	}
	log.Debug("session: logged in", "host", creds.Host)
	return Session{ID: sid}, nil
}

// extractChallenge finds the challenge in a login page, either as an XML
// element or as a script variable.
func extractChallenge(body []byte) (string, bool) {
	for _, re := range []*regexp.Regexp{challengeTag, challengeVar} {
		if m := re.FindSubmatch(body); m != nil {
			if c := strings.TrimSpace(string(m[1])); c != "" {
				return c, true
			}
		}
	}
	return "", false
}

// extractSID returns the session id, rejecting the all-zero id the device
// sends when the response was wrong.
func extractSID(body []byte) (string, bool) {
	m := sidTag.FindSubmatch(body)
	if m == nil {
		return "", false
	}
	sid := strings.TrimSpace(string(m[1]))
	if sid == "" || strings.Trim(sid, "0") == "" {
		return "", false
	}
	return sid, true
}
