package session

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fritzstats/fritzstats/internal/fritztest"
)

func newManager(t *testing.T, dev *fritztest.Device) *Manager {
	t.Helper()
	kind := KindModern
	if dev.Legacy {
		kind = KindLegacy
	}
	ep, err := NewEndpoint(kind, dev.Host())
	require.NoError(t, err)
	return NewManager(dev.Server.Client(), ep)
}

func creds(dev *fritztest.Device) Credentials {
	return Credentials{Host: dev.Host(), Username: dev.Username, Password: dev.Password}
}

func TestLogin_Legacy(t *testing.T) {
	dev := fritztest.NewDevice(t, true, nil)
	m := newManager(t, dev)

	sess, err := m.Login(context.Background(), creds(dev))
	require.NoError(t, err)
	assert.Equal(t, dev.SID, sess.ID)

	reqs := dev.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, http.MethodGet, reqs[0].Method)
	assert.Equal(t, "/cgi-bin/webcm", reqs[0].Path)
	assert.Equal(t, "getpage=../html/login_sid.xml", reqs[0].Query)

	assert.Equal(t, http.MethodPost, reqs[1].Method)
	assert.Equal(t, "/cgi-bin/webcm", reqs[1].Path)
	assert.Equal(t,
		"login:command/response="+dev.ExpectedResponse()+"&getpage=../html/login_sid.xml",
		reqs[1].Body)
}

func TestLogin_Modern(t *testing.T) {
	dev := fritztest.NewDevice(t, false, nil)
	m := newManager(t, dev)

	sess, err := m.Login(context.Background(), creds(dev))
	require.NoError(t, err)
	assert.Equal(t, dev.SID, sess.ID)

	reqs := dev.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "/login_sid.lua", reqs[0].Path)
	assert.Empty(t, reqs[0].Query)
	assert.Equal(t, "/login_sid.lua", reqs[1].Path)
	assert.Equal(t, "response="+dev.ExpectedResponse(), reqs[1].Query)
}

func TestLogin_ModernWithUsername(t *testing.T) {
	dev := fritztest.NewDevice(t, false, nil)
	dev.Username = "admin"
	m := newManager(t, dev)

	sess, err := m.Login(context.Background(), creds(dev))
	require.NoError(t, err)
	assert.Equal(t, dev.SID, sess.ID)
	assert.Equal(t, "response="+dev.ExpectedResponse()+"&username=admin", dev.Requests()[1].Query)
}

func TestLogin_ScriptChallenge(t *testing.T) {
	dev := fritztest.NewDevice(t, false, nil)
	dev.ChallengeBody = `<html><script>var challenge = "1234567z";</script></html>`
	m := newManager(t, dev)

	sess, err := m.Login(context.Background(), creds(dev))
	require.NoError(t, err)
	assert.Equal(t, dev.SID, sess.ID)
}

func TestLogin_StageFailures(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(d *fritztest.Device)
		password string
		wantKind error
		wantReqs int
	}{
		{
			name:     "challenge status",
			setup:    func(d *fritztest.Device) { d.ChallengeStatus = http.StatusInternalServerError },
			wantKind: ErrChallengeUnreachable,
			wantReqs: 1,
		},
		{
			name:     "challenge missing",
			setup:    func(d *fritztest.Device) { d.ChallengeBody = "<SessionInfo><SID>0</SID></SessionInfo>" },
			wantKind: ErrChallengeNotFound,
			wantReqs: 1,
		},
		{
			name:     "login status",
			setup:    func(d *fritztest.Device) { d.LoginStatus = http.StatusForbidden },
			wantKind: ErrLoginRejected,
			wantReqs: 2,
		},
		{
			name:     "wrong password yields zero sid",
			setup:    func(*fritztest.Device) {},
			password: "wrong",
			wantKind: ErrSessionNotFound,
			wantReqs: 2,
		},
	}
	for _, legacy := range []bool{true, false} {
		for _, tc := range tests {
			name := tc.name
			if legacy {
				name = "legacy/" + name
			} else {
				name = "modern/" + name
			}
			t.Run(name, func(t *testing.T) {
				dev := fritztest.NewDevice(t, legacy, nil)
				tc.setup(dev)
				m := newManager(t, dev)

				c := creds(dev)
				if tc.password != "" {
					c.Password = tc.password
				}
				_, err := m.Login(context.Background(), c)
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.wantKind)

				var authErr *AuthError
				require.True(t, errors.As(err, &authErr))
				assert.Equal(t, dev.Host(), authErr.Host)
				assert.Len(t, dev.Requests(), tc.wantReqs, "no stage may run after a failed one")
			})
		}
	}
}

func TestLogin_Unreachable(t *testing.T) {
	ep, err := NewEndpoint(KindModern, "127.0.0.1:1")
	require.NoError(t, err)
	m := NewManager(&http.Client{}, ep)

	_, err = m.Login(context.Background(), Credentials{Host: "127.0.0.1:1", Password: "x"})
	assert.ErrorIs(t, err, ErrChallengeUnreachable)
}

func TestAuthError_Message(t *testing.T) {
	err := &AuthError{Kind: ErrLoginRejected, Host: "fritz.box", StatusCode: 403}
	assert.Equal(t, "auth fritz.box: login rejected (status 403)", err.Error())

	cause := errors.New("boom")
	err = &AuthError{Kind: ErrChallengeUnreachable, Host: "fritz.box", Err: cause}
	assert.True(t, strings.HasSuffix(err.Error(), ": boom"))
	assert.ErrorIs(t, err, cause)
}

func TestExtractSID(t *testing.T) {
	tests := []struct {
		body string
		want string
		ok   bool
	}{
		{"<SID>abcdef0123456789</SID>", "abcdef0123456789", true},
		{"<SID>0000000000000000</SID>", "", false},
		{"<SID></SID>", "", false},
		{"<Challenge>x</Challenge>", "", false},
	}
	for _, tc := range tests {
		got, ok := extractSID([]byte(tc.body))
		assert.Equal(t, tc.ok, ok, tc.body)
		assert.Equal(t, tc.want, got, tc.body)
	}
}

func TestExtractChallenge(t *testing.T) {
	tests := []struct {
		body string
		want string
		ok   bool
	}{
		{"<SessionInfo><Challenge>a1b2c3d4</Challenge></SessionInfo>", "a1b2c3d4", true},
		{`var challenge = "f00dcafe";`, "f00dcafe", true},
		{`{"challenge": "0badc0de"}`, "0badc0de", true},
		{"<Challenge></Challenge>", "", false},
		{"nothing here", "", false},
	}
	for _, tc := range tests {
		got, ok := extractChallenge([]byte(tc.body))
		assert.Equal(t, tc.ok, ok, tc.body)
		assert.Equal(t, tc.want, got, tc.body)
	}
}
