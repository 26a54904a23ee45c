// Package session performs the FRITZ!Box challenge-response login and yields
// a session id valid for one status page fetch.
//
// The handshake is two requests: fetch a challenge, then submit
// Response(challenge, password) and read back the SID. Response is
// challenge + "-" + md5(utf16le(challenge + "-" + password)) in lowercase hex.
//
// The wire shape differs by firmware generation. AuthEndpoint is the closed
// set of shapes: Legacy (cgi-bin/webcm) and Modern (login_sid.lua). Probe
// picks one at runtime when the configuration says "auto".
//
// Failures are *AuthError values whose Kind is one of the Err* sentinels, so
// callers can use errors.Is(err, ErrLoginRejected).
package session
