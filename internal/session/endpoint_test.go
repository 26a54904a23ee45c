package session

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fritzstats/fritzstats/internal/fritztest"
)

func TestNewEndpoint(t *testing.T) {
	ep, err := NewEndpoint(KindLegacy, "fritz.box")
	require.NoError(t, err)
	assert.Equal(t, KindLegacy, ep.Name())
	assert.Equal(t, "../html/de/internet/adsldaten.xml", ep.DefaultPage())

	ep, err = NewEndpoint(KindModern, "fritz.box")
	require.NoError(t, err)
	assert.Equal(t, KindModern, ep.Name())
	assert.Equal(t, "internet/dsl_stats_tab.lua", ep.DefaultPage())

	_, err = NewEndpoint("auto", "fritz.box")
	assert.Error(t, err)
}

func TestLegacy_PageRequest(t *testing.T) {
	ep, err := NewEndpoint(KindLegacy, "192.168.178.1")
	require.NoError(t, err)

	req, err := ep.PageRequest(context.Background(), "../html/de/internet/adsldaten.xml", "abc123")
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "http://192.168.178.1/cgi-bin/webcm", req.URL.String())
	assert.Equal(t, "application/x-www-form-urlencoded", req.Header.Get("Content-Type"))

	body, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.Equal(t, "getpage=../html/de/internet/adsldaten.xml&sid=abc123", string(body))
}

func TestModern_PageRequest(t *testing.T) {
	ep, err := NewEndpoint(KindModern, "http://fritz.box/")
	require.NoError(t, err)

	req, err := ep.PageRequest(context.Background(), "/internet/dsl_stats_tab.lua", "abc123")
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "http://fritz.box/internet/dsl_stats_tab.lua?sid=abc123", req.URL.String())

	req, err = ep.PageRequest(context.Background(), "data.lua?page=dslStat", "abc123")
	require.NoError(t, err)
	assert.Equal(t, "http://fritz.box/data.lua?page=dslStat&sid=abc123", req.URL.String())
}

func TestProbe(t *testing.T) {
	modern := fritztest.NewDevice(t, false, nil)
	ep := Probe(context.Background(), modern.Server.Client(), modern.Host())
	assert.Equal(t, KindModern, ep.Name())

	legacy := fritztest.NewDevice(t, true, nil)
	ep = Probe(context.Background(), legacy.Server.Client(), legacy.Host())
	assert.Equal(t, KindLegacy, ep.Name())

	ep = Probe(context.Background(), &http.Client{}, "127.0.0.1:1")
	assert.Equal(t, KindLegacy, ep.Name())
}
