package collector

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fritzstats/fritzstats/internal/config"
	"github.com/fritzstats/fritzstats/internal/fritztest"
	"github.com/fritzstats/fritzstats/internal/logging"
	"github.com/fritzstats/fritzstats/internal/scraper"
	"github.com/fritzstats/fritzstats/internal/session"
)

const passwordEnv = "FRITZSTATS_TEST_PASSWORD"

func deviceConfig(t *testing.T, dev *fritztest.Device, auth string) config.Device {
	t.Helper()
	t.Setenv(passwordEnv, dev.Password)
	return config.Device{
		Host:        dev.Host(),
		Username:    dev.Username,
		PasswordEnv: passwordEnv,
		Auth:        auth,
		Format:      config.FormatAuto,
		Timeout:     2 * time.Second,
	}
}

func TestCollect_Modern(t *testing.T) {
	dev := fritztest.NewDevice(t, false, []byte(fritztest.ScriptPage))
	c, err := New(deviceConfig(t, dev, config.AuthModern))
	require.NoError(t, err)

	rec, err := c.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3.5, rec.Gauges["forwardErrorCorrectionsPerMinCpe"])
	assert.Len(t, dev.Requests(), 3)
}

func TestCollect_Legacy(t *testing.T) {
	dev := fritztest.NewDevice(t, true, []byte(fritztest.XMLPage))
	c, err := New(deviceConfig(t, dev, config.AuthLegacy))
	require.NoError(t, err)

	rec, err := c.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), rec.Counters["errorSecondsCpe"])
	assert.Len(t, dev.Requests(), 3)
}

func TestCollect_AutoProbe(t *testing.T) {
	for _, tc := range []struct {
		name   string
		legacy bool
		page   string
	}{
		{"modern", false, fritztest.ScriptPage},
		{"legacy", true, fritztest.XMLPage},
	} {
		t.Run(tc.name, func(t *testing.T) {
			dev := fritztest.NewDevice(t, tc.legacy, []byte(tc.page))
			c, err := New(deviceConfig(t, dev, config.AuthAuto))
			require.NoError(t, err)

			rec, err := c.Collect(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 16000.0, rec.Gauges["lineRateRx"])

			reqs := dev.Requests()
			require.Len(t, reqs, 4)
			assert.Equal(t, "/login_sid.lua", reqs[0].Path, "probe asks the modern endpoint first")
		})
	}
}

func TestCollect_WrongPassword(t *testing.T) {
	dev := fritztest.NewDevice(t, false, []byte(fritztest.ScriptPage))
	cfg := deviceConfig(t, dev, config.AuthModern)
	t.Setenv(passwordEnv, "wrong")

	c, err := New(cfg)
	require.NoError(t, err)

	_, err = c.Collect(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
	assert.Len(t, dev.Requests(), 2, "no page request after a failed login")
}

func TestCollect_PageFailure(t *testing.T) {
	dev := fritztest.NewDevice(t, false, []byte(fritztest.ScriptPage))
	dev.PageStatus = http.StatusNotFound
	c, err := New(deviceConfig(t, dev, config.AuthModern))
	require.NoError(t, err)

	_, err = c.Collect(context.Background())
	assert.ErrorIs(t, err, scraper.ErrPageUnreachable)
}

func TestCollect_CustomPage(t *testing.T) {
	dev := fritztest.NewDevice(t, false, []byte(fritztest.ScriptPage))
	dev.PagePath = "internet/dsl_overview.lua"
	cfg := deviceConfig(t, dev, config.AuthModern)
	cfg.Page = "internet/dsl_overview.lua"

	c, err := New(cfg)
	require.NoError(t, err)
	_, err = c.Collect(context.Background())
	require.NoError(t, err)
}

func TestCollect_DumpPage(t *testing.T) {
	dev := fritztest.NewDevice(t, false, []byte(fritztest.ScriptPage))
	cfg := deviceConfig(t, dev, config.AuthModern)
	cfg.DumpPage = filepath.Join(t.TempDir(), "page.html")

	c, err := New(cfg)
	require.NoError(t, err)
	rec, err := c.Collect(context.Background())
	require.NoError(t, err)

	raw, err := os.ReadFile(cfg.DumpPage)
	require.NoError(t, err)
	assert.Equal(t, fritztest.ScriptPage, string(raw))

	again, err := scraper.Parse(raw, config.FormatAuto, scraper.DSLSchema())
	require.NoError(t, err)
	assert.True(t, rec.Equal(again))
}

func TestCollect_LogsPollIDWithoutPassword(t *testing.T) {
	dev := fritztest.NewDevice(t, false, []byte(fritztest.ScriptPage))
	dev.Password = "s3cr3t-pw"
	c, err := New(deviceConfig(t, dev, config.AuthAuto))
	require.NoError(t, err)

	var buf bytes.Buffer
	log, err := logging.NewWithWriter(&buf, "debug", "json")
	require.NoError(t, err)

	_, err = c.Collect(logging.NewContext(context.Background(), log))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"poll_id":"`)
	assert.Contains(t, out, "collector: poll complete")
	assert.NotContains(t, out, "s3cr3t-pw")
}

func TestCollect_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	c, err := New(config.Device{
		Host:    strings.TrimPrefix(srv.URL, "http://"),
		Auth:    config.AuthModern,
		Format:  config.FormatAuto,
		Timeout: 50 * time.Millisecond,
	})
	require.NoError(t, err)

	_, err = c.Collect(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, session.ErrChallengeUnreachable)
}

func TestNew_Errors(t *testing.T) {
	_, err := New(config.Device{Host: "fritz.box", Format: "json"})
	assert.Error(t, err)

	c, err := New(config.Device{Host: "fritz.box", Auth: "telnet"})
	require.NoError(t, err)
	_, err = c.Collect(context.Background())
	assert.Error(t, err)
}

func TestNew_DefaultTimeout(t *testing.T) {
	c, err := New(config.Device{Host: "fritz.box"})
	require.NoError(t, err)
	assert.Equal(t, config.DefaultTimeout, c.client.Timeout)
	assert.Equal(t, "fritz.box", c.Host())
}
