package collector

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/fritzstats/fritzstats/internal/config"
	"github.com/fritzstats/fritzstats/internal/logging"
	"github.com/fritzstats/fritzstats/internal/scraper"
	"github.com/fritzstats/fritzstats/internal/session"
	"github.com/fritzstats/fritzstats/pkg/types"
)

// Collector polls one device.
type Collector struct {
	cfg    config.Device
	client *http.Client
	schema scraper.Schema
	parser scraper.PageParser
}

// Option configures a Collector.
type Option func(*Collector)

// WithClient replaces the HTTP client built from the device timeout.
func WithClient(c *http.Client) Option {
	return func(col *Collector) { col.client = c }
}

// WithSchema replaces the DSL schema.
func WithSchema(s scraper.Schema) Option {
	return func(col *Collector) { col.schema = s }
}

// New returns a Collector for cfg. The page format is checked here so a bad
// format fails before the first login.
func New(cfg config.Device, opts ...Option) (*Collector, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}
	c := &Collector{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		schema: scraper.DSLSchema(),
	}
	for _, opt := range opts {
		opt(c)
	}

	p, err := scraper.NewParser(cfg.Format, c.schema)
	if err != nil {
		return nil, fmt.Errorf("collector: %w", err)
	}
	c.parser = p
	return c, nil
}

// Host returns the device host the collector polls.
func (c *Collector) Host() string { return c.cfg.Host }

// Collect runs one poll and returns the parsed record. Errors are
// *session.AuthError or *scraper.ScrapeError, wrapped.
func (c *Collector) Collect(ctx context.Context) (*types.MetricsRecord, error) {
	start := time.Now()
	log := logging.FromContext(ctx).With("poll_id", uuid.NewString(), "host", c.cfg.Host)
	ctx = logging.NewContext(ctx, log)

	ep, err := c.endpoint(ctx)
	if err != nil {
		return nil, fmt.Errorf("collector: %w", err)
	}
	log.Debug("collector: using endpoint", "endpoint", ep.Name())

	sess, err := session.NewManager(c.client, ep).Login(ctx, session.Credentials{
		Host:     c.cfg.Host,
		Username: c.cfg.Username,
		Password: c.cfg.Password(),
	})
	if err != nil {
		log.Warn("collector: login failed", "endpoint", ep.Name(), "err", err)
		return nil, fmt.Errorf("collector: login: %w", err)
	}

	opts := []scraper.Option{scraper.WithPage(c.cfg.Page)}
	if c.cfg.DumpPage != "" {
		opts = append(opts, scraper.WithPageHook(func(body []byte) {
			if err := os.WriteFile(c.cfg.DumpPage, body, 0o600); err != nil {
				log.Warn("collector: dump page failed", "path", c.cfg.DumpPage, "err", err)
				return
			}
			log.Debug("collector: page dumped", "path", c.cfg.DumpPage, "bytes", len(body))
		}))
	}
	s := scraper.New(c.client, ep, c.parser, opts...)

	rec, err := s.Fetch(ctx, sess)
	if err != nil {
		log.Warn("collector: fetch failed", "page", s.Page(), "err", err)
		return nil, fmt.Errorf("collector: fetch: %w", err)
	}

	log.Info("collector: poll complete",
		"endpoint", ep.Name(),
		"page", s.Page(),
		"fields", rec.Len(),
		"duration", time.Since(start),
	)
	return rec, nil
}

func (c *Collector) endpoint(ctx context.Context) (session.AuthEndpoint, error) {
	switch c.cfg.Auth {
	case config.AuthAuto, "":
		return session.Probe(ctx, c.client, c.cfg.Host), nil
	default:
		return session.NewEndpoint(c.cfg.Auth, c.cfg.Host)
	}
}
