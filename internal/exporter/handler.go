package exporter

import (
	"bytes"
	"context"
	"net/http"
	"sync/atomic"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/fritzstats/fritzstats/internal/logging"
	"github.com/fritzstats/fritzstats/pkg/types"
)

// Poller runs one poll against a device. *collector.Collector implements it.
type Poller interface {
	Host() string
	Collect(ctx context.Context) (*types.MetricsRecord, error)
}

// Handler serves /metrics. The poller can be swapped while serving, e.g.
// after a config reload.
type Handler struct {
	current atomic.Pointer[pollerRef]
}

type pollerRef struct{ p Poller }

// NewHandler returns a Handler polling through p.
func NewHandler(p Poller) *Handler {
	h := &Handler{}
	h.Store(p)
	return h
}

// Store replaces the poller used by subsequent scrapes.
func (h *Handler) Store(p Poller) {
	h.current.Store(&pollerRef{p: p})
}

// Poller returns the current poller.
func (h *Handler) Poller() Poller {
	return h.current.Load().p
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p := h.Poller()
	host := p.Host()

	start := time.Now()
	rec, err := p.Collect(r.Context())
	elapsed := time.Since(start).Seconds()

	var fams []*dto.MetricFamily
	up := 1.0
	if err != nil {
		up = 0
		logging.FromContext(r.Context()).Error("exporter: poll failed", "host", host, "err", err)
	} else {
		fams = Families(rec, host)
	}
	fams = append(fams,
		gaugeFamily(Namespace+"_up", "Whether the last poll of the device succeeded.", host, up),
		gaugeFamily(Namespace+"_scrape_duration_seconds", "Duration of the device poll.", host, elapsed),
	)
	sortFamilies(fams)

	var buf bytes.Buffer
	if err := Write(&buf, fams); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", string(expfmt.NewFormat(expfmt.TypeTextPlain)))
	_, _ = w.Write(buf.Bytes())
}
