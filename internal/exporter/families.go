package exporter

import (
	"io"
	"sort"
	"strings"
	"unicode"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"

	"github.com/fritzstats/fritzstats/pkg/types"
)

// Metric name prefixes and the device label.
const (
	Namespace   = "fritz"
	fieldPrefix = Namespace + "_dsl_"
	DeviceLabel = "device"
)

// MetricName converts a record field name to its exposed name, e.g.
// crcErrorsCpe -> fritz_dsl_crc_errors_cpe. Counters get a _total suffix.
func MetricName(field string, counter bool) string {
	name := fieldPrefix + snakeCase(field)
	if counter {
		name += "_total"
	}
	return name
}

// Families converts rec into metric families labelled with host. Negative
// values are left out. The result is sorted by name.
func Families(rec *types.MetricsRecord, host string) []*dto.MetricFamily {
	fams := make([]*dto.MetricFamily, 0, rec.Len())
	for _, k := range types.SortedKeys(rec.Flags) {
		if v := rec.Flags[k]; v >= 0 {
			fams = append(fams, gaugeFamily(MetricName(k, false), "DSL state flag "+k+".", host, float64(v)))
		}
	}
	for _, k := range types.SortedKeys(rec.Gauges) {
		if v := rec.Gauges[k]; v >= 0 {
			fams = append(fams, gaugeFamily(MetricName(k, false), "DSL line value "+k+".", host, v))
		}
	}
	for _, k := range types.SortedKeys(rec.Counters) {
		if v := rec.Counters[k]; v >= 0 {
			fams = append(fams, counterFamily(MetricName(k, true), "DSL error counter "+k+".", host, float64(v)))
		}
	}
	sortFamilies(fams)
	return fams
}

// Write encodes fams in the text format.
func Write(w io.Writer, fams []*dto.MetricFamily) error {
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range fams {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}

func gaugeFamily(name, help, host string, v float64) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name: proto.String(name),
		Help: proto.String(help),
		Type: dto.MetricType_GAUGE.Enum(),
		Metric: []*dto.Metric{{
			Label: deviceLabel(host),
			Gauge: &dto.Gauge{Value: proto.Float64(v)},
		}},
	}
}

func counterFamily(name, help, host string, v float64) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name: proto.String(name),
		Help: proto.String(help),
		Type: dto.MetricType_COUNTER.Enum(),
		Metric: []*dto.Metric{{
			Label:   deviceLabel(host),
			Counter: &dto.Counter{Value: proto.Float64(v)},
		}},
	}
}

func deviceLabel(host string) []*dto.LabelPair {
	return []*dto.LabelPair{{Name: proto.String(DeviceLabel), Value: proto.String(host)}}
}

func sortFamilies(fams []*dto.MetricFamily) {
	sort.Slice(fams, func(i, j int) bool { return fams[i].GetName() < fams[j].GetName() })
}

func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
