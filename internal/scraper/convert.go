package scraper

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/fritzstats/fritzstats/pkg/types"
)

// notMeasured is how the device prints a value it has no measurement for.
// Empty values are treated the same way.
const notMeasured = "-"

// ScalePerMinute converts a per-second value to per-minute. Negative
// sentinels pass through unchanged.
func ScalePerMinute(v float64) float64 {
	if v < 0 {
		return v
	}
	return v * 60
}

// source yields the raw text of a field in one page format. ok is false when
// the format or the page does not carry the field.
type source func(f Field) (raw string, perSecond, ok bool)

// buildRecord converts every schema field from src into a record.
func buildRecord(schema Schema, src source) (*types.MetricsRecord, error) {
	rec := types.NewRecord()
	for _, f := range schema.fields {
		raw, perSecond, ok := src(f)
		if !ok {
			raw = notMeasured
		}

		switch f.Kind {
		case Flag:
			v, err := parseInt(raw)
			if err != nil {
				return nil, fieldError(f.Name, err)
			}
			rec.Flags[f.Name] = v
		case Counter:
			v, err := parseInt(raw)
			if err != nil {
				return nil, fieldError(f.Name, err)
			}
			if perSecond {
				v = int64(ScalePerMinute(float64(v)))
			}
			rec.Counters[f.Name] = v
		case Gauge:
			v, err := parseFloat(raw)
			if err != nil {
				return nil, fieldError(f.Name, err)
			}
			if perSecond {
				v = ScalePerMinute(v)
			}
			rec.Gauges[f.Name] = v
		default:
			return nil, fieldError(f.Name, fmt.Errorf("unknown field kind %d", f.Kind))
		}
	}
	return rec, nil
}

// parseInt accepts integers and integral floats ("12", "12.0").
func parseInt(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if s == notMeasured || s == "" {
		return types.Unavailable, nil
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("not an integer: %q", raw)
	}
	return int64(f), nil
}

func parseFloat(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == notMeasured || s == "" {
		return types.Unavailable, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a number: %q", raw)
	}
	return f, nil
}
