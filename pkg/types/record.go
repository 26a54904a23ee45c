package types

import "sort"

// Unavailable marks a field the device's page format does not expose, or a
// value the device reported as "-". Consumers must not graph negative values.
const Unavailable = -1

// MetricsRecord is the flat result of one poll. Every schema field is present
// in exactly one of the three maps; unsupported fields hold Unavailable.
type MetricsRecord struct {
	// Flags holds mode and state indicators.
	Flags map[string]int64 `json:"flags"`

	// Gauges holds line rates, analog parameters and per-minute error rates.
	Gauges map[string]float64 `json:"gauges"`

	// Counters holds cumulative error and event counts since the last
	// device resync.
	Counters map[string]int64 `json:"counters"`
}

// NewRecord returns an empty record with all maps allocated.
func NewRecord() *MetricsRecord {
	return &MetricsRecord{
		Flags:    make(map[string]int64),
		Gauges:   make(map[string]float64),
		Counters: make(map[string]int64),
	}
}

// Equal reports whether r and o hold the same keys and values.
func (r *MetricsRecord) Equal(o *MetricsRecord) bool {
	if r == nil || o == nil {
		return r == o
	}
	return equalMaps(r.Flags, o.Flags) &&
		equalMaps(r.Gauges, o.Gauges) &&
		equalMaps(r.Counters, o.Counters)
}

// Len returns the total number of fields in the record.
func (r *MetricsRecord) Len() int {
	return len(r.Flags) + len(r.Gauges) + len(r.Counters)
}

// Value returns the named field as float64 regardless of which map holds it.
func (r *MetricsRecord) Value(name string) (float64, bool) {
	if v, ok := r.Gauges[name]; ok {
		return v, true
	}
	if v, ok := r.Counters[name]; ok {
		return float64(v), true
	}
	if v, ok := r.Flags[name]; ok {
		return float64(v), true
	}
	return 0, false
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func equalMaps[V int64 | float64](a, b map[string]V) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		w, ok := b[k]
		if !ok || v != w {
			return false
		}
	}
	return true
}
