package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricsRecord_Equal(t *testing.T) {
	a := NewRecord()
	a.Flags["carrierState"] = 5
	a.Gauges["lineRateRx"] = 16000
	a.Counters["errorSecondsCpe"] = Unavailable

	b := NewRecord()
	b.Flags["carrierState"] = 5
	b.Gauges["lineRateRx"] = 16000
	b.Counters["errorSecondsCpe"] = Unavailable

	assert.True(t, a.Equal(b))

	b.Gauges["lineRateRx"] = 15999
	assert.False(t, a.Equal(b))

	delete(b.Gauges, "lineRateRx")
	assert.False(t, a.Equal(b))

	var nilRec *MetricsRecord
	assert.False(t, a.Equal(nilRec))
	assert.True(t, nilRec.Equal(nil))
}

func TestMetricsRecord_Value(t *testing.T) {
	r := NewRecord()
	r.Flags["dslMode"] = 3
	r.Gauges["signalNoiseRatioRx"] = 9.5
	r.Counters["crcErrorsCpe"] = 12

	for name, want := range map[string]float64{
		"dslMode":            3,
		"signalNoiseRatioRx": 9.5,
		"crcErrorsCpe":       12,
	} {
		got, ok := r.Value(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}

	_, ok := r.Value("missing")
	assert.False(t, ok)
	assert.Equal(t, 3, r.Len())
}

func TestSortedKeys(t *testing.T) {
	got := SortedKeys(map[string]int64{"b": 1, "a": 2, "c": 3})
	assert.Equal(t, []string{"a", "b", "c"}, got)
}
