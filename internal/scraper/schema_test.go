package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSLSchema(t *testing.T) {
	s := DSLSchema()
	assert.Equal(t, 42, s.Len())

	seen := make(map[string]bool)
	for _, f := range s.Fields() {
		assert.False(t, seen[f.Name], "duplicate field %s", f.Name)
		seen[f.Name] = true
		assert.NotEmpty(t, f.ScriptKey, "%s has no script key", f.Name)
	}

	f, ok := s.Field("errorSecondsCpe")
	require.True(t, ok)
	assert.Equal(t, Counter, f.Kind)
	assert.Equal(t, "STATISTIC/ES", f.XML.Path)
	assert.Equal(t, "cpe", f.XML.Attr)

	f, ok = s.Field("forwardErrorCorrectionsPerMinCoe")
	require.True(t, ok)
	assert.True(t, f.XML.PerSecond)

	f, ok = s.Field("bitswapRx")
	require.True(t, ok)
	assert.False(t, f.XML.Exposed())

	_, ok = s.Field("nope")
	assert.False(t, ok)
}

func TestSchema_Immutable(t *testing.T) {
	s := DSLSchema()
	fields := s.Fields()
	fields[0].Name = "changed"
	assert.NotEqual(t, "changed", s.Fields()[0].Name)
	assert.NotEqual(t, "changed", DSLSchema().Fields()[0].Name)
}

func TestFieldKind_String(t *testing.T) {
	assert.Equal(t, "flag", Flag.String())
	assert.Equal(t, "gauge", Gauge.String())
	assert.Equal(t, "counter", Counter.String())
	assert.Equal(t, "unknown", FieldKind(9).String())
}
