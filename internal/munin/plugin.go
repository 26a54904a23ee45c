package munin

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fritzstats/fritzstats/pkg/types"
)

// PluginPrefix is the wildcard plugin name; the host follows it.
const PluginPrefix = "fritzstats_"

// PluginHost returns the host encoded in the executable name, or "" when
// argv0 is not a fritzstats_<host> link.
func PluginHost(argv0 string) string {
	base := filepath.Base(argv0)
	if !strings.HasPrefix(base, PluginPrefix) {
		return ""
	}
	return strings.TrimPrefix(base, PluginPrefix)
}

// GraphName is the multigraph id of g for host.
func GraphName(g Graph, host string) string {
	return "fritz_" + g.Name + "_" + Sanitize(host)
}

// Sanitize replaces every character Munin does not allow in names with '_'.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}

// WriteConfig writes the "config" response for host.
func WriteConfig(w io.Writer, host string) error {
	bw := bufio.NewWriter(w)
	for _, g := range Graphs() {
		fmt.Fprintf(bw, "multigraph %s\n", GraphName(g, host))
		fmt.Fprintf(bw, "graph_title Fritz!Box %s %s\n", host, g.Title)
		fmt.Fprintf(bw, "graph_category %s\n", Category)
		fmt.Fprintf(bw, "graph_vlabel %s\n", g.VLabel)
		fmt.Fprintf(bw, "graph_info %s\n", g.Info)
		if g.Args != "" {
			fmt.Fprintf(bw, "graph_args %s\n", g.Args)
		}
		names := make([]string, len(g.Fields))
		for i, f := range g.Fields {
			names[i] = f.Name
		}
		fmt.Fprintf(bw, "graph_order %s\n", strings.Join(names, " "))

		for _, f := range g.Fields {
			fmt.Fprintf(bw, "%s.label %s\n", f.Name, f.Label)
			fmt.Fprintf(bw, "%s.type %s\n", f.Name, f.Type)
			fmt.Fprintf(bw, "%s.info %s\n", f.Name, f.Info)
			if f.Type == TypeDerive {
				fmt.Fprintf(bw, "%s.min 0\n", f.Name)
			}
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}

// WriteValues writes the "fetch" response for host from rec. Negative and
// missing values are written as U (unknown).
func WriteValues(w io.Writer, host string, rec *types.MetricsRecord) error {
	bw := bufio.NewWriter(w)
	for _, g := range Graphs() {
		fmt.Fprintf(bw, "multigraph %s\n", GraphName(g, host))
		for _, f := range g.Fields {
			fmt.Fprintf(bw, "%s.value %s\n", f.Name, formatValue(rec, f.Source))
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}

func formatValue(rec *types.MetricsRecord, source string) string {
	v, ok := rec.Value(source)
	if !ok || v < 0 {
		return "U"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
