// Command fritzstats polls the DSL statistics of a FRITZ!Box router.
//
// Installed as a fritzstats_<host> symlink it is a Munin wildcard plugin;
// "fritzstats serve" runs a Prometheus exporter instead.
package main

func main() {
	Execute()
}
