// Package exporter serves records in the Prometheus text exposition format.
//
// Every scrape of /metrics runs one fresh poll against the device. Nothing is
// cached between scrapes; the device's own counters are exposed as-is.
package exporter
