// Package collector runs one complete poll against a device: pick the login
// endpoint, log in, fetch the status page and parse it into a record.
//
// A Collector is safe for concurrent use. Every Collect call builds its own
// session; only the HTTP client and the immutable device config are shared.
package collector
