// Package munin renders records in the Munin multigraph plugin protocol.
//
// The plugin is a wildcard plugin: a symlink named fritzstats_<host> polls
// <host>. Output goes to stdout; nothing else may be written there.
package munin
