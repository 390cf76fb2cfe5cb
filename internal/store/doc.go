// Package store persists constant-analysis reports to SQLite. It is
// host-side tooling for the CLI's --trace-db flag: each analysis run is
// appended once, keyed by its run ID, and can be listed later for
// inspection. The analyzer core itself never touches storage; results are
// always rebuilt from a fresh resolved tree.
package store
