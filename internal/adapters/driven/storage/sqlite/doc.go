// Package sqlite implements the GenerationStore port on SQLite via the
// pure-Go modernc.org/sqlite driver. Schema changes ship as embedded
// migrations applied on open.
package sqlite
