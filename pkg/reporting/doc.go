// Package reporting shapes marketplace payloads for display. It groups
// sales and purchases, computes purchase summaries, filters and sorts
// seller lists, and turns report aggregates into chart series.
//
// Every function is pure: no I/O, no shared state, inputs are never
// modified.
package reporting
