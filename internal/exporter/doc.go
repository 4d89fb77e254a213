// Package exporter writes the Analyzer's output tables for the
// reporting layer: a per-country results CSV (normalized indicators,
// risk index, rank, category, dominant factor), a sensitivity CSV
// (index per scenario), and a combined Excel workbook.
package exporter
