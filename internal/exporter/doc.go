// Package exporter serializes finished panels. The CSV writer is the wire
// contract: column names, order and formatting are fixed. The XLSX writer
// emits the same schema for spreadsheet consumers.
package exporter
