// Package exporter writes the combined long-form vote records to disk or to
// an HTTP response.
//
// CSVWriter produces UTF-8 CSV with a byte order mark so spreadsheet tools
// detect the encoding. XLSXWriter produces a single-sheet workbook with
// excelize. Both use the same columns:
//
//	neighborhood, candidate, votes_absolute, vote_share_percent
//
// Null values are written as empty cells; shares are rounded to 2 decimals.
//
// Example usage:
//
//	w := exporter.NewCSVWriter(paths)
//	err := w.WriteRecords("combined.csv", ds.Records)
package exporter
