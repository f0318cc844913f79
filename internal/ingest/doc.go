// Package ingest reads candidate vote sources from disk into tally tables.
//
// CSV (and TSV/TXT) files are read with encoding/csv after stripping a
// UTF-8 byte order mark and detecting the delimiter from the header line.
// Excel workbooks are read with excelize. Every cell is loaded as text,
// trimmed and NFC-normalized so that visually identical neighborhood names
// from different sources compare equal. Blank cells become null.
package ingest
