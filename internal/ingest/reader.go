package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"

	apperrors "votecompare/internal/errors"
	"votecompare/internal/tally"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Options controls how a source file is parsed
type Options struct {
	// Delimiter for delimited text files. Zero means detect from the header.
	Delimiter rune
	// Sheet of an Excel workbook. Empty means the first sheet.
	Sheet string
}

// ReadFile loads a source file into a table, dispatching on its extension
func ReadFile(path string, opts Options) (*tally.Table, error) {
	var (
		records [][]string
		err     error
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".txt", ".tsv":
		records, err = readDelimited(path, opts.Delimiter)
	case ".xlsx", ".xlsm":
		records, err = readWorkbook(path, opts.Sheet)
	default:
		return nil, apperrors.NewParsingError(fmt.Sprintf("unsupported source format %q", ext), nil).
			WithContext("path", path)
	}
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read source", err).WithContext("path", path)
	}

	t, err := buildTable(records)
	if err != nil {
		return nil, apperrors.NewParsingError("malformed source", err).WithContext("path", path)
	}
	return t, nil
}

func readDelimited(path string, delimiter rune) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	if delimiter == 0 {
		delimiter = DetectDelimiter(data)
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delimiter
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var records [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// DetectDelimiter picks the most frequent of comma, semicolon and tab on the
// first line, ignoring quoted text. Comma wins ties and empty input.
func DetectDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}

	counts := map[rune]int{}
	inQuotes := false
	for _, c := range string(line) {
		switch {
		case c == '"':
			inQuotes = !inQuotes
		case !inQuotes && (c == ',' || c == ';' || c == '\t'):
			counts[c]++
		}
	}

	best := ','
	for _, c := range []rune{';', '\t'} {
		if counts[c] > counts[best] {
			best = c
		}
	}
	return best
}

func readWorkbook(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	// Raw values so number formats such as #,##0 do not leak into counts.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	records := rows[:0]
	for _, row := range rows {
		if !blankRow(row) {
			records = append(records, row)
		}
	}
	return records, nil
}

// buildTable turns raw records into a table. The first record is the header.
func buildTable(records [][]string) (*tally.Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("no header row")
	}

	header := make([]string, len(records[0]))
	seen := make(map[string]int, len(header))
	for i, h := range records[0] {
		name := clean(h)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if prev, dup := seen[name]; dup {
			return nil, fmt.Errorf("duplicate column %q at positions %d and %d", name, prev+1, i+1)
		}
		seen[name] = i
		header[i] = name
	}

	t := tally.NewTable(header...)
	for n, rec := range records[1:] {
		if len(rec) > len(header) {
			return nil, fmt.Errorf("row %d has %d fields, header has %d", n+2, len(rec), len(header))
		}
		row := make([]tally.Value, len(header))
		for i, cell := range rec {
			if s := clean(cell); s != "" {
				row[i] = tally.Text(s)
			}
		}
		if err := t.AddRow(row...); err != nil {
			return nil, fmt.Errorf("row %d: %w", n+2, err)
		}
	}
	return t, nil
}

func clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
