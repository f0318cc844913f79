package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"votecompare/internal/config"
	"votecompare/pkg/contracts/domain"
)

func f64(v float64) *float64 { return &v }
func i64(v int64) *int64     { return &v }

func sampleRecords() []domain.VoteRecord {
	return []domain.VoteRecord{
		{Neighborhood: "X", Candidate: "A", VotesAbsolute: i64(1), VoteSharePercent: f64(100.0 / 3)},
		{Neighborhood: "Y", Candidate: "A", VotesAbsolute: i64(2), VoteSharePercent: f64(200.0 / 3)},
		{Neighborhood: "Z", Candidate: "A"},
	}
}

func testPaths(t *testing.T) *config.Paths {
	t.Helper()
	paths, err := config.GetPaths(config.PathsConfig{
		BaseDir:    t.TempDir(),
		DataDir:    "data",
		ReportsDir: "reports",
		LogsDir:    "logs",
	})
	require.NoError(t, err)
	return paths
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "13.40", formatFloat(13.4))
	assert.Equal(t, "33.33", formatShare(f64(100.0/3)))
	assert.Equal(t, "", formatShare(nil))
	assert.Equal(t, "42", formatVotes(i64(42)))
	assert.Equal(t, "", formatVotes(nil))
}

func TestCSVWriterWriteRecords(t *testing.T) {
	paths := testPaths(t)
	w := NewCSVWriter(paths)

	require.NoError(t, w.WriteRecords("combined.csv", sampleRecords()))

	data, err := os.ReadFile(paths.GetReportPath("combined.csv"))
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, utf8BOM))

	rows, err := csv.NewReader(bytes.NewReader(data[len(utf8BOM):])).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"neighborhood", "candidate", "votes_absolute", "vote_share_percent"},
		{"X", "A", "1", "33.33"},
		{"Y", "A", "2", "66.67"},
		{"Z", "A", "", ""},
	}, rows)
}

func TestCSVWriterAbsolutePathAndAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.csv")
	w := NewCSVWriter(nil)

	require.NoError(t, w.WriteCSV(path, WriteOptions{Headers: []string{"a"}, Records: [][]string{{"1"}}}))
	require.NoError(t, w.WriteCSV(path, WriteOptions{Headers: []string{"a"}, Records: [][]string{{"2"}}, Append: true}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\n1\n2\n", string(data))
}

func TestEncodeRecords(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeRecords(&buf, sampleRecords()[2:]))
	assert.Equal(t, string(utf8BOM)+"neighborhood,candidate,votes_absolute,vote_share_percent\nZ,A,,\n", buf.String())
}

func TestXLSXWriterWriteRecords(t *testing.T) {
	paths := testPaths(t)
	w := NewXLSXWriter(paths)

	require.NoError(t, w.WriteRecords("combined.xlsx", sampleRecords()))

	f, err := excelize.OpenFile(paths.GetReportPath("combined.xlsx"))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, []string{"X", "A", "1"}, rows[1][:3])
	assert.Equal(t, []string{"Z", "A"}, rows[3])

	share, err := f.GetCellValue(SheetName, "D2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Contains(t, share, "33.33")
}

func TestEncodeWorkbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeWorkbook(&buf, sampleRecords()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}
