package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func setupWorkspace(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	data := filepath.Join(base, "data")
	require.NoError(t, os.MkdirAll(data, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(data, "ana.csv"),
		[]byte("Bairro,Votos\nCentro,30\nVila Nova,10\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(data, "bruno.csv"),
		[]byte("Bairro;Votos\nCentro;5\nZona Sul;15\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(data, "notes.md"), []byte("ignored"), 0o644))

	cfgPath := filepath.Join(base, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
logging:
  level: error
paths:
  base_dir: `+base+`
  data_dir: data
  reports_dir: reports
  logs_dir: logs
sources:
  - name: Ana
    path: ana.csv
    neighborhood_column: Bairro
    votes_column: Votos
    color: green
  - name: Bruno
    path: bruno.csv
    neighborhood_column: Bairro
    votes_column: Votos
    color: blue
`), 0o644))
	return cfgPath
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := rootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestDomainCommand(t *testing.T) {
	cfgPath := setupWorkspace(t)

	out, err := run(t, "--config", cfgPath, "domain")
	require.NoError(t, err)
	assert.Equal(t, "Centro\nVila Nova\nZona Sul\n", out)
}

func TestExportCommand_Stdout(t *testing.T) {
	cfgPath := setupWorkspace(t)

	out, err := run(t, "--config", cfgPath, "export", "--candidates", "Ana")
	require.NoError(t, err)

	out = strings.TrimPrefix(out, "\ufeff")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "neighborhood,candidate,votes_absolute,vote_share_percent", lines[0])
	assert.Contains(t, lines, "Centro,Ana,30,75.00")
	assert.Contains(t, lines, "Vila Nova,Ana,10,25.00")
	assert.Contains(t, lines, "Zona Sul,Ana,,")
}

func TestExportCommand_XLSXToReports(t *testing.T) {
	cfgPath := setupWorkspace(t)

	_, err := run(t, "--config", cfgPath, "export", "--out", "votes.xlsx")
	require.NoError(t, err)

	path := filepath.Join(filepath.Dir(cfgPath), "reports", "votes.xlsx")
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	assert.Len(t, rows, 7, "header plus 3 neighborhoods x 2 candidates")
}

func TestExportCommand_Errors(t *testing.T) {
	cfgPath := setupWorkspace(t)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"unknown candidate", []string{"export", "--candidates", "Carla"}, "unknown candidates: Carla"},
		{"bad format", []string{"export", "--format", "json"}, "unsupported format"},
		{"xlsx needs out", []string{"export", "--format", "xlsx"}, "--out is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, append([]string{"--config", cfgPath}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSourcesCommand(t *testing.T) {
	cfgPath := setupWorkspace(t)

	out, err := run(t, "--config", cfgPath, "sources")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "ana.csv\t"))
	assert.True(t, strings.HasSuffix(lines[0], "\tAna"))
	assert.True(t, strings.HasSuffix(lines[1], "\tBruno"))
}
