package app

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"votecompare/internal/config"
	"votecompare/internal/pipeline"
	"votecompare/pkg/contracts/domain"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	base := t.TempDir()
	data := filepath.Join(base, "data")
	require.NoError(t, os.MkdirAll(data, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(data, "a.csv"),
		[]byte("Bairro,Votos\nCentro,30\nVila Nova,10\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(data, "b.csv"),
		[]byte("Bairro;Votos\nCentro;5\nZona Sul;15\n"), 0o644))

	cfg := config.Default()
	cfg.Server.Port = 0
	cfg.Server.ShutdownTimeout = 2 * time.Second
	cfg.Paths.BaseDir = base
	cfg.Paths.DataDir = "data"
	cfg.Security.RateLimit.Enabled = false
	cfg.Sources = []config.SourceConfig{
		{Name: "Ana", Path: "a.csv", NeighborhoodColumn: "Bairro", VotesColumn: "Votos", Color: "green"},
		{Name: "Bruno", Path: "b.csv", NeighborhoodColumn: "Bairro", VotesColumn: "Votos", Color: "blue"},
	}
	return cfg
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestApp(t *testing.T, opts ...Option) *Application {
	t.Helper()
	a, err := NewApplication(testConfig(t), quietLogger(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.OTelProviders.Shutdown(context.Background()) })
	return a
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestNewApplication_WiresComponents(t *testing.T) {
	a := newTestApp(t)

	assert.NotNil(t, a.Router)
	assert.NotNil(t, a.Server)
	assert.NotNil(t, a.Datasets)
	assert.NotNil(t, a.Health)
	assert.Equal(t, "127.0.0.1:0", a.Server.Addr)
	assert.DirExists(t, a.Paths.ReportsDir)
}

func TestRouter_BeforeFirstLoad(t *testing.T) {
	a := newTestApp(t)

	assert.Equal(t, http.StatusServiceUnavailable, get(t, a.Router, "/api/health").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(t, a.Router, "/api/chart").Code)
}

func TestRouter_ServesLoadedDataset(t *testing.T) {
	a := newTestApp(t)
	_, err := a.Datasets.Reload(context.Background())
	require.NoError(t, err)

	rec := get(t, a.Router, "/api/chart?candidates=Bruno")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload domain.ChartPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, domain.NeighborhoodDomain{"Centro", "Vila Nova", "Zona Sul"}, payload.Categories)
	require.Len(t, payload.Series, 1)
	assert.Equal(t, "Bruno", payload.Series[0].Candidate)
	require.NotNil(t, payload.Series[0].Y[0])
	assert.InDelta(t, 25.0, *payload.Series[0].Y[0], 1e-9)
	assert.Nil(t, payload.Series[0].Y[1])

	assert.Equal(t, http.StatusOK, get(t, a.Router, "/api/health").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, a.Router, "/api/chart?candidates=Nobody").Code)

	page := get(t, a.Router, "/")
	assert.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "Ana")
	assert.NotEmpty(t, page.Header().Get("X-Request-ID"))
}

func TestRouter_MetricsAndNotFound(t *testing.T) {
	a := newTestApp(t)
	_, err := a.Datasets.Reload(context.Background())
	require.NoError(t, err)

	rec := get(t, a.Router, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "dataset_loads_total")

	assert.Equal(t, http.StatusNotFound, get(t, a.Router, "/nope").Code)
}

func TestRun_InitialLoadFailure(t *testing.T) {
	boom := errors.New("boom")
	a := newTestApp(t, WithLoader(func(context.Context) (*pipeline.Dataset, error) {
		return nil, boom
	}))

	err := a.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestRun_StopsOnCancel(t *testing.T) {
	a := newTestApp(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	require.Eventually(t, func() bool {
		_, err := a.Datasets.Current()
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
