package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// HealthService provides health check functionality
type HealthService struct {
	version   string
	datasets  *DatasetService
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string         `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Version   string         `json:"version"`
	Uptime    string         `json:"uptime"`
	Dataset   *DatasetHealth `json:"dataset,omitempty"`
	Runtime   RuntimeInfo    `json:"runtime"`
}

// DatasetHealth describes the active dataset
type DatasetHealth struct {
	ID            string    `json:"id"`
	LoadedAt      time.Time `json:"loaded_at"`
	Candidates    int       `json:"candidates"`
	Neighborhoods int       `json:"neighborhoods"`
	Rows          int       `json:"rows"`
}

// RuntimeInfo describes the process
type RuntimeInfo struct {
	GoVersion  string `json:"go_version"`
	OS         string `json:"os"`
	Arch       string `json:"arch"`
	Goroutines int    `json:"goroutines"`
}

// NewHealthService creates a new health service
func NewHealthService(version string, datasets *DatasetService, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		datasets:  datasets,
		startTime: time.Now(),
		logger:    logger,
	}
}

// HealthCheck reports "healthy" once a dataset is loaded and "degraded"
// before that
func (s *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   s.version,
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Runtime: RuntimeInfo{
			GoVersion:  runtime.Version(),
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			Goroutines: runtime.NumGoroutine(),
		},
	}

	ds, err := s.datasets.Current()
	if err != nil {
		status.Status = "degraded"
		s.logger.DebugContext(ctx, "Health check without dataset", slog.String("error", err.Error()))
		return status
	}

	status.Dataset = &DatasetHealth{
		ID:            ds.ID.String(),
		LoadedAt:      ds.LoadedAt,
		Candidates:    len(ds.Candidates),
		Neighborhoods: len(ds.Domain),
		Rows:          len(ds.Records),
	}
	return status
}
