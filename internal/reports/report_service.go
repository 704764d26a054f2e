package reports

import (
	"context"
	"sync"

	"log-stats/internal/models"
)

// ReportService answers report queries over one LogStats. Calls are serialised because
// building a report may resolve host names and geolocations into the stats.
//
//go:generate mockgen -source=report_service.go -destination=./mocks/report_service_mock.go -package=mocks
type ReportService interface {
	Years(ctx context.Context) []int
	YearReport(ctx context.Context, year int, topN int) (*models.YearReport, error)
	Daily(ctx context.Context) []models.SimpleDailyStats
}

type reportService struct {
	mu      sync.Mutex
	stats   *models.LogStats
	builder ReportBuilder
	// daily overrides the series of stats when the rollup was kept apart, as the cache does.
	daily []models.SimpleDailyStats
}

// NewReportService serves stats. A non-nil daily series is served instead of the
// series derived from stats.
func NewReportService(stats *models.LogStats, builder ReportBuilder, daily []models.SimpleDailyStats) ReportService {
	return &reportService{
		stats:   stats,
		builder: builder,
		daily:   daily,
	}
}

func (s *reportService) Years(ctx context.Context) []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats.Years()
}

func (s *reportService) YearReport(ctx context.Context, year int, topN int) (*models.YearReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.builder.Build(ctx, s.stats, year, topN)
}

func (s *reportService) Daily(ctx context.Context) []models.SimpleDailyStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.daily != nil {
		return append([]models.SimpleDailyStats(nil), s.daily...)
	}
	return s.stats.DailySeries()
}
