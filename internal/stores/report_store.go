package stores

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"log-stats/internal/models"
	"log-stats/internal/shared/filestorages"
)

// ReportStore writes rendered reports as JSON documents.
type ReportStore interface {
	SaveYearReport(ctx context.Context, report *models.YearReport) error
	SaveDailyReport(ctx context.Context, series []models.SimpleDailyStats) error
}

type reportStore struct {
	fileStorage filestorages.FileStorage
	dir         string
}

func NewReportStore(fileStorage filestorages.FileStorage) ReportStore {
	return &reportStore{fileStorage: fileStorage, dir: "reports"}
}

func (s *reportStore) SaveYearReport(ctx context.Context, report *models.YearReport) error {
	return s.put(ctx, s.yearKey(report.Year), report)
}

func (s *reportStore) SaveDailyReport(ctx context.Context, series []models.SimpleDailyStats) error {
	if series == nil {
		series = []models.SimpleDailyStats{}
	}
	return s.put(ctx, s.dir+"/daily.json", series)
}

func (s *reportStore) put(ctx context.Context, key string, value any) error {
	jsonData, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	_, err = s.fileStorage.Put(ctx, key, bytes.NewReader(jsonData), filestorages.PutOptions{AllowOverwrite: true})
	if err != nil {
		return fmt.Errorf("failed to put report: %w", err)
	}
	return nil
}

func (s *reportStore) yearKey(year int) string {
	return fmt.Sprintf("%s/%d.json", s.dir, year)
}
