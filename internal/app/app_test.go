package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"log-stats/internal/models"
	reportmocks "log-stats/internal/reports/mocks"
	"log-stats/internal/shared/configs"
	"log-stats/internal/shared/svcerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	firefoxUA   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:123.0) Gecko/20100101 Firefox/123.0"
	googlebotUA = "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)"
)

func logLine(host string, ts time.Time, userAgent string) string {
	return fmt.Sprintf(`%s - - [%s] "GET / HTTP/1.1" 200 512 "-" "%s"`, host, ts.Format(models.LogTimeLayout), userAgent)
}

func sampleInput(start time.Time) string {
	return strings.Join([]string{
		logLine("10.0.0.1", start, firefoxUA),
		logLine("10.0.0.1", start.Add(10*time.Second), firefoxUA),
		logLine("66.249.66.1", start.Add(20*time.Second), googlebotUA),
	}, "\n") + "\n"
}

func testConfig(t *testing.T) *configs.Config {
	t.Helper()
	cfg, err := configs.LoadConfig("", nil)
	require.NoError(t, err)

	cfg.Log.Level = "error"
	cfg.Output.Dir = t.TempDir()
	cfg.Geolocation.SampleSize = 0
	cfg.Geolocation.TLDSampleSize = 0
	cfg.Resolution.Enabled = false
	return cfg
}

func newTestApp(t *testing.T, cfg *configs.Config, input string) *App {
	t.Helper()
	app, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	app.stdin = strings.NewReader(input)
	return app
}

func readYearReport(t *testing.T, outputDir string, year int) models.YearReport {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(outputDir, "reports", fmt.Sprintf("%d.json", year)))
	require.NoError(t, err)
	var report models.YearReport
	require.NoError(t, json.Unmarshal(data, &report))
	return report
}

func readDaily(t *testing.T, outputDir string) []models.SimpleDailyStats {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(outputDir, "reports", "daily.json"))
	require.NoError(t, err)
	var series []models.SimpleDailyStats
	require.NoError(t, json.Unmarshal(data, &series))
	return series
}

func requireServiceError(t *testing.T, err error, category, code string) {
	t.Helper()
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok, "expected a service error, got %v", err)
	assert.Equal(t, category, svcErr.Category)
	assert.Equal(t, code, svcErr.Code)
}

func TestRun_WritesReports(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	start := time.Date(2023, time.October, 10, 10, 0, 0, 0, time.UTC)
	app := newTestApp(t, cfg, sampleInput(start))

	result, err := app.Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, result.RunID, 26)
	assert.Equal(t, 3, result.Ingest.Accepted)
	assert.Nil(t, result.Group)
	assert.Equal(t, []int{2023}, result.Years)
	assert.Len(t, result.Reports, 2)

	report := readYearReport(t, cfg.Output.Dir, 2023)
	assert.Equal(t, 2023, report.Year)
	assert.Equal(t, 2, report.People.Requests)
	assert.Equal(t, 1, report.People.Sessions)
	assert.Equal(t, 1, report.Bots.Requests)
	require.Len(t, report.People.TopByRequests, 1)
	assert.Equal(t, "10.0.0.1", report.People.TopByRequests[0].Key)

	daily := readDaily(t, cfg.Output.Dir)
	require.NotEmpty(t, daily)
	assert.Equal(t, "2023-10-10", daily[0].Date)
}

func TestRun_ResumesFromCache(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Cache.BasePath = t.TempDir()
	start := time.Date(2023, time.October, 10, 10, 0, 0, 0, time.UTC)
	input := sampleInput(start)

	first, err := newTestApp(t, cfg, input).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, first.Ingest.Accepted)
	firstDaily := readDaily(t, cfg.Output.Dir)

	// the same log again is entirely behind the cached checkpoint
	second, err := newTestApp(t, cfg, input).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Ingest.Accepted)
	assert.Equal(t, 3, second.Ingest.Skipped)
	assert.Equal(t, firstDaily, readDaily(t, cfg.Output.Dir))
	assert.Equal(t, 2, readYearReport(t, cfg.Output.Dir, 2023).People.Requests)

	// a grown log only adds its new lines
	grown := input + logLine("10.0.0.2", start.Add(24*time.Hour), firefoxUA) + "\n"
	third, err := newTestApp(t, cfg, grown).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, third.Ingest.Accepted)

	report := readYearReport(t, cfg.Output.Dir, 2023)
	assert.Equal(t, 3, report.People.Requests)
	assert.Equal(t, 2, report.People.Keys)
	daily := readDaily(t, cfg.Output.Dir)
	require.Len(t, daily, 2)
	assert.Equal(t, firstDaily[0], daily[0])
	assert.Equal(t, "2023-10-11", daily[1].Date)
}

func readCacheFile(t *testing.T, cfg *configs.Config, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(cfg.Cache.BasePath, "logcache", name))
	require.NoError(t, err)
	return string(data)
}

func TestRun_RejectedDailyMergeLeavesCacheUntouched(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Cache.BasePath = t.TempDir()

	// 2023-10-10T22:30Z, bucketed under its local date 2023-10-11
	first := logLine("10.0.0.1", time.Date(2023, time.October, 11, 0, 30, 0, 0, time.FixedZone("", 2*3600)), firefoxUA) + "\n"
	_, err := newTestApp(t, cfg, first).Run(context.Background())
	require.NoError(t, err)
	lastTimestamp := readCacheFile(t, cfg, "last_ts_file")
	dailyData := readCacheFile(t, cfg, "daily_data_file")

	// newer instant, earlier date
	grown := first + logLine("10.0.0.2", time.Date(2023, time.October, 10, 23, 0, 0, 0, time.UTC), firefoxUA) + "\n"
	for i := 0; i < 2; i++ {
		result, err := newTestApp(t, cfg, grown).Run(context.Background())
		assert.Nil(t, result)
		requireServiceError(t, err, "data_corruption", "APP_2000")

		assert.Equal(t, lastTimestamp, readCacheFile(t, cfg, "last_ts_file"), "run %d moved the checkpoint", i+2)
		assert.Equal(t, dailyData, readCacheFile(t, cfg, "daily_data_file"))
		assert.NotContains(t, readCacheFile(t, cfg, "2023-human_stats_file"), "10.0.0.2")
	}
}

func TestRun_UnstorableLinesKeepCacheReadable(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Cache.BasePath = t.TempDir()
	start := time.Date(2023, time.October, 10, 10, 0, 0, 0, time.UTC)
	input := `10.0.0.9 - - [01/Jan/0000:00:00:00 +0000] "GET / HTTP/1.1" 200 1 "-" "` + firefoxUA + `"` + "\n" +
		logLine("10.0.0.1\tx", start, firefoxUA) + "\n" +
		sampleInput(start)

	var first *RunResult
	var err error
	require.NotPanics(t, func() {
		first, err = newTestApp(t, cfg, input).Run(context.Background())
	})
	require.NoError(t, err)
	assert.Equal(t, 3, first.Ingest.Accepted)
	assert.Equal(t, 1, first.Ingest.Malformed)
	assert.Equal(t, 1, first.Ingest.BadTimestamp)
	assert.Equal(t, []int{2023}, first.Years)

	second, err := newTestApp(t, cfg, input).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, second.Ingest.Skipped)
	assert.Equal(t, 2, readYearReport(t, cfg.Output.Dir, 2023).People.Requests)
}

func TestRun_PersistsLookupsMadeByReports(t *testing.T) {
	t.Parallel()

	snapshotPath := filepath.Join(t.TempDir(), "stats.json")
	cfg := testConfig(t)
	cfg.Snapshot.SavePath = snapshotPath
	start := time.Date(2023, time.October, 10, 10, 0, 0, 0, time.UTC)
	app := newTestApp(t, cfg, sampleInput(start))

	builder := reportmocks.NewMockReportBuilder(gomock.NewController(t))
	builder.EXPECT().
		Build(gomock.Any(), gomock.Any(), 2023, cfg.Output.TopN).
		DoAndReturn(func(_ context.Context, stats *models.LogStats, year int, _ int) (*models.YearReport, error) {
			stat := stats.Year(year).People.Stats["10.0.0.1"]
			stat.HostName = "host-1.example.com"
			stat.Geolocation = "Czechia"
			return &models.YearReport{Year: year}, nil
		})
	app.reportBuilder = builder

	_, err := app.Run(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(snapshotPath)
	require.NoError(t, err)
	saved := models.NewLogStats()
	require.NoError(t, json.Unmarshal(data, saved))
	stat := saved.Year(2023).People.Stats["10.0.0.1"]
	require.NotNil(t, stat)
	assert.Equal(t, "host-1.example.com", stat.HostName)
	assert.Equal(t, "Czechia", stat.Geolocation)
}

func TestRun_SnapshotRoundTrip(t *testing.T) {
	t.Parallel()

	snapshotPath := filepath.Join(t.TempDir(), "stats.json")
	start := time.Date(2023, time.October, 10, 10, 0, 0, 0, time.UTC)

	cfg := testConfig(t)
	cfg.Snapshot.SavePath = snapshotPath
	_, err := newTestApp(t, cfg, sampleInput(start)).Run(context.Background())
	require.NoError(t, err)

	cfg = testConfig(t)
	cfg.Snapshot.LoadPath = snapshotPath
	result, err := newTestApp(t, cfg, logLine("10.0.0.1", start.Add(time.Hour), firefoxUA)+"\n").Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Ingest.Accepted)

	report := readYearReport(t, cfg.Output.Dir, 2023)
	assert.Equal(t, 3, report.People.Requests)
	assert.Equal(t, 2, report.People.Sessions)
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		configure        func(t *testing.T, cfg *configs.Config)
		expectedCategory string
		expectedCode     string
	}{
		{
			name: "missing snapshot",
			configure: func(t *testing.T, cfg *configs.Config) {
				cfg.Snapshot.LoadPath = filepath.Join(t.TempDir(), "absent.json")
			},
			expectedCategory: "not_found",
			expectedCode:     "APP_1002",
		},
		{
			name: "corrupted snapshot",
			configure: func(t *testing.T, cfg *configs.Config) {
				path := filepath.Join(t.TempDir(), "stats.json")
				require.NoError(t, os.WriteFile(path, []byte(`{"years": [`), 0o644))
				cfg.Snapshot.LoadPath = path
			},
			expectedCategory: "data_corruption",
			expectedCode:     "APP_2001",
		},
		{
			name: "corrupted cache",
			configure: func(t *testing.T, cfg *configs.Config) {
				cfg.Cache.BasePath = t.TempDir()
				dir := filepath.Join(cfg.Cache.BasePath, "logcache")
				require.NoError(t, os.MkdirAll(dir, 0o755))
				require.NoError(t, os.WriteFile(filepath.Join(dir, "last_ts_file"), []byte("yesterday\n"), 0o644))
			},
			expectedCategory: "data_corruption",
			expectedCode:     "APP_2000",
		},
		{
			name: "missing input file",
			configure: func(t *testing.T, cfg *configs.Config) {
				cfg.Input.Path = filepath.Join(t.TempDir(), "access.log")
			},
			expectedCategory: "invalid_argument",
			expectedCode:     "APP_1000",
		},
		{
			name: "year without statistics",
			configure: func(t *testing.T, cfg *configs.Config) {
				cfg.Output.Year = 1999
			},
			expectedCategory: "not_found",
			expectedCode:     "RPT_1001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := testConfig(t)
			tt.configure(t, cfg)
			start := time.Date(2023, time.October, 10, 10, 0, 0, 0, time.UTC)

			result, err := newTestApp(t, cfg, sampleInput(start)).Run(context.Background())
			assert.Nil(t, result)
			requireServiceError(t, err, tt.expectedCategory, tt.expectedCode)
		})
	}
}

func TestRun_InputFile(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Input.Path = filepath.Join(t.TempDir(), "access.log")
	start := time.Date(2022, time.March, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, os.WriteFile(cfg.Input.Path, []byte(sampleInput(start)), 0o644))

	result, err := newTestApp(t, cfg, "").Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{2022}, result.Years)
}

func TestNew_BotIPFile(t *testing.T) {
	t.Parallel()

	t.Run("classifies listed addresses", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t)
		cfg.Bots.IPFile = filepath.Join(t.TempDir(), "bots.txt")
		require.NoError(t, os.WriteFile(cfg.Bots.IPFile, []byte("# crawlers\n10.0.0.1\n"), 0o644))
		start := time.Date(2023, time.October, 10, 10, 0, 0, 0, time.UTC)

		_, err := newTestApp(t, cfg, sampleInput(start)).Run(context.Background())
		require.NoError(t, err)

		report := readYearReport(t, cfg.Output.Dir, 2023)
		assert.Equal(t, 0, report.People.Requests)
		assert.Equal(t, 3, report.Bots.Requests)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t)
		cfg.Bots.IPFile = filepath.Join(t.TempDir(), "absent.txt")

		app, err := New(cfg)
		assert.Nil(t, app)
		requireServiceError(t, err, "invalid_argument", "APP_1001")
	})
}

func TestServe(t *testing.T) {
	t.Parallel()

	snapshotPath := filepath.Join(t.TempDir(), "stats.json")
	start := time.Date(2023, time.October, 10, 10, 0, 0, 0, time.UTC)

	cfg := testConfig(t)
	cfg.Snapshot.SavePath = snapshotPath
	_, err := newTestApp(t, cfg, sampleInput(start)).Run(context.Background())
	require.NoError(t, err)

	cfg = testConfig(t)
	cfg.Snapshot.LoadPath = snapshotPath
	app := newTestApp(t, cfg, "")

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	baseURL := "http://" + listener.Addr().String()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- app.serve(ctx, listener)
	}()

	var body []byte
	require.Eventually(t, func() bool {
		resp, err := http.Get(baseURL + "/years")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, err = io.ReadAll(resp.Body)
		return err == nil && resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)
	assert.JSONEq(t, `{"years":[2023]}`, string(body))

	resp, err := http.Get(baseURL + "/years/1999")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
