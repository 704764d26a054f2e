package stores

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"log-stats/internal/models"
	"log-stats/internal/shared/filestorages"
	"log-stats/internal/shared/loggers"
)

// ErrCacheCorrupted is wrapped by every read error caused by cache content rather than I/O.
var ErrCacheCorrupted = errors.New("log cache corrupted")

const (
	lastTimestampFile = "last_ts_file"
	dailyDataFile     = "daily_data_file"

	groupBots   = "bot"
	groupPeople = "human"
	kindStats   = "stats"
	kindDistrib = "distrib"
)

var yearFilePattern = regexp.MustCompile(`^(\d+)-(bot|human)_(stats|distrib)_file$`)

// LogCacheStore persists LogStats as the incremental text cache: four files per year,
// the last entry timestamp and the daily series.
type LogCacheStore interface {
	// Write stores every year of stats and the last entry timestamp.
	Write(ctx context.Context, stats *models.LogStats) error
	// Read restores the years and the last entry timestamp. An absent cache yields empty stats.
	// The daily rollup is not part of it; see ReadDailyData.
	Read(ctx context.Context) (*models.LogStats, error)
	WriteDailyData(ctx context.Context, series []models.SimpleDailyStats) error
	// ReadDailyData returns the cached daily series, nil when absent.
	ReadDailyData(ctx context.Context) ([]models.SimpleDailyStats, error)
	// MergeDailyData returns the cached series with newer merged after it. Nothing is
	// written, so a rejected merge leaves the cache as it was.
	MergeDailyData(ctx context.Context, newer []models.SimpleDailyStats) ([]models.SimpleDailyStats, error)
}

type logCacheStore struct {
	fileStorage filestorages.FileStorage
	dir         string
}

func NewLogCacheStore(fileStorage filestorages.FileStorage) LogCacheStore {
	return &logCacheStore{fileStorage: fileStorage, dir: "logcache"}
}

func (s *logCacheStore) Write(ctx context.Context, stats *models.LogStats) error {
	if stats.HasCurrentYear() {
		// commit the active pair
		stats.SwitchYear(stats.CurrentYear)
	}

	for _, year := range stats.Years() {
		pair := stats.Year(year)
		files := map[string]string{
			yearFileName(year, groupBots, kindStats):     pair.Bots.FormatStats(),
			yearFileName(year, groupPeople, kindStats):   pair.People.FormatStats(),
			yearFileName(year, groupBots, kindDistrib):   pair.Bots.FormatDistributions(),
			yearFileName(year, groupPeople, kindDistrib): pair.People.FormatDistributions(),
		}
		for name, content := range files {
			if err := s.put(ctx, name, content); err != nil {
				return err
			}
		}
	}

	lastTimestamp := ""
	if !stats.LastEntryTimestamp.IsZero() {
		lastTimestamp = stats.LastEntryTimestamp.Format(models.LogTimeLayout) + "\n"
	}
	if err := s.put(ctx, lastTimestampFile, lastTimestamp); err != nil {
		return err
	}

	metricCacheOperationsTotal.WithLabelValues(operationWrite, outcomeOK).Inc()
	loggers.Ctx(ctx).Debug().Ints("years", stats.Years()).Msg("log cache written")
	return nil
}

func (s *logCacheStore) Read(ctx context.Context) (*models.LogStats, error) {
	stats := models.NewLogStats()

	names, err := s.fileStorage.List(ctx, s.dir)
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			metricCacheOperationsTotal.WithLabelValues(operationRead, outcomeEmpty).Inc()
			return stats, nil
		}
		return nil, fmt.Errorf("failed to list log cache: %w", err)
	}

	present := make(map[int]map[string]bool)
	for _, name := range names {
		match := yearFilePattern.FindStringSubmatch(name)
		if match == nil {
			continue
		}
		year, err := strconv.Atoi(match[1])
		if err != nil || year <= 0 {
			return nil, s.corrupted(name, fmt.Errorf("invalid year %q", match[1]))
		}

		content, err := s.get(ctx, name)
		if err != nil {
			return nil, err
		}

		pair := stats.Year(year)
		if pair == nil {
			pair = models.NewYearStats()
			stats.YearStats[year] = pair
			present[year] = make(map[string]bool)
		}
		group := pair.People
		if match[2] == groupBots {
			group = pair.Bots
		}
		if match[3] == kindStats {
			err = group.ParseStats(content)
		} else {
			err = group.ParseDistributions(content)
		}
		if err != nil {
			return nil, s.corrupted(name, err)
		}
		present[year][match[2]+"_"+match[3]] = true
	}

	for year, files := range present {
		if len(files) != 4 {
			return nil, s.corrupted(strconv.Itoa(year), errors.New("incomplete year"))
		}
	}

	last, err := s.readLastTimestamp(ctx)
	if err != nil {
		return nil, err
	}
	stats.LastEntryTimestamp = last

	if years := stats.Years(); len(years) > 0 {
		stats.SwitchYear(years[len(years)-1])
	}

	metricCacheOperationsTotal.WithLabelValues(operationRead, outcomeOK).Inc()
	loggers.Ctx(ctx).Debug().Ints("years", stats.Years()).Time("last_entry", last).Msg("log cache read")
	return stats, nil
}

func (s *logCacheStore) readLastTimestamp(ctx context.Context) (time.Time, error) {
	content, err := s.get(ctx, lastTimestampFile)
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}

	value := strings.TrimSpace(content)
	if value == "" {
		return time.Time{}, nil
	}
	ts, err := models.ParseTime(models.LogTimeLayout, value)
	if err != nil {
		return time.Time{}, s.corrupted(lastTimestampFile, err)
	}
	return ts, nil
}

func (s *logCacheStore) WriteDailyData(ctx context.Context, series []models.SimpleDailyStats) error {
	return s.put(ctx, dailyDataFile, models.FormatDailyData(series))
}

func (s *logCacheStore) ReadDailyData(ctx context.Context) ([]models.SimpleDailyStats, error) {
	content, err := s.get(ctx, dailyDataFile)
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			return nil, nil
		}
		return nil, err
	}

	series, err := models.ParseDailyData(content)
	if err != nil {
		return nil, s.corrupted(dailyDataFile, err)
	}
	return series, nil
}

func (s *logCacheStore) MergeDailyData(ctx context.Context, newer []models.SimpleDailyStats) ([]models.SimpleDailyStats, error) {
	older, err := s.ReadDailyData(ctx)
	if err != nil {
		return nil, err
	}

	merged, err := models.MergeSimpleDailyData(older, newer)
	if err != nil {
		return nil, s.corrupted(dailyDataFile, err)
	}
	return merged, nil
}

func (s *logCacheStore) put(ctx context.Context, name, content string) error {
	_, err := s.fileStorage.Put(ctx, s.key(name), bytes.NewReader([]byte(content)), filestorages.PutOptions{AllowOverwrite: true})
	if err != nil {
		metricCacheOperationsTotal.WithLabelValues(operationWrite, outcomeError).Inc()
		return fmt.Errorf("failed to put cache file %s: %w", name, err)
	}
	return nil
}

func (s *logCacheStore) get(ctx context.Context, name string) (string, error) {
	readCloser, err := s.fileStorage.Get(ctx, s.key(name))
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			return "", err
		}
		return "", fmt.Errorf("failed to get cache file %s: %w", name, err)
	}
	defer readCloser.Close()

	data, err := io.ReadAll(readCloser)
	if err != nil {
		return "", fmt.Errorf("failed to read cache file %s: %w", name, err)
	}
	return string(data), nil
}

func (s *logCacheStore) corrupted(name string, cause error) error {
	metricCacheOperationsTotal.WithLabelValues(operationRead, outcomeCorrupted).Inc()
	return fmt.Errorf("%w: %s: %w", ErrCacheCorrupted, name, cause)
}

func (s *logCacheStore) key(name string) string {
	return s.dir + "/" + name
}

func yearFileName(year int, group, kind string) string {
	return fmt.Sprintf("%d-%s_%s_file", year, group, kind)
}
