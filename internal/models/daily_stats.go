package models

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ErrDailyDataOutOfOrder is returned when older daily data ends after newer daily data starts.
var ErrDailyDataOutOfOrder = errors.New("daily data out of order")

// DailyStats is the rollup of one calendar date across bots and people.
type DailyStats struct {
	Date               string
	UniqueIPs          map[string]struct{}
	RequestsCount      int
	HumanSessionsCount int
}

func NewDailyStats(date string) *DailyStats {
	return &DailyStats{Date: date, UniqueIPs: make(map[string]struct{})}
}

func (d *DailyStats) AddIP(ip string) {
	d.UniqueIPs[ip] = struct{}{}
}

// IPs returns the unique IPs in sorted order.
func (d *DailyStats) IPs() []string {
	ips := make([]string, 0, len(d.UniqueIPs))
	for ip := range d.UniqueIPs {
		ips = append(ips, ip)
	}
	sort.Strings(ips)
	return ips
}

// Simple projects the rollup to counts only.
func (d *DailyStats) Simple() SimpleDailyStats {
	return SimpleDailyStats{
		Date:          d.Date,
		UniqueIPs:     len(d.UniqueIPs),
		RequestsCount: d.RequestsCount,
		SessionsCount: d.HumanSessionsCount,
	}
}

// SimpleDailyStats is the cached form of DailyStats with the IP set reduced to its size.
type SimpleDailyStats struct {
	Date          string `json:"date"`
	UniqueIPs     int    `json:"unique_ips"`
	RequestsCount int    `json:"requests"`
	SessionsCount int    `json:"sessions"`
}

const simpleDailyStatsFields = 4

// FormatLine renders date, unique ips, requests and sessions separated by tabs.
func (s SimpleDailyStats) FormatLine() string {
	return strings.Join([]string{
		s.Date,
		strconv.Itoa(s.UniqueIPs),
		strconv.Itoa(s.RequestsCount),
		strconv.Itoa(s.SessionsCount),
	}, LineDelimiter)
}

func ParseSimpleDailyStatsLine(line string) (SimpleDailyStats, error) {
	cols := strings.Split(line, LineDelimiter)
	if len(cols) != simpleDailyStatsFields {
		return SimpleDailyStats{}, fmt.Errorf("expected %d columns, got %d", simpleDailyStatsFields, len(cols))
	}
	if _, err := time.Parse(DateLayout, cols[0]); err != nil {
		return SimpleDailyStats{}, fmt.Errorf("invalid date: %w", err)
	}

	var counts [3]int
	for i, col := range cols[1:] {
		n, err := strconv.Atoi(col)
		if err != nil {
			return SimpleDailyStats{}, fmt.Errorf("invalid count in column %d: %w", i+2, err)
		}
		counts[i] = n
	}

	return SimpleDailyStats{
		Date:          cols[0],
		UniqueIPs:     counts[0],
		RequestsCount: counts[1],
		SessionsCount: counts[2],
	}, nil
}

// FormatDailyData renders one line per date.
func FormatDailyData(series []SimpleDailyStats) string {
	var b strings.Builder
	for _, day := range series {
		b.WriteString(day.FormatLine())
		b.WriteByte('\n')
	}
	return b.String()
}

// ParseDailyData reads lines written by FormatDailyData. Dates must be strictly ascending.
func ParseDailyData(text string) ([]SimpleDailyStats, error) {
	var series []SimpleDailyStats
	for i, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		day, err := ParseSimpleDailyStatsLine(line)
		if err != nil {
			return nil, fmt.Errorf("daily data line %d: %w", i+1, err)
		}
		if n := len(series); n > 0 && series[n-1].Date >= day.Date {
			return nil, fmt.Errorf("daily data line %d: %w: %s after %s", i+1, ErrDailyDataOutOfOrder, day.Date, series[n-1].Date)
		}
		series = append(series, day)
	}
	return series, nil
}

// MergeSimpleDailyData appends newer to older. Both must be date ascending.
// The last day of older may equal the first day of newer; the two records are summed.
// An older series ending after newer starts is rejected with ErrDailyDataOutOfOrder.
func MergeSimpleDailyData(older, newer []SimpleDailyStats) ([]SimpleDailyStats, error) {
	if len(older) == 0 {
		return append([]SimpleDailyStats(nil), newer...), nil
	}
	if len(newer) == 0 {
		return append([]SimpleDailyStats(nil), older...), nil
	}

	last, first := older[len(older)-1], newer[0]
	if last.Date > first.Date {
		return nil, fmt.Errorf("%w: cached %s is after %s", ErrDailyDataOutOfOrder, last.Date, first.Date)
	}

	merged := make([]SimpleDailyStats, 0, len(older)+len(newer))
	merged = append(merged, older...)
	if last.Date == first.Date {
		merged[len(merged)-1] = SimpleDailyStats{
			Date:          last.Date,
			UniqueIPs:     last.UniqueIPs + first.UniqueIPs,
			RequestsCount: last.RequestsCount + first.RequestsCount,
			SessionsCount: last.SessionsCount + first.SessionsCount,
		}
		newer = newer[1:]
	}
	return append(merged, newer...), nil
}
