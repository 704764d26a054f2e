package models

import (
	"sort"
	"time"
)

// YearStats is the bots/people pair of one year.
type YearStats struct {
	Bots   *GroupStats
	People *GroupStats
}

func NewYearStats() *YearStats {
	return &YearStats{Bots: NewGroupStats(), People: NewGroupStats()}
}

// LogStats is the multi-year aggregate, the daily rollup and the resume checkpoint.
//
// Bots and People are the pair of CurrentYear; SwitchYear keeps them and
// YearStats[CurrentYear] pointing at the same GroupStats. LogStats is not safe
// for concurrent use.
type LogStats struct {
	CurrentYear int // meaningful once HasCurrentYear
	Bots        *GroupStats
	People      *GroupStats
	YearStats   map[int]*YearStats
	DailyData   map[string]*DailyStats

	// LastEntryTimestamp is the newest entry time ever added.
	LastEntryTimestamp time.Time

	checkpoint time.Time
}

func NewLogStats() *LogStats {
	return &LogStats{
		YearStats: make(map[int]*YearStats),
		DailyData: make(map[string]*DailyStats),
	}
}

// HasCurrentYear reports whether a year has been selected.
func (s *LogStats) HasCurrentYear() bool {
	return s.Bots != nil && s.People != nil
}

// SwitchYear commits the active pair and makes the pair of year active, creating it when new.
func (s *LogStats) SwitchYear(year int) {
	if s.HasCurrentYear() {
		s.YearStats[s.CurrentYear] = &YearStats{Bots: s.Bots, People: s.People}
	}

	pair, ok := s.YearStats[year]
	if !ok {
		pair = NewYearStats()
		s.YearStats[year] = pair
	}
	s.CurrentYear = year
	s.Bots, s.People = pair.Bots, pair.People
}

// MarkCheckpoint freezes the current high-water mark. Entries not newer than it are skipped
// by AddEntry until the next call.
func (s *LogStats) MarkCheckpoint() {
	s.checkpoint = s.LastEntryTimestamp
}

// Checkpoint returns the frozen high-water mark.
func (s *LogStats) Checkpoint() time.Time {
	return s.checkpoint
}

// AddEntry folds one classified request into the aggregate and reports whether it was counted.
// Entries at or before the checkpoint are ignored. Per key, entries must arrive in
// non-decreasing time order for session counts to be meaningful.
func (s *LogStats) AddEntry(ts time.Time, host string, class Classification, delim time.Duration) bool {
	if !s.checkpoint.IsZero() && !ts.After(s.checkpoint) {
		return false
	}

	if !s.HasCurrentYear() || ts.Year() != s.CurrentYear {
		s.SwitchYear(ts.Year())
	}

	group := s.People
	if class.IsBot {
		group = s.Bots
	}

	key := class.Key(host)
	stat := group.Get(key, class)
	newSession := stat.AddEntry(ts, delim)
	group.Add(ts, newSession)

	date := ts.Format(DateLayout)
	day, ok := s.DailyData[date]
	if !ok {
		day = NewDailyStats(date)
		s.DailyData[date] = day
	}
	day.AddIP(host)
	day.RequestsCount++
	if newSession && !class.IsBot {
		day.HumanSessionsCount++
	}

	if ts.After(s.LastEntryTimestamp) {
		s.LastEntryTimestamp = ts
	}
	return true
}

// Year returns the pair of year, nil when absent.
func (s *LogStats) Year(year int) *YearStats {
	return s.YearStats[year]
}

// Years returns the years present in ascending order.
func (s *LogStats) Years() []int {
	years := make([]int, 0, len(s.YearStats))
	for year := range s.YearStats {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}

// DailySeries returns the daily rollup projected to SimpleDailyStats, date ascending.
func (s *LogStats) DailySeries() []SimpleDailyStats {
	dates := make([]string, 0, len(s.DailyData))
	for date := range s.DailyData {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	series := make([]SimpleDailyStats, 0, len(dates))
	for _, date := range dates {
		series = append(series, s.DailyData[date].Simple())
	}
	return series
}
