package models

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// LineDelimiter separates columns of cache lines.
const LineDelimiter = "\t"

const (
	HoursPerDay   = 24
	DaysPerWeek   = 7
	MonthsPerYear = 12
)

// GroupStats holds one category (bots or people) of one year.
// Week indices start at Monday, month indices at January.
type GroupStats struct {
	Stats map[string]*IpStats

	DayRequests   [HoursPerDay]int
	DaySessions   [HoursPerDay]int
	WeekRequests  [DaysPerWeek]int
	WeekSessions  [DaysPerWeek]int
	MonthRequests [MonthsPerYear]int
	MonthSessions [MonthsPerYear]int
}

func NewGroupStats() *GroupStats {
	return &GroupStats{Stats: make(map[string]*IpStats)}
}

// Get returns the record for key, creating it on first sight.
func (g *GroupStats) Get(key string, class Classification) *IpStats {
	stat, ok := g.Stats[key]
	if !ok {
		stat = NewIpStats(key, class)
		g.Stats[key] = stat
	}
	return stat
}

// Add counts one request at ts in the distributions, and one session when newSession is set.
// The buckets follow the wall clock of ts.
func (g *GroupStats) Add(ts time.Time, newSession bool) {
	hour, weekday, month := ts.Hour(), isoWeekday(ts), int(ts.Month())-1

	g.DayRequests[hour]++
	g.WeekRequests[weekday]++
	g.MonthRequests[month]++
	if newSession {
		g.DaySessions[hour]++
		g.WeekSessions[weekday]++
		g.MonthSessions[month]++
	}
}

// Keys returns the record keys in sorted order.
func (g *GroupStats) Keys() []string {
	keys := make([]string, 0, len(g.Stats))
	for key := range g.Stats {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Totals sums requests and sessions over all records.
func (g *GroupStats) Totals() (requests, sessions int) {
	for _, stat := range g.Stats {
		requests += stat.RequestsCount
		sessions += stat.SessionsCount
	}
	return requests, sessions
}

// distributions lists the six arrays in cache file order.
func (g *GroupStats) distributions() [][]int {
	return [][]int{
		g.DayRequests[:], g.DaySessions[:],
		g.WeekRequests[:], g.WeekSessions[:],
		g.MonthRequests[:], g.MonthSessions[:],
	}
}

// FormatStats renders every record as one cache line, sorted by key.
func (g *GroupStats) FormatStats() string {
	var b strings.Builder
	for _, key := range g.Keys() {
		b.WriteString(g.Stats[key].FormatLine())
		b.WriteByte('\n')
	}
	return b.String()
}

// ParseStats loads records written by FormatStats. Blank lines are skipped.
func (g *GroupStats) ParseStats(text string) error {
	for i, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		stat, err := ParseIpStatsLine(line)
		if err != nil {
			return fmt.Errorf("stats line %d: %w", i+1, err)
		}
		if _, exists := g.Stats[stat.Key]; exists {
			return fmt.Errorf("stats line %d: duplicate key %q", i+1, stat.Key)
		}
		g.Stats[stat.Key] = stat
	}
	return nil
}

// FormatDistributions renders the six distributions, one per line, in the order
// day requests, day sessions, week requests, week sessions, month requests, month sessions.
func (g *GroupStats) FormatDistributions() string {
	var b strings.Builder
	for _, dist := range g.distributions() {
		values := make([]string, len(dist))
		for i, v := range dist {
			values[i] = strconv.Itoa(v)
		}
		b.WriteString(strings.Join(values, LineDelimiter))
		b.WriteByte('\n')
	}
	return b.String()
}

// ParseDistributions loads distributions written by FormatDistributions.
func (g *GroupStats) ParseDistributions(text string) error {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	dists := g.distributions()
	if len(lines) != len(dists) {
		return fmt.Errorf("expected %d distribution lines, got %d", len(dists), len(lines))
	}

	for i, line := range lines {
		values := strings.Split(line, LineDelimiter)
		if len(values) != len(dists[i]) {
			return fmt.Errorf("distribution line %d: expected %d values, got %d", i+1, len(dists[i]), len(values))
		}
		for j, value := range values {
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("distribution line %d: %w", i+1, err)
			}
			// dists[i] aliases the arrays of g
			dists[i][j] = n
		}
	}
	return nil
}

// isoWeekday maps Monday to 0 and Sunday to 6.
func isoWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
