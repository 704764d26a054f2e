package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

func TestGroupStats_Add_Buckets(t *testing.T) {
	t.Parallel()

	g := NewGroupStats()
	// Tuesday
	ts := time.Date(2023, time.October, 10, 13, 55, 36, 0, time.UTC)

	g.Add(ts, true)
	g.Add(ts, false)

	assert.Equal(t, 2, g.DayRequests[13])
	assert.Equal(t, 1, g.DaySessions[13])
	assert.Equal(t, 2, g.WeekRequests[1])
	assert.Equal(t, 1, g.WeekSessions[1])
	assert.Equal(t, 2, g.MonthRequests[9])
	assert.Equal(t, 1, g.MonthSessions[9])
}

func TestGroupStats_Add_Totals(t *testing.T) {
	t.Parallel()

	g := NewGroupStats()
	ts := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	const n = 500
	for i := 0; i < n; i++ {
		g.Add(ts.Add(time.Duration(i)*97*time.Minute), i%3 == 0)
	}

	assert.Equal(t, n, sum(g.DayRequests[:]))
	assert.Equal(t, n, sum(g.WeekRequests[:]))
	assert.Equal(t, n, sum(g.MonthRequests[:]))
	assert.Equal(t, sum(g.DaySessions[:]), sum(g.WeekSessions[:]))
	assert.Equal(t, sum(g.DaySessions[:]), sum(g.MonthSessions[:]))
}

func TestIsoWeekday(t *testing.T) {
	t.Parallel()

	monday := time.Date(2023, time.October, 9, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, isoWeekday(monday))
	assert.Equal(t, 6, isoWeekday(monday.AddDate(0, 0, 6)))
}

func populatedGroupStats() *GroupStats {
	g := NewGroupStats()
	base := time.Date(2023, time.March, 5, 8, 0, 0, 0, time.UTC)

	person := g.Get("10.0.0.1", Classification{})
	g.Add(base, person.AddEntry(base, time.Minute))
	g.Add(base.Add(2*time.Minute), person.AddEntry(base.Add(2*time.Minute), time.Minute))

	bot := g.Get("http://www.google.com/bot.html", Classification{IsBot: true, BotURL: "http://www.google.com/bot.html"})
	bot.HostName = "crawl.googlebot.com"
	bot.ValidIP = ValidIPInvalid
	g.Add(base.Add(time.Hour), bot.AddEntry(base.Add(time.Hour), time.Minute))
	return g
}

func TestGroupStats_TextRoundTrip(t *testing.T) {
	t.Parallel()

	original := populatedGroupStats()

	restored := NewGroupStats()
	require.NoError(t, restored.ParseStats(original.FormatStats()))
	require.NoError(t, restored.ParseDistributions(original.FormatDistributions()))

	assert.Equal(t, original, restored)
}

func TestGroupStats_FormatStats_SortedByKey(t *testing.T) {
	t.Parallel()

	lines := strings.Split(strings.TrimSpace(populatedGroupStats().FormatStats()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "10.0.0.1\t"))
	assert.True(t, strings.HasPrefix(lines[1], "http://www.google.com/bot.html\t"))
}

func TestGroupStats_ParseStats_Duplicate(t *testing.T) {
	t.Parallel()

	line := NewIpStats("10.0.0.1", Classification{}).FormatLine()
	err := NewGroupStats().ParseStats(line + "\n" + line + "\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate key")
}

func TestGroupStats_ParseDistributions_Invalid(t *testing.T) {
	t.Parallel()

	valid := NewGroupStats().FormatDistributions()
	lines := strings.Split(strings.TrimRight(valid, "\n"), "\n")

	tests := []struct {
		name string
		text string
	}{
		{name: "missing line", text: strings.Join(lines[:5], "\n")},
		{name: "short hour line", text: strings.Join(append([]string{"1\t2\t3"}, lines[1:]...), "\n")},
		{name: "not a number", text: strings.Join(append([]string{strings.Replace(lines[0], "0", "x", 1)}, lines[1:]...), "\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Error(t, NewGroupStats().ParseDistributions(tt.text))
		})
	}
}

func TestGroupStats_Totals(t *testing.T) {
	t.Parallel()

	requests, sessions := populatedGroupStats().Totals()
	assert.Equal(t, 3, requests)
	assert.Equal(t, 3, sessions)
}
