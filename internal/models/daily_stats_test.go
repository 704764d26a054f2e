package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(date string, ips, requests, sessions int) SimpleDailyStats {
	return SimpleDailyStats{Date: date, UniqueIPs: ips, RequestsCount: requests, SessionsCount: sessions}
}

func TestMergeSimpleDailyData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		older    []SimpleDailyStats
		newer    []SimpleDailyStats
		expected []SimpleDailyStats
	}{
		{
			name:     "empty older",
			newer:    []SimpleDailyStats{day("2023-10-10", 1, 2, 1)},
			expected: []SimpleDailyStats{day("2023-10-10", 1, 2, 1)},
		},
		{
			name:     "empty newer",
			older:    []SimpleDailyStats{day("2023-10-10", 1, 2, 1)},
			expected: []SimpleDailyStats{day("2023-10-10", 1, 2, 1)},
		},
		{
			name:  "disjoint",
			older: []SimpleDailyStats{day("2023-10-09", 1, 1, 1), day("2023-10-10", 2, 2, 2)},
			newer: []SimpleDailyStats{day("2023-10-11", 3, 3, 3)},
			expected: []SimpleDailyStats{
				day("2023-10-09", 1, 1, 1), day("2023-10-10", 2, 2, 2), day("2023-10-11", 3, 3, 3),
			},
		},
		{
			name:  "boundary day summed",
			older: []SimpleDailyStats{day("2023-10-09", 1, 1, 1), day("2023-10-10", 2, 5, 2)},
			newer: []SimpleDailyStats{day("2023-10-10", 3, 4, 1), day("2023-10-11", 1, 1, 1)},
			expected: []SimpleDailyStats{
				day("2023-10-09", 1, 1, 1), day("2023-10-10", 5, 9, 3), day("2023-10-11", 1, 1, 1),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			merged, err := MergeSimpleDailyData(tt.older, tt.newer)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, merged)
		})
	}
}

func TestMergeSimpleDailyData_OutOfOrder(t *testing.T) {
	t.Parallel()

	older := []SimpleDailyStats{day("2023-10-12", 1, 1, 1)}
	newer := []SimpleDailyStats{day("2023-10-11", 1, 1, 1)}

	merged, err := MergeSimpleDailyData(older, newer)
	assert.Nil(t, merged)
	assert.ErrorIs(t, err, ErrDailyDataOutOfOrder)
}

func TestMergeSimpleDailyData_DoesNotAliasInput(t *testing.T) {
	t.Parallel()

	older := []SimpleDailyStats{day("2023-10-10", 1, 1, 1)}
	newer := []SimpleDailyStats{day("2023-10-10", 1, 1, 1)}

	_, err := MergeSimpleDailyData(older, newer)
	require.NoError(t, err)
	assert.Equal(t, day("2023-10-10", 1, 1, 1), older[0])
}

func TestDailyData_TextRoundTrip(t *testing.T) {
	t.Parallel()

	first := []SimpleDailyStats{day("2023-10-09", 4, 10, 3), day("2023-10-10", 2, 7, 2)}
	second := []SimpleDailyStats{day("2023-10-10", 1, 3, 1), day("2023-10-12", 5, 9, 4)}

	written, err := MergeSimpleDailyData(first, second)
	require.NoError(t, err)

	text := FormatDailyData(written)
	assert.Equal(t, "2023-10-09\t4\t10\t3\n2023-10-10\t3\t10\t3\n2023-10-12\t5\t9\t4\n", text)

	read, err := ParseDailyData(text)
	require.NoError(t, err)
	assert.Equal(t, written, read)
}

func TestParseDailyData_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
	}{
		{name: "bad date", text: "10/10/2023\t1\t1\t1\n"},
		{name: "too few columns", text: "2023-10-10\t1\t1\n"},
		{name: "bad count", text: "2023-10-10\t1\tmany\t1\n"},
		{name: "descending", text: "2023-10-11\t1\t1\t1\n2023-10-10\t1\t1\t1\n"},
		{name: "duplicate date", text: "2023-10-10\t1\t1\t1\n2023-10-10\t1\t1\t1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseDailyData(tt.text)
			assert.Error(t, err)
		})
	}
}

func TestDailyStats_Simple(t *testing.T) {
	t.Parallel()

	d := NewDailyStats("2023-10-10")
	d.AddIP("10.0.0.2")
	d.AddIP("10.0.0.1")
	d.AddIP("10.0.0.2")
	d.RequestsCount = 5
	d.HumanSessionsCount = 2

	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, d.IPs())
	assert.Equal(t, day("2023-10-10", 2, 5, 2), d.Simple())
}
