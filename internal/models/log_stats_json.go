package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

type ipStatsJSON struct {
	IPAddr      string `json:"ip_addr"`
	HostName    string `json:"host_name"`
	Geolocation string `json:"geolocation"`
	BotURL      string `json:"bot_url"`
	IsBot       bool   `json:"is_bot"`
	Requests    int    `json:"requests_num"`
	Sessions    int    `json:"sessions_num"`
	Datetime    string `json:"datetime"`
	ValidIP     *bool  `json:"valid_ip"`
}

type groupStatsJSON struct {
	Stats            map[string]ipStatsJSON `json:"stats"`
	DayReqDistrib    []int                  `json:"day_req_distrib"`
	DaySessDistrib   []int                  `json:"day_sess_distrib"`
	WeekReqDistrib   []int                  `json:"week_req_distrib"`
	WeekSessDistrib  []int                  `json:"week_sess_distrib"`
	MonthReqDistrib  []int                  `json:"month_req_distrib"`
	MonthSessDistrib []int                  `json:"month_sess_distrib"`
}

// dailyJSON is [unique_ip_list, requests, sessions].
type dailyJSON []json.RawMessage

// yearJSON is [bots, people].
type yearJSON []groupStatsJSON

type logStatsJSON struct {
	Bots        *groupStatsJSON      `json:"bots"`
	People      *groupStatsJSON      `json:"people"`
	DailyData   map[string]dailyJSON `json:"daily_data"`
	YearStats   map[string]yearJSON  `json:"year_stats"`
	CurrentYear *int                 `json:"current_year"`
	LastEntryTS string               `json:"last_entry_ts"`
}

func (s *IpStats) toJSON() ipStatsJSON {
	out := ipStatsJSON{
		IPAddr:      s.Key,
		HostName:    s.HostName,
		Geolocation: s.Geolocation,
		BotURL:      s.BotURL,
		IsBot:       s.IsBot,
		Requests:    s.RequestsCount,
		Sessions:    s.SessionsCount,
		Datetime:    s.LastSeen.Format(StatsTimeLayout),
	}
	if s.ValidIP != ValidIPUnknown {
		valid := s.ValidIP == ValidIPValid
		out.ValidIP = &valid
	}
	return out
}

func (j ipStatsJSON) toModel(key string) (*IpStats, error) {
	if j.IPAddr != key {
		return nil, fmt.Errorf("record %q stored under key %q", j.IPAddr, key)
	}
	lastSeen, err := ParseTime(StatsTimeLayout, j.Datetime)
	if err != nil {
		return nil, fmt.Errorf("record %q: invalid datetime: %w", key, err)
	}

	validIP := ValidIPUnknown
	if j.ValidIP != nil {
		validIP = ValidIPInvalid
		if *j.ValidIP {
			validIP = ValidIPValid
		}
	}

	return &IpStats{
		Key:           j.IPAddr,
		HostName:      j.HostName,
		Geolocation:   j.Geolocation,
		BotURL:        j.BotURL,
		IsBot:         j.IsBot,
		RequestsCount: j.Requests,
		SessionsCount: j.Sessions,
		LastSeen:      lastSeen,
		ValidIP:       validIP,
	}, nil
}

func (g *GroupStats) toJSON() groupStatsJSON {
	out := groupStatsJSON{Stats: make(map[string]ipStatsJSON, len(g.Stats))}
	for key, stat := range g.Stats {
		out.Stats[key] = stat.toJSON()
	}
	out.DayReqDistrib = append([]int(nil), g.DayRequests[:]...)
	out.DaySessDistrib = append([]int(nil), g.DaySessions[:]...)
	out.WeekReqDistrib = append([]int(nil), g.WeekRequests[:]...)
	out.WeekSessDistrib = append([]int(nil), g.WeekSessions[:]...)
	out.MonthReqDistrib = append([]int(nil), g.MonthRequests[:]...)
	out.MonthSessDistrib = append([]int(nil), g.MonthSessions[:]...)
	return out
}

func (j groupStatsJSON) toModel() (*GroupStats, error) {
	g := NewGroupStats()
	for key, rec := range j.Stats {
		stat, err := rec.toModel(key)
		if err != nil {
			return nil, err
		}
		g.Stats[key] = stat
	}

	src := [][]int{
		j.DayReqDistrib, j.DaySessDistrib,
		j.WeekReqDistrib, j.WeekSessDistrib,
		j.MonthReqDistrib, j.MonthSessDistrib,
	}
	for i, dst := range g.distributions() {
		if len(src[i]) != len(dst) {
			return nil, fmt.Errorf("distribution %d: expected %d values, got %d", i+1, len(dst), len(src[i]))
		}
		copy(dst, src[i])
	}
	return g, nil
}

// MarshalJSON writes the snapshot form of the aggregate.
func (s *LogStats) MarshalJSON() ([]byte, error) {
	out := logStatsJSON{
		DailyData: make(map[string]dailyJSON, len(s.DailyData)),
		YearStats: make(map[string]yearJSON, len(s.YearStats)),
	}

	if s.HasCurrentYear() {
		year := s.CurrentYear
		out.CurrentYear = &year
	}
	if s.Bots != nil {
		bots := s.Bots.toJSON()
		out.Bots = &bots
	}
	if s.People != nil {
		people := s.People.toJSON()
		out.People = &people
	}
	for year, pair := range s.YearStats {
		out.YearStats[strconv.Itoa(year)] = yearJSON{pair.Bots.toJSON(), pair.People.toJSON()}
	}

	for date, day := range s.DailyData {
		ips, err := json.Marshal(day.IPs())
		if err != nil {
			return nil, err
		}
		out.DailyData[date] = dailyJSON{
			ips,
			json.RawMessage(strconv.Itoa(day.RequestsCount)),
			json.RawMessage(strconv.Itoa(day.HumanSessionsCount)),
		}
	}

	if !s.LastEntryTimestamp.IsZero() {
		out.LastEntryTS = s.LastEntryTimestamp.Format(StatsTimeLayout)
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads a snapshot. Unknown keys and inconsistent shapes are rejected.
func (s *LogStats) UnmarshalJSON(data []byte) error {
	var in logStatsJSON
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return err
	}

	out := NewLogStats()
	for yearKey, pair := range in.YearStats {
		year, err := strconv.Atoi(yearKey)
		if err != nil || year <= 0 {
			return fmt.Errorf("invalid year %q", yearKey)
		}
		if len(pair) != 2 {
			return fmt.Errorf("year %d: expected [bots, people], got %d entries", year, len(pair))
		}
		bots, err := pair[0].toModel()
		if err != nil {
			return fmt.Errorf("year %d bots: %w", year, err)
		}
		people, err := pair[1].toModel()
		if err != nil {
			return fmt.Errorf("year %d people: %w", year, err)
		}
		out.YearStats[year] = &YearStats{Bots: bots, People: people}
	}

	if in.CurrentYear != nil {
		year := *in.CurrentYear
		if year <= 0 {
			return fmt.Errorf("invalid current year %d", year)
		}
		if _, ok := out.YearStats[year]; !ok {
			if in.Bots == nil || in.People == nil {
				return fmt.Errorf("current year %d has no stats", year)
			}
			bots, err := in.Bots.toModel()
			if err != nil {
				return fmt.Errorf("bots: %w", err)
			}
			people, err := in.People.toModel()
			if err != nil {
				return fmt.Errorf("people: %w", err)
			}
			out.YearStats[year] = &YearStats{Bots: bots, People: people}
		}
		out.SwitchYear(year)
	}

	for date, raw := range in.DailyData {
		if _, err := time.Parse(DateLayout, date); err != nil {
			return fmt.Errorf("invalid daily date %q: %w", date, err)
		}
		if len(raw) != 3 {
			return fmt.Errorf("daily %s: expected [ips, requests, sessions], got %d entries", date, len(raw))
		}
		day := NewDailyStats(date)
		var ips []string
		if err := json.Unmarshal(raw[0], &ips); err != nil {
			return fmt.Errorf("daily %s ips: %w", date, err)
		}
		for _, ip := range ips {
			day.AddIP(ip)
		}
		if err := json.Unmarshal(raw[1], &day.RequestsCount); err != nil {
			return fmt.Errorf("daily %s requests: %w", date, err)
		}
		if err := json.Unmarshal(raw[2], &day.HumanSessionsCount); err != nil {
			return fmt.Errorf("daily %s sessions: %w", date, err)
		}
		out.DailyData[date] = day
	}

	if in.LastEntryTS != "" {
		ts, err := ParseTime(StatsTimeLayout, in.LastEntryTS)
		if err != nil {
			return fmt.Errorf("invalid last entry timestamp: %w", err)
		}
		out.LastEntryTimestamp = ts
	}

	*s = *out
	return nil
}
