package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	Unresolved = "Unresolved"
	Unknown    = "Unknown"
)

// StatsTimeLayout is the last-seen layout of cache lines and snapshots.
const StatsTimeLayout = "2006-01-02T15:04:05-0700"

// DefaultSessionDelimiter is the inactivity gap that starts a new session.
const DefaultSessionDelimiter = time.Minute

// DefaultLastSeen precedes any real log entry so the first entry always opens a session.
var DefaultLastSeen = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// ValidIP records whether a key was checked to be an IPv4 address.
type ValidIP int

const (
	ValidIPUnknown ValidIP = iota
	ValidIPValid
	ValidIPInvalid
)

func (v ValidIP) String() string {
	switch v {
	case ValidIPValid:
		return "True"
	case ValidIPInvalid:
		return "False"
	default:
		return "None"
	}
}

func parseValidIP(s string) (ValidIP, error) {
	switch s {
	case "True":
		return ValidIPValid, nil
	case "False":
		return ValidIPInvalid, nil
	case "None":
		return ValidIPUnknown, nil
	}
	return ValidIPUnknown, fmt.Errorf("invalid valid_ip token %q", s)
}

// Classification is the bot verdict for one entry.
type Classification struct {
	IsBot  bool
	BotURL string
}

// Key returns the grouping key: the bot URL when there is one, the raw host otherwise.
func (c Classification) Key(host string) string {
	if c.IsBot && c.BotURL != "" {
		return c.BotURL
	}
	return host
}

// IpStats accumulates one key's requests and sessions.
// Key is an IPv4 address, a host name awaiting resolution, or a bot URL.
type IpStats struct {
	Key           string
	HostName      string
	Geolocation   string
	BotURL        string
	IsBot         bool
	RequestsCount int
	SessionsCount int
	LastSeen      time.Time
	ValidIP       ValidIP
}

func NewIpStats(key string, class Classification) *IpStats {
	return &IpStats{
		Key:         key,
		HostName:    Unresolved,
		Geolocation: Unresolved,
		BotURL:      class.BotURL,
		IsBot:       class.IsBot,
		LastSeen:    DefaultLastSeen,
	}
}

// AddEntry counts one request seen at ts and reports whether it opened a new session.
// A gap of at least delim from the previous entry, in either direction, opens one.
// Entries of one key must arrive in non-decreasing time order for the count to be meaningful.
func (s *IpStats) AddEntry(ts time.Time, delim time.Duration) bool {
	gap := ts.Sub(s.LastSeen)
	if gap < 0 {
		gap = -gap
	}
	newSession := gap >= delim
	if newSession {
		s.SessionsCount++
	}
	s.RequestsCount++
	s.LastSeen = ts
	return newSession
}

// ShortHostName keeps the last precision labels of the host name.
func (s *IpStats) ShortHostName(precision int) string {
	labels := strings.Split(s.HostName, ".")
	if precision > 0 && len(labels) > precision {
		labels = labels[len(labels)-precision:]
	}
	return strings.Join(labels, ".")
}

// ipStatsLineFields is the column count of a cache line:
// key host_name geolocation bot_url is_bot requests sessions last_seen valid_ip
const ipStatsLineFields = 9

// FormatLine renders the record as one tab separated cache line.
func (s *IpStats) FormatLine() string {
	return strings.Join([]string{
		s.Key,
		s.HostName,
		s.Geolocation,
		s.BotURL,
		formatBool(s.IsBot),
		strconv.Itoa(s.RequestsCount),
		strconv.Itoa(s.SessionsCount),
		s.LastSeen.Format(StatsTimeLayout),
		s.ValidIP.String(),
	}, LineDelimiter)
}

// ParseIpStatsLine is the inverse of FormatLine.
func ParseIpStatsLine(line string) (*IpStats, error) {
	cols := strings.Split(line, LineDelimiter)
	if len(cols) != ipStatsLineFields {
		return nil, fmt.Errorf("expected %d columns, got %d", ipStatsLineFields, len(cols))
	}

	isBot, err := parseBool(cols[4])
	if err != nil {
		return nil, err
	}
	requests, err := strconv.Atoi(cols[5])
	if err != nil {
		return nil, fmt.Errorf("invalid requests count: %w", err)
	}
	sessions, err := strconv.Atoi(cols[6])
	if err != nil {
		return nil, fmt.Errorf("invalid sessions count: %w", err)
	}
	lastSeen, err := ParseTime(StatsTimeLayout, cols[7])
	if err != nil {
		return nil, fmt.Errorf("invalid last seen: %w", err)
	}
	validIP, err := parseValidIP(cols[8])
	if err != nil {
		return nil, err
	}

	return &IpStats{
		Key:           cols[0],
		HostName:      cols[1],
		Geolocation:   cols[2],
		BotURL:        cols[3],
		IsBot:         isBot,
		RequestsCount: requests,
		SessionsCount: sessions,
		LastSeen:      lastSeen,
		ValidIP:       validIP,
	}, nil
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func parseBool(s string) (bool, error) {
	switch s {
	case "True":
		return true, nil
	case "False":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean token %q", s)
}
