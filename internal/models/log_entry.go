package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// LogEntryFields is the number of fields of a well-formed access log line.
const LogEntryFields = 9

const (
	// LogTimeLayout is the bracketed access log timestamp, e.g. 10/Oct/2023:13:55:36 +0000.
	LogTimeLayout = "02/Jan/2006:15:04:05 -0700"
	// DateLayout keys daily rollups.
	DateLayout = "2006-01-02"

	// MinYear is the first year an entry may fall in; year 0 has no cache file name.
	MinYear = 1
)

// LogEntry is one parsed access log line:
//
//	<host> <identd> <user> [<time>] "<request>" <status> <bytes> "<referer>" "<user-agent>"
//
// Length counts the fields actually captured, in order.
type LogEntry struct {
	Host      string
	Identd    string
	User      string
	Time      string
	Request   string
	HTTPCode  string
	Bytes     string
	Referer   string
	UserAgent string

	Length int
}

// SetField stores the i-th captured field (0-based) and bumps Length.
func (e *LogEntry) SetField(i int, value string) {
	switch i {
	case 0:
		e.Host = value
	case 1:
		e.Identd = value
	case 2:
		e.User = value
	case 3:
		e.Time = value
	case 4:
		e.Request = value
	case 5:
		e.HTTPCode = value
	case 6:
		e.Bytes = value
	case 7:
		e.Referer = value
	case 8:
		e.UserAgent = value
	default:
		return
	}
	e.Length = i + 1
}

// Fields returns the captured fields in log order.
func (e *LogEntry) Fields() []string {
	all := []string{e.Host, e.Identd, e.User, e.Time, e.Request, e.HTTPCode, e.Bytes, e.Referer, e.UserAgent}
	return all[:e.Length]
}

// IsWellFormed reports whether every field was captured and the host fits in one
// tab separated cache column.
func (e *LogEntry) IsWellFormed() bool {
	return e.Length == LogEntryFields && e.Host != "" && !strings.ContainsAny(e.Host, "\t\r\n")
}

// Timestamp parses the entry's bracketed time. Years before MinYear are rejected.
func (e *LogEntry) Timestamp() (time.Time, error) {
	ts, err := ParseTime(LogTimeLayout, e.Time)
	if err != nil {
		return time.Time{}, err
	}
	if ts.Year() < MinYear {
		return time.Time{}, fmt.Errorf("year %d out of range", ts.Year())
	}
	return ts, nil
}

// ParseTime parses value and keeps its offset; a zero offset is reported as UTC.
func ParseTime(layout, value string) (time.Time, error) {
	t, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}, err
	}
	if _, offset := t.Zone(); offset == 0 {
		return t.UTC(), nil
	}
	return t, nil
}

func (e *LogEntry) StatusCode() (int, error) {
	return strconv.Atoi(e.HTTPCode)
}

// ByteCount returns the response size; "-" means no body and yields 0.
func (e *LogEntry) ByteCount() (int64, error) {
	if e.Bytes == "-" {
		return 0, nil
	}
	return strconv.ParseInt(e.Bytes, 10, 64)
}

func (e *LogEntry) String() string {
	return "[" + strings.Join(e.Fields(), ", ") + "]"
}
