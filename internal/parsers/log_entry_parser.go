package parsers

import (
	"strings"

	"log-stats/internal/models"
)

type LogEntryParser interface {
	// Parse splits one access log line into its fields. It never fails: a line that
	// yields fewer than models.LogEntryFields fields is returned with a short Length.
	Parse(line string) *models.LogEntry
}

type logEntryParser struct{}

func NewLogEntryParser() LogEntryParser {
	return &logEntryParser{}
}

// Parse walks the line once. Outside quotes a space ends a non-empty field; '"' and '['
// open a field closed by '"' and ']' respectively, which may be empty. A backslash takes
// the next character literally. Text after the last field is ignored, and an unquoted
// field is only captured when a space follows it.
func (p *logEntryParser) Parse(line string) *models.LogEntry {
	line = strings.TrimRight(line, "\r\n")

	entry := &models.LogEntry{}
	var (
		field   strings.Builder
		closing rune
		escaped bool
		i       int
	)

	for _, ch := range line {
		if i >= models.LogEntryFields {
			break
		}

		switch {
		case escaped:
			escaped = false
			field.WriteRune(ch)
		case ch == '\\':
			escaped = true
		case closing != 0 && ch == closing:
			closing = 0
			entry.SetField(i, field.String())
			i++
			field.Reset()
		case closing != 0:
			field.WriteRune(ch)
		case ch == ' ':
			if field.Len() > 0 {
				entry.SetField(i, field.String())
				i++
			}
			field.Reset()
		case ch == '"':
			closing = '"'
		case ch == '[':
			closing = ']'
		default:
			field.WriteRune(ch)
		}
	}

	return entry
}
