/*
Package behavior turns a recorded autosuggest clickthrough log into the signals the
ranking engine consumes: per-user profiles and a crowd suggestion pool.

A log is plain comma-separated text with a header row. Fields that contain a comma are
wrapped in double quotes:

	UserId,PreviousQuery,Prefix,Market,UiLanguage,Region,Time,CVID,EventId,Position,Suggestion,SuggestionClick,PastQueries,WritingStyle
	USER_001,weather today,wea,en-US,en,us,19:05:51,S1,E1,1,weather tomorrow,true,news; weather,"Short, casual"

Every displayed suggestion gets its own row, so one EventId spans several rows and one
session (CVID) spans several events.
*/
package behavior

import (
	"strconv"
	"strings"
)

// Header is the column order of a behavior log.
const Header = "UserId,PreviousQuery,Prefix,Market,UiLanguage,Region,Time,CVID,EventId,Position,Suggestion,SuggestionClick,PastQueries,WritingStyle"

const (
	fieldSep = ','
	quote    = '"'
	numCols  = 14
)

// LogEntry is one logged suggestion impression.
type LogEntry struct {
	UserID        string
	PreviousQuery string
	Prefix        string
	Market        string
	UILanguage    string
	Region        string
	Time          string // HH:MM:SS, same day
	SessionID     string
	EventID       string
	Position      int // 1-based
	Suggestion    string
	Clicked       bool
	PastQueries   string // semicolon joined
	WritingStyle  string
}

// ParseLog parses raw log text. The first line is treated as the header and skipped.
// Missing columns are left empty, a zero or unparseable position becomes 1 and
// the click column is true only for a case-insensitive "true".
func ParseLog(raw string) []LogEntry {
	lines := strings.Split(strings.TrimSpace(raw), "\n")
	if len(lines) < 2 {
		return nil
	}
	entries := make([]LogEntry, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		entries = append(entries, parseRow(splitRow(line)))
	}
	return entries
}

// splitRow tokenizes a single line. A double quote toggles quoting and is dropped;
// separators only split while outside quotes.
func splitRow(line string) []string {
	values := make([]string, 0, numCols)
	var current strings.Builder
	inQuotes := false
	for _, r := range line {
		switch {
		case r == quote:
			inQuotes = !inQuotes
		case r == fieldSep && !inQuotes:
			values = append(values, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	return append(values, strings.TrimSpace(current.String()))
}

func parseRow(values []string) LogEntry {
	col := func(i int) string {
		if i < len(values) {
			return values[i]
		}
		return ""
	}
	return LogEntry{
		UserID:        col(0),
		PreviousQuery: col(1),
		Prefix:        col(2),
		Market:        col(3),
		UILanguage:    col(4),
		Region:        col(5),
		Time:          col(6),
		SessionID:     col(7),
		EventID:       col(8),
		Position:      parsePosition(col(9)),
		Suggestion:    col(10),
		Clicked:       strings.EqualFold(col(11), "true"),
		PastQueries:   col(12),
		WritingStyle:  col(13),
	}
}

func parsePosition(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n == 0 {
		return 1
	}
	return n
}

// FormatLog serializes entries back into log text, header included.
// Values containing the separator are quoted.
func FormatLog(entries []LogEntry) string {
	var b strings.Builder
	b.WriteString(Header)
	for _, e := range entries {
		b.WriteByte('\n')
		fields := [numCols]string{
			e.UserID, e.PreviousQuery, e.Prefix, e.Market, e.UILanguage, e.Region,
			e.Time, e.SessionID, e.EventID, strconv.Itoa(e.Position), e.Suggestion,
			strconv.FormatBool(e.Clicked), e.PastQueries, e.WritingStyle,
		}
		for i, f := range fields {
			if i > 0 {
				b.WriteByte(fieldSep)
			}
			if strings.ContainsRune(f, fieldSep) {
				b.WriteByte(quote)
				b.WriteString(f)
				b.WriteByte(quote)
				continue
			}
			b.WriteString(f)
		}
	}
	return b.String()
}
