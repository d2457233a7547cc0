package behavior

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
)

//go:embed data/sample_log.csv
var sampleLog string

// Stats summarizes a loaded log.
type Stats struct {
	TotalEntries     int
	TotalUsers       int
	TotalSessions    int
	TotalSuggestions int
}

// Dataset is everything derived from one log. It is rebuilt as a whole on reload.
type Dataset struct {
	Entries  []LogEntry
	Profiles Profiles
	Pool     Pool
	Stats    Stats
	Source   string
}

// NewDataset parses raw log text and derives profiles and the crowd pool from it.
func NewDataset(raw, source string) *Dataset {
	return fromEntries(ParseLog(raw), source)
}

func fromEntries(entries []LogEntry, source string) *Dataset {
	ds := &Dataset{
		Entries:  entries,
		Profiles: BuildUserProfiles(entries),
		Pool:     BuildSuggestionPool(entries),
		Stats:    computeStats(entries),
		Source:   source,
	}
	log.Debugf("Dataset %s: %d entries, %d users, %d profiles, %d pooled prefixes",
		source, ds.Stats.TotalEntries, ds.Stats.TotalUsers, len(ds.Profiles), len(ds.Pool))
	return ds
}

// LoadDataset reads a log file. An empty path loads the bundled sample log.
func LoadDataset(path string) (*Dataset, error) {
	if path == "" {
		return NewDataset(sampleLog, "embedded"), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading behavior log %s: %w", path, err)
	}
	entries := ParseLog(string(data))
	if len(entries) == 0 {
		return nil, fmt.Errorf("behavior log %s has no data rows", path)
	}
	return fromEntries(entries, path), nil
}

func computeStats(entries []LogEntry) Stats {
	users := make(map[string]bool)
	sessions := make(map[string]bool)
	suggestions := make(map[string]bool)
	for _, e := range entries {
		users[e.UserID] = true
		sessions[e.SessionID] = true
		suggestions[e.Suggestion] = true
	}
	return Stats{
		TotalEntries:     len(entries),
		TotalUsers:       len(users),
		TotalSessions:    len(sessions),
		TotalSuggestions: len(suggestions),
	}
}
