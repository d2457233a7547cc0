package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bastiangx/adaptserve/pkg/behavior"
	"github.com/bastiangx/adaptserve/pkg/policy"
	"github.com/bastiangx/adaptserve/pkg/suggest"
)

var (
	titleStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F5A97F"))
	promptStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8AADF4"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	mutedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E738D"))
)

func renderSuggestions(w io.Writer, label string, suggestions []suggest.Suggestion) {
	if label != "" {
		fmt.Fprintf(w, "%s %d suggestions\n", promptStyle.Render("["+label+"]"), len(suggestions))
	}
	for _, s := range suggestions {
		text := suggestionStyle.Render(fmt.Sprintf("%-40s", s.Text))
		fmt.Fprintf(w, "%2d. %s %s\n", s.Position, text, mutedStyle.Render(fmt.Sprintf("(%s, %.1f)", s.Source, s.Score)))
	}
}

func renderUsers(w io.Writer, profiles behavior.Profiles) {
	for _, id := range profiles.IDs() {
		info := policy.Describe(profiles[id])
		fmt.Fprintf(w, "%-18s %-22s %-22s %s\n", id, info.CTRLabel, info.SpeedLabel, info.TriggerDetails)
	}
}

func renderConfig(w io.Writer, userID string, cfg policy.Config) {
	fmt.Fprintln(w, titleStyle.Render("config for "+displayUser(userID)))
	rows := [][2]string{
		{"trigger", cfg.TriggerMode.String()},
		{"every n chars", fmt.Sprint(cfg.TriggerEveryNChars)},
		{"pause ms", fmt.Sprint(cfg.PauseThresholdMs)},
		{"min prefix", fmt.Sprint(cfg.MinPrefixLength)},
		{"max suggestions", fmt.Sprint(cfg.MaxSuggestions)},
		{"style", cfg.Style.String()},
		{"topics", strings.Join(cfg.TopicsOfInterest, ", ")},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "  %-16s %s\n", r[0], r[1])
	}
}

func renderHelp(w io.Writer) {
	fmt.Fprint(w, `commands:
  :user <id>   switch user (no id prints the current one)
  :users       list known profiles
  :config      show the derived config
  :on / :off   toggle autosuggest for the session
  :quit        exit
`)
}
