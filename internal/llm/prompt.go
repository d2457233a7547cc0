package llm

import (
	"fmt"
	"strings"

	"github.com/bastiangx/adaptserve/pkg/policy"
)

// Request is the input of one completion request.
type Request struct {
	Prefix         string
	MaxSuggestions int
	Style          policy.Style
	WritingStyle   string
	// PastQueries is the profile's semicolon separated query history.
	PastQueries string
}

const maxPromptTopics = 4

var lengthRules = map[policy.Style]string{
	policy.StyleKeyword: `LENGTH: Very short (2-4 words total). Examples for "when is the":
- when is the superbowl
- when is the election
- when is the deadline`,
	policy.StyleNatural: `LENGTH: Medium length (4-6 words total). Examples for "when is the":
- when is the next full moon
- when is the best time to buy
- when is the deadline for taxes`,
	policy.StyleConversational: `LENGTH: Detailed (6+ words total). Examples for "when is the":
- when is the best time to visit japan for cherry blossoms
- when is the right time to start investing in stocks
- when is the deadline for submitting my tax return this year`,
}

var toneRules = []struct {
	keywords []string
	tone     string
}{
	{[]string{"keyword", "technical"},
		`TONE: Technical and precise. Use industry terms. Examples: "python syntax error fix", "API authentication methods", "machine learning model training"`},
	{[]string{"casual", "search-engine"},
		`TONE: Casual and simple. Like everyday web searches. Examples: "weather tomorrow", "best restaurants nearby", "cheap flights to london"`},
	{[]string{"semi-formal", "descriptive"},
		`TONE: Semi-formal and descriptive. Professional but clear. Examples: "comprehensive guide to investing", "step by step python tutorial", "best practices for interviews"`},
	{[]string{"conversational", "question"},
		`TONE: Conversational and question-like. Natural spoken language. Examples: "how do I improve my credit score", "what are the best ways to save", "should I invest in stocks"`},
	{[]string{"natural language", "task-oriented", "detailed"},
		`TONE: Task-oriented and detailed. Like asking an assistant for help. Examples: "help me plan a trip to europe next summer", "show me how to create a budget spreadsheet", "explain the difference between stocks and bonds"`},
}

// lengthRule falls back to the natural rule for styles without their own.
func lengthRule(style policy.Style) string {
	if rule, ok := lengthRules[style]; ok {
		return rule
	}
	return lengthRules[policy.StyleNatural]
}

// toneRule picks the phrasing instruction for a free-text writing style.
func toneRule(writingStyle string) string {
	if writingStyle == "" {
		return ""
	}
	lower := strings.ToLower(writingStyle)
	for _, r := range toneRules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.tone
			}
		}
	}
	return "TONE: Natural and helpful"
}

// topicsLine lists up to four past queries as topics of interest.
func topicsLine(pastQueries string) string {
	var topics []string
	for _, q := range strings.Split(pastQueries, ";") {
		if q = strings.TrimSpace(q); q != "" {
			topics = append(topics, q)
		}
		if len(topics) == maxPromptTopics {
			break
		}
	}
	if len(topics) == 0 {
		return ""
	}
	return fmt.Sprintf("TOPICS OF INTEREST: %s. Consider these when relevant.", strings.Join(topics, ", "))
}

// BuildMessages renders the system and user messages for req.
func BuildMessages(req Request) []Message {
	n := req.MaxSuggestions
	system := fmt.Sprintf(`You are a search autocomplete engine. Complete the user's query with %d popular, realistic suggestions.

INPUT: %q

%s

%s

%s

RULES:
1. Every suggestion MUST start exactly with %q - copy it exactly, including any trailing spaces
2. Complete with real, commonly searched queries
3. Make each suggestion unique and useful
4. Output ONLY the %d complete suggestions, one per line
5. No numbers, bullets, or explanations

OUTPUT %d SUGGESTIONS:`,
		n, req.Prefix, lengthRule(req.Style), toneRule(req.WritingStyle), topicsLine(req.PastQueries), req.Prefix, n, n)

	return []Message{
		{Role: "system", Content: system},
		{Role: "user", Content: fmt.Sprintf("Complete: %q", req.Prefix)},
	}
}
