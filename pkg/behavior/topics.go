package behavior

import "strings"

type keywordBucket struct {
	name     string
	keywords []string
}

// interestTopics are matched against a user's writing style and past queries.
var interestTopics = []keywordBucket{
	{"AI", []string{"ai", "artificial intelligence", "copilot", "machine learning", "ml"}},
	{"Product Strategy", []string{"product", "strategy", "roadmap", "planning"}},
	{"Technology Trends", []string{"technology", "tech", "future", "trends"}},
	{"Local News", []string{"news", "local", "today"}},
	{"Sports", []string{"sports", "football", "scores", "game"}},
	{"Weather", []string{"weather"}},
	{"Food", []string{"food", "restaurants", "recipe", "cook"}},
	{"Data Science", []string{"data science", "data", "analytics"}},
	{"Machine Learning", []string{"machine learning", "ml", "neural"}},
	{"Programming", []string{"programming", "python", "code", "sql", "javascript"}},
	{"Finance", []string{"finance", "mortgage", "investment", "portfolio"}},
	{"Investing", []string{"investing", "invest", "stocks", "portfolio"}},
	{"Banking", []string{"banking", "credit", "bank"}},
	{"Product Management", []string{"product management", "project management"}},
	{"Agile", []string{"agile", "sprint", "scrum"}},
	{"User Research", []string{"user research", "design thinking", "ux"}},
}

// affinityBuckets are matched against clicked suggestion text.
var affinityBuckets = []keywordBucket{
	{"technology", []string{"python", "javascript", "code", "programming", "api", "software", "computer", "algorithm"}},
	{"learning", []string{"learn", "explain", "teach", "understand", "how to", "tutorial", "guide"}},
	{"travel", []string{"trip", "travel", "visit", "japan", "paris", "vacation", "destination"}},
	{"food", []string{"recipe", "cook", "bake", "food", "meal", "restaurant", "cake"}},
	{"business", []string{"startup", "business", "marketing", "sales", "invest", "finance"}},
	{"creative", []string{"write", "poem", "story", "image", "create", "design", "art"}},
	{"health", []string{"health", "workout", "exercise", "sleep", "diet", "fitness"}},
	{"career", []string{"job", "cover letter", "resume", "interview", "career", "professional"}},
}

const maxTopics = 3

func (b keywordBucket) matches(lowerText string) bool {
	for _, kw := range b.keywords {
		if strings.Contains(lowerText, kw) {
			return true
		}
	}
	return false
}

// TopicKeywords returns the keywords that signal interest in a named topic.
// Unknown topics match on their own lowercased name.
func TopicKeywords(topic string) []string {
	for _, b := range interestTopics {
		if b.name == topic {
			return b.keywords
		}
	}
	return []string{strings.ToLower(topic)}
}

// extractTopicsOfInterest returns up to three topics, in table order,
// that any keyword of appears in the style or past queries.
func extractTopicsOfInterest(writingStyle, pastQueries string) []string {
	combined := strings.ToLower(writingStyle + " " + pastQueries)
	topics := make([]string, 0, maxTopics)
	for _, b := range interestTopics {
		if len(topics) == maxTopics {
			break
		}
		if b.matches(combined) {
			topics = append(topics, b.name)
		}
	}
	return topics
}

// extractAffinities ranks buckets by how many texts hit them. Ties keep table order.
func extractAffinities(texts []string) []string {
	counts := make([]int, len(affinityBuckets))
	for _, text := range texts {
		lower := strings.ToLower(text)
		for i, b := range affinityBuckets {
			if b.matches(lower) {
				counts[i]++
			}
		}
	}

	topics := make([]string, 0, maxTopics)
	taken := make([]bool, len(affinityBuckets))
	for len(topics) < maxTopics {
		best := -1
		for i, c := range counts {
			if c == 0 || taken[i] {
				continue
			}
			if best < 0 || c > counts[best] {
				best = i
			}
		}
		if best < 0 {
			break
		}
		taken[best] = true
		topics = append(topics, affinityBuckets[best].name)
	}
	return topics
}
