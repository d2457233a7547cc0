package behavior

// demoOrder is the order demo users are listed in.
var demoOrder = []string{
	"USER_001_SANDRA",
	"USER_002_JAMES",
	"USER_003_PRIYA",
	"USER_004_MICHAEL",
	"USER_005_EMMA",
}

// DemoProfiles returns the fixed demonstration users, one per CTR category.
// Their values are curated and take precedence over anything derived from a log,
// so a demo CTR and its category are not required to agree. James keeps his four
// topics of interest as curated, although derived profiles carry at most three.
func DemoProfiles() Profiles {
	return Profiles{
		// zero CTR, fastest typist
		"USER_001_SANDRA": {
			UserID: "USER_001_SANDRA", Market: "en-US", UILanguage: "en", Region: "us",
			TotalEvents: 8, ClickedEvents: 0, CTR: 0, CTRCategory: CTRZero,
			AvgTypingSpeedMs: 120, TypingCategory: PowerUser,
			TotalSessions: 1, AvgEventsPerSession: 8, UsageFrequency: UsageLow,
			TopicAffinities:    []string{"technology", "learning"},
			TopicsOfInterest:   []string{"AI", "Product Strategy", "Technology Trends"},
			HistoricalQueries:  []string{"explain"},
			ClickedSuggestions: []string{},
			PastQueries:        "future of technology; ai product roadmap; machine learning basics; copilot features",
			WritingStyle:       "Short, keyword-based, technical",
		},
		"USER_002_JAMES": {
			UserID: "USER_002_JAMES", Market: "en-GB", UILanguage: "en", Region: "gb",
			TotalEvents: 8, ClickedEvents: 1, CTR: 0.05, CTRCategory: CTRLow,
			AvgTypingSpeedMs: 250, TypingCategory: RegularUser,
			TotalSessions: 1, AvgEventsPerSession: 8, UsageFrequency: UsageLow,
			TopicAffinities:    []string{"learning"},
			TopicsOfInterest:   []string{"Local News", "Sports", "Weather", "Food"},
			HistoricalQueries:  []string{"summarize"},
			ClickedSuggestions: []string{"summarize this document"},
			PastQueries:        "weather london; news today; football scores; restaurants near me",
			WritingStyle:       "Short, casual, search-engine style",
		},
		"USER_003_PRIYA": {
			UserID: "USER_003_PRIYA", Market: "en-IN", UILanguage: "en", Region: "in",
			TotalEvents: 8, ClickedEvents: 1, CTR: 0.15, CTRCategory: CTRMedium,
			AvgTypingSpeedMs: 550, TypingCategory: ModerateUser,
			TotalSessions: 1, AvgEventsPerSession: 8, UsageFrequency: UsageLow,
			TopicAffinities:    []string{"creative"},
			TopicsOfInterest:   []string{"Data Science", "Machine Learning", "Programming"},
			HistoricalQueries:  []string{"write"},
			ClickedSuggestions: []string{"write a poem about nature"},
			PastQueries:        "data science course; python pandas tutorial; ml interview questions; sql joins",
			WritingStyle:       "Balanced, semi-formal, descriptive",
		},
		"USER_004_MICHAEL": {
			UserID: "USER_004_MICHAEL", Market: "en-CA", UILanguage: "en", Region: "ca",
			TotalEvents: 12, ClickedEvents: 3, CTR: 0.25, CTRCategory: CTRHigh,
			AvgTypingSpeedMs: 1500, TypingCategory: OccasionalUser,
			TotalSessions: 3, AvgEventsPerSession: 4, UsageFrequency: UsageMedium,
			TopicAffinities:    []string{"technology", "career", "food"},
			TopicsOfInterest:   []string{"Finance", "Investing", "Banking"},
			HistoricalQueries:  []string{"how", "help", "best"},
			ClickedSuggestions: []string{"how to learn python", "help me write a cover letter", "best restaurants near me"},
			PastQueries:        "mortgage calculator; credit score check; investment portfolio; retirement planning",
			WritingStyle:       "Conversational, question-based",
		},
		// slowest typist, clicks the most
		"USER_005_EMMA": {
			UserID: "USER_005_EMMA", Market: "en-AU", UILanguage: "en", Region: "au",
			TotalEvents: 16, ClickedEvents: 4, CTR: 0.35, CTRCategory: CTRVeryHigh,
			AvgTypingSpeedMs: 3000, TypingCategory: NewUser,
			TotalSessions: 4, AvgEventsPerSession: 4, UsageFrequency: UsageMedium,
			TopicAffinities:    []string{"creative", "travel", "learning", "food"},
			TopicsOfInterest:   []string{"Product Management", "Agile", "User Research"},
			HistoricalQueries:  []string{"create", "plan", "tell", "show"},
			ClickedSuggestions: []string{"create an image of a sunset", "plan a trip to japan", "tell me about climate change", "show me how to bake a cake"},
			PastQueries:        "project management tools; agile sprint planning; user research methods; design thinking",
			WritingStyle:       "Natural language, task-oriented, detailed",
		},
	}
}
