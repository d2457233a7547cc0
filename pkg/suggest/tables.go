package suggest

// DefaultSynthetic returns the curated completion table for common query openers.
func DefaultSynthetic() *Table { return NewTable(syntheticEntries) }

// DefaultBase returns the fallback table of full example questions per opener word.
func DefaultBase() *Table { return NewTable(baseEntries) }

var syntheticEntries = []TableEntry{
	// "how to"
	{Prefix: "how to", Completions: []string{
		"how to learn python programming",
		"how to write a cover letter",
		"how to cook pasta perfectly",
		"how to start a business",
		"how to improve productivity",
	}},
	{Prefix: "how to b", Completions: []string{
		"how to bake a chocolate cake",
		"how to build a website from scratch",
		"how to become a data scientist",
		"how to budget your money",
		"how to backup your phone",
	}},
	{Prefix: "how to be", Completions: []string{
		"how to become a software developer",
		"how to become more productive",
		"how to beat procrastination",
		"how to be more confident",
		"how to become a data scientist",
	}},
	{Prefix: "how to bec", Completions: []string{
		"how to become a software engineer",
		"how to become a data scientist",
		"how to become more productive",
		"how to become a better writer",
		"how to become a freelancer",
	}},
	{Prefix: "how to beco", Completions: []string{
		"how to become a software engineer",
		"how to become a data scientist",
		"how to become a full stack developer",
		"how to become a machine learning engineer",
		"how to become a project manager",
	}},
	{Prefix: "how to becom", Completions: []string{
		"how to become a software engineer",
		"how to become a data scientist",
		"how to become a full stack developer",
		"how to become a machine learning engineer",
		"how to become a better programmer",
	}},
	{Prefix: "how to become", Completions: []string{
		"how to become a software engineer",
		"how to become a data scientist",
		"how to become a full stack developer",
		"how to become a better writer",
		"how to become a freelancer",
	}},
	{Prefix: "how to become a", Completions: []string{
		"how to become a software engineer",
		"how to become a data scientist",
		"how to become a full stack developer",
		"how to become a machine learning engineer",
		"how to become a better programmer",
	}},
	{Prefix: "how to become a b", Completions: []string{
		"how to become a better programmer",
		"how to become a better writer",
		"how to become a backend developer",
		"how to become a business analyst",
		"how to become a blockchain developer",
	}},
	{Prefix: "how to become a bi", Completions: []string{
		"how to become a big data engineer",
		"how to become a big tech developer",
		"how to become a BI analyst",
		"how to become a big picture thinker",
	}},
	{Prefix: "how to become a big", Completions: []string{
		"how to become a big data engineer",
		"how to become a big tech developer",
		"how to become a big data analyst",
		"how to become a big thinker",
	}},
	// what is
	{Prefix: "what is", Completions: []string{
		"what is machine learning",
		"what is the difference between AI and ML",
		"what is Python used for",
		"what is cloud computing",
		"what is the best programming language",
	}},
	{Prefix: "what is t", Completions: []string{
		"what is the best laptop for programming",
		"what is TypeScript",
		"what is the difference between Java and JavaScript",
		"what is TensorFlow",
		"what is the cloud",
	}},
	{Prefix: "what is th", Completions: []string{
		"what is the best way to learn coding",
		"what is the difference between React and Angular",
		"what is the cloud",
		"what is the metaverse",
		"what is the best IDE for Python",
	}},
	// best
	{Prefix: "best", Completions: []string{
		"best programming language to learn in 2024",
		"best laptop for developers",
		"best way to learn coding",
		"best practices for software development",
		"best online courses for programming",
	}},
	{Prefix: "best p", Completions: []string{
		"best programming language for beginners",
		"best Python IDE",
		"best practices for API design",
		"best podcasts for developers",
		"best programming books",
	}},
	// learn
	{Prefix: "learn", Completions: []string{
		"learn Python for beginners",
		"learn JavaScript in 30 days",
		"learn machine learning",
		"learn web development",
		"learn data science",
	}},
	{Prefix: "learn p", Completions: []string{
		"learn Python from scratch",
		"learn Python for data science",
		"learn programming basics",
		"learn Python with projects",
		"learn Python automation",
	}},
	// explain
	{Prefix: "explain", Completions: []string{
		"explain machine learning to me",
		"explain the difference between API and SDK",
		"explain cloud computing",
		"explain how neural networks work",
		"explain Docker containers",
	}},
	// write
	{Prefix: "write", Completions: []string{
		"write a Python script to download files",
		"write a cover letter for software engineer",
		"write a poem about technology",
		"write a SQL query to find duplicates",
		"write a resume summary",
	}},
	{Prefix: "write a", Completions: []string{
		"write a Python script for web scraping",
		"write a cover letter for me",
		"write a business email",
		"write a thank you note",
		"write a function to sort an array",
	}},
	// help
	{Prefix: "help", Completions: []string{
		"help me write code in Python",
		"help me understand machine learning",
		"help me debug this code",
		"help me learn JavaScript",
		"help me with my resume",
	}},
	{Prefix: "help me", Completions: []string{
		"help me learn Python programming",
		"help me write a cover letter",
		"help me understand recursion",
		"help me with my homework",
		"help me plan a trip to Japan",
	}},
	// travel
	{Prefix: "plan", Completions: []string{
		"plan a trip to Japan",
		"plan a vacation on a budget",
		"plan a road trip across Europe",
		"plan a surprise birthday party",
		"plan healthy meals for the week",
	}},
	{Prefix: "plan a", Completions: []string{
		"plan a trip to Tokyo",
		"plan a weekend getaway",
		"plan a wedding on a budget",
		"plan a career change",
		"plan a successful project",
	}},
	// recipes
	{Prefix: "recipe", Completions: []string{
		"recipe for chocolate chip cookies",
		"recipe for pasta carbonara",
		"recipe for healthy smoothies",
		"recipe for banana bread",
		"recipe for homemade pizza",
	}},
	{Prefix: "recipe for", Completions: []string{
		"recipe for chocolate cake",
		"recipe for chicken tikka masala",
		"recipe for vegetarian lasagna",
		"recipe for french toast",
		"recipe for beef stew",
	}},
	// python
	{Prefix: "python", Completions: []string{
		"Python tutorial for beginners",
		"Python list comprehension examples",
		"Python pandas dataframe tutorial",
		"Python web scraping guide",
		"Python API development",
	}},
	{Prefix: "python h", Completions: []string{
		"Python how to read a file",
		"Python how to install packages",
		"Python how to use classes",
		"Python how to handle exceptions",
		"Python how to create a function",
	}},
	// code
	{Prefix: "code", Completions: []string{
		"code to reverse a string in Python",
		"code editor for beginners",
		"code review best practices",
		"code to sort an array",
		"code examples for machine learning",
	}},
	// fallbacks
	{Prefix: "the", Completions: []string{
		"the best programming language in 2024",
		"the difference between Java and JavaScript",
		"the future of artificial intelligence",
		"the basics of machine learning",
		"the most popular frameworks",
	}},
	{Prefix: "can", Completions: []string{
		"can you help me write code",
		"can you explain machine learning",
		"can you create an image of",
		"can you summarize this article",
		"can AI replace programmers",
	}},
	{Prefix: "can you", Completions: []string{
		"can you help me with Python",
		"can you explain this code",
		"can you write a cover letter",
		"can you create a website",
		"can you generate an image",
	}},
	// who is
	{Prefix: "who", Completions: []string{
		"who is the CEO of Microsoft",
		"who invented the internet",
		"who is the best programmer",
		"who created Python",
		"who founded OpenAI",
	}},
	{Prefix: "who is", Completions: []string{
		"who is the CEO of Google",
		"who is Elon Musk",
		"who is the best software developer",
		"who is the richest person in the world",
		"who is the creator of JavaScript",
	}},
	{Prefix: "who is the", Completions: []string{
		"who is the CEO of Apple",
		"who is the best programmer in the world",
		"who is the founder of Amazon",
		"who is the creator of Linux",
		"who is the richest tech billionaire",
	}},
	{Prefix: "who is the best", Completions: []string{
		"who is the best programmer in the world",
		"who is the best software engineer",
		"who is the best AI researcher",
		"who is the best tech CEO",
		"who is the best data scientist",
	}},
	// where
	{Prefix: "where", Completions: []string{
		"where to learn programming",
		"where is Silicon Valley",
		"where to find coding tutorials",
		"where to host a website",
		"where to learn machine learning",
	}},
	{Prefix: "where to", Completions: []string{
		"where to learn Python for free",
		"where to find coding jobs",
		"where to host a web app",
		"where to learn data science",
		"where to buy a domain name",
	}},
	// why
	{Prefix: "why", Completions: []string{
		"why learn programming",
		"why is Python popular",
		"why use TypeScript",
		"why is AI important",
		"why learn machine learning",
	}},
	{Prefix: "why is", Completions: []string{
		"why is Python so popular",
		"why is JavaScript everywhere",
		"why is AI the future",
		"why is coding important",
		"why is React better than Angular",
	}},
	// when
	{Prefix: "when", Completions: []string{
		"when was Python created",
		"when to use machine learning",
		"when will AI surpass humans",
		"when to learn a new programming language",
		"when was the first computer invented",
	}},
	// should
	{Prefix: "should", Completions: []string{
		"should I learn Python or JavaScript",
		"should I use React or Vue",
		"should I learn machine learning",
		"should I become a software engineer",
		"should I use TypeScript",
	}},
	{Prefix: "should i", Completions: []string{
		"should I learn Python first",
		"should I use a framework",
		"should I learn cloud computing",
		"should I become a data scientist",
		"should I learn multiple languages",
	}},
	// tell me
	{Prefix: "tell", Completions: []string{
		"tell me about Python",
		"tell me a joke",
		"tell me about machine learning",
		"tell me about AI",
		"tell me about web development",
	}},
	{Prefix: "tell me", Completions: []string{
		"tell me about artificial intelligence",
		"tell me how to code",
		"tell me about cloud computing",
		"tell me about data science",
		"tell me about JavaScript",
	}},
	{Prefix: "tell me about", Completions: []string{
		"tell me about Python programming",
		"tell me about machine learning algorithms",
		"tell me about the history of computers",
		"tell me about software engineering",
		"tell me about web development trends",
	}},
	// show me
	{Prefix: "show", Completions: []string{
		"show me how to code",
		"show me Python examples",
		"show me a tutorial",
		"show me how to build a website",
		"show me machine learning projects",
	}},
	{Prefix: "show me", Completions: []string{
		"show me how to learn Python",
		"show me coding tutorials",
		"show me web development examples",
		"show me AI projects",
		"show me how to use Git",
	}},
	// i want
	{Prefix: "i want", Completions: []string{
		"I want to learn programming",
		"I want to build a website",
		"I want to become a developer",
		"I want to learn Python",
		"I want to create an app",
	}},
	{Prefix: "i want to", Completions: []string{
		"I want to learn Python from scratch",
		"I want to become a software engineer",
		"I want to build a mobile app",
		"I want to learn machine learning",
		"I want to start a tech company",
	}},
	// i need
	{Prefix: "i need", Completions: []string{
		"I need help with coding",
		"I need to learn Python",
		"I need a website",
		"I need help with my project",
		"I need to understand algorithms",
	}},
	// single words
	{Prefix: "create", Completions: []string{
		"create a website for me",
		"create a Python script",
		"create a mobile app",
		"create a logo",
		"create a business plan",
	}},
	{Prefix: "generate", Completions: []string{
		"generate a random password",
		"generate Python code",
		"generate an image of",
		"generate a report",
		"generate API documentation",
	}},
	{Prefix: "make", Completions: []string{
		"make a website",
		"make a Python script",
		"make an app",
		"make a game",
		"make a chatbot",
	}},
	{Prefix: "build", Completions: []string{
		"build a website from scratch",
		"build a mobile app",
		"build a REST API",
		"build a machine learning model",
		"build a chatbot",
	}},
	{Prefix: "find", Completions: []string{
		"find the best programming language",
		"find coding tutorials",
		"find a job in tech",
		"find Python resources",
		"find machine learning courses",
	}},
	{Prefix: "compare", Completions: []string{
		"compare Python and JavaScript",
		"compare React and Vue",
		"compare AWS and Azure",
		"compare different programming languages",
		"compare machine learning frameworks",
	}},
}

var baseEntries = []TableEntry{
	{Prefix: "how", Completions: []string{
		"How do I center a div in CSS?",
		"How does machine learning work?",
		"How to make a good first impression?",
		"How can I improve my memory?",
		"How to start investing in stocks?",
	}},
	{Prefix: "what", Completions: []string{
		"What is the difference between React and Vue?",
		"What are the best practices for REST APIs?",
		"What should I learn after JavaScript?",
		"What causes climate change?",
		"What is quantum entanglement?",
	}},
	{Prefix: "why", Completions: []string{
		"Why is the sky blue?",
		"Why do we dream?",
		"Why is TypeScript better than JavaScript?",
		"Why do cats purr?",
		"Why is sleep important for productivity?",
	}},
	{Prefix: "can", Completions: []string{
		"Can you explain recursion with an example?",
		"Can you write a Python script to sort files?",
		"Can AI become sentient?",
		"Can you help me prepare for a job interview?",
		"Can you create a meal plan for weight loss?",
	}},
	{Prefix: "help", Completions: []string{
		"Help me write a professional email",
		"Help me understand async/await in JavaScript",
		"Help me create a workout routine",
		"Help me plan a birthday party",
		"Help me debug this code",
	}},
	{Prefix: "write", Completions: []string{
		"Write a haiku about programming",
		"Write a cover letter for a software engineer position",
		"Write a short story about time travel",
		"Write a LinkedIn post about my new project",
		"Write unit tests for this function",
	}},
	{Prefix: "create", Completions: []string{
		"Create a regex for email validation",
		"Create a weekly meal plan",
		"Create a study schedule for learning Python",
		"Create a marketing tagline for my app",
		"Create a character for my story",
	}},
	{Prefix: "explain", Completions: []string{
		"Explain blockchain in simple terms",
		"Explain the difference between HTTP and HTTPS",
		"Explain how neural networks learn",
		"Explain the theory of relativity",
		"Explain CSS flexbox vs grid",
	}},
	{Prefix: "give", Completions: []string{
		"Give me 5 project ideas for my portfolio",
		"Give me tips for public speaking",
		"Give me a motivational quote",
		"Give me feedback on my resume",
		"Give me book recommendations for entrepreneurs",
	}},
	{Prefix: "tell", Completions: []string{
		"Tell me a joke about programming",
		"Tell me about the history of the internet",
		"Tell me an interesting fact about the ocean",
		"Tell me about emerging tech trends in 2026",
		"Tell me a bedtime story",
	}},
	{Prefix: "make", Completions: []string{
		"Make a list of healthy snacks",
		"Make a comparison between Python and JavaScript",
		"Make a checklist for launching a website",
		"Make suggestions for my vacation in Japan",
		"Make a budget template for me",
	}},
	{Prefix: "show", Completions: []string{
		"Show me how to use Git branches",
		"Show me examples of good UI design",
		"Show me how to meditate properly",
		"Show me the steps to deploy on Vercel",
		"Show me how to solve this math problem",
	}},
	{Prefix: "code", Completions: []string{
		"Code a simple todo app in React",
		"Code a function to reverse a string",
		"Code a REST API endpoint in Node.js",
		"Code a binary search algorithm",
		"Code a responsive navbar in CSS",
	}},
	{Prefix: "design", Completions: []string{
		"Design a database schema for a blog",
		"Design a logo concept for a coffee shop",
		"Design an API for a social media app",
		"Design a landing page layout",
		"Design a mobile app user flow",
	}},
	{Prefix: "plan", Completions: []string{
		"Plan a 7-day trip to Paris",
		"Plan my week for maximum productivity",
		"Plan a healthy diet for muscle gain",
		"Plan a product launch strategy",
		"Plan a learning roadmap for web development",
	}},
}
