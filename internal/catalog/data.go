package catalog

var Companies = []Company{
	{
		ID: "nubank", Name: "Nubank", Industry: "fintech", City: "São Paulo", Size: "enterprise",
		Culture:  []string{"customer obsession", "ownership", "fast iteration"},
		Benefits: []string{"health insurance", "stock options", "remote work", "education budget"},
		Profile:  Profile{Innovation: 5, Stability: 3, Autonomy: 4, Collaboration: 4, Growth: 5, Balance: 3},
	},
	{
		ID: "itau", Name: "Itaú", Industry: "banking", City: "São Paulo", Size: "enterprise",
		Culture:  []string{"governance", "long-term careers", "process"},
		Benefits: []string{"health insurance", "profit sharing", "pension plan", "meal allowance"},
		Profile:  Profile{Innovation: 3, Stability: 5, Autonomy: 2, Collaboration: 4, Growth: 3, Balance: 4},
	},
	{
		ID: "ifood", Name: "iFood", Industry: "marketplace", City: "Osasco", Size: "enterprise",
		Culture:  []string{"data driven", "bold bets", "speed"},
		Benefits: []string{"meal allowance", "health insurance", "flexible hours", "gym pass"},
		Profile:  Profile{Innovation: 5, Stability: 3, Autonomy: 4, Collaboration: 3, Growth: 4, Balance: 3},
	},
	{
		ID: "totvs", Name: "TOTVS", Industry: "software", City: "São Paulo", Size: "enterprise",
		Culture:  []string{"client focus", "continuous learning"},
		Benefits: []string{"health insurance", "profit sharing", "education budget", "hybrid work"},
		Profile:  Profile{Innovation: 3, Stability: 4, Autonomy: 3, Collaboration: 4, Growth: 3, Balance: 4},
	},
	{
		ID: "stone", Name: "Stone", Industry: "fintech", City: "Rio de Janeiro", Size: "large",
		Culture:  []string{"owner mindset", "customer service", "hands on"},
		Benefits: []string{"stock options", "health insurance", "meal allowance", "remote work"},
		Profile:  Profile{Innovation: 4, Stability: 3, Autonomy: 5, Collaboration: 3, Growth: 5, Balance: 2},
	},
	{
		ID: "natura", Name: "Natura", Industry: "consumer goods", City: "Cajamar", Size: "enterprise",
		Culture:  []string{"sustainability", "relationships", "diversity"},
		Benefits: []string{"health insurance", "parental leave", "flexible hours", "profit sharing"},
		Profile:  Profile{Innovation: 3, Stability: 4, Autonomy: 3, Collaboration: 5, Growth: 3, Balance: 5},
	},
	{
		ID: "cit", Name: "CI&T", Industry: "software", City: "Campinas", Size: "large",
		Culture:  []string{"lean", "agility", "learning"},
		Benefits: []string{"remote work", "education budget", "health insurance", "gym pass"},
		Profile:  Profile{Innovation: 4, Stability: 3, Autonomy: 4, Collaboration: 5, Growth: 4, Balance: 4},
	},
	{
		ID: "vtex", Name: "VTEX", Industry: "software", City: "Rio de Janeiro", Size: "large",
		Culture:  []string{"global mindset", "trust", "experimentation"},
		Benefits: []string{"remote work", "stock options", "health insurance", "home office allowance"},
		Profile:  Profile{Innovation: 5, Stability: 2, Autonomy: 5, Collaboration: 3, Growth: 4, Balance: 3},
	},
}

var Candidates = []Candidate{
	{
		ID: "c-ana", Name: "Ana Souza", Title: "Frontend Developer", Level: "senior", City: "São Paulo",
		HardSkills: []string{"React", "TypeScript", "Node.js", "GraphQL"}, SoftSkills: []string{"communication", "mentoring"},
		ExpectedSalary: 16000, MockScore: 92,
	},
	{
		ID: "c-bruno", Name: "Bruno Lima", Title: "Backend Developer", Level: "mid", City: "Campinas",
		HardSkills: []string{"Go", "PostgreSQL", "AWS", "Docker"}, SoftSkills: []string{"ownership", "problem solving"},
		ExpectedSalary: 11000, MockScore: 87,
	},
	{
		ID: "c-carla", Name: "Carla Mendes", Title: "Data Analyst", Level: "mid", City: "Rio de Janeiro",
		HardSkills: []string{"SQL", "Python", "Power BI"}, SoftSkills: []string{"storytelling", "curiosity"},
		ExpectedSalary: 9000, MockScore: 81,
	},
	{
		ID: "c-diego", Name: "Diego Rocha", Title: "Fullstack Developer", Level: "junior", City: "Belo Horizonte",
		HardSkills: []string{"React", "Node.js", "MongoDB"}, SoftSkills: []string{"teamwork", "learning"},
		ExpectedSalary: 5500, MockScore: 76,
	},
	{
		ID: "c-elisa", Name: "Elisa Martins", Title: "Product Designer", Level: "senior", City: "São Paulo",
		HardSkills: []string{"Figma", "User Research", "Design Systems"}, SoftSkills: []string{"empathy", "facilitation"},
		ExpectedSalary: 14000, MockScore: 84,
	},
	{
		ID: "c-felipe", Name: "Felipe Araújo", Title: "DevOps Engineer", Level: "senior", City: "Curitiba",
		HardSkills: []string{"Kubernetes", "Terraform", "AWS", "Go"}, SoftSkills: []string{"calm under pressure", "documentation"},
		ExpectedSalary: 17000, MockScore: 89,
	},
}

var Opportunities = []Opportunity{
	{
		ID: "op-1", CompanyID: "nubank", Title: "Senior Frontend Engineer", Level: "senior", City: "São Paulo",
		WorkMode: Remote, SalaryMin: 15000, SalaryMax: 20000,
		HardSkills: []string{"React", "TypeScript", "Node.js", "AWS"},
		Benefits:   []string{"health insurance", "stock options", "remote work"}, MockMatch: 94,
	},
	{
		ID: "op-2", CompanyID: "itau", Title: "Software Engineer", Level: "mid", City: "São Paulo",
		WorkMode: Hybrid, SalaryMin: 9000, SalaryMax: 12000,
		HardSkills: []string{"Java", "Spring", "SQL"},
		Benefits:   []string{"health insurance", "profit sharing", "pension plan"}, MockMatch: 78,
	},
	{
		ID: "op-3", CompanyID: "ifood", Title: "Backend Engineer", Level: "mid", City: "Osasco",
		WorkMode: Hybrid, SalaryMin: 10000, SalaryMax: 14000,
		HardSkills: []string{"Go", "Kotlin", "AWS", "PostgreSQL"},
		Benefits:   []string{"meal allowance", "health insurance", "gym pass"}, MockMatch: 85,
	},
	{
		ID: "op-4", CompanyID: "cit", Title: "Fullstack Developer", Level: "junior", City: "Campinas",
		WorkMode: Remote, SalaryMin: 5000, SalaryMax: 7000,
		HardSkills: []string{"React", "Node.js", "Docker"},
		Benefits:   []string{"remote work", "education budget"}, MockMatch: 80,
	},
	{
		ID: "op-5", CompanyID: "vtex", Title: "Staff Engineer", Level: "lead", City: "Rio de Janeiro",
		WorkMode: Remote, SalaryMin: 22000, SalaryMax: 30000,
		HardSkills: []string{"TypeScript", "Node.js", "Kubernetes", "AWS"},
		Benefits:   []string{"remote work", "stock options", "home office allowance"}, MockMatch: 72,
	},
	{
		ID: "op-6", CompanyID: "natura", Title: "Data Analyst", Level: "mid", City: "Cajamar",
		WorkMode: Onsite, SalaryMin: 8000, SalaryMax: 10500,
		HardSkills: []string{"SQL", "Python", "Power BI"},
		Benefits:   []string{"health insurance", "parental leave", "profit sharing"}, MockMatch: 83,
	},
	{
		ID: "op-7", CompanyID: "stone", Title: "Platform Engineer", Level: "senior", City: "Rio de Janeiro",
		WorkMode: Hybrid, SalaryMin: 16000, SalaryMax: 21000,
		HardSkills: []string{"Kubernetes", "Terraform", "Go", "AWS"},
		Benefits:   []string{"stock options", "health insurance", "meal allowance"}, MockMatch: 88,
	},
	{
		ID: "op-8", CompanyID: "totvs", Title: "Product Designer", Level: "senior", City: "São Paulo",
		WorkMode: Hybrid, SalaryMin: 12000, SalaryMax: 15000,
		HardSkills: []string{"Figma", "Design Systems", "Prototyping"},
		Benefits:   []string{"health insurance", "education budget", "hybrid work"}, MockMatch: 79,
	},
}

// Questions is the culture questionnaire, answered on a 1..5 agreement scale.
var Questions = []Question{
	{ID: "q1", Text: "I enjoy trying new tools even when the current ones work.", Dimension: Innovation},
	{ID: "q2", Text: "I prefer proven solutions over experiments.", Dimension: Innovation, Reversed: true},
	{ID: "q3", Text: "A predictable career path matters a lot to me.", Dimension: Stability},
	{ID: "q4", Text: "I am comfortable when priorities change every week.", Dimension: Stability, Reversed: true},
	{ID: "q5", Text: "I do my best work when nobody tells me how to do it.", Dimension: Autonomy},
	{ID: "q6", Text: "I like clear instructions before starting a task.", Dimension: Autonomy, Reversed: true},
	{ID: "q7", Text: "Pairing and group decisions energize me.", Dimension: Collaboration},
	{ID: "q8", Text: "I would rather own a problem alone from start to finish.", Dimension: Collaboration, Reversed: true},
	{ID: "q9", Text: "Fast promotion is more important than a comfortable routine.", Dimension: Growth},
	{ID: "q10", Text: "I want to master a role before taking the next step.", Dimension: Growth, Reversed: true},
	{ID: "q11", Text: "Protecting my time outside work is non-negotiable.", Dimension: Balance},
	{ID: "q12", Text: "I am fine with long weeks when the stakes are high.", Dimension: Balance, Reversed: true},
}

// Benefits is the default list offered by the benefit-priority step.
var Benefits = []string{
	"health insurance",
	"remote work",
	"flexible hours",
	"stock options",
	"profit sharing",
	"education budget",
	"meal allowance",
	"gym pass",
}

// Motivations are the tags offered by the matching flow.
var Motivations = []string{
	"higher salary",
	"career growth",
	"better culture",
	"remote work",
	"learning",
	"purpose",
	"stability",
}

// SatisfactionAspects are rated 1..5 in the matching flow.
var SatisfactionAspects = []string{"salary", "growth", "culture", "leadership", "balance"}

var Mentors = []Mentor{
	{
		ID: "lia", Name: "Lia", Avatar: "👩🏽‍💼", Tone: "warm and encouraging",
		Greeting: "Hi! I'm Lia. Let's talk about where you want to be next.",
		Questions: []string{
			"Tell me about a project you are proud of.",
			"What does a great work week look like for you?",
			"Which skills do you want to develop in the next year?",
		},
	},
	{
		ID: "rafa", Name: "Rafa", Avatar: "🧑🏻‍💻", Tone: "direct and pragmatic",
		Greeting: "Rafa here. Straight to the point: what job are you after?",
		Questions: []string{
			"What is the hardest technical problem you solved recently?",
			"What salary would make you switch tomorrow?",
			"What would make you leave a job in the first month?",
		},
	},
	{
		ID: "bia", Name: "Bia", Avatar: "👩🏻‍🎓", Tone: "curious and reflective",
		Greeting: "I'm Bia. I'd love to understand what motivates you.",
		Questions: []string{
			"When did you last feel fully engaged at work?",
			"How do you like to receive feedback?",
			"Which company culture brings out your best?",
		},
	},
}
