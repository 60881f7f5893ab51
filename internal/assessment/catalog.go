// Package assessment holds the AI readiness self-assessment: the static
// category and question catalog, the maturity level table, the scoring
// engine, the recommendation composer and the wizard state machine.
package assessment

// QuestionType selects how an answer value is interpreted.
type QuestionType string

const (
	// QuestionTypeMultipleChoice answers carry the selected option index as a string.
	QuestionTypeMultipleChoice QuestionType = "multiple-choice"
	// QuestionTypeRating answers carry a number already normalized to [0,100].
	QuestionTypeRating QuestionType = "rating"
)

type Category struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	MaxScore    float64 `json:"maxScore"`
	Icon        string  `json:"icon"`
	Color       string  `json:"color"`
}

type Question struct {
	ID          string       `json:"id"`
	CategoryID  string       `json:"categoryId"`
	Question    string       `json:"question"`
	Type        QuestionType `json:"type"`
	Options     []string     `json:"options"`
	Weight      float64      `json:"weight"`
	Description string       `json:"description,omitempty"`
}

// maxOptionIndex is the highest selectable index for a multiple-choice
// question. Questions without options fall back to the five-point scale.
func (q Question) maxOptionIndex() int {
	if len(q.Options) > 1 {
		return len(q.Options) - 1
	}
	return 4
}

// Catalog is an immutable set of categories, questions and maturity levels.
// Category order is the wizard's step order.
type Catalog struct {
	categories []Category
	questions  []Question
	levels     []MaturityLevel

	categoryIdx map[string]int
	questionIdx map[string]int
}

// NewCatalog indexes the given tables. Slices are copied so callers cannot
// mutate the catalog afterwards.
func NewCatalog(categories []Category, questions []Question, levels []MaturityLevel) *Catalog {
	c := &Catalog{
		categories:  append([]Category(nil), categories...),
		questions:   append([]Question(nil), questions...),
		levels:      append([]MaturityLevel(nil), levels...),
		categoryIdx: make(map[string]int, len(categories)),
		questionIdx: make(map[string]int, len(questions)),
	}
	for i, cat := range c.categories {
		c.categoryIdx[cat.ID] = i
	}
	for i, q := range c.questions {
		c.questionIdx[q.ID] = i
	}
	return c
}

func (c *Catalog) Categories() []Category {
	return append([]Category(nil), c.categories...)
}

func (c *Catalog) Questions() []Question {
	return append([]Question(nil), c.questions...)
}

func (c *Catalog) MaturityLevels() []MaturityLevel {
	return append([]MaturityLevel(nil), c.levels...)
}

func (c *Catalog) Category(id string) (Category, bool) {
	i, ok := c.categoryIdx[id]
	if !ok {
		return Category{}, false
	}
	return c.categories[i], true
}

func (c *Catalog) Question(id string) (Question, bool) {
	i, ok := c.questionIdx[id]
	if !ok {
		return Question{}, false
	}
	return c.questions[i], true
}

// QuestionsFor returns the questions tagged with categoryID in catalog order.
func (c *Catalog) QuestionsFor(categoryID string) []Question {
	var out []Question
	for _, q := range c.questions {
		if q.CategoryID == categoryID {
			out = append(out, q)
		}
	}
	return out
}

// TotalMaxScore is the sum of every category's MaxScore.
func (c *Catalog) TotalMaxScore() float64 {
	total := 0.0
	for _, cat := range c.categories {
		total += cat.MaxScore
	}
	return total
}

var defaultCategories = []Category{
	{
		ID:          "strategy",
		Name:        "AI Strategy & Vision",
		Description: "How clearly AI is tied to business goals, sponsorship and funding.",
		MaxScore:    25,
		Icon:        "target",
		Color:       "blue",
	},
	{
		ID:          "data",
		Name:        "Data Infrastructure",
		Description: "Availability, quality and accessibility of the data AI depends on.",
		MaxScore:    25,
		Icon:        "database",
		Color:       "green",
	},
	{
		ID:          "technology",
		Name:        "Technology & Tooling",
		Description: "Platforms, compute and MLOps practices for building and running models.",
		MaxScore:    20,
		Icon:        "cpu",
		Color:       "purple",
	},
	{
		ID:          "talent",
		Name:        "Talent & Culture",
		Description: "Skills, training and appetite for experimentation across teams.",
		MaxScore:    15,
		Icon:        "users",
		Color:       "orange",
	},
	{
		ID:          "governance",
		Name:        "Governance & Ethics",
		Description: "Policies, risk controls and accountability for AI systems.",
		MaxScore:    15,
		Icon:        "shield",
		Color:       "red",
	},
	{
		ID:          "operations",
		Name:        "Use Cases & Operations",
		Description: "How AI use cases are prioritized, delivered and measured in production.",
		MaxScore:    20,
		Icon:        "settings",
		Color:       "teal",
	},
}

var defaultQuestions = []Question{
	// strategy: 10 + 8 + 7
	{
		ID:         "strategy-vision",
		CategoryID: "strategy",
		Question:   "How well defined is your organization's AI strategy?",
		Type:       QuestionTypeMultipleChoice,
		Options: []string{
			"We have no AI strategy",
			"AI is discussed informally",
			"A documented strategy exists for some areas",
			"A company-wide strategy is aligned to business goals",
		},
		Weight: 10,
	},
	{
		ID:         "strategy-sponsorship",
		CategoryID: "strategy",
		Question:   "What level of executive sponsorship do AI initiatives have?",
		Type:       QuestionTypeMultipleChoice,
		Options: []string{
			"None",
			"Interest from individual managers",
			"A named executive sponsor",
			"Board-level priority with dedicated budget",
		},
		Weight: 8,
	},
	{
		ID:         "strategy-investment",
		CategoryID: "strategy",
		Question:   "How is AI work funded today?",
		Type:       QuestionTypeMultipleChoice,
		Options: []string{
			"Not funded",
			"Ad hoc project budgets",
			"An annual AI budget",
			"A multi-year investment roadmap",
		},
		Weight:      7,
		Description: "Consider both internal headcount and external spend.",
	},

	// data: 10 + 8 + 7
	{
		ID:         "data-quality",
		CategoryID: "data",
		Question:   "How would you rate the quality of your core business data?",
		Type:       QuestionTypeMultipleChoice,
		Options: []string{
			"Poor or unknown",
			"Inconsistent across systems",
			"Good in most key systems",
			"Trusted, monitored and documented",
		},
		Weight: 10,
	},
	{
		ID:         "data-access",
		CategoryID: "data",
		Question:   "How easily can teams access the data they need?",
		Type:       QuestionTypeMultipleChoice,
		Options: []string{
			"Data is locked in silos",
			"Access takes manual requests",
			"A central warehouse or lake exists",
			"Self-service access with governance",
		},
		Weight: 8,
	},
	{
		ID:         "data-pipelines",
		CategoryID: "data",
		Question:   "How automated are your data pipelines?",
		Type:       QuestionTypeMultipleChoice,
		Options: []string{
			"Mostly spreadsheets and exports",
			"Some scheduled jobs",
			"Automated pipelines for key sources",
			"Monitored, versioned pipelines end to end",
		},
		Weight: 7,
	},

	// technology: 8 + 7 + 5
	{
		ID:         "technology-platform",
		CategoryID: "technology",
		Question:   "Do you have a platform for building and deploying ML models?",
		Type:       QuestionTypeMultipleChoice,
		Options: []string{
			"No",
			"Individual notebooks and scripts",
			"A shared platform for some teams",
			"A standard platform used across the company",
		},
		Weight: 8,
	},
	{
		ID:         "technology-mlops",
		CategoryID: "technology",
		Question:   "How are models monitored once they are in production?",
		Type:       QuestionTypeMultipleChoice,
		Options: []string{
			"No models in production",
			"Manual spot checks",
			"Automated metrics for some models",
			"Full monitoring with drift alerts and retraining",
		},
		Weight: 7,
	},
	{
		ID:         "technology-cloud",
		CategoryID: "technology",
		Question:   "How ready is your infrastructure for AI workloads?",
		Type:       QuestionTypeMultipleChoice,
		Options: []string{
			"On-premise only, no spare capacity",
			"Limited cloud usage",
			"Cloud-first with on-demand compute",
			"Elastic GPU capacity with cost controls",
		},
		Weight: 5,
	},

	// talent: 5 + 5 + 5
	{
		ID:         "talent-skills",
		CategoryID: "talent",
		Question:   "Does your team have in-house data science or ML skills?",
		Type:       QuestionTypeMultipleChoice,
		Options: []string{
			"No",
			"One or two individuals",
			"A dedicated team",
			"Multiple teams plus embedded specialists",
		},
		Weight: 5,
	},
	{
		ID:         "talent-literacy",
		CategoryID: "talent",
		Question:   "How AI-literate are business stakeholders?",
		Type:       QuestionTypeMultipleChoice,
		Options: []string{
			"Little awareness",
			"Basic awareness",
			"Trained on core concepts",
			"Actively proposing and shaping use cases",
		},
		Weight: 5,
	},
	{
		ID:         "talent-culture",
		CategoryID: "talent",
		Question:   "How does your culture treat experimentation?",
		Type:       QuestionTypeMultipleChoice,
		Options: []string{
			"Failure is avoided",
			"Tolerated in small pockets",
			"Encouraged with guardrails",
			"Built into how teams plan work",
		},
		Weight: 5,
	},

	// governance: 6 + 5 + 4
	{
		ID:         "governance-policy",
		CategoryID: "governance",
		Question:   "Do you have a policy for responsible AI use?",
		Type:       QuestionTypeMultipleChoice,
		Options: []string{
			"No",
			"Informal guidelines",
			"A written policy",
			"An enforced policy with regular review",
		},
		Weight: 6,
	},
	{
		ID:         "governance-risk",
		CategoryID: "governance",
		Question:   "How are AI risks such as bias or privacy assessed?",
		Type:       QuestionTypeMultipleChoice,
		Options: []string{
			"They are not assessed",
			"Case by case",
			"A standard review for new models",
			"Continuous assessment with audit trails",
		},
		Weight: 5,
	},
	{
		ID:         "governance-ownership",
		CategoryID: "governance",
		Question:   "Who is accountable for AI systems once deployed?",
		Type:       QuestionTypeMultipleChoice,
		Options: []string{
			"Nobody in particular",
			"The team that built it",
			"A named business owner",
			"A governance board with clear escalation",
		},
		Weight: 4,
	},

	// operations: 8 + 7 + 5
	{
		ID:         "operations-usecases",
		CategoryID: "operations",
		Question:   "How are AI use cases identified and prioritized?",
		Type:       QuestionTypeMultipleChoice,
		Options: []string{
			"They are not",
			"Driven by individual enthusiasm",
			"Collected and scored periodically",
			"A managed portfolio tied to business value",
		},
		Weight: 8,
	},
	{
		ID:         "operations-production",
		CategoryID: "operations",
		Question:   "How many AI use cases are running in production?",
		Type:       QuestionTypeMultipleChoice,
		Options: []string{
			"None",
			"Pilots only",
			"One to three",
			"More than three with measured impact",
		},
		Weight: 7,
	},
	{
		ID:         "operations-measurement",
		CategoryID: "operations",
		Question:   "How do you measure the value delivered by AI?",
		Type:       QuestionTypeMultipleChoice,
		Options: []string{
			"We do not",
			"Anecdotally",
			"KPIs for individual projects",
			"Portfolio-level ROI tracking",
		},
		Weight: 5,
	},
}

var defaultCatalog = NewCatalog(defaultCategories, defaultQuestions, defaultMaturityLevels)

// DefaultCatalog returns the catalog served by the site.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}
