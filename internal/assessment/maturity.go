package assessment

import "math"

// MaturityLevel is one readiness tier. Range bounds are inclusive integer
// percentages.
type MaturityLevel struct {
	Level           string   `json:"level"`
	Range           [2]int   `json:"range"`
	Description     string   `json:"description"`
	Color           string   `json:"color"`
	Icon            string   `json:"icon"`
	Recommendations []string `json:"recommendations"`
	NextSteps       []string `json:"nextSteps"`
}

// Contains reports whether the rounded percentage falls inside the tier.
func (m MaturityLevel) Contains(percentage float64) bool {
	p := int(math.Round(percentage))
	return m.Range[0] <= p && p <= m.Range[1]
}

const (
	LevelExploring        = "Exploring"
	LevelExperimenting    = "Experimenting"
	LevelOperationalizing = "Operationalizing"
	LevelTransforming     = "Transforming"
	LevelOptimizing       = "Optimizing"
)

var defaultMaturityLevels = []MaturityLevel{
	{
		Level:       LevelExploring,
		Range:       [2]int{0, 20},
		Description: "AI is on the radar but there is no coordinated effort yet.",
		Color:       "gray",
		Icon:        "compass",
		Recommendations: []string{
			"Run an AI awareness workshop with your leadership team.",
			"Identify two or three high-value, low-risk use cases to explore.",
			"Take stock of the data you already collect and where it lives.",
		},
		NextSteps: []string{
			"Book a discovery call to map quick wins.",
			"Nominate an internal AI champion.",
		},
	},
	{
		Level:       LevelExperimenting,
		Range:       [2]int{21, 40},
		Description: "Pockets of experimentation exist but results are not yet repeatable.",
		Color:       "yellow",
		Icon:        "flask",
		Recommendations: []string{
			"Turn your most promising experiment into a scoped pilot with success metrics.",
			"Define a lightweight AI strategy that links pilots to business goals.",
			"Start consolidating key data sources into a shared store.",
		},
		NextSteps: []string{
			"Schedule a pilot design session.",
			"Draft an AI use-case backlog.",
		},
	},
	{
		Level:       LevelOperationalizing,
		Range:       [2]int{41, 60},
		Description: "AI delivers value in places and the foundations for scale are forming.",
		Color:       "blue",
		Icon:        "layers",
		Recommendations: []string{
			"Standardize how models move from pilot to production.",
			"Put a responsible AI policy and review process in place.",
			"Invest in upskilling business teams alongside technical hires.",
		},
		NextSteps: []string{
			"Assess your MLOps maturity in depth.",
			"Build a value-tracking dashboard for AI initiatives.",
		},
	},
	{
		Level:       LevelTransforming,
		Range:       [2]int{61, 80},
		Description: "AI is embedded in several core processes with measurable impact.",
		Color:       "purple",
		Icon:        "trending-up",
		Recommendations: []string{
			"Manage AI initiatives as a portfolio with clear ROI targets.",
			"Automate monitoring, retraining and drift detection for production models.",
			"Expand governance to cover third-party and generative AI tools.",
		},
		NextSteps: []string{
			"Plan an enterprise AI platform roadmap.",
			"Benchmark against industry leaders.",
		},
	},
	{
		Level:       LevelOptimizing,
		Range:       [2]int{81, 100},
		Description: "AI is a core capability that shapes strategy and products.",
		Color:       "green",
		Icon:        "award",
		Recommendations: []string{
			"Explore AI-native products and new revenue streams.",
			"Share internal platforms and practices across business units.",
			"Continuously review governance as regulation evolves.",
		},
		NextSteps: []string{
			"Engage on an innovation lab or co-development program.",
			"Publish your AI principles externally.",
		},
	},
}

// MaturityLevelFor returns the first tier whose range contains the
// percentage, or the first tier when none matches.
func (c *Catalog) MaturityLevelFor(percentage float64) MaturityLevel {
	for _, level := range c.levels {
		if level.Contains(percentage) {
			return level
		}
	}
	if len(c.levels) == 0 {
		return MaturityLevel{}
	}
	return c.levels[0]
}

// MaturityLevel looks a tier up by name.
func (c *Catalog) MaturityLevel(name string) (MaturityLevel, bool) {
	for _, level := range c.levels {
		if level.Level == name {
			return level, true
		}
	}
	return MaturityLevel{}, false
}
