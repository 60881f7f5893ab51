// Package content serves search over the site's static content: services,
// case studies, research papers and insights.
package content

const (
	TypeService   = "service"
	TypeCaseStudy = "case-study"
	TypeResearch  = "research"
	TypeInsight   = "insight"
)

type Item struct {
	ID      string   `json:"id"`
	Type    string   `json:"type"`
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`
	URL     string   `json:"url"`
}

var siteContent = []Item{
	{
		ID:      "svc-ai-strategy",
		Type:    TypeService,
		Title:   "AI Strategy & Roadmapping",
		Summary: "Align AI investments with business goals and build a prioritized, funded roadmap.",
		Tags:    []string{"strategy", "roadmap", "leadership"},
		URL:     "/services/ai-strategy",
	},
	{
		ID:      "svc-data-foundations",
		Type:    TypeService,
		Title:   "Data Foundations",
		Summary: "Modernize pipelines, warehouses and data quality so models have trustworthy inputs.",
		Tags:    []string{"data", "pipelines", "quality", "warehouse"},
		URL:     "/services/data-foundations",
	},
	{
		ID:      "svc-mlops",
		Type:    TypeService,
		Title:   "MLOps Platform Engineering",
		Summary: "Design the platform, CI/CD and monitoring needed to run machine learning in production.",
		Tags:    []string{"mlops", "platform", "monitoring", "technology"},
		URL:     "/services/mlops",
	},
	{
		ID:      "svc-genai",
		Type:    TypeService,
		Title:   "Generative AI Solutions",
		Summary: "Prototype and ship assistants, search and document automation built on large language models.",
		Tags:    []string{"generative ai", "llm", "chatbot", "automation"},
		URL:     "/services/generative-ai",
	},
	{
		ID:      "svc-governance",
		Type:    TypeService,
		Title:   "Responsible AI & Governance",
		Summary: "Policies, risk assessments and review boards for safe and compliant AI.",
		Tags:    []string{"governance", "ethics", "risk", "compliance"},
		URL:     "/services/governance",
	},
	{
		ID:      "svc-training",
		Type:    TypeService,
		Title:   "AI Literacy Training",
		Summary: "Workshops that upskill executives and business teams to spot and shape AI use cases.",
		Tags:    []string{"talent", "training", "culture"},
		URL:     "/services/training",
	},
	{
		ID:      "case-retail-forecasting",
		Type:    TypeCaseStudy,
		Title:   "Demand Forecasting for a National Retailer",
		Summary: "Cut stock-outs by 23% with a forecasting model fed by a rebuilt data pipeline.",
		Tags:    []string{"retail", "forecasting", "data"},
		URL:     "/case-studies/retail-forecasting",
	},
	{
		ID:      "case-insurance-claims",
		Type:    TypeCaseStudy,
		Title:   "Claims Triage Automation for an Insurer",
		Summary: "Routed 60% of claims automatically with document understanding and human review.",
		Tags:    []string{"insurance", "automation", "generative ai"},
		URL:     "/case-studies/insurance-claims",
	},
	{
		ID:      "case-manufacturing-quality",
		Type:    TypeCaseStudy,
		Title:   "Visual Quality Inspection in Manufacturing",
		Summary: "Deployed computer vision on the line with MLOps monitoring and drift alerts.",
		Tags:    []string{"manufacturing", "computer vision", "mlops"},
		URL:     "/case-studies/manufacturing-quality",
	},
	{
		ID:      "research-readiness-index",
		Type:    TypeResearch,
		Title:   "The AI Readiness Index",
		Summary: "Survey of 400 mid-market firms across strategy, data, technology, talent, governance and operations.",
		Tags:    []string{"research", "maturity", "benchmark", "readiness"},
		URL:     "/research/ai-readiness-index",
	},
	{
		ID:      "research-governance-gap",
		Type:    TypeResearch,
		Title:   "Closing the AI Governance Gap",
		Summary: "Why most organizations deploy models before they have policies to manage them.",
		Tags:    []string{"research", "governance", "risk"},
		URL:     "/research/governance-gap",
	},
	{
		ID:      "insight-first-use-case",
		Type:    TypeInsight,
		Title:   "Choosing Your First AI Use Case",
		Summary: "A simple value and feasibility matrix for picking a pilot that proves value quickly.",
		Tags:    []string{"strategy", "use cases", "pilot"},
		URL:     "/insights/first-use-case",
	},
	{
		ID:      "insight-data-quality",
		Type:    TypeInsight,
		Title:   "Data Quality Is an AI Problem",
		Summary: "How poor data quality silently erodes model accuracy and what to measure instead.",
		Tags:    []string{"data", "quality"},
		URL:     "/insights/data-quality",
	},
	{
		ID:      "insight-measuring-roi",
		Type:    TypeInsight,
		Title:   "Measuring the ROI of AI",
		Summary: "Metrics that connect model performance to revenue, cost and risk.",
		Tags:    []string{"operations", "roi", "measurement"},
		URL:     "/insights/measuring-roi",
	},
}

// Items returns a copy of the site content.
func Items() []Item {
	return append([]Item(nil), siteContent...)
}
