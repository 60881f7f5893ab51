package leads

import "ai-readiness-funnel/internal/assessment"

// ClassifyPriority maps an assessment outcome to a sales priority. When the
// tier name is missing the percentage is used to resolve it; a lead with
// neither came from the plain contact form and is medium.
func ClassifyPriority(maturityLevel string, percentage *float64) string {
	if maturityLevel == "" {
		if percentage == nil {
			return PriorityMedium
		}
		maturityLevel = assessment.DefaultCatalog().MaturityLevelFor(*percentage).Level
	}

	switch maturityLevel {
	case assessment.LevelTransforming, assessment.LevelOptimizing:
		return PriorityHigh
	case assessment.LevelOperationalizing:
		return PriorityMedium
	default:
		return PriorityLow
	}
}
