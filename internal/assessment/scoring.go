package assessment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// AnswerValue is either the selected option index as text or a numeric
// rating. On the wire it is a JSON string or a JSON number.
type AnswerValue struct {
	text     string
	number   float64
	isNumber bool
}

// TextValue wraps a raw text answer.
func TextValue(s string) AnswerValue {
	return AnswerValue{text: s}
}

// OptionValue wraps a selected option index.
func OptionValue(index int) AnswerValue {
	return AnswerValue{text: strconv.Itoa(index)}
}

// NumberValue wraps a numeric rating in [0,100].
func NumberValue(v float64) AnswerValue {
	return AnswerValue{number: v, isNumber: true}
}

func (v AnswerValue) IsNumber() bool { return v.isNumber }

func (v AnswerValue) Text() string { return v.text }

func (v AnswerValue) Number() float64 { return v.number }

// IsZero reports whether no value was ever set.
func (v AnswerValue) IsZero() bool {
	return !v.isNumber && v.text == ""
}

func (v AnswerValue) String() string {
	if v.isNumber {
		return strconv.FormatFloat(v.number, 'f', -1, 64)
	}
	return v.text
}

func (v AnswerValue) MarshalJSON() ([]byte, error) {
	if v.isNumber {
		return json.Marshal(v.number)
	}
	return json.Marshal(v.text)
}

func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = AnswerValue{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = TextValue(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("answer value must be a string or a number: %w", err)
	}
	*v = NumberValue(n)
	return nil
}

// Answer is a single collected response. Score is recorded as 0 and is not
// read by the scoring engine; scores are always recomputed from Value.
type Answer struct {
	QuestionID string      `json:"questionId"`
	Value      AnswerValue `json:"value"`
	Score      float64     `json:"score"`
}

type CategoryScore struct {
	Score      float64 `json:"score"`
	MaxScore   float64 `json:"maxScore"`
	Percentage float64 `json:"percentage"`
}

type AssessmentScore struct {
	Total         float64                  `json:"total"`
	Percentage    float64                  `json:"percentage"`
	ByCategory    map[string]CategoryScore `json:"byCategory"`
	MaturityLevel MaturityLevel            `json:"maturityLevel"`
}

// RecommendationThreshold is the category percentage below which the
// category's own recommendation is added.
const RecommendationThreshold = 60.0

var categoryRecommendations = map[string]string{
	"strategy":   "Develop a clear AI strategy with executive sponsorship and a funded roadmap tied to business outcomes.",
	"data":       "Invest in data quality, accessibility and automated pipelines before scaling AI initiatives.",
	"technology": "Establish a shared ML platform and MLOps practices to move models reliably into production.",
	"talent":     "Build AI literacy across the business and grow in-house data science capability.",
	"governance": "Put responsible AI policies, risk reviews and clear ownership in place for every AI system.",
	"operations": "Prioritize a portfolio of AI use cases and track the value each one delivers in production.",
}

// CategoryRecommendation returns the sentence suggested for a weak category.
func CategoryRecommendation(categoryID string) (string, bool) {
	s, ok := categoryRecommendations[categoryID]
	return s, ok
}

// ScoreAnswer computes the weighted score of one answer for question q.
func ScoreAnswer(q Question, v AnswerValue) float64 {
	if v.isNumber {
		pct := v.number
		if pct < 0 {
			pct = 0
		} else if pct > 100 {
			pct = 100
		}
		return pct / 100 * q.Weight
	}

	idx, err := strconv.Atoi(strings.TrimSpace(v.text))
	if err != nil {
		return 0
	}
	maxIdx := q.maxOptionIndex()
	if idx < 0 || idx > maxIdx {
		return 0
	}
	return float64(idx) / float64(maxIdx) * q.Weight
}

// CalculateScore scores answers against the catalog. Unknown question ids
// are skipped. Every category is present in ByCategory.
func (c *Catalog) CalculateScore(answers map[string]Answer) AssessmentScore {
	sums := make(map[string]float64, len(c.categories))
	for qid, ans := range answers {
		q, ok := c.Question(qid)
		if !ok {
			continue
		}
		sums[q.CategoryID] += ScoreAnswer(q, ans.Value)
	}

	result := AssessmentScore{
		ByCategory: make(map[string]CategoryScore, len(c.categories)),
	}
	maxTotal := 0.0
	for _, cat := range c.categories {
		score := sums[cat.ID]
		result.ByCategory[cat.ID] = CategoryScore{
			Score:      score,
			MaxScore:   cat.MaxScore,
			Percentage: percentage(score, cat.MaxScore),
		}
		result.Total += score
		maxTotal += cat.MaxScore
	}
	result.Percentage = percentage(result.Total, maxTotal)
	result.MaturityLevel = c.MaturityLevelFor(result.Percentage)
	return result
}

// GetRecommendationsForScore returns the tier's recommendations followed by
// one sentence per category under the threshold, without duplicates.
func (c *Catalog) GetRecommendationsForScore(score AssessmentScore) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(s string) {
		if _, dup := seen[s]; dup {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	for _, r := range score.MaturityLevel.Recommendations {
		add(r)
	}
	for _, cat := range c.categories {
		cs, ok := score.ByCategory[cat.ID]
		if !ok || cs.Percentage >= RecommendationThreshold {
			continue
		}
		if s, ok := categoryRecommendations[cat.ID]; ok {
			add(s)
		}
	}
	return out
}

// CalculateScore scores answers against the default catalog.
func CalculateScore(answers map[string]Answer) AssessmentScore {
	return defaultCatalog.CalculateScore(answers)
}

// GetRecommendationsForScore composes recommendations using the default catalog.
func GetRecommendationsForScore(score AssessmentScore) []string {
	return defaultCatalog.GetRecommendationsForScore(score)
}

func percentage(score, max float64) float64 {
	if max == 0 {
		return 0
	}
	return score * 100 / max
}
