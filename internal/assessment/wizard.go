package assessment

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrContactIncomplete  = errors.New("name, email and company are required")
	ErrStepIncomplete     = errors.New("every question in the current category must be answered")
	ErrInvalidTransition  = errors.New("transition not allowed from the current step")
	ErrUnknownQuestion    = errors.New("unknown question")
	ErrAssessmentComplete = errors.New("assessment already complete")
	ErrNotComplete        = errors.New("assessment not complete")
)

type UserInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Role    string `json:"role,omitempty"`
}

// Normalize trims every field.
func (u UserInfo) Normalize() UserInfo {
	return UserInfo{
		Name:    strings.TrimSpace(u.Name),
		Email:   strings.TrimSpace(u.Email),
		Company: strings.TrimSpace(u.Company),
		Role:    strings.TrimSpace(u.Role),
	}
}

// Complete reports whether the required contact fields are present.
func (u UserInfo) Complete() bool {
	n := u.Normalize()
	return n.Name != "" && n.Email != "" && n.Company != ""
}

// AssessmentState is one wizard run. Step 0 is the welcome/contact step,
// steps 1..N are the catalog categories in order, and step N+1 shows results.
type AssessmentState struct {
	ID          string            `json:"id"`
	CurrentStep int               `json:"currentStep"`
	TotalSteps  int               `json:"totalSteps"`
	Answers     map[string]Answer `json:"answers"`
	UserInfo    UserInfo          `json:"userInfo"`
	IsComplete  bool              `json:"isComplete"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// Wizard drives AssessmentState transitions against a catalog.
type Wizard struct {
	catalog *Catalog
	now     func() time.Time
}

func NewWizard(catalog *Catalog) *Wizard {
	if catalog == nil {
		catalog = defaultCatalog
	}
	return &Wizard{catalog: catalog, now: func() time.Time { return time.Now().UTC() }}
}

func (w *Wizard) Catalog() *Catalog { return w.catalog }

// Start returns a fresh state positioned on the welcome step.
func (w *Wizard) Start(id string) *AssessmentState {
	now := w.now()
	return &AssessmentState{
		ID:          id,
		CurrentStep: 0,
		TotalSteps:  len(w.catalog.categories) + 2,
		Answers:     make(map[string]Answer),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// CurrentCategory returns the category shown on the current step, if any.
func (w *Wizard) CurrentCategory(s *AssessmentState) (Category, bool) {
	if !w.onCategoryStep(s) {
		return Category{}, false
	}
	return w.catalog.categories[s.CurrentStep-1], true
}

// StepComplete reports whether every question of the current category has
// an answer. Steps without a category are trivially complete.
func (w *Wizard) StepComplete(s *AssessmentState) bool {
	cat, ok := w.CurrentCategory(s)
	if !ok {
		return true
	}
	for _, q := range w.catalog.QuestionsFor(cat.ID) {
		if _, answered := s.Answers[q.ID]; !answered {
			return false
		}
	}
	return true
}

// SubmitContact records the user's details and moves from welcome to the
// first category.
func (w *Wizard) SubmitContact(s *AssessmentState, info UserInfo) error {
	if s.IsComplete {
		return ErrAssessmentComplete
	}
	if s.CurrentStep != 0 {
		return fmt.Errorf("%w: contact is submitted on the welcome step", ErrInvalidTransition)
	}
	if !info.Complete() {
		return ErrContactIncomplete
	}
	s.UserInfo = info.Normalize()
	s.CurrentStep = 1
	w.touch(s)
	return nil
}

// RecordAnswer stores or replaces the answer for questionID. Score is
// always stored as 0.
func (w *Wizard) RecordAnswer(s *AssessmentState, questionID string, value AnswerValue) error {
	if s.IsComplete {
		return ErrAssessmentComplete
	}
	if !w.onCategoryStep(s) {
		return fmt.Errorf("%w: answers are recorded on category steps", ErrInvalidTransition)
	}
	if _, ok := w.catalog.Question(questionID); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownQuestion, questionID)
	}
	if s.Answers == nil {
		s.Answers = make(map[string]Answer)
	}
	s.Answers[questionID] = Answer{QuestionID: questionID, Value: value, Score: 0}
	w.touch(s)
	return nil
}

// Next advances to the following category once the current one is answered.
func (w *Wizard) Next(s *AssessmentState) error {
	if s.IsComplete {
		return ErrAssessmentComplete
	}
	if !w.onCategoryStep(s) || s.CurrentStep == w.lastCategoryStep() {
		return fmt.Errorf("%w: next is not available on step %d", ErrInvalidTransition, s.CurrentStep)
	}
	if !w.StepComplete(s) {
		return ErrStepIncomplete
	}
	s.CurrentStep++
	w.touch(s)
	return nil
}

// Complete finishes the assessment from the last category step.
func (w *Wizard) Complete(s *AssessmentState) error {
	if s.IsComplete {
		return ErrAssessmentComplete
	}
	if s.CurrentStep != w.lastCategoryStep() || !w.onCategoryStep(s) {
		return fmt.Errorf("%w: complete is only available on the last category", ErrInvalidTransition)
	}
	if !w.StepComplete(s) {
		return ErrStepIncomplete
	}
	s.IsComplete = true
	s.CurrentStep = s.TotalSteps - 1
	w.touch(s)
	return nil
}

// Previous moves back one step and stays put on the welcome step.
func (w *Wizard) Previous(s *AssessmentState) error {
	if s.IsComplete {
		return ErrAssessmentComplete
	}
	if s.CurrentStep > 0 {
		s.CurrentStep--
		w.touch(s)
	}
	return nil
}

// Results scores a completed assessment.
func (w *Wizard) Results(s *AssessmentState) (AssessmentScore, []string, error) {
	if !s.IsComplete {
		return AssessmentScore{}, nil, ErrNotComplete
	}
	score := w.catalog.CalculateScore(s.Answers)
	return score, w.catalog.GetRecommendationsForScore(score), nil
}

func (w *Wizard) onCategoryStep(s *AssessmentState) bool {
	return s.CurrentStep >= 1 && s.CurrentStep <= w.lastCategoryStep()
}

func (w *Wizard) lastCategoryStep() int {
	return len(w.catalog.categories)
}

func (w *Wizard) touch(s *AssessmentState) {
	s.UpdatedAt = w.now()
}
