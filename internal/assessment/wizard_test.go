package assessment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFixedWizard() *Wizard {
	w := NewWizard(DefaultCatalog())
	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return fixed }
	return w
}

func validContact() UserInfo {
	return UserInfo{Name: " Ada Lovelace ", Email: "ada@example.com", Company: "Analytical Engines"}
}

func answerCurrentCategory(t *testing.T, w *Wizard, s *AssessmentState, index int) {
	t.Helper()
	cat, ok := w.CurrentCategory(s)
	require.True(t, ok)
	for _, q := range w.Catalog().QuestionsFor(cat.ID) {
		require.NoError(t, w.RecordAnswer(s, q.ID, OptionValue(index)))
	}
}

func TestWizard_Start(t *testing.T) {
	w := newFixedWizard()
	s := w.Start("abc")

	assert.Equal(t, "abc", s.ID)
	assert.Equal(t, 0, s.CurrentStep)
	assert.Equal(t, 8, s.TotalSteps)
	assert.False(t, s.IsComplete)
	assert.Empty(t, s.Answers)
}

func TestWizard_SubmitContact(t *testing.T) {
	tests := []struct {
		name    string
		info    UserInfo
		wantErr error
	}{
		{"valid", validContact(), nil},
		{"role optional", UserInfo{Name: "A", Email: "a@b.co", Company: "C", Role: ""}, nil},
		{"blank name", UserInfo{Name: "   ", Email: "a@b.co", Company: "C"}, ErrContactIncomplete},
		{"missing email", UserInfo{Name: "A", Company: "C"}, ErrContactIncomplete},
		{"missing company", UserInfo{Name: "A", Email: "a@b.co"}, ErrContactIncomplete},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newFixedWizard()
			s := w.Start("id")
			err := w.SubmitContact(s, tt.info)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 0, s.CurrentStep)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, s.CurrentStep)
		})
	}
}

func TestWizard_SubmitContact_TrimsFields(t *testing.T) {
	w := newFixedWizard()
	s := w.Start("id")
	require.NoError(t, w.SubmitContact(s, validContact()))
	assert.Equal(t, "Ada Lovelace", s.UserInfo.Name)

	err := w.SubmitContact(s, validContact())
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestWizard_NextRequiresAllAnswers(t *testing.T) {
	w := newFixedWizard()
	s := w.Start("id")

	assert.ErrorIs(t, w.Next(s), ErrInvalidTransition)
	require.NoError(t, w.SubmitContact(s, validContact()))

	assert.ErrorIs(t, w.Next(s), ErrStepIncomplete)

	require.NoError(t, w.RecordAnswer(s, "strategy-vision", OptionValue(2)))
	assert.ErrorIs(t, w.Next(s), ErrStepIncomplete)
	assert.False(t, w.StepComplete(s))

	answerCurrentCategory(t, w, s, 1)
	require.NoError(t, w.Next(s))
	assert.Equal(t, 2, s.CurrentStep)
}

func TestWizard_RecordAnswer(t *testing.T) {
	w := newFixedWizard()
	s := w.Start("id")

	err := w.RecordAnswer(s, "strategy-vision", OptionValue(1))
	assert.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, w.SubmitContact(s, validContact()))
	assert.ErrorIs(t, w.RecordAnswer(s, "nope", OptionValue(1)), ErrUnknownQuestion)

	require.NoError(t, w.RecordAnswer(s, "strategy-vision", OptionValue(1)))
	require.NoError(t, w.RecordAnswer(s, "strategy-vision", OptionValue(3)))
	ans := s.Answers["strategy-vision"]
	assert.Equal(t, "3", ans.Value.Text())
	assert.Equal(t, 0.0, ans.Score)
}

func TestWizard_PreviousKeepsAnswers(t *testing.T) {
	w := newFixedWizard()
	s := w.Start("id")

	require.NoError(t, w.Previous(s))
	assert.Equal(t, 0, s.CurrentStep)

	require.NoError(t, w.SubmitContact(s, validContact()))
	answerCurrentCategory(t, w, s, 2)
	require.NoError(t, w.Next(s))

	require.NoError(t, w.Previous(s))
	assert.Equal(t, 1, s.CurrentStep)
	assert.True(t, w.StepComplete(s))
	require.NoError(t, w.Next(s))
	assert.Equal(t, 2, s.CurrentStep)
}

func TestWizard_CompleteFlow(t *testing.T) {
	w := newFixedWizard()
	s := w.Start("id")
	require.NoError(t, w.SubmitContact(s, validContact()))

	_, _, err := w.Results(s)
	assert.ErrorIs(t, err, ErrNotComplete)
	assert.ErrorIs(t, w.Complete(s), ErrInvalidTransition)

	categories := w.Catalog().Categories()
	for i := range categories {
		answerCurrentCategory(t, w, s, 3)
		if i < len(categories)-1 {
			require.NoError(t, w.Next(s))
		}
	}
	assert.Equal(t, len(categories), s.CurrentStep)
	assert.ErrorIs(t, w.Next(s), ErrInvalidTransition)

	require.NoError(t, w.Complete(s))
	assert.True(t, s.IsComplete)
	assert.Equal(t, s.TotalSteps-1, s.CurrentStep)

	assert.ErrorIs(t, w.RecordAnswer(s, "strategy-vision", OptionValue(0)), ErrAssessmentComplete)
	assert.ErrorIs(t, w.Complete(s), ErrAssessmentComplete)
	assert.ErrorIs(t, w.Previous(s), ErrAssessmentComplete)

	score, recs, err := w.Results(s)
	require.NoError(t, err)
	assert.Equal(t, 100.0, score.Percentage)
	assert.Equal(t, LevelOptimizing, score.MaturityLevel.Level)
	assert.NotEmpty(t, recs)
}

func TestWizard_CompleteRequiresLastCategoryAnswered(t *testing.T) {
	w := newFixedWizard()
	s := w.Start("id")
	require.NoError(t, w.SubmitContact(s, validContact()))

	n := len(w.Catalog().Categories())
	for i := 1; i < n; i++ {
		answerCurrentCategory(t, w, s, 1)
		require.NoError(t, w.Next(s))
	}
	assert.ErrorIs(t, w.Complete(s), ErrStepIncomplete)
	assert.False(t, s.IsComplete)
}
