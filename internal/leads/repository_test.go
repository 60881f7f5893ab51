package leads

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

var fixedNow = time.Date(2026, 5, 4, 15, 30, 0, 0, time.UTC)

func setupMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewRepository(db)
	repo.now = func() time.Time { return fixedNow }
	return repo, mock
}

func submissionColumns() []string {
	return []string{"id", "name", "email", "company", "role", "phone", "message",
		"source", "maturity_level", "percentage", "priority", "created_at"}
}

func createTestSubmission() *ContactSubmission {
	pct := 72.5
	return &ContactSubmission{
		Name:          "Grace Hopper",
		Email:         "grace@example.com",
		Company:       "Navy Labs",
		Role:          "CTO",
		Source:        SourceAssessment,
		MaturityLevel: "Transforming",
		Percentage:    &pct,
		Priority:      PriorityHigh,
	}
}

// ==========================
// Repository Tests
// ==========================

func TestRepository_EnsureSchema(t *testing.T) {
	repo, mock := setupMockRepo(t)
	mock.ExpectExec(`(?s)CREATE TABLE IF NOT EXISTS contact_submissions.+CREATE UNIQUE INDEX IF NOT EXISTS contact_submissions_email_source_day_key`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func insertedRows(id string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id"}).AddRow(id)
}

func TestRepository_Create_Success(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectQuery(`(?s)INSERT INTO contact_submissions.+ON CONFLICT DO NOTHING\s+RETURNING id`).
		WithArgs(
			sqlmock.AnyArg(),
			"Grace Hopper",
			"grace@example.com",
			"Navy Labs",
			"CTO",
			"",
			"",
			SourceAssessment,
			"Transforming",
			72.5,
			PriorityHigh,
			fixedNow,
			"2026-05-04",
		).
		WillReturnRows(insertedRows("generated-id"))

	s := createTestSubmission()
	require.NoError(t, repo.Create(context.Background(), s))
	assert.Equal(t, "generated-id", s.ID)
	assert.Equal(t, fixedNow, s.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_WithoutPercentage(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectQuery(`INSERT INTO contact_submissions`).
		WithArgs(sqlmock.AnyArg(), "Ada", "ada@example.com", "Engines", "", "", "hello",
			SourceContactForm, "", nil, PriorityMedium, fixedNow, "2026-05-04").
		WillReturnRows(insertedRows("id-1"))

	s := &ContactSubmission{
		Name: "Ada", Email: "ada@example.com", Company: "Engines", Message: "hello",
		Source: SourceContactForm, Priority: PriorityMedium,
	}
	require.NoError(t, repo.Create(context.Background(), s))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_Duplicate(t *testing.T) {
	repo, mock := setupMockRepo(t)

	// The unique index on (lower(email), source, created_day) swallows the row.
	mock.ExpectQuery(`INSERT INTO contact_submissions`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	s := createTestSubmission()
	err := repo.Create(context.Background(), s)
	assert.ErrorIs(t, err, ErrDuplicateSubmission)
	assert.Empty(t, s.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_KeyedUsesGivenID(t *testing.T) {
	repo, mock := setupMockRepo(t)
	id := SubmissionID("assessment-42")

	mock.ExpectQuery(`INSERT INTO contact_submissions`).
		WithArgs(id, "Grace Hopper", "grace@example.com", "Navy Labs", "CTO", "", "",
			SourceAssessment, "Transforming", 72.5, PriorityHigh, fixedNow, "2026-05-04").
		WillReturnRows(insertedRows(id))

	s := createTestSubmission()
	s.ID = id
	require.NoError(t, repo.Create(context.Background(), s))
	assert.Equal(t, id, s.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_KeyedRetryReturnsExistingRow(t *testing.T) {
	repo, mock := setupMockRepo(t)
	id := SubmissionID("assessment-42")
	firstAttempt := fixedNow.Add(-2 * time.Second)

	mock.ExpectQuery(`INSERT INTO contact_submissions`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT (.+) FROM contact_submissions WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(submissionColumns()).
			AddRow(id, "Grace Hopper", "grace@example.com", "Navy Labs", "CTO", "", "",
				SourceAssessment, "Transforming", 72.5, PriorityHigh, firstAttempt))

	s := createTestSubmission()
	s.ID = id
	require.NoError(t, repo.Create(context.Background(), s))
	assert.Equal(t, id, s.ID)
	assert.Equal(t, firstAttempt, s.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_KeyedConflictWithOtherRowIsDuplicate(t *testing.T) {
	repo, mock := setupMockRepo(t)
	id := SubmissionID("assessment-43")

	mock.ExpectQuery(`INSERT INTO contact_submissions`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT (.+) FROM contact_submissions WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(submissionColumns()))

	s := createTestSubmission()
	s.ID = id
	err := repo.Create(context.Background(), s)
	assert.ErrorIs(t, err, ErrDuplicateSubmission)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_InsertFailure(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectQuery(`INSERT INTO contact_submissions`).
		WillReturnError(errors.New("connection reset"))

	s := createTestSubmission()
	err := repo.Create(context.Background(), s)
	assert.ErrorIs(t, err, ErrDatabaseInsert)
	assert.Empty(t, s.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionID_Stable(t *testing.T) {
	assert.Equal(t, SubmissionID("assessment-42"), SubmissionID("assessment-42"))
	assert.NotEqual(t, SubmissionID("assessment-42"), SubmissionID("assessment-43"))
}

func TestRepository_List(t *testing.T) {
	repo, mock := setupMockRepo(t)
	older := fixedNow.Add(-time.Hour)

	rows := sqlmock.NewRows(submissionColumns()).
		AddRow("id-2", "Grace", "grace@example.com", "Navy", "", "", "", SourceAssessment, "Optimizing", 92.0, PriorityHigh, fixedNow).
		AddRow("id-1", "Ada", "ada@example.com", "Engines", "", "", "hi", SourceContactForm, "", nil, PriorityMedium, older)
	mock.ExpectQuery(`SELECT (.+) FROM contact_submissions ORDER BY created_at DESC LIMIT \$1`).
		WithArgs(25).
		WillReturnRows(rows)

	list, err := repo.List(context.Background(), 25)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "id-2", list[0].ID)
	require.NotNil(t, list[0].Percentage)
	assert.Equal(t, 92.0, *list[0].Percentage)
	assert.Nil(t, list[1].Percentage)
	assert.Equal(t, "hi", list[1].Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List_DefaultLimitAndEmpty(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM contact_submissions`).
		WithArgs(DefaultListLimit).
		WillReturnRows(sqlmock.NewRows(submissionColumns()))

	list, err := repo.List(context.Background(), 0)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List_CapsLimit(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM contact_submissions`).
		WithArgs(MaxListLimit).
		WillReturnRows(sqlmock.NewRows(submissionColumns()))

	_, err := repo.List(context.Background(), 1000000)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List_QueryError(t *testing.T) {
	repo, mock := setupMockRepo(t)
	mock.ExpectQuery(`SELECT (.+) FROM contact_submissions`).
		WillReturnError(sql.ErrConnDone)

	_, err := repo.List(context.Background(), 10)
	assert.ErrorIs(t, err, sql.ErrConnDone)
}

func TestRepository_Get(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM contact_submissions WHERE id = \$1`).
		WithArgs("id-1").
		WillReturnRows(sqlmock.NewRows(submissionColumns()).
			AddRow("id-1", "Ada", "ada@example.com", "Engines", "", "", "", SourceContactForm, "", nil, PriorityMedium, fixedNow))
	mock.ExpectQuery(`SELECT (.+) FROM contact_submissions WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(submissionColumns()))

	s, err := repo.Get(context.Background(), "id-1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", s.Name)

	_, err = repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSubmissionNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
