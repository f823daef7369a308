package services

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffholland/drillbuilder/internal/models"
	"github.com/jeffholland/drillbuilder/internal/srs"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestGradingService() GradingService {
	return NewGradingServiceWithClock(slog.Default(), func() time.Time { return fixedNow })
}

func clozeQuestionFixture() *models.Question {
	full := "El ___ duerme."
	return &models.Question{
		ID:       11,
		Type:     models.QuestionTypeCloze,
		FullText: &full,
		Components: []models.AnswerComponent{
			{Type: models.ComponentTypeClozeBlank, Position: 0, CorrectAnswer: "perro"},
		},
	}
}

func TestGradingService_FirstContactCreatesRecord(t *testing.T) {
	svc := newTestGradingService()

	result, err := svc.Grade(clozeQuestionFixture(), map[string]any{"0": "perro"}, nil, 7)

	require.NoError(t, err)
	assert.True(t, result.Outcome.IsCorrect)
	assert.Equal(t, uint(7), result.Mastery.UserID)
	assert.Equal(t, uint(11), result.Mastery.QuestionID)
	assert.Equal(t, 1, result.Mastery.SuccessStreak)
	assert.Equal(t, 1, result.Mastery.IntervalDays)
	assert.Equal(t, srs.DefaultEaseFactor, result.Mastery.EaseFactor)
	require.NotNil(t, result.Mastery.NextReviewDate)
	assert.Equal(t, fixedNow.AddDate(0, 0, 1), *result.Mastery.NextReviewDate)
}

func TestGradingService_PriorRecordAdvances(t *testing.T) {
	svc := newTestGradingService()
	prior := &models.MasteryRecord{
		UserID:        7,
		QuestionID:    11,
		SuccessStreak: 2,
		IntervalDays:  6,
		EaseFactor:    2.5,
	}

	result, err := svc.Grade(clozeQuestionFixture(), map[string]any{"0": "perro"}, prior, 7)

	require.NoError(t, err)
	assert.Equal(t, 3, result.Mastery.SuccessStreak)
	assert.Equal(t, 15, result.Mastery.IntervalDays)
}

func TestGradingService_IncorrectResetsStreak(t *testing.T) {
	svc := newTestGradingService()
	prior := &models.MasteryRecord{
		UserID:        7,
		QuestionID:    11,
		SuccessStreak: 3,
		IntervalDays:  15,
		EaseFactor:    2.5,
	}

	result, err := svc.Grade(clozeQuestionFixture(), map[string]any{"0": "gato"}, prior, 7)

	require.NoError(t, err)
	assert.False(t, result.Outcome.IsCorrect)
	assert.Equal(t, 0, result.Mastery.SuccessStreak)
	assert.Equal(t, 1, result.Mastery.IntervalDays)
	assert.InDelta(t, 2.4, result.Mastery.EaseFactor, 1e-9)
}

func TestGradingService_MalformedResponseStillAdvances(t *testing.T) {
	svc := newTestGradingService()

	result, err := svc.Grade(clozeQuestionFixture(), []any{"not", "a", "map"}, nil, 7)

	require.NoError(t, err)
	assert.False(t, result.Outcome.IsCorrect)
	assert.Equal(t, "Invalid response format", result.Outcome.Feedback)
	assert.Equal(t, 0, result.Mastery.SuccessStreak)
	assert.Equal(t, 1, result.Mastery.IntervalDays)
}

func TestGradingService_UnknownTypeIsTheOnlyError(t *testing.T) {
	svc := newTestGradingService()
	q := &models.Question{ID: 1, Type: "essay"}

	result, err := svc.Grade(q, "anything", nil, 7)

	assert.Nil(t, result)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrQuestionInvalidType)
}
