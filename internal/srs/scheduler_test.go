package srs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffholland/drillbuilder/internal/models"
)

var today = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func TestNewRecord(t *testing.T) {
	rec := NewRecord(7, 42)

	assert.Equal(t, uint(7), rec.UserID)
	assert.Equal(t, uint(42), rec.QuestionID)
	assert.Equal(t, 0, rec.SuccessStreak)
	assert.Equal(t, 0, rec.IntervalDays)
	assert.Equal(t, DefaultEaseFactor, rec.EaseFactor)
	assert.Nil(t, rec.NextReviewDate)
}

func TestAdvance_CorrectProgression(t *testing.T) {
	rec := NewRecord(1, 1)

	rec = Advance(rec, true, today)
	assert.Equal(t, 1, rec.SuccessStreak)
	assert.Equal(t, 1, rec.IntervalDays)

	rec = Advance(rec, true, today)
	assert.Equal(t, 2, rec.SuccessStreak)
	assert.Equal(t, 6, rec.IntervalDays)

	// Third success scales the previous interval by ease: round(6 * 2.5).
	rec = Advance(rec, true, today)
	assert.Equal(t, 3, rec.SuccessStreak)
	assert.Equal(t, 15, rec.IntervalDays)

	rec = Advance(rec, true, today)
	assert.Equal(t, 4, rec.SuccessStreak)
	assert.Equal(t, 38, rec.IntervalDays)

	assert.Equal(t, DefaultEaseFactor, rec.EaseFactor, "ease never increases on success")
}

func TestAdvance_IncorrectResets(t *testing.T) {
	rec := models.MasteryRecord{
		UserID:        1,
		QuestionID:    1,
		SuccessStreak: 4,
		IntervalDays:  38,
		EaseFactor:    2.5,
	}

	rec = Advance(rec, false, today)

	assert.Equal(t, 0, rec.SuccessStreak)
	assert.Equal(t, 1, rec.IntervalDays)
	assert.InDelta(t, 2.4, rec.EaseFactor, 1e-9)
	require.NotNil(t, rec.NextReviewDate)
	assert.Equal(t, today.AddDate(0, 0, 1), *rec.NextReviewDate)
}

func TestAdvance_EaseFloor(t *testing.T) {
	rec := NewRecord(1, 1)
	rec.EaseFactor = 1.35

	rec = Advance(rec, false, today)
	assert.Equal(t, MinEaseFactor, rec.EaseFactor)

	rec = Advance(rec, false, today)
	assert.Equal(t, MinEaseFactor, rec.EaseFactor, "ease stays at the floor")
}

func TestAdvance_NextReviewDate(t *testing.T) {
	tests := []struct {
		name       string
		rec        models.MasteryRecord
		wasCorrect bool
		wantDays   int
	}{
		{"first success", models.MasteryRecord{EaseFactor: 2.5}, true, 1},
		{"second success", models.MasteryRecord{SuccessStreak: 1, IntervalDays: 1, EaseFactor: 2.5}, true, 6},
		{"scaled success", models.MasteryRecord{SuccessStreak: 2, IntervalDays: 6, EaseFactor: 2.0}, true, 12},
		{"miss", models.MasteryRecord{SuccessStreak: 5, IntervalDays: 30, EaseFactor: 2.5}, false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Advance(tt.rec, tt.wasCorrect, today)
			assert.Equal(t, tt.wantDays, got.IntervalDays)
			require.NotNil(t, got.NextReviewDate)
			assert.Equal(t, today.AddDate(0, 0, tt.wantDays), *got.NextReviewDate)
		})
	}
}

func TestAdvance_ScaledIntervalNeverBelowOne(t *testing.T) {
	rec := models.MasteryRecord{SuccessStreak: 2, IntervalDays: 0, EaseFactor: 1.3}

	rec = Advance(rec, true, today)

	assert.Equal(t, 1, rec.IntervalDays)
}

func TestIsDue(t *testing.T) {
	tomorrow := today.AddDate(0, 0, 1)
	yesterday := today.AddDate(0, 0, -1)

	assert.True(t, IsDue(models.MasteryRecord{}, today), "never-reviewed records are due")
	assert.True(t, IsDue(models.MasteryRecord{NextReviewDate: &today}, today))
	assert.True(t, IsDue(models.MasteryRecord{NextReviewDate: &yesterday}, today))
	assert.False(t, IsDue(models.MasteryRecord{NextReviewDate: &tomorrow}, today))
}
