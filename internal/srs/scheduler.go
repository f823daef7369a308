// Package srs implements the spaced-repetition schedule for mastery
// records. The functions are pure: the caller supplies the current date and
// persists the returned record, so scheduling stays trivially testable.
package srs

import (
	"math"
	"time"

	"github.com/jeffholland/drillbuilder/internal/models"
)

const (
	// DefaultEaseFactor seeds new records.
	DefaultEaseFactor = 2.5
	// MinEaseFactor is the floor ease decays toward on repeated misses.
	MinEaseFactor = 1.3
	// easePenalty is subtracted from ease on each incorrect answer.
	easePenalty = 0.1
)

// NewRecord returns the initial mastery state for a (user, question) pair.
func NewRecord(userID, questionID uint) models.MasteryRecord {
	return models.MasteryRecord{
		UserID:     userID,
		QuestionID: questionID,
		EaseFactor: DefaultEaseFactor,
	}
}

// Advance applies one review outcome and returns the updated record.
//
// A correct answer extends the streak and grows the interval: 1 day for the
// first success, 6 days for the second, then the previous interval scaled by
// the ease factor. Ease never increases. An incorrect answer resets the
// streak and interval to 1 day and decays ease toward its floor.
func Advance(rec models.MasteryRecord, wasCorrect bool, today time.Time) models.MasteryRecord {
	if wasCorrect {
		rec.SuccessStreak++
		switch {
		case rec.SuccessStreak <= 1:
			rec.IntervalDays = 1
		case rec.SuccessStreak == 2:
			rec.IntervalDays = 6
		default:
			scaled := int(math.Round(float64(rec.IntervalDays) * rec.EaseFactor))
			if scaled < 1 {
				scaled = 1
			}
			rec.IntervalDays = scaled
		}
	} else {
		rec.SuccessStreak = 0
		rec.IntervalDays = 1
		rec.EaseFactor = math.Max(MinEaseFactor, rec.EaseFactor-easePenalty)
	}

	next := today.AddDate(0, 0, rec.IntervalDays)
	rec.NextReviewDate = &next
	return rec
}

// IsDue reports whether the record should be reviewed on the given date.
// A record that has never been reviewed is always due.
func IsDue(rec models.MasteryRecord, today time.Time) bool {
	if rec.NextReviewDate == nil {
		return true
	}
	return !rec.NextReviewDate.After(today)
}
