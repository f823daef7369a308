package services

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jeffholland/drillbuilder/internal/grading"
	"github.com/jeffholland/drillbuilder/internal/models"
	"github.com/jeffholland/drillbuilder/internal/srs"
)

// GradingService turns one submission into a verdict and the learner's next
// review state. It owns no persistence: callers load the prior mastery
// record (or pass nil on first contact) and store what comes back.
type GradingService interface {
	Grade(question *models.Question, response any, prior *models.MasteryRecord, userID uint) (*GradeResult, error)
}

// GradeResult bundles the grading verdict with the advanced mastery record.
type GradeResult struct {
	Outcome grading.Outcome      `json:"outcome"`
	Mastery models.MasteryRecord `json:"mastery"`
}

type gradingService struct {
	logger *slog.Logger
	now    func() time.Time
}

func NewGradingService(logger *slog.Logger) GradingService {
	return &gradingService{
		logger: logger,
		now:    time.Now,
	}
}

// NewGradingServiceWithClock pins the clock, for tests.
func NewGradingServiceWithClock(logger *slog.Logger, now func() time.Time) GradingService {
	return &gradingService{logger: logger, now: now}
}

func (s *gradingService) Grade(question *models.Question, response any, prior *models.MasteryRecord, userID uint) (*GradeResult, error) {
	outcome, err := grading.Grade(question, response)
	if err != nil {
		s.logger.Error("grading dispatch failed",
			"question_id", question.ID,
			"question_type", question.Type,
			"error", err)
		return nil, fmt.Errorf("%w: %s", ErrQuestionInvalidType, question.Type)
	}

	record := srs.NewRecord(userID, question.ID)
	if prior != nil {
		record = *prior
	}
	record = srs.Advance(record, outcome.IsCorrect, s.now())

	s.logger.Debug("graded submission",
		"question_id", question.ID,
		"question_type", question.Type,
		"user_id", userID,
		"was_correct", outcome.IsCorrect,
		"streak", record.SuccessStreak,
		"interval_days", record.IntervalDays)

	return &GradeResult{Outcome: outcome, Mastery: record}, nil
}
