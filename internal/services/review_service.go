package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jeffholland/drillbuilder/internal/grading"
	"github.com/jeffholland/drillbuilder/internal/models"
	"github.com/jeffholland/drillbuilder/internal/repositories"
)

// DueQuestion pairs a question ready for review with the learner's mastery
// state for it.
type DueQuestion struct {
	Question       LearnerQuestionView `json:"question"`
	QuizID         uint                `json:"quiz_id"`
	SuccessStreak  int                 `json:"success_streak"`
	IntervalDays   int                 `json:"interval_days"`
	NextReviewDate *time.Time          `json:"next_review_date,omitempty"`
}

// ReviewService surfaces the spaced-repetition state: which questions are
// due, how the learner is progressing, and how quizzes perform.
type ReviewService interface {
	GetDueQuestions(ctx context.Context, userID uint, limit int) ([]DueQuestion, error)
	GetMastery(ctx context.Context, userID uint) ([]*models.MasteryRecord, error)
	GetProgress(ctx context.Context, userID uint) (*repositories.UserProgressStats, error)
	GetQuizAccuracy(ctx context.Context, quizID, userID uint) (*repositories.QuizAccuracyStats, error)
}

type reviewService struct {
	repo    repositories.Repository
	quizzes QuizService
	logger  *slog.Logger
	now     func() time.Time
}

func NewReviewService(repo repositories.Repository, quizzes QuizService, logger *slog.Logger) ReviewService {
	return &reviewService{
		repo:    repo,
		quizzes: quizzes,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *reviewService) GetDueQuestions(ctx context.Context, userID uint, limit int) ([]DueQuestion, error) {
	records, err := s.repo.Mastery().GetDue(ctx, userID, s.now(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load due records: %w", err)
	}

	due := make([]DueQuestion, 0, len(records))
	for _, record := range records {
		if record.Question == nil {
			s.logger.Warn("mastery record without question", "record_id", record.ID)
			continue
		}
		// Review sessions have no attempt; seed from the learner instead so
		// each user sees a stable order.
		seed := grading.DisplaySeed(record.UserID, record.QuestionID)
		due = append(due, DueQuestion{
			Question:       ToLearnerView(record.Question, seed),
			QuizID:         record.Question.QuizID,
			SuccessStreak:  record.SuccessStreak,
			IntervalDays:   record.IntervalDays,
			NextReviewDate: record.NextReviewDate,
		})
	}
	return due, nil
}

func (s *reviewService) GetMastery(ctx context.Context, userID uint) ([]*models.MasteryRecord, error) {
	return s.repo.Mastery().GetByUser(ctx, userID)
}

func (s *reviewService) GetProgress(ctx context.Context, userID uint) (*repositories.UserProgressStats, error) {
	return s.repo.Mastery().GetProgressStats(ctx, userID, s.now())
}

func (s *reviewService) GetQuizAccuracy(ctx context.Context, quizID, userID uint) (*repositories.QuizAccuracyStats, error) {
	canAccess, err := s.quizzes.CanAccess(ctx, quizID, userID)
	if err != nil {
		return nil, err
	}
	if !canAccess {
		return nil, ErrQuizAccessDenied
	}
	return s.repo.Quiz().GetAccuracyStats(ctx, quizID)
}
