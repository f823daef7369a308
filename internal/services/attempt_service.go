package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/datatypes"

	"github.com/jeffholland/drillbuilder/internal/events"
	"github.com/jeffholland/drillbuilder/internal/grading"
	"github.com/jeffholland/drillbuilder/internal/models"
	"github.com/jeffholland/drillbuilder/internal/repositories"
)

// SubmitAnswerResult is what the learner sees right after answering one
// question: the verdict plus the explanation the author attached, if any.
type SubmitAnswerResult struct {
	QuestionID     uint                 `json:"question_id"`
	IsCorrect      bool                 `json:"is_correct"`
	Feedback       string               `json:"feedback"`
	Details        map[string]any       `json:"details,omitempty"`
	Explanation    *string              `json:"explanation,omitempty"`
	NextReviewDate *time.Time           `json:"next_review_date,omitempty"`
	Mastery        models.MasteryRecord `json:"-"`
}

// AttemptSummary is returned when an attempt finishes.
type AttemptSummary struct {
	AttemptID     uint    `json:"attempt_id"`
	QuizID        uint    `json:"quiz_id"`
	Score         float64 `json:"score"`
	QuestionCount int     `json:"question_count"`
	CorrectCount  int     `json:"correct_count"`
	AnsweredCount int     `json:"answered_count"`
}

// AttemptService runs a learner through a quiz: start an attempt, grade one
// submission at a time, and close the attempt with a score.
type AttemptService interface {
	Start(ctx context.Context, userID, quizID uint) (*models.QuizAttempt, error)
	GetByID(ctx context.Context, attemptID, userID uint) (*models.QuizAttempt, error)
	GetQuestions(ctx context.Context, attemptID, userID uint) ([]LearnerQuestionView, error)
	SubmitAnswer(ctx context.Context, attemptID, questionID, userID uint, response any) (*SubmitAnswerResult, error)
	Finish(ctx context.Context, attemptID, userID uint) (*AttemptSummary, error)
	ListByUser(ctx context.Context, userID uint, filters repositories.AttemptFilters) ([]*models.QuizAttempt, int64, error)
}

type attemptService struct {
	repo      repositories.Repository
	quizzes   QuizService
	grader    GradingService
	publisher events.EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewAttemptService(repo repositories.Repository, quizzes QuizService, grader GradingService, publisher events.EventPublisher, logger *slog.Logger) AttemptService {
	return &attemptService{
		repo:      repo,
		quizzes:   quizzes,
		grader:    grader,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Start returns the user's open attempt for the quiz if one exists,
// otherwise it creates a new one.
func (s *attemptService) Start(ctx context.Context, userID, quizID uint) (*models.QuizAttempt, error) {
	quiz, err := s.quizzes.GetByID(ctx, quizID, userID)
	if err != nil {
		return nil, err
	}

	if existing, err := s.repo.Attempt().GetActive(ctx, userID, quizID); err == nil {
		return existing, nil
	} else if !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to look up active attempt: %w", err)
	}

	attempt := &models.QuizAttempt{
		UserID:    userID,
		QuizID:    quizID,
		StartedAt: s.now(),
	}
	if err := s.repo.Attempt().Create(ctx, attempt); err != nil {
		return nil, fmt.Errorf("failed to create attempt: %w", err)
	}

	s.publish(ctx, events.NewAttemptStartedEvent(attempt.ID, quizID, quiz.Title, userID, attempt.StartedAt))
	s.logger.Info("attempt started", "attempt_id", attempt.ID, "quiz_id", quizID, "user_id", userID)
	return attempt, nil
}

func (s *attemptService) GetByID(ctx context.Context, attemptID, userID uint) (*models.QuizAttempt, error) {
	attempt, err := s.repo.Attempt().GetByIDWithAnswers(ctx, attemptID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}
	if attempt.UserID != userID {
		return nil, ErrAttemptAccessDenied
	}
	return attempt, nil
}

// GetQuestions returns the attempt's questions in learner form, shuffled
// deterministically per (attempt, question).
func (s *attemptService) GetQuestions(ctx context.Context, attemptID, userID uint) ([]LearnerQuestionView, error) {
	attempt, err := s.loadOwnAttempt(ctx, attemptID, userID)
	if err != nil {
		return nil, err
	}

	questions, err := s.repo.Question().GetByQuiz(ctx, attempt.QuizID)
	if err != nil {
		return nil, fmt.Errorf("failed to load quiz questions: %w", err)
	}

	views := make([]LearnerQuestionView, 0, len(questions))
	for _, q := range questions {
		seed := grading.DisplaySeed(attempt.ID, q.ID)
		views = append(views, ToLearnerView(q, seed))
	}
	return views, nil
}

// SubmitAnswer grades one question inside an open attempt. The graded answer
// and the advanced mastery record are stored in one transaction; each
// question may be answered once per attempt.
func (s *attemptService) SubmitAnswer(ctx context.Context, attemptID, questionID, userID uint, response any) (*SubmitAnswerResult, error) {
	attempt, err := s.loadOwnAttempt(ctx, attemptID, userID)
	if err != nil {
		return nil, err
	}
	if attempt.IsCompleted() {
		return nil, ErrAttemptAlreadyCompleted
	}

	question, err := s.repo.Question().GetByID(ctx, questionID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	if question.QuizID != attempt.QuizID {
		return nil, NewBusinessRuleError("question_outside_attempt",
			"question does not belong to the attempted quiz",
			map[string]interface{}{"question_id": questionID, "quiz_id": attempt.QuizID})
	}

	answered, err := s.repo.Attempt().HasAnswer(ctx, attemptID, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to check prior answer: %w", err)
	}
	if answered {
		return nil, ErrAnswerAlreadySubmitted
	}

	prior, err := s.repo.Mastery().Get(ctx, userID, questionID)
	if err != nil {
		if !repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("failed to load mastery record: %w", err)
		}
		prior = nil
	}

	result, err := s.grader.Grade(question, response, prior, userID)
	if err != nil {
		return nil, err
	}

	answer, err := buildUserAnswer(attemptID, questionID, response, result.Outcome)
	if err != nil {
		return nil, err
	}

	mastery := result.Mastery
	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Attempt().CreateAnswer(ctx, answer); err != nil {
			return fmt.Errorf("failed to store answer: %w", err)
		}
		if err := tx.Mastery().Upsert(ctx, &mastery); err != nil {
			return fmt.Errorf("failed to store mastery record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	gradedAt := s.now()
	s.publish(ctx, events.NewAnswerGradedEvent(attemptID, questionID, string(question.Type), userID, result.Outcome.IsCorrect, gradedAt))
	s.publish(ctx, events.NewMasteryUpdatedEvent(userID, questionID, mastery.SuccessStreak, mastery.IntervalDays, mastery.NextReviewDate))

	return &SubmitAnswerResult{
		QuestionID:     questionID,
		IsCorrect:      result.Outcome.IsCorrect,
		Feedback:       result.Outcome.Feedback,
		Details:        result.Outcome.Details,
		Explanation:    question.AnswerExplanation,
		NextReviewDate: mastery.NextReviewDate,
		Mastery:        mastery,
	}, nil
}

// Finish closes the attempt and scores it as the fraction of the quiz's
// questions answered correctly; unanswered questions count against it.
func (s *attemptService) Finish(ctx context.Context, attemptID, userID uint) (*AttemptSummary, error) {
	attempt, err := s.repo.Attempt().GetByIDWithAnswers(ctx, attemptID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}
	if attempt.UserID != userID {
		return nil, ErrAttemptAccessDenied
	}
	if attempt.IsCompleted() {
		return nil, ErrAttemptAlreadyCompleted
	}

	questions, err := s.repo.Question().GetByQuiz(ctx, attempt.QuizID)
	if err != nil {
		return nil, fmt.Errorf("failed to load quiz questions: %w", err)
	}

	correct := 0
	for _, answer := range attempt.Answers {
		if answer.WasCorrect {
			correct++
		}
	}

	score := 0.0
	if len(questions) > 0 {
		score = float64(correct) / float64(len(questions))
	}

	completedAt := s.now()
	attempt.CompletedAt = &completedAt
	attempt.Score = &score
	if err := s.repo.Attempt().Update(ctx, attempt); err != nil {
		return nil, fmt.Errorf("failed to complete attempt: %w", err)
	}

	quizTitle := ""
	if attempt.Quiz != nil {
		quizTitle = attempt.Quiz.Title
	}
	s.publish(ctx, events.NewAttemptCompletedEvent(attempt.ID, attempt.QuizID, quizTitle, userID, completedAt, score, len(questions), correct))
	s.logger.Info("attempt completed",
		"attempt_id", attempt.ID,
		"user_id", userID,
		"score", score,
		"correct", correct,
		"questions", len(questions))

	return &AttemptSummary{
		AttemptID:     attempt.ID,
		QuizID:        attempt.QuizID,
		Score:         score,
		QuestionCount: len(questions),
		CorrectCount:  correct,
		AnsweredCount: len(attempt.Answers),
	}, nil
}

func (s *attemptService) ListByUser(ctx context.Context, userID uint, filters repositories.AttemptFilters) ([]*models.QuizAttempt, int64, error) {
	return s.repo.Attempt().GetByUser(ctx, userID, filters)
}

func (s *attemptService) loadOwnAttempt(ctx context.Context, attemptID, userID uint) (*models.QuizAttempt, error) {
	attempt, err := s.repo.Attempt().GetByID(ctx, attemptID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}
	if attempt.UserID != userID {
		return nil, ErrAttemptAccessDenied
	}
	return attempt, nil
}

// publish sends an event without failing the request; grading outcomes are
// already durable by the time events go out.
func (s *attemptService) publish(ctx context.Context, event *events.GradingEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishGradingEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", "event_type", event.Type, "error", err)
	}
}

func buildUserAnswer(attemptID, questionID uint, response any, outcome grading.Outcome) (*models.UserAnswer, error) {
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return nil, fmt.Errorf("failed to encode response: %w", err)
	}

	answer := &models.UserAnswer{
		AttemptID:  attemptID,
		QuestionID: questionID,
		Response:   datatypes.JSON(responseJSON),
		WasCorrect: outcome.IsCorrect,
		Feedback:   outcome.Feedback,
	}

	if len(outcome.Details) > 0 {
		detailsJSON, err := json.Marshal(outcome.Details)
		if err != nil {
			return nil, fmt.Errorf("failed to encode grading details: %w", err)
		}
		answer.Details = datatypes.JSON(detailsJSON)
	}
	return answer, nil
}
