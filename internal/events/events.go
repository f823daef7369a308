package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents different types of grading events
type EventType string

const (
	// Attempt events
	EventAttemptStarted   EventType = "attempt.started"
	EventAttemptCompleted EventType = "attempt.completed"

	// Grading events
	EventAnswerGraded EventType = "answer.graded"

	// Review events
	EventMasteryUpdated EventType = "mastery.updated"
)

// GradingEvent is the base event structure published to the grading topic.
type GradingEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Event payloads

type AttemptStartedEvent struct {
	AttemptID uint      `json:"attempt_id"`
	QuizID    uint      `json:"quiz_id"`
	QuizTitle string    `json:"quiz_title"`
	UserID    uint      `json:"user_id"`
	StartedAt time.Time `json:"started_at"`
}

type AttemptCompletedEvent struct {
	AttemptID     uint      `json:"attempt_id"`
	QuizID        uint      `json:"quiz_id"`
	QuizTitle     string    `json:"quiz_title"`
	UserID        uint      `json:"user_id"`
	CompletedAt   time.Time `json:"completed_at"`
	Score         float64   `json:"score"`
	QuestionCount int       `json:"question_count"`
	CorrectCount  int       `json:"correct_count"`
}

type AnswerGradedEvent struct {
	AttemptID    uint      `json:"attempt_id"`
	QuestionID   uint      `json:"question_id"`
	QuestionType string    `json:"question_type"`
	UserID       uint      `json:"user_id"`
	WasCorrect   bool      `json:"was_correct"`
	GradedAt     time.Time `json:"graded_at"`
}

type MasteryUpdatedEvent struct {
	UserID         uint       `json:"user_id"`
	QuestionID     uint       `json:"question_id"`
	SuccessStreak  int        `json:"success_streak"`
	IntervalDays   int        `json:"interval_days"`
	NextReviewDate *time.Time `json:"next_review_date,omitempty"`
}

// Event factory functions

func NewAttemptStartedEvent(attemptID, quizID uint, quizTitle string, userID uint, startedAt time.Time) *GradingEvent {
	return newEvent(EventAttemptStarted, AttemptStartedEvent{
		AttemptID: attemptID,
		QuizID:    quizID,
		QuizTitle: quizTitle,
		UserID:    userID,
		StartedAt: startedAt,
	})
}

func NewAttemptCompletedEvent(attemptID, quizID uint, quizTitle string, userID uint, completedAt time.Time, score float64, questionCount, correctCount int) *GradingEvent {
	return newEvent(EventAttemptCompleted, AttemptCompletedEvent{
		AttemptID:     attemptID,
		QuizID:        quizID,
		QuizTitle:     quizTitle,
		UserID:        userID,
		CompletedAt:   completedAt,
		Score:         score,
		QuestionCount: questionCount,
		CorrectCount:  correctCount,
	})
}

func NewAnswerGradedEvent(attemptID, questionID uint, questionType string, userID uint, wasCorrect bool, gradedAt time.Time) *GradingEvent {
	return newEvent(EventAnswerGraded, AnswerGradedEvent{
		AttemptID:    attemptID,
		QuestionID:   questionID,
		QuestionType: questionType,
		UserID:       userID,
		WasCorrect:   wasCorrect,
		GradedAt:     gradedAt,
	})
}

func NewMasteryUpdatedEvent(userID, questionID uint, streak, intervalDays int, nextReviewDate *time.Time) *GradingEvent {
	return newEvent(EventMasteryUpdated, MasteryUpdatedEvent{
		UserID:         userID,
		QuestionID:     questionID,
		SuccessStreak:  streak,
		IntervalDays:   intervalDays,
		NextReviewDate: nextReviewDate,
	})
}

func newEvent(eventType EventType, data interface{}) *GradingEvent {
	return &GradingEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    "drillbuilder",
		Version:   "1.0",
		Data:      data,
	}
}
