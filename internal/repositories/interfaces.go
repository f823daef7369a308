package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jeffholland/drillbuilder/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type QuizFilters struct {
	CreatorID  *uint  `json:"creator_id"`
	LanguageID *uint  `json:"language_id"`
	IsPublic   *bool  `json:"is_public"`
	Search     string `json:"search"`
	Limit      int    `json:"limit"`
	Offset     int    `json:"offset"`
	SortBy     string `json:"sort_by"`    // "created_at", "title"
	SortOrder  string `json:"sort_order"` // "asc", "desc"
}

type AttemptFilters struct {
	QuizID    *uint `json:"quiz_id"`
	Completed *bool `json:"completed"`
	Limit     int   `json:"limit"`
	Offset    int   `json:"offset"`
}

// ===== SHARED STATISTICS STRUCTS =====

type QuizAccuracyStats struct {
	QuizID            uint    `json:"quiz_id"`
	TotalAttempts     int     `json:"total_attempts"`
	CompletedAttempts int     `json:"completed_attempts"`
	AverageScore      float64 `json:"average_score"`
}

type UserProgressStats struct {
	TotalAnswered int     `json:"total_answered"`
	TotalCorrect  int     `json:"total_correct"`
	Accuracy      float64 `json:"accuracy"`
	TrackedCount  int     `json:"tracked_count"`
	DueCount      int     `json:"due_count"`
}

// ===== REPOSITORY INTERFACES =====

type QuizRepository interface {
	Create(ctx context.Context, quiz *models.Quiz) error
	GetByID(ctx context.Context, id uint) (*models.Quiz, error)
	GetByIDWithQuestions(ctx context.Context, id uint) (*models.Quiz, error)
	Update(ctx context.Context, quiz *models.Quiz) error
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, filters QuizFilters) ([]*models.Quiz, int64, error)
	GetByCreator(ctx context.Context, creatorID uint, filters QuizFilters) ([]*models.Quiz, int64, error)

	SaveForUser(ctx context.Context, userID, quizID uint) error
	UnsaveForUser(ctx context.Context, userID, quizID uint) error
	GetSavedByUser(ctx context.Context, userID uint) ([]*models.Quiz, error)

	GetAccuracyStats(ctx context.Context, quizID uint) (*QuizAccuracyStats, error)
	HasAttempts(ctx context.Context, quizID uint) (bool, error)
}

type QuestionRepository interface {
	Create(ctx context.Context, question *models.Question) error
	CreateBatch(ctx context.Context, questions []*models.Question) error
	GetByID(ctx context.Context, id uint) (*models.Question, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*models.Question, error)
	Update(ctx context.Context, question *models.Question) error
	Delete(ctx context.Context, id uint) error

	GetByQuiz(ctx context.Context, quizID uint) ([]*models.Question, error)
	NextPosition(ctx context.Context, quizID uint) (int, error)
	ReplaceComponents(ctx context.Context, questionID uint, components []models.AnswerComponent) error
}

type AttemptRepository interface {
	Create(ctx context.Context, attempt *models.QuizAttempt) error
	GetByID(ctx context.Context, id uint) (*models.QuizAttempt, error)
	GetByIDWithAnswers(ctx context.Context, id uint) (*models.QuizAttempt, error)
	Update(ctx context.Context, attempt *models.QuizAttempt) error

	GetByUser(ctx context.Context, userID uint, filters AttemptFilters) ([]*models.QuizAttempt, int64, error)
	GetActive(ctx context.Context, userID, quizID uint) (*models.QuizAttempt, error)

	CreateAnswer(ctx context.Context, answer *models.UserAnswer) error
	GetAnswers(ctx context.Context, attemptID uint) ([]*models.UserAnswer, error)
	HasAnswer(ctx context.Context, attemptID, questionID uint) (bool, error)
}

type MasteryRepository interface {
	Get(ctx context.Context, userID, questionID uint) (*models.MasteryRecord, error)
	Upsert(ctx context.Context, record *models.MasteryRecord) error

	GetByUser(ctx context.Context, userID uint) ([]*models.MasteryRecord, error)
	GetDue(ctx context.Context, userID uint, asOf time.Time, limit int) ([]*models.MasteryRecord, error)
	GetProgressStats(ctx context.Context, userID uint, asOf time.Time) (*UserProgressStats, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type LanguageRepository interface {
	List(ctx context.Context) ([]*models.Language, error)
	GetByID(ctx context.Context, id uint) (*models.Language, error)
	GetByCode(ctx context.Context, code string) (*models.Language, error)
}

// Repository aggregates all repositories and scopes transactional work.
type Repository interface {
	Quiz() QuizRepository
	Question() QuestionRepository
	Attempt() AttemptRepository
	Mastery() MasteryRepository
	User() UserRepository
	Language() LanguageRepository

	// WithTransaction runs fn against a Repository bound to one transaction.
	WithTransaction(ctx context.Context, fn func(Repository) error) error
}

// IsNotFoundError reports whether err is the driver's missing-row error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
