package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/jeffholland/drillbuilder/internal/models"
	"github.com/jeffholland/drillbuilder/internal/repositories"
)

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) repositories.AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(ctx context.Context, attempt *models.QuizAttempt) error {
	return r.db.WithContext(ctx).Create(attempt).Error
}

func (r *attemptRepository) GetByID(ctx context.Context, id uint) (*models.QuizAttempt, error) {
	var attempt models.QuizAttempt
	err := r.db.WithContext(ctx).
		Preload("Quiz").
		First(&attempt, id).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) GetByIDWithAnswers(ctx context.Context, id uint) (*models.QuizAttempt, error) {
	var attempt models.QuizAttempt
	err := r.db.WithContext(ctx).
		Preload("Quiz").
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("user_answers.created_at ASC")
		}).
		Preload("Answers.Question").
		First(&attempt, id).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) Update(ctx context.Context, attempt *models.QuizAttempt) error {
	return r.db.WithContext(ctx).Save(attempt).Error
}

func (r *attemptRepository) GetByUser(ctx context.Context, userID uint, filters repositories.AttemptFilters) ([]*models.QuizAttempt, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.QuizAttempt{}).
		Where("user_id = ?", userID)

	if filters.QuizID != nil {
		query = query.Where("quiz_id = ?", *filters.QuizID)
	}
	if filters.Completed != nil {
		if *filters.Completed {
			query = query.Where("completed_at IS NOT NULL")
		} else {
			query = query.Where("completed_at IS NULL")
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var attempts []*models.QuizAttempt
	err := query.Order("started_at DESC").
		Preload("Quiz").
		Find(&attempts).Error
	if err != nil {
		return nil, 0, err
	}
	return attempts, total, nil
}

func (r *attemptRepository) GetActive(ctx context.Context, userID, quizID uint) (*models.QuizAttempt, error) {
	var attempt models.QuizAttempt
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND quiz_id = ? AND completed_at IS NULL", userID, quizID).
		Order("started_at DESC").
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) CreateAnswer(ctx context.Context, answer *models.UserAnswer) error {
	return r.db.WithContext(ctx).Create(answer).Error
}

func (r *attemptRepository) GetAnswers(ctx context.Context, attemptID uint) ([]*models.UserAnswer, error) {
	var answers []*models.UserAnswer
	err := r.db.WithContext(ctx).
		Where("attempt_id = ?", attemptID).
		Order("created_at ASC").
		Find(&answers).Error
	return answers, err
}

func (r *attemptRepository) HasAnswer(ctx context.Context, attemptID, questionID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.UserAnswer{}).
		Where("attempt_id = ? AND question_id = ?", attemptID, questionID).
		Count(&count).Error
	return count > 0, err
}
