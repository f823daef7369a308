package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/jeffholland/drillbuilder/internal/models"
	"github.com/jeffholland/drillbuilder/internal/repositories"
)

type quizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) repositories.QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) Create(ctx context.Context, quiz *models.Quiz) error {
	return r.db.WithContext(ctx).Create(quiz).Error
}

func (r *quizRepository) GetByID(ctx context.Context, id uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := r.db.WithContext(ctx).
		Preload("Language").
		First(&quiz, id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) GetByIDWithQuestions(ctx context.Context, id uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := r.db.WithContext(ctx).
		Preload("Language").
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.position ASC")
		}).
		Preload("Questions.Components", func(db *gorm.DB) *gorm.DB {
			return db.Order("answer_components.position ASC")
		}).
		First(&quiz, id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) Update(ctx context.Context, quiz *models.Quiz) error {
	return r.db.WithContext(ctx).Save(quiz).Error
}

func (r *quizRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Quiz{}, id).Error
}

func (r *quizRepository) List(ctx context.Context, filters repositories.QuizFilters) ([]*models.Quiz, int64, error) {
	query := r.applyFilters(r.db.WithContext(ctx).Model(&models.Quiz{}), filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var quizzes []*models.Quiz
	err := applyPagination(query, filters).
		Preload("Language").
		Find(&quizzes).Error
	if err != nil {
		return nil, 0, err
	}
	return quizzes, total, nil
}

func (r *quizRepository) GetByCreator(ctx context.Context, creatorID uint, filters repositories.QuizFilters) ([]*models.Quiz, int64, error) {
	filters.CreatorID = &creatorID
	return r.List(ctx, filters)
}

func (r *quizRepository) SaveForUser(ctx context.Context, userID, quizID uint) error {
	saved := models.SavedQuiz{UserID: userID, QuizID: quizID}
	return r.db.WithContext(ctx).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		FirstOrCreate(&saved).Error
}

func (r *quizRepository) UnsaveForUser(ctx context.Context, userID, quizID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Delete(&models.SavedQuiz{}).Error
}

func (r *quizRepository) GetSavedByUser(ctx context.Context, userID uint) ([]*models.Quiz, error) {
	var quizzes []*models.Quiz
	err := r.db.WithContext(ctx).
		Joins("JOIN saved_quizzes ON saved_quizzes.quiz_id = quizzes.id").
		Where("saved_quizzes.user_id = ?", userID).
		Order("saved_quizzes.created_at DESC").
		Preload("Language").
		Find(&quizzes).Error
	return quizzes, err
}

func (r *quizRepository) GetAccuracyStats(ctx context.Context, quizID uint) (*repositories.QuizAccuracyStats, error) {
	stats := repositories.QuizAccuracyStats{QuizID: quizID}

	row := r.db.WithContext(ctx).Model(&models.QuizAttempt{}).
		Select("COUNT(*) AS total, COUNT(completed_at) AS completed, COALESCE(AVG(score), 0) AS average").
		Where("quiz_id = ?", quizID).
		Row()
	if err := row.Scan(&stats.TotalAttempts, &stats.CompletedAttempts, &stats.AverageScore); err != nil {
		return nil, fmt.Errorf("failed to compute quiz accuracy stats: %w", err)
	}
	return &stats, nil
}

func (r *quizRepository) HasAttempts(ctx context.Context, quizID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.QuizAttempt{}).
		Where("quiz_id = ?", quizID).
		Count(&count).Error
	return count > 0, err
}

func (r *quizRepository) applyFilters(query *gorm.DB, filters repositories.QuizFilters) *gorm.DB {
	if filters.CreatorID != nil {
		query = query.Where("creator_id = ?", *filters.CreatorID)
	}
	if filters.LanguageID != nil {
		query = query.Where("language_id = ?", *filters.LanguageID)
	}
	if filters.IsPublic != nil {
		query = query.Where("is_public = ?", *filters.IsPublic)
	}
	if filters.Search != "" {
		query = query.Where("title ILIKE ?", "%"+filters.Search+"%")
	}
	return query
}

func applyPagination(query *gorm.DB, filters repositories.QuizFilters) *gorm.DB {
	sortBy := filters.SortBy
	switch sortBy {
	case "title", "created_at":
	default:
		sortBy = "created_at"
	}
	order := "DESC"
	if filters.SortOrder == "asc" {
		order = "ASC"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, order))

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}
	return query
}
