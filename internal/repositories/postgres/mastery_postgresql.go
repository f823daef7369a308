package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jeffholland/drillbuilder/internal/models"
	"github.com/jeffholland/drillbuilder/internal/repositories"
)

type masteryRepository struct {
	db *gorm.DB
}

func NewMasteryRepository(db *gorm.DB) repositories.MasteryRepository {
	return &masteryRepository{db: db}
}

func (r *masteryRepository) Get(ctx context.Context, userID, questionID uint) (*models.MasteryRecord, error) {
	var record models.MasteryRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND question_id = ?", userID, questionID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *masteryRepository) Upsert(ctx context.Context, record *models.MasteryRecord) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"success_streak", "ease_factor", "interval_days", "next_review_date", "updated_at",
		}),
	}).Create(record).Error
}

func (r *masteryRepository) GetByUser(ctx context.Context, userID uint) ([]*models.MasteryRecord, error) {
	var records []*models.MasteryRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("next_review_date ASC NULLS FIRST").
		Preload("Question").
		Find(&records).Error
	return records, err
}

func (r *masteryRepository) GetDue(ctx context.Context, userID uint, asOf time.Time, limit int) ([]*models.MasteryRecord, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("next_review_date IS NULL OR next_review_date <= ?", asOf).
		Order("next_review_date ASC NULLS FIRST").
		Preload("Question").
		Preload("Question.Components", func(db *gorm.DB) *gorm.DB {
			return db.Order("answer_components.position ASC")
		})
	if limit > 0 {
		query = query.Limit(limit)
	}

	var records []*models.MasteryRecord
	err := query.Find(&records).Error
	return records, err
}

func (r *masteryRepository) GetProgressStats(ctx context.Context, userID uint, asOf time.Time) (*repositories.UserProgressStats, error) {
	stats := &repositories.UserProgressStats{}

	row := r.db.WithContext(ctx).Model(&models.UserAnswer{}).
		Select("COUNT(*), COALESCE(SUM(CASE WHEN was_correct THEN 1 ELSE 0 END), 0)").
		Joins("JOIN quiz_attempts ON quiz_attempts.id = user_answers.attempt_id").
		Where("quiz_attempts.user_id = ?", userID).
		Row()
	if err := row.Scan(&stats.TotalAnswered, &stats.TotalCorrect); err != nil {
		return nil, err
	}
	if stats.TotalAnswered > 0 {
		stats.Accuracy = float64(stats.TotalCorrect) / float64(stats.TotalAnswered)
	}

	var tracked int64
	if err := r.db.WithContext(ctx).Model(&models.MasteryRecord{}).
		Where("user_id = ?", userID).
		Count(&tracked).Error; err != nil {
		return nil, err
	}
	stats.TrackedCount = int(tracked)

	var due int64
	if err := r.db.WithContext(ctx).Model(&models.MasteryRecord{}).
		Where("user_id = ?", userID).
		Where("next_review_date IS NULL OR next_review_date <= ?", asOf).
		Count(&due).Error; err != nil {
		return nil, err
	}
	stats.DueCount = int(due)

	return stats, nil
}
