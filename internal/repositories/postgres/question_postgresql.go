package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/jeffholland/drillbuilder/internal/models"
	"github.com/jeffholland/drillbuilder/internal/repositories"
)

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) repositories.QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(ctx context.Context, question *models.Question) error {
	return r.db.WithContext(ctx).Create(question).Error
}

func (r *questionRepository) CreateBatch(ctx context.Context, questions []*models.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(questions).Error
}

func (r *questionRepository) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	var question models.Question
	err := r.db.WithContext(ctx).
		Preload("Components", func(db *gorm.DB) *gorm.DB {
			return db.Order("answer_components.position ASC")
		}).
		First(&question, id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) GetByIDs(ctx context.Context, ids []uint) ([]*models.Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var questions []*models.Question
	err := r.db.WithContext(ctx).
		Preload("Components", func(db *gorm.DB) *gorm.DB {
			return db.Order("answer_components.position ASC")
		}).
		Where("id IN ?", ids).
		Find(&questions).Error
	return questions, err
}

func (r *questionRepository) Update(ctx context.Context, question *models.Question) error {
	return r.db.WithContext(ctx).Save(question).Error
}

func (r *questionRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Question{}, id).Error
}

func (r *questionRepository) GetByQuiz(ctx context.Context, quizID uint) ([]*models.Question, error) {
	var questions []*models.Question
	err := r.db.WithContext(ctx).
		Preload("Components", func(db *gorm.DB) *gorm.DB {
			return db.Order("answer_components.position ASC")
		}).
		Where("quiz_id = ?", quizID).
		Order("position ASC").
		Find(&questions).Error
	return questions, err
}

func (r *questionRepository) NextPosition(ctx context.Context, quizID uint) (int, error) {
	var maxPosition *int
	err := r.db.WithContext(ctx).Model(&models.Question{}).
		Select("MAX(position)").
		Where("quiz_id = ?", quizID).
		Scan(&maxPosition).Error
	if err != nil {
		return 0, err
	}
	if maxPosition == nil {
		return 0, nil
	}
	return *maxPosition + 1, nil
}

// ReplaceComponents swaps a question's answer material atomically so graded
// submissions never observe a half-updated component set.
func (r *questionRepository) ReplaceComponents(ctx context.Context, questionID uint, components []models.AnswerComponent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", questionID).
			Delete(&models.AnswerComponent{}).Error; err != nil {
			return err
		}
		for i := range components {
			components[i].ID = 0
			components[i].QuestionID = questionID
		}
		if len(components) == 0 {
			return nil
		}
		return tx.Create(&components).Error
	})
}
