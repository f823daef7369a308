package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/jeffholland/drillbuilder/internal/models"
	"github.com/jeffholland/drillbuilder/internal/repositories"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

type languageRepository struct {
	db *gorm.DB
}

func NewLanguageRepository(db *gorm.DB) repositories.LanguageRepository {
	return &languageRepository{db: db}
}

func (r *languageRepository) List(ctx context.Context) ([]*models.Language, error) {
	var languages []*models.Language
	err := r.db.WithContext(ctx).Order("name ASC").Find(&languages).Error
	return languages, err
}

func (r *languageRepository) GetByID(ctx context.Context, id uint) (*models.Language, error) {
	var language models.Language
	if err := r.db.WithContext(ctx).First(&language, id).Error; err != nil {
		return nil, err
	}
	return &language, nil
}

func (r *languageRepository) GetByCode(ctx context.Context, code string) (*models.Language, error) {
	var language models.Language
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&language).Error
	if err != nil {
		return nil, err
	}
	return &language, nil
}
