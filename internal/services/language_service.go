package services

import (
	"context"
	"fmt"

	"github.com/jeffholland/drillbuilder/internal/models"
	"github.com/jeffholland/drillbuilder/internal/repositories"
)

// LanguageService exposes the language catalog quizzes are tagged with.
type LanguageService interface {
	List(ctx context.Context) ([]*models.Language, error)
	GetByCode(ctx context.Context, code string) (*models.Language, error)
}

type languageService struct {
	repo repositories.Repository
}

func NewLanguageService(repo repositories.Repository) LanguageService {
	return &languageService{repo: repo}
}

func (s *languageService) List(ctx context.Context) ([]*models.Language, error) {
	return s.repo.Language().List(ctx)
}

func (s *languageService) GetByCode(ctx context.Context, code string) (*models.Language, error) {
	language, err := s.repo.Language().GetByCode(ctx, code)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrLanguageNotFound
		}
		return nil, fmt.Errorf("failed to get language: %w", err)
	}
	return language, nil
}
