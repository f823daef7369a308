package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jeffholland/drillbuilder/internal/cache"
	"github.com/jeffholland/drillbuilder/internal/models"
	"github.com/jeffholland/drillbuilder/internal/repositories"
	"github.com/jeffholland/drillbuilder/internal/validator"
)

const quizCacheTTL = 10 * time.Minute

type CreateQuizRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	LanguageID  *uint   `json:"language_id,omitempty"`
	IsPublic    bool    `json:"is_public"`
}

type UpdateQuizRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	LanguageID  *uint   `json:"language_id,omitempty"`
	IsPublic    *bool   `json:"is_public,omitempty"`
}

// QuizService manages quiz lifecycle and visibility. Private quizzes are
// readable by their creator only; public quizzes are readable by anyone.
type QuizService interface {
	Create(ctx context.Context, userID uint, req CreateQuizRequest) (*models.Quiz, error)
	GetByID(ctx context.Context, quizID, userID uint) (*models.Quiz, error)
	GetByIDWithQuestions(ctx context.Context, quizID, userID uint) (*models.Quiz, error)
	Update(ctx context.Context, quizID, userID uint, req UpdateQuizRequest) (*models.Quiz, error)
	Delete(ctx context.Context, quizID, userID uint) error

	List(ctx context.Context, userID uint, filters repositories.QuizFilters) ([]*models.Quiz, int64, error)
	GetByCreator(ctx context.Context, creatorID uint, filters repositories.QuizFilters) ([]*models.Quiz, int64, error)

	Save(ctx context.Context, userID, quizID uint) error
	Unsave(ctx context.Context, userID, quizID uint) error
	GetSaved(ctx context.Context, userID uint) ([]*models.Quiz, error)

	CanAccess(ctx context.Context, quizID, userID uint) (bool, error)
}

type quizService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	logger    *slog.Logger
	validator *validator.Validator
}

func NewQuizService(repo repositories.Repository, cacheService cache.CacheService, logger *slog.Logger, v *validator.Validator) QuizService {
	return &quizService{
		repo:      repo,
		cache:     cacheService,
		logger:    logger,
		validator: v,
	}
}

func (s *quizService) Create(ctx context.Context, userID uint, req CreateQuizRequest) (*models.Quiz, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if req.LanguageID != nil {
		if _, err := s.repo.Language().GetByID(ctx, *req.LanguageID); err != nil {
			if repositories.IsNotFoundError(err) {
				return nil, ErrLanguageNotFound
			}
			return nil, fmt.Errorf("failed to look up language: %w", err)
		}
	}

	quiz := &models.Quiz{
		CreatorID:   userID,
		Title:       req.Title,
		Description: req.Description,
		LanguageID:  req.LanguageID,
		IsPublic:    req.IsPublic,
	}
	if err := s.repo.Quiz().Create(ctx, quiz); err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}

	s.logger.Info("quiz created", "quiz_id", quiz.ID, "creator_id", userID)
	return quiz, nil
}

func (s *quizService) GetByID(ctx context.Context, quizID, userID uint) (*models.Quiz, error) {
	quiz, err := s.repo.Quiz().GetByID(ctx, quizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	if !quiz.IsPublic && quiz.CreatorID != userID {
		return nil, ErrQuizAccessDenied
	}
	return quiz, nil
}

func (s *quizService) GetByIDWithQuestions(ctx context.Context, quizID, userID uint) (*models.Quiz, error) {
	cacheKey := quizQuestionsCacheKey(quizID)

	var quiz models.Quiz
	if err := s.cache.Get(ctx, cacheKey, &quiz); err == nil {
		if !quiz.IsPublic && quiz.CreatorID != userID {
			return nil, ErrQuizAccessDenied
		}
		return &quiz, nil
	}

	loaded, err := s.repo.Quiz().GetByIDWithQuestions(ctx, quizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	if !loaded.IsPublic && loaded.CreatorID != userID {
		return nil, ErrQuizAccessDenied
	}

	if err := s.cache.Set(ctx, cacheKey, loaded, quizCacheTTL); err != nil {
		s.logger.Warn("failed to cache quiz", "quiz_id", quizID, "error", err)
	}
	return loaded, nil
}

func (s *quizService) Update(ctx context.Context, quizID, userID uint, req UpdateQuizRequest) (*models.Quiz, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	quiz, err := s.repo.Quiz().GetByID(ctx, quizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	if quiz.CreatorID != userID {
		return nil, NewPermissionError(userID, quizID, "quiz", "update", "not the creator")
	}

	if req.Title != nil {
		quiz.Title = *req.Title
	}
	if req.Description != nil {
		quiz.Description = req.Description
	}
	if req.LanguageID != nil {
		quiz.LanguageID = req.LanguageID
	}
	if req.IsPublic != nil {
		quiz.IsPublic = *req.IsPublic
	}

	if err := s.repo.Quiz().Update(ctx, quiz); err != nil {
		return nil, fmt.Errorf("failed to update quiz: %w", err)
	}
	s.invalidate(ctx, quizID)
	return quiz, nil
}

func (s *quizService) Delete(ctx context.Context, quizID, userID uint) error {
	quiz, err := s.repo.Quiz().GetByID(ctx, quizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrQuizNotFound
		}
		return fmt.Errorf("failed to get quiz: %w", err)
	}
	if quiz.CreatorID != userID {
		return NewPermissionError(userID, quizID, "quiz", "delete", "not the creator")
	}

	hasAttempts, err := s.repo.Quiz().HasAttempts(ctx, quizID)
	if err != nil {
		return fmt.Errorf("failed to check quiz attempts: %w", err)
	}
	if hasAttempts {
		return ErrQuizNotDeletable
	}

	if err := s.repo.Quiz().Delete(ctx, quizID); err != nil {
		return fmt.Errorf("failed to delete quiz: %w", err)
	}
	s.invalidate(ctx, quizID)
	s.logger.Info("quiz deleted", "quiz_id", quizID, "creator_id", userID)
	return nil
}

// List returns quizzes visible to the user: public ones plus, when the
// creator filter names the caller, their own private ones.
func (s *quizService) List(ctx context.Context, userID uint, filters repositories.QuizFilters) ([]*models.Quiz, int64, error) {
	if filters.CreatorID == nil || *filters.CreatorID != userID {
		public := true
		filters.IsPublic = &public
	}
	return s.repo.Quiz().List(ctx, filters)
}

func (s *quizService) GetByCreator(ctx context.Context, creatorID uint, filters repositories.QuizFilters) ([]*models.Quiz, int64, error) {
	return s.repo.Quiz().GetByCreator(ctx, creatorID, filters)
}

func (s *quizService) Save(ctx context.Context, userID, quizID uint) error {
	if _, err := s.GetByID(ctx, quizID, userID); err != nil {
		return err
	}
	return s.repo.Quiz().SaveForUser(ctx, userID, quizID)
}

func (s *quizService) Unsave(ctx context.Context, userID, quizID uint) error {
	return s.repo.Quiz().UnsaveForUser(ctx, userID, quizID)
}

func (s *quizService) GetSaved(ctx context.Context, userID uint) ([]*models.Quiz, error) {
	return s.repo.Quiz().GetSavedByUser(ctx, userID)
}

func (s *quizService) CanAccess(ctx context.Context, quizID, userID uint) (bool, error) {
	quiz, err := s.repo.Quiz().GetByID(ctx, quizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return false, ErrQuizNotFound
		}
		return false, err
	}
	return quiz.IsPublic || quiz.CreatorID == userID, nil
}

func (s *quizService) invalidate(ctx context.Context, quizID uint) {
	if err := s.cache.Delete(ctx, quizQuestionsCacheKey(quizID)); err != nil {
		s.logger.Warn("failed to invalidate quiz cache", "quiz_id", quizID, "error", err)
	}
}

func quizQuestionsCacheKey(quizID uint) string {
	return fmt.Sprintf("quiz:%d:questions", quizID)
}
