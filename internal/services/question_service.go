package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jeffholland/drillbuilder/internal/models"
	"github.com/jeffholland/drillbuilder/internal/repositories"
	"github.com/jeffholland/drillbuilder/internal/validator"
)

type ComponentInput struct {
	// mcq_option
	Text      string  `json:"text,omitempty" validate:"omitempty,max=500"`
	ImageURL  *string `json:"image_url,omitempty" validate:"omitempty,url"`
	IsCorrect bool    `json:"is_correct,omitempty"`

	// cloze_blank
	CorrectAnswer    string   `json:"correct_answer,omitempty" validate:"omitempty,max=200"`
	AlternateAnswers []string `json:"alternate_answers,omitempty" validate:"omitempty,dive,min=1,max=200"`
	CharPosition     *int     `json:"char_position,omitempty"`

	// word_match_pair
	LeftWord      string  `json:"left_word,omitempty" validate:"omitempty,max=200"`
	RightWord     string  `json:"right_word,omitempty" validate:"omitempty,max=200"`
	LeftImageURL  *string `json:"left_image_url,omitempty" validate:"omitempty,url"`
	RightImageURL *string `json:"right_image_url,omitempty" validate:"omitempty,url"`
}

type CreateQuestionRequest struct {
	Type              string  `json:"type" validate:"required,question_type"`
	PromptText        string  `json:"prompt_text" validate:"required,min=1,max=2000"`
	PromptImageURL    *string `json:"prompt_image_url,omitempty" validate:"omitempty,url"`
	AnswerExplanation *string `json:"answer_explanation,omitempty" validate:"omitempty,max=2000"`

	AllowMultiple  bool `json:"allow_multiple"`
	RandomizeOrder bool `json:"randomize_order"`

	FullText      *string `json:"full_text,omitempty" validate:"omitempty,max=4000"`
	ShowWordBank  bool    `json:"show_word_bank"`
	CaseSensitive bool    `json:"case_sensitive"`

	MatchType      string `json:"match_type,omitempty" validate:"omitempty,match_type"`
	RandomizeRight *bool  `json:"randomize_right,omitempty"`

	Components []ComponentInput `json:"components" validate:"required,min=1"`
}

type UpdateQuestionRequest struct {
	PromptText        *string `json:"prompt_text,omitempty" validate:"omitempty,min=1,max=2000"`
	PromptImageURL    *string `json:"prompt_image_url,omitempty" validate:"omitempty,url"`
	AnswerExplanation *string `json:"answer_explanation,omitempty" validate:"omitempty,max=2000"`

	AllowMultiple  *bool `json:"allow_multiple,omitempty"`
	RandomizeOrder *bool `json:"randomize_order,omitempty"`

	FullText      *string `json:"full_text,omitempty" validate:"omitempty,max=4000"`
	ShowWordBank  *bool   `json:"show_word_bank,omitempty"`
	CaseSensitive *bool   `json:"case_sensitive,omitempty"`

	MatchType      *string `json:"match_type,omitempty" validate:"omitempty,match_type"`
	RandomizeRight *bool   `json:"randomize_right,omitempty"`

	Components []ComponentInput `json:"components,omitempty"`
}

// QuestionService manages authoring of questions and their answer
// components. Only the quiz creator may modify its questions.
type QuestionService interface {
	Create(ctx context.Context, quizID, userID uint, req CreateQuestionRequest) (*models.Question, error)
	GetByID(ctx context.Context, questionID, userID uint) (*models.Question, error)
	GetLearnerView(ctx context.Context, questionID, userID uint, seed int64) (*LearnerQuestionView, error)
	Update(ctx context.Context, questionID, userID uint, req UpdateQuestionRequest) (*models.Question, error)
	Delete(ctx context.Context, questionID, userID uint) error
	GetByQuiz(ctx context.Context, quizID, userID uint) ([]*models.Question, error)
}

type questionService struct {
	repo      repositories.Repository
	quizzes   QuizService
	logger    *slog.Logger
	validator *validator.Validator
}

func NewQuestionService(repo repositories.Repository, quizzes QuizService, logger *slog.Logger, v *validator.Validator) QuestionService {
	return &questionService{
		repo:      repo,
		quizzes:   quizzes,
		logger:    logger,
		validator: v,
	}
}

func (s *questionService) Create(ctx context.Context, quizID, userID uint, req CreateQuestionRequest) (*models.Question, error) {
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
		return nil, NewPermissionError(userID, quizID, "quiz", "add_question", "not the creator")
	}

	position, err := s.repo.Question().NextPosition(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute question position: %w", err)
	}

	question := &models.Question{
		QuizID:            quizID,
		Type:              models.QuestionType(req.Type),
		PromptText:        req.PromptText,
		PromptImageURL:    req.PromptImageURL,
		AnswerExplanation: req.AnswerExplanation,
		Position:          position,
		AllowMultiple:     req.AllowMultiple,
		RandomizeOrder:    req.RandomizeOrder,
		FullText:          req.FullText,
		ShowWordBank:      req.ShowWordBank,
		CaseSensitive:     req.CaseSensitive,
		MatchType:         models.MatchType(req.MatchType),
		RandomizeRight:    true,
	}
	if req.RandomizeRight != nil {
		question.RandomizeRight = *req.RandomizeRight
	}

	components, err := buildComponents(question.Type, req.Components)
	if err != nil {
		return nil, err
	}
	question.Components = components

	if err := s.validator.Question().ValidateQuestion(question); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrQuestionInvalidContent, err)
	}

	if err := s.repo.Question().Create(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	s.logger.Info("question created",
		"question_id", question.ID,
		"quiz_id", quizID,
		"type", question.Type)
	return question, nil
}

func (s *questionService) GetByID(ctx context.Context, questionID, userID uint) (*models.Question, error) {
	question, err := s.loadQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}

	canAccess, err := s.quizzes.CanAccess(ctx, question.QuizID, userID)
	if err != nil {
		return nil, err
	}
	if !canAccess {
		return nil, ErrQuestionAccessDenied
	}
	return question, nil
}

func (s *questionService) GetLearnerView(ctx context.Context, questionID, userID uint, seed int64) (*LearnerQuestionView, error) {
	question, err := s.GetByID(ctx, questionID, userID)
	if err != nil {
		return nil, err
	}
	view := ToLearnerView(question, seed)
	return &view, nil
}

func (s *questionService) Update(ctx context.Context, questionID, userID uint, req UpdateQuestionRequest) (*models.Question, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	question, err := s.loadOwnedQuestion(ctx, questionID, userID, "update")
	if err != nil {
		return nil, err
	}

	if req.PromptText != nil {
		question.PromptText = *req.PromptText
	}
	if req.PromptImageURL != nil {
		question.PromptImageURL = req.PromptImageURL
	}
	if req.AnswerExplanation != nil {
		question.AnswerExplanation = req.AnswerExplanation
	}
	if req.AllowMultiple != nil {
		question.AllowMultiple = *req.AllowMultiple
	}
	if req.RandomizeOrder != nil {
		question.RandomizeOrder = *req.RandomizeOrder
	}
	if req.FullText != nil {
		question.FullText = req.FullText
	}
	if req.ShowWordBank != nil {
		question.ShowWordBank = *req.ShowWordBank
	}
	if req.CaseSensitive != nil {
		question.CaseSensitive = *req.CaseSensitive
	}
	if req.MatchType != nil {
		question.MatchType = models.MatchType(*req.MatchType)
	}
	if req.RandomizeRight != nil {
		question.RandomizeRight = *req.RandomizeRight
	}

	replaceComponents := req.Components != nil
	if replaceComponents {
		components, err := buildComponents(question.Type, req.Components)
		if err != nil {
			return nil, err
		}
		question.Components = components
	}

	if err := s.validator.Question().ValidateQuestion(question); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrQuestionInvalidContent, err)
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if replaceComponents {
			if err := tx.Question().ReplaceComponents(ctx, question.ID, question.Components); err != nil {
				return fmt.Errorf("failed to replace components: %w", err)
			}
		}
		stored := *question
		stored.Components = nil
		return tx.Question().Update(ctx, &stored)
	})
	if err != nil {
		return nil, err
	}

	return s.loadQuestion(ctx, questionID)
}

func (s *questionService) Delete(ctx context.Context, questionID, userID uint) error {
	question, err := s.loadOwnedQuestion(ctx, questionID, userID, "delete")
	if err != nil {
		return err
	}

	if err := s.repo.Question().Delete(ctx, question.ID); err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	s.logger.Info("question deleted", "question_id", questionID, "quiz_id", question.QuizID)
	return nil
}

func (s *questionService) GetByQuiz(ctx context.Context, quizID, userID uint) ([]*models.Question, error) {
	canAccess, err := s.quizzes.CanAccess(ctx, quizID, userID)
	if err != nil {
		return nil, err
	}
	if !canAccess {
		return nil, ErrQuizAccessDenied
	}
	return s.repo.Question().GetByQuiz(ctx, quizID)
}

func (s *questionService) loadQuestion(ctx context.Context, questionID uint) (*models.Question, error) {
	question, err := s.repo.Question().GetByID(ctx, questionID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return question, nil
}

func (s *questionService) loadOwnedQuestion(ctx context.Context, questionID, userID uint, action string) (*models.Question, error) {
	question, err := s.loadQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}

	quiz, err := s.repo.Quiz().GetByID(ctx, question.QuizID)
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	if quiz.CreatorID != userID {
		return nil, NewPermissionError(userID, questionID, "question", action, "not the quiz creator")
	}
	return question, nil
}

// buildComponents converts authoring input into position-indexed components
// of the variant the question type owns.
func buildComponents(questionType models.QuestionType, inputs []ComponentInput) ([]models.AnswerComponent, error) {
	componentType := models.ComponentTypeFor(questionType)
	components := make([]models.AnswerComponent, 0, len(inputs))

	for i, input := range inputs {
		component := models.AnswerComponent{
			Type:          componentType,
			Position:      i,
			Text:          input.Text,
			ImageURL:      input.ImageURL,
			IsCorrect:     input.IsCorrect,
			CorrectAnswer: input.CorrectAnswer,
			CharPosition:  input.CharPosition,
			LeftWord:      input.LeftWord,
			RightWord:     input.RightWord,
			LeftImageURL:  input.LeftImageURL,
			RightImageURL: input.RightImageURL,
		}
		if len(input.AlternateAnswers) > 0 {
			if err := component.SetAlternates(input.AlternateAnswers); err != nil {
				return nil, fmt.Errorf("failed to encode alternates for component %d: %w", i, err)
			}
		}
		components = append(components, component)
	}
	return components, nil
}
