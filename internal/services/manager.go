package services

import (
	"log/slog"

	"github.com/jeffholland/drillbuilder/internal/cache"
	"github.com/jeffholland/drillbuilder/internal/events"
	"github.com/jeffholland/drillbuilder/internal/repositories"
	"github.com/jeffholland/drillbuilder/internal/validator"
)

// ServiceManager bundles every service so wiring happens once.
type ServiceManager interface {
	Quiz() QuizService
	Question() QuestionService
	Attempt() AttemptService
	Grading() GradingService
	Review() ReviewService
	Export() ExportService
	Language() LanguageService
}

type serviceManager struct {
	quiz     QuizService
	question QuestionService
	attempt  AttemptService
	grading  GradingService
	review   ReviewService
	export   ExportService
	language LanguageService
}

func NewServiceManager(
	repo repositories.Repository,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	logger *slog.Logger,
	v *validator.Validator,
) ServiceManager {
	quiz := NewQuizService(repo, cacheService, logger, v)
	grading := NewGradingService(logger)

	return &serviceManager{
		quiz:     quiz,
		question: NewQuestionService(repo, quiz, logger, v),
		attempt:  NewAttemptService(repo, quiz, grading, publisher, logger),
		grading:  grading,
		review:   NewReviewService(repo, quiz, logger),
		export:   NewExportService(repo, logger),
		language: NewLanguageService(repo),
	}
}

func (m *serviceManager) Quiz() QuizService         { return m.quiz }
func (m *serviceManager) Question() QuestionService { return m.question }
func (m *serviceManager) Attempt() AttemptService   { return m.attempt }
func (m *serviceManager) Grading() GradingService   { return m.grading }
func (m *serviceManager) Review() ReviewService     { return m.review }
func (m *serviceManager) Export() ExportService     { return m.export }
func (m *serviceManager) Language() LanguageService { return m.language }
