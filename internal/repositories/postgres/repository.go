package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/jeffholland/drillbuilder/internal/repositories"
)

type repository struct {
	db       *gorm.DB
	quiz     repositories.QuizRepository
	question repositories.QuestionRepository
	attempt  repositories.AttemptRepository
	mastery  repositories.MasteryRepository
	user     repositories.UserRepository
	language repositories.LanguageRepository
}

// New wires all postgres-backed repositories over one gorm handle.
func New(db *gorm.DB) repositories.Repository {
	return &repository{
		db:       db,
		quiz:     NewQuizRepository(db),
		question: NewQuestionRepository(db),
		attempt:  NewAttemptRepository(db),
		mastery:  NewMasteryRepository(db),
		user:     NewUserRepository(db),
		language: NewLanguageRepository(db),
	}
}

func (r *repository) Quiz() repositories.QuizRepository         { return r.quiz }
func (r *repository) Question() repositories.QuestionRepository { return r.question }
func (r *repository) Attempt() repositories.AttemptRepository   { return r.attempt }
func (r *repository) Mastery() repositories.MasteryRepository   { return r.mastery }
func (r *repository) User() repositories.UserRepository         { return r.user }
func (r *repository) Language() repositories.LanguageRepository { return r.language }

func (r *repository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}
