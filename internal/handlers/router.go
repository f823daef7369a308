package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/jeffholland/drillbuilder/internal/services"
	"github.com/jeffholland/drillbuilder/internal/utils"
)

type HandlerManager struct {
	quizHandler     *QuizHandler
	questionHandler *QuestionHandler
	attemptHandler  *AttemptHandler
	reviewHandler   *ReviewHandler
	languageHandler *LanguageHandler
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		quizHandler:     NewQuizHandler(serviceManager.Quiz(), serviceManager.Export(), logger),
		questionHandler: NewQuestionHandler(serviceManager.Question(), serviceManager.Quiz(), logger),
		attemptHandler:  NewAttemptHandler(serviceManager.Attempt(), logger),
		reviewHandler:   NewReviewHandler(serviceManager.Review(), logger),
		languageHandler: NewLanguageHandler(serviceManager.Language(), logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", HealthCheck)

	v1 := router.Group("/api/v1")
	v1.Use(IdentityMiddleware())
	{
		quizzes := v1.Group("/quizzes")
		{
			quizzes.POST("", hm.quizHandler.CreateQuiz)
			quizzes.GET("", hm.quizHandler.ListQuizzes)
			quizzes.GET("/saved", hm.quizHandler.GetSavedQuizzes)
			quizzes.GET("/:id", hm.quizHandler.GetQuiz)
			quizzes.GET("/:id/details", hm.quizHandler.GetQuizWithQuestions)
			quizzes.PUT("/:id", hm.quizHandler.UpdateQuiz)
			quizzes.DELETE("/:id", hm.quizHandler.DeleteQuiz)

			quizzes.POST("/:id/save", hm.quizHandler.SaveQuiz)
			quizzes.DELETE("/:id/save", hm.quizHandler.UnsaveQuiz)

			quizzes.GET("/:id/export", hm.quizHandler.ExportQuiz)
			quizzes.GET("/:id/export/results", hm.quizHandler.ExportQuizResults)
			quizzes.GET("/:id/stats", hm.reviewHandler.GetQuizAccuracy)

			// Question authoring lives under the owning quiz.
			quizzes.POST("/:id/questions", hm.questionHandler.CreateQuestion)
			quizzes.GET("/:id/questions", hm.questionHandler.GetQuizQuestions)

			quizzes.GET("/creator/:creator_id", hm.quizHandler.GetQuizzesByCreator)
		}

		questions := v1.Group("/questions")
		{
			questions.GET("/:id", hm.questionHandler.GetQuestion)
			questions.PUT("/:id", hm.questionHandler.UpdateQuestion)
			questions.DELETE("/:id", hm.questionHandler.DeleteQuestion)
		}

		attempts := v1.Group("/attempts")
		{
			attempts.POST("/start", hm.attemptHandler.StartAttempt)
			attempts.GET("", hm.attemptHandler.ListAttempts)
			attempts.GET("/:id", hm.attemptHandler.GetAttempt)
			attempts.GET("/:id/questions", hm.attemptHandler.GetAttemptQuestions)
			attempts.POST("/:id/answers", hm.attemptHandler.SubmitAnswer)
			attempts.POST("/:id/finish", hm.attemptHandler.FinishAttempt)
		}

		review := v1.Group("/review")
		{
			review.GET("/due", hm.reviewHandler.GetDueQuestions)
			review.GET("/mastery", hm.reviewHandler.GetMastery)
			review.GET("/progress", hm.reviewHandler.GetProgress)
		}

		languages := v1.Group("/languages")
		{
			languages.GET("", hm.languageHandler.ListLanguages)
			languages.GET("/:code", hm.languageHandler.GetLanguageByCode)
		}
	}
}
