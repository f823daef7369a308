package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jeffholland/drillbuilder/internal/grading"
	"github.com/jeffholland/drillbuilder/internal/services"
	"github.com/jeffholland/drillbuilder/internal/utils"
)

type QuestionHandler struct {
	BaseHandler
	questionService services.QuestionService
	quizService     services.QuizService
}

func NewQuestionHandler(
	questionService services.QuestionService,
	quizService services.QuizService,
	logger utils.Logger,
) *QuestionHandler {
	return &QuestionHandler{
		BaseHandler:     NewBaseHandler(logger),
		questionService: questionService,
		quizService:     quizService,
	}
}

// CreateQuestion appends a question to a quiz; creator only.
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	quizID := h.parseIDParam(c, "id")
	if quizID == 0 {
		return
	}
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Creating question", "quiz_id", quizID)

	var req services.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	question, err := h.questionService.Create(c.Request.Context(), quizID, userID, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, question)
}

// GetQuizQuestions lists a quiz's questions. The creator gets the full
// authoring model; everyone else gets the learner projection with the
// answer material stripped.
func (h *QuestionHandler) GetQuizQuestions(c *gin.Context) {
	quizID := h.parseIDParam(c, "id")
	if quizID == 0 {
		return
	}
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	quiz, err := h.quizService.GetByID(c.Request.Context(), quizID, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	questions, err := h.questionService.GetByQuiz(c.Request.Context(), quizID, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	if quiz.CreatorID == userID {
		c.JSON(http.StatusOK, questions)
		return
	}

	views := make([]services.LearnerQuestionView, 0, len(questions))
	for _, q := range questions {
		seed := grading.DisplaySeed(userID, q.ID)
		views = append(views, services.ToLearnerView(q, seed))
	}
	c.JSON(http.StatusOK, views)
}

// GetQuestion retrieves one question, projected by the caller's role.
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	question, err := h.questionService.GetByID(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	quiz, err := h.quizService.GetByID(c.Request.Context(), question.QuizID, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	if quiz.CreatorID == userID {
		c.JSON(http.StatusOK, question)
		return
	}

	view := services.ToLearnerView(question, grading.DisplaySeed(userID, question.ID))
	c.JSON(http.StatusOK, view)
}

// UpdateQuestion updates question content; quiz creator only.
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Updating question", "question_id", id)

	var req services.UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	question, err := h.questionService.Update(c.Request.Context(), id, userID, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, question)
}

// DeleteQuestion removes a question; quiz creator only.
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Deleting question", "question_id", id)

	if err := h.questionService.Delete(c.Request.Context(), id, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Question deleted"})
}
