package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jeffholland/drillbuilder/internal/repositories"
	"github.com/jeffholland/drillbuilder/internal/services"
	"github.com/jeffholland/drillbuilder/internal/utils"
)

type AttemptHandler struct {
	BaseHandler
	attemptService services.AttemptService
}

func NewAttemptHandler(attemptService services.AttemptService, logger utils.Logger) *AttemptHandler {
	return &AttemptHandler{
		BaseHandler:    NewBaseHandler(logger),
		attemptService: attemptService,
	}
}

type startAttemptRequest struct {
	QuizID uint `json:"quiz_id" binding:"required"`
}

type submitAnswerRequest struct {
	QuestionID uint        `json:"question_id" binding:"required"`
	Response   interface{} `json:"response"`
}

// StartAttempt opens an attempt on a quiz, or returns the caller's
// still-open attempt for it.
func (h *AttemptHandler) StartAttempt(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req startAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Starting attempt", "quiz_id", req.QuizID)

	attempt, err := h.attemptService.Start(c.Request.Context(), userID, req.QuizID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, attempt)
}

// GetAttempt retrieves an attempt with its graded answers; owner only.
func (h *AttemptHandler) GetAttempt(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	attempt, err := h.attemptService.GetByID(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, attempt)
}

// GetAttemptQuestions returns the attempt's questions in learner form,
// ordered and shuffled the same way on every call.
func (h *AttemptHandler) GetAttemptQuestions(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	questions, err := h.attemptService.GetQuestions(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, questions)
}

// SubmitAnswer grades one question inside the attempt. The response field
// is passed through untyped; the grader owns interpretation and malformed
// payloads grade as incorrect rather than erroring.
func (h *AttemptHandler) SubmitAnswer(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req submitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Submitting answer", "attempt_id", id, "question_id", req.QuestionID)

	result, err := h.attemptService.SubmitAnswer(c.Request.Context(), id, req.QuestionID, userID, req.Response)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// FinishAttempt closes the attempt and returns its score summary.
func (h *AttemptHandler) FinishAttempt(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Finishing attempt", "attempt_id", id)

	summary, err := h.attemptService.Finish(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// ListAttempts lists the caller's attempts, optionally filtered by quiz
// and completion state.
func (h *AttemptHandler) ListAttempts(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	page := h.parseIntQuery(c, "page", 1)
	size := h.parseIntQuery(c, "size", 20)
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}

	filters := repositories.AttemptFilters{
		Limit:  size,
		Offset: (page - 1) * size,
	}
	if quizID := h.parseIntQuery(c, "quiz_id", 0); quizID > 0 {
		id := uint(quizID)
		filters.QuizID = &id
	}
	if completedStr := c.Query("completed"); completedStr != "" {
		completed := completedStr == "true"
		filters.Completed = &completed
	}

	attempts, total, err := h.attemptService.ListByUser(c.Request.Context(), userID, filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ListResponse{Items: attempts, Total: total})
}
