package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jeffholland/drillbuilder/internal/services"
	"github.com/jeffholland/drillbuilder/internal/utils"
)

const defaultDueLimit = 20

type ReviewHandler struct {
	BaseHandler
	reviewService services.ReviewService
}

func NewReviewHandler(reviewService services.ReviewService, logger utils.Logger) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler:   NewBaseHandler(logger),
		reviewService: reviewService,
	}
}

// GetDueQuestions returns the caller's review queue: every tracked
// question whose next review date has arrived.
func (h *ReviewHandler) GetDueQuestions(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	limit := h.parseIntQuery(c, "limit", defaultDueLimit)
	if limit < 1 || limit > 100 {
		limit = defaultDueLimit
	}

	due, err := h.reviewService.GetDueQuestions(c.Request.Context(), userID, limit)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, due)
}

// GetMastery lists the caller's per-question scheduling state.
func (h *ReviewHandler) GetMastery(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	records, err := h.reviewService.GetMastery(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

// GetProgress summarizes the caller's answer history and review load.
func (h *ReviewHandler) GetProgress(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	stats, err := h.reviewService.GetProgress(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetQuizAccuracy reports attempt statistics for one quiz.
func (h *ReviewHandler) GetQuizAccuracy(c *gin.Context) {
	quizID := h.parseIDParam(c, "id")
	if quizID == 0 {
		return
	}
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	stats, err := h.reviewService.GetQuizAccuracy(c.Request.Context(), quizID, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
