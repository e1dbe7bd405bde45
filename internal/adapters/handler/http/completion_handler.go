package http

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mkurdziel/baseline-habit-tracker/internal/adapters/handler/http/middleware"
	"github.com/mkurdziel/baseline-habit-tracker/internal/core/domain"
	"github.com/mkurdziel/baseline-habit-tracker/internal/core/services"
)

const dateLayout = "2006-01-02"

type CompletionHandler struct {
	svc *services.CompletionService
}

func NewCompletionHandler(svc *services.CompletionService) *CompletionHandler {
	return &CompletionHandler{
		svc: svc,
	}
}

type markCompletionRequest struct {
	Date string `json:"date" binding:"required"`
}

func (h *CompletionHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits/:id/completions")
	{
		habits.POST("", h.Mark)
		habits.GET("", h.List)
		habits.DELETE("/:date", h.Unmark)
	}
}

func handleCompletionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrCompletionInFuture):
		c.JSON(http.StatusBadRequest, gin.H{"error": "completion date cannot be in the future"})

	case errors.Is(err, domain.ErrHabitArchived):
		c.JSON(http.StatusConflict, gin.H{"error": "habit is archived"})

	case errors.Is(err, domain.ErrCompletionExists):
		c.JSON(http.StatusConflict, gin.H{"error": "habit already completed on that date"})

	case errors.Is(err, domain.ErrCompletionNotFound), errors.Is(err, domain.ErrHabitNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})

	default:
		log.Printf("[ERROR] Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// Mark godoc
//
//	@Summary	Mark a habit complete on a date
//	@Tags		completions
//	@Accept		json
//	@Produce	json
//	@Param		id		path	string					true	"Habit ID"
//	@Param		request	body	markCompletionRequest	true	"Civil date, YYYY-MM-DD"
//	@Success	201		{object}	domain.Completion
//	@Security	BearerAuth
//	@Router		/habits/{id}/completions [post]
func (h *CompletionHandler) Mark(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req markCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected YYYY-MM-DD"})
		return
	}

	completion, err := h.svc.Mark(c.Request.Context(), c.Param("id"), userID, date)
	if err != nil {
		handleCompletionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, completion)
}

// Unmark godoc
//
//	@Summary	Remove a completion
//	@Tags		completions
//	@Param		id		path	string	true	"Habit ID"
//	@Param		date	path	string	true	"Civil date, YYYY-MM-DD"
//	@Success	204
//	@Security	BearerAuth
//	@Router		/habits/{id}/completions/{date} [delete]
func (h *CompletionHandler) Unmark(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	date, err := time.Parse(dateLayout, c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected YYYY-MM-DD"})
		return
	}

	if err := h.svc.Unmark(c.Request.Context(), c.Param("id"), userID, date); err != nil {
		handleCompletionError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// List godoc
//
//	@Summary	List completions in a date range
//	@Tags		completions
//	@Produce	json
//	@Param		id		path	string	true	"Habit ID"
//	@Param		from	query	string	false	"Start date, YYYY-MM-DD (default: 30 days ago)"
//	@Param		to		query	string	false	"End date, YYYY-MM-DD (default: today)"
//	@Success	200	{array}	domain.Completion
//	@Security	BearerAuth
//	@Router		/habits/{id}/completions [get]
func (h *CompletionHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var from, to time.Time
	var err error

	if f := c.Query("from"); f != "" {
		if from, err = time.Parse(dateLayout, f); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date, expected YYYY-MM-DD"})
			return
		}
	}
	if t := c.Query("to"); t != "" {
		if to, err = time.Parse(dateLayout, t); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date, expected YYYY-MM-DD"})
			return
		}
	}

	list, err := h.svc.ListRange(c.Request.Context(), c.Param("id"), userID, from, to)
	if err != nil {
		handleCompletionError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}
