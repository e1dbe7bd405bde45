package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkurdziel/baseline-habit-tracker/internal/adapters/handler/http/middleware"
	"github.com/mkurdziel/baseline-habit-tracker/internal/core/domain"
	"github.com/mkurdziel/baseline-habit-tracker/internal/core/services"
)

type HabitHandler struct {
	svc *services.HabitService
}

func NewHabitHandler(svc *services.HabitService) *HabitHandler {
	return &HabitHandler{
		svc: svc,
	}
}

type createHabitRequest struct {
	Name          string `json:"name" binding:"required"`
	Description   string `json:"description"`
	Color         string `json:"color"`
	Icon          string `json:"icon"`
	FrequencyType string `json:"frequency_type"`
	WeeklyTarget  int    `json:"weekly_target"`
	IntervalDays  int    `json:"interval_days"`
	Weekdays      []int  `json:"weekdays"`
}

type updateHabitRequest struct {
	Name          string `json:"name" binding:"required"`
	Description   string `json:"description"`
	Color         string `json:"color"`
	Icon          string `json:"icon"`
	FrequencyType string `json:"frequency_type"`
	WeeklyTarget  int    `json:"weekly_target"`
	IntervalDays  int    `json:"interval_days"`
	Weekdays      []int  `json:"weekdays"`
	Version       int    `json:"version"`
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.POST("", h.Create)
		habits.GET("", h.List)
		habits.GET("/:id", h.Get)
		habits.PUT("/:id", h.Update)
		habits.DELETE("/:id", h.Delete)
		habits.POST("/:id/archive", h.Archive)
		habits.POST("/:id/restore", h.Restore)
	}
}

func isValidationError(err error) bool {
	return errors.Is(err, domain.ErrHabitNameEmpty) ||
		errors.Is(err, domain.ErrHabitNameTooLong) ||
		errors.Is(err, domain.ErrHabitDescTooLong) ||
		errors.Is(err, domain.ErrInvalidColor) ||
		errors.Is(err, domain.ErrInvalidFrequency) ||
		errors.Is(err, domain.ErrInvalidWeekdays) ||
		errors.Is(err, domain.ErrInvalidWeeklyTarget) ||
		errors.Is(err, domain.ErrInvalidInterval)
}

func handleHabitError(c *gin.Context, err error) {
	switch {
	case isValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrHabitArchived):
		c.JSON(http.StatusConflict, gin.H{"error": "habit is archived"})

	case errors.Is(err, domain.ErrHabitConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "version conflict",
			"message": "Habit has been modified elsewhere. Refresh and retry.",
		})

	case errors.Is(err, domain.ErrHabitNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})

	default:
		log.Printf("[ERROR] Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// Create godoc
//
//	@Summary	Create a habit
//	@Tags		habits
//	@Accept		json
//	@Produce	json
//	@Param		request	body	createHabitRequest	true	"Habit definition"
//	@Success	201		{object}	domain.Habit
//	@Security	BearerAuth
//	@Router		/habits [post]
func (h *HabitHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req createHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit, err := h.svc.Create(c.Request.Context(), services.CreateHabitInput{
		UserID:        userID,
		Name:          req.Name,
		Description:   req.Description,
		Color:         req.Color,
		Icon:          req.Icon,
		FrequencyType: req.FrequencyType,
		WeeklyTarget:  req.WeeklyTarget,
		IntervalDays:  req.IntervalDays,
		Weekdays:      req.Weekdays,
	})
	if err != nil {
		handleHabitError(c, err)
		return
	}

	c.JSON(http.StatusCreated, habit)
}

// List godoc
//
//	@Summary	List all habits, archived included
//	@Tags		habits
//	@Produce	json
//	@Success	200	{array}	domain.Habit
//	@Security	BearerAuth
//	@Router		/habits [get]
func (h *HabitHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	list, err := h.svc.ListByUserID(c.Request.Context(), userID)
	if err != nil {
		handleHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *HabitHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	habit, err := h.svc.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}

func (h *HabitHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req updateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit, err := h.svc.Update(c.Request.Context(), services.UpdateHabitInput{
		ID:            c.Param("id"),
		UserID:        userID,
		Name:          req.Name,
		Description:   req.Description,
		Color:         req.Color,
		Icon:          req.Icon,
		FrequencyType: req.FrequencyType,
		WeeklyTarget:  req.WeeklyTarget,
		IntervalDays:  req.IntervalDays,
		Weekdays:      req.Weekdays,
		Version:       req.Version,
	})
	if err != nil {
		handleHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}

func (h *HabitHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		handleHabitError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *HabitHandler) Archive(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	if err := h.svc.Archive(c.Request.Context(), c.Param("id"), userID); err != nil {
		handleHabitError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *HabitHandler) Restore(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	if err := h.svc.Restore(c.Request.Context(), c.Param("id"), userID); err != nil {
		handleHabitError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
