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

type StatsHandler struct {
	svc *services.StatsService
}

func NewStatsHandler(svc *services.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	stats := r.Group("/stats")
	{
		stats.GET("/overview", h.Overview)
		stats.GET("/habits/:id", h.HabitAnalytics)
		stats.GET("/heatmap", h.Heatmap)
	}
}

func handleStatsError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrHabitNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
		return
	}
	log.Printf("[ERROR] Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve statistics"})
}

// Overview godoc
//
//	@Summary	Streaks and completion rates for every active habit
//	@Tags		stats
//	@Produce	json
//	@Success	200	{object}	domain.Overview
//	@Security	BearerAuth
//	@Router		/stats/overview [get]
func (h *StatsHandler) Overview(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	overview, err := h.svc.Overview(c.Request.Context(), userID)
	if err != nil {
		handleStatsError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}

// HabitAnalytics godoc
//
//	@Summary	Streaks, rate and histograms for one habit
//	@Tags		stats
//	@Produce	json
//	@Param		id	path	string	true	"Habit ID"
//	@Success	200	{object}	domain.HabitAnalytics
//	@Security	BearerAuth
//	@Router		/stats/habits/{id} [get]
func (h *StatsHandler) HabitAnalytics(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	analytics, err := h.svc.HabitAnalytics(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleStatsError(c, err)
		return
	}

	c.JSON(http.StatusOK, analytics)
}

// Heatmap godoc
//
//	@Summary	Per-day completion counts across all active habits
//	@Tags		stats
//	@Produce	json
//	@Param		from	query	string	false	"Start date, YYYY-MM-DD (default: 365 days ago)"
//	@Param		to		query	string	false	"End date, YYYY-MM-DD (default: today)"
//	@Success	200	{object}	domain.Heatmap
//	@Security	BearerAuth
//	@Router		/stats/heatmap [get]
func (h *StatsHandler) Heatmap(c *gin.Context) {
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

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from cannot be after to"})
		return
	}

	heatmap, err := h.svc.Heatmap(c.Request.Context(), userID, from, to)
	if err != nil {
		handleStatsError(c, err)
		return
	}

	c.JSON(http.StatusOK, heatmap)
}
