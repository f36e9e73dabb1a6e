// Package http serves the read-only ops dashboard: leaderboards over the
// same aggregation engine the bot uses, behind a single JWT-guarded login.
package http

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"traderops/internal/usecases"
)

type Handler struct {
	auth   *usecases.AuthUsecase
	stats  *usecases.StatsService
	db     *sql.DB
	logger *slog.Logger
}

func NewHandler(auth *usecases.AuthUsecase, stats *usecases.StatsService, db *sql.DB, logger *slog.Logger) *Handler {
	return &Handler{auth: auth, stats: stats, db: db, logger: logger}
}

func SetupRoutes(r *gin.Engine, h *Handler, mw *Middleware) {
	r.POST("/api/login", h.Login)
	r.GET("/api/health", h.Health)

	protected := r.Group("/api", mw.AuthRequired(), mw.RateLimitPerClient(rate.Limit(5), 10))
	protected.GET("/rating/workers", h.WorkersRating)
	protected.GET("/rating/teams", h.TeamsRating)
	protected.GET("/stats/global", h.GlobalStats)
}

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password required"})
		return
	}

	token, err := h.auth.Login(req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *Handler) Health(c *gin.Context) {
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) WorkersRating(c *gin.Context) {
	p := periodParam(c)
	rows, err := h.stats.WorkersRating(c.Request.Context(), p)
	if err != nil {
		h.logger.Error("workers rating", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"period": p, "rating": rows})
}

func (h *Handler) TeamsRating(c *gin.Context) {
	p := periodParam(c)
	rows, err := h.stats.TeamsRating(c.Request.Context(), p)
	if err != nil {
		h.logger.Error("teams rating", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"period": p, "rating": rows})
}

func (h *Handler) GlobalStats(c *gin.Context) {
	global, err := h.stats.Global(c.Request.Context())
	if err != nil {
		h.logger.Error("global stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, global)
}

func periodParam(c *gin.Context) usecases.Period {
	p := usecases.Period(c.DefaultQuery("period", string(usecases.PeriodAll)))
	if !p.Valid() {
		return usecases.PeriodAll
	}
	return p
}
