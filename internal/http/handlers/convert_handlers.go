package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/image2pdf/internal/config"
	"github.com/yourusername/image2pdf/internal/http/middleware"
	"github.com/yourusername/image2pdf/internal/models"
	"github.com/yourusername/image2pdf/internal/services/collector"
	"github.com/yourusername/image2pdf/internal/services/convert"
	"github.com/yourusername/image2pdf/internal/services/session"
)

const imagesParamKey = "images"

type ConvertHandler struct {
	pipeline *convert.Pipeline
	store    session.Store
	logger   *zap.Logger
	config   *config.Config
}

func NewConvertHandler(
	pipeline *convert.Pipeline,
	store session.Store,
	logger *zap.Logger,
	config *config.Config,
) *ConvertHandler {
	return &ConvertHandler{
		pipeline: pipeline,
		store:    store,
		logger:   logger,
		config:   config,
	}
}

// Convert handles POST /api/v1/convert: one full generate cycle.
// Watched-option invalidation runs before anything else, so a changed
// compress/mode never leaves stale results behind, even when the run
// itself fails.
func (h *ConvertHandler) Convert(c *gin.Context) {
	opts, err := h.parseOptions(c)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	uploads, err := h.readUploads(c)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	sid := middleware.SessionID(c)

	state, err := h.store.Load(ctx, sid)
	if err != nil {
		h.logger.Error("Failed to load session state", zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Failed to load session state")
		return
	}

	if state.InvalidateIfOptionsChanged(opts) {
		h.logger.Info("Session results invalidated",
			zap.String("session_id", sid),
			zap.Bool("compress", opts.Compress),
			zap.String("mode", string(opts.Mode)),
		)
	}

	batch, err := collector.Collect(uploads)
	if err != nil {
		// The invalidation above must stick even though this run never
		// started.
		h.saveState(c, sid, state)

		var dup *collector.DuplicateNameError
		if errors.As(err, &dup) {
			h.respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		h.respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	result, err := h.pipeline.Convert(ctx, batch, opts)
	if err != nil {
		// A failed run reports its error but does not clear whatever
		// generation survived the invalidation check.
		h.saveState(c, sid, state)
		h.respondPipelineError(c, err)
		return
	}

	state.RecordRun(opts, result)
	if !h.saveState(c, sid, state) {
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    state.Summary(),
	})
}

// Results handles GET /api/v1/results: which download affordances the
// current generation offers. Side-effect free.
func (h *ConvertHandler) Results(c *gin.Context) {
	state, ok := h.loadState(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    state.Summary(),
	})
}

// HealthCheck reports liveness plus session-store reachability.
func (h *ConvertHandler) HealthCheck(c *gin.Context) {
	services := h.store.HealthCheck(c.Request.Context())
	overall := h.calculateOverallHealth(services)

	statusCode := http.StatusOK
	if overall == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, models.APIResponse{
		Success: overall == "healthy",
		Data: models.HealthCheck{
			Status:    overall,
			Timestamp: time.Now(),
			Services:  services,
		},
	})
}

func (h *ConvertHandler) calculateOverallHealth(services map[string]string) string {
	for _, status := range services {
		if status != "healthy" {
			return "unhealthy"
		}
	}
	return "healthy"
}
