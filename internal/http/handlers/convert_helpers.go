package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/image2pdf/internal/http/middleware"
	"github.com/yourusername/image2pdf/internal/models"
	"github.com/yourusername/image2pdf/internal/services/convert"
	"github.com/yourusername/image2pdf/internal/services/session"
	"github.com/yourusername/image2pdf/pkg/utils"
)

// === REQUEST PARSING ===

// parseOptions reads the option form fields, applying the documented
// defaults for absent fields. Out-of-range values are an error, never
// silently clamped.
func (h *ConvertHandler) parseOptions(c *gin.Context) (models.ConversionOptions, error) {
	opts := models.DefaultOptions()

	if v := c.PostForm("compress"); v != "" {
		compress, err := strconv.ParseBool(v)
		if err != nil {
			return opts, fmt.Errorf("invalid compress: must be a boolean")
		}
		opts.Compress = compress
	}

	if v := c.PostForm("ratio"); v != "" {
		ratio, err := strconv.Atoi(v)
		if err != nil {
			return opts, fmt.Errorf("invalid ratio: must be a number")
		}
		opts.RatioPercent = ratio
	}

	if v := c.PostForm("quality"); v != "" {
		quality, err := strconv.Atoi(v)
		if err != nil {
			return opts, fmt.Errorf("invalid quality: must be a number")
		}
		opts.Quality = quality
	}

	if v := c.PostForm("mode"); v != "" {
		opts.Mode = models.PDFMode(v)
	}

	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// readUploads reads every uploaded image into memory in form order and
// sniffs its media type. Names are kept verbatim; dedupe is the
// collector's job.
func (h *ConvertHandler) readUploads(c *gin.Context) ([]models.UploadedImage, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, fmt.Errorf("failed to parse form data: %v", err)
	}

	files := form.File[imagesParamKey]
	if len(files) == 0 {
		return nil, fmt.Errorf("no images provided")
	}

	uploads := make([]models.UploadedImage, 0, len(files))
	for _, fh := range files {
		if fh.Size > h.config.Convert.MaxFileSize {
			return nil, fmt.Errorf("file %q exceeds maximum size %d bytes", fh.Filename, h.config.Convert.MaxFileSize)
		}

		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %q: %v", fh.Filename, err)
		}
		data, err := io.ReadAll(io.LimitReader(f, h.config.Convert.MaxFileSize+1))
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %q: %v", fh.Filename, err)
		}

		if _, err := utils.DetectImageType(data); err != nil {
			return nil, fmt.Errorf("file %q: %v", fh.Filename, err)
		}

		uploads = append(uploads, models.UploadedImage{Name: fh.Filename, Data: data})
	}

	return uploads, nil
}

// === SESSION STATE ===

func (h *ConvertHandler) loadState(c *gin.Context) (*session.State, bool) {
	state, err := h.store.Load(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		h.logger.Error("Failed to load session state", zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Failed to load session state")
		return nil, false
	}
	return state, true
}

func (h *ConvertHandler) saveState(c *gin.Context, sid string, state *session.State) bool {
	if err := h.store.Save(c.Request.Context(), sid, state); err != nil {
		h.logger.Error("Failed to save session state", zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Failed to save session state")
		return false
	}
	return true
}

// === RESPONSE HANDLING ===

func (h *ConvertHandler) respondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, models.APIResponse{
		Success: false,
		Error:   message,
	})
}

// respondPipelineError maps pipeline error codes onto HTTP statuses:
// malformed or degenerate input is the client's problem, anything else
// is ours.
func (h *ConvertHandler) respondPipelineError(c *gin.Context, err error) {
	var convErr *convert.Error
	if errors.As(err, &convErr) {
		h.logger.Warn("Conversion failed",
			zap.String("code", string(convErr.Code)),
			zap.String("file", convErr.File),
			zap.Error(convErr.Err),
		)
		h.respondError(c, http.StatusUnprocessableEntity, convErr.Error())
		return
	}

	h.logger.Error("Conversion failed", zap.Error(err))
	h.respondError(c, http.StatusInternalServerError, err.Error())
}
