package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/image2pdf/internal/services/convert"
)

const singlePDFFilename = "all_images.pdf"

// DownloadSinglePDF handles GET /api/v1/results/pdf.
func (h *ConvertHandler) DownloadSinglePDF(c *gin.Context) {
	state, ok := h.loadState(c)
	if !ok {
		return
	}
	if !state.HasSinglePDF() {
		h.respondError(c, http.StatusNotFound, "No combined PDF available")
		return
	}

	h.sendAttachment(c, singlePDFFilename, "application/pdf", state.SinglePDF)
}

// DownloadIndividualPDF handles GET /api/v1/results/pdfs/:index.
func (h *ConvertHandler) DownloadIndividualPDF(c *gin.Context) {
	state, ok := h.loadState(c)
	if !ok {
		return
	}

	artifact, ok := h.artifactAt(c, state.IndividualPDFs, "No individual PDFs available")
	if !ok {
		return
	}

	h.sendAttachment(c, artifact.BaseName+".pdf", "application/pdf", artifact.Data)
}

// DownloadCompressedImage handles GET /api/v1/results/images/:index.
func (h *ConvertHandler) DownloadCompressedImage(c *gin.Context) {
	state, ok := h.loadState(c)
	if !ok {
		return
	}

	artifact, ok := h.artifactAt(c, state.CompressedImages, "No compressed images available")
	if !ok {
		return
	}

	h.sendAttachment(c, artifact.BaseName+".jpg", "image/jpeg", artifact.Data)
}

// artifactAt resolves the :index path param against an artifact list.
func (h *ConvertHandler) artifactAt(c *gin.Context, artifacts []convert.Artifact, emptyMsg string) (convert.Artifact, bool) {
	if len(artifacts) == 0 {
		h.respondError(c, http.StatusNotFound, emptyMsg)
		return convert.Artifact{}, false
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 || index >= len(artifacts) {
		h.respondError(c, http.StatusNotFound, fmt.Sprintf("No artifact at index %q", c.Param("index")))
		return convert.Artifact{}, false
	}

	return artifacts[index], true
}

func (h *ConvertHandler) sendAttachment(c *gin.Context, filename, contentType string, data []byte) {
	encodedName := url.PathEscape(filename)
	c.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"%s\"; filename*=UTF-8''%s", filename, encodedName))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, contentType, data)
}
