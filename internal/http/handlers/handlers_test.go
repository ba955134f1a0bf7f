package handlers

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"go.uber.org/zap"

	"github.com/yourusername/image2pdf/internal/config"
	"github.com/yourusername/image2pdf/internal/http/middleware"
	"github.com/yourusername/image2pdf/internal/models"
	"github.com/yourusername/image2pdf/internal/services/convert"
	"github.com/yourusername/image2pdf/internal/services/session"
)

func testConfig() *config.Config {
	return &config.Config{
		Session: config.SessionConfig{
			CookieName: "test_session",
			Secret:     "test-secret",
			Backend:    config.SessionBackendMemory,
			TTL:        time.Hour,
		},
		Convert: config.ConvertConfig{
			MaxFileSize: 10 * 1024 * 1024,
			PageDPI:     100,
		},
	}
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	logger := zap.NewNop()
	handler := NewConvertHandler(
		convert.NewPipeline(cfg.Convert.PageDPI, logger),
		session.NewMemoryStore(),
		logger,
		cfg,
	)

	router := gin.New()
	store := cookie.NewStore([]byte(cfg.Session.Secret))
	router.Use(sessions.Sessions(cfg.Session.CookieName, store))
	router.Use(middleware.EnsureSession())

	router.POST("/api/v1/convert", handler.Convert)
	router.GET("/api/v1/results", handler.Results)
	router.GET("/api/v1/results/pdf", handler.DownloadSinglePDF)
	router.GET("/api/v1/results/pdfs/:index", handler.DownloadIndividualPDF)
	router.GET("/api/v1/results/images/:index", handler.DownloadCompressedImage)
	return router
}

func pngFixture(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 120, G: 60, B: 30, A: 255})
		}
	}
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}
	return buf.Bytes()
}

type formFile struct {
	name string
	data []byte
}

func convertRequest(t *testing.T, fields map[string]string, files []formFile) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("failed to write field %q: %v", key, err)
		}
	}
	for _, f := range files {
		fw, err := writer.CreateFormFile("images", f.name)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := io.Copy(fw, bytes.NewReader(f.data)); err != nil {
			t.Fatalf("failed to write form file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/convert", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func withSession(req *http.Request, from *httptest.ResponseRecorder) *http.Request {
	for _, c := range from.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

// === OPTION PARSING ===

func TestParseOptionsDefaults(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(""))
	ctx.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	handler := &ConvertHandler{config: testConfig()}
	opts, err := handler.parseOptions(ctx)
	if err != nil {
		t.Fatalf("parseOptions returned error: %v", err)
	}

	want := models.DefaultOptions()
	if opts != want {
		t.Errorf("defaults = %+v, want %+v", opts, want)
	}
}

func TestParseOptionsExplicit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest(http.MethodPost, "/",
		bytes.NewBufferString("compress=true&ratio=55&quality=80&mode=individual"))
	ctx.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	handler := &ConvertHandler{config: testConfig()}
	opts, err := handler.parseOptions(ctx)
	if err != nil {
		t.Fatalf("parseOptions returned error: %v", err)
	}
	if !opts.Compress || opts.RatioPercent != 55 || opts.Quality != 80 || opts.Mode != models.ModeIndividualPDFs {
		t.Errorf("unexpected options: %+v", opts)
	}
}

func TestParseOptionsRejectsOutOfRange(t *testing.T) {
	cases := []string{
		"ratio=5",
		"ratio=101",
		"quality=9",
		"quality=200",
		"mode=booklet",
		"compress=sometimes",
	}

	handler := &ConvertHandler{config: testConfig()}
	for _, body := range cases {
		gin.SetMode(gin.TestMode)
		ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
		ctx.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
		ctx.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		if _, err := handler.parseOptions(ctx); err == nil {
			t.Errorf("body %q: expected error", body)
		}
	}
}

// === FULL CYCLE ===

func TestConvertSinglePDFFlow(t *testing.T) {
	router := newTestEngine(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, convertRequest(t, nil, []formFile{
		{name: "a.png", data: pngFixture(t, 100, 100)},
		{name: "b.png", data: pngFixture(t, 50, 50)},
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("convert status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp models.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if !resp.Success {
		t.Fatalf("convert reported failure: %s", resp.Error)
	}

	// The combined PDF downloads with the fixed name and two pages.
	dlRec := httptest.NewRecorder()
	router.ServeHTTP(dlRec, withSession(httptest.NewRequest(http.MethodGet, "/api/v1/results/pdf", nil), rec))
	if dlRec.Code != http.StatusOK {
		t.Fatalf("download status = %d", dlRec.Code)
	}
	if ct := dlRec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content type = %q, want application/pdf", ct)
	}
	count, err := pdfapi.PageCount(bytes.NewReader(dlRec.Body.Bytes()), nil)
	if err != nil {
		t.Fatalf("failed to count pages: %v", err)
	}
	if count != 2 {
		t.Errorf("page count = %d, want 2", count)
	}

	// No compression requested, so no compressed artifacts exist.
	imgRec := httptest.NewRecorder()
	router.ServeHTTP(imgRec, withSession(httptest.NewRequest(http.MethodGet, "/api/v1/results/images/0", nil), rec))
	if imgRec.Code != http.StatusNotFound {
		t.Errorf("compressed image status = %d, want 404", imgRec.Code)
	}
}

func TestConvertIndividualPDFsFlow(t *testing.T) {
	router := newTestEngine(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, convertRequest(t, map[string]string{"mode": "individual"}, []formFile{
		{name: "x.png", data: pngFixture(t, 40, 40)},
		{name: "y.png", data: pngFixture(t, 40, 40)},
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("convert status = %d, body %s", rec.Code, rec.Body.String())
	}

	dlRec := httptest.NewRecorder()
	router.ServeHTTP(dlRec, withSession(httptest.NewRequest(http.MethodGet, "/api/v1/results/pdfs/1", nil), rec))
	if dlRec.Code != http.StatusOK {
		t.Fatalf("download status = %d", dlRec.Code)
	}
	if cd := dlRec.Header().Get("Content-Disposition"); !bytes.Contains([]byte(cd), []byte("y.pdf")) {
		t.Errorf("content disposition = %q, want y.pdf", cd)
	}

	// Single-PDF download must 404 in individual mode.
	pdfRec := httptest.NewRecorder()
	router.ServeHTTP(pdfRec, withSession(httptest.NewRequest(http.MethodGet, "/api/v1/results/pdf", nil), rec))
	if pdfRec.Code != http.StatusNotFound {
		t.Errorf("combined PDF status = %d, want 404", pdfRec.Code)
	}
}

func TestConvertRejectsDuplicateNames(t *testing.T) {
	router := newTestEngine(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, convertRequest(t, nil, []formFile{
		{name: "same.png", data: pngFixture(t, 10, 10)},
		{name: "same.png", data: pngFixture(t, 10, 10)},
	}))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestConvertRejectsNonImageUpload(t *testing.T) {
	router := newTestEngine(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, convertRequest(t, nil, []formFile{
		{name: "notes.txt", data: []byte("just some text")},
	}))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestConvertRejectsEmptyUpload(t *testing.T) {
	router := newTestEngine(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, convertRequest(t, nil, nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestModeChangeReplacesResults(t *testing.T) {
	router := newTestEngine(t)

	first := httptest.NewRecorder()
	router.ServeHTTP(first, convertRequest(t, nil, []formFile{
		{name: "a.png", data: pngFixture(t, 30, 30)},
	}))
	if first.Code != http.StatusOK {
		t.Fatalf("first convert status = %d", first.Code)
	}

	second := httptest.NewRecorder()
	router.ServeHTTP(second, withSession(convertRequest(t, map[string]string{"mode": "individual"}, []formFile{
		{name: "a.png", data: pngFixture(t, 30, 30)},
	}), first))
	if second.Code != http.StatusOK {
		t.Fatalf("second convert status = %d", second.Code)
	}

	pdfRec := httptest.NewRecorder()
	router.ServeHTTP(pdfRec, withSession(httptest.NewRequest(http.MethodGet, "/api/v1/results/pdf", nil), first))
	if pdfRec.Code != http.StatusNotFound {
		t.Errorf("combined PDF status = %d, want 404 after mode change", pdfRec.Code)
	}

	indRec := httptest.NewRecorder()
	router.ServeHTTP(indRec, withSession(httptest.NewRequest(http.MethodGet, "/api/v1/results/pdfs/0", nil), first))
	if indRec.Code != http.StatusOK {
		t.Errorf("individual PDF status = %d, want 200", indRec.Code)
	}
}

func TestFailedRunKeepsPreviousResults(t *testing.T) {
	router := newTestEngine(t)

	// Populate with a compressed generation.
	first := httptest.NewRecorder()
	router.ServeHTTP(first, convertRequest(t, map[string]string{"compress": "true", "ratio": "50"}, []formFile{
		{name: "big.png", data: pngFixture(t, 100, 100)},
	}))
	if first.Code != http.StatusOK {
		t.Fatalf("first convert status = %d", first.Code)
	}

	// Same watched options, but a 4px image at 10% rounds to zero and
	// fails the run.
	second := httptest.NewRecorder()
	router.ServeHTTP(second, withSession(convertRequest(t, map[string]string{"compress": "true", "ratio": "10"}, []formFile{
		{name: "tiny.png", data: pngFixture(t, 4, 4)},
	}), first))
	if second.Code != http.StatusUnprocessableEntity {
		t.Fatalf("failed convert status = %d, want 422", second.Code)
	}

	// The earlier generation is still downloadable.
	imgRec := httptest.NewRecorder()
	router.ServeHTTP(imgRec, withSession(httptest.NewRequest(http.MethodGet, "/api/v1/results/images/0", nil), first))
	if imgRec.Code != http.StatusOK {
		t.Errorf("compressed image status = %d, want 200 after failed run", imgRec.Code)
	}
}

func TestResultsAvailabilityEndpoint(t *testing.T) {
	router := newTestEngine(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, convertRequest(t, map[string]string{"compress": "true"}, []formFile{
		{name: "a.png", data: pngFixture(t, 60, 60)},
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("convert status = %d", rec.Code)
	}

	resRec := httptest.NewRecorder()
	router.ServeHTTP(resRec, withSession(httptest.NewRequest(http.MethodGet, "/api/v1/results", nil), rec))
	if resRec.Code != http.StatusOK {
		t.Fatalf("results status = %d", resRec.Code)
	}

	var resp struct {
		Success bool                     `json:"success"`
		Data    models.ConversionSummary `json:"data"`
	}
	if err := json.Unmarshal(resRec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if !resp.Data.SinglePDF {
		t.Error("summary missing combined PDF")
	}
	if len(resp.Data.CompressedImages) != 1 || resp.Data.CompressedImages[0] != "a.jpg" {
		t.Errorf("compressed images = %v, want [a.jpg]", resp.Data.CompressedImages)
	}
}
