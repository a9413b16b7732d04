package upload

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"shopuploads/internal/database"
	"shopuploads/internal/domain"
	applog "shopuploads/internal/pkg/logger"
	"shopuploads/internal/repository"
)

type testEnv struct {
	router    *gin.Engine
	db        *gorm.DB
	meta      *memMetadataRepo
	uploadDir string
	logFile   string
}

func setupEnv(t *testing.T, backend bool) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	uploadDir := t.TempDir()
	logFile := filepath.Join(t.TempDir(), "app.log")
	appLog := applog.New(logFile)
	appLog.Println("handler test started")

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Product{}))

	blobs, err := NewDiskStore(uploadDir)
	require.NoError(t, err)

	meta := &memMetadataRepo{}
	service := NewService(blobs, meta, repository.NewProductRepository(db), appLog)
	handler := NewHandler(service, appLog, logFile, backend)

	router := gin.New()
	router.LoadHTMLGlob("../../../templates/*.html")
	RegisterRoutes(router, handler)

	return &testEnv{router: router, db: db, meta: meta, uploadDir: uploadDir, logFile: logFile}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	e.router.ServeHTTP(resp, req)
	return resp
}

func uploadRequest(t *testing.T, fields map[string]string, filename, content string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if filename != "" {
		fw, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload-file", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func (e *testEnv) productCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(&domain.Product{}).Count(&n).Error)
	return n
}

func TestHome(t *testing.T) {
	env := setupEnv(t, true)

	resp := env.do(httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Hello, World")
}

func TestSubmitBackendMode(t *testing.T) {
	env := setupEnv(t, true)

	resp := env.do(uploadRequest(t, map[string]string{
		"product_name":        "Widget",
		"initial_stock_count": "5",
	}, "photo.png", "png-bytes"))
	require.Equal(t, http.StatusOK, resp.Code)

	var payload SubmitResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "photo.png", payload.Filename)
	assert.Equal(t, "/uploads/photo.png", payload.ImgURL)

	// /images now lists the upload.
	resp = env.do(httptest.NewRequest(http.MethodGet, "/images", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	var listing struct {
		Data []ImageEntry `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listing))
	require.Len(t, listing.Data, 1)
	assert.Equal(t, "/uploads/photo.png", listing.Data[0].ImageURL)

	// The stored file is served back.
	resp = env.do(httptest.NewRequest(http.MethodGet, "/uploads/photo.png", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "png-bytes", resp.Body.String())

	// And the catalog row exists with the metadata reference.
	var product domain.Product
	require.NoError(t, env.db.First(&product).Error)
	assert.Equal(t, "Widget", product.Name)
	assert.Equal(t, env.meta.docs[0].ID.Hex(), product.ImageMetadataID)
	assert.Equal(t, 5, product.StockCount)
	assert.Equal(t, "Sample Review", product.Review)
}

func TestSubmitHTMLMode(t *testing.T) {
	env := setupEnv(t, false)

	resp := env.do(uploadRequest(t, map[string]string{
		"product_name":        "Widget",
		"initial_stock_count": "3",
	}, "photo.png", "png-bytes"))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "<h1>photo.png</h1>")
	assert.Contains(t, resp.Body.String(), "/uploads/photo.png")

	resp = env.do(httptest.NewRequest(http.MethodGet, "/images", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `src="/uploads/photo.png"`)
}

func TestSubmitRejectsDisallowedExtensionOverHTTP(t *testing.T) {
	env := setupEnv(t, true)

	resp := env.do(uploadRequest(t, map[string]string{
		"product_name":        "Widget",
		"initial_stock_count": "5",
	}, "malware.exe", "MZ"))
	require.Equal(t, http.StatusSeeOther, resp.Code)
	assert.Equal(t, "/upload-file", resp.Header().Get("Location"))

	assert.Empty(t, dirEntries(t, env.uploadDir))
	assert.Empty(t, env.meta.docs)
	assert.Zero(t, env.productCount(t))
}

func TestSubmitForceFailureOverHTTP(t *testing.T) {
	env := setupEnv(t, true)

	resp := env.do(uploadRequest(t, map[string]string{
		"product_name":        "Widget",
		"initial_stock_count": "5",
		"force_failure":       "true",
	}, "photo.png", "png-bytes"))
	require.Equal(t, http.StatusSeeOther, resp.Code)

	assert.Empty(t, dirEntries(t, env.uploadDir))
	assert.Empty(t, env.meta.docs)
	assert.Zero(t, env.productCount(t))
}

func TestFailureFlashSurvivesRedirect(t *testing.T) {
	env := setupEnv(t, false)

	resp := env.do(uploadRequest(t, nil, "", ""))
	require.Equal(t, http.StatusSeeOther, resp.Code)

	cookies := resp.Result().Cookies()
	require.NotEmpty(t, cookies)

	form := httptest.NewRequest(http.MethodGet, "/upload-file", nil)
	for _, c := range cookies {
		form.AddCookie(c)
	}
	followed := env.do(form)
	require.Equal(t, http.StatusOK, followed.Code)
	assert.Contains(t, followed.Body.String(), "An error occurred")
}

func TestDownloadNotFound(t *testing.T) {
	env := setupEnv(t, true)

	resp := env.do(httptest.NewRequest(http.MethodGet, "/uploads/does-not-exist.png", nil))
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestLogsReturnCurrentContentAndTerminate(t *testing.T) {
	env := setupEnv(t, true)

	// One request to put a fresh line into the log, then stream it.
	env.do(httptest.NewRequest(http.MethodGet, "/", nil))

	resp := env.do(httptest.NewRequest(http.MethodGet, "/logs", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, resp.Body.String(), "Accessed the home page.")
}

func TestHealth(t *testing.T) {
	env := setupEnv(t, true)

	resp := env.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"status":"ok"`)
}
