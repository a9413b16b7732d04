package upload

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"shopuploads/internal/pkg/logger"
)

const flashCookie = "flash"

// Handler exposes the upload workflow over HTTP. Failures of the POST route
// funnel into one path: log, flash a message, redirect back to the form.
type Handler struct {
	service *Service
	logger  *log.Logger
	logFile string
	backend bool
}

func NewHandler(service *Service, appLog *log.Logger, logFile string, backend bool) *Handler {
	return &Handler{service: service, logger: appLog, logFile: logFile, backend: backend}
}

// Home godoc
// @Summary Greeting page
// @Produce html
// @Success 200 {string} string
// @Router / [get]
func (h *Handler) Home(c *gin.Context) {
	h.logger.Println("Accessed the home page.")
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte("<p>Hello, World Elisha!</p>"))
}

// ShowForm renders the upload form and surfaces any pending flash message.
func (h *Handler) ShowForm(c *gin.Context) {
	h.logger.Println("Accessed the upload file page.")
	c.HTML(http.StatusOK, "upload_image.html", gin.H{"flash": takeFlash(c)})
}

// Submit godoc
// @Summary Upload a file and register its product
// @Accept multipart/form-data
// @Param file formData file true "File to upload"
// @Param product_name formData string false "Product name"
// @Param initial_stock_count formData string false "Initial stock count"
// @Param force_failure formData string false "Set to true to simulate a failure"
// @Success 200 {object} SubmitResponse
// @Router /upload-file [post]
func (h *Handler) Submit(c *gin.Context) {
	h.logger.Println("Received a POST request to upload a file.")

	file, err := c.FormFile("file")
	if err != nil {
		file = nil // missing part is handled inside the workflow
	}

	in := SubmitInput{
		File:         file,
		ProductName:  c.PostForm("product_name"),
		StockCount:   c.PostForm("initial_stock_count"),
		ForceFailure: c.PostForm("force_failure") == "true",
	}

	filename, err := h.service.Submit(c.Request.Context(), in)
	if err != nil {
		h.logger.Printf("Failed: %v", err)
		setFlash(c, "An error occurred: "+err.Error())
		c.Redirect(http.StatusSeeOther, "/upload-file")
		return
	}

	imgURL := DownloadURL(filename)
	if h.backend {
		c.JSON(http.StatusOK, SubmitResponse{Filename: filename, ImgURL: imgURL})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(fmt.Sprintf(
		"<!doctype html>\n<html>\n<h1>%s</h1>\n<img src=%q></img>\n</html>", filename, imgURL)))
}

// Images godoc
// @Summary List uploaded images
// @Produce json
// @Success 200 {object} map[string][]ImageEntry
// @Router /images [get]
func (h *Handler) Images(c *gin.Context) {
	h.logger.Println("Accessed the images page.")

	urls, err := h.service.ListImages(c.Request.Context())
	if err != nil {
		h.logger.Printf("Failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list images"})
		return
	}

	entries := make([]ImageEntry, 0, len(urls))
	for _, u := range urls {
		entries = append(entries, ImageEntry{ImageURL: u})
	}

	if h.backend {
		c.JSON(http.StatusOK, gin.H{"data": entries})
		return
	}
	c.HTML(http.StatusOK, "view_images.html", gin.H{"navigation": entries})
}

// Download serves a stored file from the upload directory.
func (h *Handler) Download(c *gin.Context) {
	name := c.Param("name")
	h.logger.Printf("File %s requested for download.", name)

	p := h.service.FilePath(name)
	if _, err := os.Stat(p); err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.File(p)
}

// Logs streams the lines currently in the application log file and then
// terminates. It never blocks waiting for new writes.
func (h *Handler) Logs(c *gin.Context) {
	c.Header("Content-Type", "text/plain; charset=utf-8")
	if err := logger.CopyCurrent(c.Writer, h.logFile); err != nil && !c.Writer.Written() {
		c.Status(http.StatusInternalServerError)
	}
}

// Health is a plain liveness probe.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Flash messages ride on a short-lived cookie, read and cleared by the next
// form render. gin escapes/unescapes cookie values itself.
func setFlash(c *gin.Context, msg string) {
	c.SetCookie(flashCookie, msg, 300, "/", "", false, true)
}

func takeFlash(c *gin.Context) string {
	msg, err := c.Cookie(flashCookie)
	if err != nil || msg == "" {
		return ""
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	return msg
}
