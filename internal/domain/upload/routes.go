package upload

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the public routes. Everything is unauthenticated.
func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.GET("/", h.Home)
	r.GET("/upload-file", h.ShowForm)
	r.POST("/upload-file", h.Submit)
	r.GET("/images", h.Images)
	r.GET("/uploads/:name", h.Download)
	r.GET("/logs", h.Logs)
	r.GET("/healthz", h.Health)
}
