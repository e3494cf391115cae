package routes

import (
	"github.com/gin-gonic/gin"
	"transcription-api/internal/api/v1/handlers"
	"transcription-api/internal/api/v1/services"
)

// ServiceContainer holds all services needed by handlers
type ServiceContainer struct {
	TranscriptionService services.TranscriptionService
}

// RegisterRoutes registers the transcription CRUD surface on the router.
func RegisterRoutes(router *gin.RouterGroup, container *ServiceContainer) {
	transcriptionHandler := handlers.NewTranscriptionHandler(container.TranscriptionService)
	transcriptions := router.Group("/transcriptions")
	{
		transcriptions.GET("", transcriptionHandler.List)
		transcriptions.GET("/:id", transcriptionHandler.Get)
		transcriptions.POST("/:id", transcriptionHandler.Create)
		transcriptions.PUT("/:id", transcriptionHandler.Update)
		transcriptions.DELETE("/:id", transcriptionHandler.Delete)
	}
}
