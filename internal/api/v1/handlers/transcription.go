package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"transcription-api/internal/api/errors"
	"transcription-api/internal/api/middleware"
	"transcription-api/internal/api/v1/dto"
	"transcription-api/internal/api/v1/services"
)

// TranscriptionHandler handles transcription-related API endpoints
type TranscriptionHandler struct {
	service services.TranscriptionService
}

// NewTranscriptionHandler creates a new transcription handler
func NewTranscriptionHandler(service services.TranscriptionService) *TranscriptionHandler {
	return &TranscriptionHandler{
		service: service,
	}
}

// List handles GET /transcriptions
// Returns every transcription record, newest first. No filtering, no
// pagination; an empty table yields an empty array, not null.
func (h *TranscriptionHandler) List(c *gin.Context) {
	responses, err := h.service.ListTranscriptions(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses)
}

// Get handles GET /transcriptions/:id
func (h *TranscriptionHandler) Get(c *gin.Context) {
	id, err := parseTranscriptionID(c)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.GetTranscription(c.Request.Context(), id)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Create handles POST /transcriptions/:id
// Accepts a multipart upload whose declared filename becomes the record's
// audio_filename. The id comes from the caller, not the server.
func (h *TranscriptionHandler) Create(c *gin.Context) {
	id, err := parseTranscriptionID(c)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("No file uploaded"))
		return
	}
	defer file.Close()

	response, err := h.service.CreateTranscription(c.Request.Context(), id, file, header)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Update handles PUT /transcriptions/:id
// Applies a partial update; fields absent from the payload are left untouched.
func (h *TranscriptionHandler) Update(c *gin.Context) {
	id, err := parseTranscriptionID(c)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	var req dto.UpdateTranscriptionRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.UpdateTranscription(c.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Delete handles DELETE /transcriptions/:id
func (h *TranscriptionHandler) Delete(c *gin.Context) {
	id, err := parseTranscriptionID(c)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	if err := h.service.DeleteTranscription(c.Request.Context(), id); err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func parseTranscriptionID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errors.NewBadRequestError("Invalid transcription ID")
	}
	return id, nil
}
