package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/student-enlistment-api/internal/dto"
	"github.com/noah-isme/student-enlistment-api/internal/models"
	appErrors "github.com/noah-isme/student-enlistment-api/pkg/errors"
	"github.com/noah-isme/student-enlistment-api/pkg/response"
)

type enlistmentService interface {
	Start(ctx context.Context, studentID string, req dto.StartSessionRequest) (*dto.SessionView, error)
	Session(ctx context.Context, studentID string) (*dto.SessionView, error)
	Offerings(ctx context.Context, studentID string, filter dto.OfferingFilter) ([]dto.OfferingView, *models.Pagination, error)
	Add(ctx context.Context, studentID string, req dto.SelectionRequest) (*dto.SessionView, error)
	Remove(ctx context.Context, studentID string, req dto.SelectionRequest) (*dto.SessionView, error)
	Clear(ctx context.Context, studentID string) (*dto.SessionView, error)
	Submit(ctx context.Context, studentID string) (*dto.SubmissionResult, error)
}

// EnlistmentHandler exposes the student enlistment session endpoints.
type EnlistmentHandler struct {
	service enlistmentService
}

// NewEnlistmentHandler builds a new handler.
func NewEnlistmentHandler(service enlistmentService) *EnlistmentHandler {
	return &EnlistmentHandler{service: service}
}

// Start godoc
// @Summary Open an enlistment session
// @Description Loads enlisted subjects, the offering catalog and the unit limit. Any unsubmitted selection is discarded.
// @Tags Enlistment
// @Accept json
// @Produce json
// @Param payload body dto.StartSessionRequest false "Course filter"
// @Success 201 {object} response.Envelope
// @Router /enlistment/session [post]
func (h *EnlistmentHandler) Start(c *gin.Context) {
	id, ok := studentID(c)
	if !ok {
		return
	}
	var req dto.StartSessionRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid session payload"))
			return
		}
	}
	view, err := h.service.Start(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, view)
}

// Session godoc
// @Summary Current selection and unit summary
// @Tags Enlistment
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /enlistment/session [get]
func (h *EnlistmentHandler) Session(c *gin.Context) {
	id, ok := studentID(c)
	if !ok {
		return
	}
	view, err := h.service.Session(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Offerings godoc
// @Summary List offerings with their standing for the student
// @Tags Enlistment
// @Produce json
// @Param search query string false "Subject code or title"
// @Param availableOnly query bool false "Hide full sections"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /enlistment/offerings [get]
func (h *EnlistmentHandler) Offerings(c *gin.Context) {
	id, ok := studentID(c)
	if !ok {
		return
	}
	var filter dto.OfferingFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid offering filter"))
		return
	}
	items, pagination, err := h.service.Offerings(c.Request.Context(), id, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Add godoc
// @Summary Add a subject section to the selection
// @Tags Enlistment
// @Accept json
// @Produce json
// @Param payload body dto.SelectionRequest true "Subject section"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /enlistment/selections [post]
func (h *EnlistmentHandler) Add(c *gin.Context) {
	id, ok := studentID(c)
	if !ok {
		return
	}
	var req dto.SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid selection payload"))
		return
	}
	view, err := h.service.Add(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Remove godoc
// @Summary Remove a selected subject section
// @Tags Enlistment
// @Produce json
// @Param code path string true "Subject code"
// @Param section path string true "Section"
// @Success 200 {object} response.Envelope
// @Router /enlistment/selections/{code}/{section} [delete]
func (h *EnlistmentHandler) Remove(c *gin.Context) {
	id, ok := studentID(c)
	if !ok {
		return
	}
	req := dto.SelectionRequest{Code: c.Param("code"), Section: c.Param("section")}
	view, err := h.service.Remove(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Clear godoc
// @Summary Drop every unsubmitted selection
// @Tags Enlistment
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /enlistment/selections [delete]
func (h *EnlistmentHandler) Clear(c *gin.Context) {
	id, ok := studentID(c)
	if !ok {
		return
	}
	view, err := h.service.Clear(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Submit godoc
// @Summary Submit the selection for registrar approval
// @Tags Enlistment
// @Produce json
// @Success 201 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /enlistment/submit [post]
func (h *EnlistmentHandler) Submit(c *gin.Context) {
	id, ok := studentID(c)
	if !ok {
		return
	}
	result, err := h.service.Submit(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}
