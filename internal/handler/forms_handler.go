package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/student-enlistment-api/internal/dto"
	appErrors "github.com/noah-isme/student-enlistment-api/pkg/errors"
	"github.com/noah-isme/student-enlistment-api/pkg/response"
)

type registrationFormService interface {
	Link(ctx context.Context, studentID string, req dto.FormLinkRequest) (*dto.FormLink, error)
	RenderToken(ctx context.Context, token string) (*dto.RenderedForm, error)
}

// FormsHandler serves registration form links and downloads.
type FormsHandler struct {
	service registrationFormService
}

// NewFormsHandler builds a new handler.
func NewFormsHandler(service registrationFormService) *FormsHandler {
	return &FormsHandler{service: service}
}

// Link godoc
// @Summary Signed download link for the registration form
// @Tags Forms
// @Produce json
// @Param format query string false "pdf or csv" Enums(pdf, csv)
// @Success 200 {object} response.Envelope
// @Router /enlistment/registration-form [get]
func (h *FormsHandler) Link(c *gin.Context) {
	id, ok := studentID(c)
	if !ok {
		return
	}
	var req dto.FormLinkRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid form request"))
		return
	}
	link, err := h.service.Link(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, link, nil)
}

// Download godoc
// @Summary Download a registration form
// @Tags Forms
// @Produce application/pdf
// @Produce text/csv
// @Param token path string true "Signed token"
// @Success 200 {file} file
// @Failure 403 {object} response.Envelope
// @Failure 410 {object} response.Envelope
// @Router /forms/{token} [get]
func (h *FormsHandler) Download(c *gin.Context) {
	form, err := h.service.RenderToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", form.Filename))
	c.Data(http.StatusOK, form.ContentType, form.Content)
}
