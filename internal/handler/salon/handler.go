package salon

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/coiffly/salon-api/internal/model"
	"github.com/coiffly/salon-api/internal/service/salon"
	apperrors "github.com/coiffly/salon-api/pkg/errors"
	"github.com/coiffly/salon-api/pkg/httputil"
	"github.com/coiffly/salon-api/pkg/validator"
)

type Handler struct {
	service   *salon.Service
	validator validator.Validator
}

func NewHandler(service *salon.Service, v validator.Validator) *Handler {
	return &Handler{service: service, validator: v}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	salons := r.Group("/salons")
	{
		salons.POST("", h.Create)
		salons.GET("/:id", h.Get)
		salons.PUT("/:id", h.Update)
		salons.GET("/:id/opening-hours", h.ListOpeningHours)
		salons.PUT("/:id/opening-hours", h.UpsertOpeningHours)
		salons.DELETE("/:id/opening-hours/:day", h.DeleteOpeningHours)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateSalonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error(), err))
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httputil.Response{Success: true, Data: created})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid salon id", err))
		return
	}

	found, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, found)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid salon id", err))
		return
	}

	existing, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	var req model.CreateSalonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error(), err))
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	existing.Name = req.Name
	existing.Address = req.Address
	existing.Phone = req.Phone
	existing.Email = req.Email
	existing.AutoConfirm = req.AutoConfirm
	if req.BufferBeforeMinutes != nil {
		existing.BufferBeforeMinutes = *req.BufferBeforeMinutes
	}
	if req.BufferAfterMinutes != nil {
		existing.BufferAfterMinutes = *req.BufferAfterMinutes
	}

	if err := h.service.Update(c.Request.Context(), existing); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, existing)
}

func (h *Handler) ListOpeningHours(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid salon id", err))
		return
	}

	hours, err := h.service.ListOpeningHours(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, hours)
}

func (h *Handler) UpsertOpeningHours(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid salon id", err))
		return
	}

	var req model.UpsertOpeningHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error(), err))
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	row, err := h.service.UpsertOpeningHours(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, row)
}

func (h *Handler) DeleteOpeningHours(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid salon id", err))
		return
	}
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid day of week", err))
		return
	}

	if err := h.service.DeleteOpeningHours(c.Request.Context(), id, day); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
