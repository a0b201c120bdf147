package appointment

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/coiffly/salon-api/internal/model"
	"github.com/coiffly/salon-api/internal/service/appointment"
	apperrors "github.com/coiffly/salon-api/pkg/errors"
	"github.com/coiffly/salon-api/pkg/httputil"
	"github.com/coiffly/salon-api/pkg/validator"
)

type Handler struct {
	service   *appointment.Service
	validator validator.Validator
}

func NewHandler(service *appointment.Service, v validator.Validator) *Handler {
	return &Handler{service: service, validator: v}
}

// RegisterPublicRoutes wires the booking commit, the only appointment
// endpoint customers reach without a staff token.
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.POST("/appointments", h.Commit)
}

// RegisterAdminRoutes wires the back-office surface; the caller mounts
// it behind authentication.
func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.GET("", h.List)
		appointments.GET("/:id", h.Get)
		appointments.POST("/:id/transition", h.TransitionStatus)
		appointments.POST("/:id/cancel", h.Cancel)
		appointments.PATCH("/:id/notes", h.UpdateNotes)
		appointments.DELETE("/:id", h.Delete)
	}
}

// Commit books one of the slots shown by the availability query. A
// taken slot comes back as 409; the client should refresh and offer
// the remaining options.
func (h *Handler) Commit(c *gin.Context) {
	var req model.CommitAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error(), err))
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	apt, err := h.service.Commit(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httputil.Response{Success: true, Data: apt})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid appointment id", err))
		return
	}

	apt, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, apt)
}

func (h *Handler) List(c *gin.Context) {
	filters, err := parseFilters(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	appointments, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, appointments)
}

func (h *Handler) TransitionStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid appointment id", err))
		return
	}

	var req model.TransitionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error(), err))
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	apt, err := h.service.TransitionStatus(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, apt)
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid appointment id", err))
		return
	}

	var req struct {
		Reason *string `json:"reason"`
	}
	// body is optional for cancellations
	_ = c.ShouldBindJSON(&req)

	apt, err := h.service.Cancel(c.Request.Context(), id, req.Reason)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, apt)
}

func (h *Handler) UpdateNotes(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid appointment id", err))
		return
	}

	var req struct {
		CustomerNotes *string `json:"customer_notes"`
		StaffNotes    *string `json:"staff_notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error(), err))
		return
	}

	if err := h.service.UpdateNotes(c.Request.Context(), id, req.CustomerNotes, req.StaffNotes); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"id": id})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid appointment id", err))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func parseFilters(c *gin.Context) (*model.AppointmentFilters, error) {
	salonID, err := uuid.Parse(c.Query("salon_id"))
	if err != nil {
		return nil, apperrors.Validation("invalid salon_id", err)
	}
	filters := &model.AppointmentFilters{SalonID: salonID}

	if raw := c.Query("staff_id"); raw != "" {
		filters.StaffID, err = uuid.Parse(raw)
		if err != nil {
			return nil, apperrors.Validation("invalid staff_id", err)
		}
	}
	if raw := c.Query("customer_id"); raw != "" {
		filters.CustomerID, err = uuid.Parse(raw)
		if err != nil {
			return nil, apperrors.Validation("invalid customer_id", err)
		}
	}
	if raw := c.Query("status"); raw != "" {
		filters.Status = model.AppointmentStatus(raw)
	}
	if raw := c.Query("start_date"); raw != "" {
		filters.StartDate, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, apperrors.Validation("start_date must be formatted as 2006-01-02", err)
		}
	}
	if raw := c.Query("end_date"); raw != "" {
		end, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, apperrors.Validation("end_date must be formatted as 2006-01-02", err)
		}
		filters.EndDate = end.AddDate(0, 0, 1) // inclusive end date
	}
	return filters, nil
}
