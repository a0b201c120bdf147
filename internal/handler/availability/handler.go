package availability

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/coiffly/salon-api/internal/model"
	"github.com/coiffly/salon-api/internal/service/availability"
	apperrors "github.com/coiffly/salon-api/pkg/errors"
	"github.com/coiffly/salon-api/pkg/httputil"
)

type Handler struct {
	service *availability.Service
}

func NewHandler(service *availability.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/availability", h.FindSlots)
}

// FindSlots answers "when can I get these services?". service_ids is a
// comma separated list; staff_id is optional and means "this stylist
// only". Without date_to only date_from is searched.
func (h *Handler) FindSlots(c *gin.Context) {
	req, err := parseRequest(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	days, err := h.service.FindSlots(c.Request.Context(), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"days": days})
}

func parseRequest(c *gin.Context) (*model.AvailabilityRequest, error) {
	salonID, err := uuid.Parse(c.Query("salon_id"))
	if err != nil {
		return nil, apperrors.Validation("invalid salon_id", err)
	}

	rawIDs := c.Query("service_ids")
	if rawIDs == "" {
		return nil, apperrors.Validation("service_ids is required", nil)
	}
	var serviceIDs []uuid.UUID
	for _, part := range strings.Split(rawIDs, ",") {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil {
			return nil, apperrors.Validation("invalid service id in service_ids", err)
		}
		serviceIDs = append(serviceIDs, id)
	}

	var staffID *uuid.UUID
	if raw := c.Query("staff_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, apperrors.Validation("invalid staff_id", err)
		}
		staffID = &id
	}

	from, err := time.Parse("2006-01-02", c.Query("date_from"))
	if err != nil {
		return nil, apperrors.Validation("date_from must be formatted as 2006-01-02", err)
	}
	to := from
	if raw := c.Query("date_to"); raw != "" {
		to, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, apperrors.Validation("date_to must be formatted as 2006-01-02", err)
		}
	}

	return &model.AvailabilityRequest{
		SalonID:    salonID,
		ServiceIDs: serviceIDs,
		StaffID:    staffID,
		DateFrom:   from,
		DateTo:     to,
	}, nil
}
