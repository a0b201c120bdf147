package staff

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/coiffly/salon-api/internal/model"
	"github.com/coiffly/salon-api/internal/service/staff"
	apperrors "github.com/coiffly/salon-api/pkg/errors"
	"github.com/coiffly/salon-api/pkg/httputil"
	"github.com/coiffly/salon-api/pkg/validator"
)

type Handler struct {
	service   *staff.Service
	validator validator.Validator
}

func NewHandler(service *staff.Service, v validator.Validator) *Handler {
	return &Handler{service: service, validator: v}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	staffGroup := r.Group("/staff")
	{
		staffGroup.POST("", h.Create)
		staffGroup.GET("", h.List)
		staffGroup.GET("/:id", h.Get)
		staffGroup.PATCH("/:id", h.Update)
		staffGroup.DELETE("/:id", h.Delete)

		staffGroup.GET("/:id/skills", h.ListSkills)
		staffGroup.PUT("/:id/skills", h.UpsertSkill)
		staffGroup.DELETE("/:id/skills/:serviceId", h.DeleteSkill)

		staffGroup.GET("/:id/working-hours", h.ListWorkingHours)
		staffGroup.POST("/:id/working-hours", h.AddWorkingHours)
		staffGroup.DELETE("/:id/working-hours/:whId", h.DeleteWorkingHours)

		staffGroup.GET("/:id/absences", h.ListAbsences)
		staffGroup.POST("/:id/absences", h.AddAbsence)
		staffGroup.DELETE("/:id/absences/:absenceId", h.DeleteAbsence)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateStaffRequest
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
		httputil.RespondWithError(c, apperrors.Validation("invalid staff id", err))
		return
	}

	member, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, member)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid staff id", err))
		return
	}

	var req model.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error(), err))
		return
	}

	member, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, member)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid staff id", err))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) List(c *gin.Context) {
	salonID, err := uuid.Parse(c.Query("salon_id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid salon_id", err))
		return
	}

	members, err := h.service.List(c.Request.Context(), salonID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, members)
}

func (h *Handler) ListSkills(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid staff id", err))
		return
	}

	skills, err := h.service.ListSkills(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, skills)
}

func (h *Handler) UpsertSkill(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid staff id", err))
		return
	}

	var req model.UpsertSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error(), err))
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	skill, err := h.service.UpsertSkill(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, skill)
}

func (h *Handler) DeleteSkill(c *gin.Context) {
	staffID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid staff id", err))
		return
	}
	serviceID, err := uuid.Parse(c.Param("serviceId"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid service id", err))
		return
	}

	if err := h.service.DeleteSkill(c.Request.Context(), staffID, serviceID); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) ListWorkingHours(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid staff id", err))
		return
	}

	hours, err := h.service.ListWorkingHours(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, hours)
}

func (h *Handler) AddWorkingHours(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid staff id", err))
		return
	}

	var req model.CreateWorkingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error(), err))
		return
	}
	req.StaffID = id
	if err := h.validator.Validate(&req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	row, err := h.service.AddWorkingHours(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httputil.Response{Success: true, Data: row})
}

func (h *Handler) DeleteWorkingHours(c *gin.Context) {
	if _, err := uuid.Parse(c.Param("id")); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid staff id", err))
		return
	}
	whID, err := uuid.Parse(c.Param("whId"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid working hours id", err))
		return
	}

	if err := h.service.DeleteWorkingHours(c.Request.Context(), whID); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) ListAbsences(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid staff id", err))
		return
	}

	from := time.Now().AddDate(0, -1, 0)
	to := time.Now().AddDate(1, 0, 0)
	if raw := c.Query("from"); raw != "" {
		from, err = time.Parse("2006-01-02", raw)
		if err != nil {
			httputil.RespondWithError(c, apperrors.Validation("from must be formatted as 2006-01-02", err))
			return
		}
	}
	if raw := c.Query("to"); raw != "" {
		to, err = time.Parse("2006-01-02", raw)
		if err != nil {
			httputil.RespondWithError(c, apperrors.Validation("to must be formatted as 2006-01-02", err))
			return
		}
	}

	absences, err := h.service.ListAbsences(c.Request.Context(), id, from, to)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, absences)
}

func (h *Handler) AddAbsence(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid staff id", err))
		return
	}

	var req model.CreateAbsenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error(), err))
		return
	}
	req.StaffID = id
	if err := h.validator.Validate(&req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	absence, err := h.service.AddAbsence(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httputil.Response{Success: true, Data: absence})
}

func (h *Handler) DeleteAbsence(c *gin.Context) {
	if _, err := uuid.Parse(c.Param("id")); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid staff id", err))
		return
	}
	absenceID, err := uuid.Parse(c.Param("absenceId"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid absence id", err))
		return
	}

	if err := h.service.DeleteAbsence(c.Request.Context(), absenceID); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
