package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/coiffly/salon-api/internal/model"
	"github.com/coiffly/salon-api/internal/service/auth"
	apperrors "github.com/coiffly/salon-api/pkg/errors"
	"github.com/coiffly/salon-api/pkg/httputil"
	"github.com/coiffly/salon-api/pkg/validator"
)

type Handler struct {
	service   *auth.Service
	validator validator.Validator
}

func NewHandler(service *auth.Service, v validator.Validator) *Handler {
	return &Handler{service: service, validator: v}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/auth/login", h.Login)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error(), err))
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	token, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, token)
}
