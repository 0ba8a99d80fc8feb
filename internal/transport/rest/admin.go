package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"carepulse/internal/domain"
)

// @Summary Open an admin session
// @Description Exchanges the six digit passkey for an access token
// @Tags Admin
// @Accept json
// @Produce json
// @Param input body domain.AdminSessionRequest true "Passkey"
// @Success 201 {object} domain.AdminToken
// @Failure 400 {object} errorResponseBody
// @Failure 401 {object} errorResponseBody
// @Router /admin/session [post]
func (h *Handler) createAdminSession(c *gin.Context) {
	var req domain.AdminSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid admin session request", zap.Error(err))
		badRequestResponse(c, "the passkey must be six digits")
		return
	}

	token, err := h.services.Admin.CreateSession(c.Request.Context(), req.Passkey)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, "invalid passkey")
		return
	}
	createdResponse(c, token)
}

// @Summary Recent appointments
// @Description Newest appointments with counts per status
// @Tags Admin
// @Produce json
// @Success 200 {object} domain.RecentAppointments
// @Failure 401 {object} errorResponseBody
// @Security ApiKeyAuth
// @Router /admin/appointments [get]
func (h *Handler) getRecentAppointments(c *gin.Context) {
	recent, err := h.services.Appointment.ListRecent(c.Request.Context())
	if err != nil {
		domainErrorResponse(c, err, "no appointments")
		return
	}
	successResponse(c, http.StatusOK, recent)
}
