package handler

import (
	"net/http"

	"github.com/carspot/backend/internal/service"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	svc *service.ProfileService
}

func NewProfileHandler(svc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

// QRCode godoc
// @Summary Public profile link of a user, to be rendered as a QR code by the client
// @Tags profile
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} model.QRCodeResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /users/qrcode/{userId} [get]
func (h *ProfileHandler) QRCode(c *gin.Context) {
	id, err := pathID(c, "userId")
	if err != nil {
		writeError(c, err)
		return
	}
	resp, err := h.svc.QRCode(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PublicProfile godoc
// @Summary Public profile reached through a QR code
// @Tags profile
// @Produce json
// @Param token path string true "Public view token"
// @Success 200 {object} model.PublicProfile
// @Failure 404 {object} model.ErrorResponse
// @Router /public/{token} [get]
func (h *ProfileHandler) PublicProfile(c *gin.Context) {
	profile, err := h.svc.PublicProfile(c.Request.Context(), c.Param("token"), c.ClientIP())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
