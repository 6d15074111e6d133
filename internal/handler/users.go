package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/carspot/backend/internal/model"
	"github.com/carspot/backend/internal/service"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// List godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Router /users/all [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Search godoc
// @Summary Search users by partial name, partial email and creation date
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param nom query string false "Partial last name"
// @Param email query string false "Partial email"
// @Param createdAfter query string false "RFC3339 or YYYY-MM-DD"
// @Success 200 {array} model.UserSearchResult
// @Router /users/search [get]
func (h *UserHandler) Search(c *gin.Context) {
	filter := model.UserSearchFilter{
		Name:  c.Query("nom"),
		Email: c.Query("email"),
	}
	if raw := c.Query("createdAfter"); raw != "" {
		createdAfter, err := parseDate(raw)
		if err != nil {
			writeError(c, err)
			return
		}
		filter.CreatedAfter = &createdAfter
	}

	users, err := h.svc.Search(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Visits godoc
// @Summary List visits of the caller's public profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Visit
// @Router /users/me/visits [get]
func (h *UserHandler) Visits(c *gin.Context) {
	visits, err := h.svc.Visits(c.Request.Context(), GetAuthUser(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, visits)
}

// Update godoc
// @Summary Update a user (admin)
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body model.UpdateUserRequest true "Fields to change"
// @Success 200 {object} model.UserMutationResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}
	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.UserMutationResponse{Message: "Utilisateur mis à jour", User: user})
}

// SetRole godoc
// @Summary Change a user's role (admin)
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body model.UpdateRoleRequest true "New role"
// @Success 200 {object} model.UserMutationResponse
// @Router /users/{id}/role [patch]
func (h *UserHandler) SetRole(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}
	var req model.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := h.svc.SetRole(c.Request.Context(), id, req.Role)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.UserMutationResponse{Message: "Rôle mis à jour", User: user})
}

// Delete godoc
// @Summary Delete a user (admin)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} model.MessageResponse
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.MessageResponse{Message: "Utilisateur supprimé"})
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: createdAfter must be a date", service.ErrInvalidInput)
}
