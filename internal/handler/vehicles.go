package handler

import (
	"net/http"

	"github.com/carspot/backend/internal/model"
	"github.com/carspot/backend/internal/service"
	"github.com/gin-gonic/gin"
)

type VehicleHandler struct {
	svc *service.VehicleService
}

func NewVehicleHandler(svc *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{svc: svc}
}

// List godoc
// @Summary List all vehicles
// @Tags vehicles
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Vehicle
// @Router /vehicule/all [get]
func (h *VehicleHandler) List(c *gin.Context) {
	vehicles, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

// ListMine godoc
// @Summary List the caller's vehicles
// @Tags vehicles
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Vehicle
// @Router /vehicule/user [get]
func (h *VehicleHandler) ListMine(c *gin.Context) {
	vehicles, err := h.svc.ListMine(c.Request.Context(), GetAuthUser(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

// Create godoc
// @Summary Create a vehicle owned by the caller
// @Tags vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.VehicleRequest true "Vehicle"
// @Success 201 {object} model.VehicleMutationResponse
// @Failure 400 {object} model.ErrorResponse
// @Router /vehicule/creation [post]
func (h *VehicleHandler) Create(c *gin.Context) {
	var req model.VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	vehicle, err := h.svc.Create(c.Request.Context(), GetAuthUser(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.VehicleMutationResponse{Message: "Véhicule créé avec succès", Vehicle: vehicle})
}

// Update godoc
// @Summary Update a vehicle (owner only)
// @Tags vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vehicle ID"
// @Param request body model.VehicleRequest true "Fields to change"
// @Success 200 {object} model.VehicleMutationResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /vehicule/modification/{id} [put]
func (h *VehicleHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}
	var req model.VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	vehicle, err := h.svc.Update(c.Request.Context(), GetAuthUser(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.VehicleMutationResponse{Message: "Véhicule mis à jour", Vehicle: vehicle})
}

// Delete godoc
// @Summary Delete a vehicle (owner only)
// @Tags vehicles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vehicle ID"
// @Success 200 {object} model.MessageResponse
// @Router /vehicule/suppression/{id} [delete]
func (h *VehicleHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), GetAuthUser(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.MessageResponse{Message: "Véhicule supprimé"})
}

// AddImages godoc
// @Summary Attach already uploaded images to a vehicle (owner only)
// @Tags vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param vehiculeId path int true "Vehicle ID"
// @Param request body model.VehicleImageRequest true "Images"
// @Success 201 {array} model.VehicleImage
// @Router /vehicule/{vehiculeId}/images [post]
func (h *VehicleHandler) AddImages(c *gin.Context) {
	id, err := pathID(c, "vehiculeId")
	if err != nil {
		writeError(c, err)
		return
	}
	var req model.VehicleImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	images, err := h.svc.AddImages(c.Request.Context(), GetAuthUser(c), id, req.Images)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, images)
}

// DeleteImage godoc
// @Summary Delete a vehicle image (vehicle owner only)
// @Tags vehicles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Image ID"
// @Success 200 {object} model.MessageResponse
// @Router /vehicule/images/{id} [delete]
func (h *VehicleHandler) DeleteImage(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.svc.DeleteImage(c.Request.Context(), GetAuthUser(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.MessageResponse{Message: "Image supprimée"})
}
