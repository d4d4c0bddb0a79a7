// controllers/service.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"salonbase-backend/services"
	"salonbase-backend/utils"
)

// ServiceController handles the /api/services routes.
type ServiceController struct {
	Manager *services.ServiceManager
}

func NewServiceController(manager *services.ServiceManager) *ServiceController {
	return &ServiceController{Manager: manager}
}

// CreateService creates a new service with an optional image upload
func (ctl *ServiceController) CreateService(c *gin.Context) {
	var input services.CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	service, err := ctl.Manager.Create(c.Request.Context(), input)
	if err != nil {
		var uploadErr *services.UploadError
		if errors.As(err, &uploadErr) {
			utils.RespondWithError(c, http.StatusBadRequest, uploadErr.Error())
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service")
		return
	}

	c.JSON(http.StatusCreated, service)
}

// GetServices lists services with skip/limit pagination
func (ctl *ServiceController) GetServices(c *gin.Context) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid skip parameter")
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid limit parameter")
		return
	}

	page, err := ctl.Manager.List(c.Request.Context(), skip, limit)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "No services found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		}
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetService retrieves a specific service by ID
func (ctl *ServiceController) GetService(c *gin.Context) {
	id, ok := serviceID(c)
	if !ok {
		return
	}

	service, err := ctl.Manager.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, service)
}

// UpdateService updates an existing service, including its image
func (ctl *ServiceController) UpdateService(c *gin.Context) {
	id, ok := serviceID(c)
	if !ok {
		return
	}

	var input services.UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	service, err := ctl.Manager.Update(c.Request.Context(), id, input)
	if err != nil {
		var uploadErr *services.UploadError
		switch {
		case errors.Is(err, services.ErrNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		case errors.As(err, &uploadErr):
			utils.RespondWithError(c, http.StatusBadRequest, uploadErr.Error())
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service")
		}
		return
	}

	c.JSON(http.StatusOK, service)
}

// DeleteService deletes a service and its associated image
func (ctl *ServiceController) DeleteService(c *gin.Context) {
	id, ok := serviceID(c)
	if !ok {
		return
	}

	result, err := ctl.Manager.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete service")
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

func serviceID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return 0, false
	}
	return uint(id), true
}
