// controllers/image.go
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"salonbase-backend/services"
	"salonbase-backend/utils"
)

// UploadImageInput defines the expected JSON structure for a standalone image upload
type UploadImageInput struct {
	ImageBase64 string `json:"image_base64"`
	IsIcon      bool   `json:"is_icon"`
}

// UploadImage uploads an image to the media host without touching any record
func (ctl *ServiceController) UploadImage(c *gin.Context) {
	var input UploadImageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.ImageBase64 == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "image_base64 is required")
		return
	}
	if !utils.ValidateImagePayload(input.ImageBase64) {
		utils.RespondWithError(c, http.StatusBadRequest, "image_base64 is not valid base64 image data")
		return
	}

	result, err := ctl.Manager.UploadImage(c.Request.Context(), input.ImageBase64, input.IsIcon)
	if err != nil {
		var uploadErr *services.UploadError
		if errors.As(err, &uploadErr) {
			utils.RespondWithError(c, http.StatusBadRequest, uploadErr.Error())
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Unexpected error: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeleteImage deletes an image from the media host by public ID
func (ctl *ServiceController) DeleteImage(c *gin.Context) {
	publicID := strings.TrimPrefix(c.Param("publicId"), "/")

	result, err := ctl.Manager.DeleteImage(c.Request.Context(), publicID)
	if err != nil {
		var validationErr *services.ValidationError
		switch {
		case errors.As(err, &validationErr):
			utils.RespondWithError(c, http.StatusBadRequest, validationErr.Error())
		case errors.Is(err, services.ErrNotFound):
			utils.RespondWithError(c, http.StatusNotFound, err.Error())
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Error deleting image: "+err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
