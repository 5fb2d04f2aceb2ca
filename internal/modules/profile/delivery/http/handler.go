package handler

import (
	"net/http"

	profileDto "anoa.com/wodtracker/internal/modules/profile/dto"
	profile "anoa.com/wodtracker/internal/modules/profile/service"
	commonDto "anoa.com/wodtracker/pkg/dto"
	"anoa.com/wodtracker/pkg/response"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileService profile.ProfileService
}

func NewProfileHandler(profileService profile.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

func (h *ProfileHandler) GetCurrentProfile(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.profileService.GetCurrentProfile(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input profileDto.UpdateProfileInput
	if err := c.ShouldBind(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	var avatar *commonDto.UploadFile
	if fileHeader, err := c.FormFile("avatar"); err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read avatar"})
			return
		}
		defer file.Close()

		avatar = &commonDto.UploadFile{
			Reader:   file,
			FileName: fileHeader.Filename,
			MIMEType: fileHeader.Header.Get("Content-Type"),
			Size:     fileHeader.Size,
		}
	}

	res, err := h.profileService.UpdateProfile(c.Request.Context(), userID, input, avatar)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
