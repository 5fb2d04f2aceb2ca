package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"anoa.com/wodtracker/internal/modules/portability/dto"
	portability "anoa.com/wodtracker/internal/modules/portability/service"
	"anoa.com/wodtracker/pkg/apperror"
	"anoa.com/wodtracker/pkg/response"
	"github.com/gin-gonic/gin"
)

const maxImportBytes = 20 << 20

type PortabilityHandler struct {
	service portability.PortabilityService
}

func NewPortabilityHandler(service portability.PortabilityService) *PortabilityHandler {
	return &PortabilityHandler{service: service}
}

func (h *PortabilityHandler) Export(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	doc, err := h.service.Export(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	fileName := fmt.Sprintf("wodtracker-export-%s.json", doc.ExportedAt.Format(time.DateOnly))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.JSON(http.StatusOK, doc)
}

// Import accepts the document as the JSON body or as a multipart "file".
func (h *PortabilityHandler) Import(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBytes)

	var doc dto.Document
	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			response.ResponseError(c, apperror.Invalid("could not read import file"))
			return
		}
		defer f.Close()
		if err := json.NewDecoder(f).Decode(&doc); err != nil {
			response.ResponseError(c, apperror.Invalid("import file is not a valid export: "+err.Error()))
			return
		}
	} else if err := c.ShouldBindJSON(&doc); err != nil {
		response.ResponseError(c, apperror.Invalid("import body is not a valid export: "+err.Error()))
		return
	}

	result, err := h.service.Import(c.Request.Context(), userID, &doc)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
