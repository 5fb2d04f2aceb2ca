package service

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"anoa.com/wodtracker/internal/agent/providers"
	"anoa.com/wodtracker/pkg/apperror"
	commonDto "anoa.com/wodtracker/pkg/dto"
)

// MaxImageBytes bounds photos sent to the model.
const MaxImageBytes = 8 << 20

// ImageFromUpload reads an uploaded photo into memory and checks it is an image.
func ImageFromUpload(file *commonDto.UploadFile) (*providers.Image, error) {
	if file == nil || file.Reader == nil {
		return nil, nil
	}
	if file.Size > MaxImageBytes {
		return nil, apperror.Invalid("La imagen supera el tamaño máximo de 8 MB")
	}

	data, err := io.ReadAll(io.LimitReader(file.Reader, MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) == 0 {
		return nil, apperror.Invalid("La imagen está vacía")
	}
	if len(data) > MaxImageBytes {
		return nil, apperror.Invalid("La imagen supera el tamaño máximo de 8 MB")
	}

	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		// heic is not sniffed by the stdlib, trust the declared type for it
		if !strings.HasPrefix(file.MIMEType, "image/") {
			return nil, apperror.Invalid("El archivo debe ser una imagen")
		}
		mime = file.MIMEType
	}

	return &providers.Image{MIMEType: mime, Data: data}, nil
}
