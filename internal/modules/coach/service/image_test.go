package service

import (
	"bytes"
	"strings"
	"testing"

	"anoa.com/wodtracker/pkg/apperror"
	commonDto "anoa.com/wodtracker/pkg/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestImageFromUpload(t *testing.T) {
	t.Run("nil upload", func(t *testing.T) {
		img, err := ImageFromUpload(nil)
		require.NoError(t, err)
		assert.Nil(t, img)
	})

	t.Run("sniffed png", func(t *testing.T) {
		img, err := ImageFromUpload(&commonDto.UploadFile{Reader: bytes.NewReader(pngHeader), FileName: "wod.png"})
		require.NoError(t, err)
		assert.Equal(t, "image/png", img.MIMEType)
		assert.Equal(t, pngHeader, img.Data)
	})

	t.Run("declared heic", func(t *testing.T) {
		img, err := ImageFromUpload(&commonDto.UploadFile{Reader: strings.NewReader("ftypheic...."), MIMEType: "image/heic"})
		require.NoError(t, err)
		assert.Equal(t, "image/heic", img.MIMEType)
	})

	t.Run("not an image", func(t *testing.T) {
		_, err := ImageFromUpload(&commonDto.UploadFile{Reader: strings.NewReader("hello"), MIMEType: "text/plain"})
		assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	})

	t.Run("too large", func(t *testing.T) {
		_, err := ImageFromUpload(&commonDto.UploadFile{Reader: strings.NewReader("x"), Size: MaxImageBytes + 1})
		assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := ImageFromUpload(&commonDto.UploadFile{Reader: strings.NewReader("")})
		assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	})
}
