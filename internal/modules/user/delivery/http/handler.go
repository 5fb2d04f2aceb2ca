package handler

import (
	"net/http"
	"net/url"

	"anoa.com/wodtracker/internal/modules/user/dto"
	"anoa.com/wodtracker/internal/modules/user/service"
	"anoa.com/wodtracker/pkg/apperror"
	"anoa.com/wodtracker/pkg/response"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
	frontendURL string
}

func NewAuthHandler(authService service.AuthService, frontendURL string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		frontendURL: frontendURL,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input dto.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	res, err := h.authService.Register(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	res, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	authURL, err := h.authService.GoogleLogin(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code not found"})
		return
	}

	res, err := h.authService.GoogleCallback(c.Request.Context(), c.Query("state"), code)
	if err != nil {
		c.Redirect(http.StatusTemporaryRedirect, h.frontendURL+"/login?error="+url.QueryEscape(apperror.Message(err)))
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, h.frontendURL+"/auth/google/callback?token="+url.QueryEscape(res.AccessToken))
}
