package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Lari-oliv/olive-beauty/middleware"
	"github.com/Lari-oliv/olive-beauty/models"
)

type AuthController struct {
	service      AuthService
	secureCookie bool
}

// NewAuthController wires the auth endpoints. secureCookie marks the access
// token cookie Secure, which production deployments behind TLS need.
func NewAuthController(service AuthService, secureCookie bool) *AuthController {
	return &AuthController{service: service, secureCookie: secureCookie}
}

func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, "Invalid registration payload", err)
		return
	}

	resp, serr := ac.service.Register(c.Request.Context(), req)
	if serr != nil {
		fail(c, serr)
		return
	}
	ac.setTokenCookie(c, resp)
	success(c, http.StatusCreated, resp)
}

func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, "Invalid login payload", err)
		return
	}

	resp, serr := ac.service.Login(c.Request.Context(), req)
	if serr != nil {
		fail(c, serr)
		return
	}
	ac.setTokenCookie(c, resp)
	success(c, http.StatusOK, resp)
}

func (ac *AuthController) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", ac.secureCookie, true)
	success(c, http.StatusOK, gin.H{"message": "Logged out"})
}

func (ac *AuthController) Me(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	user, serr := ac.service.Me(c.Request.Context(), userID)
	if serr != nil {
		fail(c, serr)
		return
	}
	success(c, http.StatusOK, user)
}

func (ac *AuthController) setTokenCookie(c *gin.Context, resp *models.AuthResponse) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, resp.Token, int(resp.ExpiresIn), "/", "", ac.secureCookie, true)
}
