package handler

import (
	"net/http"
	"time"

	"anoa.com/careerhub/internal/modules/user/dto"
	auth "anoa.com/careerhub/internal/modules/user/service"
	"anoa.com/careerhub/internal/urls"
	"anoa.com/careerhub/pkg/ratelimiter"
	"anoa.com/careerhub/pkg/response"
	"anoa.com/careerhub/pkg/session"
	"anoa.com/careerhub/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type AuthHandler struct {
	authService  auth.AuthService
	redisClient  *redis.Client
	signupLimit  time.Duration
	secureCookie bool
}

func NewAuthHandler(authService auth.AuthService, redisClient *redis.Client, signupLimit time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		redisClient:  redisClient,
		signupLimit:  signupLimit,
		secureCookie: secureCookie,
	}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	if response.OptionalUserID(c) != nil {
		response.Redirect(c, http.StatusSeeOther, urls.PostList, "You are already signed in.", nil)
		return
	}

	var input dto.SignupInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := ratelimiter.Enforce(c.Request.Context(), h.redisClient, c.ClientIP(), "signup", h.signupLimit); err != nil {
		response.ResponseError(c, err)
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Redirect(c, http.StatusCreated, urls.SignIn, auth.MsgSignupSuccess, user)
}

func (h *AuthHandler) Signin(c *gin.Context) {
	var input dto.SigninInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.authService.Signin(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	maxAge := int(time.Until(time.Unix(res.ExpiresIn, 0)).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, res.AccessToken, maxAge, "/", "", h.secureCookie, true)

	next := urls.ProfileCreate
	if res.HasProfile {
		next = urls.ProfileView
	}

	c.Header("Location", next)
	c.JSON(http.StatusOK, gin.H{
		"access_token": res.AccessToken,
		"token_type":   res.TokenType,
		"expires_in":   res.ExpiresIn,
		"user":         res.User,
		"redirect":     next,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), c.GetString("session_id")); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.SetCookie(session.CookieName, "", -1, "/", "", h.secureCookie, true)
	response.Redirect(c, http.StatusOK, urls.SignIn, "You have been signed out.", nil)
}
