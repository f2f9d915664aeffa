package handler

import (
	"errors"
	"net/http"

	profileDto "anoa.com/careerhub/internal/modules/profile/dto"
	profile "anoa.com/careerhub/internal/modules/profile/service"
	"anoa.com/careerhub/internal/urls"
	"anoa.com/careerhub/pkg/request"
	"anoa.com/careerhub/pkg/response"
	"anoa.com/careerhub/pkg/validator"
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

func (h *ProfileHandler) GetCreateForm(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	exists, err := h.profileService.HasProfile(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	if exists {
		response.Redirect(c, http.StatusSeeOther, urls.ProfileView, profile.MsgProfileExists, nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"form": profileDto.ProfileForm{}})
}

func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	exists, err := h.profileService.HasProfile(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	if exists {
		response.Redirect(c, http.StatusSeeOther, urls.ProfileView, profile.MsgProfileExists, nil)
		return
	}

	var input profileDto.CreateProfileInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	picture, closePicture, err := request.FormFile(c, "picture")
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	defer closePicture()

	res, err := h.profileService.CreateProfile(c.Request.Context(), userID, input, picture)
	if err != nil {
		if errors.Is(err, profile.ErrProfileExists) {
			response.Redirect(c, http.StatusSeeOther, urls.ProfileView, profile.MsgProfileExists, nil)
			return
		}
		response.ResponseError(c, err)
		return
	}

	response.Redirect(c, http.StatusCreated, urls.PostList, profile.MsgProfileCreated, res)
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	view, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileMissing) {
			response.Redirect(c, http.StatusSeeOther, urls.ProfileCreate, profile.MsgCompleteProfile, nil)
			return
		}
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}
