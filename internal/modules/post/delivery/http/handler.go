package handler

import (
	"net/http"

	postDto "anoa.com/careerhub/internal/modules/post/dto"
	post "anoa.com/careerhub/internal/modules/post/service"
	"anoa.com/careerhub/internal/urls"
	"anoa.com/careerhub/pkg/request"
	"anoa.com/careerhub/pkg/response"
	"anoa.com/careerhub/pkg/validator"
	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	service post.PostService
}

func NewPostHandler(service post.PostService) *PostHandler {
	return &PostHandler{service: service}
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req postDto.PostRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	image, closeImage, err := request.FormFile(c, "image")
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	defer closeImage()

	resp, err := h.service.CreatePost(c.Request.Context(), userID, req, image)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Redirect(c, http.StatusCreated, urls.PostList, post.MsgPostCreated, resp)
}

func (h *PostHandler) ListPosts(c *gin.Context) {
	posts, err := h.service.ListPosts(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": posts})
}

func (h *PostHandler) GetPost(c *gin.Context) {
	resp, err := h.service.GetPostBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PostHandler) UpdatePost(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req postDto.PostRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	image, closeImage, err := request.FormFile(c, "image")
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	defer closeImage()

	resp, err := h.service.UpdatePost(c.Request.Context(), userID, c.Param("slug"), req, image)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Redirect(c, http.StatusOK, urls.PostDetail(resp.Slug), post.MsgPostUpdated, resp)
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.DeletePost(c.Request.Context(), userID, c.Param("slug")); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Redirect(c, http.StatusOK, urls.PostList, post.MsgPostDeleted, nil)
}
