package handler

import (
	"net/http"

	"anoa.com/careerhub/internal/modules/search/dto"
	search "anoa.com/careerhub/internal/modules/search/service"
	"anoa.com/careerhub/pkg/apperror"
	"anoa.com/careerhub/pkg/response"
	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	service search.SearchService
}

func NewSearchHandler(service search.SearchService) *SearchHandler {
	return &SearchHandler{service: service}
}

func (h *SearchHandler) Search(c *gin.Context) {
	var query dto.SearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ResponseError(c, apperror.ErrBadRequest)
		return
	}

	index := query.Type
	if index == "" {
		index = search.IndexPosts
	}

	res, err := h.service.Search(index, query.Q, query.Limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
