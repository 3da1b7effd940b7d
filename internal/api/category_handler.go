package api

import (
	"net/http"
	"strconv"

	"tavolo-be/internal/category"

	"github.com/gin-gonic/gin"
)

type categoryResponse struct {
	ID       uint                `json:"id"`
	Name     string              `json:"name"`
	ParentID *uint               `json:"parentId,omitempty"`
	Children []*categoryResponse `json:"children,omitempty"`
}

func toCategoryResponse(c *category.Category) *categoryResponse {
	resp := &categoryResponse{ID: c.ID, Name: c.Name, ParentID: c.ParentID}
	for _, child := range c.Children {
		resp.Children = append(resp.Children, toCategoryResponse(child))
	}
	return resp
}

func (h *Handler) GetCategoryTree(c *gin.Context) {
	roots, err := h.Categories.GetTree(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}

	resp := make([]*categoryResponse, 0, len(roots))
	for _, r := range roots {
		resp = append(resp, toCategoryResponse(r))
	}
	c.JSON(http.StatusOK, resp)
}

type createCategoryRequest struct {
	Name     string `json:"name" binding:"required"`
	ParentID *uint  `json:"parentId"`
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cat, err := h.Categories.Create(c.Request.Context(), req.Name, req.ParentID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCategoryResponse(cat))
}

type reparentCategoryRequest struct {
	ParentID *uint `json:"parentId"`
}

func (h *Handler) ReparentCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}

	var req reparentCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Categories.Reparent(c.Request.Context(), uint(id), req.ParentID); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
