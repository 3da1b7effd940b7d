package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type paramResponse struct {
	Type        string  `json:"type"`
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// ListParams exposes the catalog so clients can render status labels
// without hard-coding the vocabulary.
func (h *Handler) ListParams(c *gin.Context) {
	list, err := h.Params.ListByType(c.Request.Context(), c.Param("type"))
	if err != nil {
		respondErr(c, err)
		return
	}

	resp := make([]paramResponse, 0, len(list))
	for _, p := range list {
		resp = append(resp, paramResponse{
			Type:        p.Type,
			Code:        p.Code,
			Name:        p.Name,
			Description: p.Description,
		})
	}
	c.JSON(http.StatusOK, resp)
}
