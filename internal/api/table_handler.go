package api

import (
	"net/http"
	"strconv"

	"tavolo-be/internal/table"

	"github.com/gin-gonic/gin"
)

type tableResponse struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Capacity int     `json:"capacity"`
	Status   string  `json:"status"`
	Location *string `json:"location,omitempty"`
	Position *string `json:"position,omitempty"`
}

func toTableResponse(t *table.Table) tableResponse {
	return tableResponse{
		ID:       t.ID,
		Name:     t.Name,
		Capacity: t.Capacity,
		Status:   string(t.Status),
		Location: t.Location,
		Position: t.Position,
	}
}

func toTableResponses(tables []*table.Table) []tableResponse {
	resp := make([]tableResponse, 0, len(tables))
	for _, t := range tables {
		resp = append(resp, toTableResponse(t))
	}
	return resp
}

func (h *Handler) ListTables(c *gin.Context) {
	if raw := c.Query("status"); raw != "" {
		tables, err := h.Tables.GetByStatus(c.Request.Context(), table.Status(raw))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, toTableResponses(tables))
		return
	}

	tables, err := h.Tables.GetAll(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toTableResponses(tables))
}

func (h *Handler) GetTable(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid table id"})
		return
	}

	t, err := h.Tables.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		respondErr(c, err)
		return
	}
	if t == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "table not found"})
		return
	}
	c.JSON(http.StatusOK, toTableResponse(t))
}

type createTableRequest struct {
	Name     string  `json:"name" binding:"required"`
	Capacity int     `json:"capacity" binding:"required,gt=0"`
	Location *string `json:"location"`
	Position *string `json:"position"`
}

func (h *Handler) CreateTable(c *gin.Context) {
	var req createTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := h.Tables.Create(c.Request.Context(), table.CreateTableParams{
		Name:     req.Name,
		Capacity: req.Capacity,
		Location: req.Location,
		Position: req.Position,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTableResponse(t))
}
