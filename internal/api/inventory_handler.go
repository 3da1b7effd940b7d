package api

import (
	"net/http"
	"strconv"
	"time"

	"tavolo-be/internal/inventory"

	"github.com/gin-gonic/gin"
)

type stockResponse struct {
	MenuItemID  uint      `json:"menuItemId"`
	Quantity    int       `json:"quantity"`
	LastUpdated time.Time `json:"lastUpdated"`
}

func toStockResponse(s *inventory.Stock) stockResponse {
	return stockResponse{
		MenuItemID:  s.MenuItemID,
		Quantity:    s.Quantity,
		LastUpdated: s.LastUpdated,
	}
}

func (h *Handler) GetStock(c *gin.Context) {
	menuItemID, err := strconv.ParseUint(c.Param("menuItemId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu item id"})
		return
	}

	s, err := h.Inventory.GetByMenuItemID(c.Request.Context(), uint(menuItemID))
	if err != nil {
		respondErr(c, err)
		return
	}
	if s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no stock record for menu item"})
		return
	}
	c.JSON(http.StatusOK, toStockResponse(s))
}

type restockRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

func (h *Handler) Restock(c *gin.Context) {
	menuItemID, err := strconv.ParseUint(c.Param("menuItemId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu item id"})
		return
	}

	var req restockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s, err := h.Inventory.Restock(c.Request.Context(), uint(menuItemID), req.Quantity)
	if err != nil {
		respondErr(c, err)
		return
	}

	h.Hub.MenuItemStock(c.Request.Context(), s.MenuItemID)
	c.JSON(http.StatusOK, toStockResponse(s))
}
