package api

import (
	"net/http"
	"strconv"

	"tavolo-be/internal/cart"

	"github.com/gin-gonic/gin"
)

type cartLineResponse struct {
	MenuItemID uint    `json:"menuItemId,omitempty"`
	ComboID    uint    `json:"comboId,omitempty"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	Subtotal   float64 `json:"subtotal"`
}

type cartResponse struct {
	ID     uint               `json:"id"`
	Status string             `json:"status"`
	Lines  []cartLineResponse `json:"lines"`
	Total  float64            `json:"total"`
}

func toCartResponse(c *cart.Cart) cartResponse {
	resp := cartResponse{ID: c.ID, Status: string(c.Status), Lines: []cartLineResponse{}}
	for _, line := range c.Items {
		sub := line.Price * float64(line.Quantity)
		resp.Lines = append(resp.Lines, cartLineResponse{
			MenuItemID: line.MenuItemID,
			Name:       line.Name,
			Price:      line.Price,
			Quantity:   line.Quantity,
			Subtotal:   sub,
		})
		resp.Total += sub
	}
	for _, line := range c.ComboItems {
		sub := line.Price * float64(line.Quantity)
		resp.Lines = append(resp.Lines, cartLineResponse{
			ComboID:  line.ComboID,
			Name:     line.Name,
			Price:    line.Price,
			Quantity: line.Quantity,
			Subtotal: sub,
		})
		resp.Total += sub
	}
	return resp
}

func (h *Handler) GetCart(c *gin.Context) {
	ct, err := h.Carts.GetOrCreateActive(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(ct))
}

type addCartItemRequest struct {
	MenuItemID uint `json:"menuItemId" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required"`
}

func (h *Handler) AddCartItem(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.Carts.AddItem(c.Request.Context(), cart.AddItemParams{
		UserID:     currentUserID(c),
		MenuItemID: req.MenuItemID,
		Quantity:   req.Quantity,
	}); err != nil {
		respondErr(c, err)
		return
	}

	h.respondActiveCart(c)
}

type addCartComboRequest struct {
	ComboID  uint `json:"comboId" binding:"required"`
	Quantity int  `json:"quantity" binding:"required"`
}

func (h *Handler) AddCartCombo(c *gin.Context) {
	var req addCartComboRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.Carts.AddComboItem(c.Request.Context(), cart.AddComboItemParams{
		UserID:   currentUserID(c),
		ComboID:  req.ComboID,
		Quantity: req.Quantity,
	}); err != nil {
		respondErr(c, err)
		return
	}

	h.respondActiveCart(c)
}

type updateCartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) UpdateCartItemQuantity(c *gin.Context) {
	menuItemID, err := strconv.ParseUint(c.Param("menuItemId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu item id"})
		return
	}

	var req updateCartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Carts.UpdateItemQuantity(c.Request.Context(), currentUserID(c), uint(menuItemID), req.Quantity); err != nil {
		respondErr(c, err)
		return
	}

	h.respondActiveCart(c)
}

func (h *Handler) RemoveCartItem(c *gin.Context) {
	menuItemID, err := strconv.ParseUint(c.Param("menuItemId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu item id"})
		return
	}

	if err := h.Carts.RemoveItem(c.Request.Context(), currentUserID(c), uint(menuItemID)); err != nil {
		respondErr(c, err)
		return
	}

	h.respondActiveCart(c)
}

func (h *Handler) RemoveCartCombo(c *gin.Context) {
	comboID, err := strconv.ParseUint(c.Param("comboId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid combo id"})
		return
	}

	if err := h.Carts.RemoveComboItem(c.Request.Context(), currentUserID(c), uint(comboID)); err != nil {
		respondErr(c, err)
		return
	}

	h.respondActiveCart(c)
}

func (h *Handler) ClearCart(c *gin.Context) {
	if err := h.Carts.Clear(c.Request.Context(), currentUserID(c)); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// respondActiveCart re-reads the cart so mutations always answer with the
// full updated state, which saves the client a follow-up fetch.
func (h *Handler) respondActiveCart(c *gin.Context) {
	ct, err := h.Carts.GetActive(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(ct))
}
