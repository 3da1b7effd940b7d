package api

import (
	"net/http"
	"strconv"
	"time"

	"tavolo-be/internal/order"

	"github.com/gin-gonic/gin"
)

type orderLineResponse struct {
	MenuItemID *uint   `json:"menuItemId,omitempty"`
	ComboID    *uint   `json:"comboId,omitempty"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
}

type orderResponse struct {
	PublicID      string              `json:"publicId"`
	Status        string              `json:"status"`
	TotalAmount   float64             `json:"totalAmount"`
	ReceiptNumber string              `json:"receiptNumber"`
	Items         []orderLineResponse `json:"items"`
	CreatedAt     time.Time           `json:"createdAt"`
}

func toOrderResponse(o *order.Order) orderResponse {
	resp := orderResponse{
		PublicID:      o.PublicID,
		Status:        string(o.Status),
		TotalAmount:   o.TotalAmount,
		ReceiptNumber: o.ReceiptNumber,
		Items:         []orderLineResponse{},
		CreatedAt:     o.CreatedAt,
	}
	for _, it := range o.Items {
		resp.Items = append(resp.Items, orderLineResponse{
			MenuItemID: it.MenuItemID,
			ComboID:    it.ComboID,
			Name:       it.Name,
			Quantity:   it.Quantity,
			Price:      it.Price,
		})
	}
	return resp
}

func (h *Handler) Checkout(c *gin.Context) {
	o, err := h.Orders.Checkout(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(o))
}

func (h *Handler) GetOrder(c *gin.Context) {
	o, err := h.Orders.GetByPublicID(c.Request.Context(), c.Param("publicId"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(o))
}

func (h *Handler) ListMyOrders(c *gin.Context) {
	limit := queryInt32(c, "limit", 20)
	page := queryInt32(c, "page", 1)

	list, err := h.Orders.List(c.Request.Context(), currentUserID(c), limit, page)
	if err != nil {
		respondErr(c, err)
		return
	}

	resp := make([]orderResponse, 0, len(list))
	for _, o := range list {
		resp = append(resp, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, resp)
}

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	o, err := h.Orders.UpdateStatus(c.Request.Context(), c.Param("publicId"), req.Status)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(o))
}

func queryInt32(c *gin.Context, key string, def int32) int32 {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || v <= 0 {
		return def
	}
	return int32(v)
}
