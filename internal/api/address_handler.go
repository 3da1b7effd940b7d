package api

import (
	"net/http"
	"strconv"

	"tavolo-be/internal/address"

	"github.com/gin-gonic/gin"
)

type addressResponse struct {
	ID        uint    `json:"id"`
	Label     string  `json:"label"`
	Line1     string  `json:"line1"`
	Line2     *string `json:"line2,omitempty"`
	City      string  `json:"city"`
	Phone     string  `json:"phone"`
	IsDefault bool    `json:"isDefault"`
}

func toAddressResponse(a *address.Address) addressResponse {
	return addressResponse{
		ID:        a.ID,
		Label:     a.Label,
		Line1:     a.Line1,
		Line2:     a.Line2,
		City:      a.City,
		Phone:     a.Phone,
		IsDefault: a.IsDefault,
	}
}

type createAddressRequest struct {
	Label     string  `json:"label" binding:"required"`
	Line1     string  `json:"line1" binding:"required"`
	Line2     *string `json:"line2"`
	City      string  `json:"city" binding:"required"`
	Phone     string  `json:"phone" binding:"required"`
	IsDefault bool    `json:"isDefault"`
}

func (h *Handler) CreateAddress(c *gin.Context) {
	var req createAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a, err := h.Addresses.Create(c.Request.Context(), address.CreateAddressParams{
		UserID:    currentUserID(c),
		Label:     req.Label,
		Line1:     req.Line1,
		Line2:     req.Line2,
		City:      req.City,
		Phone:     req.Phone,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAddressResponse(a))
}

func (h *Handler) ListAddresses(c *gin.Context) {
	list, err := h.Addresses.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}

	resp := make([]addressResponse, 0, len(list))
	for _, a := range list {
		resp = append(resp, toAddressResponse(a))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) DeleteAddress(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address id"})
		return
	}

	if err := h.Addresses.Delete(c.Request.Context(), currentUserID(c), uint(id)); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
