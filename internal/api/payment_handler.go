package api

import (
	"net/http"
	"time"

	"tavolo-be/internal/payment"

	"github.com/gin-gonic/gin"
)

type paymentResponse struct {
	PublicID      string    `json:"publicId"`
	Method        string    `json:"method"`
	Amount        float64   `json:"amount"`
	Status        string    `json:"status"`
	TransactionID *string   `json:"transactionId,omitempty"`
	ReturnURL     string    `json:"returnUrl,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func toPaymentResponse(p *payment.Payment) paymentResponse {
	return paymentResponse{
		PublicID:      p.PublicID,
		Method:        p.Method,
		Amount:        p.Amount,
		Status:        string(p.Status),
		TransactionID: p.TransactionID,
		ReturnURL:     p.ReturnURL,
		CreatedAt:     p.CreatedAt,
	}
}

type initiatePaymentRequest struct {
	OrderPublicID string `json:"orderPublicId" binding:"required"`
	Method        string `json:"method" binding:"required"`
}

// InitiatePayment resolves the order through the order service so the
// ownership check runs before any payment row exists.
func (h *Handler) InitiatePayment(c *gin.Context) {
	var req initiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	o, err := h.Orders.GetByPublicID(c.Request.Context(), req.OrderPublicID)
	if err != nil {
		respondErr(c, err)
		return
	}

	p, err := h.Payments.Initiate(c.Request.Context(), o.ID, req.Method)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPaymentResponse(p))
}

func (h *Handler) GetPayment(c *gin.Context) {
	p, err := h.Payments.GetByPublicID(c.Request.Context(), c.Param("publicId"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentResponse(p))
}

func (h *Handler) ApprovePayment(c *gin.Context) {
	p, err := h.Payments.Approve(c.Request.Context(), c.Param("publicId"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentResponse(p))
}

func (h *Handler) CancelPayment(c *gin.Context) {
	p, err := h.Payments.Cancel(c.Request.Context(), c.Param("publicId"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentResponse(p))
}
