package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type dailyRevenueResponse struct {
	Day     string  `json:"day"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

type topItemResponse struct {
	MenuItemID uint    `json:"menuItemId"`
	Name       string  `json:"name"`
	Sold       int     `json:"sold"`
	Revenue    float64 `json:"revenue"`
}

type statusCountResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// GetDailyRevenue reports revenue per day over [from, to). Defaults to the
// last 30 days.
func (h *Handler) GetDailyRevenue(c *gin.Context) {
	to := time.Now().UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)
	from := to.AddDate(0, 0, -30)

	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be YYYY-MM-DD"})
			return
		}
		from = t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be YYYY-MM-DD"})
			return
		}
		to = t
	}

	rows, err := h.Stats.DailyRevenue(c.Request.Context(), from, to)
	if err != nil {
		respondErr(c, err)
		return
	}

	resp := make([]dailyRevenueResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, dailyRevenueResponse{
			Day:     r.Day.Format("2006-01-02"),
			Orders:  r.Orders,
			Revenue: r.Revenue,
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetTopItems(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = v
	}

	rows, err := h.Stats.TopItems(c.Request.Context(), limit)
	if err != nil {
		respondErr(c, err)
		return
	}

	resp := make([]topItemResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, topItemResponse{
			MenuItemID: r.MenuItemID,
			Name:       r.Name,
			Sold:       r.Sold,
			Revenue:    r.Revenue,
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetOrdersByStatus(c *gin.Context) {
	rows, err := h.Stats.OrdersByStatus(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}

	resp := make([]statusCountResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, statusCountResponse{Status: r.Status, Count: r.Count})
	}
	c.JSON(http.StatusOK, resp)
}
