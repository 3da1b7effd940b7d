package api

import (
	"net/http"
	"strconv"
	"time"

	"tavolo-be/internal/menu"

	"github.com/gin-gonic/gin"
)

type menuItemResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Price       float64   `json:"price"`
	CategoryID  *uint     `json:"categoryId,omitempty"`
	Available   bool      `json:"available"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toMenuItemResponse(it *menu.Item) menuItemResponse {
	return menuItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Price:       it.Price,
		CategoryID:  it.CategoryID,
		Available:   it.Available,
		ImageURL:    it.ImageURL,
		CreatedAt:   it.CreatedAt,
	}
}

type comboConstituentResponse struct {
	MenuItemID uint `json:"menuItemId"`
	Quantity   int  `json:"quantity"`
}

type comboResponse struct {
	ID        uint                       `json:"id"`
	Name      string                     `json:"name"`
	Price     float64                    `json:"price"`
	Available bool                       `json:"available"`
	Items     []comboConstituentResponse `json:"items"`
	CreatedAt time.Time                  `json:"createdAt"`
}

func toComboResponse(cb *menu.Combo) comboResponse {
	resp := comboResponse{
		ID:        cb.ID,
		Name:      cb.Name,
		Price:     cb.Price,
		Available: cb.Available,
		Items:     []comboConstituentResponse{},
		CreatedAt: cb.CreatedAt,
	}
	for _, ci := range cb.Items {
		resp.Items = append(resp.Items, comboConstituentResponse{
			MenuItemID: ci.MenuItemID,
			Quantity:   ci.Quantity,
		})
	}
	return resp
}

func (h *Handler) ListMenuItems(c *gin.Context) {
	var categoryID *uint
	if raw := c.Query("categoryId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid categoryId"})
			return
		}
		v := uint(id)
		categoryID = &v
	}
	onlyAvailable := c.Query("available") == "true"

	items, err := h.Menu.ListItems(c.Request.Context(), categoryID, onlyAvailable)
	if err != nil {
		respondErr(c, err)
		return
	}

	resp := make([]menuItemResponse, 0, len(items))
	for _, it := range items {
		resp = append(resp, toMenuItemResponse(it))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetMenuItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu item id"})
		return
	}

	it, err := h.Menu.GetItem(c.Request.Context(), uint(id))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toMenuItemResponse(it))
}

type createMenuItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Price       float64 `json:"price" binding:"required"`
	CategoryID  *uint   `json:"categoryId"`
	ImageURL    *string `json:"imageUrl"`
}

func (h *Handler) CreateMenuItem(c *gin.Context) {
	var req createMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	it, err := h.Menu.CreateItem(c.Request.Context(), menu.CreateItemParams{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, toMenuItemResponse(it))
}

type updatePriceRequest struct {
	Price float64 `json:"price" binding:"required"`
}

func (h *Handler) UpdateMenuItemPrice(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu item id"})
		return
	}

	var req updatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Menu.UpdateItemPrice(c.Request.Context(), uint(id), req.Price); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListCombos(c *gin.Context) {
	onlyAvailable := c.Query("available") == "true"

	combos, err := h.Menu.ListCombos(c.Request.Context(), onlyAvailable)
	if err != nil {
		respondErr(c, err)
		return
	}

	resp := make([]comboResponse, 0, len(combos))
	for _, cb := range combos {
		resp = append(resp, toComboResponse(cb))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetCombo(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid combo id"})
		return
	}

	cb, err := h.Menu.GetCombo(c.Request.Context(), uint(id))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toComboResponse(cb))
}

type createComboRequest struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price" binding:"required"`
	Items []struct {
		MenuItemID uint `json:"menuItemId" binding:"required"`
		Quantity   int  `json:"quantity" binding:"required"`
	} `json:"items" binding:"required"`
}

func (h *Handler) CreateCombo(c *gin.Context) {
	var req createComboRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	params := menu.CreateComboParams{Name: req.Name, Price: req.Price}
	for _, it := range req.Items {
		params.Items = append(params.Items, menu.CreateComboItemParams{
			MenuItemID: it.MenuItemID,
			Quantity:   it.Quantity,
		})
	}

	cb, err := h.Menu.CreateCombo(c.Request.Context(), params)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, toComboResponse(cb))
}
