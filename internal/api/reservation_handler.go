package api

import (
	"net/http"
	"time"

	"tavolo-be/internal/reservation"

	"github.com/gin-gonic/gin"
)

type createReservationRequest struct {
	TableIDs        []uint    `json:"tableIds"`
	NumberOfPeople  int       `json:"numberOfPeople" binding:"required"`
	ReservationTime time.Time `json:"reservationTime" binding:"required"`
	Note            *string   `json:"note"`
}

type updateReservationRequest struct {
	ReservationTime *time.Time `json:"reservationTime"`
	Note            *string    `json:"note"`
	Status          *string    `json:"status"`
}

type reservationResponse struct {
	PublicID        string    `json:"publicId"`
	TableIDs        []uint    `json:"tableIds"`
	TableNames      []string  `json:"tableNames"`
	NumberOfPeople  int       `json:"numberOfPeople"`
	ReservationTime time.Time `json:"reservationTime"`
	Note            *string   `json:"note,omitempty"`
	StatusName      string    `json:"statusName"`
	CreatedAt       time.Time `json:"createdAt"`
}

func toReservationResponse(r *reservation.Reservation) reservationResponse {
	resp := reservationResponse{
		PublicID:        r.PublicID,
		TableIDs:        []uint{},
		TableNames:      []string{},
		NumberOfPeople:  r.NumberOfPeople,
		ReservationTime: r.ReservationTime,
		Note:            r.Note,
		StatusName:      string(r.Status),
		CreatedAt:       r.CreatedAt,
	}
	for _, t := range r.Tables {
		resp.TableIDs = append(resp.TableIDs, t.ID)
		resp.TableNames = append(resp.TableNames, t.Name)
	}
	return resp
}

func (h *Handler) CreateReservation(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.Reservations.Create(c.Request.Context(), reservation.CreateParams{
		UserID:          currentUserID(c),
		TableIDs:        req.TableIDs,
		NumberOfPeople:  req.NumberOfPeople,
		ReservationTime: req.ReservationTime,
		Note:            req.Note,
	})
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, toReservationResponse(res))
}

func (h *Handler) GetReservation(c *gin.Context) {
	res, err := h.Reservations.Get(c.Request.Context(), reservation.ByPublicID(c.Param("publicId")))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toReservationResponse(res))
}

func (h *Handler) ListMyReservations(c *gin.Context) {
	list, err := h.Reservations.ListByUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}

	resp := make([]reservationResponse, 0, len(list))
	for _, r := range list {
		resp = append(resp, toReservationResponse(r))
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateReservation serves owners and staff; ownership is enforced in
// the service.
func (h *Handler) UpdateReservation(c *gin.Context) {
	var req updateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.Reservations.Update(c.Request.Context(), reservation.ByPublicID(c.Param("publicId")), reservation.UpdateParams{
		ReservationTime: req.ReservationTime,
		Note:            req.Note,
		StatusCode:      req.Status,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toReservationResponse(res))
}

func (h *Handler) CancelReservation(c *gin.Context) {
	res, err := h.Reservations.Cancel(c.Request.Context(), reservation.ByPublicID(c.Param("publicId")))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toReservationResponse(res))
}

func (h *Handler) DeleteReservation(c *gin.Context) {
	if err := h.Reservations.Delete(c.Request.Context(), reservation.ByPublicID(c.Param("publicId"))); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) GetAvailableTables(c *gin.Context) {
	tables, err := h.Reservations.GetAvailableTables(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toTableResponses(tables))
}
