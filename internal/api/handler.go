package api

import (
	"errors"
	"net/http"

	"tavolo-be/internal/address"
	"tavolo-be/internal/apperr"
	"tavolo-be/internal/cart"
	"tavolo-be/internal/category"
	"tavolo-be/internal/inventory"
	"tavolo-be/internal/logger"
	"tavolo-be/internal/menu"
	"tavolo-be/internal/notify"
	"tavolo-be/internal/order"
	"tavolo-be/internal/param"
	"tavolo-be/internal/payment"
	"tavolo-be/internal/reservation"
	"tavolo-be/internal/stats"
	"tavolo-be/internal/table"
	"tavolo-be/internal/user"
	"tavolo-be/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	Users        user.Service
	Categories   category.Service
	Menu         menu.Service
	Carts        cart.Service
	Orders       order.Service
	Payments     payment.Service
	Reservations reservation.Service
	Addresses    address.Service
	Tables       table.Repository
	Inventory    inventory.Repository
	Stats        stats.Repository
	Params       param.Repository
	Hub          *notify.Hub
}

// respondErr maps the error taxonomy onto HTTP status codes. Unclassified
// errors are logged and surface as 500 without leaking internals.
func respondErr(c *gin.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperr.KindValidation:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperr.KindConflict:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case apperr.KindAuthorization:
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		if errors.Is(err, param.ErrParamNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.FromCtx(c.Request.Context()).Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// currentUserID returns the authenticated user id; RequireAuth guarantees
// presence on protected routes.
func currentUserID(c *gin.Context) uint {
	id, _ := utils.GetUserIDFromContext(c.Request.Context())
	return id
}

func isNotFound(err error) bool {
	return apperr.KindOf(err) == apperr.KindNotFound
}
