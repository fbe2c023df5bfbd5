package common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"kintai.app/kintai/core"
	ledger "kintai.app/kintai/ledger/core"
)

type Handler struct {
	Dm *core.DatabaseManager
}

func (h *Handler) GetDB(c *gin.Context) *gorm.DB {
	return h.Dm.DB(c.Request.Context())
}

// RespondError maps ledger errors onto the response envelope. Cross-owner
// access surfaces as 404, never 403.
func RespondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		c.JSON(http.StatusNotFound, NewErrorResponse(err.Error()))
	case errors.Is(err, ledger.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, NewErrorResponse(err.Error()))
	case errors.Is(err, ledger.ErrInvalid):
		c.JSON(http.StatusBadRequest, NewErrorResponse(err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, NewErrorResponse(err.Error()))
	}
}
