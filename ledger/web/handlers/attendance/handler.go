package attendance

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kintai.app/kintai/core"
	"kintai.app/kintai/infrastructure/communication"
	"kintai.app/kintai/web/common"
	"kintai.app/kintai/web/middlewares"
)

type Endpoint struct {
	base     common.Handler
	notifier *communication.Slack // nil when notifications are not configured
}

func Register(r *gin.RouterGroup, dm *core.DatabaseManager, notifier *communication.Slack) {
	endpoint := &Endpoint{base: common.Handler{Dm: dm}, notifier: notifier}
	r.POST("/clock", endpoint.Clock)
	r.POST("/attendance/corrections", endpoint.Correct)
	r.POST("/attendance/pairs", endpoint.CreatePair)
	r.DELETE("/attendance/pairs/:pairId", endpoint.DeletePair)
	r.GET("/attendance/pairs/:pairId/history", endpoint.PairHistory)
	r.GET("/attendance/today", endpoint.Today)
	r.GET("/attendance/monthly", endpoint.Monthly)
	r.GET("/attendance/monthly/summary", endpoint.MonthlySummary)
	r.GET("/reports/monthly/export", endpoint.ExportMonthly)
	r.GET("/reports/archive", endpoint.ListArchivedReports)
}

// owner resolves the acting owner or writes a 401 and returns false.
func (ep *Endpoint) owner(c *gin.Context) (string, bool) {
	auth, ok := middlewares.GetAuth(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, common.NewErrorResponse("no owner identity"))
		return "", false
	}
	return auth.OwnerID, true
}
