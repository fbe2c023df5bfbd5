package attendance

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	ledger "kintai.app/kintai/ledger/core"
	"kintai.app/kintai/utils"
	"kintai.app/kintai/web/common"
)

func (ep *Endpoint) Today(c *gin.Context) {
	ownerID, ok := ep.owner(c)
	if !ok {
		return
	}

	entries, err := ledger.TodayView(ep.base.GetDB(c), ownerID, utils.TokyoNow())
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(entries))
}

func (ep *Endpoint) monthParams(c *gin.Context) (int, time.Month, string, bool) {
	year, month, err := ledger.ParseMonth(c.Query("month"))
	if err != nil {
		common.RespondError(c, err)
		return 0, 0, "", false
	}
	return year, month, c.Query("staffId"), true
}

// Monthly returns raw records ordered by timestamp for client-side
// aggregation.
func (ep *Endpoint) Monthly(c *gin.Context) {
	ownerID, ok := ep.owner(c)
	if !ok {
		return
	}
	year, month, staffID, ok := ep.monthParams(c)
	if !ok {
		return
	}

	records, err := ledger.MonthlyRecords(ep.base.GetDB(c), ownerID, staffID, year, month)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSearchResponse(records, int64(len(records))))
}

// MonthlySummary returns the server-side aggregation.
func (ep *Endpoint) MonthlySummary(c *gin.Context) {
	ownerID, ok := ep.owner(c)
	if !ok {
		return
	}
	year, month, staffID, ok := ep.monthParams(c)
	if !ok {
		return
	}

	summary, err := ledger.MonthlySummaryQuery(ep.base.GetDB(c), ownerID, staffID, year, month)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(summary))
}
