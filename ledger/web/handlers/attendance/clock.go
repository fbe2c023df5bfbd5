package attendance

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"kintai.app/kintai/core"
	"kintai.app/kintai/infrastructure/communication"
	ledger "kintai.app/kintai/ledger/core"
	"kintai.app/kintai/ledger/model"
	"kintai.app/kintai/web/common"
)

type ClockRequestDTO struct {
	StaffID   string `json:"staffId" binding:"required"`
	Type      string `json:"type" binding:"required,oneof=clock_in clock_out"`
	Timestamp *int64 `json:"timestamp,omitempty"`
	Note      string `json:"note,omitempty"`
}

type QRClockRequestDTO struct {
	Token     string `json:"token" binding:"required"`
	Type      string `json:"type" binding:"required,oneof=clock_in clock_out"`
	Timestamp *int64 `json:"timestamp,omitempty"`
}

// Clock is the authenticated clock path.
func (ep *Endpoint) Clock(c *gin.Context) {
	ownerID, ok := ep.owner(c)
	if !ok {
		return
	}

	var dto ClockRequestDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	result, err := ledger.RecordClock(ep.base.GetDB(c), ownerID, ledger.ClockParams{
		StaffID:   dto.StaffID,
		Type:      model.RecordType(dto.Type),
		Timestamp: dto.Timestamp,
		Note:      dto.Note,
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}

	ep.notifyClock(dto.StaffID, dto.Type)
	c.JSON(http.StatusOK, common.NewSuccessResponse(result))
}

// QRClockHandler is the no-auth QR path: identity comes from the token
// alone, and inactive staff are rejected here only.
func QRClockHandler(dm *core.DatabaseManager, notifier *communication.Slack) gin.HandlerFunc {
	return func(c *gin.Context) {
		var dto QRClockRequestDTO
		if err := c.ShouldBindJSON(&dto); err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
			return
		}

		var result *ledger.ClockResult
		err := dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
			var err error
			result, err = ledger.RecordClockByToken(db, dto.Token, model.RecordType(dto.Type), dto.Timestamp, "")
			return err
		})
		if err != nil {
			common.RespondError(c, err)
			return
		}

		if notifier != nil {
			_ = notifier.Info(fmt.Sprintf("QR %s recorded (pair %s)", dto.Type, result.PairID))
		}
		c.JSON(http.StatusOK, common.NewSuccessResponse(result))
	}
}

func (ep *Endpoint) notifyClock(staffID, typ string) {
	if ep.notifier == nil {
		return
	}
	_ = ep.notifier.Info(fmt.Sprintf("%s recorded for staff %s", typ, staffID))
}
