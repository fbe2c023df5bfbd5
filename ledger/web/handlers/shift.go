package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"kintai.app/kintai/core"
	"kintai.app/kintai/ledger/model"
	"kintai.app/kintai/web/common"
)

type ShiftDTO struct {
	ID           string `json:"id" binding:"required,uuid"`
	Name         string `json:"name" binding:"required"`
	Start        string `json:"start" binding:"required,datetime=15:04"`
	Finish       string `json:"finish" binding:"required,datetime=15:04"`
	BreakMinutes int32  `json:"breakMinutes" binding:"gte=0"`
	IsDefault    bool   `json:"isDefault"`
}

func ListShiftsHandler(dm *core.DatabaseManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := ownerID(c)
		if !ok {
			return
		}

		var shifts []model.WorkShift
		if err := dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
			return db.Where("owner_id = ?", owner).Order("name").Find(&shifts).Error
		}); err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, common.NewSearchResponse(shifts, int64(len(shifts))))
	}
}

func SaveShiftHandler(dm *core.DatabaseManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := ownerID(c)
		if !ok {
			return
		}

		var data ShiftDTO
		if err := c.ShouldBindJSON(&data); err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
			return
		}

		shift := model.WorkShift{
			ID:           data.ID,
			OwnerID:      owner,
			Name:         data.Name,
			Start:        data.Start,
			Finish:       data.Finish,
			BreakMinutes: data.BreakMinutes,
			IsDefault:    data.IsDefault,
		}

		// One default per owner. Marking a shift default demotes the rest in
		// the same transaction.
		if err := dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
			return db.Transaction(func(tx *gorm.DB) error {
				if shift.IsDefault {
					if err := tx.Model(&model.WorkShift{}).
						Where("owner_id = ? AND id <> ?", owner, shift.ID).
						Update("is_default", false).Error; err != nil {
						return err
					}
				}
				return tx.Save(&shift).Error
			})
		}); err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, common.NewSuccessResponse(shift))
	}
}

func DeleteShiftHandler(dm *core.DatabaseManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := ownerID(c)
		if !ok {
			return
		}
		shiftID := c.Param("shiftId")

		var deleted int64
		if err := dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
			result := db.Where("owner_id = ? AND id = ?", owner, shiftID).Delete(&model.WorkShift{})
			deleted = result.RowsAffected
			return result.Error
		}); err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}
		if deleted == 0 {
			c.JSON(http.StatusNotFound, common.NewErrorResponse("shift not found"))
			return
		}

		c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{}))
	}
}
