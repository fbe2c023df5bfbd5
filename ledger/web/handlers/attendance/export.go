package attendance

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"kintai.app/kintai/core"
	"kintai.app/kintai/infrastructure/communication"
	"kintai.app/kintai/infrastructure/devops"
	"kintai.app/kintai/infrastructure/filesystem"
	ledger "kintai.app/kintai/ledger/core"
	"kintai.app/kintai/ledger/model"
	"kintai.app/kintai/utils"
	"kintai.app/kintai/web/common"
)

const exportSheet = "Attendance"

// ExportMonthly renders the monthly summary as an xlsx workbook. The file is
// always returned to the caller; ?archive=1 additionally stores it in the
// report bucket and ?email=addr sends it as an attachment.
func (ep *Endpoint) ExportMonthly(c *gin.Context) {
	ownerID, ok := ep.owner(c)
	if !ok {
		return
	}
	year, month, staffID, ok := ep.monthParams(c)
	if !ok {
		return
	}

	db := ep.base.GetDB(c)

	summary, err := ledger.MonthlySummaryQuery(db, ownerID, staffID, year, month)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	staff, err := core.ListStaff(db, ownerID)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	staffNames := make(map[string]string, len(staff))
	for _, s := range staff {
		staffNames[s.ID] = s.Name
	}

	shift, err := defaultShift(db, ownerID)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	data, err := buildWorkbook(summary, staffNames, shift)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	filename := fmt.Sprintf("attendance-%04d-%02d.xlsx", year, int(month))

	if c.Query("archive") == "1" {
		cfg, err := devops.LoadAppConfig(c.Request.Context())
		if err != nil {
			common.RespondError(c, err)
			return
		}
		key := fmt.Sprintf("%s/%s", ownerID, filename)
		if err := filesystem.WriteFile(cfg.ReportBucket, key, c.Request.Context(), data); err != nil {
			common.RespondError(c, err)
			return
		}
	}

	if to := c.Query("email"); to != "" {
		cfg, err := devops.LoadAppConfig(c.Request.Context())
		if err != nil {
			common.RespondError(c, err)
			return
		}
		err = communication.SendEmail(c.Request.Context(), &communication.EmailInfo{
			From:           cfg.ReportSender,
			To:             []string{to},
			Subject:        fmt.Sprintf("Attendance report %04d-%02d", year, int(month)),
			Text:           fmt.Sprintf("Attendance report for %04d-%02d is attached.", year, int(month)),
			AttachmentName: filename,
			Attachment:     data,
		})
		if err != nil {
			common.RespondError(c, err)
			return
		}
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// ListArchivedReports lists the caller's archived reports in the report
// bucket. Keys are stored as <ownerId>/<filename>; only the filenames are
// returned.
func (ep *Endpoint) ListArchivedReports(c *gin.Context) {
	ownerID, ok := ep.owner(c)
	if !ok {
		return
	}

	cfg, err := devops.LoadAppConfig(c.Request.Context())
	if err != nil {
		common.RespondError(c, err)
		return
	}

	keys, err := filesystem.ListFiles(cfg.ReportBucket, c.Request.Context())
	if err != nil {
		common.RespondError(c, err)
		return
	}

	prefix := ownerID + "/"
	owned := utils.Filter(keys, func(key string) bool {
		return strings.HasPrefix(key, prefix)
	})
	names := utils.Map(owned, func(key string) string {
		return strings.TrimPrefix(key, prefix)
	})

	c.JSON(http.StatusOK, common.NewSearchResponse(names, int64(len(names))))
}

// defaultShift returns the owner's default shift template, or nil when none
// is defined.
func defaultShift(db *gorm.DB, ownerID string) (*model.WorkShift, error) {
	var shift model.WorkShift
	result := db.Where("owner_id = ? AND is_default = ?", ownerID, true).First(&shift)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &shift, nil
}

func buildWorkbook(summary *ledger.MonthlySummary, staffNames map[string]string, shift *model.WorkShift) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []interface{}{"Date", "Staff", "Clock In", "Clock Out", "Adjusted In", "Adjusted Out", "Minutes", "Overtime", "Valid"}
	if err := f.SetSheetRow(exportSheet, "A1", &headers); err != nil {
		return nil, err
	}

	row := 2
	for _, pair := range summary.Pairs {
		name := staffNames[pair.StaffID]
		if name == "" {
			name = pair.StaffID
		}

		clockIn := time.UnixMilli(pair.ClockIn).In(ledger.JST)
		values := []interface{}{
			pair.Date,
			name,
			clockIn.Format("15:04"),
			"", "", "",
			pair.DurationMinutes,
			pair.OvertimeMinutes,
			pair.Valid,
		}

		if pair.ClockOut != nil {
			clockOut := time.UnixMilli(*pair.ClockOut).In(ledger.JST)
			values[3] = clockOut.Format("15:04")

			if shift != nil {
				adjusted, err := ledger.AdjustToShift(clockIn, clockOut, *shift)
				if err == nil {
					values[4] = adjusted.Start.Format("15:04")
					values[5] = adjusted.Finish.Format("15:04")
				}
			}
		}

		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return nil, err
		}
		row++
	}

	totals := []interface{}{"Total", "", "", "", "", "", summary.TotalMinutes, summary.OvertimeMinutes, ""}
	cell, err := excelize.CoordinatesToCellName(1, row+1)
	if err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(exportSheet, cell, &totals); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
