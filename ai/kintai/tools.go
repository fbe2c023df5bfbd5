package kintai

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"

	ledger "kintai.app/kintai/ledger/core"
)

// TodaySummaryJSON renders the owner's current day view as a JSON string for
// the model to read.
func TodaySummaryJSON(db *gorm.DB, ownerID string) (string, error) {
	entries, err := ledger.TodayView(db, ownerID, time.Now())
	if err != nil {
		return "", err
	}

	jsonBytes, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonBytes), nil
}

// MonthSummaryJSON renders one month's aggregation as a JSON string. month is
// "YYYY-MM"; staffID may be empty for all staff.
func MonthSummaryJSON(db *gorm.DB, ownerID, month, staffID string) (string, error) {
	year, m, err := ledger.ParseMonth(month)
	if err != nil {
		return "", err
	}

	summary, err := ledger.MonthlySummaryQuery(db, ownerID, staffID, year, m)
	if err != nil {
		return "", err
	}

	jsonBytes, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonBytes), nil
}
