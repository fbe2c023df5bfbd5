package helper

import (
	"fmt"
	"io"
	"sort"
	"time"

	"gorm.io/gorm"

	ledger "kintai.app/kintai/ledger/core"
	"kintai.app/kintai/ledger/model"
	"kintai.app/kintai/utils"
)

// Row is one line of a legacy attendance export: staff id, event type,
// timestamp and an optional note.
type Row struct {
	StaffID   string
	Type      model.RecordType
	Timestamp time.Time
	Note      string
}

type ImportStats struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// ParseLegacyCSV reads the legacy export format. The first row is the header.
func ParseLegacyCSV(r io.Reader) ([]Row, error) {
	rows, err := utils.ParseCSV(r)
	if err != nil {
		return nil, err
	}

	var result []Row
	for i, row := range rows {
		if i == 0 {
			continue
		}

		if len(row) < 3 {
			return nil, fmt.Errorf("row %d: expected at least 3 columns, got %d", i, len(row))
		}

		typ := model.RecordType(row[1])
		if !typ.Valid() {
			return nil, fmt.Errorf("row %d: invalid record type %q", i, row[1])
		}

		timestamp, err := utils.ParseISOTime(row[2])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid timestamp: %w", i, err)
		}

		record := Row{
			StaffID:   row[0],
			Type:      typ,
			Timestamp: *timestamp,
		}
		if len(row) > 3 {
			record.Note = row[3]
		}

		result = append(result, record)
	}

	return result, nil
}

// ImportRows replays legacy rows through the ledger in timestamp order so
// clock_outs pair against the clock_ins imported before them. Rows that fail
// (unknown staff) are skipped, not fatal.
func ImportRows(db *gorm.DB, ownerID string, rows []Row) ImportStats {
	sorted := make([]Row, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	var stats ImportStats
	for _, row := range sorted {
		ms := row.Timestamp.UnixMilli()
		_, err := ledger.RecordClock(db, ownerID, ledger.ClockParams{
			StaffID:   row.StaffID,
			Type:      row.Type,
			Timestamp: &ms,
			Note:      row.Note,
		})
		if err != nil {
			fmt.Printf("[WARN] skipping row for staff %s at %s: %v\n", row.StaffID, row.Timestamp, err)
			stats.Skipped++
			continue
		}
		stats.Imported++
	}
	return stats
}
