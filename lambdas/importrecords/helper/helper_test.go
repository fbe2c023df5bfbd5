package helper

import (
	"strings"
	"testing"

	"kintai.app/kintai/ledger/model"
)

func TestParseLegacyCSV(t *testing.T) {
	csvData := `StaffID,Type,Timestamp,Note
staff-1,clock_in,2026-04-01T09:00:00+09:00,
staff-1,clock_out,2026-04-01T18:00:00+09:00,left early
`
	rows, err := ParseLegacyCSV(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	if rows[0].StaffID != "staff-1" || rows[0].Type != model.TypeClockIn {
		t.Errorf("unexpected first row: %+v", rows[0])
	}
	if rows[0].Timestamp.UnixMilli() != 1775001600000 {
		t.Errorf("unexpected first timestamp: %d", rows[0].Timestamp.UnixMilli())
	}

	if rows[1].Type != model.TypeClockOut || rows[1].Note != "left early" {
		t.Errorf("unexpected second row: %+v", rows[1])
	}
}

func TestParseLegacyCSVAcceptsSpaceSeparatedTimestamp(t *testing.T) {
	// Older exports use "2006-01-02 15:04:05" without a zone; those parse as
	// UTC.
	csvData := `StaffID,Type,Timestamp
staff-1,clock_in,2026-04-01 00:00:00
`
	rows, err := ParseLegacyCSV(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Timestamp.UnixMilli() != 1775001600000 {
		t.Errorf("unexpected timestamp: %d", rows[0].Timestamp.UnixMilli())
	}
}

func TestParseLegacyCSVRejectsBadType(t *testing.T) {
	csvData := `StaffID,Type,Timestamp
staff-1,lunch,2026-04-01T12:00:00+09:00
`
	_, err := ParseLegacyCSV(strings.NewReader(csvData))
	if err == nil {
		t.Fatal("expected error for invalid record type")
	}
}

func TestParseLegacyCSVRejectsShortRow(t *testing.T) {
	csvData := `StaffID,Type,Timestamp
staff-1,clock_in
`
	_, err := ParseLegacyCSV(strings.NewReader(csvData))
	if err == nil {
		t.Fatal("expected error for short row")
	}
}
