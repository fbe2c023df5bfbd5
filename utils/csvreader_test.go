package utils

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseCSV(t *testing.T) {
	csvData := `staff_id,type,timestamp
7f9c0a12,clock_in,2026-08-03T09:00:00+09:00
7f9c0a12,clock_out,2026-08-03T18:00:00+09:00`

	reader := strings.NewReader(csvData)

	got, err := ParseCSV(reader)
	if err != nil {
		t.Fatalf("ParseCSV returned error: %v", err)
	}

	want := [][]string{
		{"staff_id", "type", "timestamp"},
		{"7f9c0a12", "clock_in", "2026-08-03T09:00:00+09:00"},
		{"7f9c0a12", "clock_out", "2026-08-03T18:00:00+09:00"},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseCSV returned %+v, want %+v", got, want)
	}
}
