package v1

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttendanceClock(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/kintai/v1.0/clock", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"recordId":"rec-1","pairId":"rec-1"}}`))
	}))
	defer server.Close()

	client := NewKintaiClient(server.URL, "test-token")

	result, err := client.Attendance.Clock(&ClockDTO{StaffID: "staff-1", Type: "clock_in"})
	assert.NoError(t, err)
	assert.Equal(t, "rec-1", result.RecordID)
	assert.Equal(t, "rec-1", result.PairID)
}

func TestAttendanceMonthlySummary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/kintai/v1.0/attendance/monthly/summary", r.URL.Path)
		assert.Equal(t, "2026-04", r.URL.Query().Get("month"))
		assert.Equal(t, "staff-1", r.URL.Query().Get("staffId"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"pairs":[],"totalMinutes":540,"overtimeMinutes":60,"totalHours":9,"overtimeHours":1}}`))
	}))
	defer server.Close()

	client := NewKintaiClient(server.URL, "")

	summary, err := client.Attendance.MonthlySummary("2026-04", "staff-1")
	assert.NoError(t, err)
	assert.Equal(t, int64(540), summary.TotalMinutes)
	assert.Equal(t, int64(60), summary.OvertimeMinutes)
}

func TestTransportErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"staff not found"}`))
	}))
	defer server.Close()

	client := NewKintaiClient(server.URL, "")

	_, err := client.Attendance.Today()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
