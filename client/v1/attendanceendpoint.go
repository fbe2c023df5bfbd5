package v1

import (
	"encoding/json"
)

const basePath = "/api/kintai/v1.0"

type ClockDTO struct {
	StaffID   string `json:"staffId"`
	Type      string `json:"type"`
	Timestamp *int64 `json:"timestamp,omitempty"`
	Note      string `json:"note,omitempty"`
}

type ClockResultDTO struct {
	RecordID string `json:"recordId"`
	PairID   string `json:"pairId,omitempty"`
}

type TodayEntryDTO struct {
	Staff struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Code string `json:"code,omitempty"`
	} `json:"staff"`
	PairID   string `json:"pairId"`
	ClockIn  int64  `json:"clockIn"`
	ClockOut *int64 `json:"clockOut,omitempty"`
	Status   string `json:"status"`
}

type PairSummaryDTO struct {
	Date            string `json:"date"`
	PairID          string `json:"pairId"`
	StaffID         string `json:"staffId"`
	ClockIn         int64  `json:"clockIn"`
	ClockOut        *int64 `json:"clockOut,omitempty"`
	DurationMinutes int64  `json:"durationMinutes"`
	OvertimeMinutes int64  `json:"overtimeMinutes"`
	Valid           bool   `json:"valid"`
}

type MonthlySummaryDTO struct {
	Pairs           []PairSummaryDTO `json:"pairs"`
	TotalMinutes    int64            `json:"totalMinutes"`
	OvertimeMinutes int64            `json:"overtimeMinutes"`
	TotalHours      float64          `json:"totalHours"`
	OvertimeHours   float64          `json:"overtimeHours"`
}

type envelope[T any] struct {
	Data T `json:"data"`
}

type AttendanceEndpoint struct {
	transport *Transport
}

func (e *AttendanceEndpoint) Clock(dto *ClockDTO) (*ClockResultDTO, error) {
	resp, err := e.transport.Post(basePath+"/clock", dto, nil)
	if err != nil {
		return nil, err
	}

	var result envelope[*ClockResultDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

func (e *AttendanceEndpoint) Today() ([]TodayEntryDTO, error) {
	resp, err := e.transport.Get(basePath+"/attendance/today", nil)
	if err != nil {
		return nil, err
	}

	var result envelope[[]TodayEntryDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// MonthlySummary fetches the aggregation for one "YYYY-MM" month. staffID may
// be empty.
func (e *AttendanceEndpoint) MonthlySummary(month, staffID string) (*MonthlySummaryDTO, error) {
	query := map[string]string{"month": month}
	if staffID != "" {
		query["staffId"] = staffID
	}

	resp, err := e.transport.Get(basePath+"/attendance/monthly/summary", query)
	if err != nil {
		return nil, err
	}

	var result envelope[*MonthlySummaryDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}
