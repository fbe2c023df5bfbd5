package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"kintai.app/kintai/ledger/model"
)

func TestApplyStartRule(t *testing.T) {
	defined := time.Date(2026, 8, 3, 9, 0, 0, 0, JST)

	tests := []struct {
		name     string
		actual   time.Time
		expected time.Time
	}{
		{
			name:     "Exact match",
			actual:   defined,
			expected: defined,
		},
		{
			name:     "Early within threshold (15m)",
			actual:   defined.Add(-15 * time.Minute),
			expected: defined,
		},
		{
			name:     "Late within threshold (10m)",
			actual:   defined.Add(10 * time.Minute),
			expected: defined,
		},
		{
			name:     "Early outside threshold (16m)",
			actual:   defined.Add(-16 * time.Minute),
			expected: defined.Add(-16 * time.Minute),
		},
		{
			name:     "Late outside threshold (11m)",
			actual:   defined.Add(11 * time.Minute),
			expected: defined.Add(11 * time.Minute),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ApplyStartRule(tt.actual, defined)
			assert.Equal(t, tt.expected, res)
		})
	}
}

func TestApplyFinishRule(t *testing.T) {
	defined := time.Date(2026, 8, 3, 18, 0, 0, 0, JST)

	tests := []struct {
		name     string
		actual   time.Time
		expected time.Time
	}{
		{
			name:     "Exact match",
			actual:   defined,
			expected: defined,
		},
		{
			name:     "Early within threshold (10m)",
			actual:   defined.Add(-10 * time.Minute),
			expected: defined,
		},
		{
			name:     "Late within threshold (15m)",
			actual:   defined.Add(15 * time.Minute),
			expected: defined,
		},
		{
			name:     "Early outside threshold (11m)",
			actual:   defined.Add(-11 * time.Minute),
			expected: defined.Add(-11 * time.Minute),
		},
		{
			name:     "Late outside threshold (16m)",
			actual:   defined.Add(16 * time.Minute),
			expected: defined.Add(16 * time.Minute),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ApplyFinishRule(tt.actual, defined)
			assert.Equal(t, tt.expected, res)
		})
	}
}

func TestAdjustToShift(t *testing.T) {
	shift := model.WorkShift{Name: "day", Start: "09:00", Finish: "18:00"}

	actualStart := time.Date(2026, 8, 3, 8, 52, 0, 0, JST)  // 8m early -> snapped
	actualFinish := time.Date(2026, 8, 3, 18, 40, 0, 0, JST) // 40m late -> kept

	adjusted, err := AdjustToShift(actualStart, actualFinish, shift)

	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 3, 9, 0, 0, 0, JST), adjusted.Start)
	assert.Equal(t, actualFinish, adjusted.Finish)
}

func TestAdjustToShiftNightShiftCrossesMidnight(t *testing.T) {
	shift := model.WorkShift{Name: "night", Start: "22:00", Finish: "06:00"}

	actualStart := time.Date(2026, 8, 3, 22, 5, 0, 0, JST)
	actualFinish := time.Date(2026, 8, 4, 6, 8, 0, 0, JST)

	adjusted, err := AdjustToShift(actualStart, actualFinish, shift)

	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 3, 22, 0, 0, 0, JST), adjusted.Start)
	assert.Equal(t, time.Date(2026, 8, 4, 6, 0, 0, 0, JST), adjusted.Finish)
}

func TestAdjustToShiftInvalidDefinition(t *testing.T) {
	shift := model.WorkShift{Name: "broken", Start: "9am", Finish: "18:00"}

	_, err := AdjustToShift(time.Now(), time.Now(), shift)

	assert.Error(t, err)
}
