package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDuration(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  string
	}{
		{"both present", "09:00", "10:30", "1h 30m"},
		{"same time", "09:00", "09:00", "0h 0m"},
		{"exact hours", "08:00", "11:00", "3h 0m"},
		{"missing start", "", "10:30", "N/A"},
		{"missing end", "09:00", "", "N/A"},
		{"both missing", "", "", "N/A"},
		{"end before start clamps", "10:30", "09:00", "0h 0m"},
		{"unparseable", "nine", "10:00", "N/A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Duration(tt.start, tt.end))
		})
	}
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2024, 6, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		date string
		want string
	}{
		{"today", "2024-06-10", "Today"},
		{"tomorrow", "2024-06-11", "1 day"},
		{"next week", "2024-06-17", "7 days"},
		{"yesterday", "2024-06-09", "Past due"},
		{"long past", "2023-01-01", "Past due"},
		{"unparseable", "June 10th", "N/A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysUntil(tt.date, now))
		})
	}
}
