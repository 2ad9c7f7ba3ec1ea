package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusFromWire(t *testing.T) {
	tests := []struct {
		raw  string
		want Status
	}{
		{"planned", StatusPlanned},
		{"in-progress", StatusInProgress},
		{"postponed", StatusPostponed},
		{"completed", StatusCompleted},
		{"upcoming", StatusPlanned}, // legacy wire alias
		{"", StatusPlanned},
		{"garbage", StatusPlanned},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFromWire(tt.raw))
		})
	}
}

func TestDraftNormalize(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		d := Draft{Title: "Algebra Review", Subject: "Math", Date: "2024-06-01"}
		d.Normalize()
		assert.Equal(t, PriorityMedium, d.Priority)
		assert.Equal(t, StatusPlanned, d.Status)
	})

	t.Run("explicit values kept", func(t *testing.T) {
		d := Draft{Priority: PriorityHigh, Status: StatusPostponed}
		d.Normalize()
		assert.Equal(t, PriorityHigh, d.Priority)
		assert.Equal(t, StatusPostponed, d.Status)
	})

	t.Run("upcoming alias normalized", func(t *testing.T) {
		d := Draft{Status: Status("upcoming")}
		d.Normalize()
		assert.Equal(t, StatusPlanned, d.Status)
	})
}

func TestPriorityValid(t *testing.T) {
	assert.True(t, PriorityHigh.Valid())
	assert.True(t, PriorityMedium.Valid())
	assert.True(t, PriorityLow.Valid())
	assert.False(t, Priority("urgent").Valid())
}
