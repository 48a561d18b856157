package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnminh/restaff/pkg/core/model"
)

func TestBuildAvailabilityIndex_ContainmentOnly(t *testing.T) {
	idx, err := BuildAvailabilityIndex([]model.AvailabilityInterval{
		{UserID: "u1", Date: "2025-01-06", Start: "08:00", End: "12:00"},
	})
	require.NoError(t, err)

	assert.True(t, idx.IsAvailable("u1", "2025-01-06", 8*60, 12*60), "exact window should match")
	assert.True(t, idx.IsAvailable("u1", "2025-01-06", 9*60, 11*60), "contained window should match")
	assert.False(t, idx.IsAvailable("u1", "2025-01-06", 7*60, 9*60), "partial overlap gets no credit")
	assert.False(t, idx.IsAvailable("u1", "2025-01-06", 11*60, 13*60), "partial overlap gets no credit")
	assert.False(t, idx.IsAvailable("u1", "2025-01-07", 9*60, 11*60), "other dates are not covered")
	assert.False(t, idx.IsAvailable("u2", "2025-01-06", 9*60, 11*60), "other users are not covered")
}

func TestBuildAvailabilityIndex_MergesTouchingWindows(t *testing.T) {
	idx, err := BuildAvailabilityIndex([]model.AvailabilityInterval{
		{UserID: "u1", Date: "2025-01-06", Start: "10:00", End: "12:00"},
		{UserID: "u1", Date: "2025-01-06", Start: "08:00", End: "10:00"},
		{UserID: "u1", Date: "2025-01-06", Start: "09:00", End: "11:00"},
	})
	require.NoError(t, err)

	assert.True(t, idx.IsAvailable("u1", "2025-01-06", 9*60, 11*60),
		"a window spanning two touching declarations should be covered")
	assert.Equal(t, 240, idx.FreeMinutes("u1", "2025-01-06"),
		"overlapping declarations must not double count")
}

func TestAvailabilityIndex_TotalFreeMinutes(t *testing.T) {
	idx, err := BuildAvailabilityIndex([]model.AvailabilityInterval{
		{UserID: "u1", Date: "2025-01-06", Start: "08:00", End: "12:00"},
		{UserID: "u1", Date: "2025-01-07", Start: "14:00", End: "16:00"},
		{UserID: "u2", Date: "2025-01-06", Start: "08:00", End: "09:00"},
	})
	require.NoError(t, err)

	assert.Equal(t, 360, idx.TotalFreeMinutes("u1"))
	assert.Equal(t, 60, idx.TotalFreeMinutes("u2"))
	assert.Equal(t, 0, idx.TotalFreeMinutes("u3"), "unknown users have no declared free time")
}

func TestBuildAvailabilityIndex_RejectsMalformedRecords(t *testing.T) {
	tests := []struct {
		name   string
		record model.AvailabilityInterval
	}{
		{"missing user", model.AvailabilityInterval{Date: "2025-01-06", Start: "08:00", End: "12:00"}},
		{"missing date", model.AvailabilityInterval{UserID: "u1", Start: "08:00", End: "12:00"}},
		{"bad clock", model.AvailabilityInterval{UserID: "u1", Date: "2025-01-06", Start: "8am", End: "12:00"}},
		{"inverted window", model.AvailabilityInterval{UserID: "u1", Date: "2025-01-06", Start: "12:00", End: "08:00"}},
		{"empty window", model.AvailabilityInterval{UserID: "u1", Date: "2025-01-06", Start: "08:00", End: "08:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildAvailabilityIndex([]model.AvailabilityInterval{tt.record})
			assert.Error(t, err)
		})
	}
}
