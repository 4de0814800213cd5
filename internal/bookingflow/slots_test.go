package bookingflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestGenerateTimeSlotsCount(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	slots := GenerateTimeSlots(date(2024, 6, 10), now, DefaultHours)

	require.Len(t, slots, 19)
	assert.Equal(t, "09:00", slots[0].Value)
	assert.Equal(t, "18:00", slots[len(slots)-1].Value)
}

func TestGenerateTimeSlotsOrdering(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	slots := GenerateTimeSlots(date(2024, 6, 10), now, DefaultHours)

	for i := 1; i < len(slots); i++ {
		assert.Less(t, slots[i-1].Value, slots[i].Value)
	}
	// no slot after closing
	for _, s := range slots {
		assert.NotEqual(t, "18:30", s.Value)
	}
}

func TestGenerateTimeSlotsDisabledToday(t *testing.T) {
	// 14:05 on the selected day: everything up to 14:00 is gone,
	// 14:30 onwards is open.
	now := time.Date(2024, 6, 10, 14, 5, 0, 0, time.UTC)

	slots := GenerateTimeSlots(date(2024, 6, 10), now, DefaultHours)

	byValue := make(map[string]TimeSlot, len(slots))
	for _, s := range slots {
		byValue[s.Value] = s
	}

	assert.True(t, byValue["09:00"].Disabled)
	assert.True(t, byValue["13:30"].Disabled)
	assert.True(t, byValue["14:00"].Disabled)
	assert.False(t, byValue["14:30"].Disabled)
	assert.False(t, byValue["18:00"].Disabled)
}

func TestGenerateTimeSlotsFutureDateAllEnabled(t *testing.T) {
	now := time.Date(2024, 6, 10, 14, 5, 0, 0, time.UTC)

	slots := GenerateTimeSlots(date(2024, 6, 11), now, DefaultHours)

	for _, s := range slots {
		assert.False(t, s.Disabled, "slot %s", s.Value)
	}
}

func TestGenerateTimeSlotsNilDate(t *testing.T) {
	now := time.Date(2024, 6, 10, 14, 5, 0, 0, time.UTC)

	slots := GenerateTimeSlots(nil, now, DefaultHours)

	require.Len(t, slots, 19)
	for _, s := range slots {
		assert.False(t, s.Disabled)
	}
}

func TestGenerateTimeSlotsSameDayDifferentMonth(t *testing.T) {
	// calendar-day match, not day-of-month match
	now := time.Date(2024, 7, 10, 14, 5, 0, 0, time.UTC)

	slots := GenerateTimeSlots(date(2024, 6, 10), now, DefaultHours)

	for _, s := range slots {
		assert.False(t, s.Disabled)
	}
}
