package bookingflow

import (
	"fmt"
	"time"
)

// TimeSlot is one bookable interval rendered by the date/time step.
type TimeSlot struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	Disabled bool   `json:"disabled"`
}

// Hours describes the bookable window. Slots start every SlotMinutes from
// OpenHour and the last slot starts exactly at CloseHour.
type Hours struct {
	OpenHour    int
	CloseHour   int
	SlotMinutes int
}

// DefaultHours matches the public site: 09:00 through 18:00, half-hour steps.
var DefaultHours = Hours{OpenHour: 9, CloseHour: 18, SlotMinutes: 30}

// GenerateTimeSlots returns the slot list for date, ascending by time of day.
// A slot is disabled when date falls on the same calendar day as now and the
// slot's wall-clock time has already passed. A nil date yields the full list
// with every slot enabled. now is injected so the result is deterministic.
func GenerateTimeSlots(date *time.Time, now time.Time, hours Hours) []TimeSlot {
	var slots []TimeSlot

	sameDay := date != nil && isSameDay(*date, now)

	for hour := hours.OpenHour; hour <= hours.CloseHour; hour++ {
		for minute := 0; minute < 60; minute += hours.SlotMinutes {
			if hour == hours.CloseHour && minute > 0 {
				continue
			}

			value := fmt.Sprintf("%02d:%02d", hour, minute)

			disabled := false
			if sameDay {
				slotTime := time.Date(
					date.Year(), date.Month(), date.Day(),
					hour, minute, 0, 0, now.Location(),
				)
				disabled = slotTime.Before(now)
			}

			slots = append(slots, TimeSlot{
				Label:    value,
				Value:    value,
				Disabled: disabled,
			})
		}
	}

	return slots
}

// isSameDay matches by calendar day, not full timestamp
func isSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
