package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextStatuses(t *testing.T) {
	assert.Equal(t,
		[]BookingStatus{BookingStatusConfirmed, BookingStatusCancelled},
		BookingStatusPending.NextStatuses())

	assert.Equal(t,
		[]BookingStatus{BookingStatusCompleted, BookingStatusCancelled},
		BookingStatusConfirmed.NextStatuses())

	assert.Nil(t, BookingStatusCompleted.NextStatuses())
	assert.Nil(t, BookingStatusCancelled.NextStatuses())
	assert.Nil(t, BookingStatus("unknown").NextStatuses())
}
