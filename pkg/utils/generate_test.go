package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateReferences(t *testing.T) {
	bookingRef := regexp.MustCompile(`^CL-\d{8}-\d{6}-\d{4}$`)
	orderRef := regexp.MustCompile(`^ORD-\d{8}-\d{6}-\d{4}$`)

	assert.Regexp(t, bookingRef, GenerateBookingReference())
	assert.Regexp(t, orderRef, GenerateOrderReference())
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 5, ParseInt("5", 1))
	assert.Equal(t, 1, ParseInt("", 1))
	assert.Equal(t, 1, ParseInt("abc", 1))
	assert.Equal(t, 10, ParseInt("0", 10))
	assert.Equal(t, 10, ParseInt("-3", 10))
}

func TestParseInt64(t *testing.T) {
	assert.Equal(t, int64(42), ParseInt64("42"))
	assert.Equal(t, int64(0), ParseInt64("abc"))
	assert.Equal(t, int64(0), ParseInt64(""))
}
