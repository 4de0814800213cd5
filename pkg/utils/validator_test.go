package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidPhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"+79001234567", true},
		{"+7 900 123-45-67", true},
		{"8(495)1234567", true},
		{"89001234567", true},
		{"123", false},
		{"abc", false},
		{"", false},
		{"8 (495) 123-45-678", false}, // over 15 characters
		{"+7900123456x", false},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, ValidPhone(tc.phone), "phone %q", tc.phone)
	}
}

func TestValidateStructPhoneTag(t *testing.T) {
	type form struct {
		Phone string `validate:"required,phone"`
	}

	assert.Nil(t, ValidateStruct(&form{Phone: "+79001234567"}))

	errs := ValidateStruct(&form{Phone: "abc"})
	assert.Contains(t, errs, "Phone")
	assert.Equal(t, "Invalid phone number format", errs["Phone"])

	errs = ValidateStruct(&form{})
	assert.Equal(t, "This field is required", errs["Phone"])
}

func TestValidateStructOneof(t *testing.T) {
	type form struct {
		Status string `validate:"required,oneof=confirmed completed cancelled"`
	}

	assert.Nil(t, ValidateStruct(&form{Status: "confirmed"}))

	errs := ValidateStruct(&form{Status: "archived"})
	assert.Equal(t, "Must be one of: confirmed, completed, cancelled", errs["Status"])
}
