package adaptor

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "not found", err: fmt.Errorf("booking not found"), wantCode: http.StatusNotFound},
		{name: "validation", err: fmt.Errorf("validation failed: Phone: Invalid phone number format"), wantCode: http.StatusBadRequest},
		{name: "bad credentials", err: fmt.Errorf("invalid credentials"), wantCode: http.StatusUnauthorized},
		{name: "deactivated account", err: fmt.Errorf("account is deactivated"), wantCode: http.StatusUnauthorized},
		{name: "already submitted", err: fmt.Errorf("booking already submitted"), wantCode: http.StatusConflict},
		{name: "submitting", err: fmt.Errorf("submission in progress"), wantCode: http.StatusConflict},
		{name: "bad transition", err: fmt.Errorf("invalid status transition"), wantCode: http.StatusBadRequest},
		{name: "empty cart", err: fmt.Errorf("cart is empty"), wantCode: http.StatusBadRequest},
		{name: "submission rejected", err: fmt.Errorf("failed to create booking"), wantCode: http.StatusBadGateway},
		{name: "anything else", err: fmt.Errorf("connection reset"), wantCode: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleServiceError(rec, zap.NewNop(), tc.err, "test operation")
			assert.Equal(t, tc.wantCode, rec.Code)
		})
	}
}
